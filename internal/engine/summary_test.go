package engine

import (
	"errors"
	"math"
	"testing"

	"winelens/internal/wine"
)

func TestPriceSummary(t *testing.T) {
	s, err := PriceSummary(testRecords(), nil)
	if err != nil {
		t.Fatalf("PriceSummary() error = %v", err)
	}

	if s.Count != 8 {
		t.Errorf("Count = %d, want 8", s.Count)
	}
	if !almostEqual(s.Mean, 44.375) {
		t.Errorf("Mean = %v, want 44.375", s.Mean)
	}
	if s.Min != 10 || s.Max != 100 {
		t.Errorf("Min/Max = %v/%v, want 10/100", s.Min, s.Max)
	}

	// Interpolated ranks over the sorted prices
	// [10 15 20 30 40 60 80 100].
	wantPercentiles := map[float64]float64{
		0.25: 18.75,
		0.50: 35,
		0.75: 65,
		0.90: 86,
	}
	for _, p := range s.Percentiles {
		want, ok := wantPercentiles[p.Rank]
		if !ok {
			t.Errorf("unexpected percentile rank %v", p.Rank)
			continue
		}
		if !almostEqual(p.Value, want) {
			t.Errorf("p%v = %v, want %v", p.Rank*100, p.Value, want)
		}
	}
	if len(s.Percentiles) != 4 {
		t.Errorf("Percentiles count = %d, want the 4 defaults", len(s.Percentiles))
	}
}

// The focus-mode walkthrough: two priced rows at 45 and 200.
func TestPriceSummary_TwoValues(t *testing.T) {
	records := []wine.Record{
		rec("France", "Burgundy", "Pinot Noir", 45, 92),
		rec("France", "Burgundy", "Pinot Noir", 200, 95),
	}
	s, err := PriceSummary(records, nil)
	if err != nil {
		t.Fatalf("PriceSummary() error = %v", err)
	}
	if s.Count != 2 || !almostEqual(s.Mean, 122.5) || s.Min != 45 || s.Max != 200 {
		t.Errorf("summary = %+v, want count 2, mean 122.5, min 45, max 200", s)
	}
	if !almostEqual(s.Std, 77.5*math.Sqrt2) {
		t.Errorf("Std = %v, want %v", s.Std, 77.5*math.Sqrt2)
	}
}

func TestPriceSummary_Empty(t *testing.T) {
	tests := []struct {
		name    string
		records []wine.Record
	}{
		{"no records", nil},
		{"all prices missing", []wine.Record{
			rec("Spain", "Rioja", "Tempranillo", -1, 80),
			rec("Italy", "Tuscany", "Sangiovese", -1, 90),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := PriceSummary(tt.records, nil)
			if !errors.Is(err, ErrEmptyInput) {
				t.Fatalf("PriceSummary() error = %v, want ErrEmptyInput", err)
			}
			if math.IsNaN(s.Mean) || math.IsNaN(s.Std) {
				t.Errorf("summary leaked NaN: %+v", s)
			}
		})
	}
}

func TestPriceSummary_SingleValue(t *testing.T) {
	s, err := PriceSummary([]wine.Record{rec("France", "Burgundy", "Pinot Noir", 45, 92)}, nil)
	if err != nil {
		t.Fatalf("PriceSummary() error = %v", err)
	}
	if s.Std != 0 {
		t.Errorf("Std of a single value = %v, want 0", s.Std)
	}
	for _, p := range s.Percentiles {
		if p.Value != 45 {
			t.Errorf("p%v = %v, want 45", p.Rank*100, p.Value)
		}
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	tests := []struct {
		rank float64
		want float64
	}{
		{0, 10},
		{0.5, 25},
		{1, 40},
		{-0.5, 10}, // clamps
		{1.5, 40},  // clamps
		{1.0 / 3.0, 20},
	}
	for _, tt := range tests {
		if got := Percentile(values, tt.rank); !almostEqual(got, tt.want) {
			t.Errorf("Percentile(%v) = %v, want %v", tt.rank, got, tt.want)
		}
	}
}

func TestBounds(t *testing.T) {
	records := testRecords()

	lo, hi, ok := PriceBounds(records)
	if !ok || lo != 10 || hi != 100 {
		t.Errorf("PriceBounds() = %v, %v, %v; want 10, 100, true", lo, hi, ok)
	}

	rlo, rhi, rok := RatingBounds(records)
	if !rok || rlo != 80 || rhi != 95 {
		t.Errorf("RatingBounds() = %v, %v, %v; want 80, 95, true", rlo, rhi, rok)
	}

	if _, _, ok := PriceBounds(nil); ok {
		t.Error("PriceBounds(nil) ok = true, want false")
	}
}
