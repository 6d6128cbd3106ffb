package engine

import (
	"errors"
	"testing"

	"winelens/internal/wine"

	"github.com/google/go-cmp/cmp"
)

func TestAvailableCountries(t *testing.T) {
	got := AvailableCountries(testRecords())
	want := []string{"France", "Italy", "Spain"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AvailableCountries() mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailableRegions(t *testing.T) {
	tests := []struct {
		name      string
		countries []string
		want      []string
	}{
		{"single country", []string{"France"}, []string{"Bordeaux", "Burgundy"}},
		{"two countries", []string{"France", "Italy"}, []string{"Bordeaux", "Burgundy", "Piedmont", "Tuscany"}},
		{"empty selection matches nothing", []string{}, nil},
		{"nil selection matches nothing", nil, nil},
		{"unknown country", []string{"Portugal"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emptyToNil(AvailableRegions(testRecords(), tt.countries))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AvailableRegions(%v) mismatch (-want +got):\n%s", tt.countries, diff)
			}
		})
	}
}

func TestAvailableGrapes(t *testing.T) {
	tests := []struct {
		name      string
		countries []string
		regions   []string
		want      []string
	}{
		{
			"cascade through both levels",
			[]string{"France", "Italy"},
			[]string{"Burgundy", "Tuscany"},
			[]string{"Chardonnay", "Pinot Noir", "Sangiovese"},
		},
		{
			"region not under the selected country",
			[]string{"Italy"},
			[]string{"Burgundy"},
			nil,
		},
		{"empty regions", []string{"France"}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emptyToNil(AvailableGrapes(testRecords(), tt.countries, tt.regions))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AvailableGrapes() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func emptyToNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestFilter_EmptySelectionMatchesNothing(t *testing.T) {
	records := testRecords()
	c := DefaultConstraint(records)
	c.Countries = nil

	got, err := Filter(records, c)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Filter() with empty country selection returned %d rows, want 0", len(got))
	}
}

func TestFilter_DefaultConstraint(t *testing.T) {
	records := testRecords()
	got, err := Filter(records, DefaultConstraint(records))
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}

	// Rows 0-6: the row missing its price fails the bounds, the row
	// missing its country fails the selection.
	if diff := cmp.Diff(records[:7], got); diff != "" {
		t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_OrderAndIdempotence(t *testing.T) {
	records := testRecords()
	c := DefaultConstraint(records)
	c.Countries = []string{"Italy", "Spain"}
	c.Regions = AvailableRegions(records, c.Countries)
	c.Grapes = AvailableGrapes(records, c.Countries, c.Regions)

	once, err := Filter(records, c)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	for i := 1; i < len(once); i++ {
		if indexOf(records, once[i-1]) >= indexOf(records, once[i]) {
			t.Errorf("Filter() output not in original order at %d", i)
		}
	}

	twice, err := Filter(once, c)
	if err != nil {
		t.Fatalf("Filter(Filter()) error = %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Filter() not idempotent (-once +twice):\n%s", diff)
	}
}

func indexOf(records []wine.Record, r wine.Record) int {
	for i, cand := range records {
		if cand.Country == r.Country && cand.Region == r.Region && cand.Grape == r.Grape &&
			cand.PriceUSD != nil && r.PriceUSD != nil && *cand.PriceUSD == *r.PriceUSD {
			return i
		}
	}
	return -1
}

func TestFilter_NumericBounds(t *testing.T) {
	records := testRecords()
	tests := []struct {
		name     string
		mutate   func(*Constraint)
		wantRows int
	}{
		{"price band", func(c *Constraint) { c.PriceMin = 30; c.PriceMax = 80 }, 4},
		{"rating band", func(c *Constraint) { c.RatingMin = 90; c.RatingMax = 95 }, 4},
		{"band excluding everything", func(c *Constraint) { c.PriceMin = 500; c.PriceMax = 600 }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConstraint(records)
			tt.mutate(&c)
			got, err := Filter(records, c)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if len(got) != tt.wantRows {
				t.Errorf("Filter() = %d rows, want %d", len(got), tt.wantRows)
			}
		})
	}
}

func TestFilter_FocusMode(t *testing.T) {
	records := []wine.Record{
		rec("France", "Burgundy", "Pinot Noir", 45, 92),
		rec("US", "Napa", "Cabernet", 60, 88),
		rec("France", "Burgundy", "Pinot Noir", 200, 95),
	}

	c := DefaultConstraint(records)
	c.Focus = true
	got, err := Filter(records, c)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	want := []wine.Record{records[0], records[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter() focus mismatch (-want +got):\n%s", diff)
	}

	// Case-insensitive substring matching on region and grape.
	loose := []wine.Record{
		rec("France", "Côte de Nuits, BURGUNDY", "pinot noir blend", 75, 91),
	}
	c = DefaultConstraint(loose)
	c.Focus = true
	got, err = Filter(loose, c)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Filter() focus substring match = %d rows, want 1", len(got))
	}

	// Numeric bounds still apply under focus.
	c = DefaultConstraint(records)
	c.Focus = true
	c.PriceMax = 100
	got, err = Filter(records, c)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 1 || *got[0].PriceUSD != 45 {
		t.Errorf("Filter() focus with price cap = %v, want only the $45 row", got)
	}
}

func TestFilter_InvalidRange(t *testing.T) {
	records := testRecords()
	c := DefaultConstraint(records)
	c.PriceMin = 100
	c.PriceMax = 10

	_, err := Filter(records, c)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Filter() error = %v, want *RangeError", err)
	}
	if rangeErr.Field != "price" {
		t.Errorf("RangeError.Field = %q, want price", rangeErr.Field)
	}
}
