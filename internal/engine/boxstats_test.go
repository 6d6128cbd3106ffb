package engine

import (
	"testing"

	"winelens/internal/wine"

	"github.com/google/go-cmp/cmp"
)

func TestRatingBoxesByCountry(t *testing.T) {
	got := RatingBoxesByCountry(testRecords(), 10)

	want := []RatingBox{
		{Country: "France", Count: 3, Low: 88, Q1: 89, Median: 90, Q3: 92.5, High: 95},
		{Country: "Italy", Count: 3, Low: 86, Q1: 89, Median: 92, Q3: 93, High: 94},
		{Country: "Spain", Count: 2, Low: 80, Q1: 81, Median: 82, Q3: 83, High: 84},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RatingBoxesByCountry() mismatch (-want +got):\n%s", diff)
	}

	// Box order follows the count ranking, and quartiles are ordered
	// within each box.
	for i, b := range got {
		if b.Q1 > b.Median || b.Median > b.Q3 {
			t.Errorf("box %d quartiles out of order: %+v", i, b)
		}
		if i > 0 && got[i-1].Count < b.Count {
			t.Errorf("boxes not in count-ranking order at %d", i)
		}
	}
}

func TestRatingBoxesByCountry_Capped(t *testing.T) {
	got := RatingBoxesByCountry(testRecords(), 1)
	if len(got) != 1 || got[0].Country != "France" {
		t.Errorf("RatingBoxesByCountry(k=1) = %v, want France only", got)
	}
}

func TestRatingBox_Outliers(t *testing.T) {
	records := []wine.Record{
		rec("France", "Burgundy", "Pinot Noir", 50, 88),
		rec("France", "Burgundy", "Pinot Noir", 50, 90),
		rec("France", "Burgundy", "Pinot Noir", 50, 92),
		rec("France", "Burgundy", "Pinot Noir", 50, 94),
		rec("France", "Burgundy", "Pinot Noir", 50, 60), // corked bottle
	}
	got := RatingBoxesByCountry(records, 1)
	if len(got) != 1 {
		t.Fatalf("boxes = %v, want one", got)
	}

	b := got[0]
	if diff := cmp.Diff([]int{60}, b.Outliers); diff != "" {
		t.Errorf("Outliers mismatch (-want +got):\n%s", diff)
	}
	if b.Low != 88 || b.High != 94 {
		t.Errorf("whiskers = %d..%d, want 88..94 (outlier excluded)", b.Low, b.High)
	}

	iqr := b.Q3 - b.Q1
	loFence, hiFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	for _, o := range b.Outliers {
		if float64(o) >= loFence && float64(o) <= hiFence {
			t.Errorf("outlier %d inside the fences [%v, %v]", o, loFence, hiFence)
		}
	}
}

func TestRatingBoxesByCountry_SkipsUnrated(t *testing.T) {
	records := []wine.Record{
		rec("France", "Burgundy", "Pinot Noir", 50, 90),
		rec("Italy", "Tuscany", "Sangiovese", 40, -1),
	}
	got := RatingBoxesByCountry(records, 10)
	if len(got) != 1 || got[0].Country != "France" {
		t.Errorf("RatingBoxesByCountry() = %v, want France only (Italy has no rated rows)", got)
	}
}
