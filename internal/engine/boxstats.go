package engine

import (
	"slices"

	"winelens/internal/wine"
)

// RatingBox is the box-plot summary of one country's ratings. Low and
// High are the whisker ends: the most extreme ratings still inside the
// 1.5 IQR fences. Ratings beyond the fences are listed as outliers.
type RatingBox struct {
	Country  string  `json:"country"`
	Count    int     `json:"count"`
	Low      int     `json:"low"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	High     int     `json:"high"`
	Outliers []int   `json:"outliers,omitempty"`
}

// RatingBoxesByCountry builds per-country rating boxes for the k
// countries with the most records, in ranking order. Countries whose
// rows all lack a rating are skipped.
func RatingBoxesByCountry(records []wine.Record, k int) []RatingBox {
	ranked := TopCountriesByCount(records, k)
	if len(ranked) == 0 {
		return nil
	}

	ratings := make(map[string][]int)
	for _, r := range records {
		if r.Country == "" || r.Rating == nil {
			continue
		}
		ratings[r.Country] = append(ratings[r.Country], *r.Rating)
	}

	var out []RatingBox
	for _, entry := range ranked {
		values := ratings[entry.Country]
		if len(values) == 0 {
			continue
		}
		out = append(out, ratingBox(entry.Country, values))
	}
	return out
}

func ratingBox(country string, values []int) RatingBox {
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	slices.Sort(sorted)

	q1 := Percentile(sorted, 0.25)
	median := Percentile(sorted, 0.50)
	q3 := Percentile(sorted, 0.75)
	iqr := q3 - q1
	loFence := q1 - 1.5*iqr
	hiFence := q3 + 1.5*iqr

	box := RatingBox{
		Country: country,
		Count:   len(values),
		Q1:      q1,
		Median:  median,
		Q3:      q3,
	}

	// Whiskers reach the most extreme points inside the fences. At
	// least the middle half of the data is always inside, so a box is
	// never whiskerless.
	haveLow := false
	for _, v := range sorted {
		rating := int(v)
		if v < loFence || v > hiFence {
			box.Outliers = append(box.Outliers, rating)
			continue
		}
		if !haveLow {
			box.Low = rating
			haveLow = true
		}
		box.High = rating
	}
	return box
}
