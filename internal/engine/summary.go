package engine

import (
	"math"
	"slices"

	"winelens/internal/wine"
)

// DefaultPercentiles are the ranks the price panel reports.
var DefaultPercentiles = []float64{0.25, 0.50, 0.75, 0.90}

// PercentileValue pairs a rank in [0, 1] with its interpolated value.
type PercentileValue struct {
	Rank  float64 `json:"rank"`
	Value float64 `json:"value"`
}

// Summary describes a price distribution. Values are unrounded; display
// layers decide formatting.
type Summary struct {
	Count       int               `json:"count"`
	Mean        float64           `json:"mean"`
	Std         float64           `json:"std"`
	Min         float64           `json:"min"`
	Percentiles []PercentileValue `json:"percentiles"`
	Max         float64           `json:"max"`
}

// PriceSummary computes count, mean, sample deviation, extremes and the
// requested percentiles over the non-missing prices. A nil ranks slice
// selects DefaultPercentiles. Zero priced rows yields ErrEmptyInput so
// no NaN can escape; a single value has deviation 0.
func PriceSummary(records []wine.Record, ranks []float64) (Summary, error) {
	prices := CollectPrices(records)
	if len(prices) == 0 {
		return Summary{}, ErrEmptyInput
	}
	if len(ranks) == 0 {
		ranks = DefaultPercentiles
	}

	slices.Sort(prices)
	n := len(prices)

	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, p := range prices {
			d := p - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	s := Summary{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   prices[0],
		Max:   prices[n-1],
	}
	for _, rank := range ranks {
		s.Percentiles = append(s.Percentiles, PercentileValue{
			Rank:  rank,
			Value: Percentile(prices, rank),
		})
	}
	return s, nil
}

// Percentile interpolates linearly between order statistics, the numpy
// "linear" method. values must be sorted ascending; ranks clamp to
// [0, 1].
func Percentile(values []float64, rank float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if rank <= 0 {
		return values[0]
	}
	if rank >= 1 {
		return values[n-1]
	}

	pos := rank * float64(n-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= n {
		return values[lo]
	}
	return values[lo] + frac*(values[lo+1]-values[lo])
}

// CollectPrices extracts the non-missing prices in row order.
func CollectPrices(records []wine.Record) []float64 {
	var out []float64
	for _, r := range records {
		if r.PriceUSD != nil {
			out = append(out, *r.PriceUSD)
		}
	}
	return out
}

// CollectRatings extracts the non-missing ratings in row order.
func CollectRatings(records []wine.Record) []int {
	var out []int
	for _, r := range records {
		if r.Rating != nil {
			out = append(out, *r.Rating)
		}
	}
	return out
}

// PriceBounds reports the catalog price extremes; ok is false when no
// row carries a price.
func PriceBounds(records []wine.Record) (min, max float64, ok bool) {
	for _, r := range records {
		if r.PriceUSD == nil {
			continue
		}
		if !ok || *r.PriceUSD < min {
			min = *r.PriceUSD
		}
		if !ok || *r.PriceUSD > max {
			max = *r.PriceUSD
		}
		ok = true
	}
	return min, max, ok
}

// RatingBounds reports the catalog rating extremes; ok is false when no
// row carries a rating.
func RatingBounds(records []wine.Record) (min, max int, ok bool) {
	for _, r := range records {
		if r.Rating == nil {
			continue
		}
		if !ok || *r.Rating < min {
			min = *r.Rating
		}
		if !ok || *r.Rating > max {
			max = *r.Rating
		}
		ok = true
	}
	return min, max, ok
}
