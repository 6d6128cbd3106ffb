package engine

import (
	"math"

	"winelens/internal/wine"
)

// Default bin counts, matching the dashboard's chart settings.
const (
	DefaultPriceBins  = 50
	DefaultRatingBins = 20
)

// HistogramBin is a half-open value interval and its row count. The
// last bin closes on its upper edge so the maximum lands inside.
type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram is an equal-width binning of one numeric field. Log
// histograms bin on log10 of the value; their edges are reported back
// in the original unit.
type Histogram struct {
	Field string         `json:"field"`
	Log   bool           `json:"log,omitempty"`
	Bins  []HistogramBin `json:"bins"`
}

// PriceHistogram bins the non-missing prices on a log10 domain, the way
// the price chart draws its x axis. Non-positive prices cannot be
// log-scaled and are left out. bins <= 0 selects the default.
func PriceHistogram(records []wine.Record, bins int) (Histogram, error) {
	if bins <= 0 {
		bins = DefaultPriceBins
	}

	var logs []float64
	for _, r := range records {
		if r.PriceUSD != nil && *r.PriceUSD > 0 {
			logs = append(logs, math.Log10(*r.PriceUSD))
		}
	}
	if len(logs) == 0 {
		return Histogram{}, ErrEmptyInput
	}

	h := Histogram{Field: wine.ColPrice, Log: true, Bins: binValues(logs, bins)}
	for i := range h.Bins {
		h.Bins[i].Lo = math.Pow(10, h.Bins[i].Lo)
		h.Bins[i].Hi = math.Pow(10, h.Bins[i].Hi)
	}
	return h, nil
}

// RatingHistogram bins the non-missing ratings linearly. bins <= 0
// selects the default.
func RatingHistogram(records []wine.Record, bins int) (Histogram, error) {
	if bins <= 0 {
		bins = DefaultRatingBins
	}

	var values []float64
	for _, r := range records {
		if r.Rating != nil {
			values = append(values, float64(*r.Rating))
		}
	}
	if len(values) == 0 {
		return Histogram{}, ErrEmptyInput
	}
	return Histogram{Field: wine.ColRating, Bins: binValues(values, bins)}, nil
}

// binValues spreads values across equal-width bins over the observed
// span. A degenerate span collapses to a single bin holding everything.
func binValues(values []float64, bins int) []HistogramBin {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		return []HistogramBin{{Lo: lo, Hi: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	// Pin the last edge to the true maximum so float drift cannot leave
	// it outside.
	out[bins-1].Hi = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
