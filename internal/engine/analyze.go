package engine

import (
	"errors"

	"winelens/internal/wine"
)

// FilteredResult bundles everything one constraint evaluation produces.
// Ranking, box and geographic views read the full catalog so the
// market context stays stable while filtering; distribution views and
// the matched rows come from the filtered subsequence. Recomputed
// whole on every call, nothing is cached.
type FilteredResult struct {
	Constraint  Constraint    `json:"constraint"`
	TotalRows   int           `json:"total_rows"`
	MatchedRows int           `json:"matched_rows"`
	Records     []wine.Record `json:"-"`

	TopByCount    []CountryCount    `json:"top_by_count"`
	TopByAvgPrice []CountryAvgPrice `json:"top_by_avg_price"`
	GeoMeanPrice  []CountryAvgPrice `json:"geo_mean_price"`
	RatingBoxes   []RatingBox       `json:"rating_boxes,omitempty"`

	PriceStats *Summary       `json:"price_stats,omitempty"`
	PriceHist  *Histogram     `json:"price_hist,omitempty"`
	RatingHist *Histogram     `json:"rating_hist,omitempty"`
	Scatter    []ScatterPoint `json:"scatter,omitempty"`
}

// Analyze runs the whole pipeline for one constraint. A subset with no
// matching rows leaves the distribution fields nil; that is the
// regular "no data to display" state, not an error.
func Analyze(ds *wine.Dataset, c Constraint) (*FilteredResult, error) {
	if ds == nil || len(ds.Records) == 0 {
		return nil, wine.ErrEmptyDataset
	}

	matched, err := Filter(ds.Records, c)
	if err != nil {
		return nil, err
	}

	res := &FilteredResult{
		Constraint:  c,
		TotalRows:   len(ds.Records),
		MatchedRows: len(matched),
		Records:     matched,

		TopByCount:    TopCountriesByCount(ds.Records, DefaultTopCountries),
		TopByAvgPrice: TopCountriesByAvgPrice(ds.Records, DefaultTopCountries),
		GeoMeanPrice:  CountryMeanPrice(ds.Records),
		RatingBoxes:   RatingBoxesByCountry(ds.Records, DefaultTopCountries),
		Scatter:       ScatterPoints(matched),
	}

	if stats, err := PriceSummary(matched, nil); err == nil {
		res.PriceStats = &stats
	} else if !errors.Is(err, ErrEmptyInput) {
		return nil, err
	}
	if hist, err := PriceHistogram(matched, 0); err == nil {
		res.PriceHist = &hist
	} else if !errors.Is(err, ErrEmptyInput) {
		return nil, err
	}
	if hist, err := RatingHistogram(matched, 0); err == nil {
		res.RatingHist = &hist
	} else if !errors.Is(err, ErrEmptyInput) {
		return nil, err
	}

	return res, nil
}
