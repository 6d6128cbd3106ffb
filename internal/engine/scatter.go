package engine

import "winelens/internal/wine"

// ScatterPoint is one row of the price-vs-rating panel, keeping the
// categorical fields the chart shows on hover.
type ScatterPoint struct {
	Rating   int     `json:"rating"`
	PriceUSD float64 `json:"price_usd"`
	Country  string  `json:"country"`
	Region   string  `json:"region,omitempty"`
	Grape    string  `json:"grape,omitempty"`
}

// ScatterPoints extracts the rows carrying both a price and a rating,
// in row order.
func ScatterPoints(records []wine.Record) []ScatterPoint {
	var out []ScatterPoint
	for _, r := range records {
		if r.PriceUSD == nil || r.Rating == nil {
			continue
		}
		out = append(out, ScatterPoint{
			Rating:   *r.Rating,
			PriceUSD: *r.PriceUSD,
			Country:  r.Country,
			Region:   r.Region,
			Grape:    r.Grape,
		})
	}
	return out
}
