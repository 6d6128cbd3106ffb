package wine

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyDataset is returned when a source contains no data rows.
var ErrEmptyDataset = errors.New("dataset contains no records")

// Canonical column headers. Matching is case-insensitive; Dataset.Columns
// keeps the spelling the source used.
const (
	ColCountry = "Country"
	ColRegion  = "Region"
	ColGrape   = "Grape"
	ColPrice   = "Price_USD"
	ColRating  = "Rating"
)

// indexColumn is the residual pandas index header dropped on load.
const indexColumn = "unnamed: 0"

// Record is a single catalog row. Missing values stay nil (numeric) or
// empty (categorical); they are never coerced to zero.
type Record struct {
	Country  string            `json:"country"`
	Region   string            `json:"region,omitempty"`
	Grape    string            `json:"grape,omitempty"`
	PriceUSD *float64          `json:"price_usd,omitempty"`
	Rating   *int              `json:"rating,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// HasPrice reports whether the row carries a price.
func (r Record) HasPrice() bool { return r.PriceUSD != nil }

// HasRating reports whether the row carries a rating.
func (r Record) HasRating() bool { return r.Rating != nil }

// Cell renders the named column the way the exporter writes it. Prices
// use the shortest round-trippable decimal form, so a written file loads
// back to identical values. Missing cells render empty.
func (r Record) Cell(column string) string {
	switch NormalizeColumn(column) {
	case "country":
		return r.Country
	case "region":
		return r.Region
	case "grape":
		return r.Grape
	case "price_usd":
		if r.PriceUSD == nil {
			return ""
		}
		return strconv.FormatFloat(*r.PriceUSD, 'f', -1, 64)
	case "rating":
		if r.Rating == nil {
			return ""
		}
		return strconv.Itoa(*r.Rating)
	default:
		return r.Extra[column]
	}
}

// NormalizeColumn lowercases and trims a header for canonical matching.
func NormalizeColumn(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Dataset is the in-memory catalog: the source column order (index
// column removed) plus all rows. It is loaded once and never mutated.
type Dataset struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}
