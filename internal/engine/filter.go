package engine

import (
	"slices"
	"strings"

	"winelens/internal/wine"
)

// AvailableCountries returns the distinct non-missing countries, sorted
// ascending.
func AvailableCountries(records []wine.Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		if r.Country != "" {
			seen[r.Country] = true
		}
	}
	return sortedKeys(seen)
}

// AvailableRegions returns the distinct non-missing regions of rows
// whose country is selected, sorted ascending.
func AvailableRegions(records []wine.Record, countries []string) []string {
	inCountry := toSet(countries)
	seen := make(map[string]bool)
	for _, r := range records {
		if r.Region != "" && inCountry[r.Country] {
			seen[r.Region] = true
		}
	}
	return sortedKeys(seen)
}

// AvailableGrapes returns the distinct non-missing grapes of rows whose
// country and region are both selected, sorted ascending.
func AvailableGrapes(records []wine.Record, countries, regions []string) []string {
	inCountry := toSet(countries)
	inRegion := toSet(regions)
	seen := make(map[string]bool)
	for _, r := range records {
		if r.Grape != "" && inCountry[r.Country] && inRegion[r.Region] {
			seen[r.Grape] = true
		}
	}
	return sortedKeys(seen)
}

// Filter returns the subsequence of records matching the constraint, in
// input order. The focus shortcut replaces the categorical selection
// but keeps the numeric bounds. Rows missing a price or rating fail the
// bound checks and never match.
func Filter(records []wine.Record, c Constraint) ([]wine.Record, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	countries := toSet(c.Countries)
	regions := toSet(c.Regions)
	grapes := toSet(c.Grapes)

	var out []wine.Record
	for _, r := range records {
		if !withinBounds(r, c) {
			continue
		}
		if c.Focus {
			if matchesFocus(r) {
				out = append(out, r)
			}
			continue
		}
		if countries[r.Country] && regions[r.Region] && grapes[r.Grape] {
			out = append(out, r)
		}
	}
	return out, nil
}

func withinBounds(r wine.Record, c Constraint) bool {
	if r.PriceUSD == nil || *r.PriceUSD < c.PriceMin || *r.PriceUSD > c.PriceMax {
		return false
	}
	if r.Rating == nil || *r.Rating < c.RatingMin || *r.Rating > c.RatingMax {
		return false
	}
	return true
}

// matchesFocus checks the drill-down: exact country, substring matches
// on region and grape, all case-insensitive where the dashboard was.
func matchesFocus(r wine.Record) bool {
	return r.Country == focusCountry &&
		strings.Contains(strings.ToLower(r.Region), focusRegionMatch) &&
		strings.Contains(strings.ToLower(r.Grape), focusGrapeMatch)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys(seen map[string]bool) []string {
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
