package engine

import (
	"cmp"
	"slices"
	"sort"

	"winelens/internal/wine"
)

// DefaultTopCountries is the ranking depth the dashboard charts use.
const DefaultTopCountries = 10

// CountryCount is one entry of the record-count ranking.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// CountryAvgPrice is one entry of the mean-price ranking and of the
// geographic aggregate.
type CountryAvgPrice struct {
	Country  string  `json:"country"`
	AvgPrice float64 `json:"avg_price"`
}

// TopCountriesByCount ranks countries by number of records, descending.
// Ties keep first-appearance order; rows with a missing country are
// skipped. k caps the result (k <= 0 means none, k past the distinct
// count means all).
func TopCountriesByCount(records []wine.Record, k int) []CountryCount {
	if k <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.Country == "" {
			continue
		}
		if _, ok := counts[r.Country]; !ok {
			order = append(order, r.Country)
		}
		counts[r.Country]++
	}

	ranked := make([]CountryCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, CountryCount{Country: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// TopCountriesByAvgPrice ranks countries by mean price over the rows
// that carry one, descending. Countries without a single priced row are
// absent, never reported as zero. Ties break by country name.
func TopCountriesByAvgPrice(records []wine.Record, k int) []CountryAvgPrice {
	if k <= 0 {
		return nil
	}

	means := countryMeans(records)
	ranked := make([]CountryAvgPrice, 0, len(means))
	for name, mean := range means {
		ranked = append(ranked, CountryAvgPrice{Country: name, AvgPrice: mean})
	}
	sort.Slice(ranked, func(i, j int) bool {
		// Primary: higher mean price
		if ranked[i].AvgPrice != ranked[j].AvgPrice {
			return ranked[i].AvgPrice > ranked[j].AvgPrice
		}
		// Secondary: alphabetical for determinism
		return ranked[i].Country < ranked[j].Country
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// CountryMeanPrice is the unranked geographic variant: every country
// with at least one priced row, sorted by name.
func CountryMeanPrice(records []wine.Record) []CountryAvgPrice {
	means := countryMeans(records)
	out := make([]CountryAvgPrice, 0, len(means))
	for name, mean := range means {
		out = append(out, CountryAvgPrice{Country: name, AvgPrice: mean})
	}
	slices.SortFunc(out, func(a, b CountryAvgPrice) int {
		return cmp.Compare(a.Country, b.Country)
	})
	return out
}

// countryMeans folds non-missing prices into per-country means. Means
// stay unrounded; display layers decide formatting.
func countryMeans(records []wine.Record) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.Country == "" || r.PriceUSD == nil {
			continue
		}
		sums[r.Country] += *r.PriceUSD
		counts[r.Country]++
	}

	means := make(map[string]float64, len(sums))
	for name, sum := range sums {
		means[name] = sum / float64(counts[name])
	}
	return means
}
