package engine

import (
	"math"

	"winelens/internal/wine"
)

// rec builds a test row; a negative price or rating marks the value
// missing.
func rec(country, region, grape string, price float64, rating int) wine.Record {
	r := wine.Record{Country: country, Region: region, Grape: grape}
	if price >= 0 {
		r.PriceUSD = &price
	}
	if rating >= 0 {
		r.Rating = &rating
	}
	return r
}

// testRecords is the shared mini catalog: three countries, one row with
// a missing price, one with a missing country.
func testRecords() []wine.Record {
	return []wine.Record{
		rec("France", "Burgundy", "Pinot Noir", 100, 95),
		rec("France", "Burgundy", "Chardonnay", 80, 90),
		rec("France", "Bordeaux", "Merlot", 60, 88),
		rec("Italy", "Tuscany", "Sangiovese", 40, 92),
		rec("Italy", "Tuscany", "Sangiovese", 20, 86),
		rec("Italy", "Piedmont", "Nebbiolo", 30, 94),
		rec("Spain", "Rioja", "Tempranillo", 10, 84),
		rec("Spain", "Rioja", "Tempranillo", -1, 80),
		rec("", "Mosel", "Riesling", 15, 89),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
