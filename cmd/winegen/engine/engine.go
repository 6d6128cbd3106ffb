package engine

import (
	"fmt"
	"math"
	"math/rand"

	"winelens/internal/wine"
)

type GeneratorConfig struct {
	Count       int
	Seed        int64
	MissingRate float64 // share of rows losing their price or rating
}

// catalogEntry anchors a country/region/grape combination to a typical
// bottle price the sampler scatters around.
type catalogEntry struct {
	Country string
	Region  string
	Grape   string
	Base    float64
}

var catalog = []catalogEntry{
	{"France", "Burgundy", "Pinot Noir", 90},
	{"France", "Burgundy", "Chardonnay", 70},
	{"France", "Bordeaux", "Merlot", 55},
	{"France", "Bordeaux", "Cabernet Sauvignon", 65},
	{"Italy", "Tuscany", "Sangiovese", 40},
	{"Italy", "Piedmont", "Nebbiolo", 60},
	{"Spain", "Rioja", "Tempranillo", 25},
	{"Spain", "Priorat", "Garnacha", 45},
	{"US", "Napa Valley", "Cabernet Sauvignon", 75},
	{"US", "Willamette Valley", "Pinot Noir", 50},
	{"Germany", "Mosel", "Riesling", 30},
	{"Argentina", "Mendoza", "Malbec", 20},
	{"Australia", "Barossa Valley", "Shiraz", 35},
	{"Chile", "Maipo Valley", "Carmenere", 18},
}

// Generate builds a synthetic catalog: log-normal prices around each
// entry's base, ratings on the 80-100 point scale, and a configurable
// share of missing numerics. The same seed always yields the same
// dataset.
func Generate(cfg GeneratorConfig) *wine.Dataset {
	rng := rand.New(rand.NewSource(cfg.Seed))

	ds := &wine.Dataset{
		Columns: []string{"Country", "Region", "Grape", "Winery", "Price_USD", "Rating"},
	}

	for i := 0; i < cfg.Count; i++ {
		entry := catalog[rng.Intn(len(catalog))]
		rec := wine.Record{
			Country: entry.Country,
			Region:  entry.Region,
			Grape:   entry.Grape,
			Extra: map[string]string{
				"Winery": fmt.Sprintf("%s Estate %d", entry.Region, rng.Intn(40)+1),
			},
		}

		if rng.Float64() >= cfg.MissingRate {
			// Log-normal scatter, rounded to cents, floored at $5.
			price := entry.Base * math.Exp(rng.NormFloat64()*0.5)
			price = math.Round(price*100) / 100
			if price < 5 {
				price = 5
			}
			rec.PriceUSD = &price
		}
		if rng.Float64() >= cfg.MissingRate {
			rating := 80 + rng.Intn(21)
			rec.Rating = &rating
		}

		ds.Records = append(ds.Records, rec)
	}
	return ds
}
