package report

import (
	"errors"
	"fmt"
	"io"

	"winelens/internal/engine"
	"winelens/internal/wine"

	"golang.org/x/sync/errgroup"
)

// Options tune how much a report shows.
type Options struct {
	// Top is the ranking depth for the country views; <= 0 selects the
	// engine default.
	Top int
	// Percentiles are the summary ranks; nil selects the engine default.
	Percentiles []float64
}

// Report is the four-tab view of the catalog under one constraint,
// mirroring the dashboard layout: market overview, price and rating
// distributions, the price-vs-rating scatter, and the geographic
// aggregate.
type Report struct {
	TotalRows   int `json:"total_rows"`
	MatchedRows int `json:"matched_rows"`

	Overview  OverviewTab `json:"overview"`
	Prices    PricesTab   `json:"prices"`
	Scatter   ScatterTab  `json:"scatter"`
	Geography GeoTab      `json:"geography"`
}

// OverviewTab ranks countries over the full catalog, so the market
// context stays stable while filtering.
type OverviewTab struct {
	TopByCount    []engine.CountryCount    `json:"top_by_count"`
	TopByAvgPrice []engine.CountryAvgPrice `json:"top_by_avg_price"`
}

// PricesTab describes the filtered subset; rating boxes come from the
// full catalog like the overview rankings.
type PricesTab struct {
	Summary     *engine.Summary    `json:"summary,omitempty"`
	PriceHist   *engine.Histogram  `json:"price_hist,omitempty"`
	RatingHist  *engine.Histogram  `json:"rating_hist,omitempty"`
	RatingBoxes []engine.RatingBox `json:"rating_boxes,omitempty"`
}

type ScatterTab struct {
	Points []engine.ScatterPoint `json:"points,omitempty"`
}

type GeoTab struct {
	MeanPrice []engine.CountryAvgPrice `json:"mean_price"`
}

// Build filters once, then assembles the four tabs concurrently. Every
// tab only calls pure engine functions over immutable data, so the
// fan-out needs no locking.
func Build(ds *wine.Dataset, c engine.Constraint, opts Options) (*Report, error) {
	if ds == nil || len(ds.Records) == 0 {
		return nil, wine.ErrEmptyDataset
	}
	top := opts.Top
	if top <= 0 {
		top = engine.DefaultTopCountries
	}

	matched, err := engine.Filter(ds.Records, c)
	if err != nil {
		return nil, err
	}

	r := &Report{TotalRows: len(ds.Records), MatchedRows: len(matched)}

	var g errgroup.Group
	g.Go(func() error {
		r.Overview = OverviewTab{
			TopByCount:    engine.TopCountriesByCount(ds.Records, top),
			TopByAvgPrice: engine.TopCountriesByAvgPrice(ds.Records, top),
		}
		return nil
	})
	g.Go(func() error {
		tab := PricesTab{RatingBoxes: engine.RatingBoxesByCountry(ds.Records, top)}
		if s, err := engine.PriceSummary(matched, opts.Percentiles); err == nil {
			tab.Summary = &s
		} else if !errors.Is(err, engine.ErrEmptyInput) {
			return err
		}
		if h, err := engine.PriceHistogram(matched, 0); err == nil {
			tab.PriceHist = &h
		} else if !errors.Is(err, engine.ErrEmptyInput) {
			return err
		}
		if h, err := engine.RatingHistogram(matched, 0); err == nil {
			tab.RatingHist = &h
		} else if !errors.Is(err, engine.ErrEmptyInput) {
			return err
		}
		r.Prices = tab
		return nil
	})
	g.Go(func() error {
		r.Scatter = ScatterTab{Points: engine.ScatterPoints(matched)}
		return nil
	})
	g.Go(func() error {
		r.Geography = GeoTab{MeanPrice: engine.CountryMeanPrice(ds.Records)}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// Render writes the plain-text form of a report. All display rounding
// happens here; the underlying values stay exact.
func Render(w io.Writer, r *Report) {
	fmt.Fprintln(w, "Wine market report")
	fmt.Fprintf(w, "Rows matching filter: %d of %d\n", r.MatchedRows, r.TotalRows)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "== Overview ==")
	fmt.Fprintln(w, "Top countries by records:")
	for _, e := range r.Overview.TopByCount {
		fmt.Fprintf(w, "  %s: %d\n", e.Country, e.Count)
	}
	fmt.Fprintln(w, "Top countries by average price:")
	for _, e := range r.Overview.TopByAvgPrice {
		fmt.Fprintf(w, "  %s: $%.2f\n", e.Country, e.AvgPrice)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "== Prices & ratings ==")
	if s := r.Prices.Summary; s != nil {
		fmt.Fprintf(w, "Price summary: count %d, mean $%.2f, std $%.2f, min $%.2f, max $%.2f\n",
			s.Count, s.Mean, s.Std, s.Min, s.Max)
		for _, p := range s.Percentiles {
			fmt.Fprintf(w, "  p%.0f: $%.2f\n", p.Rank*100, p.Value)
		}
	} else {
		fmt.Fprintln(w, "No priced rows match the filter.")
	}
	if h := r.Prices.PriceHist; h != nil && len(h.Bins) > 0 {
		fmt.Fprintf(w, "Price histogram: %d values in %d bins, $%.2f to $%.2f (log x)\n",
			binTotal(h), len(h.Bins), h.Bins[0].Lo, h.Bins[len(h.Bins)-1].Hi)
	}
	if h := r.Prices.RatingHist; h != nil && len(h.Bins) > 0 {
		fmt.Fprintf(w, "Rating histogram: %d values in %d bins, %.0f to %.0f\n",
			binTotal(h), len(h.Bins), h.Bins[0].Lo, h.Bins[len(h.Bins)-1].Hi)
	}
	if len(r.Prices.RatingBoxes) > 0 {
		fmt.Fprintln(w, "Rating boxes (top countries):")
		for _, b := range r.Prices.RatingBoxes {
			fmt.Fprintf(w, "  %s: n=%d whiskers %d..%d q1 %.2f median %.2f q3 %.2f",
				b.Country, b.Count, b.Low, b.High, b.Q1, b.Median, b.Q3)
			if len(b.Outliers) > 0 {
				fmt.Fprintf(w, " outliers %v", b.Outliers)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "== Scatter ==")
	fmt.Fprintf(w, "Price vs rating points: %d\n", len(r.Scatter.Points))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "== Geography ==")
	fmt.Fprintln(w, "Country mean price:")
	for _, e := range r.Geography.MeanPrice {
		fmt.Fprintf(w, "  %s: $%.2f\n", e.Country, e.AvgPrice)
	}
}

func binTotal(h *engine.Histogram) int {
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	return total
}
