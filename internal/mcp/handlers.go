package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"winelens/internal/engine"
	"winelens/internal/export"
	"winelens/internal/wine"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// filterInput is the shared filter surface of the tools. Omitted
// selections expand to every available option the way untouched sidebar
// widgets do; an explicitly empty list matches nothing. Omitted bounds
// default to the catalog extremes (price from zero).
type filterInput struct {
	Countries []string `json:"countries,omitempty" jsonschema:"country selection; omit for all, empty for none"`
	Regions   []string `json:"regions,omitempty" jsonschema:"region selection; omit to cascade from countries"`
	Grapes    []string `json:"grapes,omitempty" jsonschema:"grape selection; omit to cascade from countries and regions"`
	PriceMin  *float64 `json:"price_min,omitempty" jsonschema:"inclusive lower price bound in USD"`
	PriceMax  *float64 `json:"price_max,omitempty" jsonschema:"inclusive upper price bound in USD"`
	RatingMin *int     `json:"rating_min,omitempty" jsonschema:"inclusive lower rating bound"`
	RatingMax *int     `json:"rating_max,omitempty" jsonschema:"inclusive upper rating bound"`
	Focus     bool     `json:"focus,omitempty" jsonschema:"France/Burgundy/Pinot Noir drill-down; numeric bounds still apply"`
}

func (in filterInput) constraint(records []wine.Record) engine.Constraint {
	return engine.ResolveConstraint(records, engine.Overrides{
		Countries: in.Countries,
		Regions:   in.Regions,
		Grapes:    in.Grapes,
		PriceMin:  in.PriceMin,
		PriceMax:  in.PriceMax,
		RatingMin: in.RatingMin,
		RatingMax: in.RatingMax,
		Focus:     in.Focus,
	})
}

func (s *Server) filtered(in filterInput) ([]wine.Record, error) {
	if len(s.ds.Records) == 0 {
		return nil, wine.ErrEmptyDataset
	}
	return engine.Filter(s.ds.Records, in.constraint(s.ds.Records))
}

// --- describe_dataset ---

type describeInput struct{}

type describeOutput struct {
	Rows      int      `json:"rows"`
	Columns   []string `json:"columns"`
	Countries int      `json:"countries"`
	Regions   int      `json:"regions"`
	Grapes    int      `json:"grapes"`
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
	RatingMin *int     `json:"rating_min,omitempty"`
	RatingMax *int     `json:"rating_max,omitempty"`
}

func (s *Server) handleDescribeDataset(ctx context.Context, _ *sdkmcp.CallToolRequest, _ describeInput) (*sdkmcp.CallToolResult, describeOutput, error) {
	records := s.ds.Records
	countries := engine.AvailableCountries(records)

	out := describeOutput{
		Rows:      len(records),
		Columns:   s.ds.Columns,
		Countries: len(countries),
		Regions:   len(engine.AvailableRegions(records, countries)),
	}
	out.Grapes = len(engine.AvailableGrapes(records, countries,
		engine.AvailableRegions(records, countries)))

	if lo, hi, ok := engine.PriceBounds(records); ok {
		out.PriceMin, out.PriceMax = &lo, &hi
	}
	if lo, hi, ok := engine.RatingBounds(records); ok {
		out.RatingMin, out.RatingMax = &lo, &hi
	}
	return nil, out, nil
}

// --- list_options ---

type listOptionsInput struct {
	Countries []string `json:"countries,omitempty" jsonschema:"selected countries; omit for all"`
	Regions   []string `json:"regions,omitempty" jsonschema:"selected regions; omit to cascade from countries"`
}

type listOptionsOutput struct {
	Countries []string `json:"countries"`
	Regions   []string `json:"regions"`
	Grapes    []string `json:"grapes"`
}

func (s *Server) handleListOptions(ctx context.Context, _ *sdkmcp.CallToolRequest, in listOptionsInput) (*sdkmcp.CallToolResult, listOptionsOutput, error) {
	records := s.ds.Records

	out := listOptionsOutput{Countries: engine.AvailableCountries(records)}

	countries := in.Countries
	if countries == nil {
		countries = out.Countries
	}
	out.Regions = engine.AvailableRegions(records, countries)

	regions := in.Regions
	if regions == nil {
		regions = out.Regions
	}
	out.Grapes = engine.AvailableGrapes(records, countries, regions)

	return nil, out, nil
}

// --- filter_wines ---

type filterWinesInput struct {
	filterInput
	Preview int `json:"preview,omitempty" jsonschema:"maximum preview rows to return (default 10, max 100)"`
}

type filterWinesOutput struct {
	Total   int           `json:"total"`
	Matched int           `json:"matched"`
	Preview []wine.Record `json:"preview,omitempty"`
}

func (s *Server) handleFilterWines(ctx context.Context, _ *sdkmcp.CallToolRequest, in filterWinesInput) (*sdkmcp.CallToolResult, filterWinesOutput, error) {
	matched, err := s.filtered(in.filterInput)
	if err != nil {
		return nil, filterWinesOutput{}, err
	}

	limit := in.Preview
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if limit > len(matched) {
		limit = len(matched)
	}

	return nil, filterWinesOutput{
		Total:   len(s.ds.Records),
		Matched: len(matched),
		Preview: matched[:limit],
	}, nil
}

// --- rank_countries ---

type rankCountriesInput struct {
	By  string `json:"by"`
	Top int    `json:"top,omitempty"`
}

type rankCountriesOutput struct {
	By      string                   `json:"by"`
	ByCount []engine.CountryCount    `json:"by_count,omitempty"`
	ByAvg   []engine.CountryAvgPrice `json:"by_avg_price,omitempty"`
}

func (s *Server) handleRankCountries(ctx context.Context, _ *sdkmcp.CallToolRequest, in rankCountriesInput) (*sdkmcp.CallToolResult, rankCountriesOutput, error) {
	top := in.Top
	if top <= 0 {
		top = s.cfg.TopCountries
	}

	out := rankCountriesOutput{By: in.By}
	switch in.By {
	case "count":
		out.ByCount = engine.TopCountriesByCount(s.ds.Records, top)
	case "avg_price":
		out.ByAvg = engine.TopCountriesByAvgPrice(s.ds.Records, top)
	default:
		return nil, rankCountriesOutput{}, fmt.Errorf("unknown ranking key %q (want count or avg_price)", in.By)
	}
	return nil, out, nil
}

// --- price_summary ---

type priceSummaryInput struct {
	filterInput
	Percentiles []float64 `json:"percentiles,omitempty" jsonschema:"percentile ranks in [0,1]; default 0.25, 0.5, 0.75, 0.9"`
}

type priceSummaryOutput struct {
	Matched int             `json:"matched"`
	Summary *engine.Summary `json:"summary,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (s *Server) handlePriceSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, in priceSummaryInput) (*sdkmcp.CallToolResult, priceSummaryOutput, error) {
	matched, err := s.filtered(in.filterInput)
	if err != nil {
		return nil, priceSummaryOutput{}, err
	}

	out := priceSummaryOutput{Matched: len(matched)}
	summary, err := engine.PriceSummary(matched, in.Percentiles)
	switch {
	case err == nil:
		out.Summary = &summary
	case errors.Is(err, engine.ErrEmptyInput):
		out.Message = "no priced rows match the filter"
	default:
		return nil, priceSummaryOutput{}, err
	}
	return nil, out, nil
}

// --- distribution ---

type distributionInput struct {
	filterInput
	Field string `json:"field" jsonschema:"histogram field: price or rating"`
	Bins  int    `json:"bins,omitempty" jsonschema:"bin count; default 50 for price, 20 for rating"`
}

type distributionOutput struct {
	Matched   int               `json:"matched"`
	Histogram *engine.Histogram `json:"histogram,omitempty"`
	Message   string            `json:"message,omitempty"`
}

func (s *Server) handleDistribution(ctx context.Context, _ *sdkmcp.CallToolRequest, in distributionInput) (*sdkmcp.CallToolResult, distributionOutput, error) {
	matched, err := s.filtered(in.filterInput)
	if err != nil {
		return nil, distributionOutput{}, err
	}

	var hist engine.Histogram
	switch in.Field {
	case "price":
		hist, err = engine.PriceHistogram(matched, in.Bins)
	case "rating":
		hist, err = engine.RatingHistogram(matched, in.Bins)
	default:
		return nil, distributionOutput{}, fmt.Errorf("unknown histogram field %q (want price or rating)", in.Field)
	}

	out := distributionOutput{Matched: len(matched)}
	switch {
	case err == nil:
		out.Histogram = &hist
	case errors.Is(err, engine.ErrEmptyInput):
		out.Message = fmt.Sprintf("no %s values match the filter", in.Field)
	default:
		return nil, distributionOutput{}, err
	}
	return nil, out, nil
}

// --- rating_boxes ---

type ratingBoxesInput struct {
	Top int `json:"top,omitempty" jsonschema:"number of countries, ranked by record count (default 10)"`
}

type ratingBoxesOutput struct {
	Boxes []engine.RatingBox `json:"boxes"`
}

func (s *Server) handleRatingBoxes(ctx context.Context, _ *sdkmcp.CallToolRequest, in ratingBoxesInput) (*sdkmcp.CallToolResult, ratingBoxesOutput, error) {
	top := in.Top
	if top <= 0 {
		top = s.cfg.TopCountries
	}
	return nil, ratingBoxesOutput{Boxes: engine.RatingBoxesByCountry(s.ds.Records, top)}, nil
}

// --- map_country_prices ---

type mapInput struct{}

type mapOutput struct {
	Entries []engine.CountryAvgPrice `json:"entries"`
}

func (s *Server) handleMapCountryPrices(ctx context.Context, _ *sdkmcp.CallToolRequest, _ mapInput) (*sdkmcp.CallToolResult, mapOutput, error) {
	return nil, mapOutput{Entries: engine.CountryMeanPrice(s.ds.Records)}, nil
}

// --- export_filtered ---

type exportInput struct {
	filterInput
	Name string `json:"name,omitempty" jsonschema:"file name under the export directory; .zip wraps the CSV in an archive (default filtered_wines.csv)"`
}

type exportOutput struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

func (s *Server) handleExportFiltered(ctx context.Context, _ *sdkmcp.CallToolRequest, in exportInput) (*sdkmcp.CallToolResult, exportOutput, error) {
	matched, err := s.filtered(in.filterInput)
	if err != nil {
		return nil, exportOutput{}, err
	}

	name := in.Name
	if name == "" {
		name = export.DefaultCSVName
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cfg.ExportDir, name)
	}

	if err := export.ExportFile(path, s.ds, matched); err != nil {
		return nil, exportOutput{}, err
	}
	return nil, exportOutput{Path: path, Rows: len(matched)}, nil
}
