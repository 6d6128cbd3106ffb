package commands

import (
	"fmt"
	"os"

	"winelens/internal/engine"
	"winelens/internal/wine"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// filterFlags is the filter surface shared by report and export.
// Selections left untouched expand to every available option, like the
// dashboard's select-all widget defaults; explicitly passed empty
// values match nothing.
type filterFlags struct {
	countries []string
	regions   []string
	grapes    []string
	priceMin  float64
	priceMax  float64
	ratingMin int
	ratingMax int
	focus     bool
	file      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.countries, "country", nil, "countries to include (repeatable)")
	cmd.Flags().StringSliceVar(&f.regions, "region", nil, "regions to include (repeatable)")
	cmd.Flags().StringSliceVar(&f.grapes, "grape", nil, "grapes to include (repeatable)")
	cmd.Flags().Float64Var(&f.priceMin, "price-min", 0, "inclusive lower price bound (USD)")
	cmd.Flags().Float64Var(&f.priceMax, "price-max", 0, "inclusive upper price bound (USD, default: catalog maximum)")
	cmd.Flags().IntVar(&f.ratingMin, "rating-min", 0, "inclusive lower rating bound (default: catalog minimum)")
	cmd.Flags().IntVar(&f.ratingMax, "rating-max", 0, "inclusive upper rating bound (default: catalog maximum)")
	cmd.Flags().BoolVar(&f.focus, "focus", false, "France/Burgundy/Pinot Noir drill-down (bounds still apply)")
	cmd.Flags().StringVar(&f.file, "filter", "", "load the constraint from a YAML file instead of flags")
}

// constraint resolves the flags against the catalog defaults. A YAML
// file replaces the flag surface entirely; keys absent from the file
// keep their default.
func (f *filterFlags) constraint(cmd *cobra.Command, records []wine.Record) (engine.Constraint, error) {
	if f.file != "" {
		c := engine.DefaultConstraint(records)
		data, err := os.ReadFile(f.file)
		if err != nil {
			return engine.Constraint{}, fmt.Errorf("read filter file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return engine.Constraint{}, fmt.Errorf("parse filter file: %w", err)
		}
		return c, nil
	}

	o := engine.Overrides{Focus: f.focus}
	if cmd.Flags().Changed("country") {
		o.Countries = f.countries
	}
	if cmd.Flags().Changed("region") {
		o.Regions = f.regions
	}
	if cmd.Flags().Changed("grape") {
		o.Grapes = f.grapes
	}
	if cmd.Flags().Changed("price-min") {
		o.PriceMin = &f.priceMin
	}
	if cmd.Flags().Changed("price-max") {
		o.PriceMax = &f.priceMax
	}
	if cmd.Flags().Changed("rating-min") {
		o.RatingMin = &f.ratingMin
	}
	if cmd.Flags().Changed("rating-max") {
		o.RatingMax = &f.ratingMax
	}
	return engine.ResolveConstraint(records, o), nil
}
