package engine

import (
	"winelens/internal/wine"
)

// Focus shortcut predicate, the dashboard's one-click drill-down.
const (
	focusCountry     = "France"
	focusRegionMatch = "burgundy"
	focusGrapeMatch  = "pinot noir"
)

// Constraint captures one complete filter selection. Selection slices
// are exact-match sets and an empty set matches no rows; shells that
// want the usual select-all behavior expand the sets first (see
// DefaultConstraint and ResolveConstraint). Numeric bounds are
// inclusive and always apply, focus mode included.
type Constraint struct {
	Countries []string `json:"countries" yaml:"countries"`
	Regions   []string `json:"regions" yaml:"regions"`
	Grapes    []string `json:"grapes" yaml:"grapes"`
	PriceMin  float64  `json:"price_min" yaml:"price_min"`
	PriceMax  float64  `json:"price_max" yaml:"price_max"`
	RatingMin int      `json:"rating_min" yaml:"rating_min"`
	RatingMax int      `json:"rating_max" yaml:"rating_max"`
	Focus     bool     `json:"focus,omitempty" yaml:"focus,omitempty"`
}

// Validate rejects inverted numeric ranges.
func (c Constraint) Validate() error {
	if c.PriceMin > c.PriceMax {
		return &RangeError{Field: "price", Min: c.PriceMin, Max: c.PriceMax}
	}
	if c.RatingMin > c.RatingMax {
		return &RangeError{Field: "rating", Min: float64(c.RatingMin), Max: float64(c.RatingMax)}
	}
	return nil
}

// DefaultConstraint mirrors the dashboard's untouched widgets: every
// option selected, prices from zero to the catalog maximum, ratings
// spanning the catalog extremes.
func DefaultConstraint(records []wine.Record) Constraint {
	c := Constraint{Countries: AvailableCountries(records)}
	c.Regions = AvailableRegions(records, c.Countries)
	c.Grapes = AvailableGrapes(records, c.Countries, c.Regions)

	if _, max, ok := PriceBounds(records); ok {
		c.PriceMax = max
	}
	if min, max, ok := RatingBounds(records); ok {
		c.RatingMin = min
		c.RatingMax = max
	}
	return c
}

// Overrides carries the explicitly chosen parts of a constraint. Nil
// fields fall back to the defaults; a non-nil empty selection stays
// empty and matches nothing.
type Overrides struct {
	Countries []string
	Regions   []string
	Grapes    []string
	PriceMin  *float64
	PriceMax  *float64
	RatingMin *int
	RatingMax *int
	Focus     bool
}

// ResolveConstraint merges overrides onto the defaults. Downstream
// selections left implicit recascade under an explicit upstream choice,
// the way the sidebar widgets repopulate: picking countries narrows the
// default regions and grapes to those countries.
func ResolveConstraint(records []wine.Record, o Overrides) Constraint {
	c := DefaultConstraint(records)

	if o.Countries != nil {
		c.Countries = o.Countries
	}
	if o.Regions != nil {
		c.Regions = o.Regions
	} else if o.Countries != nil {
		c.Regions = AvailableRegions(records, c.Countries)
	}
	if o.Grapes != nil {
		c.Grapes = o.Grapes
	} else if o.Countries != nil || o.Regions != nil {
		c.Grapes = AvailableGrapes(records, c.Countries, c.Regions)
	}

	if o.PriceMin != nil {
		c.PriceMin = *o.PriceMin
	}
	if o.PriceMax != nil {
		c.PriceMax = *o.PriceMax
	}
	if o.RatingMin != nil {
		c.RatingMin = *o.RatingMin
	}
	if o.RatingMax != nil {
		c.RatingMax = *o.RatingMax
	}
	c.Focus = o.Focus
	return c
}
