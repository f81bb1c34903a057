package demography

import (
	"fmt"

	"github.com/samber/lo"
)

// Indicator is a labelled table with its display color.
type Indicator struct {
	Label     string `json:"label"`
	Color     string `json:"color"`
	Kind      string `json:"kind"`
	File      string `json:"file"`
	Reference bool   `json:"reference"`
	Table     *Table `json:"-"`
}

// Catalog is the ordered set of loaded indicators. Exactly one of them is
// the reference used as denominator for shares.
type Catalog struct {
	indicators []Indicator
	byLabel    map[string]int
	ref        int
}

func NewCatalog(indicators []Indicator) (*Catalog, error) {
	c := &Catalog{
		indicators: append([]Indicator(nil), indicators...),
		byLabel:    make(map[string]int, len(indicators)),
		ref:        -1,
	}
	for i, ind := range c.indicators {
		if ind.Table == nil {
			return nil, fmt.Errorf("indicator %q has no table", ind.Label)
		}
		if _, dup := c.byLabel[ind.Label]; dup {
			return nil, fmt.Errorf("indicator %q declared twice", ind.Label)
		}
		c.byLabel[ind.Label] = i
		if ind.Reference {
			if c.ref >= 0 {
				return nil, fmt.Errorf("indicators %q and %q are both marked as reference", c.indicators[c.ref].Label, ind.Label)
			}
			c.ref = i
		}
	}
	if c.ref < 0 {
		return nil, ErrNoReference
	}
	return c, nil
}

// Indicators returns the indicators in declaration order.
func (c *Catalog) Indicators() []Indicator {
	return append([]Indicator(nil), c.indicators...)
}

func (c *Catalog) Labels() []string {
	return lo.Map(c.indicators, func(ind Indicator, _ int) string { return ind.Label })
}

// Get looks an indicator up by label.
func (c *Catalog) Get(label string) (Indicator, error) {
	i, ok := c.byLabel[label]
	if !ok {
		return Indicator{}, fmt.Errorf("%w: %q", ErrUnknownIndicator, label)
	}
	return c.indicators[i], nil
}

func (c *Catalog) Reference() Indicator {
	return c.indicators[c.ref]
}

// ByKind filters indicators by kind, keeping declaration order.
func (c *Catalog) ByKind(kind string) []Indicator {
	return lo.Filter(c.indicators, func(ind Indicator, _ int) bool { return ind.Kind == kind })
}

// Locations lists the municipalities of the first indicator, as the
// location selector offers them.
func (c *Catalog) Locations() []string {
	if len(c.indicators) == 0 {
		return nil
	}
	return lo.Uniq(c.indicators[0].Table.Names())
}
