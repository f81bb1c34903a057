package demography

import "fmt"

// CompositionPart is one slice of a municipality's breakdown.
type CompositionPart struct {
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Composition breaks one municipality and year down by indicator. Total is
// the sum of the parts and forms the root of a sunburst chart.
type Composition struct {
	Location string            `json:"location"`
	Year     string            `json:"year"`
	Total    float64           `json:"total"`
	Parts    []CompositionPart `json:"parts"`
}

func Compose(c *Catalog, location, year string, labels []string) (*Composition, error) {
	comp := &Composition{Location: location, Year: year}
	for _, label := range labels {
		ind, err := c.Get(label)
		if err != nil {
			return nil, err
		}
		vals, err := LocationValues(ind.Table, location, []string{year})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		comp.Parts = append(comp.Parts, CompositionPart{Label: ind.Label, Color: ind.Color, Value: vals[0]})
		comp.Total += vals[0]
	}
	for i := range comp.Parts {
		comp.Parts[i].Percent = Percent(comp.Parts[i].Value, comp.Total)
	}
	return comp, nil
}
