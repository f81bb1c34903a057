package demography

import "fmt"

// Point is one year of a series.
type Point struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Series is the per-year line of one indicator for one municipality.
type Series struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// LocationValues reads one municipality's values for the given years.
// Cells that do not parse as numbers count as 0.
func LocationValues(t *Table, location string, years []string) ([]float64, error) {
	row, err := t.Row(location)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(years))
	for i, y := range years {
		cell, err := t.Cell(row, y)
		if err != nil {
			return nil, err
		}
		out[i] = NumberOrZero(cell)
	}
	return out, nil
}

// TimeSeries returns one series per label for a municipality.
func TimeSeries(c *Catalog, location string, labels, years []string) ([]Series, error) {
	out := make([]Series, 0, len(labels))
	for _, label := range labels {
		ind, err := c.Get(label)
		if err != nil {
			return nil, err
		}
		vals, err := LocationValues(ind.Table, location, years)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		out = append(out, Series{Label: ind.Label, Color: ind.Color, Points: points(years, vals)})
	}
	return out, nil
}

func points(years []string, vals []float64) []Point {
	ps := make([]Point, len(years))
	for i := range years {
		ps[i] = Point{Year: years[i], Value: vals[i]}
	}
	return ps
}
