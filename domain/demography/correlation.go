package demography

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CorrelationPoint is one municipality on the scatter plot.
type CorrelationPoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Correlation is the Pearson coefficient between two indicators for one
// year, with a least-squares trend line y = Intercept + Slope*x.
// Dropped counts joined rows removed for a non-numeric value.
type Correlation struct {
	X         string             `json:"x"`
	Y         string             `json:"y"`
	Year      string             `json:"year"`
	R         float64            `json:"r"`
	Slope     float64            `json:"slope"`
	Intercept float64            `json:"intercept"`
	Points    []CorrelationPoint `json:"points"`
	Dropped   int                `json:"dropped"`
}

// Correlate inner-joins x and y on Name and correlates one year column.
// Points are ordered by Name, which keeps Correlate(a, b) and
// Correlate(b, a) bit-for-bit symmetric.
func Correlate(x, y *Table, year string) (*Correlation, error) {
	pairs, _, err := joinYear(x, y, year)
	if err != nil {
		return nil, err
	}
	if len(pairs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 joined rows, got %d", ErrInsufficientData, len(pairs))
	}
	res := &Correlation{Year: year}
	for _, p := range pairs {
		xv, okx := ParseNumber(p.left)
		yv, oky := ParseNumber(p.right)
		if !okx || !oky {
			res.Dropped++
			continue
		}
		res.Points = append(res.Points, CorrelationPoint{Name: p.name, X: xv, Y: yv})
	}
	if len(res.Points) < 2 {
		return nil, fmt.Errorf("%w: %d numeric rows left after cleaning", ErrInsufficientData, len(res.Points))
	}
	sort.SliceStable(res.Points, func(i, j int) bool { return res.Points[i].Name < res.Points[j].Name })

	xs := make([]float64, len(res.Points))
	ys := make([]float64, len(res.Points))
	for i, p := range res.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return nil, fmt.Errorf("%w: constant column, correlation undefined", ErrInsufficientData)
	}
	res.R = stat.Correlation(xs, ys, nil)
	res.Intercept, res.Slope = stat.LinearRegression(xs, ys, nil, false)
	return res, nil
}

// CorrelateIndicators is Correlate for two catalog labels.
func CorrelateIndicators(c *Catalog, xLabel, yLabel, year string) (*Correlation, error) {
	x, err := c.Get(xLabel)
	if err != nil {
		return nil, err
	}
	y, err := c.Get(yLabel)
	if err != nil {
		return nil, err
	}
	res, err := Correlate(x.Table, y.Table, year)
	if err != nil {
		return nil, fmt.Errorf("%s / %s: %w", xLabel, yLabel, err)
	}
	res.X, res.Y = x.Label, y.Label
	return res, nil
}
