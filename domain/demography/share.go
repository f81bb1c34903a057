package demography

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ShareSeries returns, for each non-reference label, the yearly percentage
// of the reference indicator for one municipality. The reference itself is
// skipped if listed.
func ShareSeries(c *Catalog, location string, labels, years []string) ([]Series, error) {
	ref := c.Reference()
	refVals, err := LocationValues(ref.Table, location, years)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref.Label, err)
	}
	out := make([]Series, 0, len(labels))
	for _, label := range labels {
		if label == ref.Label {
			continue
		}
		ind, err := c.Get(label)
		if err != nil {
			return nil, err
		}
		vals, err := LocationValues(ind.Table, location, years)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		pct := make([]float64, len(vals))
		for i := range vals {
			pct[i] = Percent(vals[i], refVals[i])
		}
		out = append(out, Series{Label: ind.Label, Color: ind.Color, Points: points(years, pct)})
	}
	return out, nil
}

// ShareRow is one municipality in a cross-sectional share table.
type ShareRow struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Reference float64 `json:"reference"`
	Percent   float64 `json:"percent"`
}

// ShareTable ranks municipalities by the share of an indicator in the
// reference for one year. Dropped counts names present in only one of the
// two tables; they are left out of Rows and Mean.
type ShareTable struct {
	Indicator string     `json:"indicator"`
	Year      string     `json:"year"`
	Rows      []ShareRow `json:"rows"`
	Mean      float64    `json:"mean"`
	Dropped   int        `json:"dropped"`
}

// ShareRanking joins an indicator with the reference on Name for one year.
func ShareRanking(c *Catalog, label, year string) (*ShareTable, error) {
	ind, err := c.Get(label)
	if err != nil {
		return nil, err
	}
	ref := c.Reference()
	pairs, dropped, err := joinYear(ind.Table, ref.Table, year)
	if err != nil {
		return nil, err
	}
	rows := make([]ShareRow, 0, len(pairs))
	for _, p := range pairs {
		v, r := NumberOrZero(p.left), NumberOrZero(p.right)
		rows = append(rows, ShareRow{Name: p.name, Value: v, Reference: r, Percent: Percent(v, r)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Percent > rows[j].Percent })

	st := &ShareTable{Indicator: ind.Label, Year: year, Rows: rows, Dropped: dropped}
	if len(rows) > 0 {
		pct := make([]float64, len(rows))
		for i, r := range rows {
			pct[i] = r.Percent
		}
		st.Mean = stat.Mean(pct, nil)
	}
	return st, nil
}

type joined struct {
	name        string
	left, right string
}

// joinYear inner-joins two tables on Name, keeping left row order, and
// returns the cells of one year column from each side.
func joinYear(left, right *Table, year string) ([]joined, int, error) {
	if !IsYear(year) {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingYear, year)
	}
	li, ok := left.Column(year)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingYear, year)
	}
	ri, ok := right.Column(year)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingYear, year)
	}
	ln, _ := left.Column(NameColumn)
	rn, _ := right.Column(NameColumn)

	rightRows := map[string][][]string{}
	for _, r := range right.Rows {
		rightRows[r[rn]] = append(rightRows[r[rn]], r)
	}
	var out []joined
	matched := map[string]bool{}
	dropped := 0
	for _, l := range left.Rows {
		rs, ok := rightRows[l[ln]]
		if !ok {
			dropped++
			continue
		}
		matched[l[ln]] = true
		for _, r := range rs {
			out = append(out, joined{name: l[ln], left: l[li], right: r[ri]})
		}
	}
	for name, rs := range rightRows {
		if !matched[name] {
			dropped += len(rs)
		}
	}
	return out, dropped, nil
}
