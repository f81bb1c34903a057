package demography

import (
	"fmt"
	"sort"
)

// DefaultTopN is the size of each side of a ranking.
const DefaultTopN = 5

// RankItem is one municipality in a ranking.
type RankItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Ranking holds the n largest values (ascending, for a horizontal bar
// chart) and the n smallest (descending).
type Ranking struct {
	Indicator string     `json:"indicator"`
	Year      string     `json:"year"`
	Top       []RankItem `json:"top"`
	Bottom    []RankItem `json:"bottom"`
}

// Rank computes top and bottom n for one year column. Cells that are not
// numeric are left out. Sorting is stable, so equal values keep table order
// when selecting, and again when ordering for display.
func Rank(t *Table, year string, n int) (top, bottom []RankItem, err error) {
	col, ok := t.Column(year)
	if !ok || !IsYear(year) {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingYear, year)
	}
	if n <= 0 {
		n = DefaultTopN
	}
	nameCol, _ := t.Column(NameColumn)
	var items []RankItem
	for _, r := range t.Rows {
		if v, ok := ParseNumber(r[col]); ok {
			items = append(items, RankItem{Name: r[nameCol], Value: v})
		}
	}
	k := min(n, len(items))

	desc := append([]RankItem(nil), items...)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Value > desc[j].Value })
	top = append([]RankItem(nil), desc[:k]...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Value < top[j].Value })

	asc := append([]RankItem(nil), items...)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Value < asc[j].Value })
	bottom = append([]RankItem(nil), asc[:k]...)
	sort.SliceStable(bottom, func(i, j int) bool { return bottom[i].Value > bottom[j].Value })
	return top, bottom, nil
}

// RankIndicator is Rank for a catalog label.
func RankIndicator(c *Catalog, label, year string, n int) (*Ranking, error) {
	ind, err := c.Get(label)
	if err != nil {
		return nil, err
	}
	top, bottom, err := Rank(ind.Table, year, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return &Ranking{Indicator: ind.Label, Year: year, Top: top, Bottom: bottom}, nil
}
