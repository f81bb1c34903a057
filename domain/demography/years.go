package demography

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// IsYear reports whether a column name is exactly four ASCII digits.
func IsYear(column string) bool {
	if len(column) != 4 {
		return false
	}
	for i := 0; i < len(column); i++ {
		if column[i] < '0' || column[i] > '9' {
			return false
		}
	}
	return true
}

// Years returns the year columns found across all tables of the catalog,
// ascending. It is recomputed on every call.
func Years(c *Catalog) []string {
	return YearsOf(c.indicators...)
}

// YearsOf is Years restricted to some indicators.
func YearsOf(indicators ...Indicator) []string {
	var cols []string
	for _, ind := range indicators {
		cols = append(cols, ind.Table.Columns...)
	}
	return sortYears(lo.Uniq(lo.Filter(cols, func(col string, _ int) bool { return IsYear(col) })))
}

// TableYears returns the year columns of a single table, ascending.
func TableYears(t *Table) []string {
	return sortYears(lo.Uniq(lo.Filter(t.Columns, func(col string, _ int) bool { return IsYear(col) })))
}

func sortYears(years []string) []string {
	sort.SliceStable(years, func(i, j int) bool {
		a, _ := strconv.Atoi(years[i])
		b, _ := strconv.Atoi(years[j])
		return a < b
	})
	return years
}
