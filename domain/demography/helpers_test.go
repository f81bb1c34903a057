package demography

import "testing"

func table(header []string, rows ...[]string) *Table {
	return NewTable(header, rows)
}

// testCatalog builds a catalog with children, reference, and housing tables.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	header := []string{"Name", "2019", "2020"}
	children := table(header,
		[]string{"Орёл", "100", "120"},
		[]string{"Мценск", "50", "1,5"},
		[]string{"Болхов", "x", "30"},
	)
	ref := table(header,
		[]string{"Орёл", "1000", "0"},
		[]string{"Мценск", "200", "300"},
		[]string{"Болхов", "100", "100"},
	)
	housing := table([]string{"Name", "2020"},
		[]string{"Орёл", "20,5"},
		[]string{"Мценск", "10"},
		[]string{"Ливны", "8"},
	)
	c, err := NewCatalog([]Indicator{
		{Label: "children", Color: "#1", Kind: "population", Table: children},
		{Label: "ref", Color: "#2", Kind: "population", Reference: true, Table: ref},
		{Label: "housing", Color: "#3", Kind: "housing", Table: housing},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}
