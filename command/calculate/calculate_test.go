package calculate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	ccsv "demography-stats/connectors/csv"
	dc "demography-stats/domain/config"
)

const testConfig = `indicators:
  - label: kids
    file: kids.csv
  - label: total
    file: total.csv
    reference: true
  - label: flats
    file: flats.csv
    kind: housing
`

func writeData(t *testing.T) (cfgPath, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"kids.csv":  "Name;2021;2022\nA;10;20\nB;30;10\nC;5;15\n",
		"total.csv": "Name;2021;2022\nA;100;100\nB;100;50\nC;0;60\n",
		"flats.csv": "Name;2022\nA;1\nB;3\nC;2\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfgPath = filepath.Join(dir, "config.yml")
	if err := os.WriteFile(cfgPath, []byte("data_dir: "+dataDir+"\n"+testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, dataDir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return recs
}

func TestCalculate(t *testing.T) {
	_, dataDir := writeData(t)
	cfg := dc.Config{DataDir: dataDir}.Defaults()
	cfg.Indicators = []dc.Indicator{
		{Label: "kids", File: "kids.csv", Kind: dc.KindPopulation},
		{Label: "total", File: "total.csv", Kind: dc.KindPopulation, Reference: true},
		{Label: "flats", File: "flats.csv", Kind: dc.KindHousing},
	}
	cat, err := ccsv.LoadCatalog(ccsv.NewCache(ccsv.Options{}), cfg.DataDir, cfg.Indicators)
	if err != nil {
		t.Fatal(err)
	}

	d, err := Calculate(cat, "", 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Year != "2022" {
		t.Errorf("year = %q, want latest", d.Year)
	}
	if len(d.Shares) != 1 || d.Shares[0].Indicator != "kids" {
		t.Fatalf("shares = %+v", d.Shares)
	}
	if rows := d.Shares[0].Rows; rows[0].Name != "C" || rows[0].Percent != 25 || rows[1].Name != "A" {
		t.Errorf("share rows = %+v", rows)
	}
	if len(d.Rankings) != 3 {
		t.Errorf("rankings = %d, want one per indicator", len(d.Rankings))
	}
	// kids and total against flats.
	if len(d.Correlations) != 2 {
		t.Errorf("correlations = %+v", d.Correlations)
	}
	// three locations, three indicators each
	if len(d.Series) != 9 {
		t.Fatalf("series = %d", len(d.Series))
	}
	first := d.Series[0]
	if first.Location != "A" || first.Values.Label != "kids" || first.Shares == nil {
		t.Errorf("first series = %+v", first)
	}
	if first.Shares.Points[0].Value != 10 {
		t.Errorf("share of A in 2021 = %v", first.Shares.Points[0].Value)
	}
	// total is the reference and flats is not population.
	if d.Series[1].Shares != nil || d.Series[2].Shares != nil {
		t.Errorf("unexpected shares for non-share indicators")
	}
}

func TestCalculateSkipsFailedQueries(t *testing.T) {
	_, dataDir := writeData(t)
	inds := []dc.Indicator{
		{Label: "kids", File: "kids.csv", Kind: dc.KindPopulation},
		{Label: "total", File: "total.csv", Kind: dc.KindPopulation, Reference: true},
		{Label: "flats", File: "flats.csv", Kind: dc.KindHousing},
	}
	cat, err := ccsv.LoadCatalog(ccsv.NewCache(ccsv.Options{}), dataDir, inds)
	if err != nil {
		t.Fatal(err)
	}
	// flats has no 2021 column.
	d, err := Calculate(cat, "2021", 5, []string{"B", "Nowhere"})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Rankings) != 2 || len(d.Correlations) != 0 {
		t.Errorf("rankings=%d correlations=%d", len(d.Rankings), len(d.Correlations))
	}
	if len(d.Series) != 3 {
		t.Errorf("series = %d, want only B", len(d.Series))
	}
}

func TestRunWritesOutputs(t *testing.T) {
	cfgPath, dataDir := writeData(t)
	t.Setenv("CONFIG_PATH", cfgPath)
	out := filepath.Join(t.TempDir(), "derived")

	if err := Run([]string{"-year", "2022", "-out", out}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"share_2022.csv", "ranking_2022.csv", "correlation_2022.csv", "series.csv"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	shares := readCSV(t, filepath.Join(out, "share_2022.csv"))
	if len(shares) != 4 || shares[1][2] != "C" || shares[1][5] != "25.00" {
		t.Errorf("share_2022.csv = %q", shares)
	}

	if err := os.Remove(filepath.Join(dataDir, "total.csv")); err != nil {
		t.Fatal(err)
	}
	if err := Run([]string{"-out", out}); err == nil {
		t.Error("expected error for missing reference file")
	}
}
