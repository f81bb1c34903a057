package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	dc "demography-stats/domain/config"
)

func write(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(write(t, "top_n: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.TopN != 3 || c.DataDir != "./data" {
		t.Errorf("config = %+v", c)
	}
	if len(c.Indicators) != 7 || !c.Indicators[4].Reference || c.Indicators[4].File != "RPop.csv" {
		t.Errorf("default indicators = %+v", c.Indicators)
	}
	if c.DelimiterRune() != 0 {
		t.Errorf("delimiter should be sniffed by default")
	}
}

func TestLoadCustomIndicators(t *testing.T) {
	c, err := Load(write(t, `data_dir: /srv/data
delimiter: ";"
indicators:
  - label: kids
    file: kids.csv
    color: "#fff"
  - label: total
    file: total.csv
    reference: true
  - label: money
    file: money.csv
    kind: investment
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.DataDir != "/srv/data" || c.DelimiterRune() != ';' || c.TopN != 5 {
		t.Errorf("config = %+v", c)
	}
	if c.Indicators[0].Kind != dc.KindPopulation || c.Indicators[2].Kind != dc.KindInvestment {
		t.Errorf("kinds = %+v", c.Indicators)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"no reference":    "indicators:\n  - {label: a, file: a.csv}\n",
		"two references":  "indicators:\n  - {label: a, file: a.csv, reference: true}\n  - {label: b, file: b.csv, reference: true}\n",
		"duplicate label": "indicators:\n  - {label: a, file: a.csv, reference: true}\n  - {label: a, file: b.csv}\n",
		"missing file":    "indicators:\n  - {label: a, reference: true}\n",
		"unknown kind":    "indicators:\n  - {label: a, file: a.csv, reference: true, kind: weather}\n",
		"long delimiter":  "delimiter: ';;'\n",
		"bad yaml":        "indicators: [\n",
	}
	for name, content := range cases {
		if _, err := Load(write(t, content)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Indicators) != 7 {
		t.Errorf("expected built-in indicators, got %d", len(c.Indicators))
	}

	_, err = LoadOrDefault(write(t, "indicators: [\n"))
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("broken file must not fall back to defaults: %v", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if Path() != DefaultPath {
		t.Errorf("Path() = %q", Path())
	}
	t.Setenv("CONFIG_PATH", "/etc/demography.yml")
	if Path() != "/etc/demography.yml" {
		t.Errorf("Path() = %q", Path())
	}
}
