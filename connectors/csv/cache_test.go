package csv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	dc "demography-stats/domain/config"
	"demography-stats/domain/demography"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCacheReusesUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RPop.csv")
	writeFile(t, path, "Name;2020\nA;1\n")
	c := NewCache(Options{})

	first, err := c.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached table on second load")
	}

	// Same bytes with a new mtime still hit by content hash.
	writeFile(t, path, "Name;2020\nA;1\n")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	third, err := c.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if third != first {
		t.Error("identical content should not be reparsed")
	}
}

func TestCacheReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RPop.csv")
	writeFile(t, path, "Name;2020\nA;1\n")
	c := NewCache(Options{})
	first, err := c.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "Name;2020\nA;1\nB;2\n")
	second, err := c.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if second == first || len(second.Rows) != 2 {
		t.Errorf("expected reload with 2 rows, got %d", len(second.Rows))
	}
	if len(first.Rows) != 1 {
		t.Error("previously returned table must not change")
	}

	c.Invalidate(path)
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestCacheDropsVanishedAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	gone := filepath.Join(dir, "gone.csv")
	broken := filepath.Join(dir, "broken.csv")
	writeFile(t, gone, "Name;2020\nA;1\n")
	writeFile(t, broken, "Name;2020\nA;1\n")
	c := NewCache(Options{})
	for _, p := range []string{gone, broken} {
		if _, err := c.Load(p); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load(gone); !errors.Is(err, demography.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	writeFile(t, broken, "Town;2020\nA;1\nB;2\n")
	if _, err := c.Load(broken); !errors.Is(err, demography.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after failures, want 0", c.Len())
	}
}

func TestCacheMissingFile(t *testing.T) {
	c := NewCache(Options{})
	_, err := c.Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, demography.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "Name;2019;2020\nA;1;2\n")
	writeFile(t, filepath.Join(dir, "r.csv"), "Name;2020;2021\nA;10;20\n")
	inds := []dc.Indicator{
		{Label: "a", File: "a.csv", Color: "#1", Kind: dc.KindPopulation},
		{Label: "r", File: "r.csv", Color: "#2", Kind: dc.KindPopulation, Reference: true},
	}
	cat, err := LoadCatalog(NewCache(Options{}), dir, inds)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Reference().Label != "r" {
		t.Errorf("reference = %q", cat.Reference().Label)
	}
	if got := demography.Years(cat); len(got) != 3 || got[0] != "2019" || got[2] != "2021" {
		t.Errorf("years = %v", got)
	}

	inds = append(inds, dc.Indicator{Label: "missing", File: "missing.csv", Kind: dc.KindHousing})
	if _, err := LoadCatalog(NewCache(Options{}), dir, inds); !errors.Is(err, demography.ErrLoad) {
		t.Errorf("missing file should fail the catalog, got %v", err)
	}
}
