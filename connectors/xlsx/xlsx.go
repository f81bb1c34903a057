// Package xlsx exports indicator tables as single-sheet spreadsheets.
package xlsx

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"demography-stats/domain/demography"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// SheetName makes a label usable as a worksheet name.
func SheetName(label string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(label))
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

// WriteTable writes t as one sheet named after label. Cells that are plain
// numbers are stored as numbers; everything else is kept as text.
func WriteTable(w io.Writer, label string, t *demography.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(label)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	for i, rec := range t.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
			if i == 0 {
				continue
			}
			if n, ok := number(v); ok {
				row[j] = n
			}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// WriteFile writes the spreadsheet to path, creating parent directories.
func WriteFile(path, label string, t *demography.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return WriteTable(out, label, t)
}

// number accepts plain decimal literals that format back to the same text,
// so "007", "1e3", "NaN" and "7.50" stay strings.
func number(v string) (float64, bool) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, strconv.FormatFloat(n, 'f', -1, 64) == v
}
