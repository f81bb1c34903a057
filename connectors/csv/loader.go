package csv

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"demography-stats/domain/demography"

	"github.com/samber/lo"
)

// MunicipalityColumn is the long-form header renamed to demography.NameColumn.
const MunicipalityColumn = "Наименование муниципального образования"

// Options controls table parsing.
type Options struct {
	// Delimiter separates fields. Zero picks ';' when the header line has
	// one and ',' otherwise.
	Delimiter rune
}

// ReadTable loads a table file. Every failure is a *demography.LoadError.
func ReadTable(path string, opts Options) (*demography.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &demography.LoadError{Path: path, Err: err}
	}
	t, err := ParseTable(raw, opts)
	if err != nil {
		return nil, &demography.LoadError{Path: path, Err: err}
	}
	return t, nil
}

// ParseTable decodes and parses table content. Column names and Name values
// come back trimmed; the municipality column is renamed to Name.
func ParseTable(raw []byte, opts Options) (*demography.Table, error) {
	text, charset, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	text = strings.TrimPrefix(text, "\ufeff")

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(text)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := lo.Map(records[0], func(h string, _ int) string {
		h = strings.TrimSpace(h)
		if h == MunicipalityColumn {
			return demography.NameColumn
		}
		return h
	})
	nameCol := lo.IndexOf(header, demography.NameColumn)
	if nameCol < 0 {
		return nil, fmt.Errorf("no %q or %q column", demography.NameColumn, MunicipalityColumn)
	}
	// Spreadsheet exports often end in rows of bare delimiters.
	rows := lo.Reject(records[1:], func(row []string, _ int) bool {
		return lo.EveryBy(row, func(cell string) bool { return strings.TrimSpace(cell) == "" })
	})
	for _, row := range rows {
		if nameCol < len(row) {
			row[nameCol] = strings.TrimSpace(row[nameCol])
		}
	}

	t := demography.NewTable(header, rows)
	if dups := t.DuplicateNames(); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", demography.ErrDuplicateName, strings.Join(dups, ", "))
	}
	slog.Debug("table.parse", "charset", charset, "delimiter", string(delim), "columns", len(header), "rows", len(t.Rows))
	return t, nil
}

func sniffDelimiter(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	if strings.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}
