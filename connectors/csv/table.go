package csv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"demography-stats/domain/demography"
)

// FileName turns an indicator label into an export file name.
func FileName(label, ext string) string {
	return strings.ReplaceAll(label, " ", "_") + ext
}

// WriteTable writes a table verbatim as comma-separated UTF-8, header first.
func WriteTable(w io.Writer, t *demography.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}

// WriteTableFile writes a table to path, creating parent directories.
func WriteTableFile(path string, t *demography.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteTable(f, t); err != nil {
		return err
	}
	return f.Close()
}
