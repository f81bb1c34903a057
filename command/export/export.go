package export

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"demography-stats/connectors/config"
	ccsv "demography-stats/connectors/csv"
	"demography-stats/connectors/xlsx"
	"demography-stats/domain/demography"
)

// Run executes the export subcommand: every configured indicator is written
// as <label>.csv and/or <label>.xlsx into the output directory.
//
// Usage:
//
//	demography-stats export [-out ./export] [-data ./data] [-format csv,xlsx] [-indicator <label>]
func Run(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("out", "./export", "output directory")
	dataDir := fs.String("data", "", "directory containing the indicator CSV files (overrides config data_dir)")
	format := fs.String("format", "csv,xlsx", "comma-separated list of formats: csv, xlsx")
	only := fs.String("indicator", "", "export a single indicator by label (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	formats := map[string]bool{}
	for _, f := range strings.Split(*format, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if f != "csv" && f != "xlsx" {
			slog.Error("export.validation.error", "reason", "unknown format", "format", f)
			return fmt.Errorf("unknown export format %q", f)
		}
		formats[f] = true
	}
	if len(formats) == 0 {
		return fmt.Errorf("no export format selected")
	}

	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	cache := ccsv.NewCache(ccsv.Options{Delimiter: cfg.DelimiterRune()})
	cat, err := ccsv.LoadCatalog(cache, cfg.DataDir, cfg.Indicators)
	if err != nil {
		slog.Error("export.load.error", "data", cfg.DataDir, "error", err)
		return err
	}

	inds := cat.Indicators()
	if *only != "" {
		ind, err := cat.Get(*only)
		if err != nil {
			return err
		}
		inds = []demography.Indicator{ind}
	}

	slog.Info("export.start", "out", *out, "indicators", len(inds), "format", *format)
	written := 0
	for _, ind := range inds {
		if formats["csv"] {
			path := filepath.Join(*out, ccsv.FileName(ind.Label, ".csv"))
			if err := ccsv.WriteTableFile(path, ind.Table); err != nil {
				slog.Error("export.write.error", "path", path, "error", err)
				return err
			}
			written++
		}
		if formats["xlsx"] {
			path := filepath.Join(*out, ccsv.FileName(ind.Label, ".xlsx"))
			if err := xlsx.WriteFile(path, ind.Label, ind.Table); err != nil {
				slog.Error("export.write.error", "path", path, "error", err)
				return err
			}
			written++
		}
	}
	slog.Info("export.done", "out", *out, "files", written)
	return nil
}
