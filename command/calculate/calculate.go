package calculate

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"demography-stats/connectors/config"
	ccsv "demography-stats/connectors/csv"
	dc "demography-stats/domain/config"
	"demography-stats/domain/demography"

	lo "github.com/samber/lo"
)

// Run executes the calculate command.
//
// Usage:
//
//	demography-stats calculate [-year 2023] [-data ./data] [-out ./data/derived] [-location <name>]
//
// It writes share_<year>.csv, ranking_<year>.csv, correlation_<year>.csv and
// series.csv into the output directory.
func Run(args []string) error {
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	year := fs.String("year", "", "year column to compute cross-sectional outputs for (default: latest)")
	dataDir := fs.String("data", "", "directory containing the indicator CSV files (overrides config data_dir)")
	out := fs.String("out", "", "output directory (default: <data>/derived)")
	location := fs.String("location", "", "restrict series.csv to one municipality (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *out == "" {
		*out = filepath.Join(cfg.DataDir, "derived")
	}

	cache := ccsv.NewCache(ccsv.Options{Delimiter: cfg.DelimiterRune()})
	cat, err := ccsv.LoadCatalog(cache, cfg.DataDir, cfg.Indicators)
	if err != nil {
		slog.Error("calculate.load.error", "data", cfg.DataDir, "error", err)
		return err
	}

	var locations []string
	if *location != "" {
		locations = []string{*location}
	}
	d, err := Calculate(cat, *year, cfg.TopN, locations)
	if err != nil {
		return err
	}
	if err := ccsv.WriteAllCSVs(*out, d); err != nil {
		slog.Error("calculate.write.error", "out", *out, "error", err)
		return err
	}

	slog.Info("calculate.done",
		"year", d.Year,
		"out", *out,
		"shares", len(d.Shares),
		"rankings", len(d.Rankings),
		"correlations", len(d.Correlations),
		"series", len(d.Series),
	)
	return nil
}

// Calculate derives every output for one year. An empty year selects the
// latest one; nil locations selects every municipality of the catalog.
// A query that fails is logged and left out of the result.
func Calculate(cat *demography.Catalog, year string, topN int, locations []string) (ccsv.Derived, error) {
	if year == "" {
		years := demography.Years(cat)
		if len(years) == 0 {
			return ccsv.Derived{}, errors.New("calculate: no year columns in the data")
		}
		year = years[len(years)-1]
	}
	if locations == nil {
		locations = cat.Locations()
	}
	ref := cat.Reference()
	d := ccsv.Derived{Year: year}

	population := cat.ByKind(dc.KindPopulation)
	for _, ind := range population {
		if ind.Reference {
			continue
		}
		st, err := demography.ShareRanking(cat, ind.Label, year)
		if err != nil {
			slog.Warn("calculate.share.skip", "indicator", ind.Label, "year", year, "error", err)
			continue
		}
		d.Shares = append(d.Shares, *st)
	}

	for _, ind := range cat.Indicators() {
		rk, err := demography.RankIndicator(cat, ind.Label, year, topN)
		if err != nil {
			slog.Warn("calculate.ranking.skip", "indicator", ind.Label, "year", year, "error", err)
			continue
		}
		d.Rankings = append(d.Rankings, *rk)
	}

	economy := append(cat.ByKind(dc.KindHousing), cat.ByKind(dc.KindInvestment)...)
	for _, x := range population {
		for _, y := range economy {
			res, err := demography.CorrelateIndicators(cat, x.Label, y.Label, year)
			if err != nil {
				slog.Warn("calculate.correlation.skip", "x", x.Label, "y", y.Label, "year", year, "error", err)
				continue
			}
			d.Correlations = append(d.Correlations, *res)
		}
	}

	for _, loc := range locations {
		for _, ind := range cat.Indicators() {
			years := demography.TableYears(ind.Table)
			vals, err := demography.TimeSeries(cat, loc, []string{ind.Label}, years)
			if err != nil {
				slog.Warn("calculate.series.skip", "location", loc, "indicator", ind.Label, "error", err)
				continue
			}
			ls := ccsv.LocationSeries{Location: loc, Values: vals[0]}
			if ind.Kind == dc.KindPopulation && !ind.Reference {
				// Years the reference lacks leave the percent column empty.
				shares, err := demography.ShareSeries(cat, loc, []string{ind.Label}, years)
				if err == nil {
					ls.Shares = lo.ToPtr(shares[0])
				} else {
					slog.Debug("calculate.series.share.skip", "location", loc, "indicator", ind.Label, "reference", ref.Label, "error", err)
				}
			}
			d.Series = append(d.Series, ls)
		}
	}
	return d, nil
}
