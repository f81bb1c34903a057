package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"demography-stats/domain/demography"
)

// Derived groups the outputs of the calculate command for one year.
type Derived struct {
	Year         string
	Shares       []demography.ShareTable
	Rankings     []demography.Ranking
	Correlations []demography.Correlation
	Series       []LocationSeries
}

// LocationSeries is the yearly value and share of one indicator in one municipality.
type LocationSeries struct {
	Location string
	Values   demography.Series
	Shares   *demography.Series
}

// WriteAllCSVs writes all derived outputs into dir.
func WriteAllCSVs(dir string, d Derived) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := WriteShareCSV(filepath.Join(dir, "share_"+d.Year+".csv"), d.Shares); err != nil {
		return err
	}
	if err := WriteRankingCSV(filepath.Join(dir, "ranking_"+d.Year+".csv"), d.Rankings); err != nil {
		return err
	}
	if err := WriteCorrelationCSV(filepath.Join(dir, "correlation_"+d.Year+".csv"), d.Correlations); err != nil {
		return err
	}
	if err := WriteSeriesCSV(filepath.Join(dir, "series.csv"), d.Series); err != nil {
		return err
	}
	return nil
}

func WriteShareCSV(path string, shares []demography.ShareTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"indicator", "year", "name", "value", "reference", "percent", "mean"}); err != nil {
		return err
	}
	for _, st := range shares {
		mean := formatPercent(st.Mean)
		for _, r := range st.Rows {
			row := []string{st.Indicator, st.Year, r.Name, formatFloat(r.Value), formatFloat(r.Reference), formatPercent(r.Percent), mean}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func WriteRankingCSV(path string, rankings []demography.Ranking) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"indicator", "year", "side", "position", "name", "value"}); err != nil {
		return err
	}
	for _, rk := range rankings {
		sides := []struct {
			name  string
			items []demography.RankItem
		}{{"top", rk.Top}, {"bottom", rk.Bottom}}
		for _, side := range sides {
			for i, it := range side.items {
				row := []string{rk.Indicator, rk.Year, side.name, strconv.Itoa(i + 1), it.Name, formatFloat(it.Value)}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func WriteCorrelationCSV(path string, corrs []demography.Correlation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	headers := []string{"x", "y", "year", "r", "slope", "intercept", "points", "dropped"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, c := range corrs {
		row := []string{
			c.X,
			c.Y,
			c.Year,
			strconv.FormatFloat(c.R, 'f', 4, 64),
			formatFloat(c.Slope),
			formatFloat(c.Intercept),
			strconv.Itoa(len(c.Points)),
			strconv.Itoa(c.Dropped),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func WriteSeriesCSV(path string, series []LocationSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"location", "indicator", "year", "value", "percent"}); err != nil {
		return err
	}
	for _, s := range series {
		for i, p := range s.Values.Points {
			pct := ""
			if s.Shares != nil {
				pct = formatPercent(s.Shares.Points[i].Value)
			}
			row := []string{s.Location, s.Values.Label, p.Year, formatFloat(p.Value), pct}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatPercent(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
