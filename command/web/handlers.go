package web

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	ccsv "demography-stats/connectors/csv"
	"demography-stats/connectors/xlsx"
	"demography-stats/domain/demography"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) Routes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/indicators", s.withCatalog(s.getIndicators))
	api.GET("/locations", s.withCatalog(s.getLocations))
	api.GET("/years", s.withCatalog(s.getYears))
	api.GET("/series", s.withCatalog(s.getSeries))
	api.GET("/share", s.withCatalog(s.getShare))
	api.GET("/share/ranking", s.withCatalog(s.getShareRanking))
	api.GET("/ranking", s.withCatalog(s.getRanking))
	api.GET("/correlation", s.withCatalog(s.getCorrelation))
	api.GET("/composition", s.withCatalog(s.getComposition))
	api.GET("/tables", s.withCatalog(s.getTable))
	api.GET("/export/csv", s.withCatalog(s.exportCSV))
	api.GET("/export/xlsx", s.withCatalog(s.exportXLSX))
}

type catalogHandler func(c echo.Context, cat *demography.Catalog) error

func (s *Server) withCatalog(h catalogHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat, err := s.Catalog()
		if err != nil {
			return s.fail(c, err)
		}
		return h(c, cat)
	}
}

// location defaults to the first municipality, as the selector does.
func location(c echo.Context, cat *demography.Catalog) string {
	if l := c.QueryParam("location"); l != "" {
		return l
	}
	if locs := cat.Locations(); len(locs) > 0 {
		return locs[0]
	}
	return ""
}

// labels defaults to the first indicator plus the reference.
func labels(c echo.Context, cat *demography.Catalog) []string {
	if ls := c.QueryParams()["indicator"]; len(ls) > 0 {
		return ls
	}
	all := cat.Labels()
	return lo.Uniq([]string{all[0], cat.Reference().Label})
}

// shareLabel defaults to the first non-reference indicator.
func shareLabel(c echo.Context, cat *demography.Catalog) string {
	if l := c.QueryParam("indicator"); l != "" {
		return l
	}
	ref := cat.Reference().Label
	l, _ := lo.Find(cat.Labels(), func(l string) bool { return l != ref })
	return l
}

// year defaults to the latest year of the catalog.
func year(c echo.Context, cat *demography.Catalog) string {
	if y := c.QueryParam("year"); y != "" {
		return y
	}
	years := demography.Years(cat)
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}

// yearsFor returns the requested years, or every year the selected
// indicators carry.
func yearsFor(c echo.Context, cat *demography.Catalog, selected []string) ([]string, error) {
	if ys := c.QueryParams()["year"]; len(ys) > 0 {
		return ys, nil
	}
	inds := make([]demography.Indicator, 0, len(selected))
	for _, l := range selected {
		ind, err := cat.Get(l)
		if err != nil {
			return nil, err
		}
		inds = append(inds, ind)
	}
	return demography.YearsOf(inds...), nil
}

func (s *Server) getIndicators(c echo.Context, cat *demography.Catalog) error {
	return c.JSON(http.StatusOK, cat.Indicators())
}

func (s *Server) getLocations(c echo.Context, cat *demography.Catalog) error {
	return c.JSON(http.StatusOK, cat.Locations())
}

func (s *Server) getYears(c echo.Context, cat *demography.Catalog) error {
	return c.JSON(http.StatusOK, demography.Years(cat))
}

func (s *Server) getSeries(c echo.Context, cat *demography.Catalog) error {
	sel := labels(c, cat)
	years, err := yearsFor(c, cat, sel)
	if err != nil {
		return s.fail(c, err)
	}
	series, err := demography.TimeSeries(cat, location(c, cat), sel, years)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, series)
}

func (s *Server) getShare(c echo.Context, cat *demography.Catalog) error {
	sel := labels(c, cat)
	years, err := yearsFor(c, cat, append(append([]string(nil), sel...), cat.Reference().Label))
	if err != nil {
		return s.fail(c, err)
	}
	series, err := demography.ShareSeries(cat, location(c, cat), sel, years)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, series)
}

func (s *Server) getShareRanking(c echo.Context, cat *demography.Catalog) error {
	st, err := demography.ShareRanking(cat, shareLabel(c, cat), year(c, cat))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) getRanking(c echo.Context, cat *demography.Catalog) error {
	n := s.cfg.TopN
	if raw := c.QueryParam("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return badRequest(c, "n must be a positive integer")
		}
		n = v
	}
	rk, err := demography.RankIndicator(cat, shareLabel(c, cat), year(c, cat), n)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, rk)
}

func (s *Server) getCorrelation(c echo.Context, cat *demography.Catalog) error {
	x, y := c.QueryParam("x"), c.QueryParam("y")
	if x == "" || y == "" {
		return badRequest(c, "x and y indicators are required")
	}
	res, err := demography.CorrelateIndicators(cat, x, y, year(c, cat))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) getComposition(c echo.Context, cat *demography.Catalog) error {
	comp, err := demography.Compose(cat, location(c, cat), year(c, cat), labels(c, cat))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, comp)
}

func (s *Server) getTable(c echo.Context, cat *demography.Catalog) error {
	ind, err := cat.Get(c.QueryParam("indicator"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, tableRows(ind.Table))
}

func (s *Server) exportCSV(c echo.Context, cat *demography.Catalog) error {
	ind, err := cat.Get(c.QueryParam("indicator"))
	if err != nil {
		return s.fail(c, err)
	}
	var buf bytes.Buffer
	if err := ccsv.WriteTable(&buf, ind.Table); err != nil {
		return s.fail(c, err)
	}
	attach(c, ccsv.FileName(ind.Label, ".csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) exportXLSX(c echo.Context, cat *demography.Catalog) error {
	ind, err := cat.Get(c.QueryParam("indicator"))
	if err != nil {
		return s.fail(c, err)
	}
	var buf bytes.Buffer
	if err := xlsx.WriteTable(&buf, ind.Label, ind.Table); err != nil {
		return s.fail(c, err)
	}
	attach(c, ccsv.FileName(ind.Label, ".xlsx"))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func attach(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}

// tableRows returns the table as objects keyed by header.
// Values are kept as strings to avoid lossy or incorrect type coercion.
func tableRows(t *demography.Table) []map[string]string {
	res := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Columns))
		for j, h := range t.Columns {
			obj[h] = row[j]
		}
		res = append(res, obj)
	}
	return res
}
