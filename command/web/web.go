package web

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"demography-stats/connectors/config"
	ccsv "demography-stats/connectors/csv"
	dc "demography-stats/domain/config"
	"demography-stats/domain/demography"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Run starts a small Echo web server exposing the demography queries as JSON
// APIs and an optional SPA dashboard.
//
// Usage:
//
//	demography-stats web [-addr :8080] [-data ./data] [-ui ./ui/dist]
//
// Endpoints:
//
//	GET /api/indicators, /api/locations, /api/years
//	GET /api/series?location=&indicator=&indicator=
//	GET /api/share?location=&indicator=
//	GET /api/share/ranking?indicator=&year=
//	GET /api/ranking?indicator=&year=&n=
//	GET /api/correlation?x=&y=&year=
//	GET /api/composition?location=&year=&indicator=
//	GET /api/tables?indicator=
//	GET /api/export/csv?indicator=, /api/export/xlsx?indicator=
//
// All tables must load at startup; a missing file stops the server before it
// listens.
func Run(args []string) error {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "http listen address (host:port)")
	dataDir := fs.String("data", "", "directory containing the indicator CSV files (overrides config data_dir)")
	uiDir := fs.String("ui", "./ui/dist", "directory containing built UI (Vite dist)")
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

	srv := NewServer(cfg)
	cat, err := srv.Catalog()
	if err != nil {
		slog.Error("web.load.error", "data", cfg.DataDir, "error", err)
		return err
	}
	slog.Info("web.catalog", "indicators", len(cat.Labels()), "tables", srv.cache.Len(), "locations", len(cat.Locations()), "years", demography.Years(cat))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("web.request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	srv.Routes(e)

	// Static UI (optional)
	indexPath := filepath.Join(*uiDir, "index.html")
	if fi, err := os.Stat(indexPath); err == nil && !fi.IsDir() {
		// Serve built assets under /
		e.Static("/", *uiDir)
		e.GET("/", func(c echo.Context) error { return c.File(indexPath) })

		// Fallback to index.html for non-API 404s (SPA routing) while keeping static assets working
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
				if !strings.HasPrefix(c.Request().URL.Path, "/api") {
					_ = c.File(indexPath)
					return
				}
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}

	slog.Info("web.start", "addr", *addr, "data", cfg.DataDir)
	return e.Start(*addr)
}

// Server answers API requests from tables held in a shared cache.
type Server struct {
	cfg   *dc.Config
	cache *ccsv.Cache
}

func NewServer(cfg *dc.Config) *Server {
	return &Server{
		cfg:   cfg,
		cache: ccsv.NewCache(ccsv.Options{Delimiter: cfg.DelimiterRune()}),
	}
}

// Catalog loads the configured indicators. Files that did not change since
// the previous call are served from the cache.
func (s *Server) Catalog() (*demography.Catalog, error) {
	return ccsv.LoadCatalog(s.cache, s.cfg.DataDir, s.cfg.Indicators)
}

// fail maps query errors to a status code and the JSON error body.
func (s *Server) fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "query failed"
	switch {
	case errors.Is(err, demography.ErrUnknownIndicator):
		status, message = http.StatusNotFound, "unknown indicator"
	case errors.Is(err, demography.ErrLocationNotFound):
		status, message = http.StatusNotFound, "location not found"
	case errors.Is(err, demography.ErrAmbiguousLocation):
		status, message = http.StatusUnprocessableEntity, "location is ambiguous"
	case errors.Is(err, demography.ErrMissingYear):
		status, message = http.StatusUnprocessableEntity, "year not available"
	case errors.Is(err, demography.ErrInsufficientData):
		status, message = http.StatusUnprocessableEntity, "not enough data"
	case errors.Is(err, demography.ErrLoad):
		status, message = http.StatusServiceUnavailable, "data files could not be loaded"
	}
	slog.Warn("web.query.error", "path", c.Path(), "status", status, "error", err)
	return c.JSON(status, map[string]any{
		"error":   err.Error(),
		"message": message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":   "bad request",
		"message": message,
	})
}
