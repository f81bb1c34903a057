package csv

import (
	"path/filepath"

	dc "demography-stats/domain/config"
	"demography-stats/domain/demography"
)

// LoadCatalog loads every configured indicator from dataDir through the
// cache. A missing or unreadable file fails the whole catalog.
func LoadCatalog(cache *Cache, dataDir string, indicators []dc.Indicator) (*demography.Catalog, error) {
	out := make([]demography.Indicator, 0, len(indicators))
	for _, ind := range indicators {
		t, err := cache.Load(filepath.Join(dataDir, ind.File))
		if err != nil {
			return nil, err
		}
		out = append(out, demography.Indicator{
			Label:     ind.Label,
			Color:     ind.Color,
			Kind:      ind.Kind,
			File:      ind.File,
			Reference: ind.Reference,
			Table:     t,
		})
	}
	return demography.NewCatalog(out)
}
