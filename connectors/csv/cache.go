package csv

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"demography-stats/domain/demography"

	"github.com/cespare/xxhash/v2"
)

// Cache keeps parsed tables keyed by path. An entry is reused while the
// file's size and modification time are unchanged, or while its content
// hashes the same; any other change reparses the file.
type Cache struct {
	opts Options

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	size  int64
	mod   time.Time
	sum   uint64
	table *demography.Table
}

func NewCache(opts Options) *Cache {
	return &Cache{opts: opts, entries: map[string]*cacheEntry{}}
}

// Load returns the table at path, parsing it only when the file changed.
// A file that vanished or no longer parses loses its entry.
func (c *Cache) Load(path string) (*demography.Table, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.Invalidate(path)
		return nil, &demography.LoadError{Path: path, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if ok && e.size == fi.Size() && e.mod.Equal(fi.ModTime()) {
		slog.Debug("cache.hit", "path", path)
		return e.table, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		delete(c.entries, path)
		return nil, &demography.LoadError{Path: path, Err: err}
	}
	sum := xxhash.Sum64(raw)
	if ok && e.sum == sum {
		slog.Debug("cache.touch", "path", path)
		e.size, e.mod = fi.Size(), fi.ModTime()
		return e.table, nil
	}
	t, err := ParseTable(raw, c.opts)
	if err != nil {
		delete(c.entries, path)
		return nil, &demography.LoadError{Path: path, Err: err}
	}
	slog.Info("cache.load", "path", path, "rows", len(t.Rows), "columns", len(t.Columns))
	c.entries[path] = &cacheEntry{size: fi.Size(), mod: fi.ModTime(), sum: sum, table: t}
	return t, nil
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len is the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
