package price

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Cache stores historical prices keyed by "coinId-dd-mm-yyyy". Entries
// are immutable facts once written. Deleting the backing store is safe
// and equivalent to a cold cache.
type Cache interface {
	Get(key string) (float64, bool)
	Put(key string, price float64) error
	Len() int
}

// MemoryCache is a non-durable Cache for tests.
type MemoryCache map[string]float64

func (c MemoryCache) Get(key string) (float64, bool) {
	v, ok := c[key]
	return v, ok
}

func (c MemoryCache) Put(key string, price float64) error {
	c[key] = price
	return nil
}

func (c MemoryCache) Len() int { return len(c) }

// FileCache persists the price map as a JSON file. Every Put rewrites
// the whole file through a temp-file rename, so a crash after a
// successful fetch never loses the entry.
type FileCache struct {
	path   string
	prices map[string]float64
}

// LoadFileCache reads the cache file at path. A missing file yields an
// empty cache, not an error.
func LoadFileCache(path string) (*FileCache, error) {
	c := &FileCache{path: path, prices: map[string]float64{}}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(b, &c.prices); err != nil {
		return nil, err
	}
	if c.prices == nil {
		c.prices = map[string]float64{}
	}

	return c, nil
}

func (c *FileCache) Get(key string) (float64, bool) {
	v, ok := c.prices[key]
	return v, ok
}

func (c *FileCache) Put(key string, price float64) error {
	c.prices[key] = price
	return c.flush()
}

func (c *FileCache) Len() int { return len(c.prices) }

func (c *FileCache) flush() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(c.prices, "", "  ")
	if err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
