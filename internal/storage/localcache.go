package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// LocalCache is the fallback image store: a JSON file holding a flat
// key -> URL (or data URL) map. It backs the last tier of the image
// resolution chain, so every operation is best-effort and a missing or
// unreadable file reads as empty. Writes are read-modify-write under a
// single mutex; concurrent processes race last-write-wins.
type LocalCache struct {
	mu   sync.Mutex
	path string
}

// NewLocalCache returns a cache persisted at path. An empty path yields a
// cache that is always empty and drops writes, for contexts with no
// writable local storage.
func NewLocalCache(path string) *LocalCache {
	return &LocalCache{path: path}
}

func (c *LocalCache) load() map[string]string {
	m := map[string]string{}
	if c.path == "" {
		return m
	}
	b, err := os.ReadFile(c.path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]string{}
	}
	return m
}

func (c *LocalCache) save(m map[string]string) error {
	if c.path == "" {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(c.path, b, 0644)
}

func (c *LocalCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.load()[key]
	return v, ok
}

func (c *LocalCache) Set(key, val string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.load()
	m[key] = val
	return c.save(m)
}

func (c *LocalCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.load()
	delete(m, key)
	return c.save(m)
}

// All returns a copy of every cached entry.
func (c *LocalCache) All() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}
