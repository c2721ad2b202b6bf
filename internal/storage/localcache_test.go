package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "can_images.json")
	c := NewLocalCache(path)

	if _, ok := c.Get("Monster Energy_Normal"); ok {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set("Monster Energy_Normal", "data:image/png;base64,abc"); err != nil {
		t.Fatal(err)
	}
	v, ok := c.Get("Monster Energy_Normal")
	if !ok || v != "data:image/png;base64,abc" {
		t.Fatalf("want cached value, got %q ok=%v", v, ok)
	}

	// A fresh instance over the same file sees the entry.
	c2 := NewLocalCache(path)
	if v, ok := c2.Get("Monster Energy_Normal"); !ok || v == "" {
		t.Fatal("entry should persist across instances")
	}

	if err := c.Delete("Monster Energy_Normal"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("Monster Energy_Normal"); ok {
		t.Fatal("deleted entry should miss")
	}
}

func TestLocalCacheAllReturnsCopy(t *testing.T) {
	c := NewLocalCache(filepath.Join(t.TempDir(), "cache.json"))
	if err := c.Set("a_Normal", "1"); err != nil {
		t.Fatal(err)
	}
	m := c.All()
	m["a_Normal"] = "mutated"
	if v, _ := c.Get("a_Normal"); v != "1" {
		t.Fatal("mutating the returned map must not affect the cache")
	}
}

func TestLocalCacheEmptyPathIsAlwaysEmpty(t *testing.T) {
	c := NewLocalCache("")
	if err := c.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatal("pathless cache should drop writes")
	}
	if len(c.All()) != 0 {
		t.Fatal("pathless cache should read empty")
	}
}

func TestLocalCacheCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	c := NewLocalCache(path)
	if len(c.All()) != 0 {
		t.Fatal("corrupt file should read as empty, not error")
	}
}
