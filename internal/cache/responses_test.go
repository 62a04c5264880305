package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/labelwise-ai/labelwise/harness/internal/cache"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

func newTestCache(t *testing.T, maxEntries int) *cache.ResponseCache {
	t.Helper()
	dir := t.TempDir()
	c, err := cache.NewResponseCache(filepath.Join(dir, "test.db"), maxEntries)
	if err != nil {
		t.Fatalf("NewResponseCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func sample(summary string) *types.StructuredResponse {
	return &types.StructuredResponse{
		Summary:    summary,
		Disclaimer: "Not medical advice.",
		Reasons:    []string{},
		Checks:     []string{"checked"},
		Flags:      []string{"soft_cheese"},
	}
}

func TestResponseCache_PutGet(t *testing.T) {
	c := newTestCache(t, 10)
	key := cache.ContentHash([]byte(`{"product": "brie"}`), "EU")

	if err := c.Put(key, sample("hit me")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached response, got nil")
	}
	if got.Summary != "hit me" {
		t.Errorf("summary: got %q", got.Summary)
	}
	if !got.HasFlag("soft_cheese") {
		t.Errorf("flags: got %v", got.Flags)
	}
}

func TestResponseCache_Miss(t *testing.T) {
	c := newTestCache(t, 10)
	got, err := c.Get("nonexistent")
	if err != nil {
		t.Fatalf("Get on miss: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got %v", got)
	}
}

func TestResponseCache_JurisdictionIsolation(t *testing.T) {
	payload := []byte(`{"product": "brie"}`)
	keyEU := cache.ContentHash(payload, "EU")
	keyUS := cache.ContentHash(payload, "US")
	if keyEU == keyUS {
		t.Fatal("same payload in different jurisdictions must hash differently")
	}

	c := newTestCache(t, 10)
	if err := c.Put(keyEU, sample("eu")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := c.Get(keyUS)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("US key should miss after EU put")
	}
}

func TestResponseCache_Eviction(t *testing.T) {
	c := newTestCache(t, 2)
	keys := []string{
		cache.ContentHash([]byte(`{"n": 1}`), ""),
		cache.ContentHash([]byte(`{"n": 2}`), ""),
		cache.ContentHash([]byte(`{"n": 3}`), ""),
	}
	for i, k := range keys {
		if err := c.Put(k, sample("v")); err != nil {
			t.Fatalf("Put %d: %v", i, err)
		}
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("entries after eviction: got %d, want 2", stats.Entries)
	}

	// The oldest entry is the one evicted.
	got, err := c.Get(keys[0])
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("oldest entry should have been evicted")
	}
}

func TestResponseCache_Clear(t *testing.T) {
	c := newTestCache(t, 10)
	key := cache.ContentHash([]byte(`{}`), "")
	if err := c.Put(key, sample("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ := c.Get(key)
	if got != nil {
		t.Error("expected nil after Clear")
	}
}
