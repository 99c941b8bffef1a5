package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(7)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}
	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
	if cache.program != 7 {
		t.Errorf("expected program 7, got %d", cache.program)
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["uTime"] = 3
	cache.locations["uUnused"] = -1

	// Cached entries are served without touching GL.
	if loc := cache.GetLocation("uTime"); loc != 3 {
		t.Errorf("expected cached location 3, got %d", loc)
	}
	if loc := cache.GetLocation("uUnused"); loc != -1 {
		t.Errorf("expected cached -1 for an optimized-out uniform, got %d", loc)
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["uPaperTexture"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}
