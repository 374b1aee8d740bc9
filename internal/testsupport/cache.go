package testsupport

import (
	"testing"

	"hdrgroup/internal/config"
	"hdrgroup/internal/logging"
	"hdrgroup/internal/metacache"
)

// MustOpenCache opens the metadata cache at cfg.Cache.Path and closes it when
// the test finishes.
func MustOpenCache(t testing.TB, cfg *config.Config) *metacache.Cache {
	t.Helper()

	cache, err := metacache.Open(cfg.Cache.Path, logging.NewNop())
	if err != nil {
		t.Fatalf("metacache.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache
}
