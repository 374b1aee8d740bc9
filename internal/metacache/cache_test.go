package metacache_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"hdrgroup/internal/metacache"
	"hdrgroup/internal/metadata"
	"hdrgroup/internal/testsupport"
)

func sampleTags() metadata.Tags {
	return metadata.NewTags(map[string]metadata.Value{
		metadata.TagDateTimeOriginal: metadata.TextValue("2024:05:01 10:00:00"),
		metadata.TagFNumber:          metadata.NumberValue(8),
		metadata.TagFocalLength:      metadata.NumberValue(24),
	})
}

func TestStoreAndLookup(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	cache := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	image := filepath.Join(t.TempDir(), "IMG_0001.jpg")
	testsupport.WriteFile(t, image, 64)
	key, err := metacache.KeyFor("native", image)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}

	if _, hit, err := cache.Lookup(ctx, key); err != nil || hit {
		t.Fatalf("expected miss before store, hit=%v err=%v", hit, err)
	}
	if err := cache.Store(ctx, key, sampleTags()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	tags, hit, err := cache.Lookup(ctx, key)
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if got, _, _ := tags.Lookup(metadata.TagFNumber).Number(); got != 8 {
		t.Fatalf("expected FNumber 8, got %v", got)
	}

	other := key
	other.Extractor = "exiftool"
	if _, hit, _ := cache.Lookup(ctx, other); hit {
		t.Fatal("expected entries to be scoped by extractor")
	}

	testsupport.WriteFile(t, image, 128)
	changed, err := metacache.KeyFor("native", image)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	if _, hit, _ := cache.Lookup(ctx, changed); hit {
		t.Fatal("expected miss after file changed")
	}
}

func TestKeyForUsesAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "IMG_0001.jpg"), 64)
	t.Chdir(dir)

	key, err := metacache.KeyFor("native", "IMG_0001.jpg")
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	want, err := filepath.Abs("IMG_0001.jpg")
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if key.Path != want || !filepath.IsAbs(key.Path) {
		t.Fatalf("key path = %q, want %q", key.Path, want)
	}

	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	cache := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()
	if err := cache.Store(ctx, key, sampleTags()); err != nil {
		t.Fatalf("Store: %v", err)
	}

	t.Chdir(t.TempDir())
	removed, err := cache.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected entry to survive prune from another directory, removed %d", removed)
	}
	again, err := metacache.KeyFor("native", key.Path)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	if _, hit, err := cache.Lookup(ctx, again); err != nil || !hit {
		t.Fatalf("expected hit by absolute path, hit=%v err=%v", hit, err)
	}
}

func TestPruneAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	cache := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()
	dir := t.TempDir()

	keep := filepath.Join(dir, "keep.jpg")
	gone := filepath.Join(dir, "gone.jpg")
	touched := filepath.Join(dir, "touched.jpg")
	for _, path := range []string{keep, gone, touched} {
		testsupport.WriteFile(t, path, 32)
		key, err := metacache.KeyFor("native", path)
		if err != nil {
			t.Fatalf("KeyFor: %v", err)
		}
		if err := cache.Store(ctx, key, sampleTags()); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}
	if err := os.Remove(gone); err != nil {
		t.Fatalf("remove: %v", err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(touched, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := cache.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 pruned entries, got %d", removed)
	}
	if n, _ := cache.Count(ctx); n != 1 {
		t.Fatalf("expected 1 entry left, got %d", n)
	}

	cleared, err := cache.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared entry, got %d", cleared)
	}
}

func TestOpenWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	_ = testsupport.MustOpenCache(t, cfg)

	_, err := metacache.Open(cfg.Cache.Path, nil)
	if !errors.Is(err, metacache.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestReopenAfterClose(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	ctx := context.Background()
	image := filepath.Join(t.TempDir(), "a.jpg")
	testsupport.WriteFile(t, image, 16)
	key, err := metacache.KeyFor("native", image)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}

	first, err := metacache.Open(cfg.Cache.Path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Store(ctx, key, sampleTags()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := testsupport.MustOpenCache(t, cfg)
	if _, hit, err := second.Lookup(ctx, key); err != nil || !hit {
		t.Fatalf("expected persisted entry, hit=%v err=%v", hit, err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	cache, err := metacache.Open(cfg.Cache.Path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.Cache.Path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = db.Close()

	_, err = metacache.Open(cfg.Cache.Path, nil)
	if !errors.Is(err, metacache.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	cache, err := metacache.Open(cfg.Cache.Path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := metacache.Remove(cfg.Cache.Path); !errors.Is(err, metacache.ErrLocked) {
		t.Fatalf("expected ErrLocked while open, got %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := metacache.Remove(cfg.Cache.Path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(cfg.Cache.Path); !os.IsNotExist(err) {
		t.Fatalf("expected database to be removed, stat err=%v", err)
	}
}
