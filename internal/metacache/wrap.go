package metacache

import (
	"context"
	"fmt"

	"hdrgroup/internal/extract"
	"hdrgroup/internal/logging"
)

type cachedExtractor struct {
	inner extract.Extractor
	cache *Cache
}

// Wrap serves extractions from cache when possible and stores fresh results.
// Cache failures are logged and fall back to the inner extractor.
func Wrap(inner extract.Extractor, cache *Cache) extract.Extractor {
	if cache == nil {
		return inner
	}
	return &cachedExtractor{inner: inner, cache: cache}
}

func (c *cachedExtractor) Name() string { return c.inner.Name() }

func (c *cachedExtractor) Extract(ctx context.Context, paths []string) ([]extract.Item, error) {
	items := make([]extract.Item, len(paths))
	keys := make(map[int]Key, len(paths))
	var (
		missPaths []string
		missIndex []int
	)
	for i, path := range paths {
		key, err := KeyFor(c.inner.Name(), path)
		if err == nil {
			keys[i] = key
			tags, hit, lookupErr := c.cache.Lookup(ctx, key)
			if lookupErr != nil {
				logging.WarnWithContext(c.cache.logger, "metadata cache lookup failed", "cache_lookup_failed",
					logging.String(logging.FieldImage, path),
					logging.Error(lookupErr),
					logging.String(logging.FieldImpact, "file is re-read"),
				)
			}
			if hit {
				items[i] = extract.Item{Path: path, Tags: tags}
				continue
			}
		}
		missPaths = append(missPaths, path)
		missIndex = append(missIndex, i)
	}

	c.cache.logger.Debug("metadata cache lookup",
		logging.Int("hits", len(paths)-len(missPaths)),
		logging.Int("misses", len(missPaths)),
	)
	if len(missPaths) == 0 {
		return items, nil
	}

	fresh, err := c.inner.Extract(ctx, missPaths)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missPaths) {
		return nil, fmt.Errorf("%s extractor returned %d items for %d paths", c.inner.Name(), len(fresh), len(missPaths))
	}
	for j, item := range fresh {
		i := missIndex[j]
		items[i] = item
		key, ok := keys[i]
		if !ok || item.Err != nil {
			continue
		}
		if storeErr := c.cache.Store(ctx, key, item.Tags); storeErr != nil {
			logging.WarnWithContext(c.cache.logger, "metadata cache store failed", "cache_store_failed",
				logging.String(logging.FieldImage, item.Path),
				logging.Error(storeErr),
				logging.String(logging.FieldImpact, "file is re-read next run"),
			)
		}
	}
	return items, nil
}
