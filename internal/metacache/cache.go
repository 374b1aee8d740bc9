package metacache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"hdrgroup/internal/logging"
	"hdrgroup/internal/metadata"
)

// ErrLocked reports that another process owns the cache.
var ErrLocked = errors.New("metadata cache locked by another process")

// Key identifies one cached extraction.
type Key struct {
	Extractor string
	Path      string
	Size      int64
	ModTime   time.Time
}

// KeyFor stats path and builds its cache key. Keys always hold absolute
// paths so entries survive runs from other working directories.
func KeyFor(extractor, path string) (Key, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return Key{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Key{}, err
	}
	if !info.Mode().IsRegular() {
		return Key{}, fmt.Errorf("%s is not a regular file", path)
	}
	return Key{Extractor: extractor, Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Cache is an open metadata cache holding the writer lock.
type Cache struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open acquires the cache lock and opens (or creates) the database at path.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{
		db:     db,
		path:   path,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "metacache"),
	}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = cache.Close()
		return nil, err
	}
	return cache, nil
}

// Remove deletes the database at path along with its WAL files. It takes the
// cache lock, so it fails with ErrLocked while a run is using the cache.
func Remove(path string) error {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path+".lock")
	}
	defer func() { _ = lock.Unlock() }()

	for _, name := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// Path returns the database location.
func (c *Cache) Path() string { return c.path }

// Close closes the database and releases the lock.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	if unlockErr := c.lock.Unlock(); unlockErr != nil && err == nil {
		err = unlockErr
	}
	c.db = nil
	return err
}

// Lookup returns the cached tags for key. A stored entry whose size or
// modification time no longer match is a miss.
func (c *Cache) Lookup(ctx context.Context, key Key) (metadata.Tags, bool, error) {
	var tagsJSON string
	err := c.db.QueryRowContext(ctx,
		`SELECT tags_json FROM tag_cache
         WHERE extractor = ? AND path = ? AND size = ? AND mtime_ns = ?`,
		key.Extractor, key.Path, key.Size, key.ModTime.UnixNano(),
	).Scan(&tagsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return metadata.Tags{}, false, nil
	}
	if err != nil {
		return metadata.Tags{}, false, fmt.Errorf("lookup %s: %w", key.Path, err)
	}
	var tags metadata.Tags
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return metadata.Tags{}, false, fmt.Errorf("decode cached tags for %s: %w", key.Path, err)
	}
	return tags, true, nil
}

// Store records tags for key, replacing any previous entry for the path.
func (c *Cache) Store(ctx context.Context, key Key, tags metadata.Tags) error {
	payload, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags for %s: %w", key.Path, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tag_cache (extractor, path, size, mtime_ns, tags_json, cached_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		key.Extractor, key.Path, key.Size, key.ModTime.UnixNano(), string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", key.Path, err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM tag_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Clear removes every entry and returns how many were deleted.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM tag_cache")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// Prune removes entries whose file is gone or has changed since it was cached.
func (c *Cache) Prune(ctx context.Context) (int, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT extractor, path, size, mtime_ns FROM tag_cache")
	if err != nil {
		return 0, fmt.Errorf("list entries: %w", err)
	}
	var stale []Key
	for rows.Next() {
		var (
			key   Key
			mtime int64
		)
		if err := rows.Scan(&key.Extractor, &key.Path, &key.Size, &mtime); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan entry: %w", err)
		}
		current, statErr := KeyFor(key.Extractor, key.Path)
		if statErr != nil || current.Size != key.Size || current.ModTime.UnixNano() != mtime {
			stale = append(stale, key)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("iterate entries: %w", err)
	}
	_ = rows.Close()

	for _, key := range stale {
		if _, err := c.db.ExecContext(ctx,
			"DELETE FROM tag_cache WHERE extractor = ? AND path = ?", key.Extractor, key.Path,
		); err != nil {
			return 0, fmt.Errorf("delete %s: %w", key.Path, err)
		}
	}
	if len(stale) > 0 {
		c.logger.Info("metadata cache pruned", logging.Int("removed", len(stale)))
	}
	return len(stale), nil
}
