// Package metacache stores extracted capture tags in SQLite so repeated runs
// over the same shoot skip re-reading unchanged files.
//
// Entries are keyed by extractor name and path and are only served while the
// file's size and modification time still match. Group results are never
// stored; every run regroups from the cached tags.
//
// A single writer is enforced with an advisory lock next to the database. Open
// returns ErrLocked when another process holds it; callers run uncached.
//
// The database is disposable. Schema changes bump schemaVersion; users clear
// the cache to adopt the new schema.
package metacache
