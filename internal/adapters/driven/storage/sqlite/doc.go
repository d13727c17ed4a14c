// Package sqlite provides the SQLite-backed run history.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each finished search is one row of the runs table; the
// directories and toggle flags of the search are stored as JSON arrays.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.dupes/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on the locking SQLite
// provides in WAL mode.
package sqlite
