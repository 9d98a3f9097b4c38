// Package sqlite provides a SQLite-backed project database implementing
// the driven ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single database connection serves:
//
//   - AssetStore: Asset paths, labels and content
//   - ConsumerReflection: Consumers and their ordered asset slots
//   - RunStore: Consolidation history
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.consolidator/data/project.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
