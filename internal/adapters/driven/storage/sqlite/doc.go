// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - DocumentStore: registered documents
//   - ResultStore: per-document acronym results
//   - AggregateStore: cross-document vote counts and verified overrides
//   - RefreshLog: history of stale-result refresh runs
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.acronyms/data/acronyms.db
//
// # Thread Safety
//
// All operations are thread-safe. Vote counts are changed with atomic
// upserts, never read-modify-write, and SQLite serialises writers in WAL mode.
package sqlite
