// Package storage persists the last-run state between invocations.
//
// Drivers:
//   - "file": a pretty-printed JSON document, replaced atomically on save
//   - "sqlite": a SQLite database that also keeps a per-execution history
//
// Loading never fails: an absent, unreadable or corrupt resource is treated
// as an empty state so a bad file never blocks scheduling. Saving reports
// every error to the caller.
package storage
