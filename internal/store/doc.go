// Package store provides SQLite-backed durable storage for tasks.
//
// The store owns one table, tasks, plus secondary indexes on status,
// priority and deadline. Schema creation is idempotent and runs on every
// Open.
//
// # Storage Rules
//
//   - Priority and status are stored as their lowercase text value and
//     restricted by CHECK constraints
//   - Tags are stored as a JSON array, never NULL
//   - Deadline is YYYY-MM-DD text or NULL
//   - Timestamps use task.TimestampLayout so text order is time order
//   - updated_at only moves forward: status updates write max(old, new)
//
// # Query Order
//
// List always returns priority rank (urgent first), then deadline ascending
// with missing deadlines last, then created_at, then id.
//
// # Database Configuration
//
//   - WAL mode: readers do not block the writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks held by another process
package store
