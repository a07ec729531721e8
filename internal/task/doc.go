// Package task defines the task domain model shared by every other package.
//
// The package holds type definitions and pure helpers only. It imports
// nothing internal, so store, engine and cli can all depend on it without
// cycles.
//
// Key constraints:
//   - Priority and Status travel as their lowercase text value everywhere:
//     in SQLite columns, in JSON export, and on the command line
//   - Deadlines are calendar dates (YYYY-MM-DD), never instants
//   - Timestamps use a fixed-width layout so lexical order is chronological
package task
