// Package engine implements the task manager: the operations the command
// surface dispatches to.
//
// The engine sits on top of store.Store and adds the parts that are not a
// single SQL statement:
//   - stamping created_at/updated_at from an injectable Clock
//   - defaulting and NFC-normalizing new task fields
//   - JSON export of every task in standard order
//   - aggregate statistics, including the derived overdue count
//
// Every operation runs synchronously to completion. Storage errors are
// returned wrapped with the operation name and are never retried.
package engine
