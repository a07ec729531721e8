// Package harness runs task-manager scenarios end to end.
//
// A scenario seeds tasks, applies a flow of operations against a fresh
// in-memory store, then checks listings, statistics and individual tasks.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: overdue_ordering
//	description: "Urgent tasks sort by deadline, missing deadlines last"
//	today: 2026-03-10
//	setup:
//	  - title: A
//	    priority: low
//	  - title: B
//	    priority: urgent
//	    deadline_days: -1
//	flow:
//	  - op: update
//	    id: 1
//	    status: done
//	    expect: { outcome: updated }
//	assertions:
//	  - type: list_order
//	    titles: [B, A]
//	  - type: stats
//	    overdue: 1
//	  - type: final_state
//	    id: 1
//	    expect: { status: done }
//
// deadline_days is relative to the scenario clock's current date, so the
// same file stays valid on any day it is run.
//
// # Operations
//
//   - add: create task (fields as in setup)
//   - update: set status of id
//   - delete: remove id
//   - advance: move the clock forward by days
//
// # Assertion Types
//
//   - list_order: titles returned by a filtered listing, in order
//   - stats: total, per-status and per-priority counts, overdue count
//   - final_state: field values of one task, or its absence
//
// # Deterministic Testing
//
// Every run uses a testutil.StepClock starting at noon on the scenario's
// today and a fixed run ID, so timestamps and golden snapshots are
// reproducible.
package harness
