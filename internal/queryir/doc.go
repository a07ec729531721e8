// Package queryir describes task queries independently of SQL text.
//
// A Select names a table, an optional filter predicate and an ordered list of
// sort terms. The querysql package compiles it to parameterized SQLite SQL.
//
//	[store.Filter] → [queryir.Select] → [querysql.Compile] → SQL + params
//
// Predicates:
//   - Equals: field = value
//   - Contains: term is a substring of at least one of the fields
//   - And: every predicate holds
//
// Order terms:
//   - Ranked: sort by the position of the field value in a fixed ranking
//   - Ascending: plain ascending sort, optionally with NULLs after all values
//
// Predicate and OrderTerm are sealed: only this package implements them, so
// backend compilers can switch over them exhaustively.
package queryir
