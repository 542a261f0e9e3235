// Package store provides SQLite-backed storage for fuzzint.
//
// Two tables:
//   - quantities: named intervals, fuzzy sets and scalars, referenced from
//     the command line as @name
//   - evaluations: an append-only log of every evaluated operation
//
// Decimal bounds are written and read through apd's driver.Valuer and
// sql.Scanner implementations, so no value passes through float64.
// Operand lists are stored as canonical JSON.
//
// All log queries order by seq ASC, id ASC COLLATE BINARY so repeated
// reads return rows in the same order.
package store
