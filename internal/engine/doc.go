// Package engine evaluates named interval and fuzzy-set operations.
//
// A Request names an operation from a fixed table ("add", "div", "sin",
// "membership", ...) and lists its operands as literals:
//
//	[1, 2]        interval
//	{10, 2, 3}    fuzzy set (center, left, right)
//	0.5           scalar
//	@name         quantity stored in the catalog
//
// Each evaluation is stamped with a seq from a logical clock and an id from
// an IDGenerator, and is optionally appended to the evaluation log. Tests
// and the scenario harness swap in deterministic clocks and id generators so
// repeated runs produce identical output.
//
// The engine only dispatches. Every numeric rule lives in packages interval
// and fuzzy, and their errors reach the caller unchanged; ErrorCode maps any
// of them to a stable string.
package engine
