// Package harness runs fuzzint scenario files as conformance tests.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: fuzzy_load
//	description: "Load estimates combine as fuzzy sets"
//	terms: 8
//	setup:
//	  - define: base
//	    literal: "{10, 2, 3}"
//	steps:
//	  - op: add
//	    args: ["@base", "{5, 1, 2}"]
//	    expect:
//	      result: "{15, 3, 5}"
//	  - op: div
//	    args: ["[1, 2]", "[-1, 1]"]
//	    expect:
//	      error: DIVISION_UNDEFINED
//	assertions:
//	  - type: trace_count
//	    op: add
//	    count: 1
//
// Setup entries are stored in a fresh in-memory catalog before the first
// step, so steps may refer to them as @name. A step without expect must
// succeed. Unknown fields are rejected.
//
// # Assertion Types
//
//   - trace_contains: an evaluation of op (with args, when given) is in the trace
//   - trace_order: the ops first appear in the given order
//   - trace_count: op was evaluated exactly count times
//   - history_count: the evaluation log holds count entries for op
//
// # Deterministic Testing
//
// Every run starts a fresh engine.Clock at seq 1 and numbers evaluations with
// testutil.SequentialIDs, so the trace of a scenario is identical across runs
// and can be compared with a golden file (see RunWithGolden).
package harness
