// Package numbering annotates antibody chains with germline assignments
// produced by an external numbering tool.
//
// Sequences are split into fixed-size batches and dispatched to a bounded
// pool of workers. Each batch ends as exactly one Result: a Success with
// its assignments, or a Failure carrying the tool's error text. A failed
// batch never stops its siblings; its sequences are simply left without
// an assignment.
package numbering
