// Package taxonomy declares the canonical operation-sequence shape of a
// contract's output and implements the matcher that checks a candidate
// sequence against it.
//
// A taxonomy is a flat, ordered list of typed entries. Entries may be
// optional (absence is skipped silently) and positions may carry a
// semantic rule making a contiguous group of entries a repeatable
// bundle. The matcher walks the entries greedily, left to right, with
// no backtracking: if a longer bundle match at a later offset would
// have let a subsequent required entry succeed, it is never attempted.
// Taxonomy authors must structure repeatable groups so that greedy
// consumption is always correct for the intended input shapes; in
// practice that means bundles go at the tail of a taxonomy.
//
// Construction is pure data with no I/O. An empty taxonomy accepts
// nothing: an unconfigured contract must not silently validate
// arbitrary content.
package taxonomy
