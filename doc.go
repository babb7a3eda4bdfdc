// Package treediff computes edit scripts between two value trees.
//
// A value tree ([ir.Value]) is a map, table, sequence, text or scalar.
// Given the current state of a document held by a replication engine
// and a desired state, [Diff] returns the ordered ops which turn one
// into the other:
//
//	s, err := treediff.Diff(current, desired)
//	if err != nil {
//		return err
//	}
//	got, err := script.Apply(current, s) // got equals desired
//
// [Sync] does the same and hands the script to an [Engine].
//
// # Related Packages
//
//   - github.com/signadot/treediff/ir - value trees, paths
//   - github.com/signadot/treediff/script - ops, replay, wire codec
//   - github.com/signadot/treediff/libdiff - per kind differs
//   - github.com/signadot/treediff/gomap - Go values to and from trees
//   - github.com/signadot/treediff/parse, encode - YAML form of trees
//   - github.com/signadot/treediff/jsonpatch - RFC 6902 export
package treediff
