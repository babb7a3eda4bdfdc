// Package libdiff computes edit scripts between value trees of the
// same shape.
//
// # Usage
//
// The functions here handle one node pair each and delegate nested
// pairs to a [DiffFunc], normally the dispatcher in the treediff
// package:
//
//	ops, err := libdiff.DiffMap(from, to, path, df)
//	ops, err := libdiff.DiffSequence(from, to, path, cfg, df)
//	ops, err := libdiff.DiffText(from, to, path, cfg)
//	ops, err := libdiff.DiffScalar(from, to, path)
//
// Sequences and texts are aligned with diffmatchpatch over one rune per
// distinct element.  The resulting scripts remove from the highest index
// down, then insert from the lowest index up, then descend into matched
// elements, so every index is valid when its op is applied.
//
// # Related Packages
//
//   - github.com/signadot/treediff/ir - value trees
//   - github.com/signadot/treediff/script - the ops produced here
package libdiff
