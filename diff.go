package treediff

import (
	"fmt"
	"time"

	"github.com/signadot/treediff/debug"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/libdiff"
	"github.com/signadot/treediff/script"
)

// ErrIncompatible is returned by [Diff] when to can only be reached by
// writing a value a replication engine cannot accept, such as a
// cursor.
var ErrIncompatible = libdiff.ErrIncompatible

type DiffConfig struct {
	libdiff.Config
}

type DiffOpt func(*DiffConfig)

// IndexAligned makes sequences and texts align position by position
// rather than by longest common subsequence.  Scripts are still
// correct but reorders and shifts cost more ops.
func IndexAligned(v bool) DiffOpt {
	return func(c *DiffConfig) {
		c.IndexAligned = v
	}
}

// DiffTimeout bounds the time spent aligning any one sequence or text.
func DiffTimeout(d time.Duration) DiffOpt {
	return func(c *DiffConfig) {
		c.Timeout = d
	}
}

// Diff produces an edit script which, applied in order to from with
// [script.Apply], yields a tree equal to to.  If from and to are equal
// the script is empty.  A nil value is taken to be null.
//
//   - if the shapes of from and to differ (kind, or Map versus Table),
//     the result replaces the value at that path with a SetScalar.
//
//   - for maps, keys only in from are removed, keys only in to or whose
//     value changed shape are set, in sorted key order, and the values
//     of shared keys are diffed recursively.
//
//   - for sequences, elements are aligned, unmatched elements removed
//     and inserted and matched pairs diffed recursively.
//
//   - for texts, each changed run of grapheme clusters becomes one
//     SetTextRange.
//
//   - counters are incremented by their difference, other unequal
//     scalars are replaced.
//
// Diff does not modify from or to, and ops never share values with to.
func Diff(from, to ir.Value, opts ...DiffOpt) (script.Script, error) {
	return DiffAt(from, to, nil, opts...)
}

// DiffAt is like [Diff] for from and to located at path in some larger
// tree; every op of the result is rooted at path.
func DiffAt(from, to ir.Value, path ir.Path, opts ...DiffOpt) (script.Script, error) {
	cfg := &DiffConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	d := &differ{cfg: &cfg.Config}
	res, err := d.diff(from, to, path)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = script.Script{}
	}
	return res, nil
}

type differ struct {
	cfg *libdiff.Config
}

func (d *differ) diff(from, to ir.Value, path ir.Path) (script.Script, error) {
	from, to = ir.OrNull(from), ir.OrNull(to)
	if debug.Diff() {
		debug.Logf("diff %s at %s: %s -> %s\n", from.Kind(), path, from, to)
	}
	if !ir.SameShape(from, to) {
		return libdiff.Replace(path, to)
	}
	switch x := from.(type) {
	case *ir.Map:
		return libdiff.DiffMap(x, to.(*ir.Map), path, d.diff)
	case *ir.Sequence:
		return libdiff.DiffSequence(x, to.(*ir.Sequence), path, d.cfg, d.diff)
	case *ir.Text:
		return libdiff.DiffText(x, to.(*ir.Text), path, d.cfg)
	case *ir.Scalar:
		return libdiff.DiffScalar(x, to.(*ir.Scalar), path)
	}
	panic(fmt.Sprintf("unknown value type %T", from))
}
