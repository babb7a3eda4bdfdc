package libdiff

import (
	"slices"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// DiffSequence aligns from and to and emits
//
//  1. removals of unmatched elements of from, highest index first
//  2. insertions of unmatched elements of to, lowest index first
//  3. the diffs of matched pairs, at their index in to
//
// After 1 and 2 the sequence has the layout of to, so the indices used
// in 3 are valid.
func DiffSequence(from, to *ir.Sequence, path ir.Path, cfg *Config, df DiffFunc) (script.Script, error) {
	steps := align(summaries(from.Values), summaries(to.Values), cfg)
	removed, inserted, matched := pairUp(steps)

	var res script.Script
	for _, fi := range slices.Backward(removed) {
		res = append(res, script.NewRemoveSequenceElement(path, fi))
	}
	for _, ti := range inserted {
		tv := ir.OrNull(to.Values[ti])
		if err := Writable(path.Index(ti), tv); err != nil {
			return nil, err
		}
		res = append(res, script.NewInsertSequenceElement(path, ti, tv.Clone()))
	}
	for _, m := range matched {
		sub, err := df(from.Values[m.from], to.Values[m.to], path.Index(m.to))
		if err != nil {
			return nil, err
		}
		res = append(res, sub...)
	}
	return res, nil
}

// summaries returns the canonical encoding of each value, so that equal
// summaries mean equal values except for NaNs, which the recursive diff
// of an aligned pair still replaces.
func summaries(vs []ir.Value) []string {
	res := make([]string, len(vs))
	for i, v := range vs {
		res[i] = encode.MustString(v)
	}
	return res
}
