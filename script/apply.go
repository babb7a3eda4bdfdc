package script

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/treediff/debug"
	"github.com/signadot/treediff/ir"
)

var ErrApply = errors.New("cannot apply op")

// Apply replays s in order against a copy of doc and returns the
// result.  doc is not modified.  Apply fails on the first op that does
// not fit the tree it is applied to.
func Apply(doc ir.Value, s Script) (ir.Value, error) {
	res := ir.OrNull(doc).Clone()
	for i := range s {
		var err error
		res, err = ApplyOp(res, &s[i])
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return res, nil
}

// ApplyOp applies op to doc in place and returns the resulting root,
// which differs from doc only when op replaces the root.
func ApplyOp(doc ir.Value, op *Op) (ir.Value, error) {
	if debug.Apply() {
		debug.Logf("apply %s\n", op)
	}
	if op.Type == SetScalar {
		return setAt(doc, op.Path, op.Value)
	}
	target, err := ir.Get(doc, op.Path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrApply, op.Type, err)
	}
	switch op.Type {
	case SetMapValue, RemoveMapKey:
		m, ok := target.(*ir.Map)
		if !ok {
			return nil, kindErr(op, ir.MapKind, target)
		}
		if op.Type == SetMapValue {
			m.Entries[op.Key] = ir.OrNull(op.Value).Clone()
			return doc, nil
		}
		if _, ok := m.Entries[op.Key]; !ok {
			return nil, fmt.Errorf("%w %s: no key %q at %s", ErrApply, op.Type, op.Key, op.Path)
		}
		delete(m.Entries, op.Key)
	case InsertSequenceElement, RemoveSequenceElement:
		seq, ok := target.(*ir.Sequence)
		if !ok {
			return nil, kindErr(op, ir.SequenceKind, target)
		}
		n := len(seq.Values)
		if op.Type == InsertSequenceElement {
			if op.Index < 0 || op.Index > n {
				return nil, rangeErr(op, n)
			}
			seq.Values = slices.Insert(seq.Values, op.Index, ir.OrNull(op.Value).Clone())
			return doc, nil
		}
		if op.Index < 0 || op.Index >= n {
			return nil, rangeErr(op, n)
		}
		seq.Values = slices.Delete(seq.Values, op.Index, op.Index+1)
	case SetTextRange:
		txt, ok := target.(*ir.Text)
		if !ok {
			return nil, kindErr(op, ir.TextKind, target)
		}
		n := len(txt.Graphemes)
		if op.Index < 0 || op.Count < 0 || op.Index+op.Count > n {
			return nil, rangeErr(op, n)
		}
		txt.Graphemes = slices.Replace(txt.Graphemes, op.Index, op.Index+op.Count, op.Text...)
	case IncrementCounter:
		sc, ok := target.(*ir.Scalar)
		if !ok || sc.Type != ir.CounterType {
			return nil, fmt.Errorf("%w %s: expected Counter at %s, got %s", ErrApply, op.Type, op.Path, describe(target))
		}
		sc.Int64 += op.Delta
	default:
		return nil, fmt.Errorf("%w: unknown op type %d", ErrApply, op.Type)
	}
	return doc, nil
}

func setAt(doc ir.Value, p ir.Path, v ir.Value) (ir.Value, error) {
	v = ir.OrNull(v).Clone()
	if len(p) == 0 {
		return v, nil
	}
	parentPath, seg := p.Parent()
	parent, err := ir.Get(doc, parentPath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrApply, SetScalar, err)
	}
	switch x := parent.(type) {
	case *ir.Map:
		if seg.Field == nil {
			return nil, fmt.Errorf("%w %s: index into Map at %s", ErrApply, SetScalar, parentPath)
		}
		x.Entries[*seg.Field] = v
	case *ir.Sequence:
		if seg.Index == nil {
			return nil, fmt.Errorf("%w %s: field of Sequence at %s", ErrApply, SetScalar, parentPath)
		}
		i := *seg.Index
		if i < 0 || i >= len(x.Values) {
			return nil, fmt.Errorf("%w %s: index %d out of range (len %d) at %s", ErrApply, SetScalar, i, len(x.Values), parentPath)
		}
		x.Values[i] = v
	default:
		return nil, fmt.Errorf("%w %s: no container at %s, got %s", ErrApply, SetScalar, parentPath, describe(parent))
	}
	return doc, nil
}

func describe(v ir.Value) string {
	if s, ok := v.(*ir.Scalar); ok {
		return s.Type.String()
	}
	return v.Kind().String()
}

func kindErr(op *Op, want ir.Kind, got ir.Value) error {
	return fmt.Errorf("%w %s: expected %s at %s, got %s", ErrApply, op.Type, want, op.Path, describe(got))
}

func rangeErr(op *Op, n int) error {
	if op.Type == SetTextRange {
		return fmt.Errorf("%w %s: range %d:%d out of bounds (len %d) at %s", ErrApply, op.Type, op.Index, op.Count, n, op.Path)
	}
	return fmt.Errorf("%w %s: index %d out of bounds (len %d) at %s", ErrApply, op.Type, op.Index, n, op.Path)
}
