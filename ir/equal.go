package ir

import "slices"

// Equal reports whether a and b are structurally equal.
//
// Floats compare with ==, so NaN is unequal to every value including
// itself and +0 equals -0.  Map entry order is not significant.
func Equal(a, b Value) bool {
	a, b = OrNull(a), OrNull(b)
	if !SameShape(a, b) {
		return false
	}
	switch x := a.(type) {
	case *Scalar:
		return equalScalars(x, b.(*Scalar))
	case *Text:
		return slices.Equal(x.Graphemes, b.(*Text).Graphemes)
	case *Sequence:
		return equalSequences(x, b.(*Sequence))
	case *Map:
		return equalMaps(x, b.(*Map))
	}
	return false
}

// SameShape reports whether a and b have the same kind and, for maps,
// the same map type.  Values of different shape are only ever replaced
// wholesale.
func SameShape(a, b Value) bool {
	a, b = OrNull(a), OrNull(b)
	if a.Kind() != b.Kind() {
		return false
	}
	if am, ok := a.(*Map); ok {
		return am.Type == b.(*Map).Type
	}
	return true
}

func equalScalars(a, b *Scalar) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case StrType:
		return a.String == b.String
	case IntType, CounterType, TimestampType:
		return a.Int64 == b.Int64
	case UintType:
		return a.Uint64 == b.Uint64
	case F64Type:
		return a.Float64 == b.Float64
	case F32Type:
		return a.Float32 == b.Float32
	case BoolType:
		return a.Bool == b.Bool
	case CursorType:
		return a.Cursor == b.Cursor
	}
	return false
}

func equalSequences(a, b *Sequence) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

func equalMaps(a, b *Map) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for k, av := range a.Entries {
		bv, ok := b.Entries[k]
		if !ok {
			return false
		}
		if !Equal(av, bv) {
			return false
		}
	}
	return true
}
