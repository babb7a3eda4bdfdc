package ir

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Value is a node of a value tree. It is implemented by [*Map],
// [*Sequence], [*Text] and [*Scalar] only.
type Value interface {
	Kind() Kind
	Clone() Value
	value()
}

type Map struct {
	Type    MapType
	Entries map[string]Value
}

type Sequence struct {
	Values []Value
}

// Text is a sequence of extended grapheme clusters.
type Text struct {
	Graphemes []string
}

// Scalar is a leaf value.  Counter and Timestamp payloads live in
// Int64.
type Scalar struct {
	Type    ScalarType
	String  string
	Int64   int64
	Uint64  uint64
	Float64 float64
	Float32 float32
	Bool    bool
	Cursor  Cursor
}

// Cursor is an opaque reference to a position in a replicated
// sequence or text.
type Cursor struct {
	Object string
	Elem   string
	Index  uint32
}

func (c Cursor) String() string {
	return c.Object + "/" + c.Elem + "/" + strconv.FormatUint(uint64(c.Index), 10)
}

func ParseCursor(s string) (Cursor, error) {
	i := strings.LastIndexByte(s, '/')
	if i == -1 {
		return Cursor{}, fmt.Errorf("%w: cursor %q missing index", ErrParse, s)
	}
	idx, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: cursor %q: %w", ErrParse, s, err)
	}
	j := strings.LastIndexByte(s[:i], '/')
	if j == -1 {
		return Cursor{}, fmt.Errorf("%w: cursor %q missing element", ErrParse, s)
	}
	return Cursor{Object: s[:j], Elem: s[j+1 : i], Index: uint32(idx)}, nil
}

func (*Map) Kind() Kind      { return MapKind }
func (*Sequence) Kind() Kind { return SequenceKind }
func (*Text) Kind() Kind     { return TextKind }
func (*Scalar) Kind() Kind   { return ScalarKind }

func (*Map) value()      {}
func (*Sequence) value() {}
func (*Text) value()     {}
func (*Scalar) value()   {}

func (m *Map) Clone() Value {
	res := &Map{Type: m.Type, Entries: make(map[string]Value, len(m.Entries))}
	for k, v := range m.Entries {
		res.Entries[k] = OrNull(v).Clone()
	}
	return res
}

func (s *Sequence) Clone() Value {
	res := &Sequence{Values: make([]Value, len(s.Values))}
	for i, v := range s.Values {
		res.Values[i] = OrNull(v).Clone()
	}
	return res
}

func (t *Text) Clone() Value {
	return &Text{Graphemes: slices.Clone(t.Graphemes)}
}

func (s *Scalar) Clone() Value {
	res := *s
	return &res
}

// Keys returns the keys of m in sorted order.
func (m *Map) Keys() []string {
	return slices.Sorted(maps.Keys(m.Entries))
}

func (t *Text) String() string {
	return strings.Join(t.Graphemes, "")
}

func (t *Text) Len() int {
	return len(t.Graphemes)
}

func FromMap(m map[string]Value) *Map {
	if m == nil {
		m = map[string]Value{}
	}
	return &Map{Type: GenericMap, Entries: m}
}

func FromTable(m map[string]Value) *Map {
	res := FromMap(m)
	res.Type = TableMap
	return res
}

func FromSlice(vs []Value) *Sequence {
	if vs == nil {
		vs = []Value{}
	}
	return &Sequence{Values: vs}
}

// FromText segments s into grapheme clusters.
func FromText(s string) *Text {
	return &Text{Graphemes: Graphemes(s)}
}

func FromGraphemes(gs []string) *Text {
	if gs == nil {
		gs = []string{}
	}
	return &Text{Graphemes: gs}
}

func FromString(v string) *Scalar {
	return &Scalar{Type: StrType, String: v}
}

func FromInt(v int64) *Scalar {
	return &Scalar{Type: IntType, Int64: v}
}

func FromUint(v uint64) *Scalar {
	return &Scalar{Type: UintType, Uint64: v}
}

func FromFloat(f float64) *Scalar {
	return &Scalar{Type: F64Type, Float64: f}
}

func FromFloat32(f float32) *Scalar {
	return &Scalar{Type: F32Type, Float32: f}
}

func FromCounter(v int64) *Scalar {
	return &Scalar{Type: CounterType, Int64: v}
}

func FromTimestamp(v int64) *Scalar {
	return &Scalar{Type: TimestampType, Int64: v}
}

func FromBool(v bool) *Scalar {
	return &Scalar{Type: BoolType, Bool: v}
}

func FromCursor(c Cursor) *Scalar {
	return &Scalar{Type: CursorType, Cursor: c}
}

func Null() *Scalar {
	return &Scalar{Type: NullType}
}

// OrNull maps a nil interface to Null.
func OrNull(v Value) Value {
	if v == nil {
		return Null()
	}
	return v
}

// Visit calls f on v and, when f returns true, on each child of v in
// deterministic order.
func Visit(v Value, f func(v Value) (bool, error)) error {
	dive, err := f(v)
	if err != nil {
		return err
	}
	if !dive {
		return nil
	}
	switch x := v.(type) {
	case *Map:
		for _, k := range x.Keys() {
			if err := Visit(x.Entries[k], f); err != nil {
				return err
			}
		}
	case *Sequence:
		for _, vv := range x.Values {
			if err := Visit(vv, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ContainsCursor reports whether v is or holds a cursor scalar.
func ContainsCursor(v Value) bool {
	found := false
	_ = Visit(v, func(v Value) (bool, error) {
		if s, ok := v.(*Scalar); ok && s.Type == CursorType {
			found = true
		}
		return !found, nil
	})
	return found
}
