package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
)

// OpType is the kind of mutation an [Op] performs.
type OpType int

const (
	SetMapValue OpType = iota
	RemoveMapKey
	InsertSequenceElement
	RemoveSequenceElement
	SetTextRange
	IncrementCounter
	SetScalar
)

var opTypeNames = map[OpType]string{
	SetMapValue:           "SetMapValue",
	RemoveMapKey:          "RemoveMapKey",
	InsertSequenceElement: "InsertSequenceElement",
	RemoveSequenceElement: "RemoveSequenceElement",
	SetTextRange:          "SetTextRange",
	IncrementCounter:      "IncrementCounter",
	SetScalar:             "SetScalar",
}

func (t OpType) String() string {
	s, ok := opTypeNames[t]
	if ok {
		return s
	}
	return "<unknown op>"
}

func (t OpType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *OpType) UnmarshalText(d []byte) error {
	for ot, name := range opTypeNames {
		if name == string(d) {
			*t = ot
			return nil
		}
	}
	return fmt.Errorf("unrecognized op type %q", d)
}

// Op is one instruction of an edit script.  Which fields are meaningful
// depends on Type:
//
//   - SetMapValue: Path, Key, Value
//   - RemoveMapKey: Path, Key
//   - InsertSequenceElement: Path, Index, Value
//   - RemoveSequenceElement: Path, Index
//   - SetTextRange: Path, Index, Count, Text; the graphemes
//     [Index, Index+Count) are replaced by Text
//   - IncrementCounter: Path, Delta
//   - SetScalar: Path, Value; replaces whatever is at Path, the whole
//     document when Path is empty
//
// Indices are relative to the tree as it is when the op is applied.
type Op struct {
	Type  OpType
	Path  ir.Path
	Key   string
	Index int
	Count int
	Value ir.Value
	Text  []string
	Delta int64
}

// Script is an ordered list of ops.
type Script []Op

func NewSetMapValue(p ir.Path, key string, v ir.Value) Op {
	return Op{Type: SetMapValue, Path: p, Key: key, Value: v}
}

func NewRemoveMapKey(p ir.Path, key string) Op {
	return Op{Type: RemoveMapKey, Path: p, Key: key}
}

func NewInsertSequenceElement(p ir.Path, index int, v ir.Value) Op {
	return Op{Type: InsertSequenceElement, Path: p, Index: index, Value: v}
}

func NewRemoveSequenceElement(p ir.Path, index int) Op {
	return Op{Type: RemoveSequenceElement, Path: p, Index: index}
}

func NewSetTextRange(p ir.Path, index, count int, text []string) Op {
	return Op{Type: SetTextRange, Path: p, Index: index, Count: count, Text: text}
}

func NewIncrementCounter(p ir.Path, delta int64) Op {
	return Op{Type: IncrementCounter, Path: p, Delta: delta}
}

func NewSetScalar(p ir.Path, v ir.Value) Op {
	return Op{Type: SetScalar, Path: p, Value: v}
}

// Target returns the path of the value the op changes.
func (op *Op) Target() ir.Path {
	switch op.Type {
	case SetMapValue, RemoveMapKey:
		return op.Path.Field(op.Key)
	case InsertSequenceElement, RemoveSequenceElement:
		return op.Path.Index(op.Index)
	}
	return op.Path
}

func (op Op) String() string {
	return op.format(nil)
}

func (op *Op) format(opts []encode.EncodeOption) string {
	var b strings.Builder
	b.WriteString(op.Type.String())
	b.WriteByte(' ')
	b.WriteString(op.Path.String())
	switch op.Type {
	case SetMapValue:
		fmt.Fprintf(&b, " %s %s", strconv.Quote(op.Key), encode.MustString(op.Value, opts...))
	case RemoveMapKey:
		fmt.Fprintf(&b, " %s", strconv.Quote(op.Key))
	case InsertSequenceElement:
		fmt.Fprintf(&b, " %d %s", op.Index, encode.MustString(op.Value, opts...))
	case RemoveSequenceElement:
		fmt.Fprintf(&b, " %d", op.Index)
	case SetTextRange:
		fmt.Fprintf(&b, " %d:%d %s", op.Index, op.Count, strconv.Quote(strings.Join(op.Text, "")))
	case IncrementCounter:
		fmt.Fprintf(&b, " %+d", op.Delta)
	case SetScalar:
		fmt.Fprintf(&b, " %s", encode.MustString(op.Value, opts...))
	}
	return b.String()
}

// Format writes s one op per line, with values encoded using opts.
func (s Script) Format(opts ...encode.EncodeOption) string {
	var b strings.Builder
	for i := range s {
		b.WriteString(s[i].format(opts))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s Script) String() string {
	return s.Format()
}
