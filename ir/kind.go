package ir

import "fmt"

// Kind is the variant of a [Value].
type Kind int

const (
	ScalarKind Kind = iota
	MapKind
	SequenceKind
	TextKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ScalarKind:   "Scalar",
		MapKind:      "Map",
		SequenceKind: "Sequence",
		TextKind:     "Text",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Scalar":   ScalarKind,
		"Map":      MapKind,
		"Sequence": SequenceKind,
		"Text":     TextKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		ScalarKind,
		MapKind,
		SequenceKind,
		TextKind,
	}
}

// MapType distinguishes plain maps from tables. A map never changes
// type in place: a type change is a replacement.
type MapType int

const (
	GenericMap MapType = iota
	TableMap
)

func (t MapType) String() string {
	switch t {
	case GenericMap:
		return "Map"
	case TableMap:
		return "Table"
	}
	return "<unknown map type>"
}

func (t MapType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MapType) UnmarshalText(d []byte) error {
	switch string(d) {
	case "Map":
		*t = GenericMap
	case "Table":
		*t = TableMap
	default:
		return fmt.Errorf("unrecognized map type %q", d)
	}
	return nil
}

// ScalarType is the type of the payload of a [Scalar].
type ScalarType int

const (
	NullType ScalarType = iota
	StrType
	IntType
	UintType
	F64Type
	F32Type
	CounterType
	TimestampType
	BoolType
	CursorType
)

var scalarTypeNames = map[ScalarType]string{
	NullType:      "Null",
	StrType:       "Str",
	IntType:       "Int",
	UintType:      "Uint",
	F64Type:       "F64",
	F32Type:       "F32",
	CounterType:   "Counter",
	TimestampType: "Timestamp",
	BoolType:      "Boolean",
	CursorType:    "Cursor",
}

func (t ScalarType) String() string {
	s, ok := scalarTypeNames[t]
	if ok {
		return s
	}
	return "<unknown scalar type>"
}

func (t ScalarType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ScalarType) UnmarshalText(d []byte) error {
	for st, name := range scalarTypeNames {
		if name == string(d) {
			*t = st
			return nil
		}
	}
	return fmt.Errorf("unrecognized scalar type %q", d)
}

func ScalarTypes() []ScalarType {
	return []ScalarType{
		NullType,
		StrType,
		IntType,
		UintType,
		F64Type,
		F32Type,
		CounterType,
		TimestampType,
		BoolType,
		CursorType,
	}
}
