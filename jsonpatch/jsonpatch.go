package jsonpatch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// Operation is one RFC 6902 operation.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// FromScript converts s, a script meant for doc, into a JSON Patch
// document.  Ops without a JSON Patch counterpart (counter increments
// and text ranges) become replacements by the value they produce, which
// is found by replaying s against doc.
func FromScript(doc ir.Value, s script.Script) ([]byte, error) {
	ops, err := Operations(doc, s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ops)
}

// Operations is like [FromScript] but returns the operations unencoded.
func Operations(doc ir.Value, s script.Script) ([]Operation, error) {
	cur := ir.OrNull(doc).Clone()
	res := make([]Operation, 0, len(s))
	for i := range s {
		op := &s[i]
		var err error
		cur, err = script.ApplyOp(cur, op)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		jop, err := operation(cur, op)
		if err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Type, err)
		}
		res = append(res, jop)
	}
	return res, nil
}

// operation converts op, with after the document once op is applied.
func operation(after ir.Value, op *script.Op) (Operation, error) {
	ptr := Pointer(op.Target())
	switch op.Type {
	case script.SetMapValue, script.InsertSequenceElement:
		v, err := ToJSONAny(op.Value)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: "add", Path: ptr, Value: nullable(v)}, nil
	case script.RemoveMapKey, script.RemoveSequenceElement:
		return Operation{Op: "remove", Path: ptr}, nil
	case script.SetScalar:
		v, err := ToJSONAny(op.Value)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: "replace", Path: ptr, Value: nullable(v)}, nil
	case script.SetTextRange, script.IncrementCounter:
		cur, err := ir.Get(after, op.Path)
		if err != nil {
			return Operation{}, err
		}
		v, err := ToJSONAny(cur)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: "replace", Path: ptr, Value: v}, nil
	}
	return Operation{}, fmt.Errorf("%w: op type %d", ErrUnsupported, op.Type)
}

type jsonNull struct{}

func (jsonNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// nullable keeps null values from being dropped by omitempty.
func nullable(v any) any {
	if v == nil {
		return jsonNull{}
	}
	return v
}

// Pointer renders p as an RFC 6901 JSON Pointer.
func Pointer(p ir.Path) string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.Index != nil {
			b.WriteString(strconv.Itoa(*seg.Index))
			continue
		}
		b.WriteString(escaper.Replace(*seg.Field))
	}
	return b.String()
}

var escaper = strings.NewReplacer("~", "~0", "/", "~1")
