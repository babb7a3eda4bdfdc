package jsonpatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/signadot/treediff/ir"
)

// ErrUnsupported is returned for values which have no JSON form.
var ErrUnsupported = errors.New("not representable in JSON")

// Marshal renders v as JSON.  Text becomes a string, counters and
// timestamps numbers and tables objects.  Cursors and non-finite floats
// are [ErrUnsupported].
func Marshal(v ir.Value) ([]byte, error) {
	a, err := ToJSONAny(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(a)
}

// ToJSONAny converts v to the values encoding/json produces when
// decoding into an any, except that integers keep their Go type.
func ToJSONAny(v ir.Value) (any, error) {
	switch x := ir.OrNull(v).(type) {
	case *ir.Map:
		res := make(map[string]any, len(x.Entries))
		for k, vv := range x.Entries {
			a, err := ToJSONAny(vv)
			if err != nil {
				return nil, err
			}
			res[k] = a
		}
		return res, nil
	case *ir.Sequence:
		res := make([]any, len(x.Values))
		for i, vv := range x.Values {
			a, err := ToJSONAny(vv)
			if err != nil {
				return nil, err
			}
			res[i] = a
		}
		return res, nil
	case *ir.Text:
		return x.String(), nil
	case *ir.Scalar:
		return scalarAny(x)
	}
	return nil, nil
}

func scalarAny(s *ir.Scalar) (any, error) {
	switch s.Type {
	case ir.NullType:
		return nil, nil
	case ir.StrType:
		return s.String, nil
	case ir.IntType, ir.CounterType, ir.TimestampType:
		return s.Int64, nil
	case ir.UintType:
		return s.Uint64, nil
	case ir.F64Type:
		if math.IsNaN(s.Float64) || math.IsInf(s.Float64, 0) {
			return nil, fmt.Errorf("%w: float %v", ErrUnsupported, s.Float64)
		}
		return s.Float64, nil
	case ir.F32Type:
		f := float64(s.Float32)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: float %v", ErrUnsupported, f)
		}
		return s.Float32, nil
	case ir.BoolType:
		return s.Bool, nil
	case ir.CursorType:
		return nil, fmt.Errorf("%w: cursor %s", ErrUnsupported, s.Cursor)
	}
	return nil, fmt.Errorf("%w: scalar type %s", ErrUnsupported, s.Type)
}
