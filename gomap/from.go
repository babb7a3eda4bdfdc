package gomap

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/signadot/treediff/ir"
)

// FromIR fills the value pointed to by v from node.  Map entries with
// no corresponding struct field are ignored.  Null sets the zero value.
func FromIR(node ir.Value, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return fromIRValue(ir.OrNull(node), val.Elem(), "")
}

func fromIRValue(node ir.Value, val reflect.Value, fieldPath string) error {
	if ok, err := fromIRMethod(node, val, fieldPath); ok {
		return err
	}
	typ := val.Type()
	sc, isScalar := node.(*ir.Scalar)
	if isScalar && sc.Type == ir.NullType {
		val.Set(reflect.Zero(typ))
		return nil
	}
	switch typ {
	case timeType:
		if !isScalar || (sc.Type != ir.TimestampType && sc.Type != ir.IntType) {
			return typeErr(fieldPath, "timestamp", node)
		}
		val.Set(reflect.ValueOf(time.Unix(sc.Int64, 0).UTC()))
		return nil
	case cursorType:
		if !isScalar || sc.Type != ir.CursorType {
			return typeErr(fieldPath, "cursor", node)
		}
		val.Set(reflect.ValueOf(sc.Cursor))
		return nil
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fromIRValue(node, val.Elem(), fieldPath)

	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("cannot fill non-empty interface %s", typ)}
		}
		val.Set(reflect.ValueOf(toAny(node)))
		return nil

	case reflect.String:
		switch x := node.(type) {
		case *ir.Text:
			val.SetString(x.String())
			return nil
		case *ir.Scalar:
			if x.Type == ir.StrType {
				val.SetString(x.String)
				return nil
			}
		}
		return typeErr(fieldPath, "string", node)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !isScalar {
			return typeErr(fieldPath, "integer", node)
		}
		var n int64
		switch sc.Type {
		case ir.IntType, ir.CounterType, ir.TimestampType:
			n = sc.Int64
		case ir.UintType:
			if sc.Uint64 > math.MaxInt64 {
				return overflowErr(fieldPath, node, typ)
			}
			n = int64(sc.Uint64)
		default:
			return typeErr(fieldPath, "integer", node)
		}
		if val.OverflowInt(n) {
			return overflowErr(fieldPath, node, typ)
		}
		val.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if !isScalar {
			return typeErr(fieldPath, "unsigned integer", node)
		}
		var n uint64
		switch sc.Type {
		case ir.UintType:
			n = sc.Uint64
		case ir.IntType:
			if sc.Int64 < 0 {
				return overflowErr(fieldPath, node, typ)
			}
			n = uint64(sc.Int64)
		default:
			return typeErr(fieldPath, "unsigned integer", node)
		}
		if val.OverflowUint(n) {
			return overflowErr(fieldPath, node, typ)
		}
		val.SetUint(n)
		return nil

	case reflect.Float32, reflect.Float64:
		if !isScalar {
			return typeErr(fieldPath, "float", node)
		}
		switch sc.Type {
		case ir.F64Type:
			val.SetFloat(sc.Float64)
		case ir.F32Type:
			val.SetFloat(float64(sc.Float32))
		case ir.IntType:
			val.SetFloat(float64(sc.Int64))
		default:
			return typeErr(fieldPath, "float", node)
		}
		return nil

	case reflect.Bool:
		if !isScalar || sc.Type != ir.BoolType {
			return typeErr(fieldPath, "boolean", node)
		}
		val.SetBool(sc.Bool)
		return nil

	case reflect.Slice, reflect.Array:
		seq, ok := node.(*ir.Sequence)
		if !ok {
			return typeErr(fieldPath, "sequence", node)
		}
		return fromIRSlice(seq, val, fieldPath)

	case reflect.Map:
		m, ok := node.(*ir.Map)
		if !ok {
			return typeErr(fieldPath, "map", node)
		}
		return fromIRMap(m, val, fieldPath)

	case reflect.Struct:
		m, ok := node.(*ir.Map)
		if !ok {
			return typeErr(fieldPath, "map", node)
		}
		return fromIRStruct(m, val, fieldPath)
	}
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported type: %s", typ),
	}
}

func fromIRMethod(node ir.Value, val reflect.Value, fieldPath string) (bool, error) {
	var fv FromValue
	switch {
	case val.Kind() == reflect.Pointer && val.Type().Implements(fromValueType):
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		fv = val.Interface().(FromValue)
	case val.CanAddr() && val.Addr().Type().Implements(fromValueType):
		fv = val.Addr().Interface().(FromValue)
	default:
		return false, nil
	}
	if err := fv.FromValue(node); err != nil {
		return true, &UnmarshalError{FieldPath: fieldPath, Message: "FromValue failed", Err: err}
	}
	return true, nil
}

func fromIRSlice(seq *ir.Sequence, val reflect.Value, fieldPath string) error {
	n := len(seq.Values)
	if val.Kind() == reflect.Array {
		if n > val.Len() {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d elements do not fit in %s", n, val.Type()),
			}
		}
		for i := n; i < val.Len(); i++ {
			val.Index(i).Set(reflect.Zero(val.Type().Elem()))
		}
	} else {
		val.Set(reflect.MakeSlice(val.Type(), n, n))
	}
	for i, ev := range seq.Values {
		if err := fromIRValue(ir.OrNull(ev), val.Index(i), indexPathOf(fieldPath, i)); err != nil {
			return err
		}
	}
	return nil
}

func fromIRMap(m *ir.Map, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	if !keyTypeSupported(typ.Key()) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported map key type %s", typ.Key()),
		}
	}
	res := reflect.MakeMapWithSize(typ, len(m.Entries))
	for _, k := range m.Keys() {
		kv, err := keyValue(k, typ.Key(), fieldPath)
		if err != nil {
			return err
		}
		ev := reflect.New(typ.Elem()).Elem()
		if err := fromIRValue(ir.OrNull(m.Entries[k]), ev, fieldPathOf(fieldPath, k)); err != nil {
			return err
		}
		res.SetMapIndex(kv, ev)
	}
	val.Set(res)
	return nil
}

func fromIRStruct(m *ir.Map, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	fields, err := structFields(typ)
	if err != nil {
		return err
	}
	for _, fi := range fields {
		sf := typ.Field(fi.index)
		fVal := val.Field(fi.index)
		if sf.Anonymous && fVal.Kind() == reflect.Struct && sf.Tag.Get("tree") == "" {
			if err := fromIRStruct(m, fVal, fieldPath); err != nil {
				return err
			}
			continue
		}
		ev, ok := m.Entries[fi.name]
		if !ok {
			continue
		}
		if err := fromIRValue(ir.OrNull(ev), fVal, fieldPathOf(fieldPath, fi.name)); err != nil {
			return err
		}
	}
	return nil
}

// toAny converts node to the natural Go representation used for empty
// interfaces.
func toAny(node ir.Value) any {
	switch x := ir.OrNull(node).(type) {
	case *ir.Map:
		res := make(map[string]any, len(x.Entries))
		for k, v := range x.Entries {
			res[k] = toAny(v)
		}
		return res
	case *ir.Sequence:
		res := make([]any, len(x.Values))
		for i, v := range x.Values {
			res[i] = toAny(v)
		}
		return res
	case *ir.Text:
		return Text(x.String())
	case *ir.Scalar:
		switch x.Type {
		case ir.StrType:
			return x.String
		case ir.IntType:
			return x.Int64
		case ir.UintType:
			return x.Uint64
		case ir.F64Type:
			return x.Float64
		case ir.F32Type:
			return x.Float32
		case ir.CounterType:
			return Counter(x.Int64)
		case ir.TimestampType:
			return time.Unix(x.Int64, 0).UTC()
		case ir.BoolType:
			return x.Bool
		case ir.CursorType:
			return x.Cursor
		}
	}
	return nil
}

func typeErr(fieldPath, want string, got ir.Value) error {
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("expected %s, got %s", want, describe(got)),
	}
}

func overflowErr(fieldPath string, got ir.Value, typ reflect.Type) error {
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("%s overflows %s", describe(got), typ),
	}
}

func describe(v ir.Value) string {
	if sc, ok := v.(*ir.Scalar); ok {
		return sc.Type.String()
	}
	return v.Kind().String()
}
