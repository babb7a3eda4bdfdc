package gomap

import (
	"fmt"
	"reflect"
	"time"

	"github.com/signadot/treediff/ir"
)

// ToIR converts a Go value to a value tree.  A nil v, nil pointers,
// maps, slices and interfaces become null.
func ToIR(v any) (ir.Value, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	return toIRValue(reflect.ValueOf(v), "", visited)
}

func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (ir.Value, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	if res, ok, err := toIRMethod(val, fieldPath); ok {
		return res, err
	}
	typ := val.Type()
	switch typ {
	case textType:
		return ir.FromText(val.String()), nil
	case counterType:
		return ir.FromCounter(val.Int()), nil
	case timeType:
		return ir.FromTimestamp(val.Interface().(time.Time).Unix()), nil
	case cursorType:
		return ir.FromCursor(val.Interface().(ir.Cursor)), nil
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return ir.Null(), nil
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected (previously seen at %s)", prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		defer delete(visited, ptrAddr)
		return toIRValue(val.Elem(), fieldPath, visited)

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIRValue(val.Elem(), fieldPath, visited)

	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromUint(val.Uint()), nil

	case reflect.Float32:
		return ir.FromFloat32(float32(val.Float())), nil

	case reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice:
		if val.IsNil() {
			return ir.Null(), nil
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen && val.Len() != 0 {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected (previously seen at %s)", prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		defer delete(visited, ptrAddr)
		return toIRSlice(val, fieldPath, visited)

	case reflect.Array:
		return toIRSlice(val, fieldPath, visited)

	case reflect.Map:
		return toIRMap(val, fieldPath, visited)

	case reflect.Struct:
		if typ.NumField() == 0 {
			return ir.Null(), nil
		}
		m, err := toIRStruct(val, fieldPath, visited)
		if err != nil {
			return nil, err
		}
		return ir.FromMap(m), nil
	}
	return nil, &MarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported type: %s", typ),
	}
}

// toIRMethod calls ToValue on val or, when val is addressable, on its
// address.
func toIRMethod(val reflect.Value, fieldPath string) (ir.Value, bool, error) {
	if val.Kind() == reflect.Interface {
		return nil, false, nil
	}
	var tv ToValue
	switch {
	case val.Type().Implements(toValueType):
		if val.Kind() == reflect.Pointer && val.IsNil() {
			return ir.Null(), true, nil
		}
		tv = val.Interface().(ToValue)
	case reflect.PointerTo(val.Type()).Implements(toValueType):
		if !val.CanAddr() {
			ptr := reflect.New(val.Type())
			ptr.Elem().Set(val)
			val = ptr.Elem()
		}
		tv = val.Addr().Interface().(ToValue)
	default:
		return nil, false, nil
	}
	res, err := tv.ToValue()
	if err != nil {
		return nil, true, &MarshalError{FieldPath: fieldPath, Message: "ToValue failed", Err: err}
	}
	return ir.OrNull(res), true, nil
}

func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string) (ir.Value, error) {
	n := val.Len()
	vs := make([]ir.Value, n)
	for i := range n {
		v, err := toIRValue(val.Index(i), indexPathOf(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return ir.FromSlice(vs), nil
}

func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (ir.Value, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	if !keyTypeSupported(val.Type().Key()) {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported map key type %s", val.Type().Key()),
		}
	}
	ptrAddr := val.Pointer()
	if prevPath, seen := visited[ptrAddr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected (previously seen at %s)", prevPath),
		}
	}
	visited[ptrAddr] = fieldPath
	defer delete(visited, ptrAddr)

	res := make(map[string]ir.Value, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, err := keyString(iter.Key(), fieldPath)
		if err != nil {
			return nil, err
		}
		if _, dup := res[key]; dup {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("duplicate map key %q", key),
			}
		}
		v, err := toIRValue(iter.Value(), fieldPathOf(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		res[key] = v
	}
	return ir.FromMap(res), nil
}

// toIRStruct returns the entries of a struct.  Untagged embedded
// structs are flattened into their parent.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string) (map[string]ir.Value, error) {
	typ := val.Type()
	fields, err := structFields(typ)
	if err != nil {
		return nil, err
	}
	res := make(map[string]ir.Value, len(fields))
	for _, fi := range fields {
		sf := typ.Field(fi.index)
		fVal := val.Field(fi.index)
		if sf.Anonymous && fVal.Kind() == reflect.Struct && sf.Tag.Get("tree") == "" {
			sub, err := toIRStruct(fVal, fieldPath, visited)
			if err != nil {
				return nil, err
			}
			for k, v := range sub {
				if _, exists := res[k]; exists {
					return nil, &MarshalError{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("field name conflict: embedded struct field %q", k),
					}
				}
				res[k] = v
			}
			continue
		}
		if fi.omitEmpty && fVal.IsZero() {
			continue
		}
		nextPath := fieldPathOf(fieldPath, fi.name)
		v, err := toIRField(fVal, fi, nextPath, visited)
		if err != nil {
			return nil, err
		}
		res[fi.name] = v
	}
	return res, nil
}

func toIRField(fVal reflect.Value, fi *fieldInfo, fieldPath string, visited map[uintptr]string) (ir.Value, error) {
	switch {
	case fi.text:
		if fVal.Kind() != reflect.String {
			return nil, &MarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("text field must be a string, got %s", fVal.Type())}
		}
		return ir.FromText(fVal.String()), nil
	case fi.counter, fi.timestamp:
		var n int64
		switch fVal.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = fVal.Int()
		default:
			return nil, &MarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("counter or timestamp field must be a signed integer, got %s", fVal.Type())}
		}
		if fi.counter {
			return ir.FromCounter(n), nil
		}
		return ir.FromTimestamp(n), nil
	}
	return toIRValue(fVal, fieldPath, visited)
}
