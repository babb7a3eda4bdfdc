package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// keyString renders a Go map key as a tree map key.  Keys implementing
// encoding.TextMarshaler use it; otherwise strings, signed and unsigned
// integers are accepted.
func keyString(k reflect.Value, fieldPath string) (string, error) {
	if k.Type().Implements(textMarshalerType) {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", &MarshalError{FieldPath: fieldPath, Message: "nil map key"}
		}
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
		}
		return string(b), nil
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", &MarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported map key type %s", k.Type()),
	}
}

// keyValue parses a tree map key back into a value of type typ.
func keyValue(s string, typ reflect.Type, fieldPath string) (reflect.Value, error) {
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		kv := reflect.New(typ)
		if err := kv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("bad map key %q", s), Err: err}
		}
		return kv.Elem(), nil
	}
	kv := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.String:
		kv.SetString(s)
		return kv, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || kv.OverflowInt(n) {
			return reflect.Value{}, &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("bad map key %q for %s", s, typ), Err: err}
		}
		kv.SetInt(n)
		return kv, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || kv.OverflowUint(n) {
			return reflect.Value{}, &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("bad map key %q for %s", s, typ), Err: err}
		}
		kv.SetUint(n)
		return kv, nil
	}
	return reflect.Value{}, &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported map key type %s", typ),
	}
}

func keyTypeSupported(typ reflect.Type) bool {
	if typ.Implements(textMarshalerType) || reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return true
	}
	switch typ.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
