package gomap

import (
	"reflect"
	"strings"
)

// fieldInfo is the parsed `tree` tag of a struct field.
//
//	Name string `tree:"name,text"`
//	Hits int64  `tree:",counter"`
//	Skip bool   `tree:"-"`
type fieldInfo struct {
	index     int
	name      string
	omit      bool
	omitEmpty bool
	text      bool
	counter   bool
	timestamp bool
}

func parseFieldTag(f reflect.StructField, i int) (*fieldInfo, error) {
	res := &fieldInfo{index: i, name: f.Name}
	tag, ok := f.Tag.Lookup("tree")
	if !ok {
		return res, nil
	}
	if tag == "-" {
		res.omit = true
		return res, nil
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name != "" {
		res.name = name
	}
	if opts == "" {
		return res, nil
	}
	for _, opt := range strings.Split(opts, ",") {
		switch opt {
		case "omitempty":
			res.omitEmpty = true
		case "text":
			res.text = true
		case "counter":
			res.counter = true
		case "timestamp":
			res.timestamp = true
		default:
			return nil, &MarshalError{
				FieldPath: f.Name,
				Message:   "unknown tree tag option " + opt,
			}
		}
	}
	return res, nil
}

func structFields(typ reflect.Type) ([]*fieldInfo, error) {
	var res []*fieldInfo
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fi, err := parseFieldTag(f, i)
		if err != nil {
			return nil, err
		}
		if fi.omit {
			continue
		}
		res = append(res, fi)
	}
	return res, nil
}
