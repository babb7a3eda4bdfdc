package gomap

import (
	"reflect"
	"time"

	"github.com/signadot/treediff/ir"
)

// ToValue is implemented by types which convert themselves to a tree.
type ToValue interface {
	ToValue() (ir.Value, error)
}

// FromValue is implemented by types which fill themselves from a tree.
type FromValue interface {
	FromValue(ir.Value) error
}

// Text is a string held as grapheme-indexed text.
type Text string

// Counter is an integer held as a replicated counter.
type Counter int64

var (
	textType    = reflect.TypeFor[Text]()
	counterType = reflect.TypeFor[Counter]()
	timeType    = reflect.TypeFor[time.Time]()
	cursorType  = reflect.TypeFor[ir.Cursor]()

	toValueType   = reflect.TypeFor[ToValue]()
	fromValueType = reflect.TypeFor[FromValue]()
)
