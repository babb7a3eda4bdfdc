// Package gomap converts between Go values and value trees.
//
// # Usage
//
//	type Doc struct {
//	    Title  string       `tree:"title"`
//	    Body   string       `tree:"body,text"`
//	    Views  int64        `tree:"views,counter"`
//	    Edited time.Time    `tree:"edited"`
//	    Tags   []string     `tree:"tags,omitempty"`
//	    Cache  *bytes.Buffer `tree:"-"`
//	}
//
//	v, err := gomap.ToIR(doc)
//	var back Doc
//	err = gomap.FromIR(v, &back)
//
// Types implementing [ToValue] or [FromValue] control their own
// conversion.  [Text] and [Counter] select the text and counter
// variants without a tag, time.Time maps to a timestamp in Unix
// seconds and [ir.Cursor] to a cursor.  Field-less structs map to null.
//
// Map keys are strings, signed or unsigned integers, or types
// implementing encoding.TextMarshaler and encoding.TextUnmarshaler.
//
// # Related Packages
//
//   - github.com/signadot/treediff/ir - value trees
package gomap
