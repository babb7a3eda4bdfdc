// Package jsonpatch exports edit scripts as RFC 6902 JSON Patch
// documents, for consumers which do not speak the script ops.
//
//	d, err := jsonpatch.FromScript(from, s)
//
// Values which have no JSON form, such as cursors, make the export
// fail with [ErrUnsupported].
package jsonpatch
