// Package ir provides the value tree that treediff compares and edits.
//
// # Overview
//
// A value tree is a recursive tagged union.  Every node is a [Value],
// which is one of
//
//   - [*Map]: string keys to values, either a [GenericMap] or a [TableMap]
//   - [*Sequence]: an ordered list of values
//   - [*Text]: an ordered list of extended grapheme clusters
//   - [*Scalar]: a leaf of some [ScalarType]
//
// The Value interface is sealed, so a type switch over the four pointer
// types above is exhaustive.
//
// # Creating Values
//
//	doc := ir.FromMap(map[string]ir.Value{
//	    "title": ir.FromText("café"),
//	    "views": ir.FromCounter(3),
//	    "tags":  ir.FromSlice([]ir.Value{ir.FromString("a")}),
//	})
//
// [FromText] segments its argument with [Graphemes], so a base letter
// followed by a combining mark is a single element of the text.
//
// # Equality
//
// [Equal] is deep structural equality.  Map entry order does not
// matter, sequence and text order does.  Floats compare with ==, so a
// NaN is never equal to anything.
//
// # Paths
//
// A [Path] is a list of map keys and sequence indices from the root:
//
//	p, err := ir.ParsePath("$.tags[0]")
//	v, err := ir.Get(doc, p)
//
// Keys containing any of '.[]*$\ are quoted with single quotes.
//
// # Thread Safety
//
// Values are plain data.  Concurrent reads are safe; mutation needs
// external synchronization or a [Value.Clone] per goroutine.
package ir
