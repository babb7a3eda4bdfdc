package encode

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/treediff/ir"
)

type EncState struct {
	Color func(Colorable, string) string
}

// Encode writes v to w in flow style YAML followed by a newline.
// Variants without a natural YAML form carry a local tag, as in
// !text "café" or !counter 3.
func Encode(v ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	buf := bytes.NewBuffer(nil)
	encode(ir.OrNull(v), buf, es)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (es *EncState) color(able Colorable, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(able, s)
}

func encode(v ir.Value, buf *bytes.Buffer, es *EncState) {
	switch x := v.(type) {
	case *ir.Map:
		encodeMap(x, buf, es)
	case *ir.Sequence:
		sep := es.color(Colorable{Kind: ir.SequenceKind, Attr: SepColor}, ", ")
		buf.WriteString(es.color(Colorable{Kind: ir.SequenceKind, Attr: SepColor}, "["))
		for i, vv := range x.Values {
			if i != 0 {
				buf.WriteString(sep)
			}
			encode(ir.OrNull(vv), buf, es)
		}
		buf.WriteString(es.color(Colorable{Kind: ir.SequenceKind, Attr: SepColor}, "]"))
	case *ir.Text:
		buf.WriteString(es.color(Colorable{Kind: ir.TextKind, Attr: TagColor}, "!text"))
		buf.WriteByte(' ')
		buf.WriteString(es.color(Colorable{Kind: ir.TextKind, Attr: ValueColor}, strconv.Quote(x.String())))
	case *ir.Scalar:
		tag, val := Scalar(x)
		if tag != "" {
			buf.WriteString(es.color(Colorable{Kind: ir.ScalarKind, Scalar: x.Type, Attr: TagColor}, tag))
			buf.WriteByte(' ')
		}
		buf.WriteString(es.color(Colorable{Kind: ir.ScalarKind, Scalar: x.Type, Attr: ValueColor}, val))
	}
}

func encodeMap(m *ir.Map, buf *bytes.Buffer, es *EncState) {
	if m.Type == ir.TableMap {
		buf.WriteString(es.color(Colorable{Kind: ir.MapKind, Attr: TagColor}, "!table"))
		buf.WriteByte(' ')
	}
	sep := es.color(Colorable{Kind: ir.MapKind, Attr: SepColor}, ", ")
	buf.WriteString(es.color(Colorable{Kind: ir.MapKind, Attr: SepColor}, "{"))
	for i, k := range m.Keys() {
		if i != 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(es.color(Colorable{Kind: ir.MapKind, Attr: FieldColor}, Key(k)))
		buf.WriteString(es.color(Colorable{Kind: ir.MapKind, Attr: SepColor}, ": "))
		encode(ir.OrNull(m.Entries[k]), buf, es)
	}
	buf.WriteString(es.color(Colorable{Kind: ir.MapKind, Attr: SepColor}, "}"))
}

// Scalar returns the tag (possibly empty) and the literal of s.
func Scalar(s *ir.Scalar) (tag, val string) {
	switch s.Type {
	case ir.NullType:
		return "", "null"
	case ir.StrType:
		return "", strconv.Quote(s.String)
	case ir.IntType:
		return "", strconv.FormatInt(s.Int64, 10)
	case ir.UintType:
		return "!uint", strconv.FormatUint(s.Uint64, 10)
	case ir.F64Type:
		return "", formatFloat(s.Float64, 64)
	case ir.F32Type:
		return "!f32", formatFloat(float64(s.Float32), 32)
	case ir.CounterType:
		return "!counter", strconv.FormatInt(s.Int64, 10)
	case ir.TimestampType:
		return "!timestamp", strconv.FormatInt(s.Int64, 10)
	case ir.BoolType:
		return "", strconv.FormatBool(s.Bool)
	case ir.CursorType:
		return "!cursor", strconv.Quote(s.Cursor.String())
	}
	return "", "null"
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.Contains(s, ".") {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i != -1 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

var reservedKeys = map[string]bool{
	"true": true, "false": true, "null": true,
	"yes": true, "no": true, "on": true, "off": true,
	"y": true, "n": true,
}

// Key returns k as a YAML mapping key, quoted unless it is a plain
// identifier.
func Key(k string) string {
	if k == "" || reservedKeys[strings.ToLower(k)] {
		return strconv.Quote(k)
	}
	for i, c := range k {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && (c == '-' || '0' <= c && c <= '9'):
		default:
			return strconv.Quote(k)
		}
	}
	return k
}
