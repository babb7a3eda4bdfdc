package encode

import (
	"strings"

	"github.com/signadot/treediff/ir"

	"github.com/fatih/color"
)

// Colorable selects a colour.  Scalar is only meaningful when Kind is
// ir.ScalarKind.
type Colorable struct {
	Kind   ir.Kind
	Scalar ir.ScalarType
	Attr   ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
	OpColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ir.Kinds() {
		able := Colorable{
			Kind: k,
			Attr: TagColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = OpColor
		colors.Map[able] = color.New(color.Bold).SprintfFunc()
	}
	for _, st := range ir.ScalarTypes() {
		able := Colorable{Kind: ir.ScalarKind, Scalar: st, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	}
	able := Colorable{Kind: ir.ScalarKind, Attr: ValueColor}

	for _, st := range []ir.ScalarType{ir.IntType, ir.UintType, ir.F64Type, ir.F32Type, ir.TimestampType} {
		able.Scalar = st
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	able.Scalar = ir.CounterType
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	able.Scalar = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Scalar = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Scalar = ir.StrType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Scalar = ir.CursorType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	able = Colorable{Kind: ir.TextKind, Attr: ValueColor}
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able = Colorable{Kind: ir.MapKind, Attr: FieldColor}
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(able Colorable, s string) string {
	return c.Get(able)(s)
}

func (c *Colors) Get(able Colorable) func(string, ...any) string {
	f := c.Map[able]
	if f == nil {
		return c.Default
	}
	return f
}
