package encode

import (
	"github.com/signadot/protodoc/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ReservedColor
	ValueColor
	SepColor
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
	for _, t := range []ir.Type{ir.ObjectType, ir.ArrayType} {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(196, 128, 128).SprintfFunc()
	}
	colors.Map[Colorable{Type: ir.ObjectType, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Type: ir.ObjectType, Attr: ReservedColor}] = color.RGB(196, 168, 128).SprintfFunc()

	able := Colorable{Attr: ValueColor}
	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString
	for _, t := range []ir.Type{ir.IntType, ir.FloatType} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for _, t := range []ir.Type{ir.UUIDType, ir.DateType, ir.TimeType, ir.DateTimeType} {
		able.Type = t
		colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	}
	return colors
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		f = c.Default
	}
	return f("%s", s)
}

func colorDefault(format string, args ...any) string {
	return color.WhiteString(format, args...)
}
