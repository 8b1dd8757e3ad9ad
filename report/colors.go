package report

import (
	"strings"

	"github.com/appcove/AS3/schema"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind schema.ViolationKind
	Attr ColorAttr
}

type ColorAttr int

const (
	PathColor ColorAttr = iota
	LabelColor
	MessageColor
	SuggestionColor
	HeaderColor
	OKColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

// NewColors builds the default palette. Shape problems render red,
// constraint problems yellow, failed checks magenta.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range schema.ViolationKinds() {
		able := Colorable{
			Kind: k,
			Attr: PathColor,
		}
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = LabelColor
		colors.Map[able] = color.YellowString
		able.Attr = SuggestionColor
		colors.Map[able] = color.GreenString
	}
	able := Colorable{Attr: LabelColor}

	able.Kind = schema.TypeMismatch
	colors.Map[able] = color.RedString
	able.Kind = schema.MissingRequiredField
	colors.Map[able] = color.RedString
	able.Kind = schema.NotNullable
	colors.Map[able] = color.RedString
	able.Kind = schema.UnexpectedSchemaShape
	colors.Map[able] = color.RedString
	able.Kind = schema.CheckFailed
	colors.Map[able] = color.MagentaString

	colors.Map[Colorable{Attr: HeaderColor}] = color.New(color.FgRed, color.Bold).SprintfFunc()
	colors.Map[Colorable{Attr: OKColor}] = color.New(color.FgGreen, color.Bold).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

// NoColors passes every part through unchanged.
func NoColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k schema.ViolationKind, a ColorAttr, s string) string {
	res := c.Get(k, a)(s)
	return res
}

func (c *Colors) Get(k schema.ViolationKind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
