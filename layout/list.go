package layout

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/boxlayout/geom"
)

// ListItemRenderer is a block whose symbol is placed at its left,
// outside of its content box, on the first fragment.
type ListItemRenderer struct {
	BaseRenderer

	// Symbol, if not nil, replaces the symbol built from list-style-type.
	Symbol Renderer
	// Ordinal is the position of the item in its list, starting at 1.
	Ordinal int

	placedSymbol Renderer
}

func NewListItemRenderer(el *Element, ordinal int) *ListItemRenderer {
	return &ListItemRenderer{BaseRenderer: BaseRenderer{Element: el}, Ordinal: ordinal}
}

func (l *ListItemRenderer) Kind() Kind { return KindListItem }

func (l *ListItemRenderer) Copy() Renderer {
	out := *l
	out.BaseRenderer = l.BaseRenderer.copy()
	out.placedSymbol = nil
	return &out
}

// PlacedSymbol returns the symbol laid out with this fragment, or nil.
func (l *ListItemRenderer) PlacedSymbol() Renderer { return l.placedSymbol }

func (l *ListItemRenderer) MinMaxWidth(env *Env) MinMaxWidth { return blockMinMaxWidth(l, env) }

// symbolText returns the marker for the given list style.
func symbolText(listStyle string, ordinal int) string {
	switch listStyle {
	case "none":
		return ""
	case "disc":
		return "•"
	case "circle":
		return "◦"
	case "square":
		return "▪"
	case "decimal":
		return strconv.Itoa(ordinal) + "."
	case "lower-alpha":
		return alpha(ordinal, 'a') + "."
	case "upper-alpha":
		return alpha(ordinal, 'A') + "."
	case "lower-roman":
		return strings.ToLower(roman(ordinal)) + "."
	case "upper-roman":
		return roman(ordinal) + "."
	default:
		return listStyle
	}
}

func alpha(n int, first rune) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var out []rune
	for n > 0 {
		n--
		out = append([]rune{first + rune(n%26)}, out...)
		n /= 26
	}
	return string(out)
}

var romanDigits = [...]struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"}, {100, "C"}, {90, "XC"},
	{50, "L"}, {40, "XL"}, {10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.symbol)
			n -= d.value
		}
	}
	return b.String()
}

func (l *ListItemRenderer) symbol() Renderer {
	if l.Symbol != nil {
		return NextRenderer(l.Symbol)
	}
	s := symbolText(string(l.Style().GetListStyleType()), l.Ordinal)
	if s == "" {
		return nil
	}
	return NewTextRenderer(nil, s)
}

func (l *ListItemRenderer) Layout(ctx LayoutContext) LayoutResult {
	res := blockLayout(l, ctx)
	if res.Status == Nothing || l.isContinuation {
		return res
	}
	symbol := l.symbol()
	if symbol == nil {
		return res
	}
	target := fragmentOf(l, res).(*ListItemRenderer)
	SetParent(symbol, target)

	env := ctx.Env
	if env == nil {
		env = NewEnv(nil, nil)
	}
	box := target.OccupiedArea.BBox
	reference := ctx.Area.BBox.Width
	margins, borders, paddings := l.margins(reference), l.borderWidths(), l.paddings(reference)
	indent := l.Style().GetListSymbolIndent().ResolveOr(reference, 0)
	contentX := box.X + margins[geom.Left] + borders[geom.Left] + paddings[geom.Left]
	contentY := box.Y + margins[geom.Top] + borders[geom.Top] + paddings[geom.Top]

	sctx := LayoutContext{
		Area:          geom.Area{PageNumber: ctx.Area.PageNumber, BBox: geom.Rectangle{X: contentX - indent, Y: contentY, Width: indent, Height: geom.InfiniteHeight}},
		Floats:        &FloatAreas{},
		ClippedHeight: true,
		Env:           env,
	}
	sres := symbol.Layout(sctx)
	if sres.Status == Nothing {
		env.warn("list symbol does not fit its indent", l)
		return res
	}
	target.placedSymbol = fragmentOf(symbol, sres)
	return res
}
