package layout

import (
	"testing"

	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func TestSymbolText(t *testing.T) {
	for _, test := range []struct {
		style   string
		ordinal int
		exp     string
	}{
		{"none", 1, ""},
		{"disc", 4, "•"},
		{"decimal", 12, "12."},
		{"lower-alpha", 28, "ab."},
		{"upper-alpha", 1, "A."},
		{"lower-roman", 4, "iv."},
		{"upper-roman", 1994, "MCMXCIV."},
		{"-", 2, "-"},
	} {
		tu.AssertEqual(t, symbolText(test.style, test.ordinal), test.exp)
	}
	tu.AssertEqual(t, alpha(26, 'a'), "z")
	tu.AssertEqual(t, alpha(27, 'a'), "aa")
	tu.AssertEqual(t, roman(0), "0")
}

func listItem(props pr.Properties, ordinal int, children ...Renderer) *ListItemRenderer {
	out := NewListItemRenderer(el(props), ordinal)
	for _, c := range children {
		AddChild(out, c)
	}
	return out
}

func TestListItemSymbol(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	item := listItem(pr.Properties{pr.PMarginLeft: pr.FToV(20), pr.PListStyleType: pr.String("decimal")}, 3, box(10))
	res := item.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Full)
	symbol, ok := item.PlacedSymbol().(*TextRenderer)
	if !ok {
		t.Fatalf("unexpected symbol %v", item.PlacedSymbol())
	}
	tu.AssertEqual(t, string(symbol.Text), "3.")
	// the symbol is in the indent, left of the content box
	tu.AssertEqual(t, bbox(symbol).X, Fl(5))
	tu.AssertEqual(t, symbol.Parent() == Renderer(item), true)

	none := listItem(pr.Properties{pr.PListStyleType: pr.String("none")}, 1, box(10))
	none.Layout(NewLayoutContext(area(100, 100), env))
	tu.AssertEqual(t, none.PlacedSymbol() == nil, true)
}

func TestListItemCustomSymbol(t *testing.T) {
	env := NewEnv(nil, nil)
	item := listItem(pr.Properties{pr.PMarginLeft: pr.FToV(20)}, 1, box(10))
	item.Symbol = NewImageRenderer(nil, 8, 8)
	item.Layout(NewLayoutContext(area(100, 100), env))
	img, ok := item.PlacedSymbol().(*ImageRenderer)
	if !ok {
		t.Fatalf("unexpected symbol %v", item.PlacedSymbol())
	}
	// the symbol is a copy
	tu.AssertEqual(t, img == item.Symbol, false)
	tu.AssertEqual(t, bbox(img).Width, Fl(8))
}

func TestListItemSplit(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	item := listItem(pr.Properties{pr.PMarginLeft: pr.FToV(20)}, 1, box(20), box(20))
	res := item.Layout(NewLayoutContext(area(100, 30), env))
	assertStatus(t, res, Partial)
	split := res.SplitRenderer.(*ListItemRenderer)
	tu.AssertEqual(t, split.PlacedSymbol() != nil, true)

	// the symbol is only drawn on the first fragment
	overflow := res.OverflowRenderer.(*ListItemRenderer)
	next := overflow.Layout(NewLayoutContext(area(100, 30), env))
	assertStatus(t, next, Full)
	tu.AssertEqual(t, overflow.PlacedSymbol() == nil, true)
}
