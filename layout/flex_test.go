package layout

import (
	"errors"
	"testing"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func flexContainer(props pr.Properties, items ...Renderer) *FlexContainerRenderer {
	out := NewFlexContainerRenderer(el(props))
	for _, c := range items {
		AddChild(out, c)
	}
	return out
}

func flexItem(basis, grow Fl, props pr.Properties) *DivRenderer {
	st := pr.Properties{pr.PFlexBasis: pr.FToV(basis), pr.PFlexGrow: pr.Float(grow)}
	for k, v := range props {
		st[k] = v
	}
	return div(st)
}

func rectangles(lines []FlexLine) [][]geom.Rectangle {
	out := make([][]geom.Rectangle, len(lines))
	for i, line := range lines {
		for _, item := range line.Items {
			out[i] = append(out[i], item.Rectangle)
		}
	}
	return out
}

func TestFlexFixedBasis(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	container := flexContainer(nil, flexItem(100, 0, nil), flexItem(100, 0, nil), flexItem(100, 0, nil))
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 300, Height: 500}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(lines), 1)
	for i, item := range lines[0].Items {
		tu.AssertEqual(t, item.Rectangle.X, Fl(100*i))
		tu.AssertEqual(t, item.Rectangle.Width, Fl(100))
	}
}

func TestFlexGrow(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	container := flexContainer(nil, flexItem(50, 1, nil), flexItem(50, 1, nil))
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 300, Height: 500}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, rectangles(lines)[0], []geom.Rectangle{
		{X: 0, Width: 150},
		{X: 150, Width: 150},
	})
}

func TestFlexShrink(t *testing.T) {
	env := NewEnv(nil, nil)
	// shrink is weighted by the base size
	container := flexContainer(nil, flexItem(200, 0, nil), flexItem(100, 0, nil))
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 150, Height: 500}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	rects := rectangles(lines)[0]
	tu.AssertApprox(t, rects[0].Width, 100)
	tu.AssertApprox(t, rects[1].Width, 50)
}

func TestFlexSumsToContainer(t *testing.T) {
	env := NewEnv(nil, nil)
	for _, factors := range [][3]Fl{
		{1, 1, 1},
		{1, 2, 3},
		{0, 0, 5},
		{0.5, 0.25, 0},
	} {
		container := flexContainer(nil,
			flexItem(10, factors[0], nil),
			flexItem(40, factors[1], nil),
			flexItem(70, factors[2], nil),
		)
		lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 300, Height: 500}, container, env)
		if err != nil {
			t.Fatal(err)
		}
		var sum, growSum Fl
		for _, f := range factors {
			growSum += f
		}
		for _, item := range lines[0].Items {
			sum += item.Rectangle.Width
		}
		if growSum >= 1 {
			tu.AssertApprox(t, sum, 300)
		} else {
			// fractional factors distribute only part of the free space
			tu.AssertApprox(t, sum, 120+180*growSum)
		}
	}
}

func TestFlexMinMaxClamp(t *testing.T) {
	env := NewEnv(nil, nil)
	container := flexContainer(nil,
		flexItem(50, 1, pr.Properties{pr.PMaxWidth: pr.FToV(80)}),
		flexItem(50, 1, nil),
	)
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 300, Height: 500}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	rects := rectangles(lines)[0]
	tu.AssertApprox(t, rects[0].Width, 80)
	tu.AssertApprox(t, rects[1].Width, 220)
}

func TestFlexNegativeFactor(t *testing.T) {
	container := flexContainer(nil, flexItem(50, -1, nil))
	_, err := CalculateChildrenRectangles(geom.Rectangle{Width: 300, Height: 500}, container, NewEnv(nil, nil))
	if !errors.Is(err, pr.ErrNegativeFlexFactor) {
		t.Fatalf("expected negative factor error, got %v", err)
	}
}

func TestFlexIdempotent(t *testing.T) {
	env := NewEnv(nil, nil)
	container := flexContainer(pr.Properties{pr.PFlexWrap: pr.String("wrap"), pr.PJustifyContent: pr.String("space-between")},
		flexItem(120, 1, pr.Properties{pr.PHeight: pr.FToV(10)}),
		flexItem(90, 0, pr.Properties{pr.PHeight: pr.FToV(30)}),
		flexItem(150, 2, nil),
	)
	area := geom.Rectangle{Width: 300, Height: 500}
	first, err := CalculateChildrenRectangles(area, container, env)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := CalculateChildrenRectangles(area, container, env)
	tu.AssertEqual(t, rectangles(second), rectangles(first))
}

func TestFlexWrapAndAlign(t *testing.T) {
	env := NewEnv(nil, nil)
	container := flexContainer(pr.Properties{pr.PFlexWrap: pr.String("wrap"), pr.PAlignItems: pr.String("flex-start")},
		flexItem(100, 0, pr.Properties{pr.PHeight: pr.FToV(20)}),
		flexItem(100, 0, pr.Properties{pr.PHeight: pr.FToV(40)}),
		flexItem(100, 0, pr.Properties{pr.PHeight: pr.FToV(10)}),
	)
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 200, Height: 500}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, rectangles(lines), [][]geom.Rectangle{
		{{X: 0, Width: 100, Height: 20}, {X: 100, Width: 100, Height: 40}},
		{{Y: 40, Width: 100, Height: 10}},
	})
}

func TestFlexJustifyContent(t *testing.T) {
	env := NewEnv(nil, nil)
	for _, test := range []struct {
		mode string
		xs   []Fl
	}{
		{"flex-start", []Fl{0, 50}},
		{"flex-end", []Fl{200, 250}},
		{"center", []Fl{100, 150}},
		{"space-between", []Fl{0, 250}},
		{"space-around", []Fl{50, 200}},
	} {
		container := flexContainer(pr.Properties{pr.PJustifyContent: pr.String(test.mode)},
			flexItem(50, 0, nil), flexItem(50, 0, nil))
		lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 300, Height: 500}, container, env)
		if err != nil {
			t.Fatal(err)
		}
		var xs []Fl
		for _, item := range lines[0].Items {
			xs = append(xs, item.Rectangle.X)
		}
		tu.AssertEqual(t, xs, test.xs, tu.Approx)
	}
}

func TestFlexContainerLayout(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	items := []Renderer{
		flexItem(100, 0, pr.Properties{pr.PHeight: pr.FToV(40)}),
		flexItem(100, 0, pr.Properties{pr.PHeight: pr.FToV(40)}),
		flexItem(100, 0, pr.Properties{pr.PHeight: pr.FToV(40)}),
	}
	container := flexContainer(pr.Properties{pr.PFlexWrap: pr.String("wrap")}, items...)
	res := container.Layout(NewLayoutContext(area(200, 60), env))
	assertStatus(t, res, Partial)
	tu.AssertEqual(t, len(res.SplitRenderer.Base().Children), 2)
	tu.AssertEqual(t, len(res.OverflowRenderer.Base().Children), 1)
	tu.AssertEqual(t, bbox(items[1]), geom.Rectangle{X: 100, Width: 100, Height: 40})

	next := res.OverflowRenderer.Layout(NewLayoutContext(area(200, 60), env))
	assertStatus(t, next, Full)
	tu.AssertEqual(t, next.OccupiedArea.BBox.Height, Fl(40))
}

func TestFlexContainerRow(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	a := flexItem(0, 1, pr.Properties{pr.PHeight: pr.FToV(20)})
	b := flexItem(0, 1, nil)
	container := flexContainer(nil, a, b)
	res := container.Layout(NewLayoutContext(area(300, 100), env))
	assertStatus(t, res, Full)
	// b is stretched to the line height
	tu.AssertEqual(t, bbox(a), geom.Rectangle{Width: 150, Height: 20})
	tu.AssertEqual(t, bbox(b), geom.Rectangle{X: 150, Width: 150, Height: 20})
	tu.AssertEqual(t, res.OccupiedArea.BBox.Height, Fl(20))
}

func TestFlexColumnPageRepack(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	column := pr.Properties{pr.PFlexDirection: pr.String("column"), pr.PHeight: pr.FToV(300)}
	container := flexContainer(column, flexItem(0, 1, nil), flexItem(0, 1, nil))
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 100, Height: 100}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(lines), 1)
	tu.AssertEqual(t, lines[0].NextPage, 1)
	// the first item grows in the page only
	tu.AssertEqual(t, lines[0].Items[0].Rectangle, geom.Rectangle{Width: 100, Height: 100})
	tu.AssertEqual(t, lines[0].Items[1].Rectangle.Y, Fl(100))

	// the whole content fits on a taller page
	lines, err = CalculateChildrenRectangles(geom.Rectangle{Width: 100, Height: 500}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, lines[0].NextPage, 2)
	tu.AssertEqual(t, lines[0].Items[1].Rectangle, geom.Rectangle{Y: 150, Width: 100, Height: 150})
}

func TestFlexColumnPageJustify(t *testing.T) {
	env := NewEnv(nil, nil)
	column := pr.Properties{
		pr.PFlexDirection:  pr.String("column"),
		pr.PHeight:         pr.FToV(300),
		pr.PJustifyContent: pr.String("center"),
	}
	container := flexContainer(column, flexItem(40, 0, nil), flexItem(40, 0, nil), flexItem(40, 0, nil))
	lines, err := CalculateChildrenRectangles(geom.Rectangle{Width: 100, Height: 100}, container, env)
	if err != nil {
		t.Fatal(err)
	}
	var ys []Fl
	for _, item := range lines[0].Items {
		ys = append(ys, item.Rectangle.Y)
	}
	// the two items of the page are centered in it
	tu.AssertEqual(t, ys, []Fl{10, 50, 100}, tu.Approx)
	tu.AssertEqual(t, lines[0].NextPage, 2)
}

func TestFlexContainerColumnPagination(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	a, b := flexItem(0, 1, nil), flexItem(0, 1, nil)
	column := pr.Properties{pr.PFlexDirection: pr.String("column"), pr.PHeight: pr.FToV(300)}
	container := flexContainer(column, a, b)
	res := container.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Partial)
	tu.AssertEqual(t, bbox(a), geom.Rectangle{Width: 100, Height: 100})
	tu.AssertEqual(t, len(res.SplitRenderer.Base().Children), 1)
	tu.AssertEqual(t, len(res.OverflowRenderer.Base().Children), 1)
	tu.AssertEqual(t, res.OverflowRenderer.Base().Children[0] == Renderer(b), true)

	// the second item takes the rest of the container height
	next := res.OverflowRenderer.Layout(NewLayoutContext(area(100, 500), env))
	assertStatus(t, next, Full)
	tu.AssertEqual(t, bbox(b), geom.Rectangle{Width: 100, Height: 200})
	tu.AssertEqual(t, next.OccupiedArea.BBox.Height, Fl(200))
}

func TestFlexForcedItemKeepsStyle(t *testing.T) {
	logs := tu.CaptureLogs()
	env := NewEnv(logs.Logger(), nil)

	item := div(nil, box(150))
	c := flexContainer(pr.Properties{pr.PForcedPlacement: pr.Bool(true)}, item)
	res := c.Layout(NewLayoutContext(area(100, 100), env))
	if res.Status == Nothing {
		t.Fatal("forced container should be placed")
	}
	_, isSet := item.Props[pr.PForcedPlacement]
	tu.AssertEqual(t, isSet, false)

	res = item.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Nothing)
}
