package layout

import (
	"testing"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func TestImageNaturalSize(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	img := NewImageRenderer(nil, 100, 50)
	res := img.Layout(NewLayoutContext(area(200, 200), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, res.OccupiedArea.BBox, geom.Rectangle{Width: 100, Height: 50})

	// the ratio is kept
	img = NewImageRenderer(el(pr.Properties{pr.PHeight: pr.FToV(20)}), 100, 50)
	res = img.Layout(NewLayoutContext(area(200, 200), env))
	tu.AssertEqual(t, res.OccupiedArea.BBox, geom.Rectangle{Width: 40, Height: 20})

	img = NewImageRenderer(el(pr.Properties{pr.PWidth: pr.FToV(60)}), 100, 50)
	res = img.Layout(NewLayoutContext(area(200, 200), env))
	tu.AssertEqual(t, res.OccupiedArea.BBox, geom.Rectangle{Width: 60, Height: 30})
}

func TestImageAutoScale(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	img := NewImageRenderer(el(pr.Properties{pr.PAutoScale: pr.Bool(true)}), 100, 50)
	res := img.Layout(NewLayoutContext(area(200, 25), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, res.OccupiedArea.BBox, geom.Rectangle{Width: 50, Height: 25})

	mm := img.MinMaxWidth(env)
	tu.AssertEqual(t, [2]Fl{mm.Min(), mm.Max()}, [2]Fl{0, 100})
}

func TestImageDoesNotFit(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	img := NewImageRenderer(nil, 100, 50)
	res := img.Layout(NewLayoutContext(area(200, 30), env))
	assertStatus(t, res, Nothing)
	tu.AssertEqual(t, res.CauseOfNothing == Renderer(img), true)

	res = img.Layout(NewLayoutContext(area(80, 200), env))
	assertStatus(t, res, Nothing)

	// a clipping parent accepts the image
	ctx := NewLayoutContext(area(200, 30), env)
	ctx.ClippedHeight = true
	res = img.Layout(ctx)
	assertStatus(t, res, Full)
}

func TestImageForced(t *testing.T) {
	logs := tu.CaptureLogs()
	env := NewEnv(logs.Logger(), nil)

	img := NewImageRenderer(el(pr.Properties{pr.PForcedPlacement: pr.Bool(true)}), 100, 50)
	res := img.Layout(NewLayoutContext(area(80, 30), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, res.OccupiedArea.BBox, geom.Rectangle{Width: 100, Height: 50})
	logs.CheckEqual([]string{
		"image does not fit the area by width: it is forced in",
		"image does not fit the area: it is forced in",
	}, t)
}

func TestImageInParagraph(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	img := NewImageRenderer(nil, 10, 10)
	p := paragraph(nil, "aa ")
	AddChild(p, img)
	res := p.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Full)
	lines := linesOfResult(p, res)
	tu.AssertEqual(t, len(lines), 1)
	// the image sits on the baseline
	tu.AssertEqual(t, bbox(img).X, Fl(15))
	tu.AssertApprox(t, bbox(img).Bottom(), lines[0].Baseline)
}
