package layout

import (
	"testing"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func document(children ...Renderer) *DocumentRenderer {
	d := NewDocumentRenderer(nil)
	for _, c := range children {
		AddChild(d, c)
	}
	return d
}

var smallPage = PageSize{Width: 100, Height: 100}

func TestPageContentBox(t *testing.T) {
	size := PageSize{Width: 200, Height: 300, Margins: geom.Insets{10, 20, 30, 40}}
	tu.AssertEqual(t, size.ContentBox(), geom.Rectangle{X: 40, Y: 10, Width: 140, Height: 260})
}

func TestPaginate(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	children := []Renderer{box(40), box(40), box(40)}
	pages, err := document(children...).Paginate(smallPage, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 2)
	tu.AssertEqual(t, [2]int{pages[0].Number, pages[1].Number}, [2]int{1, 2})
	tu.AssertEqual(t, len(pages[0].Root.Base().Children), 2)
	tu.AssertEqual(t, len(pages[1].Root.Base().Children), 1)
	tu.AssertEqual(t, children[2].Base().OccupiedArea.PageNumber, 2)
	tu.AssertEqual(t, bbox(children[2]).Y, Fl(0))
}

func TestPaginateMargins(t *testing.T) {
	env := NewEnv(nil, nil)
	child := box(40)
	size := PageSize{Width: 100, Height: 100, Margins: geom.Insets{10, 10, 10, 10}}
	pages, err := document(child).Paginate(size, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 1)
	tu.AssertEqual(t, bbox(child), geom.Rectangle{X: 10, Y: 10, Width: 80, Height: 40})
}

func TestPaginateAreaBreak(t *testing.T) {
	env := NewEnv(nil, nil)
	pages, err := document(box(10), div(pr.Properties{pr.PBreakBefore: pr.String("page"), pr.PHeight: pr.FToV(10)})).Paginate(smallPage, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 2)
}

func TestPaginateKeepTogetherOverride(t *testing.T) {
	logs := tu.CaptureLogs()
	env := NewEnv(logs.Logger(), nil)

	kept := div(pr.Properties{pr.PKeepTogether: pr.Bool(true)}, box(40), box(40), box(40))
	pages, err := document(kept).Paginate(smallPage, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 2)
	logs.CheckEqual([]string{"keep-together is ignored: the element does not fit an empty page"}, t)
}

func TestPaginateForced(t *testing.T) {
	logs := tu.CaptureLogs()
	env := NewEnv(logs.Logger(), nil)

	d := document(box(200))
	pages, err := d.Paginate(smallPage, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 1)
	logs.CheckEqual([]string{
		"content does not fit an empty page: it is forced in",
		"element does not fit the area: it is forced in",
		"element height does not fit the area: it is forced in",
		"element height does not fit the area: it is forced in",
	}, t)
	// forcing is limited to the page
	tu.AssertEqual(t, isForced(d), false)
}
