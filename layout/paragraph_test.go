package layout

import (
	"testing"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

// paragraph returns a paragraph with a font size of 10, so that
// narrow runes are 5 wide and lines are 12 high.
func paragraph(props pr.Properties, runs ...string) *ParagraphRenderer {
	st := pr.Properties{pr.PFontSize: pr.FToV(10)}
	for k, v := range props {
		st[k] = v
	}
	p := NewParagraphRenderer(el(st))
	for _, s := range runs {
		AddChild(p, NewTextRenderer(nil, s))
	}
	return p
}

func lineTexts(lines []*LineRenderer) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		for _, c := range line.Children {
			if t, ok := c.(*TextRenderer); ok {
				out[i] = append(out[i], string(t.Text))
			}
		}
	}
	return out
}

func linesOfResult(p *ParagraphRenderer, res LayoutResult) []*LineRenderer {
	return fragmentOf(p, res).(*ParagraphRenderer).Lines
}

func TestParagraphWrap(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	p := paragraph(nil, "aaaa bbbb cccc")
	res := p.Layout(NewLayoutContext(area(50, 100), env))
	assertStatus(t, res, Full)
	lines := linesOfResult(p, res)
	tu.AssertEqual(t, lineTexts(lines), [][]string{{"aaaa bbbb "}, {"cccc"}})
	tu.AssertEqual(t, [2]Fl{lines[0].Baseline, lines[1].Baseline}, [2]Fl{9, 21}, tu.Approx)
	tu.AssertApprox(t, res.OccupiedArea.BBox.Height, 24)
	// trailing spaces are not measured
	tu.AssertEqual(t, lines[0].Children[0].Base().OccupiedArea.BBox.Width, Fl(45))
}

func TestParagraphAlignment(t *testing.T) {
	env := NewEnv(nil, nil)

	p := paragraph(pr.Properties{pr.PTextAlign: pr.String("justify")}, "aaaa bbbb cccc")
	res := p.Layout(NewLayoutContext(area(50, 100), env))
	lines := linesOfResult(p, res)
	first := lines[0].Children[0].(*TextRenderer)
	tu.AssertEqual(t, first.WordSpacing, Fl(5))
	tu.AssertEqual(t, first.OccupiedArea.BBox.Width, Fl(50))
	// the last line is not justified
	last := lines[1].Children[0].(*TextRenderer)
	tu.AssertEqual(t, last.WordSpacing, Fl(0))
	tu.AssertEqual(t, last.OccupiedArea.BBox.Width, Fl(20))

	p = paragraph(pr.Properties{pr.PTextAlign: pr.String("center")}, "aaaa bbbb cccc")
	res = p.Layout(NewLayoutContext(area(50, 100), env))
	lines = linesOfResult(p, res)
	tu.AssertEqual(t, lines[1].Children[0].Base().OccupiedArea.BBox.X, Fl(15))

	p = paragraph(pr.Properties{pr.PTextAlign: pr.String("right")}, "aaaa bbbb cccc")
	res = p.Layout(NewLayoutContext(area(50, 100), env))
	lines = linesOfResult(p, res)
	tu.AssertEqual(t, lines[1].Children[0].Base().OccupiedArea.BBox.X, Fl(30))
}

func TestParagraphFirstLineIndent(t *testing.T) {
	env := NewEnv(nil, nil)
	p := paragraph(pr.Properties{pr.PFirstLineIndent: pr.FToV(10)}, "aaaa bbbb")
	res := p.Layout(NewLayoutContext(area(50, 100), env))
	lines := linesOfResult(p, res)
	tu.AssertEqual(t, lineTexts(lines), [][]string{{"aaaa "}, {"bbbb"}})
	tu.AssertEqual(t, lines[0].Children[0].Base().OccupiedArea.BBox.X, Fl(10))
	tu.AssertEqual(t, lines[1].Children[0].Base().OccupiedArea.BBox.X, Fl(0))
}

func TestParagraphForcedBreak(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	p := paragraph(nil, "ab\ncd")
	res := p.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, lineTexts(linesOfResult(p, res)), [][]string{{"ab"}, {"cd"}})
}

func TestParagraphBrokenWord(t *testing.T) {
	logs := tu.CaptureLogs()
	env := NewEnv(logs.Logger(), nil)

	p := paragraph(nil, "abcdefgh")
	res := p.Layout(NewLayoutContext(area(20, 100), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, lineTexts(linesOfResult(p, res)), [][]string{{"abcd"}, {"efgh"}})
	logs.CheckEqual([]string{"word does not fit the line width: it is broken"}, t)
}

func TestParagraphSeveralRuns(t *testing.T) {
	env := NewEnv(nil, nil)
	p := paragraph(nil, "aa ", "bb ", "cc")
	res := p.Layout(NewLayoutContext(area(30, 100), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, lineTexts(linesOfResult(p, res)), [][]string{{"aa ", "bb "}, {"cc"}})
}

func TestParagraphSplit(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	p := paragraph(nil, "a b c d")
	res := p.Layout(NewLayoutContext(area(5, 30), env))
	assertStatus(t, res, Partial)
	tu.AssertEqual(t, len(res.SplitRenderer.(*ParagraphRenderer).Lines), 2)
	tu.AssertEqual(t, res.OccupiedArea.BBox.Height, Fl(24), tu.Approx)
	rest := res.OverflowRenderer.Base().Children[0].(*TextRenderer)
	tu.AssertEqual(t, string(rest.Text), "c d")
	tu.AssertEqual(t, res.OverflowRenderer.Base().IsContinuation(), true)
}

func TestParagraphWidowsOrphans(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	// a line is moved to the next area to keep three lines together
	p := paragraph(pr.Properties{pr.PWidows: pr.Int(3)}, "a b c d")
	res := p.Layout(NewLayoutContext(area(5, 30), env))
	assertStatus(t, res, Partial)
	tu.AssertEqual(t, len(res.SplitRenderer.(*ParagraphRenderer).Lines), 1)
	rest := res.OverflowRenderer.Base().Children[0].(*TextRenderer)
	tu.AssertEqual(t, string(rest.Text), "b c d")

	p = paragraph(pr.Properties{pr.POrphans: pr.Int(3)}, "a b c d")
	res = p.Layout(NewLayoutContext(area(5, 30), env))
	assertStatus(t, res, Nothing)
	tu.AssertEqual(t, res.CauseOfNothing == Renderer(p), true)
}

func TestParagraphKeepTogether(t *testing.T) {
	env := NewEnv(nil, nil)
	p := paragraph(pr.Properties{pr.PKeepTogether: pr.Bool(true)}, "a b c d")
	res := p.Layout(NewLayoutContext(area(5, 30), env))
	assertStatus(t, res, Nothing)
}

func TestParagraphFloat(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	float := div(pr.Properties{pr.PFloat: pr.String("left"), pr.PWidth: pr.FToV(20), pr.PHeight: pr.FToV(20)})
	p := paragraph(nil)
	AddChild(p, float)
	text := NewTextRenderer(nil, "aaaa bbbb")
	AddChild(p, text)
	res := p.Layout(NewLayoutContext(area(70, 100), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, bbox(float), geom.Rectangle{Width: 20, Height: 20})
	lines := linesOfResult(p, res)
	tu.AssertEqual(t, lineTexts(lines), [][]string{{"aaaa bbbb"}})
	tu.AssertEqual(t, lines[0].Children[0].Base().OccupiedArea.BBox.X, Fl(20))
}

func TestParagraphMinMaxWidth(t *testing.T) {
	p := paragraph(nil, "aa bbbb ", "c")
	mm := p.MinMaxWidth(nil)
	tu.AssertEqual(t, [2]Fl{mm.Min(), mm.Max()}, [2]Fl{20, 45})

	p = paragraph(pr.Properties{pr.PPaddingLeft: pr.FToV(5)}, "aa bbbb")
	mm = p.MinMaxWidth(nil)
	tu.AssertEqual(t, [2]Fl{mm.Min(), mm.Max()}, [2]Fl{25, 40})
}

func TestPrepareSpecialScripts(t *testing.T) {
	a, b := NewTextRenderer(nil, "日本"), NewTextRenderer(nil, "語")
	latin := NewTextRenderer(nil, "abc")
	c := NewTextRenderer(nil, "タイ")
	prepareSpecialScripts([]Renderer{a, b, latin, c})

	tu.AssertEqual(t, a.sequence == b.sequence, true)
	tu.AssertEqual(t, a.sequence != c.sequence, true)
	tu.AssertEqual(t, latin.sequence, 0)
	tu.AssertEqual(t, a.specialBreaks, []int{1})
	tu.AssertEqual(t, b.breakBefore, true)
	tu.AssertEqual(t, a.breakBefore, true)

	// the iteration mark may not start a line
	d, e := NewTextRenderer(nil, "日本"), NewTextRenderer(nil, "ゝ語")
	prepareSpecialScripts([]Renderer{d, e})
	tu.AssertEqual(t, e.breakBefore, false)
	tu.AssertEqual(t, e.specialBreaks, []int{1})

	// idempotent
	prepareSpecialScripts([]Renderer{d, e})
	tu.AssertEqual(t, d.specialBreaks, []int{1})
	tu.AssertEqual(t, e.breakBefore, false)
}

func TestSpecialScriptAcrossRuns(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	p := paragraph(nil, "日本", "ゝ語")
	res := p.Layout(NewLayoutContext(area(25, 100), env))
	assertStatus(t, res, Full)
	// the line is broken before the last break point of the first run,
	// since "ゝ" may not start a line
	tu.AssertEqual(t, lineTexts(linesOfResult(p, res)), [][]string{{"日"}, {"本", "ゝ"}, {"語"}})
}

func TestTextMinMaxWidth(t *testing.T) {
	run := NewTextRenderer(el(pr.Properties{pr.PFontSize: pr.FToV(10)}), "aa bbbb cc")
	mm := run.MinMaxWidth(nil)
	tu.AssertEqual(t, [2]Fl{mm.Min(), mm.Max()}, [2]Fl{20, 50})
}
