package layout

import (
	"testing"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func solid(width Fl) pr.Border { return pr.Border{Width: width, Style: "solid", Color: "black"} }

func cell(props pr.Properties, children ...Renderer) *CellRenderer {
	out := NewCellRenderer(el(props))
	for _, c := range children {
		AddChild(out, c)
	}
	return out
}

// newTable returns a table whose cells hold a block of the given height.
func newTable(props pr.Properties, columns, rows int, height Fl) *TableRenderer {
	t := NewTableRenderer(el(props), columns)
	for i := 0; i < rows*columns; i++ {
		t.AddCell(cell(nil, box(height)))
	}
	return t
}

func edgeWidths(borders [][]*pr.Border) [][]Fl {
	out := make([][]Fl, len(borders))
	for i, line := range borders {
		out[i] = make([]Fl, len(line))
		for j, b := range line {
			out[i][j] = borderWidth(b)
		}
	}
	return out
}

func TestCollapsedBordersWidest(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	left := cell(pr.Properties{pr.PBorderRight: solid(2)})
	right := cell(pr.Properties{pr.PBorderLeft: solid(1)})
	borders := NewCollapsedTableBorders([][]*CellRenderer{{left, right}}, 2, [4]*pr.Border{}, env)
	borders.CollapseAllBordersAndEmptyRows()

	tu.AssertEqual(t, borderWidth(borders.Vertical()[1][0]), Fl(2))
	tu.AssertEqual(t, borders.GetCellBorderIndents(0, 0, 1, 1)[geom.Right], Fl(1))
	tu.AssertEqual(t, borders.GetCellBorderIndents(0, 1, 1, 1)[geom.Left], Fl(1))
}

func TestCollapsedBordersTable(t *testing.T) {
	env := NewEnv(nil, nil)
	c := cell(pr.Properties{pr.PBorderTop: solid(1), pr.PBorderLeft: solid(4)})
	tableBorders := [4]*pr.Border{solid(3).Ptr(), nil, solid(2).Ptr(), solid(3).Ptr()}
	borders := NewCollapsedTableBorders([][]*CellRenderer{{c}}, 1, tableBorders, env)
	borders.CollapseAllBordersAndEmptyRows()

	tu.AssertEqual(t, edgeWidths(borders.Horizontal()), [][]Fl{{3}, {2}})
	tu.AssertEqual(t, edgeWidths(borders.Vertical()), [][]Fl{{4}, {0}})
	tu.AssertEqual(t, borders.TableIndents(), geom.Insets{1.5, 0, 1, 2})
}

func TestCollapsedBordersSymmetry(t *testing.T) {
	env := NewEnv(nil, nil)
	widths := []Fl{0, 1, 3, 0.5}
	var rows [][]*CellRenderer
	for i := 0; i < 3; i++ {
		var cells []*CellRenderer
		for j := 0; j < 3; j++ {
			k := i*3 + j
			cells = append(cells, cell(pr.Properties{
				pr.PBorderTop:    solid(widths[k%4]),
				pr.PBorderRight:  solid(widths[(k+1)%4]),
				pr.PBorderBottom: solid(widths[(k+2)%4]),
				pr.PBorderLeft:   solid(widths[(k+3)%4]),
			}))
		}
		rows = append(rows, cells)
	}
	borders := NewCollapsedTableBorders(rows, 3, [4]*pr.Border{}, env)
	borders.CollapseAllBordersAndEmptyRows()
	horizontal, vertical := edgeWidths(borders.Horizontal()), edgeWidths(borders.Vertical())

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			in := borders.GetCellBorderIndents(i, j, 1, 1)
			if j < 2 {
				tu.AssertEqual(t, in[geom.Right], borders.GetCellBorderIndents(i, j+1, 1, 1)[geom.Left])
			}
			if i < 2 {
				tu.AssertEqual(t, in[geom.Bottom], borders.GetCellBorderIndents(i+1, j, 1, 1)[geom.Top])
			}
		}
	}

	// collapsing again gives the same borders
	borders.CollapseAllBordersAndEmptyRows()
	tu.AssertEqual(t, edgeWidths(borders.Horizontal()), horizontal)
	tu.AssertEqual(t, edgeWidths(borders.Vertical()), vertical)
}

func TestCollapsedBordersEmptyRows(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	a, b := cell(nil), cell(nil)
	borders := NewCollapsedTableBorders([][]*CellRenderer{{a}, {nil}, {b}}, 1, [4]*pr.Border{}, env)
	borders.CollapseAllBordersAndEmptyRows()
	tu.AssertEqual(t, len(borders.Rows()), 2)
	tu.AssertEqual(t, borders.Rows()[1][0] == b, true)
	tu.AssertEqual(t, len(borders.Horizontal()), 3)
}

func TestCollapsedBordersEmptyRowsRowspan(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	// the empty row is covered by a, whose span shrinks with it
	a := cell(pr.Properties{pr.PRowspan: pr.Int(3)})
	b, c := cell(nil), cell(nil)
	rows := [][]*CellRenderer{{a, b}, {nil, nil}, {nil, c}}
	borders := NewCollapsedTableBorders(rows, 2, [4]*pr.Border{}, env)
	borders.CollapseAllBordersAndEmptyRows()
	tu.AssertEqual(t, len(borders.Rows()), 2)
	tu.AssertEqual(t, a.Rowspan(), 2)
	tu.AssertEqual(t, b.Rowspan(), 1)
	tu.AssertEqual(t, borders.Rows()[1][1] == c, true)

	// nothing left to remove
	borders.CollapseAllBordersAndEmptyRows()
	tu.AssertEqual(t, len(borders.Rows()), 2)
	tu.AssertEqual(t, a.Rowspan(), 2)
}

func TestGetCollapsedBorderOrder(t *testing.T) {
	thin, thick, other := solid(1), solid(3), solid(3)
	for _, pair := range [][2]*pr.Border{
		{&thin, &thick}, {&thick, &other}, {nil, &thin}, {&thin, nil}, {nil, nil},
	} {
		ab := GetCollapsedBorder(pair[0], pair[1])
		ba := GetCollapsedBorder(pair[1], pair[0])
		tu.AssertEqual(t, borderWidth(ab), borderWidth(ba))
	}
	// a missing table border never removes the cell border
	tu.AssertEqual(t, GetCollapsedBorder(&thin, nil) == &thin, true)
	tu.AssertEqual(t, GetCollapsedBorder(nil, &thin) == &thin, true)
}

func TestCollapsedBordersHeaderPriority(t *testing.T) {
	env := NewEnv(nil, nil)
	red := pr.Border{Width: 2, Style: "solid", Color: "red"}
	blue := pr.Border{Width: 2, Style: "solid", Color: "blue"}

	header := NewCollapsedTableBorders([][]*CellRenderer{{cell(pr.Properties{pr.PBorderBottom: red})}}, 1, [4]*pr.Border{}, env)
	header.isPart = true
	header.CollapseAllBordersAndEmptyRows()
	body := NewCollapsedTableBorders([][]*CellRenderer{{cell(pr.Properties{pr.PBorderTop: blue})}}, 1, [4]*pr.Border{}, env)
	body.CollapseAllBordersAndEmptyRows()

	body.SetTopBorderCollapseWith(header.Horizontal()[1])
	header.SetBottomBorderCollapseWith(body.Horizontal()[0])

	// both sides of the shared edge agree on the header border
	tu.AssertEqual(t, string(body.HorizontalEdge(0)[0].Color), "red")
	tu.AssertEqual(t, string(header.HorizontalEdge(1)[0].Color), "red")

	// a wider body border still wins
	wide := pr.Border{Width: 4, Style: "solid", Color: "blue"}
	body = NewCollapsedTableBorders([][]*CellRenderer{{cell(pr.Properties{pr.PBorderTop: wide})}}, 1, [4]*pr.Border{}, env)
	body.CollapseAllBordersAndEmptyRows()
	body.SetTopBorderCollapseWith(header.Horizontal()[1])
	header.SetBottomBorderCollapseWith(body.Horizontal()[0])
	tu.AssertEqual(t, string(body.HorizontalEdge(0)[0].Color), "blue")
	tu.AssertEqual(t, string(header.HorizontalEdge(1)[0].Color), "blue")

	body.SetTopBorderCollapseWith(nil)
	tu.AssertEqual(t, body.HorizontalEdge(0)[0].Width, Fl(4))
}

func TestCheckAndReplaceBorder(t *testing.T) {
	arr := [][]*pr.Border{{nil}}
	thin, thick := solid(1), solid(2)
	tu.AssertEqual(t, CheckAndReplaceBorderInArray(arr, 0, 0, &thin, false), true)
	tu.AssertEqual(t, CheckAndReplaceBorderInArray(arr, 0, 0, &thick, false), true)
	other := solid(2)
	tu.AssertEqual(t, CheckAndReplaceBorderInArray(arr, 0, 0, &other, false), false)
	tu.AssertEqual(t, CheckAndReplaceBorderInArray(arr, 0, 0, &other, true), true)
	tu.AssertEqual(t, arr[0][0] == &other, true)
	tu.AssertEqual(t, CheckAndReplaceBorderInArray(arr, 1, 0, &other, true), false)

	tu.AssertEqual(t, GetCollapsedBorder(&thin, &thick) == &thick, true)
	tu.AssertEqual(t, GetCollapsedBorder(&thick, &other) == &thick, true)
	tu.AssertEqual(t, GetCollapsedBorder(nil, nil) == nil, true)
}

func TestTableAddCell(t *testing.T) {
	table := NewTableRenderer(nil, 3)
	a := cell(pr.Properties{pr.PRowspan: pr.Int(2)})
	b := cell(pr.Properties{pr.PColspan: pr.Int(2)})
	c, d := cell(nil), cell(nil)
	for _, x := range []*CellRenderer{a, b, c, d} {
		table.AddCell(x)
	}
	rows := table.Rows()
	tu.AssertEqual(t, len(rows), 2)
	tu.AssertEqual(t, rows[0][0] == a && rows[0][1] == b, true)
	tu.AssertEqual(t, rows[1][1] == c && rows[1][2] == d, true)
	tu.AssertEqual(t, rows[1][0] == nil, true)

	table.StartNewRow()
	e := cell(nil)
	table.AddCell(e)
	tu.AssertEqual(t, table.Rows()[2][0] == e, true)
}

func TestTableColumnWidths(t *testing.T) {
	env := NewEnv(nil, nil)
	p := NewParagraphRenderer(el(pr.Properties{pr.PFontSize: pr.FToV(10)}))
	AddChild(p, NewTextRenderer(nil, "aa bbbb"))
	table := NewTableRenderer(nil, 2)
	table.AddCell(cell(nil, p))
	table.AddCell(cell(nil, NewImageRenderer(nil, 30, 10)))
	table.prepare(env)

	tu.AssertEqual(t, table.columnWidths(40, env), []Fl{20, 30})
	tu.AssertEqual(t, table.columnWidths(60, env), []Fl{30, 30}, tu.Approx)
	tu.AssertEqual(t, table.columnWidths(200, env), []Fl{35 + 135*35./65, 30 + 135*30./65}, tu.Approx)

	mm := table.MinMaxWidth(env)
	tu.AssertEqual(t, [2]Fl{mm.Min(), mm.Max()}, [2]Fl{50, 65})

	fixed := NewTableRenderer(el(pr.Properties{pr.PColumnWidths: pr.Values{pr.FToV(80), pr.PercToV(25)}}), 3)
	fixed.prepare(env)
	tu.AssertEqual(t, fixed.columnWidths(200, env), []Fl{80, 50, 70})
}

func TestTableSplit(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	table := newTable(pr.Properties{pr.PColumnWidths: pr.Values{pr.FToV(50), pr.FToV(50)}}, 2, 3, 20)
	res := table.Layout(NewLayoutContext(area(100, 50), env))
	assertStatus(t, res, Partial)
	tu.AssertEqual(t, len(res.SplitRenderer.Base().Children), 4)
	tu.AssertEqual(t, res.OccupiedArea.BBox, geom.Rectangle{Width: 100, Height: 40})

	overflow := res.OverflowRenderer.(*TableRenderer)
	tu.AssertEqual(t, len(overflow.Rows()), 1)
	tu.AssertEqual(t, len(overflow.Children), 2)

	next := overflow.Layout(NewLayoutContext(area(100, 50), env))
	assertStatus(t, next, Full)
	tu.AssertEqual(t, next.OccupiedArea.BBox.Height, Fl(20))
	tu.AssertEqual(t, bbox(overflow.Children[1]), geom.Rectangle{X: 50, Width: 50, Height: 20})
}

func TestTableKeepTogether(t *testing.T) {
	env := NewEnv(nil, nil)
	table := newTable(pr.Properties{pr.PKeepTogether: pr.Bool(true), pr.PColumnWidths: pr.Values{pr.FToV(50), pr.FToV(50)}}, 2, 3, 20)
	res := table.Layout(NewLayoutContext(area(100, 50), env))
	assertStatus(t, res, Nothing)
}

func TestTableHeader(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	widths := pr.Properties{pr.PColumnWidths: pr.Values{pr.FToV(50), pr.FToV(50)}}
	table := newTable(widths, 2, 3, 20)
	table.Header = newTable(nil, 2, 1, 10)
	res := table.Layout(NewLayoutContext(area(100, 50), env))
	assertStatus(t, res, Partial)

	split := res.SplitRenderer.(*TableRenderer)
	header := split.PlacedHeader()
	if header == nil {
		t.Fatal("missing header")
	}
	tu.AssertEqual(t, bbox(header), geom.Rectangle{Width: 100, Height: 10})
	tu.AssertEqual(t, bbox(split.Children[0]).Y, Fl(10))
	tu.AssertEqual(t, len(split.Children), 4)

	// the header is repeated
	overflow := res.OverflowRenderer.(*TableRenderer)
	next := overflow.Layout(NewLayoutContext(area(100, 50), env))
	assertStatus(t, next, Full)
	if overflow.PlacedHeader() == nil || overflow.PlacedHeader() == header {
		t.Fatal("expected a new header fragment")
	}
	tu.AssertEqual(t, next.OccupiedArea.BBox.Height, Fl(30))

	// unless skipped on the first fragment
	skipping := newTable(pr.Properties{
		pr.PColumnWidths:    pr.Values{pr.FToV(50), pr.FToV(50)},
		pr.PSkipFirstHeader: pr.Bool(true),
	}, 2, 2, 20)
	skipping.Header = newTable(nil, 2, 1, 10)
	res = skipping.Layout(NewLayoutContext(area(100, 50), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, skipping.PlacedHeader() == nil, true)
}

func TestTableFooter(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	widths := pr.Values{pr.FToV(50), pr.FToV(50)}
	table := newTable(pr.Properties{pr.PColumnWidths: widths}, 2, 2, 20)
	table.Footer = newTable(nil, 2, 1, 10)
	res := table.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Full)
	footer := table.PlacedFooter()
	if footer == nil {
		t.Fatal("missing footer")
	}
	tu.AssertEqual(t, bbox(footer).Y, Fl(40))
	tu.AssertEqual(t, res.OccupiedArea.BBox.Height, Fl(50))

	skipping := newTable(pr.Properties{pr.PColumnWidths: widths, pr.PSkipLastFooter: pr.Bool(true)}, 2, 2, 20)
	skipping.Footer = newTable(nil, 2, 1, 10)
	res = skipping.Layout(NewLayoutContext(area(100, 100), env))
	assertStatus(t, res, Full)
	tu.AssertEqual(t, skipping.PlacedFooter() == nil, true)
	tu.AssertEqual(t, res.OccupiedArea.BBox.Height, Fl(40))
}

func TestTableCollapsedLayout(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := NewEnv(logs.Logger(), nil)

	table := NewTableRenderer(el(pr.Properties{
		pr.PColumnWidths: pr.Values{pr.FToV(50), pr.FToV(50)},
		pr.PBorderLeft:   solid(4),
	}), 2)
	a := cell(pr.Properties{pr.PBorderRight: solid(2)}, box(20))
	b := cell(nil, box(20))
	table.AddCell(a)
	table.AddCell(b)
	res := table.Layout(NewLayoutContext(area(200, 100), env))
	assertStatus(t, res, Full)
	// half of the outer border is outside the cells
	tu.AssertEqual(t, res.OccupiedArea.BBox.Width, Fl(102))
	tu.AssertEqual(t, *a.bordersOverride, geom.Insets{0, 1, 0, 2})
	tu.AssertEqual(t, *b.bordersOverride, geom.Insets{0, 0, 0, 1})
}
