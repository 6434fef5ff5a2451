package document

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/boxlayout/images"
	"github.com/benoitkugler/boxlayout/layout"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/style"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func build(t *testing.T, content string) *layout.DocumentRenderer {
	t.Helper()
	doc, err := NewBuilder(nil).Build(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func kinds(rs []layout.Renderer) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Kind().String()
	}
	return out
}

func runs(p layout.Renderer) []string {
	var out []string
	for _, c := range p.Base().Children {
		if t, ok := c.(*layout.TextRenderer); ok {
			out = append(out, string(t.Text))
		}
	}
	return out
}

func TestBuildParagraph(t *testing.T) {
	doc := build(t, "<p>hello <b>big</b>\n  world </p>")
	tu.AssertEqual(t, kinds(doc.Children), []string{"Paragraph"})
	tu.AssertEqual(t, runs(doc.Children[0]), []string{"hello ", "big", " world"})
	tu.AssertEqual(t, doc.Children[0].Base().Element.Tag, "p")
}

func TestBuildAnonymousParagraphs(t *testing.T) {
	doc := build(t, "some text <div style=\"height: 20pt\">inside</div> more text")
	tu.AssertEqual(t, kinds(doc.Children), []string{"Paragraph", "Div", "Paragraph"})
	tu.AssertEqual(t, runs(doc.Children[0]), []string{"some text"})
	tu.AssertEqual(t, runs(doc.Children[2]), []string{"more text"})
	tu.AssertEqual(t, doc.Children[0].Base().Element == nil, true)

	inner := doc.Children[1].Base().Children
	tu.AssertEqual(t, kinds(inner), []string{"Paragraph"})
	tu.AssertEqual(t, doc.Children[1].Base().Style().GetHeight(), pr.FToV(20))
}

func TestBuildInlineStyle(t *testing.T) {
	doc := build(t, `<p style="font-size: 20pt">a <span style="font-size: 10pt">b</span></p>`)
	p := doc.Children[0]
	texts := p.Base().Children
	tu.AssertEqual(t, len(texts), 2)
	tu.AssertEqual(t, texts[0].Base().Style().GetFontSize(), pr.FToV(20))
	tu.AssertEqual(t, texts[1].Base().Style().GetFontSize(), pr.FToV(10))
}

func TestBuildLineBreak(t *testing.T) {
	doc := build(t, "<p>ab<br> cd</p>")
	tu.AssertEqual(t, runs(doc.Children[0]), []string{"ab", "\n", "cd"})
}

func TestBuildDisplayNone(t *testing.T) {
	doc := build(t, `<div style="display: none">x</div><p>y</p>`)
	tu.AssertEqual(t, kinds(doc.Children), []string{"Paragraph"})
}

func TestBuildContainers(t *testing.T) {
	doc := build(t, `<div style="display: flex"><div>a</div><div>b</div></div>
		<div style="display: grid; grid-template-columns: 10pt 1fr"><div>c</div></div>`)
	tu.AssertEqual(t, kinds(doc.Children), []string{"FlexContainer", "GridContainer"})
	tu.AssertEqual(t, len(doc.Children[0].Base().Children), 2)
}

func TestBuildList(t *testing.T) {
	doc := build(t, `<ol start="3"><li>a</li><li>b</li></ol><ul><li>c</li></ul>`)
	tu.AssertEqual(t, kinds(doc.Children), []string{"Div", "Div"})

	items := doc.Children[0].Base().Children
	tu.AssertEqual(t, kinds(items), []string{"ListItem", "ListItem"})
	tu.AssertEqual(t, items[0].(*layout.ListItemRenderer).Ordinal, 3)
	tu.AssertEqual(t, items[1].(*layout.ListItemRenderer).Ordinal, 4)
	tu.AssertEqual(t, items[0].Base().Style().GetListStyleType(), pr.String("decimal"))

	bullet := doc.Children[1].Base().Children[0]
	tu.AssertEqual(t, bullet.Base().Style().GetListStyleType(), pr.String("disc"))
}

func TestBuildTable(t *testing.T) {
	doc := build(t, `<table>
		<thead><tr><th>A</th><th>B</th><th>C</th></tr></thead>
		<tbody>
			<tr><td colspan="2">1</td><td rowspan="2">2</td></tr>
			<tr><td>3</td><td>4</td></tr>
		</tbody>
		<tfoot><tr><td colspan="3">end</td></tr></tfoot>
	</table>`)
	tu.AssertEqual(t, kinds(doc.Children), []string{"Table"})
	table := doc.Children[0].(*layout.TableRenderer)
	tu.AssertEqual(t, table.NumberOfColumns(), 3)

	rows := table.Rows()
	tu.AssertEqual(t, len(rows), 2)
	tu.AssertEqual(t, rows[0][0].Colspan(), 2)
	tu.AssertEqual(t, rows[0][2].Rowspan(), 2)
	tu.AssertEqual(t, rows[1][0] != nil && rows[1][1] != nil, true)
	tu.AssertEqual(t, rows[1][2] == nil, true)

	tu.AssertEqual(t, table.Header != nil, true)
	tu.AssertEqual(t, len(table.Header.Rows()[0]), 3)
	tu.AssertEqual(t, table.Header.Rows()[0][0].Style().GetTextAlign(), pr.String("center"))
	tu.AssertEqual(t, table.Footer.Rows()[0][0].Colspan(), 3)
}

func TestCountColumns(t *testing.T) {
	doc := build(t, `<table><tr><td rowspan="2">a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>`)
	table := doc.Children[0].(*layout.TableRenderer)
	// the second row starts after the spanning cell
	tu.AssertEqual(t, table.NumberOfColumns(), 3)
}

func TestBuildImage(t *testing.T) {
	logs := tu.CaptureLogs()
	b := NewBuilder(logs.Logger())
	doc, err := b.Build(strings.NewReader(`<img width="40" height="20"><img alt="missing picture"><img src="a.png"><p>x</p>`))
	if err != nil {
		t.Fatal(err)
	}
	// inline images are wrapped in an anonymous paragraph
	tu.AssertEqual(t, kinds(doc.Children), []string{"Paragraph", "Paragraph"})
	tu.AssertEqual(t, kinds(doc.Children[0].Base().Children), []string{"Image", "Text"})
	logs.CheckEqual([]string{"image could not be loaded", "image without intrinsic size is ignored"}, t)
}

func TestBuildImageFromFile(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 80, 40))
	f, err := os.Create(filepath.Join(dir, "pic.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	b := NewBuilder(logs.Logger())
	b.Images = images.NewCache(dir)
	doc, err := b.Build(strings.NewReader(`<img src="pic.png" style="display: block"><img src="pic.png" width="30" style="display: block">`))
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, kinds(doc.Children), []string{"Image", "Image"})

	env := layout.NewEnv(logs.Logger(), nil)
	pages, err := doc.Paginate(layout.PageSize{Width: 200, Height: 200}, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 1)
	first, second := doc.Children[0].Base().OccupiedArea.BBox, doc.Children[1].Base().OccupiedArea.BBox
	// 80x40 pixels are 60x30 points
	tu.AssertEqual(t, [2]float32{first.Width, first.Height}, [2]float32{60, 30})
	tu.AssertEqual(t, [2]float32{second.Width, second.Height}, [2]float32{30, 15})
}

func TestBuildInvalidStyle(t *testing.T) {
	_, err := NewBuilder(nil).Build(strings.NewReader(`<div style="width: abc">x</div>`))
	if !errors.Is(err, style.ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}

	_, err = NewBuilder(nil).Build(strings.NewReader(`<div style="display: flex"><div style="flex-grow: -1">x</div></div>`))
	if err == nil {
		t.Fatal("expected error for negative flex factor")
	}
}

func TestBuildUnsupportedProperty(t *testing.T) {
	logs := tu.CaptureLogs()
	_, err := NewBuilder(logs.Logger()).Build(strings.NewReader(`<p style="color: red">x</p>`))
	if err != nil {
		t.Fatal(err)
	}
	logs.CheckEqual([]string{"ignored unsupported property"}, t)
}

func TestBuildRootStyle(t *testing.T) {
	b := NewBuilder(nil)
	b.RootStyle = pr.Properties{pr.PFontSize: pr.FToV(9)}
	doc, err := b.Build(strings.NewReader(`<p>x</p>`))
	if err != nil {
		t.Fatal(err)
	}
	text := doc.Children[0].Base().Children[0]
	tu.AssertEqual(t, text.Base().Style().GetFontSize(), pr.FToV(9))
}

func TestLayout(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.AssertNoLogs(t)
	env := layout.NewEnv(logs.Logger(), nil)

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString(`<div style="height: 30pt"></div>`)
	}
	pages, err := Layout(strings.NewReader(sb.String()), layout.PageSize{Width: 100, Height: 100}, nil, env)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(pages), 4)
	tu.AssertEqual(t, len(pages[3].Root.Base().Children), 1)
}
