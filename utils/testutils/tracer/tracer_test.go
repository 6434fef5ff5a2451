package tracer

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/layout"
	pr "github.com/benoitkugler/boxlayout/properties"
	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

func sample() []layout.Page {
	doc := layout.NewDocumentRenderer(nil)
	p := layout.NewParagraphRenderer(&layout.Element{Style: pr.Properties{pr.PFontSize: pr.FToV(10)}})
	layout.AddChild(p, layout.NewTextRenderer(nil, "ab"))
	layout.AddChild(doc, p)
	pages, err := doc.Paginate(layout.PageSize{Width: 100, Height: 100}, nil)
	if err != nil {
		panic(err)
	}
	return pages
}

func TestDumpTree(t *testing.T) {
	var buf bytes.Buffer
	NewTracerWriter(&buf).DumpTree(sample()[0].Root, "page 1")
	lines := strings.Split(buf.String(), "\n")
	tu.AssertEqual(t, lines[0], "page 1")
	tu.AssertEqual(t, lines[1], "Document: page 1 0 0 100 12")
	tu.AssertEqual(t, strings.TrimSpace(lines[len(lines)-3]), `"ab"`)
}

func TestDumpJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTracerWriter(&buf).DumpJSON(sample()); err != nil {
		t.Fatal(err)
	}
	var nodes []Node
	if err := jsoniter.Unmarshal(buf.Bytes(), &nodes); err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(nodes), 1)
	paragraph := nodes[0].Children[0]
	tu.AssertEqual(t, paragraph.Kind, "Paragraph")
	text := paragraph.Children[0].Children[0]
	tu.AssertEqual(t, text.Text, "ab")
	tu.AssertEqual(t, geom.Rectangle{X: text.X, Width: text.Width}, geom.Rectangle{Width: 10})
}

func TestFormatFloat(t *testing.T) {
	tu.AssertEqual(t, FormatFloat(1.23456), "1.23")
	tu.AssertEqual(t, FormatFloat(12), "12")
}
