// Package tracer provides functions to dump a laid out renderer tree,
// which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/benoitkugler/boxlayout/layout"
	"github.com/benoitkugler/boxlayout/utils"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewTracerWriter writes to out.
func NewTracerWriter(out io.Writer) Tracer { return Tracer{out: out} }

func FormatFloat(v utils.Fl) string {
	return strconv.FormatFloat(float64(utils.RoundPrec(v, 2)), 'g', -1, 32)
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

func (t Tracer) DumpTree(r layout.Renderer, context string) {
	fmt.Fprintln(t.out, context)

	var printer func(r layout.Renderer, indent int)
	printer = func(r layout.Renderer, indent int) {
		fmt.Fprint(t.out, strings.Repeat(" ", indent))
		if area := r.Base().OccupiedArea; area != nil {
			fmt.Fprintf(t.out, "%s: page %d %s %s %s %s\n", r.Kind(), area.PageNumber,
				FormatFloat(area.BBox.X),
				FormatFloat(area.BBox.Y),
				FormatFloat(area.BBox.Width),
				FormatFloat(area.BBox.Height),
			)
		} else {
			fmt.Fprintf(t.out, "%s: not placed\n", r.Kind())
		}
		if text, ok := r.(*layout.TextRenderer); ok {
			fmt.Fprint(t.out, strings.Repeat(" ", indent))
			fmt.Fprintln(t.out, strconv.Quote(string(text.Text)))
		}

		for _, child := range layout.PlacedChildren(r) {
			printer(child, indent+1)
		}
	}

	printer(r, 0)

	fmt.Fprintln(t.out)
}

// Node is the JSON form of a renderer.
type Node struct {
	Kind     string  `json:"kind"`
	Page     int     `json:"page,omitempty"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	Text     string  `json:"text,omitempty"`
	Placed   bool    `json:"placed"`
	Children []Node  `json:"children,omitempty"`
}

// Tree returns the JSON form of r and its descendants.
func Tree(r layout.Renderer) Node {
	node := Node{Kind: r.Kind().String()}
	if area := r.Base().OccupiedArea; area != nil {
		node.Placed = true
		node.Page = area.PageNumber
		node.X, node.Y = area.BBox.X, area.BBox.Y
		node.Width, node.Height = area.BBox.Width, area.BBox.Height
	}
	if text, ok := r.(*layout.TextRenderer); ok {
		node.Text = string(text.Text)
	}
	for _, child := range layout.PlacedChildren(r) {
		node.Children = append(node.Children, Tree(child))
	}
	return node
}

// DumpJSON writes the tree of each page as a JSON array.
func (t Tracer) DumpJSON(pages []layout.Page) error {
	nodes := make([]Node, len(pages))
	for i, page := range pages {
		nodes[i] = Tree(page.Root)
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(t.out)
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}
