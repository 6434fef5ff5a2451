package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
)

// ParagraphRenderer lays out its inline children (text runs, images and floats)
// into lines.
type ParagraphRenderer struct {
	BaseRenderer

	// Lines are set by layout.
	Lines []*LineRenderer
}

func NewParagraphRenderer(el *Element) *ParagraphRenderer {
	return &ParagraphRenderer{BaseRenderer: BaseRenderer{Element: el}}
}

func (p *ParagraphRenderer) Kind() Kind { return KindParagraph }

func (p *ParagraphRenderer) Copy() Renderer {
	out := *p
	out.BaseRenderer = p.BaseRenderer.copy()
	out.Lines = nil
	return &out
}

// placedLine records the state before a line, used to
// remove lines for widows.
type placedLine struct {
	line    *LineRenderer
	pending []Renderer
	floats  FloatsSnapshot
}

func (p *ParagraphRenderer) Layout(ctx LayoutContext) LayoutResult {
	f, res, ok := beginBlock(p, ctx)
	if !ok {
		return res
	}
	prepareSpecialScripts(p.Children)

	st := p.Style()
	leading := st.GetLeading()
	estimate := lineHeightEstimate(&p.BaseRenderer, f.env)
	var indent Fl
	if !p.isContinuation {
		indent = st.GetFirstLineIndent().ResolveOr(f.content.Width, 0)
	}

	pending := append([]Renderer(nil), p.Children...)
	var lines []placedLine
	y := f.content.Y
	clipped := false
	for len(pending) != 0 {
		left, right := f.floats.horizontalSpan(f.content, y, estimate)
		narrowed := left > f.content.X || right < f.content.Right()
		if len(lines) == 0 {
			left += indent
		}
		snapshot := f.floats.Snapshot()
		line := newLineRenderer(p, pending, f.content)
		line.breakWords = !narrowed
		lctx := f.childContext(geom.Rectangle{X: left, Y: y, Width: maxF(0, right-left), Height: f.childBottom - y})
		lres := line.Layout(lctx)
		if lres.Status == Nothing {
			if next := f.floats.nextBottom(y); narrowed && next > y {
				y = next
				continue
			}
			break
		}
		placed := lres.SplitRenderer.(*LineRenderer)
		isLast := lres.Status == Full || placed.forcedEnd
		height := p.positionLine(placed, y, left, right, isLast, leading, st.GetTextAlign())
		if bottom := y + height; bottom > f.childBottom+utils.Epsilon {
			if f.dropsOverflow() {
				f.floats.Rollback(snapshot)
				clipped = true
				break
			}
			if !(len(lines) == 0 && f.forced) {
				f.floats.Rollback(snapshot)
				break
			}
		}
		lines = append(lines, placedLine{line: placed, pending: pending, floats: snapshot})
		y += height
		pending = nil
		if lres.OverflowRenderer != nil {
			pending = lres.OverflowRenderer.Base().Children
		}
	}

	if clipped {
		f.env.warn("content clipped by the element height", p)
		pending = nil
	}
	if len(pending) == 0 {
		children, alignables := collectLines(lines)
		target := Renderer(p)
		if len(children) != len(p.Children) || !samePointers(children, p.Children) {
			target = CreateSplitRenderer(p, children)
		}
		target.(*ParagraphRenderer).Lines = linesOf(lines)
		return f.complete(target, alignables, y)
	}

	if len(lines) == 0 {
		f.rollbackFloats()
		return nothing(pending[0], p)
	}
	if isKeepTogether(p) && !f.forced {
		f.rollbackFloats()
		return nothing(p, p)
	}
	orphans := utils.MaxInt(int(st.GetOrphans()), 1)
	if len(lines) < orphans && !f.forced {
		f.rollbackFloats()
		return nothing(p, p)
	}
	if widows := int(st.GetWidows()); widows > 1 {
		remaining := p.countLines(f, pending, widows)
		if needed := widows - remaining; needed > 0 {
			if keep := len(lines) - needed; keep >= orphans {
				f.floats.Rollback(lines[keep].floats)
				pending = lines[keep].pending
				lastLine := lines[keep-1].line.OccupiedArea.BBox
				y = lastLine.Bottom()
				lines = lines[:keep]
			} else if !f.forced {
				f.rollbackFloats()
				return nothing(p, p)
			}
		}
	}

	children, _ := collectLines(lines)
	res = f.split(children, nil, pending, nil, y)
	res.SplitRenderer.(*ParagraphRenderer).Lines = linesOf(lines)
	return res
}

func collectLines(lines []placedLine) (children, alignables []Renderer) {
	for _, l := range lines {
		children = append(children, l.line.placed...)
		alignables = append(alignables, l.line)
		alignables = append(alignables, l.line.floats...)
	}
	return children, alignables
}

func linesOf(lines []placedLine) []*LineRenderer {
	out := make([]*LineRenderer, len(lines))
	for i, l := range lines {
		out[i] = l.line
	}
	return out
}

// countLines returns the number of lines needed by pending, up to limit,
// ignoring floats.
func (p *ParagraphRenderer) countLines(f *blockFrame, pending []Renderer, limit int) int {
	n := 0
	for len(pending) != 0 && n < limit {
		line := newLineRenderer(p, pending, f.content)
		line.breakWords = true
		ctx := f.childContext(geom.Rectangle{X: f.content.X, Y: 0, Width: f.content.Width, Height: geom.InfiniteHeight})
		ctx.Floats = &FloatAreas{}
		res := line.Layout(ctx)
		if res.Status == Nothing {
			break
		}
		n++
		pending = nil
		if res.OverflowRenderer != nil {
			pending = res.OverflowRenderer.Base().Children
		}
	}
	return n
}

// positionLine moves the fragments of the line to the baseline and aligns
// them horizontally. It returns the height of the line.
func (p *ParagraphRenderer) positionLine(line *LineRenderer, y, left, right Fl, isLast bool, leading pr.Leading, align pr.String) Fl {
	if len(line.Children) == 0 {
		line.OccupiedArea.BBox.Height = 0
		return 0
	}
	asc, desc := line.maxAscent, line.maxDescent
	height := lineHeight(leading, asc, desc)
	line.Baseline = y + (height-asc-desc)/2 + asc
	for _, c := range line.Children {
		a, _ := inlineMetrics(c)
		move(c, 0, line.Baseline-a-c.Base().OccupiedArea.BBox.Y)
	}
	box := &line.OccupiedArea.BBox
	box.Y, box.Height = y, height

	last := line.Children[len(line.Children)-1]
	free := right - last.Base().OccupiedArea.BBox.Right()
	if free <= 0 {
		return height
	}
	var dx Fl
	switch align {
	case "right":
		dx = free
	case "center":
		dx = free / 2
	case "justify", "justify-all":
		if !isLast || align == "justify-all" {
			p.justify(line, free)
		}
		return height
	}
	if dx != 0 {
		move(line, dx, 0)
	}
	return height
}

// justify distributes free over the spaces of the line.
func (p *ParagraphRenderer) justify(line *LineRenderer, free Fl) {
	total := 0
	for i, c := range line.Children {
		if t, ok := c.(*TextRenderer); ok {
			total += t.spaces(i == len(line.Children)-1)
		}
	}
	if total == 0 {
		return
	}
	spacing := free / Fl(total)
	var shift Fl
	for i, c := range line.Children {
		move(c, shift, 0)
		if t, ok := c.(*TextRenderer); ok {
			extra := spacing * Fl(t.spaces(i == len(line.Children)-1))
			t.WordSpacing = spacing
			t.OccupiedArea.BBox.Width += extra
			shift += extra
		}
	}
	line.OccupiedArea.BBox.Width += shift
}

func (p *ParagraphRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	if env == nil {
		env = NewEnv(nil, nil)
	}
	return boxMinMaxWidth(p, func() MinMaxWidth {
		var out MinMaxWidth
		var line Fl
		for _, c := range p.Children {
			mm := c.MinMaxWidth(env)
			if isFloating(c) {
				out.MaxWidth = maxF(out.MaxWidth, mm.Max())
				out.MinWidth = maxF(out.MinWidth, mm.Min())
				continue
			}
			out.MinWidth = maxF(out.MinWidth, mm.Min())
			line += mm.Max()
			if t, ok := c.(*TextRenderer); ok && indexRune(t.Text, '\n') >= 0 {
				out.MaxWidth = maxF(out.MaxWidth, line)
				line = 0
			}
		}
		out.MaxWidth = maxF(out.MaxWidth, line)
		if !p.isContinuation {
			out.MaxWidth += p.Style().GetFirstLineIndent().ResolveOr(-1, 0)
		}
		return out
	})
}
