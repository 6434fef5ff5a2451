package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
)

// LineRenderer is a line box of a paragraph. Its children are
// the inline fragments placed on the line.
type LineRenderer struct {
	BaseRenderer

	// Baseline is the y position of the baseline, set when the
	// paragraph positions the line.
	Baseline Fl

	maxAscent, maxDescent Fl
	// content box of the paragraph, in which floats are placed
	bounds geom.Rectangle
	// breakWords allows to break a word not fitting an empty line
	breakWords bool
	// floats placed while building the line
	floats []Renderer
	// placed fragments and floats, in document order
	placed []Renderer
	// the line ends with a forced break
	forcedEnd bool
}

func newLineRenderer(parent Renderer, pending []Renderer, bounds geom.Rectangle) *LineRenderer {
	l := &LineRenderer{bounds: bounds}
	// inline children keep the paragraph as parent
	l.Children = pending
	l.parent = parent
	return l
}

func (l *LineRenderer) Kind() Kind { return KindLine }

func (l *LineRenderer) Copy() Renderer {
	out := *l
	out.BaseRenderer = l.BaseRenderer.copy()
	return &out
}

func (l *LineRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	var out MinMaxWidth
	for _, c := range l.Children {
		mm := c.MinMaxWidth(env)
		out.MinWidth = maxF(out.MinWidth, mm.Min())
		out.MaxWidth += mm.Max()
	}
	return out
}

// Layout consumes as many children as fit in the width of the area.
// The SplitRenderer of the result is a new line holding the placed
// fragments, the OverflowRenderer a line holding the remaining children.
func (l *LineRenderer) Layout(ctx LayoutContext) LayoutResult {
	if ctx.Env == nil {
		ctx.Env = NewEnv(nil, nil)
	}
	if ctx.Floats == nil {
		ctx.Floats = &FloatAreas{}
	}
	env := ctx.Env
	box := ctx.Area.BBox
	out := &LineRenderer{bounds: l.bounds, breakWords: l.breakWords}
	out.parent = l.parent

	pending := l.Children
	var (
		inline []Renderer
		rest   []Renderer
	)
	x, right := box.X, box.Right()
	estimate := box.Height
	if l.parent != nil {
		estimate = minF(estimate, lineHeightEstimate(l.parent.Base(), env))
	}
	placeInline := func(frag Renderer) {
		inline = append(inline, frag)
		out.placed = append(out.placed, frag)
		asc, desc := inlineMetrics(frag)
		out.maxAscent = maxF(out.maxAscent, asc)
		out.maxDescent = maxF(out.maxDescent, desc)
		x = frag.Base().OccupiedArea.BBox.Right()
	}

loop:
	for i := 0; i < len(pending); i++ {
		child := pending[i]
		if isFloating(child) {
			fctx := ctx.withArea(geom.Rectangle{X: l.bounds.X, Y: box.Y, Width: l.bounds.Width, Height: box.Height})
			res := child.Layout(fctx)
			if res.Status != Full {
				// the float waits for the next line
				rest = pending[i:]
				break loop
			}
			frag := fragmentOf(child, res)
			out.floats = append(out.floats, frag)
			out.placed = append(out.placed, frag)
			left, r := ctx.Floats.horizontalSpan(l.bounds, box.Y, estimate)
			if left > box.X {
				for _, c := range inline {
					move(c, left-box.X, 0)
				}
				x += left - box.X
				box.X = left
			}
			right = minF(right, r)
			continue
		}

		available := maxF(0, right-x)
		firstOnLine := len(inline) == 0
		var res LayoutResult
		if t, ok := child.(*TextRenderer); ok {
			area := geom.Area{PageNumber: ctx.Area.PageNumber, BBox: geom.Rectangle{X: x, Y: box.Y, Width: available, Height: box.Height}}
			res = t.layoutInLine(env, area, (firstOnLine && l.breakWords) || isForced(t))
		} else {
			cctx := ctx.withArea(geom.Rectangle{X: x, Y: box.Y, Width: available, Height: box.Height})
			res = child.Layout(cctx)
			if res.Status != Full && firstOnLine && l.breakWords {
				env.warn("inline element does not fit the line: it is forced in", child)
				forced := child.Copy()
				forced.Base().SetProperty(pr.PForcedPlacement, pr.Bool(true))
				child = forced
				res = child.Layout(cctx)
			}
		}

		switch res.Status {
		case Full:
			frag := fragmentOf(child, res)
			placeInline(frag)
			if t, ok := frag.(*TextRenderer); ok && t.endsLine {
				out.forcedEnd = true
				rest = pending[i+1:]
				break loop
			}
		case Partial:
			placeInline(res.SplitRenderer)
			if t, ok := res.SplitRenderer.(*TextRenderer); ok && t.endsLine {
				out.forcedEnd = true
			}
			rest = append([]Renderer{res.OverflowRenderer}, pending[i+1:]...)
			break loop
		case Nothing:
			if t, ok := child.(*TextRenderer); ok {
				if kept, moved, ok := retryAtPreviousBreak(env, inline, t); ok {
					out.rebuild(kept)
					inline = kept
					x = box.X
					if len(kept) != 0 {
						x = kept[len(kept)-1].Base().OccupiedArea.BBox.Right()
					}
					rest = append(moved, pending[i:]...)
					break loop
				}
			}
			rest = pending[i:]
			break loop
		}
	}

	if len(out.placed) == 0 {
		return nothing(firstOf(rest, l), l)
	}
	if n := len(inline); n != 0 {
		if t, ok := inline[n-1].(*TextRenderer); ok {
			t.trimTrailingSpaces(env)
			x = t.OccupiedArea.BBox.Right()
		}
	}
	out.Children = inline
	out.OccupiedArea = &geom.Area{
		PageNumber: ctx.Area.PageNumber,
		BBox:       geom.Rectangle{X: box.X, Y: box.Y, Width: maxF(0, x-box.X), Height: out.maxAscent + out.maxDescent},
	}
	if len(rest) == 0 {
		return LayoutResult{Status: Full, OccupiedArea: out.OccupiedArea, SplitRenderer: out}
	}
	overflow := newLineRenderer(l.parent, rest, l.bounds)
	overflow.breakWords = l.breakWords
	return LayoutResult{Status: Partial, OccupiedArea: out.OccupiedArea, SplitRenderer: out, OverflowRenderer: overflow}
}

// rebuild resets the placed list after a retry replaced the inline
// fragments by kept, a prefix of them whose last element may be new.
func (l *LineRenderer) rebuild(kept []Renderer) {
	var placed []Renderer
	k := 0
	for _, c := range l.placed {
		if isFloating(c) {
			placed = append(placed, c)
		} else if k < len(kept) {
			placed = append(placed, kept[k])
			k++
		}
	}
	l.placed = placed
	l.maxAscent, l.maxDescent = 0, 0
	for _, c := range kept {
		asc, desc := inlineMetrics(c)
		l.maxAscent = maxF(l.maxAscent, asc)
		l.maxDescent = maxF(l.maxDescent, desc)
	}
}

func firstOf(rs []Renderer, def Renderer) Renderer {
	if len(rs) != 0 {
		return rs[0]
	}
	return def
}

// inlineMetrics returns the extents of a placed inline fragment
// around the baseline: atomic boxes sit on it.
func inlineMetrics(r Renderer) (ascent, descent Fl) {
	if t, ok := r.(*TextRenderer); ok {
		return t.ascent, t.descent
	}
	if area := r.Base().OccupiedArea; area != nil {
		return area.BBox.Height, 0
	}
	return 0, 0
}

// lineHeight applies the leading to a line with the given extents.
func lineHeight(leading pr.Leading, ascent, descent Fl) Fl {
	if leading.Multiplied {
		return Fl(leading.Value) * (ascent + descent)
	}
	return Fl(leading.Value)
}

func lineHeightEstimate(b *BaseRenderer, env *Env) Fl {
	metrics := env.Measurer.Metrics(fontSize(b))
	return lineHeight(b.Style().GetLeading(), metrics.Ascent, metrics.Descent)
}
