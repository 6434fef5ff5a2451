package layout

import (
	"sort"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/layout/text"
	"github.com/benoitkugler/boxlayout/utils"
)

// TextRenderer is a run of text, laid out inside a line.
type TextRenderer struct {
	BaseRenderer
	Text []rune

	// sequence is the identifier of the special script sequence the run
	// belongs to, or 0. For such runs, specialBreaks are the break points
	// computed on the whole sequence, in run coordinates, and breakBefore
	// tells if the line may be broken before the first rune.
	sequence      int
	specialBreaks []int
	breakBefore   bool

	// firstIndexToForceOverflow, if positive, ends the run at this index
	firstIndexToForceOverflow int

	// set by layout
	ascent, descent Fl
	// the run has been split at a forced line break
	endsLine bool
	// WordSpacing is the extra space added to each space by justification.
	WordSpacing Fl
}

func NewTextRenderer(el *Element, s string) *TextRenderer {
	return &TextRenderer{BaseRenderer: BaseRenderer{Element: el}, Text: []rune(s)}
}

func (t *TextRenderer) Kind() Kind { return KindText }

func (t *TextRenderer) Copy() Renderer {
	out := *t
	out.BaseRenderer = t.BaseRenderer.copy()
	out.ascent, out.descent, out.endsLine, out.WordSpacing = 0, 0, false, 0
	return &out
}

// Ascent returns the distance from the top of the run to its baseline.
func (t *TextRenderer) Ascent() Fl { return t.ascent }

func fontSize(b *BaseRenderer) Fl {
	return b.Style().GetFontSize().ResolveOr(12, 12)
}

// breakPoints returns the sorted positions before which the run may be broken.
func (t *TextRenderer) breakPoints() []int {
	if t.sequence != 0 {
		return t.specialBreaks
	}
	var out []int
	for p := 1; p < len(t.Text); p++ {
		if text.IsSpace(t.Text[p-1]) && !text.IsSpace(t.Text[p]) {
			out = append(out, p)
		}
	}
	if text.HasSpecialScript(t.Text) {
		out = mergeSorted(out, text.BreakOpportunities(t.Text))
	}
	return out
}

func mergeSorted(a, b []int) []int {
	set := make(map[int]bool, len(a)+len(b))
	for _, p := range a {
		set[p] = true
	}
	for _, p := range b {
		set[p] = true
	}
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (t *TextRenderer) Layout(ctx LayoutContext) LayoutResult {
	if ctx.Env == nil {
		ctx.Env = NewEnv(nil, nil)
	}
	return t.layoutInLine(ctx.Env, ctx.Area, isForced(t))
}

func indexRune(s []rune, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}

// layoutInLine places the longest prefix fitting the width of `area`,
// ending at a break point. If breakWords is true and no break point fits,
// the first word is broken.
func (t *TextRenderer) layoutInLine(env *Env, area geom.Area, breakWords bool) LayoutResult {
	fs := fontSize(&t.BaseRenderer)
	m := env.Measurer
	metrics := m.Metrics(fs)
	width := area.BBox.Width
	measure := func(end int) Fl { return m.Width(text.TrimTrailingSpaces(t.Text[:end]), fs) }

	limit, newline := len(t.Text), false
	if i := indexRune(t.Text, '\n'); i >= 0 {
		limit, newline = i, true
	}
	forceOverflow := false
	if i := t.firstIndexToForceOverflow; i > 0 && i < limit {
		limit, newline, forceOverflow = i, false, true
	}

	end := -1
	if measure(limit) <= width+utils.Epsilon {
		end = limit
	} else {
		breaks := t.breakPoints()
		for k := len(breaks) - 1; k >= 0; k-- {
			if b := breaks[k]; b < limit && measure(b) <= width+utils.Epsilon {
				end = b
				break
			}
		}
		if end == -1 && breakWords {
			first := limit
			if len(breaks) != 0 && breaks[0] < limit {
				first = breaks[0]
			}
			end = 1
			for e := first; e > 1; e-- {
				if measure(e) <= width+utils.Epsilon {
					end = e
					break
				}
			}
			env.warn("word does not fit the line width: it is broken", t)
		}
	}
	if end == -1 {
		return nothing(t, t)
	}

	if end == len(t.Text) {
		// the trailing spaces separate the run from the next one
		t.setPlaced(area, m.Width(t.Text, fs), metrics)
		return LayoutResult{Status: Full, OccupiedArea: t.OccupiedArea}
	}

	split := CreateSplitRenderer(t, nil).(*TextRenderer)
	split.Text = t.Text[:end]
	split.specialBreaks = nil
	for _, b := range t.specialBreaks {
		if b < end {
			split.specialBreaks = append(split.specialBreaks, b)
		}
	}
	split.firstIndexToForceOverflow = 0
	split.setPlaced(area, measure(end), metrics)

	start := end
	if newline && end == limit {
		start++ // skip the line feed
		split.endsLine = true
	} else if forceOverflow {
		split.endsLine = true
	}
	rest, trimmed := text.TrimLeadingSpaces(t.Text[start:])
	start += trimmed
	if len(rest) == 0 && !forceOverflow {
		return LayoutResult{Status: Full, OccupiedArea: split.OccupiedArea, SplitRenderer: split}
	}

	overflow := CreateOverflowRenderer(t, nil).(*TextRenderer)
	overflow.Text = rest
	overflow.specialBreaks = nil
	for _, b := range t.specialBreaks {
		if b > start {
			overflow.specialBreaks = append(overflow.specialBreaks, b-start)
		}
	}
	overflow.breakBefore = true
	overflow.firstIndexToForceOverflow = 0
	return LayoutResult{
		Status:           Partial,
		OccupiedArea:     split.OccupiedArea,
		SplitRenderer:    split,
		OverflowRenderer: overflow,
	}
}

func (t *TextRenderer) setPlaced(area geom.Area, width Fl, metrics text.Metrics) {
	t.ascent, t.descent = metrics.Ascent, metrics.Descent
	t.OccupiedArea = &geom.Area{
		PageNumber: area.PageNumber,
		BBox:       geom.Rectangle{X: area.BBox.X, Y: area.BBox.Y, Width: width, Height: metrics.Ascent + metrics.Descent},
	}
}

// spaces returns the number of spaces used by justification:
// the trailing ones are ignored when the run ends the line.
// trimTrailingSpaces removes the advance of the trailing spaces
// from the occupied width, for the last run of a line.
func (t *TextRenderer) trimTrailingSpaces(env *Env) {
	if t.OccupiedArea == nil {
		return
	}
	t.OccupiedArea.BBox.Width = env.Measurer.Width(text.TrimTrailingSpaces(t.Text), fontSize(&t.BaseRenderer))
}

func (t *TextRenderer) spaces(lastInLine bool) int {
	s := t.Text
	if lastInLine {
		s = text.TrimTrailingSpaces(s)
	}
	return text.CountSpaces(s)
}

func (t *TextRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	if env == nil {
		env = NewEnv(nil, nil)
	}
	fs := fontSize(&t.BaseRenderer)
	m := env.Measurer
	var out MinMaxWidth
	start := 0
	for _, b := range append(t.breakPoints(), len(t.Text)) {
		w := m.Width(text.TrimTrailingSpaces(t.Text[start:b]), fs)
		out.MinWidth = maxF(out.MinWidth, w)
		start = b
	}
	start = 0
	for i := 0; i <= len(t.Text); i++ {
		switch {
		case i == len(t.Text):
			out.MaxWidth = maxF(out.MaxWidth, m.Width(t.Text[start:], fs))
		case t.Text[i] == '\n':
			out.MaxWidth = maxF(out.MaxWidth, m.Width(text.TrimTrailingSpaces(t.Text[start:i]), fs))
			start = i + 1
		}
	}
	return out
}
