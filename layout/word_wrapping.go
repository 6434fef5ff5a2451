package layout

import (
	"github.com/benoitkugler/boxlayout/layout/text"
)

// prepareSpecialScripts finds the sequences of consecutive text runs in
// scripts without spaces between words (floats are skipped), and stores
// on each run the break points computed on the concatenated text of its
// sequence, so that words spanning several runs are not broken.
//
// The result only depends on the children, so calling it again
// on the same children is harmless.
func prepareSpecialScripts(children []Renderer) {
	sequence := 0
	var current []*TextRenderer
	flush := func() {
		if len(current) == 0 {
			return
		}
		sequence++
		var (
			concat  []rune
			offsets = make([]int, len(current))
		)
		for i, t := range current {
			offsets[i] = len(concat)
			concat = append(concat, t.Text...)
		}
		breaks := text.BreakOpportunities(concat)
		isBreak := make(map[int]bool, len(breaks))
		for _, b := range breaks {
			isBreak[b] = true
		}
		for i, t := range current {
			start, end := offsets[i], offsets[i]+len(t.Text)
			t.sequence = sequence
			t.breakBefore = i == 0 || isBreak[start]
			t.specialBreaks = nil
			for _, b := range breaks {
				if b > start && b < end {
					t.specialBreaks = append(t.specialBreaks, b-start)
				}
			}
		}
		current = nil
	}
	for _, c := range children {
		if isFloating(c) {
			continue
		}
		if t, ok := c.(*TextRenderer); ok && text.HasSpecialScript(t.Text) {
			current = append(current, t)
			continue
		}
		flush()
	}
	flush()
}

// retryAtPreviousBreak is called when `failing` does not fit the end of
// a line while the line may not be broken before it. It walks back the
// runs of the same sequence placed on the line, looking for a break point.
// The run holding it is relaid alone in its previous occupied area, with
// its overflow forced at this point.
// It returns the fragments kept on the line and the ones moved to the next.
func retryAtPreviousBreak(env *Env, placed []Renderer, failing *TextRenderer) (kept, moved []Renderer, ok bool) {
	if failing.sequence == 0 || failing.breakBefore {
		return nil, nil, false
	}
	for j := len(placed) - 1; j >= 0; j-- {
		prev, isText := placed[j].(*TextRenderer)
		if !isText || prev.sequence != failing.sequence || prev.OccupiedArea == nil {
			return nil, nil, false
		}
		if bps := prev.specialBreaks; len(bps) != 0 {
			retry := prev.Copy().(*TextRenderer)
			retry.firstIndexToForceOverflow = bps[len(bps)-1]
			res := retry.layoutInLine(env, *prev.OccupiedArea, false)
			if res.Status == Partial {
				env.debug("line retried at a previous break point")
				kept = append(append([]Renderer(nil), placed[:j]...), res.SplitRenderer)
				moved = append([]Renderer{res.OverflowRenderer}, placed[j+1:]...)
				return kept, moved, true
			}
		}
		if prev.breakBefore {
			if j == 0 {
				return nil, nil, false
			}
			return append([]Renderer(nil), placed[:j]...), append([]Renderer(nil), placed[j:]...), true
		}
	}
	return nil, nil, false
}
