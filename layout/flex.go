package layout

import (
	"sort"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/utils"
)

// FlexContainerRenderer is a box with display: flex.
type FlexContainerRenderer struct {
	BaseRenderer
}

func NewFlexContainerRenderer(el *Element) *FlexContainerRenderer {
	return &FlexContainerRenderer{BaseRenderer: BaseRenderer{Element: el}}
}

func (r *FlexContainerRenderer) Kind() Kind { return KindFlexContainer }

func (r *FlexContainerRenderer) Copy() Renderer {
	out := *r
	out.BaseRenderer = r.BaseRenderer.copy()
	return &out
}

func (r *FlexContainerRenderer) isColumn() bool {
	d := r.Style().GetFlexDirection()
	return d == "column" || d == "column-reverse"
}

// placedItem is the outcome of the layout of one flex item.
type placedItem struct {
	index int // in the children of the container
	res   LayoutResult
}

func (r *FlexContainerRenderer) Layout(ctx LayoutContext) LayoutResult {
	f, res, ok := beginBlock(r, ctx)
	if !ok {
		return res
	}
	definiteHeight := f.fixedHeight
	if f.clipped && definiteHeight < 0 {
		definiteHeight = f.content.Height
	}
	area := f.content
	area.Height = f.childBottom - area.Y
	flexArea := area
	if f.dropsOverflow() && definiteHeight > flexArea.Height {
		// clipped content is not paginated
		flexArea.Height = definiteHeight
	}
	lines, err := calculateFlexLines(flexArea, definiteHeight, r, f.env, r.isContinuation)
	if err != nil {
		// the document builder rejects negative factors
		panic(err)
	}

	indexes := make(map[Renderer]int, len(r.Children))
	for i, c := range r.Children {
		indexes[c] = i
	}

	if r.isColumn() {
		return r.layoutColumn(f, area, lines, indexes)
	}
	return r.layoutRows(f, area, lines, indexes)
}

func (r *FlexContainerRenderer) layoutItem(f *blockFrame, area geom.Rectangle, item FlexItemInfo, forced bool) LayoutResult {
	box := item.Rectangle
	box.X += area.X
	box.Y += area.Y
	height := box.Height
	box.Height = f.childBottom - box.Y
	ctx := f.childContext(box)
	ctx.FlexItem = &FlexItemSize{Width: item.Rectangle.Width, Height: height, HasHeight: true}
	ctx.Forced = forced
	return item.Renderer.Layout(ctx)
}

// layoutRows places the lines from the top, splitting the container
// before the first line not fitting.
func (r *FlexContainerRenderer) layoutRows(f *blockFrame, area geom.Rectangle, lines []FlexLine, indexes map[Renderer]int) LayoutResult {
	var placed []placedItem
	contentBottom := area.Y
	for lineIndex, line := range lines {
		results := make([]placedItem, len(line.Items))
		allFull, anyPlaced := true, false
		for j, item := range line.Items {
			res := r.layoutItem(f, area, item, false)
			results[j] = placedItem{index: indexes[item.Renderer], res: res}
			if res.Status != Full {
				allFull = false
			}
			if res.Status != Nothing {
				anyPlaced = true
			}
		}
		if allFull {
			placed = append(placed, results...)
			for _, it := range results {
				if it.res.OccupiedArea != nil {
					contentBottom = maxF(contentBottom, it.res.OccupiedArea.BBox.Bottom())
				}
			}
			continue
		}

		rest := r.remainingItems(lines[lineIndex+1:], indexes)
		if f.dropsOverflow() {
			if f.clipped {
				f.env.warn("content clipped by the element height", r)
			}
			var kept []placedItem
			for _, it := range results {
				if it.res.Status != Nothing {
					kept = append(kept, it)
				}
			}
			return r.completeWith(f, append(placed, kept...), contentBottom, results)
		}
		if isKeepTogether(r) && !f.forced {
			f.rollbackFloats()
			return nothing(r, r)
		}
		if lineIndex > 0 && len(placed) != 0 {
			// split at the line boundary
			var pending []int
			for _, it := range results {
				pending = append(pending, it.index)
			}
			return r.splitAt(f, placed, nil, append(pending, rest...), contentBottom)
		}
		// the first line does not fit: split its items individually
		if !anyPlaced {
			if f.forced {
				// force the first item only
				first := results[0]
				child := r.Children[first.index]
				f.env.warn("flex item does not fit the area: it is forced in", child)
				first.res = r.layoutItem(f, area, line.Items[0], true)
				results[0] = first
				anyPlaced = first.res.Status != Nothing
			}
			if !anyPlaced {
				f.rollbackFloats()
				cause := results[0].res.CauseOfNothing
				if cause == nil {
					cause = line.Items[0].Renderer
				}
				return nothing(cause, r)
			}
		}
		var splits, overflows []placedItem
		var pending []int
		for _, it := range results {
			switch it.res.Status {
			case Full:
				splits = append(splits, it)
			case Partial:
				splits = append(splits, it)
				overflows = append(overflows, it)
			case Nothing:
				pending = append(pending, it.index)
			}
			if it.res.OccupiedArea != nil {
				contentBottom = maxF(contentBottom, it.res.OccupiedArea.BBox.Bottom())
			}
		}
		return r.splitAt(f, append(placed, splits...), overflows, append(pending, rest...), contentBottom)
	}
	return r.completeWith(f, placed, contentBottom, nil)
}

// layoutColumn places the items of every line, splitting inside the lines
// at the first item not fitting. Items the algorithm left to the next
// page are pending.
func (r *FlexContainerRenderer) layoutColumn(f *blockFrame, area geom.Rectangle, lines []FlexLine, indexes map[Renderer]int) LayoutResult {
	var (
		placed, overflows []placedItem
		pending           []int
		forcedOne         bool
	)
	contentBottom := area.Y
	for _, line := range lines {
		lineBroken := false
		for j, item := range line.Items {
			index := indexes[item.Renderer]
			if lineBroken || j >= line.NextPage {
				pending = append(pending, index)
				continue
			}
			res := r.layoutItem(f, area, item, false)
			if res.Status == Nothing && len(placed) == 0 && f.forced && !forcedOne {
				forcedOne = true
				f.env.warn("flex item does not fit the area: it is forced in", item.Renderer)
				res = r.layoutItem(f, area, item, true)
			}
			it := placedItem{index: index, res: res}
			switch res.Status {
			case Full:
				placed = append(placed, it)
			case Partial:
				placed = append(placed, it)
				overflows = append(overflows, it)
				lineBroken = true
			case Nothing:
				pending = append(pending, index)
				lineBroken = true
			}
			if res.OccupiedArea != nil {
				contentBottom = maxF(contentBottom, res.OccupiedArea.BBox.Bottom())
			}
		}
	}
	if len(overflows) == 0 && len(pending) == 0 {
		return r.completeWith(f, placed, contentBottom, nil)
	}
	if f.dropsOverflow() {
		if f.clipped {
			f.env.warn("content clipped by the element height", r)
		}
		return r.completeWith(f, placed, contentBottom, overflows)
	}
	if isKeepTogether(r) && !f.forced {
		f.rollbackFloats()
		return nothing(r, r)
	}
	if len(placed) == 0 {
		f.rollbackFloats()
		return nothing(r.Children[pending[0]], r)
	}
	return r.splitAt(f, placed, overflows, pending, contentBottom)
}

func (r *FlexContainerRenderer) remainingItems(lines []FlexLine, indexes map[Renderer]int) []int {
	var out []int
	for _, line := range lines {
		for _, item := range line.Items {
			out = append(out, indexes[item.Renderer])
		}
	}
	return out
}

// fragments returns the placed pieces, in document order.
func (r *FlexContainerRenderer) fragments(placed []placedItem) []Renderer {
	sorted := append([]placedItem(nil), placed...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })
	out := make([]Renderer, len(sorted))
	for i, it := range sorted {
		out[i] = r.Children[it.index]
		if it.res.SplitRenderer != nil {
			out[i] = it.res.SplitRenderer
		}
	}
	return out
}

// completeWith returns a Full result. If some items have been split
// (clipped content), a new fragment is built.
func (r *FlexContainerRenderer) completeWith(f *blockFrame, placed []placedItem, contentBottom Fl, clipped []placedItem) LayoutResult {
	children := r.fragments(placed)
	target := Renderer(r)
	if len(children) != len(r.Children) || !samePointers(children, r.Children) || len(clipped) != 0 {
		target = CreateSplitRenderer(r, children)
	}
	return f.complete(target, children, contentBottom)
}

// splitAt builds a Partial result: the split part holds the placed items,
// the overflow part the overflow of the split items, followed by the
// pending items.
func (r *FlexContainerRenderer) splitAt(f *blockFrame, placed, overflows []placedItem, pending []int, contentBottom Fl) LayoutResult {
	type entry struct {
		index int
		r     Renderer
	}
	var rest []entry
	for _, it := range overflows {
		rest = append(rest, entry{it.index, it.res.OverflowRenderer})
	}
	for _, index := range pending {
		rest = append(rest, entry{index, r.Children[index]})
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].index < rest[j].index })
	overflowChildren := make([]Renderer, len(rest))
	for i, e := range rest {
		overflowChildren[i] = e.r
	}

	splitChildren := r.fragments(placed)
	split := CreateSplitRenderer(r, splitChildren)
	overflow := CreateOverflowRenderer(r, overflowChildren)

	contentHeight := f.contentHeight(contentBottom)
	if f.fixedHeight >= 0 || f.minHeight > 0 || f.fillArea {
		contentHeight = maxF(contentHeight, minF(f.targetHeight(contentHeight), f.available))
	}
	f.reduceHeights(overflow, contentHeight)
	f.place(split, f.outerBox(contentHeight))
	return LayoutResult{
		Status:           Partial,
		OccupiedArea:     split.Base().OccupiedArea,
		SplitRenderer:    split,
		OverflowRenderer: overflow,
	}
}

func (r *FlexContainerRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	st := r.Style()
	if _, ok := st.GetWidth().Resolve(-1); ok {
		return blockMinMaxWidth(r, env)
	}
	var out MinMaxWidth
	gap := st.GetColumnGap().ResolveOr(-1, 0)
	wrap := st.GetFlexWrap() != "nowrap"
	for i, c := range r.Children {
		mm := c.MinMaxWidth(env)
		if r.isColumn() {
			out = out.union(mm)
			continue
		}
		g := gap
		if i == 0 {
			g = 0
		}
		if wrap {
			out.MinWidth = maxF(out.MinWidth, mm.Min())
		} else {
			out.MinWidth += mm.Min() + g
		}
		out.MaxWidth += mm.Max() + g
	}
	if min, ok := st.GetMinWidth().Resolve(-1); ok {
		out.MinWidth, out.MaxWidth = maxF(out.MinWidth, min), maxF(out.MaxWidth, min)
	}
	if max, ok := st.GetMaxWidth().Resolve(-1); ok {
		out.MinWidth, out.MaxWidth = minF(out.MinWidth, max), minF(out.MaxWidth, max)
	}
	out.MaxWidth = utils.MaxF(out.MaxWidth, out.MinWidth)
	out.AdditionalWidth = r.insets(-1).Horizontal()
	return out
}
