package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
	"go.uber.org/zap"
)

// DivRenderer is a block container, whose children are stacked vertically.
type DivRenderer struct {
	BaseRenderer
}

// NewDivRenderer returns a block for the given element, which may be nil.
func NewDivRenderer(el *Element) *DivRenderer {
	return &DivRenderer{BaseRenderer: BaseRenderer{Element: el}}
}

func (r *DivRenderer) Kind() Kind { return KindDiv }

func (r *DivRenderer) Copy() Renderer {
	out := *r
	out.BaseRenderer = r.BaseRenderer.copy()
	return &out
}

func (r *DivRenderer) Layout(ctx LayoutContext) LayoutResult { return blockLayout(r, ctx) }

func (r *DivRenderer) MinMaxWidth(env *Env) MinMaxWidth { return blockMinMaxWidth(r, env) }

// blockFrame holds the geometry resolved when a block starts its layout,
// and is used to build its result.
type blockFrame struct {
	r    Renderer
	base *BaseRenderer
	ctx  LayoutContext
	env  *Env

	margins, borders, paddings geom.Insets
	// bounds is the area given by the parent, area is the space
	// left for the margin box of this block
	bounds, area geom.Rectangle
	// content is the content box. Its height is the space available
	// for the content.
	content geom.Rectangle
	// childBottom is the limit given to the children, which may be
	// below content.Bottom() when overflow is allowed
	childBottom Fl
	// available content height, ignoring height and max-height
	available Fl

	fixedHeight Fl // -1 if not fixed
	minHeight   Fl
	maxHeight   Fl // -1 for none
	// fillArea extends the content height to the bottom of the area
	fillArea bool
	// clipped is true if the content height is limited by height or max-height
	clipped  bool
	overflow string

	floatSide string // empty if not floating
	// floats is the context of the children
	floats        *FloatAreas
	newContext    bool
	floatSnapshot FloatsSnapshot

	forced   bool
	rotation Fl
}

// resolveWidth returns the content width.
func (f *blockFrame) resolveWidth(parentWidth Fl) Fl {
	st := f.base.Style()
	decorations := f.borders.Horizontal() + f.paddings.Horizontal()
	borderBox := st.GetBoxSizing() == "border-box"
	var width Fl
	if f.ctx.FlexItem != nil {
		width = f.ctx.FlexItem.Width - f.margins.Horizontal() - decorations
	} else if w, ok := st.GetWidth().Resolve(parentWidth); ok {
		width = w
		if borderBox {
			width -= decorations
		}
	} else if f.floatSide != "" || f.r.Kind() == KindImage || f.r.Kind() == KindTable {
		// shrink to fit
		mm := f.r.MinMaxWidth(f.env)
		available := parentWidth - f.margins.Horizontal() - decorations
		width = minF(maxF(mm.MinWidth, available), mm.MaxWidth)
	} else {
		width = parentWidth - f.margins.Horizontal() - decorations
	}
	if f.ctx.FlexItem == nil {
		adjust := Fl(0)
		if borderBox {
			adjust = decorations
		}
		if max, ok := st.GetMaxWidth().Resolve(parentWidth); ok {
			width = minF(width, max-adjust)
		}
		if min, ok := st.GetMinWidth().Resolve(parentWidth); ok {
			width = maxF(width, min-adjust)
		}
	}
	return maxF(width, 0)
}

// resolveHeights sets fixedHeight, minHeight and maxHeight,
// in content box terms.
func (f *blockFrame) resolveHeights() {
	st := f.base.Style()
	adjust := Fl(0)
	if st.GetBoxSizing() == "border-box" {
		adjust = f.borders.Vertical() + f.paddings.Vertical()
	}
	f.fixedHeight, f.maxHeight = -1, -1
	for _, v := range [3]pr.Value{st.GetHeight(), st.GetMinHeight(), st.GetMaxHeight()} {
		if !v.IsKeyword() && v.Unit == pr.Percentage {
			f.env.warn("percentage height is not supported: it is ignored", f.r, zap.Stringer("value", v))
			break
		}
	}
	if h, ok := st.GetMinHeight().Resolve(-1); ok {
		f.minHeight = maxF(0, h-adjust)
	}
	if h, ok := st.GetMaxHeight().Resolve(-1); ok {
		f.maxHeight = maxF(0, h-adjust)
	}
	if item := f.ctx.FlexItem; item != nil && item.HasHeight {
		f.fixedHeight = maxF(0, item.Height-f.margins.Vertical()-f.borders.Vertical()-f.paddings.Vertical())
	} else if h, ok := st.GetHeight().Resolve(-1); ok {
		f.fixedHeight = maxF(0, h-adjust)
		if f.maxHeight >= 0 {
			f.fixedHeight = minF(f.fixedHeight, f.maxHeight)
		}
		f.fixedHeight = maxF(f.fixedHeight, f.minHeight)
	}
	f.fillArea = bool(st.GetFillAvailableArea())
}

// beginBlock resolves the box model of r. It returns false, with the result
// to return, if nothing can be placed.
func beginBlock(r Renderer, ctx LayoutContext) (*blockFrame, LayoutResult, bool) {
	if ctx.Env == nil {
		ctx.Env = NewEnv(nil, nil)
	}
	if ctx.Floats == nil {
		ctx.Floats = &FloatAreas{}
	}
	b := r.Base()
	st := b.Style()
	f := &blockFrame{r: r, base: b, ctx: ctx, env: ctx.Env, bounds: ctx.Area.BBox}
	f.forced = ctx.Forced || isForced(r)
	f.overflow = string(st.GetOverflow())
	f.rotation = Fl(st.GetRotationAngle())
	f.floatSnapshot = ctx.Floats.Snapshot()
	if isFloating(r) {
		f.floatSide = string(st.GetFloat())
	}

	parentWidth := f.bounds.Width
	f.margins = b.margins(parentWidth)
	f.margins[geom.Top] = collapsedTopMargin(ctx.MarginsCollapse, f.margins[geom.Top])
	f.borders = b.borderWidths()
	f.paddings = b.paddings(parentWidth)
	contentWidth := f.resolveWidth(parentWidth)
	outerWidth := contentWidth + f.margins.Horizontal() + f.borders.Horizontal() + f.paddings.Horizontal()

	y := f.bounds.Y
	if clear := st.GetClear(); clear != "none" {
		y = ctx.Floats.clearance(string(clear), y)
	}
	x := f.bounds.X
	if f.floatSide != "" {
		x, y = ctx.Floats.place(f.bounds, y, outerWidth, 0, f.floatSide)
	} else if _, explicit := st.GetWidth().Resolve(parentWidth); explicit && ctx.FlexItem == nil {
		// auto margins align the box
		free := f.bounds.Width - outerWidth
		left, right := st.GetMarginLeft().IsAuto(), st.GetMarginRight().IsAuto()
		if left && right {
			x += maxF(0, free/2)
		} else if left {
			x += maxF(0, free)
		}
	}
	if y > f.bounds.Bottom()+utils.Epsilon && !f.forced {
		return nil, nothing(r, r), false
	}
	f.area = geom.Rectangle{X: x, Y: y, Width: outerWidth, Height: f.bounds.Bottom() - y}

	f.content = f.area
	f.content.ApplyInsets(f.margins.Add(f.borders).Add(f.paddings), false)
	f.content.Width = contentWidth
	f.available = f.content.Height
	f.resolveHeights()

	if f.rotation != 0 {
		f.content.Height = geom.InfiniteHeight
	} else if f.fixedHeight >= 0 && f.fixedHeight <= f.available {
		f.content.Height = f.fixedHeight
		f.clipped = true
	} else if f.fixedHeight < 0 && f.maxHeight >= 0 && f.maxHeight <= f.available {
		f.content.Height = f.maxHeight
		f.clipped = true
	}
	f.childBottom = f.content.Bottom()
	if f.clipped && f.overflow != "fit" {
		f.childBottom = maxF(f.childBottom, f.content.Y+f.available)
	}

	f.newContext = f.floatSide != "" || ctx.FlexItem != nil || f.rotation != 0 ||
		f.overflow == "hidden" || r.Kind() == KindCell || r.Kind() == KindDocument
	if f.newContext {
		f.floats = &FloatAreas{}
	} else {
		f.floats = ctx.Floats
	}

	if f.available < -utils.Epsilon && !f.forced && !ctx.ClippedHeight {
		// not even the decorations fit
		return nil, nothing(r, r), false
	}
	return f, LayoutResult{}, true
}

// childContext returns the context used to lay out a child in box.
func (f *blockFrame) childContext(box geom.Rectangle) LayoutContext {
	ctx := f.ctx.withArea(box)
	ctx.Floats = f.floats
	ctx.ClippedHeight = f.ctx.ClippedHeight || f.clipped || f.rotation != 0
	return ctx
}

// dropsOverflow returns true if content not fitting is clipped
// instead of being split.
func (f *blockFrame) dropsOverflow() bool {
	return f.clipped || f.ctx.ClippedHeight
}

// outerBox returns the margin box for the given content height.
func (f *blockFrame) outerBox(contentHeight Fl) geom.Rectangle {
	box := geom.Rectangle{X: f.content.X, Y: f.content.Y, Width: f.content.Width, Height: contentHeight}
	box.ApplyInsets(f.margins.Add(f.borders).Add(f.paddings), true)
	return box
}

// contentHeight returns the height of the content ending at contentBottom,
// including the floats of a new formatting context.
func (f *blockFrame) contentHeight(contentBottom Fl) Fl {
	if f.newContext {
		contentBottom = f.floats.lowestBottom(contentBottom)
	}
	return maxF(0, contentBottom-f.content.Y)
}

// targetHeight applies height, min-height and max-height.
func (f *blockFrame) targetHeight(contentHeight Fl) Fl {
	if f.fixedHeight >= 0 {
		return f.fixedHeight
	}
	target := maxF(contentHeight, f.minHeight)
	if f.maxHeight >= 0 {
		target = minF(target, f.maxHeight)
	}
	if f.fillArea {
		target = maxF(target, f.available)
	}
	return target
}

func (f *blockFrame) alignVertically(children []Renderer, contentHeight, target Fl) {
	free := target - contentHeight
	if free <= 0 {
		return
	}
	var dy Fl
	switch f.base.Style().GetVerticalAlignment() {
	case "middle":
		dy = free / 2
	case "bottom":
		dy = free
	default:
		return
	}
	for _, c := range children {
		move(c, 0, dy)
	}
}

func (f *blockFrame) rollbackFloats() {
	f.ctx.Floats.Rollback(f.floatSnapshot)
}

// place registers the occupied area on target, which is r or one of its
// fragments, and handles rotation and floats.
// It returns false if the rotated content does not fit.
func (f *blockFrame) place(target Renderer, box geom.Rectangle) bool {
	if f.rotation != 0 {
		var ok bool
		box, ok = f.applyRotation(target, box)
		if !ok {
			return false
		}
	}
	target.Base().OccupiedArea = &geom.Area{PageNumber: f.ctx.Area.PageNumber, BBox: box}
	if f.floatSide != "" {
		f.ctx.Floats.Add(box, f.floatSide)
	}
	return true
}

// complete builds the result of a block whose content has been entirely
// placed. `target` is either r, or a new fragment holding `children`.
func (f *blockFrame) complete(target Renderer, children []Renderer, contentBottom Fl) LayoutResult {
	contentHeight := f.contentHeight(contentBottom)
	target_ := f.targetHeight(contentHeight)
	if f.rotation == 0 && target_ > f.available+utils.Epsilon {
		switch {
		case f.forced || f.ctx.ClippedHeight:
			if f.forced {
				f.env.warn("element height does not fit the area: it is forced in", f.r,
					zap.Float32("height", target_), zap.Float32("available", f.available))
			}
		case len(children) == 0 && f.fixedHeight >= 0:
			f.rollbackFloats()
			return nothing(f.r, f.r)
		default:
			return f.splitHeight(target, children, contentHeight, target_)
		}
	}
	f.alignVertically(children, contentHeight, target_)
	box := f.outerBox(target_)
	if !f.place(target, box) {
		f.rollbackFloats()
		return nothing(f.r, f.r)
	}
	res := LayoutResult{Status: Full, OccupiedArea: target.Base().OccupiedArea}
	if target != f.r {
		res.SplitRenderer = target
	}
	return res
}

// splitHeight splits a block whose content fits, but whose height
// (or min-height) does not.
func (f *blockFrame) splitHeight(target Renderer, children []Renderer, contentHeight, targetHeight Fl) LayoutResult {
	split := target
	if split == f.r {
		split = CreateSplitRenderer(f.r, children)
	}
	f.place(split, f.outerBox(f.available))
	overflow := CreateOverflowRenderer(f.r, nil)
	f.reduceHeights(overflow, f.available)
	return LayoutResult{Status: Partial, OccupiedArea: split.Base().OccupiedArea, SplitRenderer: split, OverflowRenderer: overflow}
}

// reduceHeights updates the height constraints of an overflow fragment,
// once `consumed` has been placed.
func (f *blockFrame) reduceHeights(overflow Renderer, consumed Fl) {
	b := overflow.Base()
	st := f.base.Style()
	if f.ctx.FlexItem == nil && f.fixedHeight >= 0 {
		b.SetProperty(pr.PHeight, pr.FToV(maxF(0, f.fixedHeight-consumed)))
		if st.GetBoxSizing() == "border-box" {
			b.SetProperty(pr.PBoxSizing, pr.String("content-box"))
		}
	}
	if f.minHeight > 0 {
		b.SetProperty(pr.PMinHeight, pr.FToV(maxF(0, f.minHeight-consumed)))
	}
}

// split builds a Partial result: the split fragment holds placed and the
// split part of the child, the overflow fragment holds the waiting floats,
// the overflow part of the child and the remaining children.
func (f *blockFrame) split(placed []Renderer, childRes *LayoutResult, rest, waitingFloats []Renderer, contentBottom Fl) LayoutResult {
	splitChildren := append([]Renderer(nil), placed...)
	overflowChildren := append([]Renderer(nil), waitingFloats...)
	if childRes != nil {
		if childRes.SplitRenderer != nil {
			splitChildren = append(splitChildren, childRes.SplitRenderer)
		}
		if childRes.OverflowRenderer != nil {
			overflowChildren = append(overflowChildren, childRes.OverflowRenderer)
		}
		if area := childRes.OccupiedArea; area != nil && !isFloating(childRes.SplitRenderer) {
			contentBottom = maxF(contentBottom, area.BBox.Bottom())
		}
	}
	overflowChildren = append(overflowChildren, rest...)

	split := CreateSplitRenderer(f.r, splitChildren)
	overflow := CreateOverflowRenderer(f.r, overflowChildren)

	contentHeight := f.contentHeight(contentBottom)
	if f.fixedHeight >= 0 || f.minHeight > 0 || f.fillArea {
		// the fragment extends to the bottom of the area
		contentHeight = maxF(contentHeight, minF(f.targetHeight(contentHeight), f.available))
	}
	f.reduceHeights(overflow, contentHeight)
	box := f.outerBox(contentHeight)
	if f.rotation == 0 {
		f.place(split, box)
	} else {
		split.Base().OccupiedArea = &geom.Area{PageNumber: f.ctx.Area.PageNumber, BBox: box}
	}
	return LayoutResult{
		Status:           Partial,
		OccupiedArea:     split.Base().OccupiedArea,
		SplitRenderer:    split,
		OverflowRenderer: overflow,
	}
}

// columnAreas returns the areas where children are placed:
// the content box, or one box per column.
func (f *blockFrame) columnAreas() []geom.Rectangle {
	box := f.content
	box.Height = f.childBottom - box.Y
	st := f.base.Style()
	count := int(st.GetColumnCount())
	if count <= 1 || f.rotation != 0 {
		return []geom.Rectangle{box}
	}
	gap := st.GetColumnGap().ResolveOr(box.Width, 0)
	width := (box.Width - gap*Fl(count-1)) / Fl(count)
	if width <= 0 {
		return []geom.Rectangle{box}
	}
	out := make([]geom.Rectangle, count)
	for i := range out {
		out[i] = geom.Rectangle{X: box.X + Fl(i)*(width+gap), Y: box.Y, Width: width, Height: box.Height}
	}
	return out
}

// blockedByClearance returns true if child must be placed below one of
// the waiting floats.
func blockedByClearance(child Renderer, waitingFloats []Renderer) bool {
	clear := child.Base().Style().GetClear()
	if clear == "none" {
		return false
	}
	for _, w := range waitingFloats {
		side := w.Base().Style().GetFloat()
		if clear == "both" || clear == side {
			return true
		}
	}
	return false
}

// blockLayout is the layout of the blocks whose children are stacked
// vertically.
func blockLayout(r Renderer, ctx LayoutContext) LayoutResult {
	f, res, ok := beginBlock(r, ctx)
	if !ok {
		return res
	}
	return f.flowChildren(r.Base().Children)
}

// flowChildren places the children one after the other, splitting
// the block when a child does not fit.
func (f *blockFrame) flowChildren(source []Renderer) LayoutResult {
	children := append([]Renderer(nil), source...)
	areas := f.columnAreas()
	areaIndex := 0
	box := areas[0]

	var (
		placed, waitingFloats []Renderer
		floatsOverflowed      bool
		anythingPlaced        bool
	)
	forcedChild := -1 // index of the child laid out with a forced context
	contentBottom := f.content.Y
	mc := marginsCollapser{enabled: bool(f.base.Style().GetCollapsingMargins())}

	nextArea := func() bool {
		if areaIndex+1 >= len(areas) {
			return false
		}
		areaIndex++
		box = areas[areaIndex]
		mc.reset()
		return true
	}

	for i := 0; i < len(children); i++ {
		child := children[i]
		childFloating := isFloating(child)
		if childFloating && floatsOverflowed {
			// no room left for floats in this area
			waitingFloats = append(waitingFloats, child)
			continue
		}
		if !childFloating && blockedByClearance(child, waitingFloats) {
			if !anythingPlaced {
				f.rollbackFloats()
				return nothing(child, f.r)
			}
			return f.split(placed, nil, children[i:], waitingFloats, contentBottom)
		}
		if anythingPlaced && child.Base().Style().GetBreakBefore() == "page" {
			res := f.split(placed, nil, children[i:], waitingFloats, contentBottom)
			res.AreaBreak = &AreaBreak{}
			return res
		}

		childCtx := f.childContext(box)
		childCtx.Forced = i == forcedChild
		if !childFloating {
			childCtx.MarginsCollapse = mc.info()
		}
		res := child.Layout(childCtx)

		switch res.Status {
		case Full:
			piece := child
			if res.SplitRenderer != nil {
				piece = res.SplitRenderer
			}
			placed = append(placed, piece)
			anythingPlaced = true
			if !childFloating && res.OccupiedArea != nil {
				bottom := res.OccupiedArea.BBox.Bottom()
				box.MoveDown(bottom - box.Y)
				contentBottom = maxF(contentBottom, bottom)
				mc.childPlaced(child, box.Width)
			}
		case Partial:
			if childFloating {
				placed = append(placed, res.SplitRenderer)
				waitingFloats = append(waitingFloats, res.OverflowRenderer)
				anythingPlaced = true
				continue
			}
			if res.OccupiedArea != nil {
				contentBottom = maxF(contentBottom, res.OccupiedArea.BBox.Bottom())
			}
			if nextArea() {
				placed = append(placed, res.SplitRenderer)
				anythingPlaced = true
				children[i] = res.OverflowRenderer
				i--
				continue
			}
			if f.dropsOverflow() {
				placed = append(placed, res.SplitRenderer)
				if f.clipped {
					f.env.warn("content clipped by the element height", f.r)
				}
				return f.complete(CreateSplitRenderer(f.r, placed), placed, contentBottom)
			}
			if isKeepTogether(f.r) && !f.forced {
				f.rollbackFloats()
				return nothing(f.r, f.r)
			}
			return f.split(placed, &res, children[i+1:], waitingFloats, contentBottom)
		case Nothing:
			if childFloating {
				waitingFloats = append(waitingFloats, child)
				floatsOverflowed = true
				continue
			}
			if nextArea() {
				i--
				continue
			}
			if f.dropsOverflow() && anythingPlaced {
				if f.clipped {
					f.env.warn("content clipped by the element height", f.r)
				}
				return f.complete(CreateSplitRenderer(f.r, placed), placed, contentBottom)
			}
			if isKeepTogether(f.r) && !f.forced {
				f.rollbackFloats()
				return nothing(f.r, f.r)
			}
			if !anythingPlaced {
				if f.forced && i != forcedChild && !isForced(child) {
					f.env.warn("element does not fit the area: it is forced in", child)
					forcedChild = i
					i--
					continue
				}
				cause := res.CauseOfNothing
				if cause == nil {
					cause = child
				}
				f.rollbackFloats()
				return nothing(cause, f.r)
			}
			return f.split(placed, nil, children[i:], waitingFloats, contentBottom)
		}
	}

	if len(waitingFloats) != 0 {
		return f.split(placed, nil, nil, waitingFloats, contentBottom)
	}
	if len(placed) == len(source) && samePointers(placed, source) {
		return f.complete(f.r, placed, contentBottom)
	}
	return f.complete(CreateSplitRenderer(f.r, placed), placed, contentBottom)
}

func samePointers(a, b []Renderer) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// blockMinMaxWidth returns the intrinsic widths of a block, from its
// children unless its width is fixed.
func blockMinMaxWidth(r Renderer, env *Env) MinMaxWidth {
	return boxMinMaxWidth(r, func() MinMaxWidth {
		var out MinMaxWidth
		for _, c := range r.Base().Children {
			out = out.union(c.MinMaxWidth(env))
		}
		if count := int(r.Base().Style().GetColumnCount()); count > 1 {
			gap := r.Base().Style().GetColumnGap().ResolveOr(-1, 0) * Fl(count-1)
			out.MinWidth = out.MinWidth*Fl(count) + gap
			out.MaxWidth = out.MaxWidth*Fl(count) + gap
		}
		return out
	})
}

// boxMinMaxWidth applies width, min-width, max-width and rotation
// to the content widths, and adds the decorations.
// content is only called if the width is not fixed.
func boxMinMaxWidth(r Renderer, content func() MinMaxWidth) MinMaxWidth {
	b := r.Base()
	st := b.Style()
	var out MinMaxWidth
	decorations := b.borderWidths().Horizontal() + b.paddings(-1).Horizontal()
	if w, ok := st.GetWidth().Resolve(-1); ok {
		if st.GetBoxSizing() == "border-box" {
			w -= decorations
		}
		out.MinWidth, out.MaxWidth = w, w
	} else {
		out = content()
	}
	if min, ok := st.GetMinWidth().Resolve(-1); ok {
		out.MinWidth, out.MaxWidth = maxF(out.MinWidth, min), maxF(out.MaxWidth, min)
	}
	if max, ok := st.GetMaxWidth().Resolve(-1); ok {
		out.MinWidth, out.MaxWidth = minF(out.MinWidth, max), minF(out.MaxWidth, max)
	}
	out.AdditionalWidth = b.margins(-1).Horizontal() + decorations
	if rot := Fl(st.GetRotationAngle()); rot != 0 {
		out = rotatedMinMaxWidth(out, rot)
	}
	return out
}
