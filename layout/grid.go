package layout

import (
	"sort"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
)

// GridContainerRenderer is a box with display: grid.
type GridContainerRenderer struct {
	BaseRenderer
}

func NewGridContainerRenderer(el *Element) *GridContainerRenderer {
	return &GridContainerRenderer{BaseRenderer: BaseRenderer{Element: el}}
}

func (r *GridContainerRenderer) Kind() Kind { return KindGridContainer }

func (r *GridContainerRenderer) Copy() Renderer {
	out := *r
	out.BaseRenderer = r.BaseRenderer.copy()
	return &out
}

// resolveLines returns the zero based start and the span of an item along
// one axis, or start = -1 if it is auto placed.
func resolveLines(start, end pr.GridLine) (int, int) {
	span := 1
	switch {
	case start.Line > 0 && end.Line > start.Line:
		return start.Line - 1, end.Line - start.Line
	case start.Line > 0:
		if end.Span > 0 {
			span = end.Span
		}
		return start.Line - 1, span
	case end.Line > 0:
		if start.Span > 0 {
			span = start.Span
		}
		return utils.MaxInt(end.Line-1-span, 0), span
	}
	if start.Span > 0 {
		span = start.Span
	} else if end.Span > 0 {
		span = end.Span
	}
	return -1, span
}

type occupancy map[[2]int]bool

func (o occupancy) free(row, col, rowSpan, colSpan int) bool {
	for i := row; i < row+rowSpan; i++ {
		for j := col; j < col+colSpan; j++ {
			if o[[2]int{i, j}] {
				return false
			}
		}
	}
	return true
}

func (o occupancy) mark(c *GridCell) {
	for i := c.Row; i < c.Row+c.RowSpan; i++ {
		for j := c.Column; j < c.Column+c.ColumnSpan; j++ {
			o[[2]int{i, j}] = true
		}
	}
}

// PlaceItems builds the grid, placing the items with explicit lines,
// then the others with the sparse row major auto placement.
func PlaceItems(children []Renderer, explicitColumns int) *Grid {
	grid := &Grid{Columns: explicitColumns}
	type pending struct {
		cell                *GridCell
		autoRow, autoColumn bool
	}
	items := make([]pending, len(children))
	for i, child := range children {
		st := child.Base().Style()
		col, colSpan := resolveLines(st.GetGridColumnStart(), st.GetGridColumnEnd())
		row, rowSpan := resolveLines(st.GetGridRowStart(), st.GetGridRowEnd())
		items[i] = pending{
			cell:       &GridCell{Renderer: child, Column: col, Row: row, ColumnSpan: colSpan, RowSpan: rowSpan},
			autoRow:    row < 0,
			autoColumn: col < 0,
		}
		if col >= 0 {
			grid.Columns = utils.MaxInt(grid.Columns, col+colSpan)
		} else {
			grid.Columns = utils.MaxInt(grid.Columns, colSpan)
		}
	}
	if grid.Columns == 0 {
		grid.Columns = 1
	}

	occupied := occupancy{}
	// items with a definite position
	for _, it := range items {
		if !it.autoRow && !it.autoColumn {
			occupied.mark(it.cell)
		}
	}
	// items locked to a row
	for _, it := range items {
		if it.autoRow || !it.autoColumn {
			continue
		}
		c := it.cell
		for c.Column = 0; c.Column+c.ColumnSpan <= grid.Columns; c.Column++ {
			if occupied.free(c.Row, c.Column, c.RowSpan, c.ColumnSpan) {
				break
			}
		}
		if c.Column+c.ColumnSpan > grid.Columns {
			c.Column = grid.Columns
			grid.Columns += c.ColumnSpan
		}
		occupied.mark(c)
	}
	// remaining items
	cursorRow, cursorCol := 0, 0
	for _, it := range items {
		if !it.autoRow {
			continue
		}
		c := it.cell
		if !it.autoColumn {
			// locked to a column
			if c.Column < cursorCol {
				cursorRow++
			}
			for c.Row = cursorRow; !occupied.free(c.Row, c.Column, c.RowSpan, c.ColumnSpan); c.Row++ {
			}
			cursorRow, cursorCol = c.Row, c.Column+c.ColumnSpan
			occupied.mark(c)
			continue
		}
		for {
			if cursorCol+c.ColumnSpan > grid.Columns {
				cursorRow++
				cursorCol = 0
			}
			if occupied.free(cursorRow, cursorCol, c.RowSpan, c.ColumnSpan) {
				break
			}
			cursorCol++
		}
		c.Row, c.Column = cursorRow, cursorCol
		cursorCol += c.ColumnSpan
		occupied.mark(c)
	}

	for _, it := range items {
		grid.Cells = append(grid.Cells, it.cell)
		grid.Rows = utils.MaxInt(grid.Rows, it.cell.Row+it.cell.RowSpan)
		grid.Columns = utils.MaxInt(grid.Columns, it.cell.Column+it.cell.ColumnSpan)
	}
	return grid
}

// trackTemplates returns `count` templates, using `auto` for the implicit tracks.
func trackTemplates(explicit, auto pr.TrackSizes, count int) []pr.TrackSize {
	out := make([]pr.TrackSize, 0, count)
	out = append(out, explicit...)
	if len(out) > count {
		return out
	}
	if len(auto) == 0 {
		auto = pr.TrackSizes{pr.AutoTrack}
	}
	for i := 0; len(out) < count; i++ {
		out = append(out, auto[i%len(auto)])
	}
	return out
}

// gridContributor measures the grid items: widths come from the
// intrinsic widths, heights are measured at the width of the column span.
type gridContributor struct {
	env     *Env
	columns TrackSizingResult
	// if set, the max-content contribution is the min-content contribution
	minOnly bool
}

func (gc gridContributor) MinContent(cell *GridCell, axis Axis) Fl {
	if axis == AxisColumn {
		return cell.Renderer.MinMaxWidth(gc.env).Min()
	}
	return measureOuterHeight(cell.Renderer, gc.columns.Span(cell.Column, cell.ColumnSpan), gc.env)
}

func (gc gridContributor) MaxContent(cell *GridCell, axis Axis) Fl {
	if axis == AxisColumn {
		if gc.minOnly {
			return gc.MinContent(cell, axis)
		}
		return cell.Renderer.MinMaxWidth(gc.env).Max()
	}
	return gc.MinContent(cell, axis)
}

// sizeGrid places the children and sizes the tracks, for a content box of
// width `width`. `height` is the definite height, or -1.
func (r *GridContainerRenderer) sizeGrid(width, height Fl, env *Env) (*Grid, TrackSizingResult, TrackSizingResult) {
	st := r.Style()
	columnTemplates := st.GetGridTemplateColumns()
	grid := PlaceItems(r.Children, len(columnTemplates))
	columnGap := st.GetColumnGap().ResolveOr(width, 0)
	rowGap := st.GetRowGap().ResolveOr(width, 0)
	columns := SizeTracks(grid, trackTemplates(columnTemplates, st.GetGridAutoColumns(), grid.Columns),
		columnGap, width, AxisColumn, gridContributor{env: env})
	rowTemplates := st.GetGridTemplateRows()
	grid.Rows = utils.MaxInt(grid.Rows, len(rowTemplates))
	rows := SizeTracks(grid, trackTemplates(rowTemplates, st.GetGridAutoRows(), grid.Rows),
		rowGap, height, AxisRow, gridContributor{env: env, columns: columns})
	return grid, columns, rows
}

func (r *GridContainerRenderer) Layout(ctx LayoutContext) LayoutResult {
	f, res, ok := beginBlock(r, ctx)
	if !ok {
		return res
	}
	height := f.fixedHeight
	if f.clipped && height < 0 {
		height = f.content.Height
	}
	grid, columns, rows := r.sizeGrid(f.content.Width, height, f.env)
	colOffsets, rowOffsets := columns.Offsets(), rows.Offsets()

	indexes := make(map[Renderer]int, len(r.Children))
	for i, c := range r.Children {
		indexes[c] = i
	}

	// first row not fitting in the area
	limit := f.childBottom - f.content.Y
	breakRow := len(rows.Tracks)
	for i := range rows.Tracks {
		if rowOffsets[i]+rows.Tracks[i].BaseSize > limit+utils.Epsilon {
			breakRow = i
			break
		}
	}
	if f.dropsOverflow() {
		breakRow = len(rows.Tracks)
	}

	var (
		placed, overflows []placedItem
		pending           []*GridCell
		splitCells        = map[int]*GridCell{}
		forcedOne         bool
	)
	contentBottom := f.content.Y + rowOffsets[len(rows.Tracks)]
	if breakRow < len(rows.Tracks) {
		contentBottom = f.content.Y + rowOffsets[breakRow]
	}
	for _, cell := range grid.Cells {
		if cell.Row >= utils.MaxInt(breakRow, 1) && breakRow < len(rows.Tracks) {
			pending = append(pending, cell)
			continue
		}
		box := geom.Rectangle{
			X:     f.content.X + colOffsets[cell.Column],
			Y:     f.content.Y + rowOffsets[cell.Row],
			Width: columns.Span(cell.Column, cell.ColumnSpan),
		}
		cellHeight := rows.Span(cell.Row, cell.RowSpan)
		box.Height = f.childBottom - box.Y
		childCtx := f.childContext(box)
		childCtx.FlexItem = &FlexItemSize{Width: box.Width, Height: cellHeight, HasHeight: true}
		child := cell.Renderer
		res := child.Layout(childCtx)
		if res.Status == Nothing && f.forced && !forcedOne && len(placed) == 0 {
			forcedOne = true
			f.env.warn("grid item does not fit the area: it is forced in", child)
			forcedCtx := childCtx
			forcedCtx.Forced = true
			res = child.Layout(forcedCtx)
		}
		it := placedItem{index: indexes[child], res: res}
		switch res.Status {
		case Full:
			placed = append(placed, it)
		case Partial:
			placed = append(placed, it)
			overflows = append(overflows, it)
			splitCells[it.index] = cell
		case Nothing:
			pending = append(pending, cell)
		}
		if res.OccupiedArea != nil {
			contentBottom = maxF(contentBottom, res.OccupiedArea.BBox.Bottom())
		}
	}

	if len(overflows) == 0 && len(pending) == 0 {
		return r.completeWith(f, placed, contentBottom)
	}
	if f.dropsOverflow() {
		if f.clipped {
			f.env.warn("content clipped by the element height", r)
		}
		return r.completeWith(f, placed, contentBottom)
	}
	if isKeepTogether(r) && !f.forced {
		f.rollbackFloats()
		return nothing(r, r)
	}
	if len(placed) == 0 {
		f.rollbackFloats()
		return nothing(pending[0].Renderer, r)
	}
	return r.split(f, grid, rows, breakRow, placed, overflows, pending, splitCells, contentBottom)
}

func (r *GridContainerRenderer) completeWith(f *blockFrame, placed []placedItem, contentBottom Fl) LayoutResult {
	children := gridFragments(r.Children, placed)
	target := Renderer(r)
	if !samePointers(children, r.Children) || len(children) != len(r.Children) {
		target = CreateSplitRenderer(r, children)
	}
	return f.complete(target, children, contentBottom)
}

func gridFragments(children []Renderer, placed []placedItem) []Renderer {
	sorted := append([]placedItem(nil), placed...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })
	out := make([]Renderer, len(sorted))
	for i, it := range sorted {
		out[i] = children[it.index]
		if it.res.SplitRenderer != nil {
			out[i] = it.res.SplitRenderer
		}
	}
	return out
}

// relocate returns a copy of child placed at the given grid position.
func relocate(child Renderer, cell *GridCell, row, rowSpan int) Renderer {
	out := child.Copy()
	b := out.Base()
	b.SetProperty(pr.PGridRowStart, pr.GridLine{Line: row + 1})
	b.SetProperty(pr.PGridRowEnd, pr.GridLine{Span: utils.MaxInt(rowSpan, 1)})
	b.SetProperty(pr.PGridColumnStart, pr.GridLine{Line: cell.Column + 1})
	b.SetProperty(pr.PGridColumnEnd, pr.GridLine{Span: cell.ColumnSpan})
	return out
}

// split builds the fragments of a grid broken before `breakRow`: the rows
// left are moved to the top of the overflow grid.
func (r *GridContainerRenderer) split(f *blockFrame, grid *Grid, rows TrackSizingResult, breakRow int,
	placed, overflows []placedItem, pending []*GridCell, splitCells map[int]*GridCell, contentBottom Fl,
) LayoutResult {
	shift := breakRow
	if shift >= len(rows.Tracks) {
		shift = 0
	}
	type entry struct {
		index int
		r     Renderer
	}
	var rest []entry
	for _, it := range overflows {
		cell := splitCells[it.index]
		end := cell.Row + cell.RowSpan
		rest = append(rest, entry{it.index, relocate(it.res.OverflowRenderer, cell, 0, end-utils.MaxInt(shift, cell.Row))})
	}
	childIndexes := make(map[Renderer]int, len(r.Children))
	for i, c := range r.Children {
		childIndexes[c] = i
	}
	for _, cell := range pending {
		row := utils.MaxInt(cell.Row-shift, 0)
		rest = append(rest, entry{childIndexes[cell.Renderer], relocate(cell.Renderer, cell, row, cell.RowSpan)})
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].index < rest[j].index })
	overflowChildren := make([]Renderer, len(rest))
	for i, e := range rest {
		overflowChildren[i] = e.r
	}

	split := CreateSplitRenderer(r, gridFragments(r.Children, placed))
	overflow := CreateOverflowRenderer(r, overflowChildren)
	if templates := r.Style().GetGridTemplateRows(); shift > 0 && len(templates) > shift {
		overflow.Base().SetProperty(pr.PGridTemplateRows, templates[shift:])
	} else if shift > 0 && len(templates) > 0 {
		overflow.Base().SetProperty(pr.PGridTemplateRows, pr.TrackSizes(nil))
	}

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

func (r *GridContainerRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	st := r.Style()
	if _, ok := st.GetWidth().Resolve(-1); ok {
		return blockMinMaxWidth(r, env)
	}
	columnTemplates := st.GetGridTemplateColumns()
	grid := PlaceItems(r.Children, len(columnTemplates))
	templates := trackTemplates(columnTemplates, st.GetGridAutoColumns(), grid.Columns)
	gap := st.GetColumnGap().ResolveOr(-1, 0)
	minColumns := SizeTracks(grid, templates, gap, -1, AxisColumn, gridContributor{env: env, minOnly: true})
	maxColumns := SizeTracks(grid, templates, gap, -1, AxisColumn, gridContributor{env: env})
	minOffsets, maxOffsets := minColumns.Offsets(), maxColumns.Offsets()
	out := MinMaxWidth{
		MinWidth: minOffsets[len(minOffsets)-1],
		MaxWidth: maxOffsets[len(maxOffsets)-1],
	}
	out.AdditionalWidth = r.insets(-1).Horizontal()
	return out
}
