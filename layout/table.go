package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
)

// CellRenderer is a table cell.
type CellRenderer struct {
	BaseRenderer
	rowspan, colspan int
}

// NewCellRenderer returns a cell, whose spans are read from the element style.
func NewCellRenderer(el *Element) *CellRenderer {
	c := &CellRenderer{BaseRenderer: BaseRenderer{Element: el}}
	st := c.Style()
	c.rowspan = utils.MaxInt(int(st.GetRowspan()), 1)
	c.colspan = utils.MaxInt(int(st.GetColspan()), 1)
	return c
}

func (c *CellRenderer) Kind() Kind { return KindCell }

func (c *CellRenderer) Copy() Renderer {
	out := *c
	out.BaseRenderer = c.BaseRenderer.copy()
	return &out
}

func (c *CellRenderer) Rowspan() int { return c.rowspan }

func (c *CellRenderer) Colspan() int { return c.colspan }

func (c *CellRenderer) Layout(ctx LayoutContext) LayoutResult { return blockLayout(c, ctx) }

func (c *CellRenderer) MinMaxWidth(env *Env) MinMaxWidth { return blockMinMaxWidth(c, env) }

// TableRenderer lays out a grid of cells, row by row.
type TableRenderer struct {
	BaseRenderer

	// Header and Footer are repeated on every fragment of the table.
	Header, Footer *TableRenderer

	numberOfColumns int
	// rows[i][j] is the cell starting at (i, j), or nil
	rows [][]*CellRenderer

	cursorRow, cursorCol int
	occupied             occupancy

	borders   TableBorders
	collapsed *CollapsedTableBorders

	// widths imposed to headers and footers
	widthsOverride []Fl

	placedHeader, placedFooter *TableRenderer

	// isPart is true for headers and footers, whose borders
	// are collapsed by the body.
	isPart bool
}

// NewTableRenderer returns an empty table with the given number of columns.
func NewTableRenderer(el *Element, numberOfColumns int) *TableRenderer {
	return &TableRenderer{
		BaseRenderer:    BaseRenderer{Element: el},
		numberOfColumns: utils.MaxInt(numberOfColumns, 1),
		occupied:        occupancy{},
	}
}

func (t *TableRenderer) Kind() Kind { return KindTable }

func (t *TableRenderer) Copy() Renderer {
	out := *t
	out.BaseRenderer = t.BaseRenderer.copy()
	out.placedHeader, out.placedFooter = nil, nil
	return &out
}

// NumberOfColumns returns the number of columns.
func (t *TableRenderer) NumberOfColumns() int { return t.numberOfColumns }

// Rows returns the cells grid: Rows()[i][j] is the cell starting
// at row i and column j, or nil.
func (t *TableRenderer) Rows() [][]*CellRenderer { return t.rows }

// PlacedHeader returns the header laid out with this fragment, or nil.
func (t *TableRenderer) PlacedHeader() *TableRenderer { return t.placedHeader }

// PlacedFooter returns the footer laid out with this fragment, or nil.
func (t *TableRenderer) PlacedFooter() *TableRenderer { return t.placedFooter }

// AddCell places the cell at the next free position, in row major order.
func (t *TableRenderer) AddCell(cell *CellRenderer) {
	if t.occupied == nil {
		t.occupied = occupancy{}
	}
	n := t.numberOfColumns
	cell.colspan = utils.MinInt(cell.colspan, n)
	for {
		if t.cursorCol+cell.colspan > n {
			t.cursorRow++
			t.cursorCol = 0
		}
		if t.occupied.free(t.cursorRow, t.cursorCol, cell.rowspan, cell.colspan) {
			break
		}
		t.cursorCol++
	}
	for len(t.rows) < t.cursorRow+cell.rowspan {
		t.rows = append(t.rows, make([]*CellRenderer, n))
	}
	t.rows[t.cursorRow][t.cursorCol] = cell
	t.occupied.mark(&GridCell{Row: t.cursorRow, Column: t.cursorCol, RowSpan: cell.rowspan, ColumnSpan: cell.colspan})
	t.cursorCol += cell.colspan
	AddChild(t, cell)
	t.borders, t.collapsed = nil, nil
}

// StartNewRow moves the cursor to the next row.
func (t *TableRenderer) StartNewRow() {
	if t.cursorCol > 0 {
		t.cursorRow++
		t.cursorCol = 0
	}
}

func (t *TableRenderer) isCollapsed() bool { return t.Style().GetBorderCollapse() == "collapse" }

// prepare resolves the border model, once.
func (t *TableRenderer) prepare(env *Env) {
	if t.borders != nil {
		return
	}
	tableBorders := cellBorders(t)
	if t.isCollapsed() {
		t.collapsed = NewCollapsedTableBorders(t.rows, t.numberOfColumns, tableBorders, env)
		t.collapsed.CollapseAllBordersAndEmptyRows()
		t.rows = t.collapsed.Rows()
		t.borders = t.collapsed
	} else {
		spacing := t.Style().GetBorderSpacing().ResolveOr(-1, 0)
		t.borders = NewSeparatedTableBorders(t.rows, tableBorders, spacing)
	}
	t.applyIndents()
}

// applyIndents stores the border widths resolved for the cells
// and the table.
func (t *TableRenderer) applyIndents() {
	if t.collapsed == nil {
		return
	}
	for i, cells := range t.rows {
		for j, cell := range cells {
			if cell == nil {
				continue
			}
			rowspan, colspan := t.collapsed.spans(cell, i, j)
			indents := t.collapsed.GetCellBorderIndents(i, j, rowspan, colspan)
			cell.bordersOverride = &indents
		}
	}
	indents := t.collapsed.TableIndents()
	t.bordersOverride = &indents
}

// nextTable returns a deep copy of t, used for repeated headers and footers.
func (t *TableRenderer) nextTable() *TableRenderer {
	out := t.Copy().(*TableRenderer)
	mapping := make(map[*CellRenderer]*CellRenderer)
	children := make([]Renderer, len(t.Children))
	for i, c := range t.Children {
		children[i] = NextRenderer(c)
		if cell, ok := c.(*CellRenderer); ok {
			mapping[cell] = children[i].(*CellRenderer)
		}
	}
	setChildren(out, children)
	out.rows = make([][]*CellRenderer, len(t.rows))
	for i, cells := range t.rows {
		out.rows[i] = make([]*CellRenderer, len(cells))
		for j, c := range cells {
			if c != nil {
				out.rows[i][j] = mapping[c]
			}
		}
	}
	out.borders, out.collapsed = nil, nil
	return out
}

// parts returns fresh copies of the header and footer used by this fragment.
func (t *TableRenderer) parts(env *Env) (header, footer *TableRenderer) {
	st := t.Style()
	if t.Header != nil && !(bool(st.GetSkipFirstHeader()) && !t.isContinuation) {
		header = t.Header.nextTable()
	}
	if t.Footer != nil {
		footer = t.Footer.nextTable()
	}
	for _, part := range [2]*TableRenderer{header, footer} {
		if part == nil {
			continue
		}
		SetParent(part, t)
		part.isPart = true
		part.SetProperty(pr.PBorderCollapse, st.GetBorderCollapse())
		part.prepare(env)
		if part.collapsed != nil {
			part.collapsed.isPart = true
		}
	}
	return header, footer
}

// attachParts collapses the borders of the header and footer with the body,
// and sets the space reserved by each part.
func (t *TableRenderer) attachParts(header, footer *TableRenderer) {
	if t.collapsed == nil || t.isPart {
		return
	}
	body := t.collapsed
	body.SetTopBorderCollapseWith(nil)
	body.SetBottomBorderCollapseWith(nil)
	if header != nil && header.collapsed != nil {
		h := header.collapsed
		body.SetTopBorderCollapseWith(h.horizontal[len(h.horizontal)-1])
		if len(body.horizontal) != 0 {
			h.SetBottomBorderCollapseWith(body.horizontal[0])
		}
		header.applyIndents()
	}
	if footer != nil && footer.collapsed != nil {
		ft := footer.collapsed
		body.SetBottomBorderCollapseWith(ft.horizontal[0])
		if len(body.horizontal) != 0 {
			ft.SetTopBorderCollapseWith(body.horizontal[len(body.horizontal)-1])
		}
		footer.applyIndents()
	}
	t.applyIndents()

	indents := *t.bordersOverride
	for _, part := range [2]*TableRenderer{header, footer} {
		if part == nil || part.bordersOverride == nil {
			continue
		}
		own := *part.bordersOverride
		indents[geom.Left] = maxF(indents[geom.Left], own[geom.Left])
		indents[geom.Right] = maxF(indents[geom.Right], own[geom.Right])
	}
	if header != nil && header.bordersOverride != nil {
		indents[geom.Top] = 0
		header.bordersOverride = &geom.Insets{(*header.bordersOverride)[geom.Top], 0, 0, 0}
	}
	if footer != nil && footer.bordersOverride != nil {
		indents[geom.Bottom] = 0
		footer.bordersOverride = &geom.Insets{0, 0, (*footer.bordersOverride)[geom.Bottom], 0}
	}
	t.bordersOverride = &indents
}

// columnMinMax returns the intrinsic widths of each column.
func (t *TableRenderer) columnMinMax(env *Env) (mins, maxs []Fl) {
	n := t.numberOfColumns
	mins, maxs = make([]Fl, n), make([]Fl, n)
	spacing := t.borders.Spacing()
	type spanning struct {
		col, colspan int
		mm           MinMaxWidth
	}
	var spannings []spanning
	for _, cells := range t.rows {
		for j, cell := range cells {
			if cell == nil {
				continue
			}
			mm := cell.MinMaxWidth(env)
			colspan := utils.MinInt(cell.colspan, n-j)
			if colspan == 1 {
				mins[j] = maxF(mins[j], mm.Min())
				maxs[j] = maxF(maxs[j], mm.Max())
			} else {
				spannings = append(spannings, spanning{j, colspan, mm})
			}
		}
	}
	for _, s := range spannings {
		gaps := spacing * Fl(s.colspan-1)
		var minSum, maxSum Fl
		for j := s.col; j < s.col+s.colspan; j++ {
			minSum += mins[j]
			maxSum += maxs[j]
		}
		if extra := s.mm.Min() - minSum - gaps; extra > 0 {
			for j := s.col; j < s.col+s.colspan; j++ {
				mins[j] += extra / Fl(s.colspan)
			}
		}
		if extra := s.mm.Max() - maxSum - gaps; extra > 0 {
			for j := s.col; j < s.col+s.colspan; j++ {
				maxs[j] += extra / Fl(s.colspan)
			}
		}
	}
	for j := range maxs {
		maxs[j] = maxF(maxs[j], mins[j])
	}
	return mins, maxs
}

// columnWidths distributes the content width among the columns.
func (t *TableRenderer) columnWidths(contentWidth Fl, env *Env) []Fl {
	n := t.numberOfColumns
	if len(t.widthsOverride) == n {
		return t.widthsOverride
	}
	available := contentWidth - t.borders.Spacing()*Fl(n+1)
	explicit := t.Style().GetColumnWidths()
	mins, maxs := t.columnMinMax(env)
	out := make([]Fl, n)
	var free []int
	remaining := available
	for j := range out {
		if j < len(explicit) {
			if w, ok := explicit[j].Resolve(available); ok {
				out[j] = w
				remaining -= w
				continue
			}
		}
		free = append(free, j)
	}
	var minSum, maxSum Fl
	for _, j := range free {
		minSum += mins[j]
		maxSum += maxs[j]
	}
	for _, j := range free {
		switch {
		case remaining >= maxSum:
			extra := remaining - maxSum
			if maxSum > 0 {
				out[j] = maxs[j] + extra*maxs[j]/maxSum
			} else {
				out[j] = extra / Fl(len(free))
			}
		case remaining >= minSum && maxSum > minSum:
			out[j] = mins[j] + (remaining-minSum)*(maxs[j]-mins[j])/(maxSum-minSum)
		default:
			out[j] = mins[j]
		}
	}
	return out
}

func (t *TableRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	if env == nil {
		env = NewEnv(nil, nil)
	}
	t.prepare(env)
	if _, ok := t.Style().GetWidth().Resolve(-1); ok {
		return blockMinMaxWidth(t, env)
	}
	n := t.numberOfColumns
	gaps := t.borders.Spacing() * Fl(n+1)
	mins, maxs := t.columnMinMax(env)
	explicit := t.Style().GetColumnWidths()
	var out MinMaxWidth
	for j := 0; j < n; j++ {
		if j < len(explicit) {
			if w, ok := explicit[j].Resolve(-1); ok {
				out.MinWidth += w
				out.MaxWidth += w
				continue
			}
		}
		out.MinWidth += mins[j]
		out.MaxWidth += maxs[j]
	}
	out.MinWidth += gaps
	out.MaxWidth += gaps
	out.AdditionalWidth = t.insets(-1).Horizontal()
	return out
}

// cellBox positions the cells of a table fragment.
type cellBox struct {
	x     []Fl // column starts
	width []Fl
	gap   Fl
}

func newCellBox(originX Fl, widths []Fl, gap Fl) cellBox {
	cb := cellBox{x: make([]Fl, len(widths)), width: widths, gap: gap}
	x := originX + gap
	for j, w := range widths {
		cb.x[j] = x
		x += w + gap
	}
	return cb
}

func (cb cellBox) spanWidth(col, colspan int) Fl {
	var out Fl
	for j := col; j < col+colspan && j < len(cb.width); j++ {
		out += cb.width[j]
	}
	return out + cb.gap*Fl(colspan-1)
}

func (t *TableRenderer) layoutCell(f *blockFrame, cb cellBox, cell *CellRenderer, col int, y, bottom, height Fl, forced bool) LayoutResult {
	colspan := utils.MinInt(cell.colspan, t.numberOfColumns-col)
	box := geom.Rectangle{X: cb.x[col], Y: y, Width: cb.spanWidth(col, colspan), Height: bottom - y}
	ctx := f.childContext(box)
	ctx.FlexItem = &FlexItemSize{Width: box.Width, Height: height, HasHeight: height >= 0}
	ctx.Forced = forced
	return cell.Layout(ctx)
}

type tableRowsResult struct {
	status Status
	// placed cells, and the split parts
	placed []Renderer
	// rows of the overflow table
	overflowRows [][]*CellRenderer
	bottom       Fl
	cause        Renderer
}

// layoutRows places the rows from `top`, stopping at `bottom`.
func (t *TableRenderer) layoutRows(f *blockFrame, cb cellBox, top, bottom Fl) tableRowsResult {
	rows := t.rows
	gap := cb.gap
	nRows := len(rows)
	tops := make([]Fl, nRows+1)
	heights := make([]Fl, nRows)
	y := top + gap
	if nRows == 0 {
		return tableRowsResult{status: Full, bottom: top}
	}
	breakRow := nRows
	var failed []LayoutResult // results of the break row
	for i := 0; i < nRows; i++ {
		tops[i] = y
		var rowHeight Fl
		fits := true
		results := make([]LayoutResult, t.numberOfColumns)
		for j, cell := range rows[i] {
			if cell == nil {
				continue
			}
			res := t.layoutCell(f, cb, cell, j, y, bottom, -1, false)
			results[j] = res
			if res.Status != Full {
				fits = false
				continue
			}
			if cell.rowspan == 1 {
				rowHeight = maxF(rowHeight, res.OccupiedArea.BBox.Height)
			}
		}
		// spanning cells ending at this row
		for s := 0; s < i && fits; s++ {
			for j, cell := range rows[s] {
				if cell == nil || s+cell.rowspan-1 != i {
					continue
				}
				res := t.layoutCell(f, cb, cell, j, tops[s], bottom, -1, false)
				if res.Status != Full {
					fits = false
					break
				}
				rowHeight = maxF(rowHeight, res.OccupiedArea.BBox.Height-(y-tops[s]))
			}
		}
		if fits && y+rowHeight > bottom+utils.Epsilon && !f.dropsOverflow() {
			fits = false
		}
		if !fits && !f.dropsOverflow() {
			breakRow = i
			failed = results
			break
		}
		heights[i] = rowHeight
		y += rowHeight + gap
	}
	tops[breakRow] = y

	out := tableRowsResult{status: Full, bottom: y}
	if breakRow < nRows && f.dropsOverflow() {
		breakRow = nRows
	}
	// final layout of the placed cells, at the height of their rows.
	// Cells crossing the break row are handled below.
	for i := 0; i < breakRow; i++ {
		for j, cell := range rows[i] {
			if cell == nil {
				continue
			}
			end := i + cell.rowspan
			if end > breakRow {
				continue
			}
			height := tops[end-1] + heights[end-1] - tops[i]
			res := t.layoutCell(f, cb, cell, j, tops[i], bottom, height, false)
			out.placed = append(out.placed, fragmentOf(cell, res))
		}
	}
	if breakRow == nRows {
		return out
	}

	out.status = Partial
	overflowFirst := make([]*CellRenderer, t.numberOfColumns)
	anyPlaced := breakRow > 0
	// cells spanning over the break row are split
	for i := 0; i < breakRow; i++ {
		for j, cell := range rows[i] {
			if cell == nil || i+cell.rowspan <= breakRow {
				continue
			}
			res := t.layoutCell(f, cb, cell, j, tops[i], bottom, -1, false)
			switch res.Status {
			case Full:
				out.placed = append(out.placed, cell)
				out.bottom = maxF(out.bottom, res.OccupiedArea.BBox.Bottom())
			case Partial:
				out.placed = append(out.placed, res.SplitRenderer)
				rest := res.OverflowRenderer.(*CellRenderer)
				rest.rowspan = i + cell.rowspan - breakRow
				overflowFirst[j] = rest
			case Nothing:
				overflowFirst[j] = cell
			}
		}
	}
	if breakRow == 0 {
		// the first row does not fit: split its cells
		var forcedOne bool
		for j, cell := range rows[0] {
			if cell == nil {
				continue
			}
			res := failed[j]
			if res.Status == Nothing && f.forced && !forcedOne {
				forcedOne = true
				f.env.warn("table cell does not fit the area: it is forced in", cell)
				res = t.layoutCell(f, cb, cell, j, tops[0], bottom, -1, true)
			}
			switch res.Status {
			case Full:
				out.placed = append(out.placed, cell)
				anyPlaced = true
			case Partial:
				out.placed = append(out.placed, res.SplitRenderer)
				rest := res.OverflowRenderer.(*CellRenderer)
				overflowFirst[j] = rest
				anyPlaced = true
			case Nothing:
				overflowFirst[j] = cell
				if out.cause == nil {
					out.cause = res.CauseOfNothing
					if out.cause == nil {
						out.cause = cell
					}
				}
			}
			if res.OccupiedArea != nil {
				out.bottom = maxF(out.bottom, res.OccupiedArea.BBox.Bottom()+gap)
			}
		}
		out.overflowRows = append([][]*CellRenderer{overflowFirst}, rows[1:]...)
	} else {
		first := append([]*CellRenderer(nil), rows[breakRow]...)
		for j, c := range overflowFirst {
			if c != nil {
				first[j] = c
			}
		}
		out.overflowRows = append([][]*CellRenderer{first}, rows[breakRow+1:]...)
	}
	if !anyPlaced {
		out.status = Nothing
	}
	return out
}

func fragmentOf(r Renderer, res LayoutResult) Renderer {
	if res.SplitRenderer != nil {
		return res.SplitRenderer
	}
	return r
}

func (t *TableRenderer) Layout(ctx LayoutContext) LayoutResult {
	if ctx.Env == nil {
		ctx.Env = NewEnv(nil, nil)
	}
	env := ctx.Env
	t.prepare(env)
	header, footer := t.parts(env)
	t.attachParts(header, footer)

	f, res, ok := beginBlock(t, ctx)
	if !ok {
		return res
	}
	widths := t.columnWidths(f.content.Width, env)
	cb := newCellBox(f.content.X, widths, t.borders.Spacing())

	y := f.content.Y
	if header != nil {
		header.widthsOverride = widths
		hctx := f.childContext(geom.Rectangle{X: f.content.X, Y: y, Width: f.content.Width, Height: f.childBottom - y})
		hctx.FlexItem = &FlexItemSize{Width: f.content.Width}
		hres := header.Layout(hctx)
		if hres.Status != Full && !f.forced && !f.ctx.ClippedHeight {
			f.rollbackFloats()
			return nothing(t, t)
		}
		if hres.Status == Nothing {
			header = nil
		} else {
			header = fragmentOf(header, hres).(*TableRenderer)
			y = hres.OccupiedArea.BBox.Bottom()
		}
	}
	bottom := f.childBottom
	var footerHeight Fl
	if footer != nil {
		footer.widthsOverride = widths
		fctx := f.childContext(geom.Rectangle{X: f.content.X, Y: y, Width: f.content.Width, Height: geom.InfiniteHeight})
		fctx.FlexItem = &FlexItemSize{Width: f.content.Width}
		fctx.ClippedHeight = true
		if fres := footer.Layout(fctx); fres.Status != Nothing {
			footer = fragmentOf(footer, fres).(*TableRenderer)
			footerHeight = fres.OccupiedArea.BBox.Height
		} else {
			footer = nil
		}
		bottom -= footerHeight
	}

	rows := t.layoutRows(f, cb, y, bottom)
	if rows.status == Nothing {
		if f.forced {
			f.env.warn("table rows do not fit the area", t)
		}
		f.rollbackFloats()
		cause := rows.cause
		if cause == nil {
			cause = t
		}
		return nothing(cause, t)
	}
	if rows.status == Partial && isKeepTogether(t) && !f.forced {
		f.rollbackFloats()
		return nothing(t, t)
	}

	contentBottom := rows.bottom
	lastFragment := rows.status == Full
	if footer != nil && !(lastFragment && bool(t.Style().GetSkipLastFooter())) {
		move(footer, 0, contentBottom-footer.OccupiedArea.BBox.Y)
		contentBottom += footerHeight
	} else {
		footer = nil
	}

	if rows.status == Full && samePointers(rows.placed, t.Children) && len(rows.placed) == len(t.Children) {
		t.placedHeader, t.placedFooter = header, footer
		return f.complete(t, rows.placed, contentBottom)
	}

	split := CreateSplitRenderer(t, rows.placed).(*TableRenderer)
	split.placedHeader, split.placedFooter = header, footer
	if rows.status == Full {
		// some content has been clipped
		return f.complete(split, rows.placed, contentBottom)
	}

	var overflowCells []Renderer
	for _, cells := range rows.overflowRows {
		for _, c := range cells {
			if c != nil {
				overflowCells = append(overflowCells, c)
			}
		}
	}
	overflow := CreateOverflowRenderer(t, overflowCells).(*TableRenderer)
	overflow.rows = rows.overflowRows
	overflow.borders, overflow.collapsed = nil, nil
	overflow.occupied = nil

	contentHeight := f.contentHeight(contentBottom)
	if f.fixedHeight >= 0 || f.minHeight > 0 || f.fillArea {
		contentHeight = maxF(contentHeight, minF(f.targetHeight(contentHeight), f.available))
	}
	f.reduceHeights(overflow, contentHeight)
	f.place(split, f.outerBox(contentHeight))
	return LayoutResult{
		Status:           Partial,
		OccupiedArea:     split.OccupiedArea,
		SplitRenderer:    split,
		OverflowRenderer: overflow,
	}
}
