package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"go.uber.org/zap"
)

// TableBorders computes the space reserved for the borders of a table and
// its cells.
type TableBorders interface {
	// CellIndents returns the border widths reserved inside the cell
	// starting at (row, col).
	CellIndents(row, col, rowspan, colspan int) geom.Insets
	// TableIndents returns the border widths reserved by the table itself.
	TableIndents() geom.Insets
	// Spacing returns the horizontal and vertical space between cells.
	Spacing() Fl
}

// cellBorders returns the borders of a cell, nil meaning no border.
func cellBorders(r Renderer) [4]*pr.Border {
	st := r.Base().Style()
	return [4]*pr.Border{st.GetBorderTop().Ptr(), st.GetBorderRight().Ptr(), st.GetBorderBottom().Ptr(), st.GetBorderLeft().Ptr()}
}

func borderWidth(b *pr.Border) Fl {
	if b == nil {
		return 0
	}
	return b.Width
}

// GetCollapsedBorder returns the border used on an edge shared by a cell
// and the table: the widest one, the cell winning ties.
func GetCollapsedBorder(cellBorder, tableBorder *pr.Border) *pr.Border {
	if tableBorder == nil {
		return cellBorder
	}
	if cellBorder == nil || tableBorder.Width > cellBorder.Width {
		return tableBorder
	}
	return cellBorder
}

// CheckAndReplaceBorderInArray stores `border` at arr[i][j] if the slot is
// empty, or if it is wider than the current border. With `hasPriority`,
// an equal width border also replaces the current one.
// It returns true if the border has been stored.
func CheckAndReplaceBorderInArray(arr [][]*pr.Border, i, j int, border *pr.Border, hasPriority bool) bool {
	if i < 0 || i >= len(arr) || j < 0 || j >= len(arr[i]) || border == nil {
		return false
	}
	current := arr[i][j]
	if current == nil || border.Width > current.Width || (hasPriority && border.Width == current.Width) {
		arr[i][j] = border
		return true
	}
	return false
}

// CollapsedTableBorders implements the collapsing border model: one border
// is resolved for each edge of the grid, and shared by the adjoining cells.
type CollapsedTableBorders struct {
	env *Env

	rows            [][]*CellRenderer
	numberOfColumns int
	// outer borders of the table
	tableBorders [4]*pr.Border

	// horizontal[row][col] : edge above row; len(horizontal) == len(rows)+1
	horizontal [][]*pr.Border
	// vertical[col][row] : edge left of col; len(vertical) == numberOfColumns+1
	vertical [][]*pr.Border

	// borders of the adjoining header and footer, or of the body
	// for a header or footer model
	topBorderCollapseWith, bottomBorderCollapseWith []*pr.Border
	// isPart is true for the model of a header or footer, whose borders
	// win equal width ties against the body
	isPart bool
}

// NewCollapsedTableBorders prepares the border model of the given cells grid.
// `rows[i][j]` is the cell starting at row i and column j, or nil.
func NewCollapsedTableBorders(rows [][]*CellRenderer, numberOfColumns int, tableBorders [4]*pr.Border, env *Env) *CollapsedTableBorders {
	if env == nil {
		env = NewEnv(nil, nil)
	}
	return &CollapsedTableBorders{env: env, rows: rows, numberOfColumns: numberOfColumns, tableBorders: tableBorders}
}

// Rows returns the rows, possibly reduced by CollapseAllBordersAndEmptyRows.
func (b *CollapsedTableBorders) Rows() [][]*CellRenderer { return b.rows }

// Horizontal returns the borders of the horizontal edges, indexed by [row][column].
func (b *CollapsedTableBorders) Horizontal() [][]*pr.Border { return b.horizontal }

// Vertical returns the borders of the vertical edges, indexed by [column][row].
func (b *CollapsedTableBorders) Vertical() [][]*pr.Border { return b.vertical }

// SetTopBorderCollapseWith registers the bottom edge of the header,
// or removes it if borders is nil.
func (b *CollapsedTableBorders) SetTopBorderCollapseWith(borders []*pr.Border) {
	b.topBorderCollapseWith = borders
}

// SetBottomBorderCollapseWith registers the top edge of the footer,
// or removes it if borders is nil.
func (b *CollapsedTableBorders) SetBottomBorderCollapseWith(borders []*pr.Border) {
	b.bottomBorderCollapseWith = borders
}

// HorizontalEdge returns the resolved borders of the edge above `row`,
// including the collapse-with borders for the outer edges. On an edge
// shared with a header or footer, their border wins equal width ties.
func (b *CollapsedTableBorders) HorizontalEdge(row int) []*pr.Border {
	if row < 0 || row >= len(b.horizontal) {
		return nil
	}
	out := append([]*pr.Border(nil), b.horizontal[row]...)
	var with []*pr.Border
	if row == 0 {
		with = b.topBorderCollapseWith
	} else if row == len(b.horizontal)-1 {
		with = b.bottomBorderCollapseWith
	}
	edge := [][]*pr.Border{out}
	for j, other := range with {
		CheckAndReplaceBorderInArray(edge, 0, j, other, !b.isPart)
	}
	return out
}

func (b *CollapsedTableBorders) spans(cell *CellRenderer, row, col int) (rowspan, colspan int) {
	rowspan = cell.Rowspan()
	if row+rowspan > len(b.rows) {
		rowspan = len(b.rows) - row
	}
	colspan = cell.Colspan()
	if col+colspan > b.numberOfColumns {
		colspan = b.numberOfColumns - col
	}
	return maxInt(rowspan, 1), maxInt(colspan, 1)
}

// removeEmptyRows deletes the rows where no cell starts, decreasing the
// row span of the cells spanning over them.
func (b *CollapsedTableBorders) removeEmptyRows() {
	for row := 0; row < len(b.rows); {
		empty := true
		for _, c := range b.rows[row] {
			if c != nil {
				empty = false
				break
			}
		}
		if !empty {
			row++
			continue
		}
		// a cell starting above covers the row only if its span is at least 2
		for i := 0; i < row; i++ {
			for _, c := range b.rows[i] {
				if c != nil && i+c.Rowspan() > row {
					c.rowspan--
				}
			}
		}
		b.rows = append(b.rows[:row:row], b.rows[row+1:]...)
	}
}

// CollapseAllBordersAndEmptyRows removes the empty rows and resolves the
// border of every edge. It may be called again on the resulting model.
func (b *CollapsedTableBorders) CollapseAllBordersAndEmptyRows() {
	b.removeEmptyRows()
	nRows := len(b.rows)

	b.horizontal = make([][]*pr.Border, nRows+1)
	for i := range b.horizontal {
		b.horizontal[i] = make([]*pr.Border, b.numberOfColumns)
	}
	b.vertical = make([][]*pr.Border, b.numberOfColumns+1)
	for i := range b.vertical {
		b.vertical[i] = make([]*pr.Border, nRows)
	}

	for row, cells := range b.rows {
		for col, cell := range cells {
			if cell != nil {
				b.buildBordersArrays(cell, row, col)
			}
		}
	}

	// the table border applies to the edges free of cells
	for j := 0; j < b.numberOfColumns; j++ {
		CheckAndReplaceBorderInArray(b.horizontal, 0, j, b.tableBorders[geom.Top], false)
		CheckAndReplaceBorderInArray(b.horizontal, nRows, j, b.tableBorders[geom.Bottom], false)
	}
	for i := 0; i < nRows; i++ {
		CheckAndReplaceBorderInArray(b.vertical, 0, i, b.tableBorders[geom.Left], false)
		CheckAndReplaceBorderInArray(b.vertical, b.numberOfColumns, i, b.tableBorders[geom.Right], false)
	}

	if nRows != 0 && b.numberOfColumns != 0 {
		b.checkLastRow()
	}
}

// checkLastRow warns if the last row does not cover all the columns.
func (b *CollapsedTableBorders) checkLastRow() {
	last := len(b.rows) - 1
	covered := make([]bool, b.numberOfColumns)
	for row, cells := range b.rows {
		for col, cell := range cells {
			if cell == nil {
				continue
			}
			rowspan, colspan := b.spans(cell, row, col)
			if row+rowspan-1 < last {
				continue
			}
			for j := col; j < col+colspan; j++ {
				covered[j] = true
			}
		}
	}
	for _, c := range covered {
		if !c {
			b.env.warn("last row of the table is not complete", nil, zap.Int("row", last))
			return
		}
	}
}

// buildBordersArrays registers the borders of cell on its four edges.
// Cells are visited in row major order, so that ties are won by the
// first cell processed.
func (b *CollapsedTableBorders) buildBordersArrays(cell *CellRenderer, row, col int) {
	borders := cellBorders(cell)
	rowspan, colspan := b.spans(cell, row, col)
	nRows := len(b.rows)

	for j := col; j < col+colspan; j++ {
		top := borders[geom.Top]
		if row == 0 {
			top = GetCollapsedBorder(top, b.tableBorders[geom.Top])
		}
		CheckAndReplaceBorderInArray(b.horizontal, row, j, top, false)

		bottom := borders[geom.Bottom]
		if row+rowspan == nRows {
			bottom = GetCollapsedBorder(bottom, b.tableBorders[geom.Bottom])
		}
		CheckAndReplaceBorderInArray(b.horizontal, row+rowspan, j, bottom, false)
	}
	for i := row; i < row+rowspan; i++ {
		left := borders[geom.Left]
		if col == 0 {
			left = GetCollapsedBorder(left, b.tableBorders[geom.Left])
		}
		CheckAndReplaceBorderInArray(b.vertical, col, i, left, false)

		right := borders[geom.Right]
		if col+colspan == b.numberOfColumns {
			right = GetCollapsedBorder(right, b.tableBorders[geom.Right])
		}
		CheckAndReplaceBorderInArray(b.vertical, col+colspan, i, right, false)
	}
}

func maxWidth(borders []*pr.Border) Fl {
	var out Fl
	for _, b := range borders {
		out = maxF(out, borderWidth(b))
	}
	return out
}

// GetCellBorderIndents returns half the widest border on each side of the cell.
func (b *CollapsedTableBorders) GetCellBorderIndents(row, col, rowspan, colspan int) geom.Insets {
	var out geom.Insets
	if row < 0 || row >= len(b.rows) {
		return out
	}
	end := minInt(row+rowspan, len(b.rows))
	colEnd := minInt(col+colspan, b.numberOfColumns)
	top := b.HorizontalEdge(row)
	bottom := b.HorizontalEdge(end)
	if colEnd <= len(top) {
		out[geom.Top] = maxWidth(top[col:colEnd]) / 2
	}
	if colEnd <= len(bottom) {
		out[geom.Bottom] = maxWidth(bottom[col:colEnd]) / 2
	}
	if col < len(b.vertical) {
		out[geom.Left] = maxWidth(b.vertical[col][row:end]) / 2
	}
	if colEnd < len(b.vertical) {
		out[geom.Right] = maxWidth(b.vertical[colEnd][row:end]) / 2
	}
	return out
}

func (b *CollapsedTableBorders) CellIndents(row, col, rowspan, colspan int) geom.Insets {
	return b.GetCellBorderIndents(row, col, rowspan, colspan)
}

// TableIndents returns the outer halves of the outer edges.
func (b *CollapsedTableBorders) TableIndents() geom.Insets {
	var out geom.Insets
	if len(b.horizontal) == 0 {
		return out
	}
	out[geom.Top] = maxWidth(b.HorizontalEdge(0)) / 2
	out[geom.Bottom] = maxWidth(b.HorizontalEdge(len(b.horizontal)-1)) / 2
	out[geom.Left] = maxWidth(b.vertical[0]) / 2
	out[geom.Right] = maxWidth(b.vertical[len(b.vertical)-1]) / 2
	return out
}

func (b *CollapsedTableBorders) Spacing() Fl { return 0 }

// SeparatedTableBorders implements the separated border model: every cell
// keeps its own borders, and cells are separated by the border spacing.
type SeparatedTableBorders struct {
	rows         [][]*CellRenderer
	tableBorders [4]*pr.Border
	spacing      Fl
}

func NewSeparatedTableBorders(rows [][]*CellRenderer, tableBorders [4]*pr.Border, spacing Fl) *SeparatedTableBorders {
	return &SeparatedTableBorders{rows: rows, tableBorders: tableBorders, spacing: spacing}
}

func (b *SeparatedTableBorders) CellIndents(row, col, rowspan, colspan int) geom.Insets {
	if row < 0 || row >= len(b.rows) || col < 0 || col >= len(b.rows[row]) || b.rows[row][col] == nil {
		return geom.Insets{}
	}
	borders := cellBorders(b.rows[row][col])
	var out geom.Insets
	for i, border := range borders {
		out[i] = borderWidth(border)
	}
	return out
}

func (b *SeparatedTableBorders) TableIndents() geom.Insets {
	var out geom.Insets
	for i, border := range b.tableBorders {
		out[i] = borderWidth(border)
	}
	return out
}

func (b *SeparatedTableBorders) Spacing() Fl { return b.spacing }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
