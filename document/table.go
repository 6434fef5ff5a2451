package document

import (
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/benoitkugler/boxlayout/layout"
	pr "github.com/benoitkugler/boxlayout/properties"
)

// tableRow is a <tr> element with its cells.
type tableRow struct {
	cells []*html.Node
}

// tableParts groups the rows of a <table> element.
type tableParts struct {
	header, body, footer []tableRow
	headerEl, footerEl   *html.Node
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func (b *Builder) rowsOf(group *html.Node) []tableRow {
	var out []tableRow
	for _, tr := range elementChildren(group) {
		if tr.DataAtom != atom.Tr {
			b.warning.Warn("unexpected table child is ignored", zap.String("tag", tr.Data))
			continue
		}
		out = append(out, b.row(tr))
	}
	return out
}

func (b *Builder) row(tr *html.Node) tableRow {
	var row tableRow
	for _, td := range elementChildren(tr) {
		if td.DataAtom != atom.Td && td.DataAtom != atom.Th {
			b.warning.Warn("unexpected row child is ignored", zap.String("tag", td.Data))
			continue
		}
		row.cells = append(row.cells, td)
	}
	return row
}

func (b *Builder) splitTable(n *html.Node) tableParts {
	var parts tableParts
	for _, c := range elementChildren(n) {
		switch c.DataAtom {
		case atom.Thead:
			parts.headerEl = c
			parts.header = append(parts.header, b.rowsOf(c)...)
		case atom.Tfoot:
			parts.footerEl = c
			parts.footer = append(parts.footer, b.rowsOf(c)...)
		case atom.Tbody:
			parts.body = append(parts.body, b.rowsOf(c)...)
		case atom.Tr:
			// the HTML parser inserts <tbody>, but trees built by hand may not
			parts.body = append(parts.body, b.row(c))
		default:
			b.warning.Warn("unsupported table child is ignored", zap.String("tag", c.Data))
		}
	}
	return parts
}

func spanAttr(n *html.Node, key string) int {
	v, err := strconv.Atoi(attr(n, key))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// countColumns returns the number of columns needed by rows,
// simulating the placement of the cells.
func countColumns(rows []tableRow) int {
	occupied := map[[2]int]bool{}
	columns := 0
	for i, row := range rows {
		col := 0
		for _, td := range row.cells {
			for occupied[[2]int{i, col}] {
				col++
			}
			colspan, rowspan := spanAttr(td, "colspan"), spanAttr(td, "rowspan")
			for r := i; r < i+rowspan; r++ {
				for c := col; c < col+colspan; c++ {
					occupied[[2]int{r, c}] = true
				}
			}
			col += colspan
			if col > columns {
				columns = col
			}
		}
	}
	return columns
}

func (b *Builder) table(n *html.Node, el *layout.Element) (layout.Renderer, error) {
	parts := b.splitTable(n)
	columns := countColumns(parts.body)
	if c := countColumns(parts.header); c > columns {
		columns = c
	}
	if c := countColumns(parts.footer); c > columns {
		columns = c
	}
	out := layout.NewTableRenderer(el, columns)
	if err := b.fillTable(out, parts.body); err != nil {
		return nil, err
	}
	var err error
	if out.Header, err = b.tablePart(parts.headerEl, parts.header, columns); err != nil {
		return nil, err
	}
	if out.Footer, err = b.tablePart(parts.footerEl, parts.footer, columns); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Builder) tablePart(n *html.Node, rows []tableRow, columns int) (*layout.TableRenderer, error) {
	if n == nil || len(rows) == 0 {
		return nil, nil
	}
	el, err := b.element(n)
	if err != nil {
		return nil, err
	}
	out := layout.NewTableRenderer(el, columns)
	return out, b.fillTable(out, rows)
}

func (b *Builder) fillTable(t *layout.TableRenderer, rows []tableRow) error {
	for _, row := range rows {
		t.StartNewRow()
		for _, td := range row.cells {
			el, err := b.element(td)
			if err != nil {
				return err
			}
			el.Style[pr.PColspan] = pr.Int(spanAttr(td, "colspan"))
			el.Style[pr.PRowspan] = pr.Int(spanAttr(td, "rowspan"))
			cell := layout.NewCellRenderer(el)
			if err := b.blockChildren(cell, td); err != nil {
				return err
			}
			t.AddCell(cell)
		}
	}
	return nil
}
