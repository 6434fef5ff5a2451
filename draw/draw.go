// Package draw paints laid out pages into a PDF file: the borders of the
// boxes, and the outlines of their occupied areas, which is useful to
// inspect a layout.
package draw

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"go.uber.org/zap"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/layout"
	"github.com/benoitkugler/boxlayout/logger"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
)

// ErrNoPages is returned when there is nothing to draw.
var ErrNoPages = errors.New("draw: no pages")

const (
	mmPerPt      = 25.4 / 72
	outlineWidth = 0.1 // mm
)

var (
	outlineColor = canvas.Hex("#b0b0b0")
	textColor    = canvas.Hex("#4060c0")
	transparent  = color.RGBA{0, 0, 0, 0}
)

var namedColors = map[string]color.RGBA{
	"black": canvas.Hex("#000000"),
	"white": canvas.Hex("#ffffff"),
	"red":   canvas.Hex("#ff0000"),
	"green": canvas.Hex("#008000"),
	"blue":  canvas.Hex("#0000ff"),
	"gray":  canvas.Hex("#808080"),
	"grey":  canvas.Hex("#808080"),
}

// parseColor accepts hexadecimal notations and a few names.
// Other values are black.
func parseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return canvas.Hex(s)
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	return namedColors["black"]
}

func toMM(v utils.Fl) float64 { return float64(v) * mmPerPt }

// Options controls what is painted.
type Options struct {
	// Outlines adds a thin frame around every occupied area.
	Outlines bool
}

// Drawer paints pages.
type Drawer struct {
	Options
	warning *zap.Logger
}

// NewDrawer returns a drawer logging to l, which may be nil.
func NewDrawer(opts Options, l *zap.Logger) *Drawer {
	if l == nil {
		l = logger.Nop()
	}
	return &Drawer{Options: opts, warning: logger.Warning(l)}
}

// WritePDF draws pages into w.
func (d *Drawer) WritePDF(w io.Writer, pages []layout.Page) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	first := pages[0].Size
	writer := pdf.New(w, toMM(first.Width), toMM(first.Height), nil)
	for i, page := range pages {
		width, height := toMM(page.Size.Width), toMM(page.Size.Height)
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)
		d.drawTree(ctx, page.Root, page.Number)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func (d *Drawer) drawTree(ctx *canvas.Context, r layout.Renderer, page int) {
	b := r.Base()
	if b.OccupiedArea == nil {
		d.warning.Warn("draw before layout: the renderer is skipped",
			zap.String("kind", r.Kind().String()), zap.Int("page", page))
		return
	}
	if angle := b.Style().GetRotationAngle(); angle != 0 && b.Rotation == nil && r.Kind() != layout.KindText {
		d.warning.Warn("rotation is not resolved: the renderer is drawn unrotated",
			zap.String("kind", r.Kind().String()), zap.Float32("angle", utils.Fl(angle)))
	}
	d.drawBox(ctx, r)
	for _, child := range layout.PlacedChildren(r) {
		d.drawTree(ctx, child, page)
	}
}

// outline returns the corners of the area drawn for r, in points.
func outline(b *layout.BaseRenderer) [4][2]utils.Fl {
	box := b.OccupiedArea.BBox
	if rot := b.Rotation; rot != nil {
		var out [4][2]utils.Fl
		x, y := rot.InitialX, rot.InitialY
		corners := [4][2]utils.Fl{
			{x, y}, {x + rot.InitialWidth, y},
			{x + rot.InitialWidth, y + rot.InitialHeight}, {x, y + rot.InitialHeight},
		}
		for i, c := range corners {
			out[i][0], out[i][1] = rot.Transform.Apply(c[0], c[1])
		}
		return out
	}
	return [4][2]utils.Fl{
		{box.X, box.Y}, {box.Right(), box.Y},
		{box.Right(), box.Bottom()}, {box.X, box.Bottom()},
	}
}

func polygon(points [4][2]utils.Fl) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(toMM(points[0][0]), toMM(points[0][1]))
	for _, pt := range points[1:] {
		p.LineTo(toMM(pt[0]), toMM(pt[1]))
	}
	p.Close()
	return p
}

func (d *Drawer) drawBox(ctx *canvas.Context, r layout.Renderer) {
	b := r.Base()
	ctx.SetFillColor(transparent)
	if r.Kind() == layout.KindText {
		ctx.SetStrokeColor(textColor)
		ctx.SetStrokeWidth(outlineWidth)
		ctx.DrawPath(0, 0, polygon(outline(b)))
		return
	}
	if d.Outlines {
		ctx.SetStrokeColor(outlineColor)
		ctx.SetStrokeWidth(outlineWidth)
		ctx.DrawPath(0, 0, polygon(outline(b)))
	}
	if b.Rotation != nil {
		return
	}
	d.drawBorders(ctx, b)
}

// drawBorders strokes each visible side along the middle of the
// border, inside the occupied area.
func (d *Drawer) drawBorders(ctx *canvas.Context, b *layout.BaseRenderer) {
	st := b.Style()
	box := b.OccupiedArea.BBox
	box.ApplyInsets(marginsOf(st, box.Width), false)
	borders := [4]pr.Border{st.GetBorderTop(), st.GetBorderRight(), st.GetBorderBottom(), st.GetBorderLeft()}
	for side, border := range borders {
		if border.IsNone() {
			continue
		}
		half := border.Width / 2
		var x1, y1, x2, y2 utils.Fl
		switch geom.Side(side) {
		case geom.Top:
			x1, y1, x2, y2 = box.X, box.Y+half, box.Right(), box.Y+half
		case geom.Right:
			x1, y1, x2, y2 = box.Right()-half, box.Y, box.Right()-half, box.Bottom()
		case geom.Bottom:
			x1, y1, x2, y2 = box.X, box.Bottom()-half, box.Right(), box.Bottom()-half
		case geom.Left:
			x1, y1, x2, y2 = box.X+half, box.Y, box.X+half, box.Bottom()
		}
		ctx.SetStrokeColor(parseColor(string(border.Color)))
		ctx.SetStrokeWidth(toMM(border.Width))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(toMM(x2-x1), toMM(y2-y1))
		ctx.DrawPath(toMM(x1), toMM(y1), p)
	}
}

func marginsOf(st pr.Style, width utils.Fl) geom.Insets {
	return geom.Insets{
		st.GetMarginTop().ResolveOr(width, 0),
		st.GetMarginRight().ResolveOr(width, 0),
		st.GetMarginBottom().ResolveOr(width, 0),
		st.GetMarginLeft().ResolveOr(width, 0),
	}
}
