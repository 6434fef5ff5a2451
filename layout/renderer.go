package layout

import (
	"fmt"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/matrix"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
)

// Kind is the closed set of renderer types.
type Kind uint8

const (
	KindDiv Kind = iota
	KindParagraph
	KindLine
	KindText
	KindImage
	KindListItem
	KindFlexContainer
	KindGridContainer
	KindTable
	KindCell
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindDiv:
		return "Div"
	case KindParagraph:
		return "Paragraph"
	case KindLine:
		return "Line"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindListItem:
		return "ListItem"
	case KindFlexContainer:
		return "FlexContainer"
	case KindGridContainer:
		return "GridContainer"
	case KindTable:
		return "Table"
	case KindCell:
		return "Cell"
	case KindDocument:
		return "Document"
	default:
		return fmt.Sprintf("<kind %d>", k)
	}
}

// Renderer is a node of the layout tree.
type Renderer interface {
	// Base gives access to the fields shared by every renderer.
	Base() *BaseRenderer
	Kind() Kind
	// Layout places the renderer in the given area. It does not modify the
	// receiver, apart from its occupied area and the parent of its children.
	Layout(ctx LayoutContext) LayoutResult
	// MinMaxWidth returns the intrinsic widths.
	MinMaxWidth(env *Env) MinMaxWidth
	// Copy returns a shallow copy, with its own properties map
	// and no occupied area. Children are shared.
	Copy() Renderer
}

// Element is the model element of a renderer, shared between
// all the fragments created when it is split.
type Element struct {
	Tag   string
	Style pr.Properties
}

// BaseRenderer stores the fields common to every renderer.
type BaseRenderer struct {
	Children []Renderer
	Element  *Element
	// Props are the own properties, which take precedence over
	// the element style.
	Props pr.Properties

	// OccupiedArea is nil before layout.
	OccupiedArea *geom.Area

	// Rotation is set by layout for rotated renderers.
	Rotation *RotationInfo

	parent Renderer

	// set on the fragments created by CreateOverflowRenderer
	isContinuation bool

	// border widths resolved by a table
	bordersOverride *geom.Insets

	// hypothetical cross sizes keyed by main size,
	// measured when the renderer is a flex item
	crossSizeCache map[Fl]Fl
}

// RotationInfo stores the geometry of a rotated renderer: its content is
// laid out unrotated, in a box of size InitialWidth x InitialHeight starting
// at (InitialX, InitialY), and Transform maps it onto the occupied area.
type RotationInfo struct {
	Angle                       Fl
	InitialX, InitialY          Fl
	InitialWidth, InitialHeight Fl
	Transform                   matrix.Transform
}

func (b *BaseRenderer) Base() *BaseRenderer { return b }

// Parent returns the parent, or nil for a root.
func (b *BaseRenderer) Parent() Renderer { return b.parent }

// IsContinuation returns true for the fragments following the first one.
func (b *BaseRenderer) IsContinuation() bool { return b.isContinuation }

// copy is the shallow copy used by the Copy methods.
func (b BaseRenderer) copy() BaseRenderer {
	b.Props = b.Props.Copy()
	b.OccupiedArea = nil
	b.Rotation = nil
	b.crossSizeCache = nil
	return b
}

// Get resolves a property: own properties first, then the element style,
// then the parent for inherited properties, and finally the initial value.
func (b *BaseRenderer) Get(key pr.KnownProp) interface{} {
	if v, ok := b.Props[key]; ok {
		return v
	}
	if b.Element != nil {
		if v, ok := b.Element.Style[key]; ok {
			return v
		}
	}
	if pr.Inherited[key] && b.parent != nil {
		return b.parent.Base().Get(key)
	}
	return pr.InitialValues[key]
}

// Style provides typed accessors over Get.
func (b *BaseRenderer) Style() pr.Style { return pr.Style{Getter: b} }

// SetProperty sets an own property.
func (b *BaseRenderer) SetProperty(key pr.KnownProp, value interface{}) {
	if b.Props == nil {
		b.Props = pr.Properties{}
	}
	b.Props[key] = value
}

// DeleteOwnProperty removes an own property.
func (b *BaseRenderer) DeleteOwnProperty(key pr.KnownProp) { delete(b.Props, key) }

// AddChild appends child, setting its parent to r.
func AddChild(r Renderer, child Renderer) {
	b := r.Base()
	child.Base().parent = r
	b.Children = append(b.Children, child)
}

// setChildren replaces the children of r, setting their parent.
func setChildren(r Renderer, children []Renderer) {
	for _, c := range children {
		c.Base().parent = r
	}
	r.Base().Children = children
}

// SetParent sets the parent back reference.
func SetParent(r, parent Renderer) { r.Base().parent = parent }

// CreateSplitRenderer returns a fragment of r holding the given children,
// sharing the model element of r.
func CreateSplitRenderer(r Renderer, children []Renderer) Renderer {
	out := r.Copy()
	setChildren(out, children)
	return out
}

// CreateOverflowRenderer returns the fragment of r continuing on the next
// area, holding the given children. Forced placement is not carried over
// and the top margin is truncated.
func CreateOverflowRenderer(r Renderer, children []Renderer) Renderer {
	out := r.Copy()
	b := out.Base()
	setChildren(out, children)
	b.isContinuation = true
	b.DeleteOwnProperty(pr.PForcedPlacement)
	b.SetProperty(pr.PMarginTop, pr.Zero)
	return out
}

// NextRenderer returns a deep copy of r, ready to be laid out again,
// as used for repeated table headers.
func NextRenderer(r Renderer) Renderer {
	out := r.Copy()
	children := make([]Renderer, len(out.Base().Children))
	for i, c := range out.Base().Children {
		children[i] = NextRenderer(c)
	}
	setChildren(out, children)
	return out
}

func describe(r Renderer) string {
	if el := r.Base().Element; el != nil && el.Tag != "" {
		return fmt.Sprintf("%s<%s>", r.Kind(), el.Tag)
	}
	return r.Kind().String()
}

func isForced(r Renderer) bool { return bool(r.Base().Style().GetForcedPlacement()) }

func isKeepTogether(r Renderer) bool { return bool(r.Base().Style().GetKeepTogether()) }

// isFloating returns true for floated renderers, ignoring
// the float property of flex items and table cells.
func isFloating(r Renderer) bool {
	if r.Kind() == KindCell || r.Kind() == KindLine || r.Kind() == KindText {
		return false
	}
	b := r.Base()
	if p := b.parent; p != nil && (p.Kind() == KindFlexContainer || p.Kind() == KindGridContainer) {
		return false
	}
	return b.Style().GetFloat() != "none"
}

// margins returns the margins, with auto values resolved to 0.
func (b *BaseRenderer) margins(reference Fl) geom.Insets {
	st := b.Style()
	return geom.Insets{
		st.GetMarginTop().ResolveOr(reference, 0),
		st.GetMarginRight().ResolveOr(reference, 0),
		st.GetMarginBottom().ResolveOr(reference, 0),
		st.GetMarginLeft().ResolveOr(reference, 0),
	}
}

func (b *BaseRenderer) paddings(reference Fl) geom.Insets {
	st := b.Style()
	return geom.Insets{
		st.GetPaddingTop().ResolveOr(reference, 0),
		st.GetPaddingRight().ResolveOr(reference, 0),
		st.GetPaddingBottom().ResolveOr(reference, 0),
		st.GetPaddingLeft().ResolveOr(reference, 0),
	}
}

// borderWidths returns the space reserved for the borders.
func (b *BaseRenderer) borderWidths() geom.Insets {
	if b.bordersOverride != nil {
		return *b.bordersOverride
	}
	st := b.Style()
	var out geom.Insets
	for i, border := range [4]pr.Border{st.GetBorderTop(), st.GetBorderRight(), st.GetBorderBottom(), st.GetBorderLeft()} {
		if !border.IsNone() {
			out[i] = border.Width
		}
	}
	return out
}

// insets returns the sum of margins, borders and paddings.
func (b *BaseRenderer) insets(reference Fl) geom.Insets {
	return b.margins(reference).Add(b.borderWidths()).Add(b.paddings(reference))
}

// move translates the occupied areas of r and its descendants.
func move(r Renderer, dx, dy Fl) {
	if dx == 0 && dy == 0 {
		return
	}
	b := r.Base()
	if b.OccupiedArea != nil {
		b.OccupiedArea.BBox.X += dx
		b.OccupiedArea.BBox.Y += dy
	}
	if b.Rotation != nil {
		b.Rotation.Transform = matrix.Mul(matrix.Translation(dx, dy), b.Rotation.Transform)
		b.Rotation.InitialX += dx
		b.Rotation.InitialY += dy
		// children are expressed in unrotated coordinates
		return
	}
	if p, ok := r.(*ParagraphRenderer); ok && p.Lines != nil {
		// inline children are moved with their line
		for _, l := range p.Lines {
			move(l, dx, dy)
		}
		for _, c := range b.Children {
			if isFloating(c) {
				move(c, dx, dy)
			}
		}
		return
	}
	for _, c := range b.Children {
		move(c, dx, dy)
	}
	if t, ok := r.(*TableRenderer); ok {
		for _, part := range [2]*TableRenderer{t.placedHeader, t.placedFooter} {
			if part != nil {
				move(part, dx, dy)
			}
		}
	}
	if l, ok := r.(*ListItemRenderer); ok && l.placedSymbol != nil {
		move(l.placedSymbol, dx, dy)
	}
}

func maxF(a, b Fl) Fl { return utils.MaxF(a, b) }

func minF(a, b Fl) Fl { return utils.MinF(a, b) }

// PlacedChildren returns the renderers drawn with r: its children,
// or its lines for a paragraph, then its placed header, footer and symbol.
func PlacedChildren(r Renderer) []Renderer {
	out := append([]Renderer(nil), r.Base().Children...)
	switch r := r.(type) {
	case *TableRenderer:
		if h := r.PlacedHeader(); h != nil {
			out = append(out, h)
		}
		if f := r.PlacedFooter(); f != nil {
			out = append(out, f)
		}
	case *ListItemRenderer:
		if s := r.PlacedSymbol(); s != nil {
			out = append(out, s)
		}
	case *ParagraphRenderer:
		if len(r.Lines) != 0 {
			out = out[:0]
			for _, line := range r.Lines {
				out = append(out, line)
			}
		}
	}
	return out
}
