package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
)

// LayoutContext is the input of a layout call.
type LayoutContext struct {
	// Area is the space available for the renderer.
	Area geom.Area
	// MarginsCollapse is nil unless margins collapsing is enabled.
	MarginsCollapse *MarginsCollapseInfo
	// Floats is shared by the renderers of a block formatting context.
	Floats *FloatAreas
	// ClippedHeight is true if an ancestor has a hard clipped height:
	// content is then never split.
	ClippedHeight bool

	Env *Env

	// FlexItem is set when laying out a flex item at the size
	// resolved by its container.
	FlexItem *FlexItemSize

	// Forced places the renderer even if it does not fit, as the
	// forced-placement property does. It only applies to the renderer
	// the context is given to, not to its children.
	Forced bool
}

// FlexItemSize is the outer (margin box) size resolved for a flex item.
type FlexItemSize struct {
	Width Fl
	// Height is ignored if HasHeight is false.
	Height    Fl
	HasHeight bool
}

// MarginsCollapseInfo carries the bottom margin of the previous
// in-flow sibling, already consumed in the layout area.
type MarginsCollapseInfo struct {
	PreviousBottomMargin Fl
}

// NewLayoutContext returns a context for the given area, with
// a new float context.
func NewLayoutContext(area geom.Area, env *Env) LayoutContext {
	return LayoutContext{Area: area, Floats: &FloatAreas{}, Env: env}
}

// withArea returns a copy of ctx for a child laid out in bbox.
func (ctx LayoutContext) withArea(bbox geom.Rectangle) LayoutContext {
	out := ctx
	out.Area.BBox = bbox
	out.FlexItem = nil
	out.MarginsCollapse = nil
	out.Forced = false
	return out
}
