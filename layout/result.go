package layout

import (
	"fmt"

	"github.com/benoitkugler/boxlayout/geom"
)

// Status is the outcome of a layout call.
type Status uint8

const (
	// Full means the whole renderer has been placed.
	Full Status = iota
	// Partial means the renderer has been split: the split part is placed,
	// the overflow part must be laid out in the next area.
	Partial
	// Nothing means nothing could be placed.
	Nothing
)

func (s Status) String() string {
	switch s {
	case Full:
		return "FULL"
	case Partial:
		return "PARTIAL"
	default:
		return "NOTHING"
	}
}

// AreaBreak requests the continuation of the layout on a new page.
type AreaBreak struct{}

// LayoutResult is returned by Renderer.Layout.
//
// With status Full, SplitRenderer is usually nil, meaning the renderer
// itself has been placed. It is set when the layout had to build a new
// fragment, for instance when clipped content has been dropped.
type LayoutResult struct {
	Status       Status
	OccupiedArea *geom.Area

	SplitRenderer    Renderer
	OverflowRenderer Renderer
	// CauseOfNothing is the renderer responsible for a Nothing result.
	CauseOfNothing Renderer

	AreaBreak   *AreaBreak
	MinMaxWidth *MinMaxWidth
}

func (r LayoutResult) String() string {
	return fmt.Sprintf("%s (occupied: %v)", r.Status, r.OccupiedArea)
}

func nothing(cause Renderer, overflow Renderer) LayoutResult {
	return LayoutResult{Status: Nothing, CauseOfNothing: cause, OverflowRenderer: overflow}
}

// MinMaxWidth stores the intrinsic widths of a renderer, without and
// with its horizontal decorations.
type MinMaxWidth struct {
	MinWidth, MaxWidth Fl
	// AdditionalWidth is the sum of horizontal margins, borders and paddings.
	AdditionalWidth Fl
}

// Min returns the smallest outer width.
func (m MinMaxWidth) Min() Fl { return m.MinWidth + m.AdditionalWidth }

// Max returns the preferred outer width.
func (m MinMaxWidth) Max() Fl { return m.MaxWidth + m.AdditionalWidth }

func (m MinMaxWidth) union(other MinMaxWidth) MinMaxWidth {
	return MinMaxWidth{
		MinWidth: maxF(m.MinWidth, other.Min()),
		MaxWidth: maxF(m.MaxWidth, other.Max()),
	}
}
