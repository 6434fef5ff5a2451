package layout

import (
	"github.com/benoitkugler/boxlayout/geom"
)

// FloatArea is the margin box of a placed float.
type FloatArea struct {
	geom.Rectangle
	Side string // "left" or "right"
}

// FloatAreas is the list of the floats placed in a
// block formatting context.
type FloatAreas struct {
	areas []*FloatArea
}

// FloatsSnapshot records the floats present at a given time.
type FloatsSnapshot struct {
	areas map[*FloatArea]bool
}

// Len returns the number of placed floats.
func (fa *FloatAreas) Len() int { return len(fa.areas) }

// Areas returns the placed floats.
func (fa *FloatAreas) Areas() []*FloatArea { return fa.areas }

// Add registers a placed float.
func (fa *FloatAreas) Add(rect geom.Rectangle, side string) *FloatArea {
	out := &FloatArea{Rectangle: rect, Side: side}
	fa.areas = append(fa.areas, out)
	return out
}

// Snapshot returns the set of floats currently placed.
func (fa *FloatAreas) Snapshot() FloatsSnapshot {
	out := FloatsSnapshot{areas: make(map[*FloatArea]bool, len(fa.areas))}
	for _, a := range fa.areas {
		out.areas[a] = true
	}
	return out
}

// Rollback removes the floats added after the snapshot was taken.
func (fa *FloatAreas) Rollback(s FloatsSnapshot) {
	kept := fa.areas[:0]
	for _, a := range fa.areas {
		if s.areas[a] {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(fa.areas); i++ {
		fa.areas[i] = nil
	}
	fa.areas = kept
}

// horizontalSpan returns the interval of [bounds.X, bounds.Right()] left free
// by the floats intersecting the band [y, y+height).
func (fa *FloatAreas) horizontalSpan(bounds geom.Rectangle, y, height Fl) (left, right Fl) {
	left, right = bounds.X, bounds.Right()
	if height <= 0 {
		height = 1e-3
	}
	for _, f := range fa.areas {
		if f.Y >= y+height || f.Bottom() <= y || f.Width == 0 {
			continue
		}
		if f.Side == "left" {
			left = maxF(left, f.Right())
		} else {
			right = minF(right, f.X)
		}
	}
	return left, right
}

// nextBottom returns the smallest float bottom below y, or -1.
func (fa *FloatAreas) nextBottom(y Fl) Fl {
	out := Fl(-1)
	for _, f := range fa.areas {
		if b := f.Bottom(); b > y && (out == -1 || b < out) {
			out = b
		}
	}
	return out
}

// place returns the top left corner of a float of the given outer width,
// starting at `y`, in `bounds`. The returned y may be below bounds if no
// space is found.
func (fa *FloatAreas) place(bounds geom.Rectangle, y, width, height Fl, side string) (Fl, Fl) {
	// a float is never placed above a previous one
	for _, f := range fa.areas {
		y = maxF(y, f.Y)
	}
	for {
		left, right := fa.horizontalSpan(bounds, y, height)
		if right-left >= width-1e-3 || (left == bounds.X && right == bounds.Right()) {
			if side == "right" {
				return right - width, y
			}
			return left, y
		}
		next := fa.nextBottom(y)
		if next == -1 {
			return left, y
		}
		y = next
	}
}

// clearance returns the y position after the floats on the given side(s).
func (fa *FloatAreas) clearance(clear string, y Fl) Fl {
	for _, f := range fa.areas {
		if clear == "both" || clear == f.Side {
			y = maxF(y, f.Bottom())
		}
	}
	return y
}

// lowestBottom returns the maximum bottom of the floats, or y.
func (fa *FloatAreas) lowestBottom(y Fl) Fl {
	return fa.clearance("both", y)
}
