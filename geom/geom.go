// Package geom defines the rectangles and areas exchanged
// during layout.
//
// The y axis grows downward: a rectangle spans
// [X, X+Width] x [Y, Y+Height] and content is stacked from Y.
package geom

import (
	"fmt"

	"github.com/benoitkugler/boxlayout/utils"
)

type Fl = utils.Fl

// InfiniteHeight is used as available height when
// measuring content without vertical constraint.
const InfiniteHeight Fl = 1e6

type Rectangle struct {
	X, Y, Width, Height Fl
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r.X, r.Y, r.Width, r.Height)
}

// Right returns X + Width.
func (r Rectangle) Right() Fl { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rectangle) Bottom() Fl { return r.Y + r.Height }

// MoveDown consumes `amount` from the top of the rectangle.
func (r *Rectangle) MoveDown(amount Fl) {
	r.Y += amount
	r.Height -= amount
}

// ApplyInsets shrinks (or grows, if reverse is true) the rectangle
// by the given insets.
func (r *Rectangle) ApplyInsets(in Insets, reverse bool) {
	if reverse {
		in = Insets{-in[Top], -in[Right], -in[Bottom], -in[Left]}
	}
	r.X += in[Left]
	r.Y += in[Top]
	r.Width -= in[Left] + in[Right]
	r.Height -= in[Top] + in[Bottom]
}

// Intersects returns true if the two rectangles overlap
// with a non empty intersection.
func (r Rectangle) Intersects(o Rectangle) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rectangle containing r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	x, y := utils.MinF(r.X, o.X), utils.MinF(r.Y, o.Y)
	right, bottom := utils.MaxF(r.Right(), o.Right()), utils.MaxF(r.Bottom(), o.Bottom())
	return Rectangle{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Contains returns true if o is inside r, up to utils.Epsilon.
func (r Rectangle) Contains(o Rectangle) bool {
	eps := utils.Epsilon
	return o.X >= r.X-eps && o.Y >= r.Y-eps && o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Side indexes the four sides of a box, in CSS order.
type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Insets stores lengths for the four sides, indexed by Side.
type Insets [4]Fl

// Horizontal returns left + right.
func (in Insets) Horizontal() Fl { return in[Left] + in[Right] }

// Vertical returns top + bottom.
func (in Insets) Vertical() Fl { return in[Top] + in[Bottom] }

// Add returns the sum side by side.
func (in Insets) Add(other Insets) Insets {
	return Insets{in[0] + other[0], in[1] + other[1], in[2] + other[2], in[3] + other[3]}
}

// Area is a rectangle on a given page.
type Area struct {
	PageNumber int
	BBox       Rectangle
}

// Clone returns a copy, which may be safely mutated.
func (a *Area) Clone() *Area {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}

func (a Area) String() string {
	return fmt.Sprintf("page %d %s", a.PageNumber, a.BBox)
}
