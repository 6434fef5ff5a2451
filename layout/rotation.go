package layout

import (
	"math"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/matrix"
	"github.com/benoitkugler/boxlayout/utils"
	"go.uber.org/zap"
)

// rotatedBox computes the transform of a box rotated by angle around its
// top left corner, and then translated so that its bounding box starts
// at the same corner. It returns the transform and the bounding box.
func rotatedBox(box geom.Rectangle, angle Fl) (matrix.Transform, geom.Rectangle) {
	rot := matrix.RotationAbout(angle, box.X, box.Y)
	minX, minY, maxX, maxY := rot.BoundingBox(box.X, box.Y, box.Width, box.Height)
	mat := matrix.Mul(matrix.Translation(box.X-minX, box.Y-minY), rot)
	return mat, geom.Rectangle{X: box.X, Y: box.Y, Width: maxX - minX, Height: maxY - minY}
}

// pivotedBox rotates box by angle around the point (px, py), relative to
// the box origin. The bounding box is not translated back.
func pivotedBox(box geom.Rectangle, angle, px, py Fl) (matrix.Transform, geom.Rectangle) {
	rot := matrix.RotationAbout(angle, box.X+px, box.Y+py)
	minX, minY, maxX, maxY := rot.BoundingBox(box.X, box.Y, box.Width, box.Height)
	return rot, geom.Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// rotationPoint returns the explicit pivot of r, if both coordinates are set.
func rotationPoint(r Renderer, box geom.Rectangle) (px, py Fl, ok bool) {
	st := r.Base().Style()
	px, okX := st.GetRotationPointX().Resolve(box.Width)
	py, okY := st.GetRotationPointY().Resolve(box.Height)
	return px, py, okX && okY
}

// applyRotation replaces the occupied box (laid out unrotated) by the
// bounding box of the rotated content, storing the initial geometry on target.
// It returns false if the rotated box does not fit the available area and
// placement is not forced.
func (f *blockFrame) applyRotation(target Renderer, box geom.Rectangle) (geom.Rectangle, bool) {
	mat, rotated := rotatedBox(box, f.rotation)
	px, py, pivoted := rotationPoint(f.r, box)
	if pivoted {
		mat, rotated = pivotedBox(box, f.rotation, px, py)
	}
	target.Base().Rotation = &RotationInfo{
		Angle:         f.rotation,
		InitialX:      box.X,
		InitialY:      box.Y,
		InitialWidth:  box.Width,
		InitialHeight: box.Height,
		Transform:     mat,
	}
	tooWide := rotated.Width > f.bounds.Width+utils.Epsilon
	if pivoted {
		tooWide = tooWide || rotated.X < f.bounds.X-utils.Epsilon || rotated.Right() > f.bounds.Right()+utils.Epsilon
	}
	if tooWide {
		f.env.warn("rotated content does not fit the area by width", f.r,
			zap.Float32("width", rotated.Width), zap.Float32("available", f.bounds.Width))
		if !f.forced {
			target.Base().Rotation = nil
			return box, false
		}
	}
	if rotated.Bottom() > f.bounds.Bottom()+utils.Epsilon && !f.forced && !f.ctx.ClippedHeight {
		target.Base().Rotation = nil
		return box, false
	}
	return rotated, true
}

// rotatedMinMaxWidth returns the widths of the bounding box of the rotated
// content, assuming its height is the same as its width.
func rotatedMinMaxWidth(mm MinMaxWidth, angle Fl) MinMaxWidth {
	cos, sin := Fl(math.Abs(math.Cos(float64(angle)))), Fl(math.Abs(math.Sin(float64(angle))))
	factor := cos + sin
	return MinMaxWidth{
		MinWidth:        mm.Min() * factor,
		MaxWidth:        mm.Max() * factor,
		AdditionalWidth: 0,
	}
}
