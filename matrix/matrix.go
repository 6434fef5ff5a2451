// Package matrix provides the 2D affine transformations
// used to rotate laid out content.
package matrix

import (
	"errors"
	"math"

	"github.com/benoitkugler/boxlayout/utils"
)

type fl = utils.Fl

// Transform encode a (2D) linear transformation
//
// The encoded transformation is given by :
//
//	x_new = a * x + c * y + e
//	y_new = b * x + d * y + f
type Transform struct {
	A, B, C, D, E, F fl
}

func New(a, b, c, d, e, f fl) Transform {
	return Transform{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Identity returns a new matrix initialized to the identity.
func Identity() Transform {
	return New(1, 0, 0, 1, 0, 0)
}

// Translation returns the translation by (tx, ty).
func Translation(tx, ty fl) Transform {
	return Transform{1, 0, 0, 1, tx, ty}
}

// Rotation returns a rotation of `radians` about the origin.
// Positive angles rotate from the positive X axis
// toward the positive Y axis.
func Rotation(radians fl) Transform {
	cos, sin := fl(math.Cos(float64(radians))), fl(math.Sin(float64(radians)))
	return Transform{cos, sin, -sin, cos, 0, 0}
}

// RotationAbout returns a rotation of `radians` about (cx, cy).
func RotationAbout(radians, cx, cy fl) Transform {
	return Mul3(Translation(cx, cy), Rotation(radians), Translation(-cx, -cy))
}

// Determinant returns the determinant of the matrix, which is
// non zero if and only if the transformation is reversible.
func (t Transform) Determinant() fl {
	return t.A*t.D - t.B*t.C
}

// write t1 * t2 in out
func mult(t1, t2 Transform, out *Transform) {
	a := t1.A*t2.A + t1.C*t2.B
	b := t1.B*t2.A + t1.D*t2.B
	c := t1.A*t2.C + t1.C*t2.D
	d := t1.B*t2.C + t1.D*t2.D
	e := t1.A*t2.E + t1.C*t2.F + t1.E
	f := t1.B*t2.E + t1.D*t2.F + t1.F
	*out = Transform{a, b, c, d, e, f}
}

// Mul returns the transform T * U,
// which apply U then T.
func Mul(T, U Transform) Transform {
	out := Transform{}
	mult(T, U, &out)
	return out
}

// Mul3 returns the transform R * S * T,
// which applies T, then S, then R.
func Mul3(R, S, T Transform) Transform {
	out := Transform{}
	mult(S, T, &out)
	mult(R, out, &out)
	return out
}

// Invert modify the matrix in place. Return an error
// if the transformation is not bijective.
func (T *Transform) Invert() error {
	det := T.Determinant()
	if det == 0 {
		return errors.New("transformation is not invertible")
	}
	T.A, T.D = T.D/det, T.A/det
	T.B = -T.B / det
	T.C = -T.C / det
	e := -(T.A*T.E + T.C*T.F)
	f := -(T.B*T.E + T.D*T.F)
	T.E, T.F = e, f
	return nil
}

// Apply transforms the point `(x, y)` by this matrix.
func (T Transform) Apply(x, y fl) (outX, outY fl) {
	outX = T.A*x + T.C*y + T.E
	outY = T.B*x + T.D*y + T.F
	return
}

// BoundingBox returns the smallest axis aligned rectangle
// containing the image of the rectangle (x, y, width, height).
func (T Transform) BoundingBox(x, y, width, height fl) (minX, minY, maxX, maxY fl) {
	corners := [4][2]fl{{x, y}, {x + width, y}, {x, y + height}, {x + width, y + height}}
	for i, c := range corners {
		px, py := T.Apply(c[0], c[1])
		if i == 0 {
			minX, maxX, minY, maxY = px, px, py, py
			continue
		}
		minX, maxX = utils.MinF(minX, px), utils.MaxF(maxX, px)
		minY, maxY = utils.MinF(minY, py), utils.MaxF(maxY, py)
	}
	return minX, minY, maxX, maxY
}
