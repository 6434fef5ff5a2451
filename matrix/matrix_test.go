package matrix

import (
	"math"
	"math/rand"
	"testing"

	"github.com/benoitkugler/boxlayout/utils"
)

func randT() Transform {
	return New(rand.Float32(), rand.Float32(), rand.Float32(), rand.Float32(), rand.Float32(), rand.Float32())
}

func isClose(a, b fl) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestDeterminant(t *testing.T) {
	if det := Identity().Determinant(); det != 1 {
		t.Fatalf("unexpected derterminant: %f", det)
	}

	if det := Rotation(20).Determinant(); !isClose(det, 1) {
		t.Fatalf("unexpected derterminant: %f", det)
	}

	if det := Translation(2, 2).Determinant(); det != 1 {
		t.Fatalf("unexpected derterminant: %f", det)
	}
}

func TestInvert(t *testing.T) {
	for range [10]int{} {
		mat := randT()
		inv := mat
		if err := inv.Invert(); err != nil {
			continue
		}
		x, y := mat.Apply(3, 4)
		x, y = inv.Apply(x, y)
		if !isClose(x, 3) || !isClose(y, 4) {
			t.Fatalf("unexpected round trip: %f %f", x, y)
		}
	}

	singular := New(1, 1, 1, 1, 0, 0)
	if err := singular.Invert(); err == nil {
		t.Fatal("expected error for singular matrix")
	}
}

func TestRotationAbout(t *testing.T) {
	rot := RotationAbout(math.Pi/2, 10, 10)
	x, y := rot.Apply(10, 10)
	if !isClose(x, 10) || !isClose(y, 10) {
		t.Fatalf("pivot should be fixed, got %f %f", x, y)
	}
	x, y = rot.Apply(20, 10)
	if !isClose(x, 10) || !isClose(y, 20) {
		t.Fatalf("unexpected rotated point %f %f", x, y)
	}
}

func TestBoundingBox(t *testing.T) {
	minX, minY, maxX, maxY := Rotation(math.Pi/2).BoundingBox(0, 0, 100, 20)
	if !isClose(maxX-minX, 20) || !isClose(maxY-minY, 100) {
		t.Fatalf("unexpected bounding box %f %f %f %f", minX, minY, maxX, maxY)
	}

	minX, minY, maxX, maxY = Rotation(math.Pi/4).BoundingBox(0, 0, 10, 10)
	diag := utils.Hypot(10, 10)
	if !isClose(maxX-minX, diag) || !isClose(maxY-minY, diag) {
		t.Fatalf("unexpected bounding box %f %f %f %f", minX, minY, maxX, maxY)
	}
}
