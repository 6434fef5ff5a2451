package images

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	tu "github.com/benoitkugler/boxlayout/utils/testutils"
)

// writePNG creates a width x height PNG file in dir.
func writePNG(t *testing.T, dir, name string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.Black)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestIntrinsicSize(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "icon.png", 40, 20)

	cache := NewCache(dir)
	size, err := cache.IntrinsicSize("icon.png")
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, size, Size{Width: 30, Height: 15, Format: "png"})
	tu.AssertEqual(t, size.Ratio(), float32(2))

	// cached: the file is not read again
	if err := os.Remove(filepath.Join(dir, "icon.png")); err != nil {
		t.Fatal(err)
	}
	again, err := cache.IntrinsicSize("icon.png")
	tu.AssertEqual(t, err, nil)
	tu.AssertEqual(t, again, size)
}

func TestIntrinsicSizeErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache := NewCache(dir)
	_, err := cache.IntrinsicSize("bad.png")
	tu.AssertEqual(t, errors.Is(err, ErrUnsupportedFormat), true)

	_, err = cache.IntrinsicSize("missing.png")
	tu.AssertEqual(t, errors.Is(err, os.ErrNotExist), true)

	var zero Cache
	_, err = zero.IntrinsicSize(filepath.Join(dir, "missing.png"))
	tu.AssertEqual(t, err != nil, true)
}
