// Package images fetches the intrinsic size of the raster images
// referenced by documents.
package images

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/benoitkugler/boxlayout/utils"
)

// PointsPerPixel converts image pixels (at 96 dpi) to points.
const PointsPerPixel = 0.75

// ErrUnsupportedFormat is returned for image data not decoded by
// the registered formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Size is the intrinsic size of an image, in points.
type Size struct {
	Width, Height utils.Fl
	Format        string // "png", "jpeg" or "gif"
}

// Ratio returns Width / Height, or 0 for an empty image.
func (s Size) Ratio() utils.Fl {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

type entry struct {
	size Size
	err  error
}

// Cache stores the result of fetching an image, so that
// each file is decoded once, even when it fails.
type Cache struct {
	// BaseDir resolves relative paths.
	BaseDir string

	entries map[string]entry
}

func NewCache(baseDir string) *Cache {
	return &Cache{BaseDir: baseDir, entries: make(map[string]entry)}
}

func (c *Cache) resolve(src string) string {
	if filepath.IsAbs(src) || c.BaseDir == "" {
		return src
	}
	return filepath.Join(c.BaseDir, src)
}

// IntrinsicSize returns the size of the image at src.
func (c *Cache) IntrinsicSize(src string) (Size, error) {
	if c.entries == nil {
		c.entries = make(map[string]entry)
	}
	path := c.resolve(src)
	if e, ok := c.entries[path]; ok {
		return e.size, e.err
	}
	size, err := decodeSize(path)
	c.entries[path] = entry{size, err}
	return size, err
}

func decodeSize(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("loading image %q: %w", path, err)
	}
	defer f.Close()

	config, format, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			err = ErrUnsupportedFormat
		}
		return Size{}, fmt.Errorf("loading image %q: %w", path, err)
	}
	return Size{
		Width:  utils.Fl(config.Width) * PointsPerPixel,
		Height: utils.Fl(config.Height) * PointsPerPixel,
		Format: format,
	}, nil
}
