// Package imageio loads and saves raster images for the viewer.
//
// PNG, JPEG, and GIF decode through the standard registrations; TIFF,
// BMP, and WebP come from golang.org/x/image.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pixel-viewer/pkg/geometry"
)

// SupportedExtensions lists the file extensions the loader accepts.
var SupportedExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp",
}

// IsSupported reports whether the path has a loadable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Crop copies the region r out of img. The region is clipped to the
// image bounds; an empty intersection yields a 0x0 image.
func Crop(img image.Image, r geometry.RectInt) *image.RGBA {
	b := img.Bounds()
	clipped := r.Intersect(geometry.NewRectInt(0, 0, b.Dx(), b.Dy()))
	out := image.NewRGBA(image.Rect(0, 0, clipped.Width, clipped.Height))
	for y := 0; y < clipped.Height; y++ {
		for x := 0; x < clipped.Width; x++ {
			out.Set(x, y, img.At(b.Min.X+clipped.X+x, b.Min.Y+clipped.Y+y))
		}
	}
	return out
}

// SavePNG writes an image to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ToRGBA returns the image as *image.RGBA, converting if necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			rgba.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return rgba
}
