// Package imgproc provides pixel operations backed by OpenCV: difference
// images for comparing two loaded rasters, and thumbnail scaling for the
// navigator.
package imgproc

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DefaultDiffOffset is the neutral gray a zero difference maps to in an
// 8-bit difference image.
const DefaultDiffOffset = 128

// Diff computes a - b + offset, saturating to the 8-bit range. The offset
// keeps sign information visible: pixels where a == b render as the
// offset gray. The images must have identical dimensions.
func Diff(a, b image.Image, offset int) (image.Image, error) {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return nil, fmt.Errorf("image sizes differ: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}

	matA, err := gocv.ImageToMatRGB(a)
	if err != nil {
		return nil, fmt.Errorf("convert image a: %w", err)
	}
	defer matA.Close()
	matB, err := gocv.ImageToMatRGB(b)
	if err != nil {
		return nil, fmt.Errorf("convert image b: %w", err)
	}
	defer matB.Close()

	// Work in signed 16-bit so negative differences survive until the
	// offset is added.
	wideA := gocv.NewMat()
	defer wideA.Close()
	wideB := gocv.NewMat()
	defer wideB.Close()
	matA.ConvertTo(&wideA, gocv.MatTypeCV16SC3)
	matB.ConvertTo(&wideB, gocv.MatTypeCV16SC3)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.Subtract(wideA, wideB, &diff)
	diff.AddFloat(float32(offset))

	out := gocv.NewMat()
	defer out.Close()
	diff.ConvertTo(&out, gocv.MatTypeCV8UC3)

	img, err := out.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert diff result: %w", err)
	}
	return img, nil
}

// Thumbnail scales an image down to fit within maxW x maxH, preserving
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(src image.Image, maxW, maxH int) (image.Image, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("invalid thumbnail bounds %dx%d", maxW, maxH)
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src, nil
	}

	scale := float64(maxW) / float64(b.Dx())
	if s := float64(maxH) / float64(b.Dy()); s < scale {
		scale = s
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	mat, err := gocv.ImageToMatRGB(src)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(mat, &scaled, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	img, err := scaled.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert thumbnail: %w", err)
	}
	return img, nil
}
