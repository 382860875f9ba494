// Package colorutil provides shared color utilities for the viewer UI.
package colorutil

import (
	"fmt"
	"image"
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}

	// SelectionStroke is the ROI rectangle outline color.
	SelectionStroke = color.RGBA{R: 255, G: 64, B: 64, A: 255}
	// SelectionFill is the translucent ROI interior.
	SelectionFill = color.RGBA{R: 255, G: 64, B: 64, A: 40}
)

// RGB8 reads a pixel as 8-bit RGB components.
func RGB8(img image.Image, x, y int) (r, g, b uint8) {
	r16, g16, b16, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}

// FormatPixel renders a status-bar readout for the pixel under the cursor,
// e.g. "(120, 45) RGB(255, 128, 0)".
func FormatPixel(img image.Image, x, y int) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return fmt.Sprintf("(%d, %d)", x, y)
	}
	r, g, bl := RGB8(img, x, y)
	return fmt.Sprintf("(%d, %d) RGB(%d, %d, %d)", x, y, r, g, bl)
}

// FormatGray renders a grayscale readout, used for diff images.
func FormatGray(img image.Image, x, y int) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return fmt.Sprintf("(%d, %d)", x, y)
	}
	r, g, bl := RGB8(img, x, y)
	gray := (int(r)*299 + int(g)*587 + int(bl)*114) / 1000
	return fmt.Sprintf("(%d, %d) gray %d", x, y, gray)
}
