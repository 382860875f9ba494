// Selection overlay drawing for the image canvas.
package canvas

import (
	"image"
	"image/color"

	"pixel-viewer/pkg/colorutil"
	"pixel-viewer/pkg/geometry"
)

// handleAccent is the half-size in pixels of the grab-handle squares drawn
// on an editable selection.
const handleAccent = 3

// drawSelection paints the selection rectangle onto dst. The rectangle is
// in dst coordinates. Editable selections get a red stroke and handle
// accents; read-only ones a cyan stroke with no accents.
func drawSelection(dst *image.RGBA, r geometry.RectInt, editable bool) {
	if r.IsEmpty() {
		return
	}

	stroke := colorutil.SelectionStroke
	if !editable {
		stroke = colorutil.Cyan
	}

	blendRect(dst, r, colorutil.SelectionFill)
	strokeRect(dst, r, stroke)

	if !editable {
		return
	}
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	for _, p := range [][2]int{
		{r.X, r.Y}, {r.Right() - 1, r.Y},
		{r.X, r.Bottom() - 1}, {r.Right() - 1, r.Bottom() - 1},
		{cx, r.Y}, {cx, r.Bottom() - 1},
		{r.X, cy}, {r.Right() - 1, cy},
	} {
		fillSquare(dst, p[0], p[1], handleAccent, stroke)
	}
}

// strokeRect draws a one-pixel outline.
func strokeRect(dst *image.RGBA, r geometry.RectInt, c color.RGBA) {
	for x := r.X; x < r.Right(); x++ {
		setPixel(dst, x, r.Y, c)
		setPixel(dst, x, r.Bottom()-1, c)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		setPixel(dst, r.X, y, c)
		setPixel(dst, r.Right()-1, y, c)
	}
}

// blendRect alpha-blends a translucent fill over the rectangle interior.
func blendRect(dst *image.RGBA, r geometry.RectInt, c color.RGBA) {
	if c.A == 0 {
		return
	}
	alpha := float64(c.A) / 255.0
	inv := 1 - alpha
	b := dst.Bounds()
	for y := max(r.Y, b.Min.Y); y < min(r.Bottom(), b.Max.Y); y++ {
		for x := max(r.X, b.Min.X); x < min(r.Right(), b.Max.X); x++ {
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8(float64(c.R)*alpha + float64(dst.Pix[i])*inv)
			dst.Pix[i+1] = uint8(float64(c.G)*alpha + float64(dst.Pix[i+1])*inv)
			dst.Pix[i+2] = uint8(float64(c.B)*alpha + float64(dst.Pix[i+2])*inv)
		}
	}
}

// fillSquare draws a solid square of half-size half centered at (cx, cy).
func fillSquare(dst *image.RGBA, cx, cy, half int, c color.RGBA) {
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			setPixel(dst, x, y, c)
		}
	}
}

func setPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	dst.SetRGBA(x, y, c)
}
