// Package viewport implements the viewer's viewport engine: coordinate
// transforms between widget and image space, the ROI selection state
// machine, zoom control, and scroll synchronization across linked views.
//
// The engine is toolkit-free; ui/canvas adapts it to fyne events.
package viewport

import (
	"math"

	"pixel-viewer/pkg/geometry"
)

// Zoom factor limits. Step zooming always lands on a power of two within
// this range; fit-to-window snaps its raw factor to the nearest power of
// two before applying.
const (
	MinZoom = 1.0 / 32.0
	MaxZoom = 64.0
)

// ClampZoom limits a zoom factor to [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// SnapZoomToPowerOfTwo returns the power of two nearest to zoom,
// clamped to the valid range.
func SnapZoomToPowerOfTwo(zoom float64) float64 {
	zoom = ClampZoom(zoom)
	power := math.Round(math.Log2(zoom))
	return ClampZoom(math.Pow(2, power))
}

// WidgetToImage converts a widget-space point to integer image pixel
// coordinates under the given zoom factor. The result is clamped so it
// always indexes a valid pixel. Returns false when the image is empty.
// Callers must pass a positive zoom; clamp with ClampZoom first.
func WidgetToImage(p geometry.PointInt, zoom float64, imageW, imageH int) (geometry.PointInt, bool) {
	if imageW <= 0 || imageH <= 0 {
		return geometry.PointInt{}, false
	}
	ix := int(math.Floor(float64(p.X) / zoom))
	iy := int(math.Floor(float64(p.Y) / zoom))
	ix = geometry.ClampInt(ix, 0, imageW-1)
	iy = geometry.ClampInt(iy, 0, imageH-1)
	return geometry.PointInt{X: ix, Y: iy}, true
}

// ImageToWidget converts a single image coordinate to widget space.
func ImageToWidget(coord int, zoom float64) int {
	return int(math.Round(float64(coord) * zoom))
}

// ImageRectToWidget projects an image rectangle into widget space. The far
// edges are computed from the transformed exclusive edges rather than from
// width*zoom, so repeated round trips through zoom changes cannot drift.
func ImageRectToWidget(r geometry.RectInt, zoom float64) geometry.RectInt {
	left := ImageToWidget(r.X, zoom)
	top := ImageToWidget(r.Y, zoom)
	right := ImageToWidget(r.Right(), zoom)
	bottom := ImageToWidget(r.Bottom(), zoom)
	w := right - left
	h := bottom - top
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return geometry.RectInt{X: left, Y: top, Width: w, Height: h}
}

// WidgetRectToImage converts a widget rectangle to image pixel
// coordinates, clamped to the image bounds. Degenerate input collapses to
// a zero-size rectangle. Returns false when the image is empty.
func WidgetRectToImage(r geometry.RectInt, zoom float64, imageW, imageH int) (geometry.RectInt, bool) {
	if imageW <= 0 || imageH <= 0 {
		return geometry.RectInt{}, false
	}
	left := int(math.Floor(float64(r.X) / zoom))
	top := int(math.Floor(float64(r.Y) / zoom))
	right := int(math.Floor(float64(r.Right()) / zoom))
	bottom := int(math.Floor(float64(r.Bottom()) / zoom))

	left = geometry.ClampInt(left, 0, imageW)
	top = geometry.ClampInt(top, 0, imageH)
	right = geometry.ClampInt(right, 0, imageW)
	bottom = geometry.ClampInt(bottom, 0, imageH)

	w := right - left
	h := bottom - top
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return geometry.RectInt{X: left, Y: top, Width: w, Height: h}, true
}
