package viewport

import (
	"math"

	"pixel-viewer/pkg/geometry"
)

// Axis selects the horizontal or vertical scroll direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Viewport models one scrollable view of a zoomed image: the image size,
// the visible page size, the current integer scroll offsets, and the zoom
// factor. The content extent along each axis is the image extent scaled by
// the zoom. The host widget mirrors this state; OnScrolled tells it to
// repaint after an offset change.
type Viewport struct {
	imageW, imageH int
	pageW, pageH   int
	offX, offY     int
	zoom           float64

	// OnScrolled fires after an offset actually changes.
	OnScrolled func()
}

// NewViewport creates a viewport at zoom 1 with zero offsets.
func NewViewport(imageW, imageH, pageW, pageH int) *Viewport {
	return &Viewport{
		imageW: imageW,
		imageH: imageH,
		pageW:  pageW,
		pageH:  pageH,
		zoom:   1.0,
	}
}

// SetImageSize updates the underlying image dimensions and re-clamps the
// offsets.
func (v *Viewport) SetImageSize(w, h int) {
	v.imageW = w
	v.imageH = h
	v.clampOffsets()
}

// ImageSize returns the underlying image dimensions.
func (v *Viewport) ImageSize() (w, h int) {
	return v.imageW, v.imageH
}

// SetPageSize updates the visible page dimensions and re-clamps the
// offsets.
func (v *Viewport) SetPageSize(w, h int) {
	v.pageW = w
	v.pageH = h
	v.clampOffsets()
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// SetZoom sets the zoom factor, clamped to the valid range, and re-clamps
// the offsets against the new content extent. Scroll repositioning is the
// ZoomController's job.
func (v *Viewport) SetZoom(zoom float64) {
	v.zoom = ClampZoom(zoom)
	v.clampOffsets()
}

// ContentExtent returns the scaled content size along an axis.
func (v *Viewport) ContentExtent(axis Axis) int {
	if axis == Horizontal {
		return int(math.Round(float64(v.imageW) * v.zoom))
	}
	return int(math.Round(float64(v.imageH) * v.zoom))
}

// PageExtent returns the visible page size along an axis.
func (v *Viewport) PageExtent(axis Axis) int {
	if axis == Horizontal {
		return v.pageW
	}
	return v.pageH
}

// MaxOffset returns the largest valid scroll offset along an axis
// (content minus page, never negative).
func (v *Viewport) MaxOffset(axis Axis) int {
	m := v.ContentExtent(axis) - v.PageExtent(axis)
	if m < 0 {
		m = 0
	}
	return m
}

// Offset returns the current scroll offset along an axis.
func (v *Viewport) Offset(axis Axis) int {
	if axis == Horizontal {
		return v.offX
	}
	return v.offY
}

// SetOffset clamps and applies a scroll offset. It reports whether the
// offset actually changed, and fires OnScrolled when it did.
func (v *Viewport) SetOffset(axis Axis, value int) bool {
	value = geometry.ClampInt(value, 0, v.MaxOffset(axis))
	changed := false
	if axis == Horizontal {
		changed = v.offX != value
		v.offX = value
	} else {
		changed = v.offY != value
		v.offY = value
	}
	if changed && v.OnScrolled != nil {
		v.OnScrolled()
	}
	return changed
}

// VisibleCenter returns the image-space point currently at the middle of
// the page.
func (v *Viewport) VisibleCenter() geometry.Point2D {
	if v.zoom <= 0 {
		return geometry.Point2D{}
	}
	cx := (float64(v.offX) + float64(v.pageW)/2) / v.zoom
	cy := (float64(v.offY) + float64(v.pageH)/2) / v.zoom
	return geometry.Point2D{X: cx, Y: cy}
}

// WidgetToImagePoint converts a page-relative widget point (as delivered
// by the host's pointer events) to image coordinates, accounting for the
// current scroll offset.
func (v *Viewport) WidgetToImagePoint(p geometry.PointInt) (geometry.PointInt, bool) {
	content := geometry.PointInt{X: p.X + v.offX, Y: p.Y + v.offY}
	return WidgetToImage(content, v.zoom, v.imageW, v.imageH)
}

func (v *Viewport) clampOffsets() {
	v.offX = geometry.ClampInt(v.offX, 0, v.MaxOffset(Horizontal))
	v.offY = geometry.ClampInt(v.offY, 0, v.MaxOffset(Vertical))
}
