package viewport

import (
	"math"

	"pixel-viewer/pkg/geometry"
)

// ZoomDirection selects a binary zoom step.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// ZoomController owns the zoom factor shared by the viewports attached to
// one ScrollSynchronizer. Step zooming doubles or halves the factor;
// fit-to-window snaps to the nearest power of two; both keep a chosen
// focal point visually stationary. Out-of-range requests clamp silently.
type ZoomController struct {
	sync   *ScrollSynchronizer
	factor float64

	// Fit toggle state: the factor and image-space center in effect
	// immediately before entering fit mode.
	fitActive  bool
	fitFactor  float64
	prevFactor float64
	prevCenter geometry.Point2D

	// OnZoomChanged fires after the factor changes, with the new value.
	OnZoomChanged func(factor float64)
}

// NewZoomController creates a controller over the synchronizer's
// viewports, starting at zoom 1.
func NewZoomController(sync *ScrollSynchronizer) *ZoomController {
	return &ZoomController{sync: sync, factor: 1.0}
}

// Factor returns the current zoom factor.
func (z *ZoomController) Factor() float64 {
	return z.factor
}

// StepZoom doubles (ZoomIn) or halves (ZoomOut) the factor, clamped to
// the valid range, keeping focalWidget (a page-relative point in the
// source viewport) visually stationary. A nil focal point anchors on the
// source viewport's geometric center. Returns the new factor.
func (z *ZoomController) StepZoom(dir ZoomDirection, focalWidget *geometry.PointInt, source int) float64 {
	next := z.factor * 2
	if dir == ZoomOut {
		next = z.factor / 2
	}
	next = ClampZoom(next)

	v := z.view(source)
	var focal geometry.Point2D
	var anchor geometry.Point2D
	if focalWidget != nil {
		// Convert before the factor changes so the focal point is the image
		// pixel currently under the pointer.
		focal = geometry.Point2D{
			X: float64(focalWidget.X+v.Offset(Horizontal)) / z.factor,
			Y: float64(focalWidget.Y+v.Offset(Vertical)) / z.factor,
		}
		anchor = focalWidget.ToFloat()
	} else {
		focal = v.VisibleCenter()
		anchor = z.pageCenter(v)
	}
	z.applyZoom(next, focal, anchor, source)
	return z.factor
}

// ApplyZoomPreservingFocus sets the factor and recomputes the source
// viewport's scroll offsets so focalImage reprojects to anchorWidget (a
// page-relative position), then redistributes the result to all peers.
func (z *ZoomController) ApplyZoomPreservingFocus(newFactor float64, focalImage geometry.Point2D, anchorWidget geometry.Point2D, source int) {
	z.applyZoom(ClampZoom(newFactor), focalImage, anchorWidget, source)
}

// FitFactor computes the fit-to-window factor for an image in a viewport:
// the raw cover-both-axes scale clamped to the valid range, snapped to the
// nearest power of two. Returns the current factor for degenerate sizes.
func (z *ZoomController) FitFactor(imageW, imageH, pageW, pageH int) float64 {
	if imageW <= 0 || imageH <= 0 || pageW <= 0 || pageH <= 0 {
		return z.factor
	}
	raw := math.Min(float64(pageW)/float64(imageW), float64(pageH)/float64(imageH))
	return SnapZoomToPowerOfTwo(raw)
}

// FitToWindow applies the snapped fit factor for the source viewport,
// centered on the image middle, and returns it.
func (z *ZoomController) FitToWindow(source int) float64 {
	v := z.view(source)
	imgW, imgH := v.ImageSize()
	fit := z.FitFactor(imgW, imgH, v.PageExtent(Horizontal), v.PageExtent(Vertical))
	center := geometry.Point2D{X: float64(imgW) / 2, Y: float64(imgH) / 2}
	z.applyZoom(fit, center, z.pageCenter(v), source)
	return z.factor
}

// ToggleFitZoom switches between fit-to-window and the exact zoom and
// center that were in effect before fit mode was entered.
func (z *ZoomController) ToggleFitZoom(source int) {
	v := z.view(source)
	if z.fitActive && z.factor == z.fitFactor {
		z.fitActive = false
		z.applyZoom(z.prevFactor, z.prevCenter, z.pageCenter(v), source)
		return
	}
	z.prevFactor = z.factor
	z.prevCenter = v.VisibleCenter()
	z.fitFactor = z.FitToWindow(source)
	z.fitActive = true
}

// FitActive reports whether the controller is currently at the fit zoom.
func (z *ZoomController) FitActive() bool {
	return z.fitActive && z.factor == z.fitFactor
}

func (z *ZoomController) applyZoom(newFactor float64, focalImage geometry.Point2D, anchorWidget geometry.Point2D, source int) {
	changed := newFactor != z.factor
	z.factor = newFactor
	for _, v := range z.sync.Views() {
		v.SetZoom(newFactor)
	}
	if changed && z.fitActive && newFactor != z.fitFactor {
		// Manual zoom exits fit mode.
		z.fitActive = false
	}

	// Solve the scroll offset from the fixed focal point: the focal image
	// pixel must land back on the same page-relative position.
	v := z.view(source)
	offX := int(math.Round(focalImage.X*newFactor - anchorWidget.X))
	offY := int(math.Round(focalImage.Y*newFactor - anchorWidget.Y))
	v.SetOffset(Horizontal, offX)
	v.SetOffset(Vertical, offY)

	// Redistribute so peers recenter on the same ratio.
	z.sync.OnScroll(source, Horizontal, v.Offset(Horizontal))
	z.sync.OnScroll(source, Vertical, v.Offset(Vertical))

	if changed && z.OnZoomChanged != nil {
		z.OnZoomChanged(newFactor)
	}
}

func (z *ZoomController) pageCenter(v *Viewport) geometry.Point2D {
	return geometry.Point2D{
		X: float64(v.PageExtent(Horizontal)) / 2,
		Y: float64(v.PageExtent(Vertical)) / 2,
	}
}

func (z *ZoomController) view(index int) *Viewport {
	views := z.sync.Views()
	if index < 0 || index >= len(views) {
		panic("viewport: zoom source index out of range")
	}
	return views[index]
}
