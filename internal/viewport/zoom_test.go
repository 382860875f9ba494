package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixel-viewer/pkg/geometry"
)

func newSingleView(imageW, imageH, pageW, pageH int) (*ZoomController, *Viewport) {
	v := NewViewport(imageW, imageH, pageW, pageH)
	sync := NewScrollSynchronizer(v)
	return NewZoomController(sync), v
}

func TestStepZoomDoublesAndHalves(t *testing.T) {
	z, _ := newSingleView(1000, 800, 500, 400)

	assert.Equal(t, 2.0, z.StepZoom(ZoomIn, nil, 0))
	assert.Equal(t, 4.0, z.StepZoom(ZoomIn, nil, 0))
	assert.Equal(t, 2.0, z.StepZoom(ZoomOut, nil, 0))
	assert.Equal(t, 1.0, z.StepZoom(ZoomOut, nil, 0))
}

func TestStepZoomOutInReturnsToStart(t *testing.T) {
	z, _ := newSingleView(1000, 800, 500, 400)
	start := z.Factor()

	z.StepZoom(ZoomOut, nil, 0)
	z.StepZoom(ZoomOut, nil, 0)
	z.StepZoom(ZoomIn, nil, 0)
	z.StepZoom(ZoomIn, nil, 0)

	assert.Equal(t, start, z.Factor())
}

func TestStepZoomClampsAtLimits(t *testing.T) {
	z, _ := newSingleView(1000, 800, 500, 400)

	for i := 0; i < 20; i++ {
		z.StepZoom(ZoomIn, nil, 0)
	}
	assert.Equal(t, MaxZoom, z.Factor())

	for i := 0; i < 40; i++ {
		z.StepZoom(ZoomOut, nil, 0)
	}
	assert.Equal(t, MinZoom, z.Factor())
}

func TestStepZoomPreservesFocalPoint(t *testing.T) {
	z, v := newSingleView(1000, 800, 500, 400)
	v.SetOffset(Horizontal, 100)
	v.SetOffset(Vertical, 80)

	// The pointer sits at page position (200, 150): image pixel (300, 230).
	focal := geometry.NewPointInt(200, 150)
	z.StepZoom(ZoomIn, &focal, 0)

	// At zoom 2 that pixel is at content (600, 460); it must still be at
	// page position (200, 150).
	assert.Equal(t, 400, v.Offset(Horizontal))
	assert.Equal(t, 310, v.Offset(Vertical))
}

func TestStepZoomDefaultsToViewportCenter(t *testing.T) {
	z, v := newSingleView(2000, 2000, 500, 400)
	v.SetOffset(Horizontal, 250)
	v.SetOffset(Vertical, 300)
	center := v.VisibleCenter()

	z.StepZoom(ZoomIn, nil, 0)

	after := v.VisibleCenter()
	assert.InDelta(t, center.X, after.X, 1.0)
	assert.InDelta(t, center.Y, after.Y, 1.0)
}

func TestFitFactorSnapsToPowerOfTwo(t *testing.T) {
	z, _ := newSingleView(1000, 800, 500, 400)

	// 500/1000 = 0.5 and 400/800 = 0.5: already a power of two.
	assert.Equal(t, 0.5, z.FitFactor(1000, 800, 500, 400))

	// 500/1200 ~ 0.417 -> snaps to 0.5.
	assert.Equal(t, 0.5, z.FitFactor(1200, 800, 500, 400))

	// Degenerate sizes leave the factor alone.
	assert.Equal(t, z.Factor(), z.FitFactor(0, 0, 500, 400))
}

func TestFitToWindowAppliesSnappedFactor(t *testing.T) {
	z, v := newSingleView(1000, 800, 500, 400)

	got := z.FitToWindow(0)
	assert.Equal(t, 0.5, got)
	assert.Equal(t, 0.5, v.Zoom())
}

func TestToggleFitZoomRestoresExactState(t *testing.T) {
	z, v := newSingleView(4000, 3000, 500, 400)
	z.StepZoom(ZoomIn, nil, 0) // 2x
	v.SetOffset(Horizontal, 1234)
	v.SetOffset(Vertical, 987)
	wantFactor := z.Factor()
	wantCenter := v.VisibleCenter()

	z.ToggleFitZoom(0)
	assert.True(t, z.FitActive())
	assert.NotEqual(t, wantFactor, z.Factor())

	z.ToggleFitZoom(0)
	assert.False(t, z.FitActive())
	assert.Equal(t, wantFactor, z.Factor())
	after := v.VisibleCenter()
	assert.InDelta(t, wantCenter.X, after.X, 1.0)
	assert.InDelta(t, wantCenter.Y, after.Y, 1.0)
}

func TestManualZoomExitsFitMode(t *testing.T) {
	z, _ := newSingleView(4000, 3000, 500, 400)

	z.ToggleFitZoom(0)
	assert.True(t, z.FitActive())

	z.StepZoom(ZoomIn, nil, 0)
	assert.False(t, z.FitActive())
}

func TestSharedZoomAppliesToAllViews(t *testing.T) {
	a := NewViewport(1000, 800, 500, 400)
	b := NewViewport(600, 600, 300, 300)
	sync := NewScrollSynchronizer(a, b)
	z := NewZoomController(sync)

	z.StepZoom(ZoomIn, nil, 0)
	assert.Equal(t, 2.0, a.Zoom())
	assert.Equal(t, 2.0, b.Zoom())
}

func TestZoomChangedCallback(t *testing.T) {
	z, _ := newSingleView(1000, 800, 500, 400)
	var got []float64
	z.OnZoomChanged = func(f float64) { got = append(got, f) }

	z.StepZoom(ZoomIn, nil, 0)
	z.StepZoom(ZoomIn, nil, 0)
	assert.Equal(t, []float64{2.0, 4.0}, got)
}

// End-to-end factor sequence: 1000x800 image, two zoom-in steps, then a
// fit against a 500x400 viewport snapping to a power of two.
func TestZoomScenario(t *testing.T) {
	z, _ := newSingleView(1000, 800, 500, 400)

	z.StepZoom(ZoomIn, nil, 0)
	z.StepZoom(ZoomIn, nil, 0)
	assert.Equal(t, 4.0, z.Factor())

	assert.Equal(t, 0.5, z.FitToWindow(0))
}
