package canvas

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixel-viewer/internal/viewport"
	"pixel-viewer/pkg/geometry"
)

// wheelZoomCanvas builds a canvas wired to its own zoom controller, the
// way the main window wires it.
func wheelZoomCanvas(t *testing.T, imageW, imageH, pageW, pageH int) *ImageCanvas {
	t.Helper()
	test.NewApp()

	ic := NewImageCanvas()
	ic.SetImage(image.NewRGBA(image.Rect(0, 0, imageW, imageH)))
	ic.Viewport().SetPageSize(pageW, pageH)

	sync := viewport.NewScrollSynchronizer(ic.Viewport())
	zc := viewport.NewZoomController(sync)
	ic.OnWheelZoom(func(dir viewport.ZoomDirection, focal geometry.PointInt) {
		zc.StepZoom(dir, &focal, 0)
		ic.SyncZoom()
	})
	return ic
}

func scrollAt(ic *ImageCanvas, x, y float32, dy float32) {
	ic.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Scrolled:   fyne.Delta{DY: dy},
	})
}

func TestWheelZoomKeepsPointerPixelWhenScrolled(t *testing.T) {
	ic := wheelZoomCanvas(t, 1000, 800, 500, 400)
	ic.Viewport().SetOffset(viewport.Horizontal, 100)

	cursor := geometry.PointInt{X: 200, Y: 150}
	before, ok := ic.Viewport().WidgetToImagePoint(cursor)
	require.True(t, ok)
	assert.Equal(t, geometry.PointInt{X: 300, Y: 150}, before)

	scrollAt(ic, 200, 150, 1)

	assert.Equal(t, 2.0, ic.Viewport().Zoom())
	// offset = round(300*2 - 200); the image pixel under the cursor must
	// not move.
	assert.Equal(t, 400, ic.Viewport().Offset(viewport.Horizontal))
	after, ok := ic.Viewport().WidgetToImagePoint(cursor)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestWheelZoomSequenceKeepsPointerPixel(t *testing.T) {
	ic := wheelZoomCanvas(t, 1000, 800, 500, 400)
	ic.Viewport().SetOffset(viewport.Horizontal, 150)
	ic.Viewport().SetOffset(viewport.Vertical, 50)

	cursor := geometry.PointInt{X: 120, Y: 80}
	before, ok := ic.Viewport().WidgetToImagePoint(cursor)
	require.True(t, ok)
	assert.Equal(t, geometry.PointInt{X: 270, Y: 130}, before)

	for i, dy := range []float32{1, 1, -1} {
		scrollAt(ic, 120, 80, dy)
		after, ok := ic.Viewport().WidgetToImagePoint(cursor)
		require.True(t, ok, "step %d", i)
		assert.Equal(t, before, after, "step %d", i)
	}
	assert.Equal(t, 2.0, ic.Viewport().Zoom())
}
