package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixel-viewer/pkg/geometry"
)

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0.001))
	assert.Equal(t, MaxZoom, ClampZoom(1000))
	assert.Equal(t, 2.0, ClampZoom(2.0))
}

func TestSnapZoomToPowerOfTwo(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.5, 0.5},
		{0.4, 0.5},
		{0.3, 0.25},
		{1.0, 1.0},
		{3.0, 4.0},
		{1.3, 1.0},
		{100.0, 64.0}, // clamped before snapping
		{0.001, MinZoom},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, SnapZoomToPowerOfTwo(tt.raw), 1e-12, "raw %v", tt.raw)
	}
}

func TestWidgetToImageClampsToValidPixel(t *testing.T) {
	p, ok := WidgetToImage(geometry.NewPointInt(250, 99), 2.0, 100, 50)
	assert.True(t, ok)
	assert.Equal(t, geometry.NewPointInt(99, 49), p)

	p, ok = WidgetToImage(geometry.NewPointInt(-10, -10), 2.0, 100, 50)
	assert.True(t, ok)
	assert.Equal(t, geometry.NewPointInt(0, 0), p)
}

func TestWidgetToImageEmptyImage(t *testing.T) {
	_, ok := WidgetToImage(geometry.NewPointInt(5, 5), 1.0, 0, 0)
	assert.False(t, ok)
}

func TestRectRoundTripAtIntegerZooms(t *testing.T) {
	rects := []geometry.RectInt{
		geometry.NewRectInt(0, 0, 1, 1),
		geometry.NewRectInt(100, 100, 200, 150),
		geometry.NewRectInt(7, 13, 31, 5),
		geometry.NewRectInt(999, 799, 1, 1),
	}
	for _, zoom := range []float64{1, 2, 4, 64} {
		for _, r := range rects {
			wr := ImageRectToWidget(r, zoom)
			got, ok := WidgetRectToImage(wr, zoom, 1000, 800)
			assert.True(t, ok)
			assert.Equal(t, r, got, "zoom %v rect %+v", zoom, r)
		}
	}
}

// At fractional zoom several image pixels share one widget pixel, so a
// single conversion may quantize; after that the mapping must be stable.
func TestRectRoundTripStableAtFractionalZoom(t *testing.T) {
	for _, zoom := range []float64{0.5, 0.25, MinZoom} {
		r := geometry.NewRectInt(103, 57, 211, 89)
		first, ok := WidgetRectToImage(ImageRectToWidget(r, zoom), zoom, 1000, 800)
		assert.True(t, ok)
		second, ok := WidgetRectToImage(ImageRectToWidget(first, zoom), zoom, 1000, 800)
		assert.True(t, ok)
		assert.Equal(t, first, second, "zoom %v", zoom)
	}
}

func TestImageRectToWidgetUsesExclusiveEdges(t *testing.T) {
	// Adjacent image rects must stay adjacent in widget space.
	left := geometry.NewRectInt(0, 0, 3, 3)
	right := geometry.NewRectInt(3, 0, 3, 3)
	zoom := 1.5
	wl := ImageRectToWidget(left, zoom)
	wr := ImageRectToWidget(right, zoom)
	assert.Equal(t, wl.Right(), wr.X)
}

func TestWidgetRectToImageClampsToBounds(t *testing.T) {
	r, ok := WidgetRectToImage(geometry.NewRectInt(-20, -20, 5000, 5000), 2.0, 100, 80)
	assert.True(t, ok)
	assert.Equal(t, geometry.NewRectInt(0, 0, 100, 80), r)

	_, ok = WidgetRectToImage(geometry.NewRectInt(0, 0, 10, 10), 1.0, 0, 10)
	assert.False(t, ok)
}
