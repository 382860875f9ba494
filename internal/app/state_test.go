package app

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixel-viewer/pkg/geometry"
)

func testImage(name string, w, h int) *Image {
	return NewImage(name, image.NewRGBA(image.Rect(0, 0, w, h)))
}

func TestAddImageMakesCurrent(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.Current())

	loaded := 0
	s.On(EventImageLoaded, func(interface{}) { loaded++ })

	s.AddImage(testImage("a.png", 10, 10))
	s.AddImage(testImage("b.png", 20, 20))

	assert.Equal(t, 2, loaded)
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, "b.png", s.Current().Name)
}

func TestSetCurrentValidatesIndex(t *testing.T) {
	s := NewState()
	s.AddImage(testImage("a.png", 10, 10))

	assert.Error(t, s.SetCurrent(3))
	require.NoError(t, s.SetCurrent(0))
	assert.Equal(t, "a.png", s.Current().Name)
}

func TestCloseImageAdjustsCurrent(t *testing.T) {
	s := NewState()
	s.AddImage(testImage("a.png", 10, 10))
	s.AddImage(testImage("b.png", 10, 10))

	require.NoError(t, s.CloseImage(1))
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 1, s.ImageCount())

	require.NoError(t, s.CloseImage(0))
	assert.Nil(t, s.Current())
}

func TestSetRoiEmitsAndCopies(t *testing.T) {
	s := NewState()
	var seen *geometry.RectInt
	s.On(EventRoiChanged, func(data interface{}) {
		seen, _ = data.(*geometry.RectInt)
	})

	roi := geometry.NewRectInt(1, 2, 3, 4)
	s.SetRoi(&roi)
	require.NotNil(t, seen)
	assert.Equal(t, roi, *seen)

	// The state keeps its own copy.
	roi.X = 99
	assert.Equal(t, 1, s.Roi.X)

	s.SetRoi(nil)
	assert.Nil(t, s.Roi)
}

func TestImageSize(t *testing.T) {
	img := testImage("a.png", 640, 480)
	w, h := img.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	var empty Image
	w, h = empty.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestRenderParams(t *testing.T) {
	p := DefaultRenderParams()
	assert.True(t, p.IsNeutral())
	p.Gain = 2.0
	assert.False(t, p.IsNeutral())
}
