package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntContains(t *testing.T) {
	r := NewRectInt(10, 20, 30, 40)

	assert.True(t, r.Contains(PointInt{X: 10, Y: 20}))
	assert.True(t, r.Contains(PointInt{X: 39, Y: 59}))
	assert.False(t, r.Contains(PointInt{X: 40, Y: 20}), "right edge is exclusive")
	assert.False(t, r.Contains(PointInt{X: 10, Y: 60}), "bottom edge is exclusive")
	assert.False(t, r.Contains(PointInt{X: 9, Y: 20}))
}

func TestRectIntClampInto(t *testing.T) {
	tests := []struct {
		name string
		rect RectInt
		w, h int
		want RectInt
	}{
		{"inside", NewRectInt(5, 5, 10, 10), 100, 100, NewRectInt(5, 5, 10, 10)},
		{"off left top", NewRectInt(-3, -7, 10, 10), 100, 100, NewRectInt(0, 0, 10, 10)},
		{"off right bottom", NewRectInt(95, 95, 10, 10), 100, 100, NewRectInt(90, 90, 10, 10)},
		{"larger than area", NewRectInt(10, 10, 200, 200), 100, 100, NewRectInt(0, 0, 200, 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rect.ClampInto(tt.w, tt.h))
		})
	}
}

func TestRectIntIntersect(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(5, 5, 10, 10)
	assert.Equal(t, NewRectInt(5, 5, 5, 5), a.Intersect(b))

	c := NewRectInt(20, 20, 5, 5)
	assert.True(t, a.Intersect(c).IsEmpty())
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 5, ClampInt(5, 0, 10))
	assert.Equal(t, 0, ClampInt(-3, 0, 10))
	assert.Equal(t, 10, ClampInt(42, 0, 10))
	assert.Equal(t, 3, ClampInt(7, 3, 1), "inverted range collapses to lo")
}
