// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPointInt creates a new PointInt.
func NewPointInt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Add returns the sum of two points.
func (p PointInt) Add(other PointInt) PointInt {
	return PointInt{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p PointInt) Sub(other PointInt) PointInt {
	return PointInt{X: p.X - other.X, Y: p.Y - other.Y}
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// RectInt represents an axis-aligned rectangle with integer pixel
// coordinates. Width and Height are exclusive extents: the rectangle
// covers pixels [X, X+Width) x [Y, Y+Height).
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// IsEmpty returns true if the rectangle has no area.
func (r RectInt) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive right edge (X + Width).
func (r RectInt) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge (Y + Height).
func (r RectInt) Bottom() int {
	return r.Y + r.Height
}

// Contains returns true if the point is inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// Translate returns the rectangle moved by (dx, dy).
func (r RectInt) Translate(dx, dy int) RectInt {
	return RectInt{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// ClampInto returns the rectangle translated so it lies fully inside a
// width x height area. The size is preserved; a rectangle larger than the
// area is pinned to the origin.
func (r RectInt) ClampInto(width, height int) RectInt {
	x := ClampInt(r.X, 0, width-r.Width)
	y := ClampInt(r.Y, 0, height-r.Height)
	return RectInt{X: x, Y: y, Width: r.Width, Height: r.Height}
}

// Intersect returns the overlapping region of two rectangles, with zero
// size if they do not overlap.
func (r RectInt) Intersect(other RectInt) RectInt {
	x := maxInt(r.X, other.X)
	y := maxInt(r.Y, other.Y)
	right := minInt(r.Right(), other.Right())
	bottom := minInt(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return RectInt{}
	}
	return RectInt{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// ClampInt limits v to [lo, hi]. If hi < lo the result is lo.
func ClampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Size represents a 2D size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewSize creates a new Size.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
