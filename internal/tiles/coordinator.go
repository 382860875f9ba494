// Package tiles coordinates a grid of viewer tiles comparing several
// images side by side: one active tile owns ROI editing rights, and a
// single canonical ROI rectangle is shared by all tiles for painting.
package tiles

import (
	"fmt"

	"pixel-viewer/internal/app"
	"pixel-viewer/pkg/geometry"
)

// Tile is one cell in the comparison grid. The coordinator pushes the
// shared ROI, active-state visuals, and image rebinding through this
// interface; ui/compare implements it on top of the canvas widget.
type Tile interface {
	// SetImage rebinds the displayed image (with its render parameters)
	// without touching the tile's zoom, scroll, or ROI state.
	SetImage(img *app.Image)
	Image() *app.Image

	// SetROI shows the shared rectangle; editable is true only on the
	// active tile.
	SetROI(roi *geometry.RectInt, editable bool)

	// SetActive updates the tile's visual active state.
	SetActive(active bool)
}

// Coordinator owns the active tile index and the canonical image-space
// ROI for a tile grid.
type Coordinator struct {
	tiles  []Tile
	active int
	roi    *geometry.RectInt

	// OnRoiChanged fires when the canonical ROI changes, for downstream
	// analysis consumers.
	OnRoiChanged func(roi *geometry.RectInt)
}

// NewCoordinator creates a coordinator over the given tiles with tile 0
// active. At least one tile is required.
func NewCoordinator(tiles []Tile) *Coordinator {
	if len(tiles) == 0 {
		panic("tiles: coordinator requires at least one tile")
	}
	c := &Coordinator{tiles: tiles}
	c.applyActiveState()
	return c
}

// TileCount returns the number of tiles in the grid.
func (c *Coordinator) TileCount() int {
	return len(c.tiles)
}

// ActiveIndex returns the index of the tile that owns editing rights.
func (c *Coordinator) ActiveIndex() int {
	return c.active
}

// ROI returns the canonical rectangle, or nil.
func (c *Coordinator) ROI() *geometry.RectInt {
	return c.roi
}

// SetActive revokes editing rights from the previous tile, grants them to
// tile i, and re-broadcasts the ROI so the visuals follow.
func (c *Coordinator) SetActive(i int) {
	c.checkIndex(i)
	if i == c.active {
		return
	}
	c.active = i
	c.applyActiveState()
}

// RoiChangedFromActiveTile stores the rectangle reported by the active
// tile as canonical and broadcasts it to the peers for painting.
func (c *Coordinator) RoiChangedFromActiveTile(roi *geometry.RectInt) {
	if roi == nil {
		c.roi = nil
	} else {
		r := *roi
		c.roi = &r
	}
	for i, t := range c.tiles {
		if i == c.active {
			// The active tile already holds this rectangle; pushing it back
			// would disturb an in-progress drag.
			continue
		}
		t.SetROI(c.roi, false)
	}
	if c.OnRoiChanged != nil {
		c.OnRoiChanged(c.roi)
	}
}

// ClearROI discards the shared rectangle on every tile.
func (c *Coordinator) ClearROI() {
	c.roi = nil
	for i, t := range c.tiles {
		t.SetROI(nil, i == c.active)
	}
	if c.OnRoiChanged != nil {
		c.OnRoiChanged(nil)
	}
}

// RotateForward cyclically shifts the images one tile to the right. The
// tiles themselves keep their zoom, scroll, and ROI state; the active
// index follows its image.
func (c *Coordinator) RotateForward() {
	n := len(c.tiles)
	if n < 2 {
		return
	}
	imgs := c.collectImages()
	for i, t := range c.tiles {
		t.SetImage(imgs[(i-1+n)%n])
	}
	c.active = (c.active + 1) % n
	c.applyActiveState()
}

// RotateBackward cyclically shifts the images one tile to the left.
func (c *Coordinator) RotateBackward() {
	n := len(c.tiles)
	if n < 2 {
		return
	}
	imgs := c.collectImages()
	for i, t := range c.tiles {
		t.SetImage(imgs[(i+1)%n])
	}
	c.active = (c.active - 1 + n) % n
	c.applyActiveState()
}

// Swap exchanges the images (and their render parameters) bound to tiles
// i and j.
func (c *Coordinator) Swap(i, j int) {
	c.checkIndex(i)
	c.checkIndex(j)
	if i == j {
		return
	}
	a, b := c.tiles[i].Image(), c.tiles[j].Image()
	c.tiles[i].SetImage(b)
	c.tiles[j].SetImage(a)
	// Rebinding to a different image size clears a tile's local rectangle;
	// push the canonical one back.
	c.tiles[i].SetROI(c.roi, i == c.active)
	c.tiles[j].SetROI(c.roi, j == c.active)
}

// SwapWithNext swaps the active tile's image with the next tile and
// follows it.
func (c *Coordinator) SwapWithNext() {
	n := len(c.tiles)
	if n < 2 {
		return
	}
	next := (c.active + 1) % n
	c.Swap(c.active, next)
	c.SetActive(next)
}

// SwapWithPrevious swaps the active tile's image with the previous tile
// and follows it.
func (c *Coordinator) SwapWithPrevious() {
	n := len(c.tiles)
	if n < 2 {
		return
	}
	prev := (c.active - 1 + n) % n
	c.Swap(c.active, prev)
	c.SetActive(prev)
}

func (c *Coordinator) collectImages() []*app.Image {
	imgs := make([]*app.Image, len(c.tiles))
	for i, t := range c.tiles {
		imgs[i] = t.Image()
	}
	return imgs
}

func (c *Coordinator) applyActiveState() {
	for i, t := range c.tiles {
		active := i == c.active
		t.SetActive(active)
		t.SetROI(c.roi, active)
	}
}

// checkIndex panics on an out-of-range tile index: that is a coordination
// bug in the caller, not a user error.
func (c *Coordinator) checkIndex(i int) {
	if i < 0 || i >= len(c.tiles) {
		panic(fmt.Sprintf("tiles: index %d out of range [0,%d)", i, len(c.tiles)))
	}
}
