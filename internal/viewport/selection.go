package viewport

import (
	"pixel-viewer/pkg/geometry"
)

// EditState identifies what the selection editor is currently doing.
type EditState int

const (
	StateIdle EditState = iota
	StateCreating
	StateMoving
	StateResizing
)

// EdgeHandle identifies a grab zone on the ROI rectangle.
type EdgeHandle int

const (
	HandleNone EdgeHandle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleLeft
	HandleRight
	HandleTop
	HandleBottom
)

// PointerKind identifies the kind of pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// Button identifies the pointer button associated with an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

// PointerEvent is the single input type the selection editor consumes.
// Positions are in widget coordinates.
type PointerEvent struct {
	Kind   PointerKind
	Button Button
	Pos    geometry.PointInt
}

// EdgeGrabDistance is the default distance in widget pixels at which an
// edge or corner grab zone activates. For small rectangles it shrinks to a
// third of the smaller dimension so an interior always remains for moving.
const EdgeGrabDistance = 8

// SelectionEditor owns one optional ROI rectangle and mutates it in
// response to pointer events:
//
//   - primary drag on empty space creates a new pixel-aligned ROI
//   - primary drag on an edge or corner resizes it
//   - secondary drag inside it moves it
//
// The canonical rectangle is kept in image coordinates; the widget-space
// rectangle is a projection recomputed whenever the ROI or zoom changes.
// OnChanged fires with the image-space rectangle on every mutation.
type SelectionEditor struct {
	imageW, imageH int
	zoom           float64

	state  EditState
	handle EdgeHandle

	// Drag bookkeeping, all in image coordinates.
	anchor   geometry.PointInt
	origRect geometry.RectInt

	roi       *geometry.RectInt
	editable  bool
	OnChanged func(roi *geometry.RectInt)
}

// NewSelectionEditor creates an editor for an image of the given size.
func NewSelectionEditor(imageW, imageH int) *SelectionEditor {
	return &SelectionEditor{
		imageW:   imageW,
		imageH:   imageH,
		zoom:     1.0,
		editable: true,
	}
}

// SetImageSize updates the hosted image dimensions. The ROI is not carried
// over to a differently sized image.
func (e *SelectionEditor) SetImageSize(w, h int) {
	if w == e.imageW && h == e.imageH {
		return
	}
	e.imageW = w
	e.imageH = h
	e.Clear()
}

// SetZoom updates the zoom factor used for widget/image conversions.
func (e *SelectionEditor) SetZoom(zoom float64) {
	e.zoom = ClampZoom(zoom)
}

// SetEditable controls whether pointer-down events are accepted. Inactive
// tiles in a comparison grid keep their ROI visible but reject edits.
func (e *SelectionEditor) SetEditable(editable bool) {
	e.editable = editable
	if !editable {
		e.state = StateIdle
		e.handle = HandleNone
	}
}

// Editable reports whether the editor accepts new pointer interactions.
func (e *SelectionEditor) Editable() bool {
	return e.editable
}

// State returns the current edit state.
func (e *SelectionEditor) State() EditState {
	return e.state
}

// ROI returns the current rectangle in image coordinates, or nil.
func (e *SelectionEditor) ROI() *geometry.RectInt {
	return e.roi
}

// WidgetROI returns the projection of the ROI into widget space and
// whether an ROI exists.
func (e *SelectionEditor) WidgetROI() (geometry.RectInt, bool) {
	if e.roi == nil {
		return geometry.RectInt{}, false
	}
	return ImageRectToWidget(*e.roi, e.zoom), true
}

// SetROI replaces the rectangle without emitting a change event. Used when
// a coordinator pushes the shared ROI to a peer tile.
func (e *SelectionEditor) SetROI(roi *geometry.RectInt) {
	if roi == nil {
		e.roi = nil
		return
	}
	r := *roi
	e.roi = &r
}

// SelectAll sets the ROI to the full image and emits a change event.
func (e *SelectionEditor) SelectAll() {
	if e.imageW <= 0 || e.imageH <= 0 {
		return
	}
	r := geometry.NewRectInt(0, 0, e.imageW, e.imageH)
	e.roi = &r
	e.emit()
}

// Clear discards the rectangle from any state and emits a change event.
func (e *SelectionEditor) Clear() {
	e.state = StateIdle
	e.handle = HandleNone
	if e.roi == nil {
		return
	}
	e.roi = nil
	e.emit()
}

// Handle feeds one pointer event through the state machine. It returns
// true if the event was consumed (the host should repaint).
func (e *SelectionEditor) Handle(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		return e.pointerDown(ev)
	case PointerMove:
		return e.pointerMove(ev)
	case PointerUp:
		return e.pointerUp(ev)
	}
	return false
}

func (e *SelectionEditor) pointerDown(ev PointerEvent) bool {
	if !e.editable || e.state != StateIdle {
		return false
	}
	img, ok := WidgetToImage(ev.Pos, e.zoom, e.imageW, e.imageH)
	if !ok {
		return false
	}

	switch ev.Button {
	case ButtonPrimary:
		if h := e.HandleAt(ev.Pos); h != HandleNone {
			e.state = StateResizing
			e.handle = h
			e.anchor = img
			e.origRect = *e.roi
			return true
		}
		e.state = StateCreating
		e.anchor = img
		r := geometry.NewRectInt(img.X, img.Y, 1, 1)
		e.roi = &r
		e.emit()
		return true

	case ButtonSecondary:
		wr, ok := e.WidgetROI()
		if ok && wr.Contains(ev.Pos) && e.HandleAt(ev.Pos) == HandleNone {
			e.state = StateMoving
			e.anchor = img
			e.origRect = *e.roi
			return true
		}
	}
	return false
}

func (e *SelectionEditor) pointerMove(ev PointerEvent) bool {
	if e.state == StateIdle {
		return false
	}
	img, ok := WidgetToImage(ev.Pos, e.zoom, e.imageW, e.imageH)
	if !ok {
		return false
	}

	switch e.state {
	case StateCreating:
		e.applyCreate(img)
	case StateMoving:
		e.applyMove(img)
	case StateResizing:
		e.applyResize(img)
	}
	e.emit()
	return true
}

func (e *SelectionEditor) pointerUp(ev PointerEvent) bool {
	switch e.state {
	case StateCreating:
		if ev.Button != ButtonPrimary {
			return false
		}
		if img, ok := WidgetToImage(ev.Pos, e.zoom, e.imageW, e.imageH); ok {
			e.applyCreate(img)
		}
		e.state = StateIdle
		e.emit()
		return true

	case StateResizing:
		if ev.Button != ButtonPrimary {
			return false
		}
		e.state = StateIdle
		e.handle = HandleNone
		e.emit()
		return true

	case StateMoving:
		if ev.Button != ButtonSecondary {
			return false
		}
		e.state = StateIdle
		e.emit()
		return true
	}
	return false
}

// applyCreate recomputes the ROI as the bounding box of the drag anchor
// and the current pointer, both in image space, with a minimum size of 1.
func (e *SelectionEditor) applyCreate(cur geometry.PointInt) {
	x0, x1 := e.anchor.X, cur.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := e.anchor.Y, cur.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	w := x1 - x0
	h := y1 - y0
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	// Both points are clamped to valid pixels, so the box can only poke one
	// pixel past the far edge through the minimum size; pull it back in.
	r := geometry.NewRectInt(x0, y0, w, h).ClampInto(e.imageW, e.imageH)
	e.roi = &r
}

// applyMove translates the original rectangle by the image-space drag
// delta, clamped so the rectangle stays fully inside the image. The size
// never changes while moving.
func (e *SelectionEditor) applyMove(cur geometry.PointInt) {
	d := cur.Sub(e.anchor)
	r := e.origRect.Translate(d.X, d.Y).ClampInto(e.imageW, e.imageH)
	e.roi = &r
}

// applyResize holds the non-grabbed edges fixed and moves the grabbed
// edge(s) to the clamped pointer coordinate. Corners move two edges at
// once. A minimum size of 1 is enforced on every recompute.
func (e *SelectionEditor) applyResize(cur geometry.PointInt) {
	orig := e.origRect
	left, top := orig.X, orig.Y
	right, bottom := orig.Right(), orig.Bottom()

	switch e.handle {
	case HandleLeft, HandleTopLeft, HandleBottomLeft:
		left = geometry.ClampInt(cur.X, 0, right-1)
	case HandleRight, HandleTopRight, HandleBottomRight:
		right = geometry.ClampInt(cur.X+1, left+1, e.imageW)
	}
	switch e.handle {
	case HandleTop, HandleTopLeft, HandleTopRight:
		top = geometry.ClampInt(cur.Y, 0, bottom-1)
	case HandleBottom, HandleBottomLeft, HandleBottomRight:
		bottom = geometry.ClampInt(cur.Y+1, top+1, e.imageH)
	}

	r := geometry.NewRectInt(left, top, right-left, bottom-top)
	e.roi = &r
}

// HandleAt returns the grab zone under a widget-space point, or
// HandleNone. Corners take priority over edges. This is also the hover
// hit test the host uses for cursor shape feedback; it has no side
// effects.
func (e *SelectionEditor) HandleAt(pos geometry.PointInt) EdgeHandle {
	wr, ok := e.WidgetROI()
	if !ok {
		return HandleNone
	}

	dist := EdgeGrabDistance
	minDim := wr.Width
	if wr.Height < minDim {
		minDim = wr.Height
	}
	if minDim < dist*2 {
		dist = minDim / 3
		if dist < 1 {
			dist = 1
		}
	}

	left, top := wr.X, wr.Y
	right, bottom := wr.Right()-1, wr.Bottom()-1

	onLeft := abs(pos.X-left) <= dist
	onRight := abs(pos.X-right) <= dist
	onTop := abs(pos.Y-top) <= dist
	onBottom := abs(pos.Y-bottom) <= dist
	inX := pos.X >= left && pos.X <= right
	inY := pos.Y >= top && pos.Y <= bottom

	switch {
	case onLeft && onTop:
		return HandleTopLeft
	case onRight && onTop:
		return HandleTopRight
	case onLeft && onBottom:
		return HandleBottomLeft
	case onRight && onBottom:
		return HandleBottomRight
	case onLeft && inY:
		return HandleLeft
	case onRight && inY:
		return HandleRight
	case onTop && inX:
		return HandleTop
	case onBottom && inX:
		return HandleBottom
	}
	return HandleNone
}

func (e *SelectionEditor) emit() {
	if e.OnChanged != nil {
		e.OnChanged(e.roi)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
