// Package canvas provides the image canvas widget: a zoomed, scrolled view
// of one image with an editable selection rectangle drawn on top.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"pixel-viewer/internal/app"
	"pixel-viewer/internal/imageio"
	"pixel-viewer/internal/viewport"
	"pixel-viewer/pkg/geometry"
)

// ImageCanvas displays an image under a viewport model with a pointer-driven
// selection rectangle. Scrolling and zooming are owned by the viewport and
// the zoom controller; the widget mirrors their state and repaints.
type ImageCanvas struct {
	widget.BaseWidget

	src      *image.RGBA // decoded pixels
	rendered *image.RGBA // pixels after gain/bias
	params   app.RenderParams

	view   *viewport.Viewport
	editor *viewport.SelectionEditor
	raster *fynecanvas.Raster

	lastHover geometry.PointInt // content coords, for cursor shape

	// Callbacks
	onCursorMoved func(x, y int, inside bool)
	onWheelZoom   func(dir viewport.ZoomDirection, focalWidget geometry.PointInt)
	onPointerDown func()
}

// NewImageCanvas creates an empty canvas with its own viewport and editor.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		params: app.DefaultRenderParams(),
		view:   viewport.NewViewport(0, 0, 400, 300),
		editor: viewport.NewSelectionEditor(0, 0),
	}

	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels

	ic.view.OnScrolled = func() {
		ic.Refresh()
	}

	ic.ExtendBaseWidget(ic)
	return ic
}

// Viewport returns the scroll model backing this canvas.
func (ic *ImageCanvas) Viewport() *viewport.Viewport {
	return ic.view
}

// Editor returns the selection editor backing this canvas.
func (ic *ImageCanvas) Editor() *viewport.SelectionEditor {
	return ic.editor
}

// SetImage replaces the displayed image. A nil image clears the canvas.
func (ic *ImageCanvas) SetImage(img image.Image) {
	if img == nil {
		ic.src = nil
		ic.rendered = nil
		ic.view.SetImageSize(0, 0)
		ic.editor.SetImageSize(0, 0)
		ic.Refresh()
		return
	}

	ic.src = imageio.ToRGBA(img)
	ic.rendered = renderWithParams(ic.src, ic.params)

	b := ic.src.Bounds()
	ic.view.SetImageSize(b.Dx(), b.Dy())
	ic.editor.SetImageSize(b.Dx(), b.Dy())
	ic.Refresh()
}

// Image returns the displayed image, or nil.
func (ic *ImageCanvas) Image() image.Image {
	if ic.src == nil {
		return nil
	}
	return ic.src
}

// SetRenderParams re-renders the image with new gain/bias values.
func (ic *ImageCanvas) SetRenderParams(p app.RenderParams) {
	ic.params = p
	if ic.src != nil {
		ic.rendered = renderWithParams(ic.src, p)
	}
	ic.Refresh()
}

// RenderParams returns the current display parameters.
func (ic *ImageCanvas) RenderParams() app.RenderParams {
	return ic.params
}

// SyncZoom pulls the viewport's zoom factor into the editor and repaints.
// Call after the zoom controller changes the factor.
func (ic *ImageCanvas) SyncZoom() {
	ic.editor.SetZoom(ic.view.Zoom())
	ic.Refresh()
}

// OnCursorMoved sets a callback for pointer movement, reported in image
// coordinates. inside is false when the pointer is outside the image.
func (ic *ImageCanvas) OnCursorMoved(callback func(x, y int, inside bool)) {
	ic.onCursorMoved = callback
}

// OnWheelZoom sets a callback for wheel zoom requests. The focal point is
// page-relative, as ZoomController.StepZoom expects; the controller adds
// the scroll offsets itself.
func (ic *ImageCanvas) OnWheelZoom(callback func(dir viewport.ZoomDirection, focalWidget geometry.PointInt)) {
	ic.onWheelZoom = callback
}

// Refresh repaints the canvas.
func (ic *ImageCanvas) Refresh() {
	if ic.raster != nil {
		ic.raster.Refresh()
	}
	ic.BaseWidget.Refresh()
}

// contentPos converts a widget-relative event position to content
// coordinates by adding the scroll offsets.
func (ic *ImageCanvas) contentPos(pos fyne.Position) geometry.PointInt {
	return geometry.PointInt{
		X: int(pos.X) + ic.view.Offset(viewport.Horizontal),
		Y: int(pos.Y) + ic.view.Offset(viewport.Vertical),
	}
}

func mapButton(b desktop.MouseButton) viewport.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return viewport.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return viewport.ButtonSecondary
	}
	return viewport.ButtonNone
}

// OnPointerDown sets a callback fired on any button press, before the
// event reaches the selection editor. Used for tile activation.
func (ic *ImageCanvas) OnPointerDown(callback func()) {
	ic.onPointerDown = callback
}

// MouseDown implements desktop.Mouseable.
func (ic *ImageCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ic.onPointerDown != nil {
		ic.onPointerDown()
	}
	handled := ic.editor.Handle(viewport.PointerEvent{
		Kind:   viewport.PointerDown,
		Button: mapButton(ev.Button),
		Pos:    ic.contentPos(ev.Position),
	})
	if handled {
		ic.Refresh()
	}
}

// MouseUp implements desktop.Mouseable.
func (ic *ImageCanvas) MouseUp(ev *desktop.MouseEvent) {
	handled := ic.editor.Handle(viewport.PointerEvent{
		Kind:   viewport.PointerUp,
		Button: mapButton(ev.Button),
		Pos:    ic.contentPos(ev.Position),
	})
	if handled {
		ic.Refresh()
	}
}

// MouseIn implements desktop.Hoverable.
func (ic *ImageCanvas) MouseIn(ev *desktop.MouseEvent) {
	ic.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (ic *ImageCanvas) MouseMoved(ev *desktop.MouseEvent) {
	content := ic.contentPos(ev.Position)
	ic.lastHover = content

	handled := ic.editor.Handle(viewport.PointerEvent{
		Kind:   viewport.PointerMove,
		Button: mapButton(ev.Button),
		Pos:    content,
	})
	if handled {
		ic.Refresh()
	}

	if ic.onCursorMoved != nil {
		if p, ok := ic.view.WidgetToImagePoint(geometry.PointInt{X: int(ev.Position.X), Y: int(ev.Position.Y)}); ok {
			ic.onCursorMoved(p.X, p.Y, true)
		} else {
			ic.onCursorMoved(0, 0, false)
		}
	}
}

// MouseOut implements desktop.Hoverable.
func (ic *ImageCanvas) MouseOut() {
	if ic.onCursorMoved != nil {
		ic.onCursorMoved(0, 0, false)
	}
}

// Scrolled implements fyne.Scrollable. The wheel zooms about the pointer.
func (ic *ImageCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ic.onWheelZoom == nil {
		return
	}
	dir := viewport.ZoomOut
	if ev.Scrolled.DY > 0 {
		dir = viewport.ZoomIn
	}
	ic.onWheelZoom(dir, geometry.PointInt{X: int(ev.Position.X), Y: int(ev.Position.Y)})
}

// Cursor implements desktop.Cursorable: resize arrows over the grab zones,
// a pointer over the selection interior.
func (ic *ImageCanvas) Cursor() desktop.Cursor {
	switch ic.editor.HandleAt(ic.lastHover) {
	case viewport.HandleLeft, viewport.HandleRight:
		return desktop.HResizeCursor
	case viewport.HandleTop, viewport.HandleBottom:
		return desktop.VResizeCursor
	case viewport.HandleTopLeft, viewport.HandleTopRight,
		viewport.HandleBottomLeft, viewport.HandleBottomRight:
		return desktop.CrosshairCursor
	}
	if wr, ok := ic.editor.WidgetROI(); ok && wr.Contains(ic.lastHover) {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &imageCanvasRenderer{canvas: ic}
}

// draw is the raster drawing function. It paints the visible slice of the
// zoomed image plus the selection overlay.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Opaque dark background
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = 24
		output.Pix[i+1] = 24
		output.Pix[i+2] = 24
		output.Pix[i+3] = 255
	}

	if ic.rendered == nil {
		return output
	}

	offX := ic.view.Offset(viewport.Horizontal)
	offY := ic.view.Offset(viewport.Vertical)
	contentW := ic.view.ContentExtent(viewport.Horizontal)
	contentH := ic.view.ContentExtent(viewport.Vertical)

	// Place the full content rectangle relative to the scroll offsets;
	// Scale clips to the output bounds.
	dr := image.Rect(-offX, -offY, contentW-offX, contentH-offY)
	xdraw.NearestNeighbor.Scale(output, dr, ic.rendered, ic.rendered.Bounds(), xdraw.Src, nil)

	if wr, ok := ic.editor.WidgetROI(); ok {
		drawSelection(output, wr.Translate(-offX, -offY), ic.editor.Editable())
	}

	return output
}

// renderWithParams applies gain and bias per channel, clamped to 8 bits.
func renderWithParams(src *image.RGBA, p app.RenderParams) *image.RGBA {
	if p.IsNeutral() {
		return src
	}

	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := p.Gain*float64(out.Pix[i+c]) + p.Bias
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out.Pix[i+c] = uint8(v)
		}
	}
	return out
}

type imageCanvasRenderer struct {
	canvas *ImageCanvas
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	r.canvas.view.SetPageSize(int(size.Width), int(size.Height))
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *imageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *imageCanvasRenderer) Destroy() {}
