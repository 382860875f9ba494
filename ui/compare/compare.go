// Package compare provides the multi-image comparison window: a grid of
// tiles with synchronized scrolling and zoom and one shared selection.
package compare

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pixel-viewer/internal/app"
	"pixel-viewer/internal/tiles"
	"pixel-viewer/internal/viewport"
	"pixel-viewer/pkg/colorutil"
	"pixel-viewer/pkg/geometry"
	"pixel-viewer/ui/canvas"
)

// arrowStep is the keyboard scroll distance in widget pixels.
const arrowStep = 50

// Window is the comparison window.
type Window struct {
	fyne.Window

	state *app.State
	tiles []*tile
	coord *tiles.Coordinator
	sync  *viewport.ScrollSynchronizer
	zoom  *viewport.ZoomController
}

// tile is one grid cell: an image canvas with a name label and an
// active-state border. It implements tiles.Tile.
type tile struct {
	img    *app.Image
	canvas *canvas.ImageCanvas
	name   *widget.Label
	border *fynecanvas.Rectangle
	box    fyne.CanvasObject
}

func newTile() *tile {
	t := &tile{
		canvas: canvas.NewImageCanvas(),
		name:   widget.NewLabel(""),
	}
	t.name.Alignment = fyne.TextAlignCenter

	t.border = fynecanvas.NewRectangle(color.Transparent)
	t.border.StrokeWidth = 2
	t.border.StrokeColor = color.Transparent

	t.box = container.NewBorder(t.name, nil, nil, nil,
		container.NewStack(t.canvas, t.border))
	return t
}

// SetImage implements tiles.Tile. Rebinding must not report ROI changes:
// a size change clears the editor's rectangle, and the coordinator
// re-pushes the canonical one afterwards.
func (t *tile) SetImage(img *app.Image) {
	t.img = img

	ed := t.canvas.Editor()
	saved := ed.OnChanged
	ed.OnChanged = nil
	defer func() { ed.OnChanged = saved }()

	if img == nil {
		t.canvas.SetImage(nil)
		t.name.SetText("")
		return
	}
	t.canvas.SetImage(img.Data)
	t.canvas.SetRenderParams(img.Params)
	t.name.SetText(img.Name)
}

// Image implements tiles.Tile.
func (t *tile) Image() *app.Image {
	return t.img
}

// SetROI implements tiles.Tile.
func (t *tile) SetROI(roi *geometry.RectInt, editable bool) {
	t.canvas.Editor().SetROI(roi)
	t.canvas.Editor().SetEditable(editable)
	t.canvas.Refresh()
}

// SetActive implements tiles.Tile.
func (t *tile) SetActive(active bool) {
	if active {
		t.border.StrokeColor = colorutil.Green
	} else {
		t.border.StrokeColor = color.Transparent
	}
	t.border.Refresh()
}

// New builds a comparison window over the given images, cols tiles wide.
func New(fyneApp fyne.App, state *app.State, images []*app.Image, cols int) *Window {
	win := fyneApp.NewWindow("Compare")

	cw := &Window{
		Window: win,
		state:  state,
	}

	views := make([]*viewport.Viewport, len(images))
	cells := make([]fyne.CanvasObject, len(images))
	tileIfaces := make([]tiles.Tile, len(images))
	for i := range images {
		t := newTile()
		t.SetImage(images[i])
		cw.tiles = append(cw.tiles, t)
		views[i] = t.canvas.Viewport()
		cells[i] = t.box
		tileIfaces[i] = t
	}

	cw.sync = viewport.NewScrollSynchronizer(views...)
	cw.zoom = viewport.NewZoomController(cw.sync)
	cw.coord = tiles.NewCoordinator(tileIfaces)

	for i, t := range cw.tiles {
		cw.wireTile(i, t)
	}
	cw.coord.SetActive(0)

	if cols < 1 {
		cols = 1
	}
	win.SetContent(container.NewGridWithColumns(cols, cells...))
	win.Resize(fyne.NewSize(1200, 800))

	win.Canvas().SetOnTypedKey(cw.typedKey)
	win.Canvas().SetOnTypedRune(cw.typedRune)

	return cw
}

// Coordinator exposes the tile coordinator, mainly for tests and for the
// main window to push ROI updates.
func (cw *Window) Coordinator() *tiles.Coordinator {
	return cw.coord
}

func (cw *Window) wireTile(i int, t *tile) {
	t.canvas.OnPointerDown(func() {
		if cw.coord.ActiveIndex() != i {
			cw.coord.SetActive(i)
		}
	})

	t.canvas.OnWheelZoom(func(dir viewport.ZoomDirection, focal geometry.PointInt) {
		cw.zoom.StepZoom(dir, &focal, i)
		cw.refreshAll()
	})

	t.canvas.Editor().OnChanged = func(roi *geometry.RectInt) {
		// Only the active tile may mutate the canonical rectangle.
		if cw.coord.ActiveIndex() != i {
			return
		}
		cw.coord.RoiChangedFromActiveTile(roi)
		cw.state.SetRoi(roi)
	}
}

// refreshAll pulls viewport zoom into every editor and repaints.
func (cw *Window) refreshAll() {
	for _, t := range cw.tiles {
		t.canvas.SyncZoom()
	}
}

func (cw *Window) typedKey(ev *fyne.KeyEvent) {
	active := cw.coord.ActiveIndex()
	switch ev.Name {
	case fyne.KeyLeft:
		cw.sync.ScrollByDelta(active, -arrowStep, 0)
	case fyne.KeyRight:
		cw.sync.ScrollByDelta(active, arrowStep, 0)
	case fyne.KeyUp:
		cw.sync.ScrollByDelta(active, 0, -arrowStep)
	case fyne.KeyDown:
		cw.sync.ScrollByDelta(active, 0, arrowStep)
	case fyne.KeyTab:
		cw.coord.SetActive((active + 1) % cw.coord.TileCount())
	case fyne.KeyEscape:
		cw.coord.ClearROI()
		cw.state.SetRoi(nil)
		cw.refreshAll()
	}
}

func (cw *Window) typedRune(r rune) {
	active := cw.coord.ActiveIndex()
	switch r {
	case '+', '=':
		cw.zoom.StepZoom(viewport.ZoomIn, nil, active)
		cw.refreshAll()
	case '-':
		cw.zoom.StepZoom(viewport.ZoomOut, nil, active)
		cw.refreshAll()
	case 'f':
		cw.zoom.ToggleFitZoom(active)
		cw.refreshAll()
	case 'a':
		cw.tiles[active].canvas.Editor().SelectAll()
		cw.refreshAll()
	case 'r':
		cw.coord.RotateForward()
	case 'e':
		cw.coord.RotateBackward()
	case 's':
		cw.coord.SwapWithNext()
	}
}
