// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pixel-viewer/internal/app"
	"pixel-viewer/internal/imageio"
	"pixel-viewer/internal/imgproc"
	"pixel-viewer/internal/version"
	"pixel-viewer/internal/viewport"
	"pixel-viewer/pkg/colorutil"
	"pixel-viewer/pkg/geometry"
	"pixel-viewer/ui/canvas"
	"pixel-viewer/ui/compare"
	"pixel-viewer/ui/panels"
	"pixel-viewer/ui/prefs"
)

// brightnessStep is the bias change per Edit menu step, in 8-bit units.
const brightnessStep = 16

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	navigator *panels.Navigator
	stats     *panels.StatsPanel
	imageList *widget.Select
	statusBar *widget.Label
	zoomLabel *widget.Label

	sync    *viewport.ScrollSynchronizer
	zoom    *viewport.ZoomController
	fitItem *fyne.MenuItem
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Pixel Viewer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupKeyboard()

	w := p.FloatWithFallback(prefs.KeyWindowWidth, 1280)
	h := p.FloatWithFallback(prefs.KeyWindowHeight, 860)
	win.Resize(fyne.NewSize(float32(w), float32(h)))

	win.SetCloseIntercept(func() {
		mw.savePreferences()
		win.Close()
	})

	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()
	mw.sync = viewport.NewScrollSynchronizer(mw.canvas.Viewport())
	mw.zoom = viewport.NewZoomController(mw.sync)

	mw.navigator = panels.NewNavigator(mw.canvas.Viewport())
	mw.navigator.OnRecenter = func() {
		mw.canvas.Refresh()
	}
	mw.stats = panels.NewStatsPanel(mw.prefs.Int(prefs.KeyHistBins, panels.DefaultHistogramBins))

	mw.imageList = widget.NewSelect(nil, func(name string) {
		for i, img := range mw.state.Images() {
			if img.Name == name {
				if err := mw.state.SetCurrent(i); err != nil {
					log.Printf("select image: %v", err)
				}
				return
			}
		}
	})
	mw.imageList.PlaceHolder = "No images"

	mw.statusBar = widget.NewLabel("Ready")
	mw.zoomLabel = widget.NewLabel("100%")

	mw.canvas.Viewport().OnScrolled = func() {
		mw.canvas.Refresh()
		mw.navigator.Refresh()
	}

	mw.canvas.OnCursorMoved(func(x, y int, inside bool) {
		if !inside {
			mw.statusBar.SetText("Ready")
			return
		}
		if cur := mw.state.Current(); cur != nil && cur.Diff {
			mw.statusBar.SetText(colorutil.FormatGray(mw.canvas.Image(), x, y))
			return
		}
		mw.statusBar.SetText(colorutil.FormatPixel(mw.canvas.Image(), x, y))
	})

	mw.canvas.OnWheelZoom(func(dir viewport.ZoomDirection, focal geometry.PointInt) {
		mw.zoom.StepZoom(dir, &focal, 0)
		mw.zoomApplied()
	})

	mw.canvas.Editor().OnChanged = func(roi *geometry.RectInt) {
		mw.state.SetRoi(roi)
	}

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,   // top
		nil,       // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)

	sidePanel := container.NewVBox(
		widget.NewLabelWithStyle("Images", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.imageList,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Navigator", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.navigator,
		widget.NewSeparator(),
		mw.stats.Container(),
	)

	split := container.NewHSplit(sidePanel, canvasArea)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onToggleFit)
	actualBtn := widget.NewButton("1:1", mw.onActualSize)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		mw.zoomLabel,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Close Image", mw.onCloseImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Selection As PNG...", mw.onSaveSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Select All", mw.onSelectAll),
		fyne.NewMenuItem("Clear Selection", mw.onClearSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Brighten", func() { mw.onAdjustBrightness(brightnessStep) }),
		fyne.NewMenuItem("Darken", func() { mw.onAdjustBrightness(-brightnessStep) }),
		fyne.NewMenuItem("Reset Brightness", mw.onResetBrightness),
	)

	mw.fitItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFit)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next Image", mw.onNextImage),
		fyne.NewMenuItem("Previous Image", mw.onPreviousImage),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Compare Images...", mw.onCompare),
		fyne.NewMenuItem("Difference Image", mw.onDiffImage),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.refreshImageList()
		if img, ok := data.(*app.Image); ok {
			mw.updateStatus("Loaded " + img.Name)
		}
	})

	mw.state.On(app.EventImageClosed, func(data interface{}) {
		mw.refreshImageList()
		mw.displayCurrent()
	})

	mw.state.On(app.EventActiveImageChanged, func(data interface{}) {
		mw.displayCurrent()
	})

	mw.state.On(app.EventRoiChanged, func(data interface{}) {
		cur := mw.state.Current()
		if cur == nil {
			mw.stats.Update(nil, nil)
			return
		}
		mw.stats.Update(cur.Data, mw.state.Roi)
		if mw.state.Roi != nil {
			mw.canvas.Editor().SetROI(mw.state.Roi)
			mw.canvas.Refresh()
		}
	})

	mw.state.On(app.EventRenderParamsChanged, func(data interface{}) {
		if cur := mw.state.Current(); cur != nil {
			mw.canvas.SetRenderParams(cur.Params)
		}
	})
}

// setupKeyboard wires window-level shortcuts: arrows scroll, Escape
// clears the selection.
func (mw *MainWindow) setupKeyboard() {
	const step = 50
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			mw.sync.ScrollByDelta(0, -step, 0)
		case fyne.KeyRight:
			mw.sync.ScrollByDelta(0, step, 0)
		case fyne.KeyUp:
			mw.sync.ScrollByDelta(0, 0, -step)
		case fyne.KeyDown:
			mw.sync.ScrollByDelta(0, 0, step)
		case fyne.KeyEscape:
			mw.onClearSelection()
		case fyne.KeyPageDown:
			mw.onNextImage()
		case fyne.KeyPageUp:
			mw.onPreviousImage()
		}
	})
	mw.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			mw.onZoomIn()
		case '-':
			mw.onZoomOut()
		case 'f':
			mw.onToggleFit()
		case 'a':
			mw.onSelectAll()
		}
	})
}

// OpenImage loads a file and makes it current. Used by menu and CLI.
func (mw *MainWindow) OpenImage(path string) error {
	img, err := imageio.Load(path)
	if err != nil {
		return err
	}
	mw.state.AddImage(app.NewImage(filepath.Base(path), img))
	return mw.state.SetCurrent(mw.state.ImageCount() - 1)
}

// displayCurrent pushes the current image into the canvas and navigator.
func (mw *MainWindow) displayCurrent() {
	cur := mw.state.Current()
	if cur == nil {
		mw.canvas.SetImage(nil)
		mw.navigator.SetImage(nil)
		mw.stats.Update(nil, nil)
		mw.SetTitle("Pixel Viewer")
		return
	}

	mw.canvas.SetImage(cur.Data)
	mw.canvas.SetRenderParams(cur.Params)
	mw.navigator.SetImage(cur.Data)
	mw.imageList.SetSelected(cur.Name)
	mw.SetTitle("Pixel Viewer - " + cur.Name)

	if mw.state.Roi != nil {
		mw.canvas.Editor().SetROI(mw.state.Roi)
	}
	mw.stats.Update(cur.Data, mw.state.Roi)
	mw.canvas.Refresh()
}

func (mw *MainWindow) refreshImageList() {
	names := make([]string, 0, mw.state.ImageCount())
	for _, img := range mw.state.Images() {
		names = append(names, img.Name)
	}
	mw.imageList.Options = names
	mw.imageList.Refresh()
}

// zoomApplied refreshes dependent widgets after any zoom change.
func (mw *MainWindow) zoomApplied() {
	mw.canvas.SyncZoom()
	mw.navigator.Refresh()
	mw.zoomLabel.SetText(fmt.Sprintf("%.4g%%", mw.zoom.Factor()*100))
	mw.updateFitLabel()
	mw.state.Emit(app.EventZoomChanged, mw.zoom.Factor())
}

func (mw *MainWindow) updateFitLabel() {
	if mw.zoom.FitActive() {
		mw.fitItem.Label = "✓ Fit to Window"
	} else {
		mw.fitItem.Label = "  Fit to Window"
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) savePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.OpenImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedExtensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onCloseImage() {
	idx := mw.state.CurrentIndex()
	if idx < 0 {
		return
	}
	if err := mw.state.CloseImage(idx); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveSelection() {
	cur := mw.state.Current()
	roi := mw.canvas.Editor().ROI()
	if cur == nil || roi == nil {
		mw.updateStatus("No selection to save")
		return
	}

	crop := imageio.Crop(cur.Data, *roi)
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := imageio.SavePNG(path, crop); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Saved " + path)
	}, mw.Window)
	fd.SetFileName("selection.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSelectAll() {
	mw.canvas.Editor().SelectAll()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onClearSelection() {
	mw.canvas.Editor().Clear()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onAdjustBrightness(delta float64) {
	cur := mw.state.Current()
	if cur == nil {
		return
	}
	cur.Params.Bias += delta
	mw.state.Emit(app.EventRenderParamsChanged, cur)
}

func (mw *MainWindow) onResetBrightness() {
	cur := mw.state.Current()
	if cur == nil {
		return
	}
	cur.Params = app.DefaultRenderParams()
	mw.state.Emit(app.EventRenderParamsChanged, cur)
}

func (mw *MainWindow) onZoomIn() {
	mw.zoom.StepZoom(viewport.ZoomIn, nil, 0)
	mw.zoomApplied()
}

func (mw *MainWindow) onZoomOut() {
	mw.zoom.StepZoom(viewport.ZoomOut, nil, 0)
	mw.zoomApplied()
}

func (mw *MainWindow) onToggleFit() {
	mw.zoom.ToggleFitZoom(0)
	mw.zoomApplied()
}

func (mw *MainWindow) onActualSize() {
	view := mw.canvas.Viewport()
	mw.zoom.ApplyZoomPreservingFocus(1.0, view.VisibleCenter(), pageCenter(view), 0)
	mw.zoomApplied()
}

func (mw *MainWindow) onNextImage() {
	if mw.state.ImageCount() == 0 {
		return
	}
	next := (mw.state.CurrentIndex() + 1) % mw.state.ImageCount()
	if err := mw.state.SetCurrent(next); err != nil {
		log.Printf("next image: %v", err)
	}
}

func (mw *MainWindow) onPreviousImage() {
	n := mw.state.ImageCount()
	if n == 0 {
		return
	}
	prev := (mw.state.CurrentIndex() - 1 + n) % n
	if err := mw.state.SetCurrent(prev); err != nil {
		log.Printf("previous image: %v", err)
	}
}

func (mw *MainWindow) onCompare() {
	images := mw.state.Images()
	if len(images) < 2 {
		mw.updateStatus("Need at least two images to compare")
		return
	}
	cols := (len(images) + 1) / 2
	compare.New(mw.app, mw.state, images, cols).Show()
}

func (mw *MainWindow) onDiffImage() {
	images := mw.state.Images()
	if len(images) < 2 {
		mw.updateStatus("Need at least two images to diff")
		return
	}

	a, b := images[0], images[1]
	offset := mw.prefs.Int(prefs.KeyDiffOffset, imgproc.DefaultDiffOffset)
	diff, err := imgproc.Diff(a.Data, b.Data, offset)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	img := app.NewImage(fmt.Sprintf("diff(%s, %s)", a.Name, b.Name), diff)
	img.Diff = true
	mw.state.AddImage(img)
	if err := mw.state.SetCurrent(mw.state.ImageCount() - 1); err != nil {
		log.Printf("show diff: %v", err)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Pixel Viewer",
		fmt.Sprintf("Pixel Viewer v%s\n\n"+
			"An image viewer with synchronized comparison tiles.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

func pageCenter(v *viewport.Viewport) geometry.Point2D {
	return geometry.Point2D{
		X: float64(v.PageExtent(viewport.Horizontal)) / 2,
		Y: float64(v.PageExtent(viewport.Vertical)) / 2,
	}
}
