// Package panels provides the side panel widgets: the navigator thumbnail
// and the selection statistics view.
package panels

import (
	"image"
	"log"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"pixel-viewer/internal/imageio"
	"pixel-viewer/internal/imgproc"
	"pixel-viewer/internal/viewport"
	"pixel-viewer/pkg/colorutil"
	"pixel-viewer/pkg/geometry"
)

const (
	navThumbW = 240
	navThumbH = 240
)

// Navigator shows a thumbnail of the current image with the visible
// region outlined. Tapping recenters the viewport on the tapped point.
type Navigator struct {
	widget.BaseWidget

	view   *viewport.Viewport
	thumb  *image.RGBA
	scale  float64 // thumbnail pixels per image pixel
	raster *fynecanvas.Raster

	// OnRecenter fires after a tap moves the viewport.
	OnRecenter func()
}

// NewNavigator creates a navigator bound to the given viewport.
func NewNavigator(view *viewport.Viewport) *Navigator {
	n := &Navigator{view: view}
	n.raster = fynecanvas.NewRaster(n.draw)
	n.raster.SetMinSize(fyne.NewSize(navThumbW, navThumbH))
	n.ExtendBaseWidget(n)
	return n
}

// SetImage rebuilds the thumbnail. A nil image clears the navigator.
func (n *Navigator) SetImage(img image.Image) {
	if img == nil {
		n.thumb = nil
		n.scale = 0
		n.Refresh()
		return
	}

	thumb, err := imgproc.Thumbnail(img, navThumbW, navThumbH)
	if err != nil {
		log.Printf("navigator: thumbnail failed: %v", err)
		n.thumb = nil
		n.Refresh()
		return
	}
	n.thumb = imageio.ToRGBA(thumb)
	n.scale = float64(n.thumb.Bounds().Dx()) / float64(img.Bounds().Dx())
	n.Refresh()
}

// Refresh repaints the thumbnail.
func (n *Navigator) Refresh() {
	if n.raster != nil {
		n.raster.Refresh()
	}
	n.BaseWidget.Refresh()
}

// Tapped recenters the viewport on the tapped image point.
func (n *Navigator) Tapped(ev *fyne.PointEvent) {
	if n.thumb == nil || n.scale <= 0 {
		return
	}

	imgX := float64(ev.Position.X) / n.scale
	imgY := float64(ev.Position.Y) / n.scale
	zoom := n.view.Zoom()

	n.view.SetOffset(viewport.Horizontal,
		int(math.Round(imgX*zoom-float64(n.view.PageExtent(viewport.Horizontal))/2)))
	n.view.SetOffset(viewport.Vertical,
		int(math.Round(imgY*zoom-float64(n.view.PageExtent(viewport.Vertical))/2)))

	n.Refresh()
	if n.OnRecenter != nil {
		n.OnRecenter()
	}
}

// CreateRenderer implements fyne.Widget.
func (n *Navigator) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(n.raster)
}

func (n *Navigator) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}
	if n.thumb == nil {
		return output
	}

	tb := n.thumb.Bounds()
	xdraw.Draw(output, tb.Sub(tb.Min), n.thumb, tb.Min, xdraw.Src)

	// Outline the visible region
	zoom := n.view.Zoom()
	if zoom <= 0 {
		return output
	}
	toThumb := n.scale / zoom
	vis := geometry.RectInt{
		X:      int(math.Round(float64(n.view.Offset(viewport.Horizontal)) * toThumb)),
		Y:      int(math.Round(float64(n.view.Offset(viewport.Vertical)) * toThumb)),
		Width:  int(math.Round(float64(n.view.PageExtent(viewport.Horizontal)) * toThumb)),
		Height: int(math.Round(float64(n.view.PageExtent(viewport.Vertical)) * toThumb)),
	}
	vis = vis.Intersect(geometry.NewRectInt(0, 0, tb.Dx(), tb.Dy()))
	if !vis.IsEmpty() {
		strokeNavRect(output, vis)
	}
	return output
}

func strokeNavRect(dst *image.RGBA, r geometry.RectInt) {
	c := colorutil.Yellow
	for x := r.X; x < r.Right(); x++ {
		dst.SetRGBA(x, r.Y, c)
		dst.SetRGBA(x, r.Bottom()-1, c)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetRGBA(r.X, y, c)
		dst.SetRGBA(r.Right()-1, y, c)
	}
}
