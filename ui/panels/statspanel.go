package panels

import (
	"fmt"
	"image"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pixel-viewer/internal/stats"
	"pixel-viewer/pkg/geometry"
)

// DefaultHistogramBins is the bin count used when preferences carry none.
const DefaultHistogramBins = 16

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// StatsPanel shows per-channel statistics and histograms for the current
// selection.
type StatsPanel struct {
	bins   int
	header *widget.Label
	body   *widget.Label
	box    *fyne.Container
}

// NewStatsPanel creates an empty statistics panel with the given
// histogram bin count.
func NewStatsPanel(bins int) *StatsPanel {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	sp := &StatsPanel{
		bins:   bins,
		header: widget.NewLabel("Selection"),
		body:   widget.NewLabel("No selection"),
	}
	sp.header.TextStyle = fyne.TextStyle{Bold: true}
	sp.body.TextStyle = fyne.TextStyle{Monospace: true}
	sp.box = container.NewVBox(sp.header, sp.body)
	return sp
}

// Container returns the panel for embedding in layouts.
func (sp *StatsPanel) Container() fyne.CanvasObject {
	return sp.box
}

// Text returns the current readout, for tests.
func (sp *StatsPanel) Text() string {
	return sp.body.Text
}

// Update recomputes statistics for roi over img. A nil roi or image
// clears the panel.
func (sp *StatsPanel) Update(img image.Image, roi *geometry.RectInt) {
	if img == nil || roi == nil {
		sp.body.SetText("No selection")
		return
	}

	st, err := stats.RegionStats(img, *roi)
	if err != nil {
		sp.body.SetText(err.Error())
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "(%d, %d)  %d x %d\n\n", roi.X, roi.Y, roi.Width, roi.Height)
	fmt.Fprintf(&b, "%-3s %5s %5s %8s %8s\n", "ch", "min", "max", "mean", "std")
	for _, c := range st {
		fmt.Fprintf(&b, "%-3s %5.0f %5.0f %8.2f %8.2f\n", c.Name, c.Min, c.Max, c.Mean, c.StdDev)
	}

	if hists, err := stats.RegionHistograms(img, *roi, sp.bins); err == nil {
		b.WriteString("\n")
		for _, hs := range hists {
			fmt.Fprintf(&b, "%-3s %s\n", hs.Name, sparkline(hs.Bins))
		}
	}
	sp.body.SetText(b.String())
}

// sparkline renders bin counts as one block character per bin, scaled to
// the largest bin.
func sparkline(bins []float64) string {
	peak := 0.0
	for _, c := range bins {
		if c > peak {
			peak = c
		}
	}
	var b strings.Builder
	for _, c := range bins {
		idx := 0
		if peak > 0 {
			idx = int(c / peak * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
