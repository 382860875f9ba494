// Package stats computes per-channel statistics over the region of
// interest. It is the downstream consumer of ROI-changed events: the
// analysis panel re-reads the canonical rectangle and recomputes.
package stats

import (
	"fmt"
	"image"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pixel-viewer/pkg/geometry"
)

// ChannelStats summarizes one color channel over a region.
type ChannelStats struct {
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Histogram is a fixed-bin value distribution for one channel.
type Histogram struct {
	Name   string
	Bins   []float64 // bin counts
	BinMin float64
	BinMax float64
}

// RegionStats computes min/max/mean/stddev for the R, G, and B channels
// over roi. The rectangle is clipped to the image bounds; an empty
// intersection is an error.
func RegionStats(img image.Image, roi geometry.RectInt) ([]ChannelStats, error) {
	samples, err := channelSamples(img, roi)
	if err != nil {
		return nil, err
	}

	names := []string{"R", "G", "B"}
	out := make([]ChannelStats, len(names))
	for i, name := range names {
		vals := samples[i]
		out[i] = ChannelStats{
			Name:   name,
			Min:    floats.Min(vals),
			Max:    floats.Max(vals),
			Mean:   stat.Mean(vals, nil),
			StdDev: stat.StdDev(vals, nil),
		}
	}
	return out, nil
}

// RegionHistograms computes a histogram with the given number of bins per
// channel over the 8-bit value range.
func RegionHistograms(img image.Image, roi geometry.RectInt, bins int) ([]Histogram, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("invalid bin count %d", bins)
	}
	samples, err := channelSamples(img, roi)
	if err != nil {
		return nil, err
	}

	// stat.Histogram requires sorted samples and explicit dividers.
	dividers := make([]float64, bins+1)
	floats.Span(dividers, 0, 256)

	names := []string{"R", "G", "B"}
	out := make([]Histogram, len(names))
	for i, name := range names {
		sorted := make([]float64, len(samples[i]))
		copy(sorted, samples[i])
		sort.Float64s(sorted)
		counts := stat.Histogram(nil, dividers, sorted, nil)
		out[i] = Histogram{Name: name, Bins: counts, BinMin: 0, BinMax: 255}
	}
	return out, nil
}

// channelSamples extracts 8-bit R/G/B samples over the clipped region.
func channelSamples(img image.Image, roi geometry.RectInt) ([3][]float64, error) {
	var samples [3][]float64
	if img == nil {
		return samples, fmt.Errorf("no image")
	}
	b := img.Bounds()
	clipped := roi.Intersect(geometry.NewRectInt(0, 0, b.Dx(), b.Dy()))
	if clipped.IsEmpty() {
		return samples, fmt.Errorf("region %+v outside image bounds", roi)
	}

	n := clipped.Width * clipped.Height
	for i := range samples {
		samples[i] = make([]float64, 0, n)
	}
	for y := clipped.Y; y < clipped.Bottom(); y++ {
		for x := clipped.X; x < clipped.Right(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			samples[0] = append(samples[0], float64(r>>8))
			samples[1] = append(samples[1], float64(g>>8))
			samples[2] = append(samples[2], float64(bl>>8))
		}
	}
	return samples, nil
}
