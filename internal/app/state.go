// Package app provides application state and the event bus connecting the
// viewer's components.
package app

import (
	"fmt"
	goimage "image"
	"sync"

	"pixel-viewer/pkg/geometry"
)

// RenderParams holds per-image display adjustments. They travel with the
// image when tiles rotate or swap.
type RenderParams struct {
	// Gain scales pixel values; 1.0 is neutral.
	Gain float64 `json:"gain"`
	// Bias is added after gain, in 8-bit value units.
	Bias float64 `json:"bias"`
}

// DefaultRenderParams returns neutral display parameters.
func DefaultRenderParams() RenderParams {
	return RenderParams{Gain: 1.0, Bias: 0.0}
}

// IsNeutral reports whether the parameters leave pixels unchanged.
func (p RenderParams) IsNeutral() bool {
	return p.Gain == 1.0 && p.Bias == 0.0
}

// Image is one loaded raster with its display parameters.
type Image struct {
	Name   string
	Data   goimage.Image
	Params RenderParams

	// Diff marks offset-centered difference images; readouts show a
	// single gray value for them instead of RGB.
	Diff bool
}

// NewImage wraps a decoded raster with neutral display parameters.
func NewImage(name string, data goimage.Image) *Image {
	return &Image{Name: name, Data: data, Params: DefaultRenderParams()}
}

// Size returns the image dimensions in pixels.
func (img *Image) Size() (w, h int) {
	if img.Data == nil {
		return 0, 0
	}
	b := img.Data.Bounds()
	return b.Dx(), b.Dy()
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventImageClosed
	EventActiveImageChanged
	EventRoiChanged
	EventZoomChanged
	EventRenderParamsChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the loaded image list, the current image index, and the
// listeners wired between the UI layers.
type State struct {
	mu sync.RWMutex

	images  []*Image
	current int

	// Roi is the canonical region of interest in image coordinates, shared
	// by the analysis consumers. Nil when no selection exists.
	Roi *geometry.RectInt

	listeners map[EventType][]EventListener
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		current:   -1,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// AddImage appends an image, makes it current, and emits EventImageLoaded.
func (s *State) AddImage(img *Image) {
	s.mu.Lock()
	s.images = append(s.images, img)
	s.current = len(s.images) - 1
	s.mu.Unlock()
	s.Emit(EventImageLoaded, img)
}

// Images returns the loaded images in order.
func (s *State) Images() []*Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Image, len(s.images))
	copy(out, s.images)
	return out
}

// ImageCount returns the number of loaded images.
func (s *State) ImageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Current returns the currently displayed image, or nil.
func (s *State) Current() *Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current < 0 || s.current >= len(s.images) {
		return nil
	}
	return s.images[s.current]
}

// CurrentIndex returns the current image index, or -1 when empty.
func (s *State) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrent switches the displayed image and emits
// EventActiveImageChanged.
func (s *State) SetCurrent(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.images) {
		s.mu.Unlock()
		return fmt.Errorf("image index %d out of range", index)
	}
	s.current = index
	img := s.images[index]
	s.mu.Unlock()
	s.Emit(EventActiveImageChanged, img)
	return nil
}

// CloseImage removes an image from the list, adjusting the current index,
// and emits EventImageClosed.
func (s *State) CloseImage(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.images) {
		s.mu.Unlock()
		return fmt.Errorf("image index %d out of range", index)
	}
	img := s.images[index]
	s.images = append(s.images[:index], s.images[index+1:]...)
	if s.current >= len(s.images) {
		s.current = len(s.images) - 1
	}
	s.mu.Unlock()
	s.Emit(EventImageClosed, img)
	return nil
}

// SetRoi stores the canonical ROI and emits EventRoiChanged.
func (s *State) SetRoi(roi *geometry.RectInt) {
	s.mu.Lock()
	if roi == nil {
		s.Roi = nil
	} else {
		r := *roi
		s.Roi = &r
	}
	val := s.Roi
	s.mu.Unlock()
	s.Emit(EventRoiChanged, val)
}
