package viewport

import (
	"math"
)

// ScrollSynchronizer keeps N viewports aligned on their visual center.
// Raw offsets are never copied between viewports: different tiles can show
// differently sized images at the same zoom, so the normalized center
// ratio (offset + page/2) / (maxOffset + page) is propagated instead.
type ScrollSynchronizer struct {
	views []*Viewport

	// syncing guards against re-entrant OnScroll calls: applying an offset
	// to a peer raises that peer's scroll notification, which must not
	// start another pass.
	syncing bool
}

// NewScrollSynchronizer creates a synchronizer over the given viewports.
func NewScrollSynchronizer(views ...*Viewport) *ScrollSynchronizer {
	return &ScrollSynchronizer{views: views}
}

// Views returns the attached viewports.
func (s *ScrollSynchronizer) Views() []*Viewport {
	return s.views
}

// Syncing reports whether a synchronization pass is in progress.
func (s *ScrollSynchronizer) Syncing() bool {
	return s.syncing
}

// OnScroll applies a raw offset to the source viewport and propagates the
// resulting center ratio to every peer. Calls arriving while a pass is in
// progress are ignored. Sources with nothing to scroll propagate nothing.
func (s *ScrollSynchronizer) OnScroll(source int, axis Axis, rawOffset int) {
	if s.syncing {
		return
	}
	if source < 0 || source >= len(s.views) {
		panic("viewport: scroll source index out of range")
	}

	s.syncing = true
	defer func() { s.syncing = false }()

	src := s.views[source]
	src.SetOffset(axis, rawOffset)

	denom := src.MaxOffset(axis) + src.PageExtent(axis)
	if denom <= 0 {
		return
	}
	ratio := (float64(src.Offset(axis)) + float64(src.PageExtent(axis))/2) / float64(denom)

	for i, view := range s.views {
		if i == source {
			continue
		}
		tgtDenom := view.MaxOffset(axis) + view.PageExtent(axis)
		if tgtDenom <= 0 {
			continue
		}
		target := int(math.Round(ratio*float64(tgtDenom) - float64(view.PageExtent(axis))/2))
		// SetOffset clamps and skips unchanged values.
		view.SetOffset(axis, target)
	}
}

// CenterRatio returns a viewport's normalized center position along an
// axis, or -1 when nothing is scrollable.
func (s *ScrollSynchronizer) CenterRatio(index int, axis Axis) float64 {
	v := s.views[index]
	denom := v.MaxOffset(axis) + v.PageExtent(axis)
	if denom <= 0 {
		return -1
	}
	return (float64(v.Offset(axis)) + float64(v.PageExtent(axis))/2) / float64(denom)
}

// ScrollByDelta shifts the active viewport by (dx, dy) and propagates each
// touched axis. Used for discrete keyboard scrolling.
func (s *ScrollSynchronizer) ScrollByDelta(active int, dx, dy int) {
	if active < 0 || active >= len(s.views) {
		panic("viewport: scroll source index out of range")
	}
	v := s.views[active]
	if dx != 0 {
		s.OnScroll(active, Horizontal, v.Offset(Horizontal)+dx)
	}
	if dy != 0 {
		s.OnScroll(active, Vertical, v.Offset(Vertical)+dy)
	}
}
