package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSyncViews builds viewports whose horizontal max offset and page
// extent match the given pairs (content is maxOffset + page at zoom 1).
func newSyncViews(pairs ...[2]int) *ScrollSynchronizer {
	views := make([]*Viewport, len(pairs))
	for i, p := range pairs {
		maxOff, page := p[0], p[1]
		views[i] = NewViewport(maxOff+page, maxOff+page, page, page)
	}
	return NewScrollSynchronizer(views...)
}

func TestSyncPropagatesCenterRatio(t *testing.T) {
	s := newSyncViews([2]int{1500, 500}, [2]int{600, 400}, [2]int{3400, 600})

	s.OnScroll(0, Horizontal, 750)

	srcRatio := s.CenterRatio(0, Horizontal)
	require.Greater(t, srcRatio, 0.0)
	for i := 1; i < 3; i++ {
		ratio := s.CenterRatio(i, Horizontal)
		page := s.Views()[i].PageExtent(Horizontal)
		denom := s.Views()[i].MaxOffset(Horizontal) + page
		// One pixel of offset rounding moves the ratio by 1/denom.
		assert.InDelta(t, srcRatio, ratio, 1.0/float64(denom), "view %d", i)
	}
}

func TestSyncTargetsDifferentExtents(t *testing.T) {
	s := newSyncViews([2]int{1500, 500}, [2]int{600, 400}, [2]int{3400, 600})

	// Source center ratio: (750 + 250) / 2000 = 0.5.
	s.OnScroll(0, Horizontal, 750)

	assert.Equal(t, 750, s.Views()[0].Offset(Horizontal))
	// 0.5 * 1000 - 200 = 300
	assert.Equal(t, 300, s.Views()[1].Offset(Horizontal))
	// 0.5 * 4000 - 300 = 1700
	assert.Equal(t, 1700, s.Views()[2].Offset(Horizontal))
}

func TestSyncClampsTargets(t *testing.T) {
	s := newSyncViews([2]int{1000, 500}, [2]int{100, 100})

	s.OnScroll(0, Horizontal, 1000)

	off := s.Views()[1].Offset(Horizontal)
	assert.GreaterOrEqual(t, off, 0)
	assert.LessOrEqual(t, off, s.Views()[1].MaxOffset(Horizontal))
}

func TestSyncNothingScrollableIsNoop(t *testing.T) {
	// Page covers the whole content: max offset 0 on both views.
	a := NewViewport(100, 100, 200, 200)
	b := NewViewport(100, 100, 200, 200)
	s := NewScrollSynchronizer(a, b)

	s.OnScroll(0, Horizontal, 50)

	assert.Equal(t, 0, a.Offset(Horizontal))
	assert.Equal(t, 0, b.Offset(Horizontal))
}

func TestSyncSkipsUnchangedOffsets(t *testing.T) {
	s := newSyncViews([2]int{1500, 500}, [2]int{600, 400})
	s.OnScroll(0, Horizontal, 750)

	fired := 0
	s.Views()[1].OnScrolled = func() { fired++ }

	// Same position again: the peer's offset is already correct.
	s.OnScroll(0, Horizontal, 750)
	assert.Equal(t, 0, fired)
}

func TestSyncReentrancyGuard(t *testing.T) {
	s := newSyncViews([2]int{1500, 500}, [2]int{600, 400})

	calls := 0
	s.Views()[1].OnScrolled = func() {
		calls++
		// A feedback notification from the peer must be swallowed.
		s.OnScroll(1, Horizontal, s.Views()[1].Offset(Horizontal)+10)
	}

	s.OnScroll(0, Horizontal, 750)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 300, s.Views()[1].Offset(Horizontal), "re-entrant scroll ignored")
}

func TestScrollByDelta(t *testing.T) {
	s := newSyncViews([2]int{1500, 500}, [2]int{600, 400})
	s.OnScroll(0, Horizontal, 500)

	s.ScrollByDelta(0, 100, 0)
	assert.Equal(t, 600, s.Views()[0].Offset(Horizontal))

	srcRatio := s.CenterRatio(0, Horizontal)
	peerRatio := s.CenterRatio(1, Horizontal)
	denom := float64(s.Views()[1].MaxOffset(Horizontal) + s.Views()[1].PageExtent(Horizontal))
	assert.InDelta(t, srcRatio, peerRatio, 1.0/denom)
}

func TestScrollByDeltaClampsAtBounds(t *testing.T) {
	s := newSyncViews([2]int{1500, 500})

	s.ScrollByDelta(0, -100, -100)
	assert.Equal(t, 0, s.Views()[0].Offset(Horizontal))
	assert.Equal(t, 0, s.Views()[0].Offset(Vertical))

	s.ScrollByDelta(0, 1_000_000, 0)
	assert.Equal(t, 1500, s.Views()[0].Offset(Horizontal))
}

func TestSyncInvalidSourcePanics(t *testing.T) {
	s := newSyncViews([2]int{1500, 500})
	assert.Panics(t, func() { s.OnScroll(5, Horizontal, 0) })
	assert.Panics(t, func() { s.ScrollByDelta(-1, 1, 0) })
}
