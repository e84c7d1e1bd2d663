package viewer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestFitScale(t *testing.T) {
	assert.Equal(t, 1.0, FitScale(400, 300, 800, 600), "never upscale past 1:1")
	assert.InDelta(t, 0.5, FitScale(1600, 600, 800, 600), tolerance)
	assert.InDelta(t, 0.25, FitScale(800, 2400, 800, 600), tolerance)
	assert.Equal(t, 1.0, FitScale(0, 0, 800, 600))
}

func TestNewStateIsFittedAndCentered(t *testing.T) {
	s := NewState(1600, 1200, 800, 600)

	assert.InDelta(t, 0.5, s.Scale, tolerance)
	assert.Equal(t, s.MinScale, s.Scale)
	assert.Equal(t, Point{0, 0}, s.Origin())
	assert.Equal(t, Point{X: 400, Y: 300}, s.Center())
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	s := NewState(1600, 1200, 800, 600)
	s.Pan(37, -12)
	anchor := Point{X: 123, Y: 456}
	before := s.ScreenToImage(anchor)

	s.ZoomAt(anchor, 2.5)

	assert.InDelta(t, 2.5, s.Scale, tolerance)
	after := s.ImageToScreen(before)
	assert.InDelta(t, anchor.X, after.X, 1e-6)
	assert.InDelta(t, anchor.Y, after.Y, 1e-6)
}

func TestZoomAtKeepsAnchorWhenClamped(t *testing.T) {
	s := NewState(1600, 1200, 800, 600)
	anchor := Point{X: 700, Y: 50}
	before := s.ScreenToImage(anchor)

	s.ZoomAt(anchor, 100)

	assert.Equal(t, MaxScale, s.Scale)
	after := s.ImageToScreen(before)
	assert.InDelta(t, anchor.X, after.X, 1e-6)
	assert.InDelta(t, anchor.Y, after.Y, 1e-6)
}

func TestScaleStaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewState(3000, 2000, 800, 600)

	for i := 0; i < 5000; i++ {
		anchor := Point{rng.Float64() * 800, rng.Float64() * 600}
		switch rng.Intn(6) {
		case 0:
			s.ZoomBy(anchor, rng.Float64()*10)
		case 1:
			s.Apply(Event{Kind: Wheel, X: anchor.X, Y: anchor.Y, DeltaY: rng.Float64()*2 - 1})
		case 2:
			s.Apply(Event{Kind: Key, Key: []string{"+", "-", "=", "_"}[rng.Intn(4)]})
		case 3:
			s.Pan(rng.Float64()*400-200, rng.Float64()*400-200)
		case 4:
			s.Apply(Event{Kind: TouchStart, Touches: []Point{anchor, {anchor.X + 10, anchor.Y}}})
			s.Apply(Event{Kind: TouchMove, Touches: []Point{anchor, {anchor.X + rng.Float64()*2000, anchor.Y}}})
		case 5:
			s.Apply(Event{Kind: Resize, Width: 200 + rng.Float64()*1000, Height: 200 + rng.Float64()*1000})
		}
		require.GreaterOrEqual(t, s.Scale, s.MinScale-tolerance)
		require.LessOrEqual(t, s.Scale, MaxScale+tolerance)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := NewState(1600, 1200, 800, 600)
	s.ZoomBy(Point{10, 10}, 3)
	s.Pan(500, -90)
	s.Apply(Event{Kind: Wheel, X: 100, Y: 100, DeltaY: -1})

	s.Apply(Event{Kind: Key, Key: "0"})
	first := *s
	s.Apply(Event{Kind: Key, Key: "0"})

	assert.Equal(t, s.MinScale, s.Scale)
	assert.Zero(t, s.OffsetX)
	assert.Zero(t, s.OffsetY)
	assert.Equal(t, first.Scale, s.Scale)
}

func TestPanIsUnbounded(t *testing.T) {
	s := NewState(100, 100, 800, 600)
	s.Pan(-5000, 9000)

	assert.Equal(t, -5000.0, s.OffsetX)
	assert.Equal(t, 9000.0, s.OffsetY)
}

func TestResizeReclamps(t *testing.T) {
	s := NewState(1600, 1200, 1600, 1200)
	require.Equal(t, 1.0, s.Scale)

	s.Resize(1600, 1200)
	s.ZoomAt(s.Center(), 0.1)
	assert.Equal(t, 1.0, s.Scale)

	s.Resize(400, 300)
	assert.InDelta(t, 0.25, s.MinScale, tolerance)
	assert.Equal(t, 1.0, s.Scale, "a larger scale survives a shrink")
}

func TestZoomAtIgnoresNaN(t *testing.T) {
	s := NewState(1600, 1200, 800, 600)
	s.ZoomAt(Point{}, math.NaN())
	assert.InDelta(t, 0.5, s.Scale, tolerance)
}
