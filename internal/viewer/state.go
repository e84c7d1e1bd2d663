// Package viewer implements the zoomable, pannable, watermarked image viewer.
// The same Viewer drives every presentation surface: the in-page overlay and
// the popup window in the browser, and the raster surface used for previews.
package viewer

import "math"

// Zoom limits and step factors
const (
	MaxScale       = 8.0
	WheelInFactor  = 1.05
	WheelOutFactor = 0.95
	KeyZoomFactor  = 1.2
)

// Point is a position in screen (canvas) or image coordinates
type Point struct {
	X, Y float64
}

// Pinch records the start of a two-finger gesture
type Pinch struct {
	Distance  float64
	Center    Point
	BaseScale float64
}

// State is the transform of one viewer session. The image is drawn centered
// in the viewport, scaled by Scale and shifted by the offset.
type State struct {
	Scale    float64
	MinScale float64
	OffsetX  float64
	OffsetY  float64
	Dragging bool
	Pinch    *Pinch

	imageW, imageH float64
	viewW, viewH   float64
	last           Point
}

// NewState creates a state fitted to the viewport
func NewState(imageW, imageH, viewW, viewH float64) *State {
	s := &State{imageW: imageW, imageH: imageH, viewW: viewW, viewH: viewH}
	s.MinScale = FitScale(imageW, imageH, viewW, viewH)
	s.Reset()
	return s
}

// FitScale is the largest scale at or below 1 at which the whole image fits
// the viewport. Degenerate sizes fit at 1.
func FitScale(imageW, imageH, viewW, viewH float64) float64 {
	if imageW <= 0 || imageH <= 0 || viewW <= 0 || viewH <= 0 {
		return 1
	}
	return math.Min(1, math.Min(viewW/imageW, viewH/imageH))
}

// Reset returns to the fitted scale with no offset
func (s *State) Reset() {
	s.Scale = s.MinScale
	s.OffsetX, s.OffsetY = 0, 0
	s.Dragging = false
	s.Pinch = nil
}

// Resize refits the minimum scale to a new viewport and re-clamps the scale
func (s *State) Resize(viewW, viewH float64) {
	s.viewW, s.viewH = viewW, viewH
	s.MinScale = FitScale(s.imageW, s.imageH, viewW, viewH)
	s.Scale = s.clamp(s.Scale)
}

// Viewport returns the viewport size
func (s *State) Viewport() (w, h float64) {
	return s.viewW, s.viewH
}

// Center returns the viewport center
func (s *State) Center() Point {
	return Point{s.viewW / 2, s.viewH / 2}
}

// Origin returns the screen position of the image's top-left corner
func (s *State) Origin() Point {
	return Point{
		X: (s.viewW-s.imageW*s.Scale)/2 + s.OffsetX,
		Y: (s.viewH-s.imageH*s.Scale)/2 + s.OffsetY,
	}
}

// ScreenToImage maps a screen point to image coordinates
func (s *State) ScreenToImage(p Point) Point {
	o := s.Origin()
	return Point{(p.X - o.X) / s.Scale, (p.Y - o.Y) / s.Scale}
}

// ImageToScreen maps an image point to screen coordinates
func (s *State) ImageToScreen(p Point) Point {
	o := s.Origin()
	return Point{o.X + p.X*s.Scale, o.Y + p.Y*s.Scale}
}

// ZoomAt sets the scale (clamped) keeping the image point under anchor fixed
func (s *State) ZoomAt(anchor Point, scale float64) {
	if math.IsNaN(scale) {
		return
	}
	fixed := s.ScreenToImage(anchor)
	s.Scale = s.clamp(scale)
	s.OffsetX = anchor.X - (s.viewW-s.imageW*s.Scale)/2 - fixed.X*s.Scale
	s.OffsetY = anchor.Y - (s.viewH-s.imageH*s.Scale)/2 - fixed.Y*s.Scale
}

// ZoomBy multiplies the scale by factor around anchor
func (s *State) ZoomBy(anchor Point, factor float64) {
	s.ZoomAt(anchor, s.Scale*factor)
}

// Pan shifts the image. The offset is not bounded; the image may leave the viewport.
func (s *State) Pan(dx, dy float64) {
	s.OffsetX += dx
	s.OffsetY += dy
}

func (s *State) clamp(scale float64) float64 {
	if scale < s.MinScale {
		return s.MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}
