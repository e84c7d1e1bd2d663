package viewer

import "math"

// Watermark appearance
const (
	TileAngle   = -math.Pi / 6
	TileAlpha   = 0.12
	CornerAlpha = 0.45
)

// Stamp is one drawn instance of the label, positioned by its center
type Stamp struct {
	X, Y  float64
	Size  float64
	Angle float64
	Alpha float64
}

// Watermark is the layout of the label over a canvas: rotated tiles across
// the whole surface and one stamp in the bottom-right corner
type Watermark struct {
	Label    string
	FontSize float64
	Tiles    []Stamp
	Corner   Stamp
}

// MeasureFunc returns the rendered width of text at a font size
type MeasureFunc func(text string, size float64) float64

// WatermarkFontSize derives the label size from the canvas size
func WatermarkFontSize(w, h float64) float64 {
	size := math.Min(w, h) / 24
	return math.Max(12, math.Min(64, size))
}

// LayoutWatermark computes the watermark for a canvas of w by h. It must be
// recomputed whenever the canvas size changes.
func LayoutWatermark(w, h float64, label string, measure MeasureFunc) Watermark {
	if label == "" || w <= 0 || h <= 0 {
		return Watermark{}
	}

	size := WatermarkFontSize(w, h)
	textW := measure(label, size)
	if textW <= 0 {
		textW = size * float64(len(label)) * 0.6
	}
	stepX := textW + size*3
	stepY := size * 4

	wm := Watermark{Label: label, FontSize: size}

	// walk a grid as wide as the diagonal, rotated about the canvas center,
	// keeping the points that land on or near the canvas
	half := math.Hypot(w, h) / 2
	cx, cy := w/2, h/2
	cos, sin := math.Cos(TileAngle), math.Sin(TileAngle)
	row := 0
	for gy := -half; gy <= half; gy += stepY {
		shift := 0.0
		if row%2 == 1 {
			shift = stepX / 2
		}
		for gx := -half + shift; gx <= half; gx += stepX {
			x := cx + gx*cos - gy*sin
			y := cy + gx*sin + gy*cos
			if x < -textW/2 || x > w+textW/2 || y < -size || y > h+size {
				continue
			}
			wm.Tiles = append(wm.Tiles, Stamp{X: x, Y: y, Size: size, Angle: TileAngle, Alpha: TileAlpha})
		}
		row++
	}

	margin := size * 0.75
	wm.Corner = Stamp{
		X:     w - margin - textW/2,
		Y:     h - margin - size/2,
		Size:  size,
		Alpha: CornerAlpha,
	}
	return wm
}

// Draw paints the tiles, then the corner stamp
func (wm Watermark) Draw(s Surface) {
	if wm.Label == "" {
		return
	}
	for _, t := range wm.Tiles {
		s.DrawText(wm.Label, t.X, t.Y, t.Size, t.Angle, t.Alpha)
	}
	c := wm.Corner
	s.DrawText(wm.Label, c.X, c.Y, c.Size, c.Angle, c.Alpha)
}
