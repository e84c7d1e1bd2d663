package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measure(text string, size float64) float64 {
	return float64(len(text)) * size * 0.6
}

func TestWatermarkFontSizeFollowsCanvas(t *testing.T) {
	assert.Equal(t, 12.0, WatermarkFontSize(100, 100))
	assert.Equal(t, 25.0, WatermarkFontSize(1200, 600))
	assert.Equal(t, 64.0, WatermarkFontSize(5000, 5000))
}

func TestLayoutWatermarkCoversCanvas(t *testing.T) {
	w, h := 1200.0, 800.0
	wm := LayoutWatermark(w, h, "© Portfolio", measure)

	require.NotEmpty(t, wm.Tiles)
	// every quadrant of the canvas carries at least one tile
	var quadrants [4]bool
	for _, tile := range wm.Tiles {
		assert.Equal(t, TileAngle, tile.Angle)
		assert.Equal(t, TileAlpha, tile.Alpha)
		if tile.X < 0 || tile.X > w || tile.Y < 0 || tile.Y > h {
			continue
		}
		q := 0
		if tile.X > w/2 {
			q++
		}
		if tile.Y > h/2 {
			q += 2
		}
		quadrants[q] = true
	}
	assert.Equal(t, [4]bool{true, true, true, true}, quadrants)
}

func TestLayoutWatermarkCorner(t *testing.T) {
	wm := LayoutWatermark(1200, 800, "mark", measure)

	c := wm.Corner
	assert.Greater(t, c.Alpha, TileAlpha)
	assert.Zero(t, c.Angle)
	textW := measure("mark", wm.FontSize)
	assert.InDelta(t, 1200-wm.FontSize*0.75, c.X+textW/2, 1e-9, "right edge inside the margin")
	assert.InDelta(t, 800-wm.FontSize*0.75, c.Y+wm.FontSize/2, 1e-9)
}

func TestLayoutWatermarkScalesWithCanvas(t *testing.T) {
	small := LayoutWatermark(400, 300, "mark", measure)
	large := LayoutWatermark(2400, 1800, "mark", measure)

	assert.Less(t, small.FontSize, large.FontSize)
	assert.NotEqual(t, small.Corner, large.Corner)
}

func TestLayoutWatermarkEmpty(t *testing.T) {
	assert.Empty(t, LayoutWatermark(800, 600, "", measure).Tiles)
	assert.Empty(t, LayoutWatermark(0, 600, "mark", measure).Tiles)
}
