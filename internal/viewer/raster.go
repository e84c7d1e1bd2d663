package viewer

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"portfolio.dconn.dev/internal/models"
)

// RasterPicture is a decoded image for the raster surface
type RasterPicture struct {
	Image image.Image
}

// Size returns the pixel dimensions
func (p *RasterPicture) Size() (int, int) {
	b := p.Image.Bounds()
	return b.Dx(), b.Dy()
}

// RasterSurface paints into an in-memory RGBA image. It delivers no input,
// so as a Host it only records listener acquisition.
type RasterSurface struct {
	img        *image.RGBA
	background color.Color
	face       font.Face
	listening  int
}

// NewRasterSurface creates a w by h surface
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: color.RGBA{0x11, 0x11, 0x11, 0xff},
		face:       basicfont.Face7x13,
	}
}

// Image returns the painted image
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the painted image as PNG
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// Size returns the canvas size
func (s *RasterSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear fills the canvas with the background
func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// DrawPicture paints p with its top-left corner at x, y
func (s *RasterSurface) DrawPicture(p Picture, x, y, scale float64) {
	rp, ok := p.(*RasterPicture)
	if !ok || rp.Image == nil {
		return
	}
	b := rp.Image.Bounds()
	aff := f64.Aff3{
		scale, 0, x - scale*float64(b.Min.X),
		0, scale, y - scale*float64(b.Min.Y),
	}
	draw.BiLinear.Transform(s.img, aff, rp.Image, b, draw.Over, nil)
}

func (s *RasterSurface) glyphHeight() float64 {
	return float64(s.face.Metrics().Height.Ceil())
}

// MeasureText scales the fixed face's advance to size
func (s *RasterSurface) MeasureText(text string, size float64) float64 {
	adv := font.MeasureString(s.face, text).Ceil()
	return float64(adv) * size / s.glyphHeight()
}

// DrawText paints text centered on x, y, rotated by angle radians
func (s *RasterSurface) DrawText(text string, x, y, size, angle, alpha float64) {
	w := font.MeasureString(s.face, text).Ceil()
	h := s.face.Metrics().Height.Ceil()
	if w == 0 || h == 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(color.NRGBA{0xff, 0xff, 0xff, uint8(math.Round(alpha * 0xff))}),
		Face: s.face,
		Dot:  fixed.P(0, s.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	k := size / float64(h)
	cos, sin := math.Cos(angle)*k, math.Sin(angle)*k
	hw, hh := float64(w)/2, float64(h)/2
	aff := f64.Aff3{
		cos, -sin, x - (cos*hw - sin*hh),
		sin, cos, y - (sin*hw + cos*hh),
	}
	draw.BiLinear.Transform(s.img, aff, glyphs, glyphs.Bounds(), draw.Over, nil)
}

// Listen records the acquisition; a raster surface has no input
func (s *RasterSurface) Listen(handle func(Event), protection models.Protection) func() {
	s.listening++
	released := false
	return func() {
		if !released {
			released = true
			s.listening--
		}
	}
}

// Listening reports how many listener sets are attached
func (s *RasterSurface) Listening() int {
	return s.listening
}
