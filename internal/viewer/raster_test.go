package viewer

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a PNG whose header declares w by h but carries no pixel data
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale
	chunk := append([]byte("IHDR"), ihdr...)
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeRejectsOversizedImages(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
		want string
	}{
		{"side", 20000, 100, "per side"},
		{"pixels", 16000, 16000, "exceeds 40000000 pixels"},
		{"pixels under side limit", 8000, 6000, "exceeds 40000000 pixels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := fstest.MapFS{"bomb.png": {Data: pngHeader(tt.w, tt.h)}}

			_, err := (&FSLoader{FS: files}).Load(context.Background(), "bomb.png", false)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRasterViewerPaintsImageAndWatermark(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	files := fstest.MapFS{"img/red.png": {Data: pngBytes(t, 400, 300, red)}}
	surface := NewRasterSurface(200, 150)
	v := New(surface, &FSLoader{FS: files}, Options{})

	require.NoError(t, v.Open(context.Background(), "/img/red.png", "© Test"))

	require.NoError(t, v.Err())
	assert.InDelta(t, 0.5, v.State().Scale, 1e-9)
	assert.Equal(t, 1, surface.Listening())

	// the watermark lightens some of the red pixels
	img := surface.Image()
	pure, tinted := 0, 0
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			c := img.RGBAAt(x, y)
			if c.R < 0xf0 {
				continue
			}
			if c.G == 0 && c.B == 0 {
				pure++
			} else {
				tinted++
			}
		}
	}
	assert.Greater(t, pure, 0)
	assert.Greater(t, tinted, 0)

	v.Close()
	assert.Zero(t, surface.Listening())
}

func TestRasterViewerBlankOnMissingImage(t *testing.T) {
	surface := NewRasterSurface(100, 80)
	v := New(surface, &FSLoader{FS: fstest.MapFS{}}, Options{})

	require.NoError(t, v.Open(context.Background(), "missing.png", "mark"))

	var mediaErr *MediaLoadError
	assert.ErrorAs(t, v.Err(), &mediaErr)
	assert.Equal(t, Interactive, v.Phase())

	var buf bytes.Buffer
	require.NoError(t, surface.EncodePNG(&buf))
	assert.NotZero(t, buf.Len())
}

func TestMeasureTextScales(t *testing.T) {
	s := NewRasterSurface(10, 10)
	assert.InDelta(t, 2*s.MeasureText("abc", 13), s.MeasureText("abc", 26), 1e-9)
	assert.InDelta(t, 21, s.MeasureText("abc", 13), 1e-9)
}

func TestFSLoaderRejectsEscapes(t *testing.T) {
	l := &FSLoader{FS: fstest.MapFS{}}
	_, err := l.Load(context.Background(), "../etc/passwd", false)
	assert.Error(t, err)
	_, err = l.Load(context.Background(), "/", false)
	assert.Error(t, err)
}

func TestHTTPLoaderCrossOrigin(t *testing.T) {
	data := pngBytes(t, 4, 4, color.White)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Query().Get("expect_origin"), r.Header.Get("Origin"))
		if allow := r.URL.Query().Get("allow"); allow != "" {
			w.Header().Set("Access-Control-Allow-Origin", allow)
		}
		w.Write(data)
	}))
	defer srv.Close()
	l := NewHTTPLoader("http://portfolio.test")
	origin := "expect_origin=" + url.QueryEscape("http://portfolio.test")

	_, err := l.Load(context.Background(), srv.URL+"/a.png?"+origin, true)
	assert.ErrorIs(t, err, ErrCrossOrigin)

	pic, err := l.Load(context.Background(), srv.URL+"/a.png", false)
	require.NoError(t, err)
	w, h := pic.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	_, err = l.Load(context.Background(), srv.URL+"/a.png?allow=*&"+origin, true)
	assert.NoError(t, err)
}

func TestViewerRetriesRemoteWithoutCrossOrigin(t *testing.T) {
	data := pngBytes(t, 8, 8, color.White)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()
	loader := &RouteLoader{Local: &FSLoader{FS: fstest.MapFS{}}, Remote: NewHTTPLoader("http://portfolio.test")}
	v := New(NewRasterSurface(50, 50), loader, Options{})

	require.NoError(t, v.Open(context.Background(), srv.URL+"/b.png", "mark"))

	assert.NoError(t, v.Err())
	assert.Equal(t, 1.0, v.State().Scale)
}

func TestRouteLoaderWithoutRemote(t *testing.T) {
	l := &RouteLoader{Local: &FSLoader{FS: fstest.MapFS{}}}
	_, err := l.Load(context.Background(), "https://elsewhere.test/x.png", true)
	assert.Error(t, err)
}
