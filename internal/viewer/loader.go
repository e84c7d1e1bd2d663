package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	_ "golang.org/x/image/webp"
)

// Decoding limits. MaxImagePixels bounds the decoded buffer, which a small
// compressed file can otherwise inflate to gigabytes.
const (
	MaxImageBytes  = 32 << 20
	MaxImageSide   = 16384
	MaxImagePixels = 40_000_000
)

// ErrCrossOrigin is returned for a cross-origin load whose response does not allow the origin
var ErrCrossOrigin = errors.New("cross-origin access not allowed")

// decode reads and decodes an image, refusing oversized data
func decode(r io.Reader) (*RasterPicture, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width > MaxImageSide || cfg.Height > MaxImageSide {
		return nil, fmt.Errorf("image %dx%d exceeds %d pixels per side", cfg.Width, cfg.Height, MaxImageSide)
	}
	if cfg.Width*cfg.Height > MaxImagePixels {
		return nil, fmt.Errorf("image %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxImagePixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return &RasterPicture{Image: img}, nil
}

// FSLoader loads same-origin images from a file system, so cross-origin
// checks never apply
type FSLoader struct {
	FS fs.FS
}

// Load opens src relative to the file system root
func (l *FSLoader) Load(ctx context.Context, src string, crossOrigin bool) (Picture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(src, "/"))
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("invalid image path %q", src)
	}
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// HTTPLoader loads remote images. A cross-origin load sends Origin and
// requires a matching Access-Control-Allow-Origin in the response.
type HTTPLoader struct {
	Origin string
	client *retryablehttp.Client
}

// NewHTTPLoader creates a loader announcing origin on cross-origin loads
func NewHTTPLoader(origin string) *HTTPLoader {
	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = 0
	return &HTTPLoader{Origin: origin, client: client}
}

// Load fetches and decodes src
func (l *HTTPLoader) Load(ctx context.Context, src string, crossOrigin bool) (Picture, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	if crossOrigin {
		req.Header.Set("Origin", l.Origin)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %d", src, resp.StatusCode)
	}
	if crossOrigin {
		allowed := resp.Header.Get("Access-Control-Allow-Origin")
		if allowed != "*" && allowed != l.Origin {
			return nil, ErrCrossOrigin
		}
	}
	return decode(resp.Body)
}

// RouteLoader sends absolute http(s) URLs to Remote and everything else to Local
type RouteLoader struct {
	Local  Loader
	Remote Loader
}

// Load dispatches on the scheme of src
func (l *RouteLoader) Load(ctx context.Context, src string, crossOrigin bool) (Picture, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if l.Remote == nil {
			return nil, fmt.Errorf("remote images are disabled: %s", src)
		}
		return l.Remote.Load(ctx, src, crossOrigin)
	}
	return l.Local.Load(ctx, src, crossOrigin)
}
