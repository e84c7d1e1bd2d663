package viewer

import (
	"context"
	"errors"
	"fmt"

	"portfolio.dconn.dev/internal/models"
)

// Phase is the lifecycle position of a viewer
type Phase int

const (
	Closed Phase = iota
	Opening
	Fitted
	Interactive
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Fitted:
		return "fitted"
	case Interactive:
		return "interactive"
	}
	return "unknown"
}

// ErrClosed is returned by Open when the session was closed while loading
var ErrClosed = errors.New("viewer closed while opening")

// MediaLoadError reports an image that failed to load on both attempts
type MediaLoadError struct {
	Src string
	Err error
}

func (e *MediaLoadError) Error() string {
	return fmt.Sprintf("loading image %s: %v", e.Src, e.Err)
}

func (e *MediaLoadError) Unwrap() error {
	return e.Err
}

// Picture is a decoded image owned by a host
type Picture interface {
	Size() (w, h int)
}

// Surface is something the viewer can paint on
type Surface interface {
	Size() (w, h float64)
	Clear()
	DrawPicture(p Picture, x, y, scale float64)
	MeasureText(text string, size float64) float64
	DrawText(text string, x, y, size, angle, alpha float64)
}

// Host is a surface that also delivers input. Listen attaches the input
// listeners and returns the function that detaches all of them.
type Host interface {
	Surface
	Listen(handle func(Event), protection models.Protection) (release func())
}

// Loader fetches and decodes an image. With crossOrigin set the load must
// satisfy cross-origin checks.
type Loader interface {
	Load(ctx context.Context, src string, crossOrigin bool) (Picture, error)
}

// Options configures a Viewer
type Options struct {
	// OnClose runs once each time an open session closes
	OnClose func()
}

// Viewer presents one image at a time on a host
type Viewer struct {
	host    Host
	loader  Loader
	opts    Options
	phase   Phase
	state   *State
	picture Picture
	label   string
	loadErr error
	release func()
}

// New creates a closed viewer on host
func New(host Host, loader Loader, opts Options) *Viewer {
	return &Viewer{host: host, loader: loader, opts: opts}
}

// Open loads src and shows it with the watermark label. Input listeners are
// held from the start of Open until Close. A failed image load is not an
// error: the session opens blank and Err reports the failure.
func (v *Viewer) Open(ctx context.Context, src, label string) (err error) {
	v.Close()

	v.phase = Opening
	v.label = label
	v.release = v.host.Listen(v.Handle, models.ProtectionFor(models.MediaItem{Type: models.MediaImage, Src: src}))
	defer func() {
		if err != nil {
			v.Close()
		}
	}()

	picture, loadErr := v.load(ctx, src)
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.phase != Opening {
		return ErrClosed
	}

	v.picture = picture
	v.loadErr = loadErr

	var iw, ih float64
	if picture != nil {
		w, h := picture.Size()
		iw, ih = float64(w), float64(h)
	}
	vw, vh := v.host.Size()
	v.state = NewState(iw, ih, vw, vh)
	v.phase = Fitted

	v.Redraw()
	v.phase = Interactive
	return nil
}

// load tries a cross-origin load, then once more without it
func (v *Viewer) load(ctx context.Context, src string) (Picture, error) {
	picture, err := v.loader.Load(ctx, src, true)
	if err == nil {
		return picture, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	picture, err = v.loader.Load(ctx, src, false)
	if err == nil {
		return picture, nil
	}
	return nil, &MediaLoadError{Src: src, Err: err}
}

// Close ends the session and detaches every listener. Closing a closed viewer does nothing.
func (v *Viewer) Close() {
	if v.release != nil {
		v.release()
		v.release = nil
	}
	if v.phase == Closed {
		return
	}
	v.phase = Closed
	v.state = nil
	v.picture = nil
	if v.opts.OnClose != nil {
		v.opts.OnClose()
	}
}

// Handle processes one input event from the host
func (v *Viewer) Handle(ev Event) {
	switch v.phase {
	case Closed:
		return
	case Opening, Fitted:
		if ev.Kind == HostClosed || (ev.Kind == Key && ev.Key == "Escape") {
			v.Close()
		}
		return
	}

	switch v.state.Apply(ev) {
	case ActionRedraw:
		v.Redraw()
	case ActionClose:
		v.Close()
	}
}

// Redraw paints the image, then the watermark regenerated for the current surface size
func (v *Viewer) Redraw() {
	if v.state == nil {
		return
	}
	v.host.Clear()
	if v.picture != nil {
		o := v.state.Origin()
		v.host.DrawPicture(v.picture, o.X, o.Y, v.state.Scale)
	}
	w, h := v.host.Size()
	LayoutWatermark(w, h, v.label, v.host.MeasureText).Draw(v.host)
}

// Phase returns the lifecycle phase
func (v *Viewer) Phase() Phase {
	return v.phase
}

// State returns the live transform, nil when closed
func (v *Viewer) State() *State {
	return v.state
}

// Err returns the image load failure of the current session, if any
func (v *Viewer) Err() error {
	return v.loadErr
}
