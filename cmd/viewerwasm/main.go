//go:build js && wasm

// Command viewerwasm runs the media viewer in the browser. Every element with
// a data-viewer-src attribute opens the viewer on click, in a popup window on
// wide screens and in a full-page overlay otherwise.
package main

import (
	"context"
	"fmt"
	"strconv"

	"syscall/js"

	"portfolio.dconn.dev/internal/models"
	"portfolio.dconn.dev/internal/viewer"
)

const defaultPopupMinWidth = 900

// popupOwnerKey marks the host that currently owns the named popup window
const popupOwnerKey = "__portfolioViewerOwner"

var (
	window      = js.Global()
	document    = window.Get("document")
	popupSerial int
)

func main() {
	body := document.Get("body")
	label := body.Get("dataset").Get("watermark").String()
	threshold := float64(defaultPopupMinWidth)
	if v, err := strconv.ParseFloat(body.Get("dataset").Get("popupMinWidth").String(), 64); err == nil && v > 0 {
		threshold = v
	}

	sessions := &viewer.Sessions{
		Launcher: viewer.Launcher{
			Threshold: threshold,
			Popup:     openPopup,
			Overlay:   openOverlay,
		},
		Loader:  jsLoader{},
		Dispose: func(h viewer.Host) { h.(*canvasHost).dispose() },
	}

	targets := document.Call("querySelectorAll", "[data-viewer-src]")
	for i := 0; i < targets.Length(); i++ {
		el := targets.Index(i)
		src := el.Get("dataset").Get("viewerSrc").String()
		el.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
			args[0].Call("preventDefault")
			// the running session is closed here, before any popup is reused
			v, _ := sessions.Start(window.Get("innerWidth").Float())
			go open(v, src, label)
			return nil
		}))
	}

	select {}
}

func open(v *viewer.Viewer, src, label string) {
	if err := v.Open(context.Background(), src, label); err != nil {
		window.Get("console").Call("warn", "viewer:", err.Error())
		return
	}
	if err := v.Err(); err != nil {
		window.Get("console").Call("warn", "viewer:", err.Error())
	}
}

// canvasHost is a viewer host backed by a canvas in some window's document
type canvasHost struct {
	win     js.Value
	doc     js.Value
	root    js.Value
	canvas  js.Value
	ctx     js.Value
	buttons map[string]js.Value
	popup   bool
	serial  int
}

func openOverlay() viewer.Host {
	root := document.Call("createElement", "div")
	root.Set("className", "viewer-overlay")
	document.Get("body").Call("appendChild", root)
	return newCanvasHost(window, document, root, false)
}

func openPopup() (viewer.Host, error) {
	win := window.Call("open", "", "portfolio-viewer", "width=1200,height=900")
	if win.IsNull() || win.IsUndefined() {
		return nil, viewer.ErrPopupBlocked
	}
	doc := win.Get("document")
	body := doc.Get("body")
	body.Set("innerHTML", "")
	body.Get("style").Set("margin", "0")
	body.Get("style").Set("background", "#111")
	body.Get("style").Set("overflow", "hidden")
	h := newCanvasHost(win, doc, body, true)
	popupSerial++
	h.serial = popupSerial
	win.Set(popupOwnerKey, h.serial)
	return h, nil
}

func newCanvasHost(win, doc, root js.Value, popup bool) *canvasHost {
	h := &canvasHost{win: win, doc: doc, root: root, popup: popup, buttons: map[string]js.Value{}}

	bar := doc.Call("createElement", "div")
	bar.Set("className", "viewer-toolbar")
	style := bar.Get("style")
	style.Set("position", "fixed")
	style.Set("top", "8px")
	style.Set("right", "8px")
	style.Set("zIndex", "2")
	for _, b := range []struct{ key, text, title string }{
		{"+", "+", "Zoom in"},
		{"-", "−", "Zoom out"},
		{"0", "Reset", "Reset zoom"},
		{"Escape", "×", "Close"},
	} {
		btn := doc.Call("createElement", "button")
		btn.Set("type", "button")
		btn.Set("textContent", b.text)
		btn.Set("title", b.title)
		bar.Call("appendChild", btn)
		h.buttons[b.key] = btn
	}
	root.Call("appendChild", bar)

	h.canvas = doc.Call("createElement", "canvas")
	h.canvas.Set("className", "viewer-canvas")
	h.canvas.Get("style").Set("display", "block")
	h.canvas.Get("style").Set("touchAction", "none")
	root.Call("appendChild", h.canvas)
	h.ctx = h.canvas.Call("getContext", "2d")
	h.fit()
	return h
}

// fit sizes the canvas to the host window
func (h *canvasHost) fit() {
	h.canvas.Set("width", h.win.Get("innerWidth").Int())
	h.canvas.Set("height", h.win.Get("innerHeight").Int())
}

func (h *canvasHost) dispose() {
	if h.popup {
		// a later host may have taken the named window over
		if h.win.Get("closed").Bool() || h.win.Get(popupOwnerKey).Int() != h.serial {
			return
		}
		h.win.Call("close")
		return
	}
	h.root.Call("remove")
}

func (h *canvasHost) Size() (float64, float64) {
	return h.canvas.Get("width").Float(), h.canvas.Get("height").Float()
}

func (h *canvasHost) Clear() {
	w, ht := h.Size()
	h.ctx.Set("fillStyle", "#111")
	h.ctx.Call("fillRect", 0, 0, w, ht)
}

func (h *canvasHost) DrawPicture(p viewer.Picture, x, y, scale float64) {
	pic, ok := p.(jsPicture)
	if !ok {
		return
	}
	w, ht := pic.Size()
	h.ctx.Call("drawImage", pic.img, x, y, float64(w)*scale, float64(ht)*scale)
}

func (h *canvasHost) MeasureText(text string, size float64) float64 {
	h.ctx.Set("font", canvasFont(size))
	return h.ctx.Call("measureText", text).Get("width").Float()
}

func (h *canvasHost) DrawText(text string, x, y, size, angle, alpha float64) {
	c := h.ctx
	c.Call("save")
	c.Set("globalAlpha", alpha)
	c.Set("font", canvasFont(size))
	c.Set("fillStyle", "#fff")
	c.Set("textAlign", "center")
	c.Set("textBaseline", "middle")
	c.Call("translate", x, y)
	c.Call("rotate", angle)
	c.Call("fillText", text, 0, 0)
	c.Call("restore")
}

func canvasFont(size float64) string {
	return fmt.Sprintf("%dpx sans-serif", int(size))
}

// Listen attaches every input listener of a session and returns their removal
func (h *canvasHost) Listen(handle func(viewer.Event), protection models.Protection) func() {
	var set listenerSet

	set.add(h.canvas, "mousedown", false, func(ev js.Value) {
		x, y := h.offset(ev)
		handle(viewer.Event{Kind: viewer.PointerDown, X: x, Y: y})
	})
	set.add(h.win, "mousemove", false, func(ev js.Value) {
		x, y := h.offset(ev)
		handle(viewer.Event{Kind: viewer.PointerMove, X: x, Y: y})
	})
	set.add(h.win, "mouseup", false, func(ev js.Value) {
		handle(viewer.Event{Kind: viewer.PointerUp})
	})
	set.add(h.canvas, "wheel", true, func(ev js.Value) {
		ev.Call("preventDefault")
		x, y := h.offset(ev)
		handle(viewer.Event{Kind: viewer.Wheel, X: x, Y: y, DeltaY: ev.Get("deltaY").Float()})
	})
	for name, kind := range map[string]viewer.EventKind{
		"touchstart":  viewer.TouchStart,
		"touchmove":   viewer.TouchMove,
		"touchend":    viewer.TouchEnd,
		"touchcancel": viewer.TouchEnd,
	} {
		kind := kind
		set.add(h.canvas, name, true, func(ev js.Value) {
			ev.Call("preventDefault")
			handle(viewer.Event{Kind: kind, Touches: h.touches(ev)})
		})
	}
	set.add(h.doc, "keydown", false, func(ev js.Value) {
		handle(viewer.Event{Kind: viewer.Key, Key: ev.Get("key").String()})
	})
	set.add(h.win, "resize", false, func(ev js.Value) {
		h.fit()
		w, ht := h.Size()
		handle(viewer.Event{Kind: viewer.Resize, Width: w, Height: ht})
	})
	if h.popup {
		set.add(h.win, "pagehide", false, func(ev js.Value) {
			handle(viewer.Event{Kind: viewer.HostClosed})
		})
	}
	for key, btn := range h.buttons {
		key := key
		set.add(btn, "click", false, func(ev js.Value) {
			handle(viewer.Event{Kind: viewer.Key, Key: key})
		})
	}
	if protection.NoContextMenu {
		set.add(h.canvas, "contextmenu", false, preventDefault)
	}
	if protection.NoDrag {
		set.add(h.canvas, "dragstart", false, preventDefault)
	}

	return set.release
}

func preventDefault(ev js.Value) {
	ev.Call("preventDefault")
}

func (h *canvasHost) offset(ev js.Value) (float64, float64) {
	rect := h.canvas.Call("getBoundingClientRect")
	return ev.Get("clientX").Float() - rect.Get("left").Float(),
		ev.Get("clientY").Float() - rect.Get("top").Float()
}

func (h *canvasHost) touches(ev js.Value) []viewer.Point {
	rect := h.canvas.Call("getBoundingClientRect")
	list := ev.Get("touches")
	points := make([]viewer.Point, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		t := list.Index(i)
		points = append(points, viewer.Point{
			X: t.Get("clientX").Float() - rect.Get("left").Float(),
			Y: t.Get("clientY").Float() - rect.Get("top").Float(),
		})
	}
	return points
}

type listener struct {
	target  js.Value
	name    string
	fn      js.Func
	options js.Value
}

// listenerSet tracks attached listeners so they can be removed together
type listenerSet struct {
	entries  []listener
	released bool
}

func (s *listenerSet) add(target js.Value, name string, nonPassive bool, handle func(js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		handle(args[0])
		return nil
	})
	options := js.ValueOf(map[string]any{"passive": !nonPassive})
	target.Call("addEventListener", name, fn, options)
	s.entries = append(s.entries, listener{target: target, name: name, fn: fn, options: options})
}

func (s *listenerSet) release() {
	if s.released {
		return
	}
	s.released = true
	for _, l := range s.entries {
		l.target.Call("removeEventListener", l.name, l.fn, l.options)
		l.fn.Release()
	}
	s.entries = nil
}

type jsPicture struct {
	img js.Value
}

func (p jsPicture) Size() (int, int) {
	return p.img.Get("naturalWidth").Int(), p.img.Get("naturalHeight").Int()
}

// jsLoader loads images through img elements
type jsLoader struct{}

func (jsLoader) Load(ctx context.Context, src string, crossOrigin bool) (viewer.Picture, error) {
	img := document.Call("createElement", "img")
	if crossOrigin {
		img.Set("crossOrigin", "anonymous")
	}

	done := make(chan error, 1)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- nil
		return nil
	})
	onError := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- fmt.Errorf("image failed to load")
		return nil
	})
	defer onLoad.Release()
	defer onError.Release()
	img.Set("onload", onLoad)
	img.Set("onerror", onError)
	img.Set("src", src)

	select {
	case err := <-done:
		img.Set("onload", js.Null())
		img.Set("onerror", js.Null())
		if err != nil {
			return nil, err
		}
		return jsPicture{img: img}, nil
	case <-ctx.Done():
		img.Set("onload", js.Null())
		img.Set("onerror", js.Null())
		img.Set("src", "")
		return nil, ctx.Err()
	}
}
