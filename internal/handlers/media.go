package handlers

import (
	"bytes"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"portfolio.dconn.dev/internal/config"
	"portfolio.dconn.dev/internal/middleware"
	"portfolio.dconn.dev/internal/viewer"
)

// maxZoomSteps bounds the zoom parameter of a preview
const maxZoomSteps = 30

// MediaHandler renders watermarked previews through the media viewer
type MediaHandler struct {
	loader viewer.Loader
	cfg    config.ViewerConfig
	log    logrus.FieldLogger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(loader viewer.Loader, cfg config.ViewerConfig, log logrus.FieldLogger) *MediaHandler {
	return &MediaHandler{loader: loader, cfg: cfg, log: log}
}

// View handles GET /media/view?src=&w=&h=&zoom=&dx=&dy=
// zoom counts keyboard zoom steps (negative zooms out), dx/dy pan in pixels.
func (h *MediaHandler) View(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	src := strings.TrimPrefix(query.Get("src"), "/static/")
	if src == "" {
		respondError(w, r, h.log, http.StatusBadRequest, "src is required")
		return
	}

	width := clamp(parseIntParam(r, "w", h.cfg.PreviewWidth), 16, h.cfg.MaxPreview)
	height := clamp(parseIntParam(r, "h", h.cfg.PreviewHeight), 16, h.cfg.MaxPreview)
	zoom := clamp(parseIntParam(r, "zoom", 0), -maxZoomSteps, maxZoomSteps)
	dx := parseFloatParam(r, "dx")
	dy := parseFloatParam(r, "dy")

	surface := viewer.NewRasterSurface(width, height)
	v := viewer.New(surface, h.loader, viewer.Options{})
	defer v.Close()

	log := h.log.WithFields(logrus.Fields{"request_id": middleware.GetRequestID(r.Context()), "src": src})
	if err := v.Open(r.Context(), src, h.cfg.Watermark); err != nil {
		log.WithError(err).Warn("viewer did not open")
		respondError(w, r, h.log, http.StatusServiceUnavailable, "Viewer unavailable")
		return
	}
	if err := v.Err(); err != nil {
		log.WithError(err).Warn("image failed to load")
		w.Header().Set("X-Media-Error", "load-failed")
	}

	key := "+"
	if zoom < 0 {
		key, zoom = "-", -zoom
	}
	for i := 0; i < zoom; i++ {
		v.Handle(viewer.Event{Kind: viewer.Key, Key: key})
	}
	if dx != 0 || dy != 0 {
		v.Handle(viewer.Event{Kind: viewer.PointerDown})
		v.Handle(viewer.Event{Kind: viewer.PointerMove, X: dx, Y: dy})
		v.Handle(viewer.Event{Kind: viewer.PointerUp})
	}

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		log.WithError(err).Error("encoding preview")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// parseFloatParam parses a finite float query parameter, 0 when absent or invalid
func parseFloatParam(r *http.Request, name string) float64 {
	f, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// clamp limits a value to a range
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
