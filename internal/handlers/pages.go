package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"portfolio.dconn.dev/internal/middleware"
	"portfolio.dconn.dev/internal/render"
	"portfolio.dconn.dev/internal/services"
)

// PageHandler serves the listing and detail pages
type PageHandler struct {
	projectService *services.ProjectService
	renderer       *render.Renderer
	log            logrus.FieldLogger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(ps *services.ProjectService, renderer *render.Renderer, log logrus.FieldLogger) *PageHandler {
	return &PageHandler{projectService: ps, renderer: renderer, log: log}
}

// Index handles GET / with one card per project
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithField("request_id", middleware.GetRequestID(r.Context()))

	projects, err := h.projectService.GetAll(r.Context())
	if err != nil {
		log.WithError(err).Error("loading projects")
	}

	var buf bytes.Buffer
	if err := h.renderer.Index(&buf, render.BuildCards(projects), err != nil); err != nil {
		log.WithError(err).Error("rendering index")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

// Project handles GET /project.html?id=<id>[&media=<n>]
func (h *PageHandler) Project(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithField("request_id", middleware.GetRequestID(r.Context()))
	query := r.URL.Query()
	id := query.Get("id")
	selected, _ := strconv.Atoi(query.Get("media"))

	detail := h.renderer.BuildDetail(r.Context(), h.projectService, id, selected)
	switch detail.State {
	case render.StateNotFound:
		log.WithField("id", id).Debug("project not found")
	case render.StateLoadError:
		log.WithField("id", id).WithError(detail.Err).Error("loading project")
	}

	var buf bytes.Buffer
	if err := h.renderer.Project(&buf, detail); err != nil {
		log.WithError(err).Error("rendering project")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
