package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"portfolio.dconn.dev/internal/middleware"
	"portfolio.dconn.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	log            logrus.FieldLogger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, log logrus.FieldLogger) *ProjectHandler {
	return &ProjectHandler{projectService: ps, log: log}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetAll(r.Context())
	if err != nil {
		h.log.WithField("request_id", middleware.GetRequestID(r.Context())).WithError(err).Error("loading projects")
		respondError(w, r, h.log, http.StatusBadGateway, "Unable to load projects")
		return
	}
	respondJSON(w, r, h.log, http.StatusOK, projects)
}

// StoreDocument handles GET /projects.json with the store bytes unchanged
func (h *ProjectHandler) StoreDocument(w http.ResponseWriter, r *http.Request) {
	data, err := h.projectService.Document(r.Context())
	if err != nil {
		h.log.WithField("request_id", middleware.GetRequestID(r.Context())).WithError(err).Error("reading store document")
		respondError(w, r, h.log, http.StatusBadGateway, "Unable to load projects")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		var nf *services.NotFoundError
		if errors.As(err, &nf) {
			respondError(w, r, h.log, http.StatusNotFound, "Project not found")
			return
		}
		h.log.WithField("request_id", middleware.GetRequestID(r.Context())).WithError(err).Error("loading project")
		respondError(w, r, h.log, http.StatusBadGateway, "Error loading project")
		return
	}

	respondJSON(w, r, h.log, http.StatusOK, project)
}
