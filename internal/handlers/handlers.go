package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"portfolio.dconn.dev/internal/config"
	"portfolio.dconn.dev/internal/middleware"
	"portfolio.dconn.dev/internal/render"
	"portfolio.dconn.dev/internal/services"
	"portfolio.dconn.dev/internal/store"
	"portfolio.dconn.dev/internal/viewer"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, source store.Source, log logrus.FieldLogger, reg *prometheus.Registry) (http.Handler, error) {
	r := chi.NewRouter()

	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// Initialize services
	projectService := services.NewProjectService(source)
	renderer, err := render.NewRenderer(render.Options{
		SiteTitle:     cfg.Site.Title,
		Markdown:      cfg.Site.Markdown,
		Watermark:     cfg.Viewer.Watermark,
		PopupMinWidth: cfg.Viewer.PopupMinWidth,
	})
	if err != nil {
		return nil, err
	}

	loader := &viewer.RouteLoader{Local: &viewer.FSLoader{FS: os.DirFS(cfg.StaticDir)}}
	if cfg.Viewer.RemoteImages {
		loader.Remote = viewer.NewHTTPLoader(cfg.Site.Origin)
	}

	// Initialize handlers
	pageHandler := NewPageHandler(projectService, renderer, log)
	projectHandler := NewProjectHandler(projectService, log)
	mediaHandler := NewMediaHandler(loader, cfg.Viewer, log)

	// Pages
	r.Get("/", pageHandler.Index)
	r.Get("/index.html", pageHandler.Index)
	r.Get("/"+render.DetailPage, pageHandler.Project)
	r.Get("/projects.json", projectHandler.StoreDocument)
	r.Get("/media/view", mediaHandler.View)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, r, log, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Static files, also reachable from the site root for relative media paths
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))
	r.NotFound(fileServer.ServeHTTP)

	return r, nil
}

// respondJSON writes a JSON response, logging encode failures against the request
func respondJSON(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField("request_id", middleware.GetRequestID(r.Context())).WithError(err).Error("encoding JSON")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, status int, message string) {
	respondJSON(w, r, log, status, map[string]string{"error": message})
}
