package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tabreport/domain/report"
	"tabreport/internal"
	"tabreport/ports"
)

// App serves stored reports over HTTP: structured views, tabular views
// and dashboards, all reconstructed from payloads without recomputation.
type App struct {
	router   *chi.Mux
	store    ports.ReportStore
	registry *report.Registry
	log      *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(store ports.ReportStore, registry *report.Registry) *App {
	app := &App{
		router:   chi.NewRouter(),
		store:    store,
		registry: registry,
		log:      internal.DefaultLogger,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/health", a.handleHealth)

	a.router.Route("/api/reports", func(r chi.Router) {
		r.Get("/", a.handleListReports)
		r.Post("/", a.handleSaveReport)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handleStructured)
			r.Get("/tables", a.handleTables)
			r.Get("/dashboard", a.handleDashboard)
			r.Get("/payload", a.handlePayload)
			r.Delete("/", a.handleDeleteReport)
		})
	})
}

// Start runs the HTTP server
func (a *App) Start(config Config) error {
	a.log.Info("report server listening on port %s", config.Port)
	return http.ListenAndServe(":"+config.Port, a.router)
}

// Handler exposes the router for tests and custom servers
func (a *App) Handler() http.Handler {
	return a.router
}
