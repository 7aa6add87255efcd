package rest

import (
	"context"
	"net/http"
	core_port "property-service/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// Handlers - все обработчики API
type Handlers struct {
	Owners     *OwnersHandler
	Properties *PropertiesHandler
	Images     *PropertyImagesHandler
	Traces     *PropertyTracesHandler
	Health     *HealthHandler
}

func NewServer(port string, allowedOrigins []string, handlers Handlers, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(allowedOrigins, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает chi-роутер со всеми маршрутами /api
func NewRouter(allowedOrigins []string, h Handlers, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/owners", func(r chi.Router) {
			r.Get("/", h.Owners.List)
			r.Post("/", h.Owners.Create)
			r.Get("/{id}", h.Owners.GetByID)
			r.Put("/{id}", h.Owners.Update)
			r.Delete("/{id}", h.Owners.Delete)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.Properties.List)
			r.Post("/", h.Properties.Create)
			r.Get("/filter", h.Properties.Filter)
			r.Get("/owner/{ownerId}", h.Properties.ListByOwner)
			r.Get("/{id}", h.Properties.GetByID)
			r.Put("/{id}", h.Properties.Update)
			r.Delete("/{id}", h.Properties.Delete)
		})

		r.Route("/propertyimages", func(r chi.Router) {
			r.Get("/", h.Images.List)
			r.Post("/", h.Images.Create)
			r.Get("/property/{propertyId}", h.Images.ListByProperty)
			r.Get("/{id}", h.Images.GetByID)
			r.Put("/{id}", h.Images.Update)
			r.Delete("/{id}", h.Images.Delete)
		})

		r.Route("/propertytraces", func(r chi.Router) {
			r.Get("/", h.Traces.List)
			r.Post("/", h.Traces.Create)
			r.Get("/property/{propertyId}", h.Traces.ListByProperty)
			r.Delete("/property/{propertyId}", h.Traces.DeleteByProperty)
			r.Get("/{id}", h.Traces.GetByID)
			r.Put("/{id}", h.Traces.Update)
			r.Delete("/{id}", h.Traces.Delete)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
