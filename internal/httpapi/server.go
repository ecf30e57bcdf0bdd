package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
	"github.com/Ovitozinn/luxe-dash-suite/internal/usecase"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
)

// Deps are the collaborators the API handlers are built from.
type Deps struct {
	Health     storage.HealthChecker
	Dashboard  *usecase.DashboardService
	Agenda     *usecase.AgendaService
	Contacts   *usecase.ContactsService
	Linker     usecase.ChatLinker
	Calendar   usecase.Calendar
	Classifier usecase.RecencyClassifier
	Publisher  usecase.DispatchPublisher
	Clock      usecase.Clock
}

// Options configures the HTTP server.
type Options struct {
	Port           int
	AllowedOrigins []string
	Version        string
}

// Server serves the dashboard JSON API plus the probe and metrics endpoints.
type Server struct {
	httpServer *http.Server
	router     chi.Router // Exposed through Handler for tests
	logger     *zap.Logger
}

// NewServer builds the router and wires every route.
func NewServer(opts Options, deps Deps, logger *zap.Logger) *Server {
	if deps.Clock == nil {
		deps.Clock = utils.Now
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestContext(logger))
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         300,
	}))

	h := &handlers{deps: deps}
	probes := &probes{health: deps.Health, version: opts.Version}

	r.Get("/health", probes.handleHealth)
	r.Get("/ready", probes.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.getDashboard)
		r.Get("/agenda", h.getAgenda)
		r.Get("/contacts", h.getContacts)
		r.Get("/dispatch/summary", h.getDispatchSummary)
		r.Post("/dispatch", h.postDispatch)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
		},
		router: r,
		logger: logger,
	}
}

// RegisterMetricsHandler adds the /metrics endpoint handler.
// Should only be called if metrics are enabled.
func (s *Server) RegisterMetricsHandler(handler http.Handler) {
	s.logger.Info("Registering /metrics endpoint")
	s.router.Handle("/metrics", handler)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving in the background. Listener errors are reported on the
// returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	utils.SafeGo(func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}, func(r interface{}, stack []byte) {
		s.logger.Error("[panic] HTTP server crashed", zap.Any("panic", r), zap.ByteString("stack", stack))
		errCh <- fmt.Errorf("http server panic: %v", r)
		close(errCh)
	})
	return errCh
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
