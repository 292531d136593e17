package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"faq-studio/internal/core"
	"faq-studio/internal/features/questions"
	"faq-studio/internal/features/recent"
	"faq-studio/internal/server/handlers"
	"faq-studio/views"
)

// Version is stamped at build time with -ldflags "-X faq-studio/internal/server.Version=..."
var Version = "dev"

type Server struct {
	config    *core.Config
	logger    *core.Logger
	db        *core.Database
	metrics   *core.Metrics
	registry  *core.Registry
	questions *questions.Feature
	handler   http.Handler
	server    *http.Server
}

// New wires the features described by config into a server. The database
// is only opened when the questions backend is enabled.
func New(config *core.Config, logger *core.Logger) (*Server, error) {
	var db *core.Database
	if config.IsFeatureEnabled("questions") {
		var err error
		db, err = core.OpenDatabase(config, logger)
		if err != nil {
			return nil, err
		}
	}

	metrics := core.NewMetrics()
	registry := core.NewRegistry(logger)

	questionsFeature := questions.NewFeature(logger, db, questions.NewConfig(config))
	recentFeature := recent.NewFeature(logger, recent.NewConfig(config), nil, metrics.Registerer())

	for _, feature := range []core.Feature{questionsFeature, recentFeature} {
		if err := registry.Register(feature); err != nil {
			if db != nil {
				db.Close()
			}
			return nil, fmt.Errorf("failed to register %s feature: %w", feature.Name(), err)
		}
	}

	srv := &Server{
		config:    config,
		logger:    logger,
		db:        db,
		metrics:   metrics,
		registry:  registry,
		questions: questionsFeature,
	}

	if err := srv.setupRoutes(); err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	return srv, nil
}

func (s *Server) setupRoutes() error {
	assets, err := fs.Sub(views.Assets, "assets")
	if err != nil {
		return fmt.Errorf("failed to open embedded assets: %w", err)
	}

	portalHandler := handlers.NewPortalHandler(s.logger, s.registry, s.db, Version)

	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)

	mux.Get("/", portalHandler.IndexHandler)
	mux.Get("/health", portalHandler.HealthCheckHandler)
	mux.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	mux.Method(http.MethodGet, "/assets/*", handlers.StaticHandler(assets))

	// Feature routes
	for _, route := range s.registry.GetAllRoutes() {
		mux.Method(route.Method, route.Path, route.Handler)
	}

	s.handler = mux
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler: mux,
	}
	return nil
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Questions returns the questions backend feature
func (s *Server) Questions() *questions.Feature {
	return s.questions
}

// Init initializes every enabled feature
func (s *Server) Init(ctx context.Context) error {
	if err := s.registry.InitAll(ctx); err != nil {
		s.logger.Error("Failed to initialize features", "error", err)
		return err
	}
	return nil
}

// Start initializes the features and serves HTTP until Shutdown is called
func (s *Server) Start(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	s.logger.Info("Starting server", "host", s.config.Server.Host, "port", s.config.Server.Port)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, the features and the database, in that order
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
	}

	if err := s.registry.ShutdownAll(ctx); err != nil {
		errs = append(errs, err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
