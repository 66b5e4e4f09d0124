package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/config"
	"github.com/monkeytranslate/monkeytranslate/internal/edit"
	"github.com/monkeytranslate/monkeytranslate/internal/home"
	"github.com/monkeytranslate/monkeytranslate/internal/pipeline"
	"github.com/monkeytranslate/monkeytranslate/internal/providers"
	"github.com/monkeytranslate/monkeytranslate/internal/server/endpoints"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// Server is the main MonkeyTranslate HTTP server.
type Server struct {
	httpServer   *http.Server
	pageStore    store.Store
	orchestrator *pipeline.Orchestrator
	edits        *edit.Registry
	registry     *providers.Registry
	configMgr    *config.Manager
	homeDir      *home.Dir
	logger       *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Home is the directory for uploaded and rendered images
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		return nil, errors.New("home directory is required")
	}
	if err := cfg.Home.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to prepare home directory: %w", err)
	}

	// Create provider registry
	registry := providers.NewRegistry()
	registry.SetLogger(cfg.Logger)

	// If config manager provided, set up providers and hot reload
	if cfg.ConfigManager != nil {
		registry.Reload(cfg.ConfigManager.Get().ToProviderRegistryConfig())

		// Watch for config changes
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			registry.Reload(c.ToProviderRegistryConfig())
			cfg.Logger.Info("provider registry reloaded from config")
		})
	}

	pageStore := store.NewMemoryStore()
	edits := edit.NewRegistry()

	var maxPixels int
	var safetyMargin float64
	if cfg.ConfigManager != nil {
		render := cfg.ConfigManager.Get().Render
		maxPixels = render.MaxPixels
		safetyMargin = render.SafetyMargin
	}

	orchestrator := pipeline.New(pipeline.Config{
		Store:        pageStore,
		Extractor:    registry,
		Translator:   registry,
		Renderer:     registry,
		Edits:        edits,
		Logger:       cfg.Logger,
		RenderedDir:  cfg.Home.RenderedPath(),
		MaxPixels:    maxPixels,
		SafetyMargin: safetyMargin,
	})

	s := &Server{
		pageStore:    pageStore,
		orchestrator: orchestrator,
		edits:        edits,
		registry:     registry,
		configMgr:    cfg.ConfigManager,
		homeDir:      cfg.Home,
		logger:       cfg.Logger,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{SwaggerSpecPath: endpoints.GetSwaggerSpecPath()}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute, // Extraction and rendering calls are slow
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	// Create services struct for context enrichment
	s.services = &svcctx.Services{
		Store:        s.pageStore,
		Orchestrator: s.orchestrator,
		Edits:        s.edits,
		Providers:    s.registry,
		Config:       s.configMgr,
		Logger:       s.logger,
		Home:         s.homeDir,
	}

	if !s.registry.Configured() {
		s.logger.Warn("no Gemini API key configured; extraction, translation and rendering will fail")
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Store returns the page store.
func (s *Server) Store() store.Store {
	return s.pageStore
}

// Registry returns the provider registry.
func (s *Server) Registry() *providers.Registry {
	return s.registry
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until Start has run.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.services == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
