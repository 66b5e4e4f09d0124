// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/monkeytranslate/monkeytranslate/internal/config"
	"github.com/monkeytranslate/monkeytranslate/internal/edit"
	"github.com/monkeytranslate/monkeytranslate/internal/home"
	"github.com/monkeytranslate/monkeytranslate/internal/pipeline"
	"github.com/monkeytranslate/monkeytranslate/internal/providers"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Store        store.Store
	Orchestrator *pipeline.Orchestrator
	Edits        *edit.Registry
	Providers    *providers.Registry
	Config       *config.Manager
	Logger       *slog.Logger
	Home         *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// StoreFrom extracts the page store from context.
func StoreFrom(ctx context.Context) store.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Store
	}
	return nil
}

// OrchestratorFrom extracts the pipeline orchestrator from context.
func OrchestratorFrom(ctx context.Context) *pipeline.Orchestrator {
	if s := ServicesFrom(ctx); s != nil {
		return s.Orchestrator
	}
	return nil
}

// EditsFrom extracts the edit session registry from context.
func EditsFrom(ctx context.Context) *edit.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Edits
	}
	return nil
}

// ProvidersFrom extracts the provider registry from context.
func ProvidersFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Providers
	}
	return nil
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
