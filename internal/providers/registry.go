package providers

import (
	"context"
	"log/slog"
	"sync"
)

// RegistryConfig defines the providers to instantiate from config.
// API keys are expected to be resolved already.
type RegistryConfig struct {
	Gemini GeminiConfig

	// TranslatorProvider selects the translation backend: "gemini" or "openai".
	TranslatorProvider string
	OpenAI             OpenAITranslatorConfig
}

// Registry holds the active extraction, translation and rendering clients.
// It supports config-driven instantiation, hot-reload, and provides
// thread-safe access. Registry itself satisfies Extractor, Translator and
// Renderer by delegating to the current clients.
type Registry struct {
	mu         sync.RWMutex
	gemini     *GeminiClient
	translator Translator
	logger     *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Reload rebuilds the clients from new configuration.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gemini = NewGeminiClient(cfg.Gemini)

	switch cfg.TranslatorProvider {
	case "openai":
		r.translator = NewOpenAITranslator(cfg.OpenAI)
		if r.logger != nil {
			r.logger.Info("translator backend selected", "provider", "openai", "model", cfg.OpenAI.Model)
		}
	default:
		r.translator = r.gemini
		if r.logger != nil {
			r.logger.Info("translator backend selected", "provider", "gemini")
		}
	}
}

// Gemini returns the current Gemini client.
func (r *Registry) Gemini() *GeminiClient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gemini
}

// Configured reports whether the Gemini API key is present.
func (r *Registry) Configured() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gemini != nil && r.gemini.Configured()
}

// ExtractRegions implements Extractor by delegating to the Gemini client.
func (r *Registry) ExtractRegions(ctx context.Context, imageData []byte, mimeType string) ([]ExtractedRegion, error) {
	r.mu.RLock()
	client := r.gemini
	r.mu.RUnlock()
	return client.ExtractRegions(ctx, imageData, mimeType)
}

// TranslateTexts implements Translator by delegating to the selected backend.
func (r *Registry) TranslateTexts(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	r.mu.RLock()
	translator := r.translator
	r.mu.RUnlock()
	return translator.TranslateTexts(ctx, texts, targetLanguage)
}

// RenderImage implements Renderer by delegating to the Gemini client.
func (r *Registry) RenderImage(ctx context.Context, imageData []byte, mimeType string, replacements []Replacement) ([]byte, error) {
	r.mu.RLock()
	client := r.gemini
	r.mu.RUnlock()
	return client.RenderImage(ctx, imageData, mimeType, replacements)
}
