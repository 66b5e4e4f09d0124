package providers

import (
	"context"
	"fmt"
)

// Mock implements all three provider interfaces with pluggable functions.
// Used by pipeline and endpoint tests.
type Mock struct {
	ExtractFunc   func(ctx context.Context, imageData []byte, mimeType string) ([]ExtractedRegion, error)
	TranslateFunc func(ctx context.Context, texts []string, targetLanguage string) ([]string, error)
	RenderFunc    func(ctx context.Context, imageData []byte, mimeType string, replacements []Replacement) ([]byte, error)

	// Call counters for assertions.
	ExtractCalls   int
	TranslateCalls int
	RenderCalls    int
}

func (m *Mock) ExtractRegions(ctx context.Context, imageData []byte, mimeType string) ([]ExtractedRegion, error) {
	m.ExtractCalls++
	if m.ExtractFunc == nil {
		return nil, fmt.Errorf("mock extract not configured")
	}
	return m.ExtractFunc(ctx, imageData, mimeType)
}

func (m *Mock) TranslateTexts(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	m.TranslateCalls++
	if m.TranslateFunc == nil {
		return nil, fmt.Errorf("mock translate not configured")
	}
	return m.TranslateFunc(ctx, texts, targetLanguage)
}

func (m *Mock) RenderImage(ctx context.Context, imageData []byte, mimeType string, replacements []Replacement) ([]byte, error) {
	m.RenderCalls++
	if m.RenderFunc == nil {
		return nil, fmt.Errorf("mock render not configured")
	}
	return m.RenderFunc(ctx, imageData, mimeType, replacements)
}

// StaticRegions returns an ExtractFunc that always reports the given
// regions.
func StaticRegions(regions ...ExtractedRegion) func(context.Context, []byte, string) ([]ExtractedRegion, error) {
	return func(context.Context, []byte, string) ([]ExtractedRegion, error) {
		return regions, nil
	}
}

// EchoRender returns a RenderFunc that hands the input image straight back.
func EchoRender() func(context.Context, []byte, string, []Replacement) ([]byte, error) {
	return func(_ context.Context, imageData []byte, _ string, _ []Replacement) ([]byte, error) {
		return imageData, nil
	}
}

var (
	_ Extractor  = (*Mock)(nil)
	_ Translator = (*Mock)(nil)
	_ Renderer   = (*Mock)(nil)
)
