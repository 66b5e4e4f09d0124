package providers

import "testing"

func TestRegistryReload(t *testing.T) {
	r := NewRegistry()

	if r.Configured() {
		t.Error("empty registry reports configured")
	}

	r.Reload(RegistryConfig{Gemini: GeminiConfig{APIKey: "k1"}})
	if !r.Configured() {
		t.Error("registry with key reports unconfigured")
	}
	first := r.Gemini()
	if first == nil {
		t.Fatal("Gemini() returned nil after reload")
	}

	// Reload swaps in fresh clients.
	r.Reload(RegistryConfig{Gemini: GeminiConfig{APIKey: "k2"}})
	if r.Gemini() == first {
		t.Error("reload did not rebuild the Gemini client")
	}
}

func TestRegistryTranslatorSelection(t *testing.T) {
	r := NewRegistry()

	r.Reload(RegistryConfig{Gemini: GeminiConfig{APIKey: "k"}})
	if _, ok := r.translator.(*GeminiClient); !ok {
		t.Errorf("default translator = %T, want *GeminiClient", r.translator)
	}

	r.Reload(RegistryConfig{
		Gemini:             GeminiConfig{APIKey: "k"},
		TranslatorProvider: "openai",
		OpenAI:             OpenAITranslatorConfig{APIKey: "ok"},
	})
	if _, ok := r.translator.(*OpenAITranslator); !ok {
		t.Errorf("translator = %T, want *OpenAITranslator", r.translator)
	}

	// Unknown providers fall back to Gemini.
	r.Reload(RegistryConfig{
		Gemini:             GeminiConfig{APIKey: "k"},
		TranslatorProvider: "mystery",
	})
	if _, ok := r.translator.(*GeminiClient); !ok {
		t.Errorf("fallback translator = %T, want *GeminiClient", r.translator)
	}
}
