package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gemini.APIKey != "${GEMINI_API_KEY}" {
		t.Errorf("gemini api_key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Translator.Provider != "gemini" {
		t.Errorf("translator provider = %q", cfg.Translator.Provider)
	}
	if cfg.Render.MaxPixels != 20_000_000 {
		t.Errorf("max_pixels = %d", cfg.Render.MaxPixels)
	}
	if cfg.Render.SafetyMargin != 0.9 {
		t.Errorf("safety_margin = %v", cfg.Render.SafetyMargin)
	}
	if cfg.Defaults.TargetLanguage != "English" {
		t.Errorf("target_language = %q", cfg.Defaults.TargetLanguage)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != "8080" {
		t.Errorf("server = %s:%s", cfg.Server.Host, cfg.Server.Port)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("MT_TEST_KEY", "secret123")
	t.Setenv("MT_TEST_OTHER", "other")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single reference", "${MT_TEST_KEY}", "secret123"},
		{"embedded reference", "prefix-${MT_TEST_KEY}-suffix", "prefix-secret123-suffix"},
		{"multiple references", "${MT_TEST_KEY}:${MT_TEST_OTHER}", "secret123:other"},
		{"unset variable resolves empty", "${MT_TEST_UNSET_VAR}", ""},
		{"no reference passes through", "plain-value", "plain-value"},
		{"empty string", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveEnvVars(tc.input); got != tc.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestToProviderRegistryConfig(t *testing.T) {
	t.Setenv("MT_TEST_GEMINI", "gem-key")
	t.Setenv("MT_TEST_OPENAI", "oai-key")

	cfg := &Config{
		Gemini: GeminiCfg{
			APIKey:      "${MT_TEST_GEMINI}",
			Model:       "gemini-2.0-flash",
			RenderModel: "gemini-2.5-flash-image-preview",
		},
		Translator: TranslatorCfg{
			Provider: "openai",
			OpenAI: OpenAICfg{
				APIKey: "${MT_TEST_OPENAI}",
				Model:  "gpt-4o-mini",
			},
		},
	}

	rc := cfg.ToProviderRegistryConfig()
	if rc.Gemini.APIKey != "gem-key" {
		t.Errorf("gemini key = %q, want resolved value", rc.Gemini.APIKey)
	}
	if rc.TranslatorProvider != "openai" {
		t.Errorf("provider = %q", rc.TranslatorProvider)
	}
	if rc.OpenAI.APIKey != "oai-key" {
		t.Errorf("openai key = %q, want resolved value", rc.OpenAI.APIKey)
	}
	if rc.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", rc.Gemini.Model)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# MonkeyTranslate configuration") {
		t.Error("missing header comment")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid yaml: %v", err)
	}
	if cfg.Gemini.APIKey != "${GEMINI_API_KEY}" {
		t.Errorf("written api_key = %q, env reference should survive round-trip", cfg.Gemini.APIKey)
	}
	if cfg.Render.MaxPixels != 20_000_000 {
		t.Errorf("written max_pixels = %d", cfg.Render.MaxPixels)
	}
}
