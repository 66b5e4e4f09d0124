package config

// Config holds monkeytranslate configuration.
// Stored at: ./config.yaml or ~/.monkeytranslate/config.yaml
type Config struct {
	Gemini     GeminiCfg     `mapstructure:"gemini" yaml:"gemini"`
	Translator TranslatorCfg `mapstructure:"translator" yaml:"translator"`
	Render     RenderCfg     `mapstructure:"render" yaml:"render"`
	Defaults   DefaultsCfg   `mapstructure:"defaults" yaml:"defaults"`
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
}

// GeminiCfg configures the Gemini client used for extraction, translation
// and image generation.
type GeminiCfg struct {
	APIKey      string `mapstructure:"api_key" yaml:"api_key"`           // Supports ${ENV_VAR} syntax
	Model       string `mapstructure:"model" yaml:"model"`               // Vision/translation model
	RenderModel string `mapstructure:"render_model" yaml:"render_model"` // Image generation model
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`         // Override for tests/proxies
}

// TranslatorCfg selects the translation backend.
type TranslatorCfg struct {
	Provider string    `mapstructure:"provider" yaml:"provider"` // "gemini" (default) or "openai"
	OpenAI   OpenAICfg `mapstructure:"openai" yaml:"openai"`
}

// OpenAICfg configures the optional OpenAI translation backend.
type OpenAICfg struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"` // Supports ${ENV_VAR} syntax
	Model  string `mapstructure:"model" yaml:"model"`
}

// RenderCfg bounds the image sent to the generation service.
type RenderCfg struct {
	// MaxPixels is the service's input pixel ceiling.
	MaxPixels int `mapstructure:"max_pixels" yaml:"max_pixels"`
	// SafetyMargin is applied inside the downscale factor to absorb
	// rounding (0 < margin <= 1).
	SafetyMargin float64 `mapstructure:"safety_margin" yaml:"safety_margin"`
}

// DefaultsCfg holds user-facing defaults.
type DefaultsCfg struct {
	TargetLanguage string `mapstructure:"target_language" yaml:"target_language"`
}

// ServerCfg holds HTTP server settings.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiCfg{
			APIKey: "${GEMINI_API_KEY}",
		},
		Translator: TranslatorCfg{
			Provider: "gemini",
			OpenAI: OpenAICfg{
				APIKey: "${OPENAI_API_KEY}",
			},
		},
		Render: RenderCfg{
			MaxPixels:    20_000_000,
			SafetyMargin: 0.9,
		},
		Defaults: DefaultsCfg{
			TargetLanguage: "English",
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}
