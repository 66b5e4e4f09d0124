package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultModel = openai.ChatModelGPT4oMini

// OpenAITranslatorConfig holds configuration for the OpenAI translator.
type OpenAITranslatorConfig struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	BaseURL    string       // Optional (tests)
	HTTPClient *http.Client // Optional (tests)
}

// OpenAITranslator implements Translator using the official OpenAI SDK.
// It is the alternative to the default Gemini translator, selected via
// configuration.
type OpenAITranslator struct {
	model  string
	client openai.Client
}

// NewOpenAITranslator creates a new OpenAI-backed translator.
func NewOpenAITranslator(cfg OpenAITranslatorConfig) *OpenAITranslator {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAITranslator{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

// TranslateTexts translates the numbered batch through a chat completion.
func (t *OpenAITranslator) TranslateTexts(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: t.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a translation engine. Answer with JSON only."),
			openai.UserMessage(translationPrompt(texts, targetLanguage)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai translation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in translation response")
	}

	raw, err := parseModelJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("translation response: %w", err)
	}
	if err := validateJSON(compiledTranslationSchema, raw); err != nil {
		return nil, fmt.Errorf("translation response: %w", err)
	}

	var translations []string
	if err := json.Unmarshal(raw, &translations); err != nil {
		return nil, fmt.Errorf("failed to decode translation response: %w", err)
	}
	return translations, nil
}

var _ Translator = (*OpenAITranslator)(nil)
