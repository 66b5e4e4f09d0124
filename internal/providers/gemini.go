package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
)

const (
	GeminiBaseURL            = "https://generativelanguage.googleapis.com/v1beta"
	GeminiDefaultModel       = "gemini-2.0-flash"
	GeminiDefaultRenderModel = "gemini-2.5-flash-image-preview"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	BaseURL     string
	Model       string        // Vision extraction and translation model
	RenderModel string        // Image generation model
	Timeout     time.Duration // Per-request HTTP timeout
	MaxRetries  uint          // Attempts for transient failures
	RetryDelay  time.Duration // Base delay between attempts
	HTTPClient  *http.Client  // Optional (tests)
}

// GeminiClient implements Extractor, Translator and Renderer against the
// Generative Language API.
type GeminiClient struct {
	apiKey      string
	baseURL     string
	model       string
	renderModel string
	maxRetries  uint
	retryDelay  time.Duration
	client      *http.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = GeminiDefaultModel
	}
	if cfg.RenderModel == "" {
		cfg.RenderModel = GeminiDefaultRenderModel
	}
	if cfg.Timeout == 0 {
		// Render calls can take minutes.
		cfg.Timeout = 10 * time.Minute
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &GeminiClient{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		renderModel: cfg.RenderModel,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		client:      client,
	}
}

// Configured reports whether an API key is set.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// ExtractRegions detects text regions in an image using the vision model.
func (c *GeminiClient) ExtractRegions(ctx context.Context, imageData []byte, mimeType string) ([]ExtractedRegion, error) {
	parts := []geminiPart{
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(imageData)}},
		{Text: extractionPrompt},
	}

	resp, err := c.generate(ctx, c.model, parts)
	if err != nil {
		return nil, err
	}

	text, err := resp.firstText()
	if err != nil {
		return nil, err
	}

	raw, err := parseModelJSON(text)
	if err != nil {
		return nil, fmt.Errorf("extraction response: %w", err)
	}
	if err := validateJSON(compiledExtractionSchema, raw); err != nil {
		return nil, fmt.Errorf("extraction response: %w", err)
	}

	var regions []ExtractedRegion
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	return regions, nil
}

// TranslateTexts translates an ordered list of strings to the target
// language. The response is position-correspondent with the input.
func (c *GeminiClient) TranslateTexts(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	parts := []geminiPart{{Text: translationPrompt(texts, targetLanguage)}}

	resp, err := c.generate(ctx, c.model, parts)
	if err != nil {
		return nil, err
	}

	text, err := resp.firstText()
	if err != nil {
		return nil, err
	}

	raw, err := parseModelJSON(text)
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

// RenderImage asks the image generation model for a new image with each
// replacement's translated text composited over its pixel rectangle.
func (c *GeminiClient) RenderImage(ctx context.Context, imageData []byte, mimeType string, replacements []Replacement) ([]byte, error) {
	parts := []geminiPart{
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(imageData)}},
		{Text: renderPrompt(replacements)},
	}

	resp, err := c.generate(ctx, c.renderModel, parts)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode generated image data: %w", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("no image data in generation response")
}

// generate posts a generateContent request, retrying transient failures.
func (c *GeminiClient) generate(ctx context.Context, model string, parts []geminiPart) (*geminiResponse, error) {
	reqBody := geminiRequest{Contents: []geminiContent{{Parts: parts}}}

	var resp *geminiResponse
	err := retry.Do(
		func() error {
			var err error
			resp, err = c.doRequest(ctx, model, reqBody)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetries),
		retry.Delay(c.retryDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// doRequest makes a single HTTP request to the Generative Language API.
func (c *GeminiClient) doRequest(ctx context.Context, model string, body any) (*geminiResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyAPIError(resp.StatusCode, respBody)
	}

	var genResp geminiResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &genResp, nil
}

// apiError is a non-2xx response from the service.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gemini error (status %d): %s", e.Status, e.Message)
}

func classifyAPIError(status int, body []byte) error {
	var errResp geminiErrorResponse
	msg := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	if isTooLargeMessage(msg) {
		return fmt.Errorf("%w: %s", ErrImageTooLarge, msg)
	}
	return &apiError{Status: status, Message: msg}
}

func isTooLargeMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "exceeds pixel limit") ||
		strings.Contains(lower, "image exceeds") ||
		strings.Contains(lower, "too large")
}

// isTransient reports whether a failure is worth retrying: connection
// failures and server-side throttling or 5xx. Size rejections and other
// 4xx errors are permanent.
func isTransient(err error) bool {
	if errors.Is(err, ErrImageTooLarge) {
		return false
	}
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusTooManyRequests || ae.Status >= 500
	}
	// Not an API status error: transport-level failure.
	return true
}

// Gemini API types

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

func (r *geminiResponse) firstText() (string, error) {
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Verify interfaces
var (
	_ Extractor  = (*GeminiClient)(nil)
	_ Translator = (*GeminiClient)(nil)
	_ Renderer   = (*GeminiClient)(nil)
)
