package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// geminiTestServer fakes the generateContent endpoint with a fixed response
// body per request, recording how many calls arrived.
func geminiTestServer(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewGeminiClient(GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	return client, &calls
}

func textResponse(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{Text: text}}},
		}},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestGeminiClientConfigured(t *testing.T) {
	if NewGeminiClient(GeminiConfig{}).Configured() {
		t.Error("client with no key reports configured")
	}
	if !NewGeminiClient(GeminiConfig{APIKey: "k"}).Configured() {
		t.Error("client with key reports unconfigured")
	}
}

func TestGeminiExtractRegions(t *testing.T) {
	t.Run("parses fenced response", func(t *testing.T) {
		body := "```json\n[{\"text\":\"Hello\",\"bbox\":[0.1,0.2,0.5,0.3]}]\n```"
		client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(textResponse(body))
		})

		regions, err := client.ExtractRegions(context.Background(), []byte("img"), "image/png")
		if err != nil {
			t.Fatalf("ExtractRegions: %v", err)
		}
		if len(regions) != 1 || regions[0].Text != "Hello" {
			t.Fatalf("regions = %+v", regions)
		}
		if regions[0].BBox != [4]float64{0.1, 0.2, 0.5, 0.3} {
			t.Errorf("bbox = %v", regions[0].BBox)
		}
	})

	t.Run("rejects schema-violating response", func(t *testing.T) {
		client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(textResponse(`[{"text":"no bbox here"}]`))
		})
		if _, err := client.ExtractRegions(context.Background(), []byte("img"), "image/png"); err == nil {
			t.Error("expected schema validation error")
		}
	})

	t.Run("retries server errors", func(t *testing.T) {
		client, calls := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.ExtractRegions(context.Background(), []byte("img"), "image/png")
		if err == nil {
			t.Fatal("expected error")
		}
		if *calls < 2 {
			t.Errorf("calls = %d, want retries", *calls)
		}
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		client, calls := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"code":400,"message":"invalid argument"}}`)
		})
		if _, err := client.ExtractRegions(context.Background(), []byte("img"), "image/png"); err == nil {
			t.Fatal("expected error")
		}
		if *calls != 1 {
			t.Errorf("calls = %d, want 1", *calls)
		}
	})
}

func TestGeminiTranslateTexts(t *testing.T) {
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(`["Hola","Mundo"]`))
	})

	out, err := client.TranslateTexts(context.Background(), []string{"Hello", "World"}, "Spanish")
	if err != nil {
		t.Fatalf("TranslateTexts: %v", err)
	}
	if len(out) != 2 || out[0] != "Hola" || out[1] != "Mundo" {
		t.Errorf("out = %v", out)
	}
}

func TestClassifyAPIError(t *testing.T) {
	t.Run("structured error message", func(t *testing.T) {
		err := classifyAPIError(400, []byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
		var ae *apiError
		if !errors.As(err, &ae) {
			t.Fatalf("err = %T", err)
		}
		if ae.Status != 400 || ae.Message != "bad request" {
			t.Errorf("apiError = %+v", ae)
		}
	})

	t.Run("unstructured body kept verbatim", func(t *testing.T) {
		err := classifyAPIError(502, []byte("upstream unavailable"))
		var ae *apiError
		if !errors.As(err, &ae) {
			t.Fatalf("err = %T", err)
		}
		if ae.Message != "upstream unavailable" {
			t.Errorf("message = %q", ae.Message)
		}
	})

	t.Run("pixel limit maps to ErrImageTooLarge", func(t *testing.T) {
		err := classifyAPIError(400, []byte(`{"error":{"message":"Input image exceeds pixel limit"}}`))
		if !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("err = %v, want ErrImageTooLarge", err)
		}
	})
}

func TestIsTooLargeMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Input image exceeds pixel limit of 20000000", true},
		{"The IMAGE EXCEEDS the allowed size", true},
		{"Request payload too large", true},
		{"invalid argument", false},
	}
	for _, tc := range tests {
		if got := isTooLargeMessage(tc.msg); got != tc.want {
			t.Errorf("isTooLargeMessage(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &apiError{Status: 429}, true},
		{"server error", &apiError{Status: 500}, true},
		{"client error", &apiError{Status: 400}, false},
		{"too large", fmt.Errorf("%w: detail", ErrImageTooLarge), false},
		{"transport failure", &url.Error{Op: "Post", URL: "http://x", Err: fmt.Errorf("connection refused")}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTransient(tc.err); got != tc.want {
				t.Errorf("isTransient = %v, want %v", got, tc.want)
			}
		})
	}
}
