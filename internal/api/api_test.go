package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOutputTo(t *testing.T) {
	data := map[string]any{"name": "page-1", "count": 2}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatalf("OutputTo: %v", err)
		}
		var round map[string]any
		if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if round["name"] != "page-1" {
			t.Errorf("round-trip = %v", round)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatalf("OutputTo: %v", err)
		}
		if !strings.Contains(buf.String(), "name: page-1") {
			t.Errorf("yaml output = %q", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := OutputTo(&bytes.Buffer{}, OutputFormat("toml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	t.Cleanup(func() { SetOutputFormat("yaml") })

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("format = %q", GetOutputFormat())
	}
	SetOutputFormat("yaml")
	if GetOutputFormat() != OutputFormatYAML {
		t.Errorf("format = %q", GetOutputFormat())
	}
	SetOutputFormat("nonsense")
	if GetOutputFormat() != DefaultOutput {
		t.Errorf("unknown value did not fall back: %q", GetOutputFormat())
	}
}

func TestClient(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("get decodes response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/api/pages/p1" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode(payload{Name: "hello"})
		}))
		defer srv.Close()

		var out payload
		if err := NewClient(srv.URL).Get(context.Background(), "/api/pages/p1", &out); err != nil {
			t.Fatalf("Get: %v", err)
		}
		if out.Name != "hello" {
			t.Errorf("out = %+v", out)
		}
	})

	t.Run("post sends json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
			var in payload
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name != "sent" {
				t.Errorf("body = %+v (%v)", in, err)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		if err := NewClient(srv.URL).Post(context.Background(), "/x", payload{Name: "sent"}, nil); err != nil {
			t.Fatalf("Post: %v", err)
		}
	})

	t.Run("server error surfaces message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"page not found"}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL).Get(context.Background(), "/missing", nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "page not found") {
			t.Errorf("error %q does not carry server message", err)
		}
	})

	t.Run("delete tolerates empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := NewClient(srv.URL).Delete(context.Background(), "/x"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})
}
