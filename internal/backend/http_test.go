package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labelwise-ai/labelwise/harness/internal/backend"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

func TestHTTPGenerator_Generate(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/explain" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req struct {
			ScanData     json.RawMessage `json:"scan_data"`
			Jurisdiction string          `json:"jurisdiction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Jurisdiction != "EU" {
			t.Errorf("jurisdiction: got %q", req.Jurisdiction)
		}

		resp := types.StructuredResponse{
			Summary:    "Soft cheese detected.",
			Disclaimer: "Not medical advice.",
			Reasons:    []string{"listeria risk"},
			Checks:     []string{"checked allergen registry"},
			Flags:      []string{"soft_cheese"},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	g, err := backend.NewHTTPGenerator(backend.HTTPConfig{BaseURL: srv.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewHTTPGenerator: %v", err)
	}

	got, err := g.Generate(context.Background(), json.RawMessage(`{"product": "brie"}`), "EU")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Summary != "Soft cheese detected." {
		t.Errorf("summary: got %q", got.Summary)
	}
	if !got.HasFlag("soft_cheese") {
		t.Errorf("flags: got %v", got.Flags)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header: got %q", gotAuth)
	}
}

func TestHTTPGenerator_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit"}}`))
	}))
	defer srv.Close()

	g, err := backend.NewHTTPGenerator(backend.HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewHTTPGenerator: %v", err)
	}
	if _, err := g.Generate(context.Background(), json.RawMessage(`{}`), ""); err == nil {
		t.Fatal("expected service error")
	}
}

func TestHTTPGenerator_RequiresBaseURL(t *testing.T) {
	if _, err := backend.NewHTTPGenerator(backend.HTTPConfig{}); err == nil {
		t.Fatal("expected error for empty BaseURL")
	}
}
