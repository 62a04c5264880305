package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPConfig configures an HTTPGenerator.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPGenerator calls the explanation service's /v1/explain endpoint.
type HTTPGenerator struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewHTTPGenerator creates a Generator backed by the explanation service.
func NewHTTPGenerator(cfg HTTPConfig) (*HTTPGenerator, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("http generator: BaseURL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPGenerator{
		client:  &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
	}, nil
}

func (g *HTTPGenerator) Name() string { return "http" }

type explainRequest struct {
	ScanData     json.RawMessage `json:"scan_data"`
	Jurisdiction string          `json:"jurisdiction,omitempty"`
}

type explainResponse struct {
	types.StructuredResponse
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate posts the scan payload and decodes the structured explanation.
func (g *HTTPGenerator) Generate(ctx context.Context, scanData json.RawMessage, jurisdiction string) (*types.StructuredResponse, error) {
	body, err := json.Marshal(explainRequest{ScanData: scanData, Jurisdiction: jurisdiction})
	if err != nil {
		return nil, fmt.Errorf("explain: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/explain", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("explain: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explain: http: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("explain: read body: %w", err)
	}

	var out explainResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("explain: decode response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("explain: service error (%s): %s", out.Error.Type, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explain: unexpected status %d", resp.StatusCode)
	}

	return &out.StructuredResponse, nil
}
