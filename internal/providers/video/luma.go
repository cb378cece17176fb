package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LumaOptions configures the Luma Dream Machine client.
type LumaOptions struct {
	APIKey       string
	BaseURL      string
	HTTPClient   *http.Client
	PollInterval time.Duration
}

// Luma drives the Dream Machine generations API.
type Luma struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

type lumaGenerationRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type lumaGeneration struct {
	ID            string `json:"id"`
	State         string `json:"state"`
	FailureReason string `json:"failure_reason"`
	Assets        struct {
		Video string `json:"video"`
	} `json:"assets"`
}

// NewLuma constructs the client with sane defaults.
func NewLuma(opts LumaOptions) *Luma {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.lumalabs.ai/dream-machine/v1"
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Luma{
		apiKey:       strings.TrimSpace(opts.APIKey),
		baseURL:      baseURL,
		httpClient:   httpClient,
		pollInterval: interval,
	}
}

// Name identifies the provider in results and logs.
func (l *Luma) Name() string { return "luma" }

// HasCredentials reports whether the client can perform remote calls.
func (l *Luma) HasCredentials() bool { return l.apiKey != "" }

// Generate creates one generation and polls it until completed or failed.
func (l *Luma) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if !l.HasCredentials() {
		return nil, ErrNotConfigured
	}
	gen, err := l.post(ctx, req.RequestID, lumaGenerationRequest{
		Prompt:      strings.TrimSpace(req.Prompt),
		AspectRatio: lumaAspect(req.Scale),
	})
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("luma: generation %s abandoned: %w", gen.ID, ctx.Err())
		case <-ticker.C:
		}
		current, err := l.get(ctx, gen.ID)
		if err != nil {
			return nil, err
		}
		switch current.State {
		case "completed":
			if current.Assets.Video == "" {
				return nil, fmt.Errorf("luma: completed generation %s has no video", gen.ID)
			}
			return &Asset{URL: current.Assets.Video, Format: "mp4", Provider: l.Name()}, nil
		case "failed":
			return nil, fmt.Errorf("luma: generation failed: %s", current.FailureReason)
		}
	}
}

func (l *Luma) post(ctx context.Context, requestID string, payload lumaGenerationRequest) (*lumaGeneration, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("luma: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("luma: build request: %w", err)
	}
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	return l.do(req)
}

func (l *Luma) get(ctx context.Context, id string) (*lumaGeneration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/generations/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("luma: build poll request: %w", err)
	}
	return l.do(req)
}

func (l *Luma) do(req *http.Request) (*lumaGeneration, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.apiKey)
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("luma: http request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("luma: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("luma: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var gen lumaGeneration
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, fmt.Errorf("luma: decode response: %w", err)
	}
	return &gen, nil
}

func lumaAspect(scale string) string {
	switch strings.TrimSpace(scale) {
	case "2:3":
		return "3:4"
	case "16:9":
		return "16:9"
	default:
		return "16:9"
	}
}

var _ Generator = (*Luma)(nil)
