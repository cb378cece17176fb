package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/infra"
)

// RunwayOptions configures the Runway client.
type RunwayOptions struct {
	APIKey       string
	BaseURL      string
	Model        string
	HTTPClient   *http.Client
	Logger       *infra.Logger
	PollInterval time.Duration
}

// Runway drives the Runway task API: one create call, then polling until the
// task settles.
type Runway struct {
	apiKey       string
	baseURL      string
	model        string
	httpClient   *http.Client
	logger       *infra.Logger
	pollInterval time.Duration
}

const runwayAPIVersion = "2024-11-06"

type runwayTaskRequest struct {
	Model       string `json:"model"`
	PromptText  string `json:"promptText"`
	PromptImage string `json:"promptImage,omitempty"`
	Ratio       string `json:"ratio,omitempty"`
	Duration    int    `json:"duration,omitempty"`
}

type runwayTask struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Output  []string `json:"output"`
	Failure string   `json:"failure"`
}

// NewRunway constructs the client with sane defaults.
func NewRunway(opts RunwayOptions) *Runway {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.dev.runwayml.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gen3a_turbo"
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Runway{
		apiKey:       strings.TrimSpace(opts.APIKey),
		baseURL:      baseURL,
		model:        model,
		httpClient:   httpClient,
		logger:       logger,
		pollInterval: interval,
	}
}

// Name identifies the provider in results and logs.
func (r *Runway) Name() string { return "runway" }

// HasCredentials reports whether the client can perform remote calls.
func (r *Runway) HasCredentials() bool { return r.apiKey != "" }

// Generate creates one video task and polls it to completion. Image-to-video
// mode is used when the request carries a prompt image.
func (r *Runway) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if !r.HasCredentials() {
		return nil, ErrNotConfigured
	}
	endpoint := r.baseURL + "/text_to_video"
	payload := runwayTaskRequest{
		Model:      r.model,
		PromptText: strings.TrimSpace(req.Prompt),
		Ratio:      runwayRatio(req.Scale),
		Duration:   parseSeconds(req.Length),
	}
	if img := strings.TrimSpace(req.PromptImage); img != "" {
		endpoint = r.baseURL + "/image_to_video"
		payload.PromptImage = img
	}

	task, err := r.createTask(ctx, endpoint, req.RequestID, payload)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Str("request_id", req.RequestID).
		Msg("runway: task created")

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("runway: task %s abandoned: %w", task.ID, ctx.Err())
		case <-ticker.C:
		}
		current, err := r.getTask(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		switch current.Status {
		case "SUCCEEDED":
			if len(current.Output) == 0 || current.Output[0] == "" {
				return nil, errors.New("runway: succeeded task has no output")
			}
			return &Asset{URL: current.Output[0], Format: "mp4", Provider: r.Name()}, nil
		case "FAILED":
			return nil, fmt.Errorf("runway: task failed: %s", current.Failure)
		}
	}
}

func (r *Runway) createTask(ctx context.Context, endpoint, requestID string, payload runwayTaskRequest) (*runwayTask, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("runway: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("runway: build request: %w", err)
	}
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}
	return r.do(httpReq)
}

func (r *Runway) getTask(ctx context.Context, id string) (*runwayTask, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/tasks/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("runway: build poll request: %w", err)
	}
	return r.do(httpReq)
}

func (r *Runway) do(req *http.Request) (*runwayTask, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("X-Runway-Version", runwayAPIVersion)
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("runway: http request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("runway: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("runway: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var task runwayTask
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, fmt.Errorf("runway: decode response: %w", err)
	}
	return &task, nil
}

func runwayRatio(scale string) string {
	switch strings.TrimSpace(scale) {
	case "2:3":
		return "768:1280"
	case "16:9":
		return "1280:768"
	default:
		return "1280:768"
	}
}

// parseSeconds extracts a leading integer from values like "10s" or "10
// seconds"; zero means provider default.
func parseSeconds(length string) int {
	trimmed := strings.TrimSpace(length)
	digits := trimmed
	for i, r := range trimmed {
		if r < '0' || r > '9' {
			digits = trimmed[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

var _ Generator = (*Runway)(nil)
