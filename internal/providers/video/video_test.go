package video

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type scriptedTransport struct {
	requests []*http.Request
	bodies   [][]byte
	script   []*http.Response
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body.Close()
		s.bodies = append(s.bodies, body)
	} else {
		s.bodies = append(s.bodies, nil)
	}
	if len(s.script) == 0 {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader("out of script"))}, nil
	}
	resp := s.script[0]
	s.script = s.script[1:]
	return resp, nil
}

func jsonResponse(status int, payload any) *http.Response {
	body, _ := json.Marshal(payload)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func TestRunwayGeneratePollsToSuccess(t *testing.T) {
	t.Parallel()
	transport := &scriptedTransport{script: []*http.Response{
		jsonResponse(http.StatusOK, map[string]any{"id": "task-1", "status": "PENDING"}),
		jsonResponse(http.StatusOK, map[string]any{"id": "task-1", "status": "RUNNING"}),
		jsonResponse(http.StatusOK, map[string]any{"id": "task-1", "status": "SUCCEEDED", "output": []string{"https://cdn.runway/video.mp4"}}),
	}}
	client := NewRunway(RunwayOptions{
		APIKey:       "rw-test",
		HTTPClient:   &http.Client{Transport: transport},
		PollInterval: time.Millisecond,
	})

	asset, err := client.Generate(context.Background(), GenerateRequest{Prompt: "sizzling pho", Scale: "16:9", Length: "10s", RequestID: "req-9"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if asset.URL != "https://cdn.runway/video.mp4" || asset.Format != "mp4" || asset.Provider != "runway" {
		t.Fatalf("asset = %+v", asset)
	}
	if !strings.HasSuffix(transport.requests[0].URL.Path, "/text_to_video") {
		t.Fatalf("create path = %q", transport.requests[0].URL.Path)
	}
	var payload map[string]any
	if err := json.Unmarshal(transport.bodies[0], &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["duration"] != float64(10) {
		t.Fatalf("duration = %v, want 10", payload["duration"])
	}
	if _, ok := payload["promptImage"]; ok {
		t.Fatal("promptImage should be omitted for text-to-video")
	}
	if got := transport.requests[0].Header.Get("X-Request-ID"); got != "req-9" {
		t.Fatalf("create X-Request-ID = %q, want req-9", got)
	}
}

func TestRunwayImageToVideoMode(t *testing.T) {
	t.Parallel()
	transport := &scriptedTransport{script: []*http.Response{
		jsonResponse(http.StatusOK, map[string]any{"id": "task-2", "status": "PENDING"}),
		jsonResponse(http.StatusOK, map[string]any{"id": "task-2", "status": "SUCCEEDED", "output": []string{"https://cdn.runway/i2v.mp4"}}),
	}}
	client := NewRunway(RunwayOptions{
		APIKey:       "rw-test",
		HTTPClient:   &http.Client{Transport: transport},
		PollInterval: time.Millisecond,
	})

	_, err := client.Generate(context.Background(), GenerateRequest{
		Prompt:      "plated carbonara",
		PromptImage: "data:image/png;base64,aGVsbG8=",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.HasSuffix(transport.requests[0].URL.Path, "/image_to_video") {
		t.Fatalf("create path = %q", transport.requests[0].URL.Path)
	}
	var payload map[string]any
	if err := json.Unmarshal(transport.bodies[0], &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["promptImage"] != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("promptImage = %v", payload["promptImage"])
	}
}

func TestRunwayTaskFailure(t *testing.T) {
	t.Parallel()
	transport := &scriptedTransport{script: []*http.Response{
		jsonResponse(http.StatusOK, map[string]any{"id": "task-3", "status": "PENDING"}),
		jsonResponse(http.StatusOK, map[string]any{"id": "task-3", "status": "FAILED", "failure": "content policy"}),
	}}
	client := NewRunway(RunwayOptions{
		APIKey:       "rw-test",
		HTTPClient:   &http.Client{Transport: transport},
		PollInterval: time.Millisecond,
	})

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "content policy") {
		t.Fatalf("err = %v, want failure reason", err)
	}
}

func TestLumaGeneratePollsToSuccess(t *testing.T) {
	t.Parallel()
	transport := &scriptedTransport{script: []*http.Response{
		jsonResponse(http.StatusCreated, map[string]any{"id": "gen-1", "state": "queued"}),
		jsonResponse(http.StatusOK, map[string]any{"id": "gen-1", "state": "dreaming"}),
		jsonResponse(http.StatusOK, map[string]any{"id": "gen-1", "state": "completed", "assets": map[string]any{"video": "https://cdn.luma/video.mp4"}}),
	}}
	client := NewLuma(LumaOptions{
		APIKey:       "luma-test",
		HTTPClient:   &http.Client{Transport: transport},
		PollInterval: time.Millisecond,
	})

	asset, err := client.Generate(context.Background(), GenerateRequest{Prompt: "golden croissant", Scale: "2:3", RequestID: "req-11"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if asset.URL != "https://cdn.luma/video.mp4" || asset.Provider != "luma" {
		t.Fatalf("asset = %+v", asset)
	}
	var payload map[string]any
	if err := json.Unmarshal(transport.bodies[0], &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["aspect_ratio"] != "3:4" {
		t.Fatalf("aspect_ratio = %v, want 3:4", payload["aspect_ratio"])
	}
	if got := transport.requests[0].Header.Get("X-Request-ID"); got != "req-11" {
		t.Fatalf("create X-Request-ID = %q, want req-11", got)
	}
}

func TestSelectPrefersFirstConfigured(t *testing.T) {
	t.Parallel()
	runway := NewRunway(RunwayOptions{APIKey: ""})
	luma := NewLuma(LumaOptions{APIKey: "luma-test"})
	if got := Select(runway, luma); got == nil || got.Name() != "luma" {
		t.Fatalf("Select = %v, want luma", got)
	}
	if got := Select(NewRunway(RunwayOptions{}), NewLuma(LumaOptions{})); got != nil {
		t.Fatalf("Select = %v, want nil", got)
	}
	both := NewRunway(RunwayOptions{APIKey: "rw"})
	if got := Select(both, luma); got.Name() != "runway" {
		t.Fatalf("Select = %v, want runway", got)
	}
}

func TestGenerateWithoutCredentials(t *testing.T) {
	t.Parallel()
	if _, err := NewRunway(RunwayOptions{}).Generate(context.Background(), GenerateRequest{Prompt: "p"}); err != ErrNotConfigured {
		t.Fatalf("runway err = %v, want ErrNotConfigured", err)
	}
	if _, err := NewLuma(LumaOptions{}).Generate(context.Background(), GenerateRequest{Prompt: "p"}); err != ErrNotConfigured {
		t.Fatalf("luma err = %v, want ErrNotConfigured", err)
	}
}
