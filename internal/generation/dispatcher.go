package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"server/internal/dish"
	"server/internal/providers/image"
	"server/internal/providers/prompt"
	"server/internal/providers/video"
)

// ErrNoVideoProvider indicates no video credential is configured.
var ErrNoVideoProvider = errors.New("generation: no video provider configured")

// ErrEmptyPrompt rejects requests before any provider call.
var ErrEmptyPrompt = errors.New("generation: prompt is required")

// Parameters are the recognized generation options. Field tags follow the
// wire names used by the dashboard client.
type Parameters struct {
	Format        string `json:"Format"`
	Scale         string `json:"Scale"`
	Length        string `json:"Length"`
	VideoStyle    string `json:"Video Style"`
	Background    string `json:"Background"`
	UploadedImage string `json:"uploadedImage,omitempty"`
}

// Request is one generation invocation. Prompt is untrusted free text.
type Request struct {
	Prompt     string     `json:"prompt"`
	Parameters Parameters `json:"parameters"`
	RequestID  string     `json:"-"`
}

// Result is returned to the caller. Prompt echoes the directive actually sent
// to the provider, not the raw user prompt.
type Result struct {
	Type       string     `json:"type"`
	Content    string     `json:"content"`
	Format     string     `json:"format"`
	Parameters Parameters `json:"parameters"`
	Prompt     string     `json:"prompt"`
}

// Dispatcher routes requests to image or video generation and shapes results.
type Dispatcher struct {
	kb       *dish.KnowledgeBase
	enhancer prompt.Enhancer
	images   image.Generator
	videos   video.Generator
}

// NewDispatcher wires the pipeline. videos may be nil when no video provider
// is configured.
func NewDispatcher(kb *dish.KnowledgeBase, enhancer prompt.Enhancer, images image.Generator, videos video.Generator) *Dispatcher {
	return &Dispatcher{kb: kb, enhancer: enhancer, images: images, videos: videos}
}

// Generate runs one request through the pipeline. The knowledge base is the
// only state shared between invocations and it is read-only.
func (d *Dispatcher) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if strings.EqualFold(strings.TrimSpace(req.Parameters.Format), "video") {
		return d.generateVideo(ctx, req)
	}
	return d.generateImage(ctx, req)
}

func (d *Dispatcher) generateVideo(ctx context.Context, req Request) (*Result, error) {
	if d.videos == nil {
		return nil, ErrNoVideoProvider
	}
	enhanced, err := d.enhancer.Enhance(ctx, prompt.Request{
		Prompt:     req.Prompt,
		Format:     "Video",
		Scale:      req.Parameters.Scale,
		Length:     req.Parameters.Length,
		VideoStyle: req.Parameters.VideoStyle,
		Background: req.Parameters.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("generation: enhance: %w", err)
	}
	asset, err := d.videos.Generate(ctx, video.GenerateRequest{
		Prompt:      enhanced.Directive,
		Length:      req.Parameters.Length,
		Scale:       req.Parameters.Scale,
		PromptImage: req.Parameters.UploadedImage,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		Type:       "video",
		Content:    asset.URL,
		Format:     asset.Format,
		Parameters: req.Parameters,
		Prompt:     enhanced.Directive,
	}, nil
}

func (d *Dispatcher) generateImage(ctx context.Context, req Request) (*Result, error) {
	directive := d.buildImagePrompt(req)
	asset, err := d.images.Generate(ctx, image.GenerateRequest{
		Prompt:    directive,
		Scale:     req.Parameters.Scale,
		RequestID: req.RequestID,
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		Type:       "image",
		Content:    asset.B64,
		Format:     asset.Format,
		Parameters: req.Parameters,
		Prompt:     directive,
	}, nil
}

// buildImagePrompt prefixes the fixed marketing directive, appends the
// background clause, and sanitizes the result against the dish matched from
// the raw prompt so no forbidden ingredient ever reaches the provider.
func (d *Dispatcher) buildImagePrompt(req Request) string {
	sb := &strings.Builder{}
	sb.WriteString("Restaurant marketing photography: ")
	sb.WriteString(strings.TrimSpace(req.Prompt))
	if bg := strings.TrimSpace(req.Parameters.Background); bg != "" {
		fmt.Fprintf(sb, ", set in %s", bg)
	}
	sb.WriteString(". Appetizing, professional lighting, shallow depth of field.")
	return dish.Sanitize(sb.String(), d.kb.Match(req.Prompt))
}
