package image

import "context"

// GenerateRequest describes a normalized request passed to the image
// orchestrator. Prompt is the final directive, already enhanced and sanitized.
type GenerateRequest struct {
	Prompt    string
	Scale     string
	RequestID string
}

// Asset represents one generated image.
type Asset struct {
	B64    string
	Format string
	Model  string
}

// Generator is the contract implemented by image backends.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}
