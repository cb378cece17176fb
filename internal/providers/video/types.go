package video

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates the provider was built without credentials.
var ErrNotConfigured = errors.New("video: provider not configured")

// GenerateRequest describes one video generation. PromptImage, when set, is a
// base64 data URI that switches the provider into image-to-video mode.
type GenerateRequest struct {
	Prompt      string
	Length      string
	Scale       string
	PromptImage string
	RequestID   string
}

// Asset is the normalized video result.
type Asset struct {
	URL      string
	Format   string
	Provider string
}

// Generator is the contract implemented by video providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
	HasCredentials() bool
	Name() string
}

// Select returns the first configured provider, preferring earlier entries.
func Select(candidates ...Generator) Generator {
	for _, g := range candidates {
		if g != nil && g.HasCredentials() {
			return g
		}
	}
	return nil
}
