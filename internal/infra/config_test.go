package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("ENHANCE_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ImageModel != "gpt-image-1" || cfg.ImageFallbackModel != "dall-e-3" {
		t.Fatalf("image models = %q/%q", cfg.ImageModel, cfg.ImageFallbackModel)
	}
	if cfg.EnhanceTimeout != 20*time.Second {
		t.Fatalf("EnhanceTimeout = %v, want 20s", cfg.EnhanceTimeout)
	}
	if cfg.HasOpenAI() {
		t.Fatal("HasOpenAI should be false without a key")
	}
	if cfg.HasRunway() || cfg.HasLuma() {
		t.Fatal("video providers should be disabled without keys")
	}
}

func TestLoadConfigCredentialToggles(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RUNWAY_API_KEY", "rw-test")
	t.Setenv("LUMA_API_KEY", " ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.HasOpenAI() {
		t.Fatal("HasOpenAI should be true")
	}
	if !cfg.HasRunway() {
		t.Fatal("HasRunway should be true")
	}
	if cfg.HasLuma() {
		t.Fatal("HasLuma should be false for a blank key")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("ENHANCE_TIMEOUT_SECONDS", "5")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "7")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port = %q, want 1919", cfg.Port)
	}
	if cfg.EnhanceTimeout != 5*time.Second {
		t.Fatalf("EnhanceTimeout = %v, want 5s", cfg.EnhanceTimeout)
	}
	if cfg.RateLimitPerMin != 7 {
		t.Fatalf("RateLimitPerMin = %d, want 7", cfg.RateLimitPerMin)
	}
}
