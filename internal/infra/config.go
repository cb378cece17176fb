package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIOrg          string
	ChatModel          string
	ImageModel         string
	ImageFallbackModel string
	RunwayAPIKey       string
	RunwayBaseURL      string
	LumaAPIKey         string
	LumaBaseURL        string
	EnhanceTimeout     time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. No variable is mandatory at load time: a missing
// provider credential disables that provider and is surfaced per-request.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIOrg:          os.Getenv("OPENAI_ORG"),
		ChatModel:          getEnv("CHAT_MODEL", "gpt-4o-mini"),
		ImageModel:         getEnv("IMAGE_MODEL", "gpt-image-1"),
		ImageFallbackModel: getEnv("IMAGE_FALLBACK_MODEL", "dall-e-3"),
		RunwayAPIKey:       os.Getenv("RUNWAY_API_KEY"),
		RunwayBaseURL:      getEnv("RUNWAY_BASE_URL", "https://api.dev.runwayml.com/v1"),
		LumaAPIKey:         os.Getenv("LUMA_API_KEY"),
		LumaBaseURL:        getEnv("LUMA_BASE_URL", "https://api.lumalabs.ai/dream-machine/v1"),
		EnhanceTimeout:     time.Second * time.Duration(getEnvInt("ENHANCE_TIMEOUT_SECONDS", 20)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	return cfg, nil
}

// HasOpenAI reports whether the OpenAI credential is configured. It gates both
// the chat enhancer and the image branch.
func (c *Config) HasOpenAI() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

// HasRunway reports whether the Runway video provider is configured.
func (c *Config) HasRunway() bool {
	return strings.TrimSpace(c.RunwayAPIKey) != ""
}

// HasLuma reports whether the Luma video provider is configured.
func (c *Config) HasLuma() bool {
	return strings.TrimSpace(c.LumaAPIKey) != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
