package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"server/internal/dish"
	"server/internal/providers/openai"
)

type chatClient interface {
	ChatComplete(ctx context.Context, req openai.ChatRequest) (string, error)
	HasCredentials() bool
}

// OpenAIOptions configures the chat-completion enhancer.
type OpenAIOptions struct {
	Client     chatClient
	Model      string
	Timeout    time.Duration
	KB         *dish.KnowledgeBase
	Fallback   Enhancer
	OnFallback func(reason string, err error)
}

// OpenAIEnhancer rewrites prompts through a chat-completion model. Enhancement
// is strictly best-effort: every failure between the HTTP call and payload
// extraction is absorbed and answered by the deterministic templater, so
// Enhance never returns an error for recoverable conditions.
type OpenAIEnhancer struct {
	client     chatClient
	model      string
	timeout    time.Duration
	kb         *dish.KnowledgeBase
	fallback   Enhancer
	onFallback func(reason string, err error)
}

const defaultChatModel = "gpt-4o-mini"

const maxCompletionTokens = 800

// NewOpenAIEnhancer wires the enhancer. KB is required; a nil Fallback gets a
// templater over the same knowledge base.
func NewOpenAIEnhancer(opts OpenAIOptions) (*OpenAIEnhancer, error) {
	if opts.KB == nil {
		return nil, errors.New("prompt: knowledge base is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultChatModel
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = NewTemplateEnhancer(opts.KB)
	}
	return &OpenAIEnhancer{
		client:     opts.Client,
		model:      model,
		timeout:    opts.Timeout,
		kb:         opts.KB,
		fallback:   fallback,
		onFallback: opts.OnFallback,
	}, nil
}

// Enhance implements the Enhancer interface.
func (o *OpenAIEnhancer) Enhance(ctx context.Context, req Request) (*Result, error) {
	if o.client == nil || !o.client.HasCredentials() {
		return o.useFallback(ctx, req, "missing_api_key", nil)
	}

	callCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	content, err := o.client.ChatComplete(callCtx, openai.ChatRequest{
		Model:               o.model,
		System:              enhanceSystemPrompt,
		User:                buildEnhanceUserPrompt(req),
		MaxCompletionTokens: maxCompletionTokens,
	})
	if err != nil {
		reason := "chat_request"
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			reason = "chat_timeout"
		}
		return o.useFallback(ctx, req, reason, err)
	}

	parsed, err := parseEnhancePayload(content)
	if err != nil {
		return o.useFallback(ctx, req, "parse_payload", err)
	}
	directive := strings.TrimSpace(parsed.RunwayPrompt)
	if directive == "" {
		return o.useFallback(ctx, req, "missing_runway_prompt", errors.New("runway_prompt absent"))
	}

	// Resolve the dish from the original user prompt, not the model's rewrite:
	// the rewrite may have paraphrased ingredient names unpredictably.
	matched := o.kb.Match(req.Prompt)
	directive = dish.Sanitize(directive, matched)

	return &Result{Directive: directive, Provider: ProviderOpenAI}, nil
}

// useFallback answers with the deterministic templater. The templater is
// total, so the request always succeeds on this path.
func (o *OpenAIEnhancer) useFallback(ctx context.Context, req Request, reason string, cause error) (*Result, error) {
	if o.onFallback != nil {
		o.onFallback(reason, cause)
	}
	res, err := o.fallback.Enhance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("prompt: fallback enhancer: %w", err)
	}
	return res, nil
}

var _ Enhancer = (*OpenAIEnhancer)(nil)
