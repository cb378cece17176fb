package prompt

import "context"

// Request carries the raw user prompt plus the generation parameters that
// influence the directive. Prompt is untrusted free text.
type Request struct {
	Prompt     string
	Format     string
	Scale      string
	Length     string
	VideoStyle string
	Background string
}

// Result is the final marketing directive together with the component that
// produced it: ProviderOpenAI when the model rewrite succeeded, or
// ProviderTemplate when the deterministic templater was used.
type Result struct {
	Directive string
	Provider  string
}

const (
	// ProviderOpenAI tags directives produced by the chat-completion rewrite.
	ProviderOpenAI = "openai"
	// ProviderTemplate tags directives produced by the deterministic templater.
	ProviderTemplate = "template"
)

// Enhancer turns a raw prompt into a provider-ready marketing directive.
type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}
