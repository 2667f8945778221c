package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with
// timeout, retry, and call-logging middleware. sink may be nil to
// disable call logging.
func NewProvider(ctx context.Context, cfg Config, sink CallSink) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Caller -> timeout -> retry -> logging -> base. The timeout sits
	// outermost so cfg.Timeout bounds the call including retries.
	wrapped := Provider(base)
	if sink != nil {
		wrapped = WithLogging(wrapped, sink)
	}
	return WithTimeout(WithRetry(wrapped, cfg.Retry), cfg.Timeout), nil
}
