package llm

import (
	"encoding/json"
	"net/http"
)

// Normalized stop reasons reported in Response.StopReason.
const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// modelAliases maps the short model names accepted in configuration to
// pinned provider model IDs. Names absent from the table pass through
// unchanged, so exact model IDs keep working.
var modelAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// classifyAPIError folds a provider API failure into the shared error
// taxonomy by HTTP status. 429 is retryable rate limiting; anything
// else counts as the provider being unavailable.
func classifyAPIError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// checkStructured post-processes structured output. A reply cut off by
// the token limit surfaces as ErrMaxTokensExceeded, which retry treats
// as permanent; complete replies are validated against the requested
// schema. Calls without a schema pass through untouched.
func checkStructured(schema *Schema, content json.RawMessage, stop string) error {
	if schema == nil {
		return nil
	}
	if stop == stopMaxTokens {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return validateResponse(schema, content)
}
