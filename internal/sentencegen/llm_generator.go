package sentencegen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dohyun/jumble/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// rawSentence is one item of the model response before validation.
type rawSentence struct {
	Sentence string `json:"sentence"`
	Korean   string `json:"korean"`
}

type sentenceSetOutput struct {
	Sentences []rawSentence `json:"sentences"`
}

// Generate requests a sentence set, validates it, and scrambles tokens.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Sentence, error) {
	if _, err := ParseDifficulty(string(input.Difficulty)); err != nil {
		return nil, err
	}
	if input.Environment == "" {
		return nil, fmt.Errorf("environment is required")
	}

	count := input.Count
	if count <= 0 {
		count = g.config.SentenceCount
	}

	ctx = llm.WithPurpose(ctx, "sentence-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, count)},
		},
		Schema:      SentenceSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw sentenceSetOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return buildSet(raw.Sentences)
}

// NewSentence assembles a single scrambled Sentence from canonical text.
// Used by the cache fallback path.
func NewSentence(original, korean string) Sentence {
	tokens := Tokenize(original)
	return Sentence{
		Original:        original,
		Korean:          korean,
		Tokens:          tokens,
		ScrambledTokens: Scramble(tokens),
	}
}

// buildSet validates raw generator output and assembles the scrambled
// sentence set. Fewer sentences than requested are tolerated; an empty
// or structurally broken set is not.
func buildSet(raw []rawSentence) ([]Sentence, error) {
	if len(raw) == 0 {
		return nil, &ValidationError{Message: "response contains no sentences"}
	}

	out := make([]Sentence, 0, len(raw))
	for i, r := range raw {
		if r.Sentence == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("sentence %d is empty", i+1)}
		}
		tokens := Tokenize(r.Sentence)
		if len(tokens) == 0 {
			return nil, &ValidationError{Message: fmt.Sprintf("sentence %d has no words", i+1)}
		}
		out = append(out, Sentence{
			Original:        r.Sentence,
			Korean:          r.Korean,
			Tokens:          tokens,
			ScrambledTokens: Scramble(tokens),
		})
	}
	return out, nil
}
