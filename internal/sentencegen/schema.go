package sentencegen

import "github.com/dohyun/jumble/internal/llm"

// SentenceSetSchema defines the JSON schema for model responses.
var SentenceSetSchema = &llm.Schema{
	Name:        "sentence-set",
	Description: "A set of English practice sentences with Korean translations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type":        "array",
				"description": "The generated sentences, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sentence": map[string]any{
							"type":        "string",
							"description": "The English sentence, correctly ordered and punctuated",
						},
						"korean": map[string]any{
							"type":        "string",
							"description": "Natural Korean translation of the sentence",
						},
					},
					"required":             []any{"sentence", "korean"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"sentences"},
		"additionalProperties": false,
	},
}
