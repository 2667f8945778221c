// Package feedback produces explanatory mistake analysis for a wrong
// reconstruction. The analysis is advisory: it never overrides the
// binary correctness decided by the quiz evaluator.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dohyun/jumble/internal/llm"
)

// Analysis is the structured feedback shown to the learner, in Korean.
type Analysis struct {
	MainError     string `json:"mainError"`
	Explanation   string `json:"explanation"`
	Tip           string `json:"tip"`
	CommonMistake bool   `json:"commonMistake"`
}

// Input identifies the mistake to analyze. Difficulty and Environment
// are informational pass-throughs; they are not validated here.
type Input struct {
	CorrectAnswer string
	UserAnswer    string
	Difficulty    string
	Environment   string
}

// analysisSchema constrains the model response.
var analysisSchema = &llm.Schema{
	Name:        "answer-analysis",
	Description: "Korean-language analysis of an English word-order mistake",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mainError": map[string]any{
				"type":        "string",
				"description": "주요 오류 유형 (어순/문법/단어선택/누락)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "왜 틀렸는지 간단한 설명 (2-3문장)",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "이런 실수를 피하는 방법 (1-2문장)",
			},
			"commonMistake": map[string]any{
				"type":        "boolean",
				"description": "한국인이 자주 하는 실수인지",
			},
		},
		"required":             []any{"mainError", "explanation", "tip", "commonMistake"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a supportive English teacher who helps Korean students learn from their mistakes. Always respond in Korean and be encouraging.`

// Service analyzes wrong answers via the LLM provider.
type Service struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewService creates a feedback Service.
func NewService(provider llm.Provider) *Service {
	return &Service{
		provider:    provider,
		maxTokens:   512,
		temperature: 0.4,
	}
}

// Analyze asks the model why the learner's reconstruction is wrong.
func (s *Service) Analyze(ctx context.Context, in Input) (*Analysis, error) {
	if in.CorrectAnswer == "" || in.UserAnswer == "" {
		return nil, fmt.Errorf("both correct and user answers are required")
	}

	ctx = llm.WithPurpose(ctx, "answer-analysis")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(in)},
		},
		Schema:      analysisSchema,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analyze answer: %w", err)
	}

	var out Analysis
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	return &out, nil
}

func buildPrompt(in Input) string {
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = "중간"
	}
	environment := in.Environment
	if environment == "" {
		environment = "일반"
	}

	var b strings.Builder
	b.WriteString("You are analyzing a Korean student's mistake.\n\n")
	fmt.Fprintf(&b, "Correct answer: %q\n", in.CorrectAnswer)
	fmt.Fprintf(&b, "Student's answer: %q\n", in.UserAnswer)
	fmt.Fprintf(&b, "Difficulty level: %s\n", difficulty)
	fmt.Fprintf(&b, "Context: %s\n\n", environment)
	b.WriteString("Analyze why the student made this mistake and provide helpful feedback in Korean.\n\n")
	b.WriteString("Focus on:\n")
	b.WriteString("1. Word order mistakes (어순 오류)\n")
	b.WriteString("2. Grammar mistakes (문법 오류)\n")
	b.WriteString("3. Word choice mistakes (단어 선택 오류)\n")
	b.WriteString("4. Missing or extra words (누락/추가 단어)\n\n")
	b.WriteString("Keep explanations simple and encouraging.")
	return b.String()
}
