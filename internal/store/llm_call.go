package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dohyun/jumble/internal/llm"
)

// LLMCallRepo records external language-model requests.
type LLMCallRepo interface {
	Append(ctx context.Context, row *LLMCallLog) error
	ListRecent(ctx context.Context, limit int) ([]LLMCallLog, error)
	UsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}

// LLMUsage is aggregated token usage for one purpose.
type LLMUsage struct {
	Purpose      string `json:"purpose"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	AvgLatencyMs int64  `json:"avg_latency_ms"`
}

type llmCallRepo struct {
	db *gorm.DB
}

// NewLLMCallRepo returns an LLMCallRepo backed by the store.
func NewLLMCallRepo(db *gorm.DB) LLMCallRepo {
	return &llmCallRepo{db: db}
}

func (r *llmCallRepo) Append(ctx context.Context, row *LLMCallLog) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *llmCallRepo) ListRecent(ctx context.Context, limit int) ([]LLMCallLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []LLMCallLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *llmCallRepo) UsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	var rows []LLMUsage
	err := r.db.WithContext(ctx).
		Model(&LLMCallLog{}).
		Select("purpose, COUNT(*) AS calls, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens, CAST(AVG(latency_ms) AS INTEGER) AS avg_latency_ms").
		Group("purpose").
		Order("purpose").
		Scan(&rows).Error
	return rows, err
}

// RecordCall satisfies llm.CallSink so the provider middleware can log
// straight into the store.
func (r *llmCallRepo) RecordCall(ctx context.Context, rec llm.CallRecord) error {
	return r.Append(ctx, &LLMCallLog{
		Provider:     rec.Provider,
		Model:        rec.Model,
		Purpose:      rec.Purpose,
		InputTokens:  rec.InputTokens,
		OutputTokens: rec.OutputTokens,
		LatencyMs:    rec.LatencyMs,
		Success:      rec.Success,
		ErrorMessage: rec.ErrorMessage,
	})
}

// NewCallSink returns an llm.CallSink backed by the store.
func NewCallSink(db *gorm.DB) llm.CallSink {
	return &llmCallRepo{db: db}
}
