package store

import (
	"time"

	"github.com/google/uuid"
)

// User is a learner identity as resolved by the external identity
// provider. Only the stable id and email land here.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Progress is the durable accumulated score for one (user, difficulty)
// pair. Score only grows; one row per pair.
type Progress struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;not null;index:idx_user_difficulty,unique" json:"user_id"`
	Difficulty string    `gorm:"not null;index:idx_user_difficulty,unique;index" json:"difficulty"`
	Score      int       `gorm:"not null;default:0" json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Progress) TableName() string { return "user_progress" }

// Attempt marks one quiz start on a calendar day (Asia/Seoul). Rows are
// written at start time and never mutated, so abandoned quizzes still
// count against the daily quota.
type Attempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string    `gorm:"column:user_id;not null;index:idx_user_day" json:"user_id"`
	Difficulty     string    `gorm:"not null" json:"difficulty"`
	Environment    string    `gorm:"not null" json:"environment"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	AttemptDate    string    `gorm:"column:attempt_date;not null;index:idx_user_day" json:"attempt_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Attempt) TableName() string { return "quiz_attempts" }

// SentenceCache holds previously generated sentences per difficulty and
// environment, used as a fallback bank when the generator is down.
type SentenceCache struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Sentence    string    `gorm:"column:sentence_text;not null" json:"sentence_text"`
	Korean      string    `gorm:"column:korean_text" json:"korean_text"`
	Difficulty  string    `gorm:"not null;index:idx_cache_bucket" json:"difficulty"`
	Environment string    `gorm:"not null;index:idx_cache_bucket" json:"environment"`
	CreatedAt   time.Time `json:"created_at"`
}

func (SentenceCache) TableName() string { return "sentences_cache" }

// LLMCallLog records one request to the external language model.
type LLMCallLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Provider     string    `gorm:"not null" json:"provider"`
	Model        string    `gorm:"not null" json:"model"`
	Purpose      string    `gorm:"not null;index" json:"purpose"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	LatencyMs    int64     `json:"latency_ms"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}

func (LLMCallLog) TableName() string { return "llm_call_logs" }
