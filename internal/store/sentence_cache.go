package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SentenceCacheRepo manages the fallback sentence bank.
type SentenceCacheRepo interface {
	// SaveBatch stores generated sentences for later fallback use.
	SaveBatch(ctx context.Context, rows []SentenceCache) error

	// Sample returns up to limit cached sentences for the given
	// difficulty and environment, newest first.
	Sample(ctx context.Context, difficulty, environment string, limit int) ([]SentenceCache, error)
}

type sentenceCacheRepo struct {
	db *gorm.DB
}

// NewSentenceCacheRepo returns a SentenceCacheRepo backed by the store.
func NewSentenceCacheRepo(db *gorm.DB) SentenceCacheRepo {
	return &sentenceCacheRepo{db: db}
}

func (r *sentenceCacheRepo) SaveBatch(ctx context.Context, rows []SentenceCache) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].CreatedAt = now
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *sentenceCacheRepo) Sample(ctx context.Context, difficulty, environment string, limit int) ([]SentenceCache, error) {
	var rows []SentenceCache
	q := r.db.WithContext(ctx).
		Where("difficulty = ? AND environment = ?", difficulty, environment).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}
