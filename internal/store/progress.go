package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepo manages accumulated per-user, per-difficulty scores.
type ProgressRepo interface {
	// Accumulate adds delta to the score for (userID, difficulty),
	// creating the row when absent. The increment happens database-side
	// in a single statement, so concurrent completions never lose an
	// update. Returns the score before and after.
	Accumulate(ctx context.Context, userID, difficulty string, delta int) (previous, current int, err error)

	// Get returns the row for (userID, difficulty), or nil when absent.
	Get(ctx context.Context, userID, difficulty string) (*Progress, error)

	// ListByUser returns all rows for the user, ordered by difficulty.
	ListByUser(ctx context.Context, userID string) ([]Progress, error)

	// ListByDifficulty returns up to limit rows for the difficulty,
	// ordered by score descending (0 = unlimited). Tie order is the
	// store's stable read order.
	ListByDifficulty(ctx context.Context, difficulty string, limit int) ([]Progress, error)

	// ListAll returns every row ordered by score descending.
	ListAll(ctx context.Context) ([]Progress, error)
}

type progressRepo struct {
	db *gorm.DB
}

// NewProgressRepo returns a ProgressRepo backed by the store.
func NewProgressRepo(db *gorm.DB) ProgressRepo {
	return &progressRepo{db: db}
}

func (r *progressRepo) Accumulate(ctx context.Context, userID, difficulty string, delta int) (int, int, error) {
	now := time.Now().UTC()
	row := Progress{
		ID:         uuid.New(),
		UserID:     userID,
		Difficulty: difficulty,
		Score:      delta,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "difficulty"}},
		DoUpdates: clause.Assignments(map[string]any{
			"score":      gorm.Expr("score + ?", delta),
			"updated_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, 0, err
	}

	after, err := r.Get(ctx, userID, difficulty)
	if err != nil {
		return 0, 0, err
	}
	return after.Score - delta, after.Score, nil
}

func (r *progressRepo) Get(ctx context.Context, userID, difficulty string) (*Progress, error) {
	var row Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND difficulty = ?", userID, difficulty).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *progressRepo) ListByUser(ctx context.Context, userID string) ([]Progress, error) {
	var rows []Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("difficulty").
		Find(&rows).Error
	return rows, err
}

func (r *progressRepo) ListByDifficulty(ctx context.Context, difficulty string, limit int) ([]Progress, error) {
	q := r.db.WithContext(ctx).
		Where("difficulty = ?", difficulty).
		Order("score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Progress
	err := q.Find(&rows).Error
	return rows, err
}

func (r *progressRepo) ListAll(ctx context.Context) ([]Progress, error) {
	var rows []Progress
	err := r.db.WithContext(ctx).
		Order("score DESC").
		Find(&rows).Error
	return rows, err
}
