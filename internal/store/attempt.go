package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrQuotaExhausted reports that a reservation hit the daily cap.
// Callers translate it into their own error taxonomy.
type ErrQuotaExhausted struct {
	Count int
	Max   int
}

func (e *ErrQuotaExhausted) Error() string {
	return "daily attempt quota exhausted"
}

// AttemptRepo manages quiz-start records and daily quota counting.
type AttemptRepo interface {
	// Reserve inserts a new attempt unless the (userID, day) bucket has
	// already reached max. The cap check and the insert are atomic, so
	// two concurrent starts cannot both slip under the cap. Returns the
	// count before the insert, or *ErrQuotaExhausted when the cap is
	// already reached.
	Reserve(ctx context.Context, att *Attempt, max int) (int, error)

	// CountForDay returns the number of attempts for (userID, day)
	// without reserving.
	CountForDay(ctx context.Context, userID, day string) (int, error)

	// ListForDay returns the user's attempts for the day, newest first.
	ListForDay(ctx context.Context, userID, day string) ([]Attempt, error)
}

type attemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo returns an AttemptRepo backed by the store.
func NewAttemptRepo(db *gorm.DB) AttemptRepo {
	return &attemptRepo{db: db}
}

// reserveSQL inserts the attempt only while the (user, day) bucket is
// still under the cap, so the check and the insert are one statement.
const reserveSQL = `INSERT INTO quiz_attempts
	(id, user_id, difficulty, environment, score, total_questions, attempt_date, created_at)
SELECT ?, ?, ?, ?, ?, ?, ?, ?
WHERE (SELECT COUNT(*) FROM quiz_attempts WHERE user_id = ? AND attempt_date = ?) < ?`

func (r *attemptRepo) Reserve(ctx context.Context, att *Attempt, max int) (int, error) {
	if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}
	att.CreatedAt = time.Now().UTC()

	var before int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Postgres runs READ COMMITTED, where two concurrent conditional
		// inserts can both snapshot a count under the cap. A per-(user,
		// day) advisory lock serializes them; it releases on commit.
		// SQLite has a single writer, the insert alone suffices there.
		if tx.Dialector.Name() == DriverPostgres {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(? || '@' || ?))",
				att.UserID, att.AttemptDate).Error; err != nil {
				return err
			}
		}

		res := tx.Exec(reserveSQL,
			att.ID, att.UserID, att.Difficulty, att.Environment,
			att.Score, att.TotalQuestions, att.AttemptDate, att.CreatedAt,
			att.UserID, att.AttemptDate, max)
		if res.Error != nil {
			return res.Error
		}

		var n int64
		if err := tx.Model(&Attempt{}).
			Where("user_id = ? AND attempt_date = ?", att.UserID, att.AttemptDate).
			Count(&n).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return &ErrQuotaExhausted{Count: int(n), Max: max}
		}
		before = int(n) - 1
		return nil
	})
	if err != nil {
		return before, err
	}
	return before, nil
}

func (r *attemptRepo) CountForDay(ctx context.Context, userID, day string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Attempt{}).
		Where("user_id = ? AND attempt_date = ?", userID, day).
		Count(&n).Error
	return int(n), err
}

func (r *attemptRepo) ListForDay(ctx context.Context, userID, day string) ([]Attempt, error) {
	var rows []Attempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attempt_date = ?", userID, day).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
