package attempts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dohyun/jumble/internal/logger"
	"github.com/dohyun/jumble/internal/store"
)

// DefaultMaxDaily is the daily attempt cap when none is configured.
const DefaultMaxDaily = 10

// ErrQuotaExceeded reports that the user's daily attempt cap is reached.
// Not retryable until the next Asia/Seoul calendar day.
type ErrQuotaExceeded struct {
	UserID string
	Max    int
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("daily attempt quota exceeded (%d/day)", e.Max)
}

// Status describes a user's quota for today.
type Status struct {
	AttemptsToday     int  `json:"attempts_today"`
	MaxAttempts       int  `json:"max_attempts"`
	RemainingAttempts int  `json:"remaining_attempts"`
	CanPlay           bool `json:"can_play"`
}

// Reservation is the outcome of a successful quota reservation.
type Reservation struct {
	Attempt   store.Attempt
	Remaining int
}

// Service enforces the per-user, per-day attempt quota. Attempts are
// reserved at quiz start, so abandoning a quiz still consumes a slot.
type Service struct {
	repo store.AttemptRepo
	max  int
	log  *logger.Logger
}

// NewService creates a Service with the given daily cap (0 = default).
func NewService(repo store.AttemptRepo, maxDaily int, log *logger.Logger) *Service {
	if maxDaily <= 0 {
		maxDaily = DefaultMaxDaily
	}
	return &Service{
		repo: repo,
		max:  maxDaily,
		log:  log.With("service", "attempts"),
	}
}

// MaxDaily returns the configured cap.
func (s *Service) MaxDaily() int {
	return s.max
}

// CheckAndReserve counts today's attempts and inserts a new record in
// one atomic step. At the cap it returns *ErrQuotaExceeded and inserts
// nothing.
func (s *Service) CheckAndReserve(ctx context.Context, userID, difficulty, environment string, totalQuestions int) (*Reservation, error) {
	att := store.Attempt{
		UserID:         userID,
		Difficulty:     difficulty,
		Environment:    environment,
		Score:          0, // placeholder; quota is consumed at start, not completion
		TotalQuestions: totalQuestions,
		AttemptDate:    Today(),
	}

	before, err := s.repo.Reserve(ctx, &att, s.max)
	if err != nil {
		var exhausted *store.ErrQuotaExhausted
		if errors.As(err, &exhausted) {
			return nil, &ErrQuotaExceeded{UserID: userID, Max: s.max}
		}
		return nil, fmt.Errorf("reserve attempt: %w", err)
	}

	return &Reservation{
		Attempt:   att,
		Remaining: s.max - before - 1,
	}, nil
}

// Status reports today's quota without reserving. When the store is
// unreachable it degrades to a full default quota rather than blocking
// play — availability over strict enforcement on the read path.
func (s *Service) Status(ctx context.Context, userID string) Status {
	count, err := s.repo.CountForDay(ctx, userID, Today())
	if err != nil {
		s.log.Warn("attempt count unavailable, defaulting to full quota",
			"user_id", userID, "error", err)
		return Status{
			AttemptsToday:     0,
			MaxAttempts:       s.max,
			RemainingAttempts: s.max,
			CanPlay:           true,
		}
	}

	remaining := s.max - count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		AttemptsToday:     count,
		MaxAttempts:       s.max,
		RemainingAttempts: remaining,
		CanPlay:           remaining > 0,
	}
}
