package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/dohyun/jumble/internal/logger"
	"github.com/dohyun/jumble/internal/sentencegen"
	"github.com/dohyun/jumble/internal/store"
)

// LeaderboardLimit caps how many rows a single-difficulty ranking query
// returns.
const LeaderboardLimit = 100

// Entry is one ranked leaderboard row. Ranks are strictly positional and
// 1-based: two equal scores get consecutive ranks in the store's stable
// read order, they are not collapsed.
type Entry struct {
	UserID     string    `json:"user_id"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	Rank       int       `json:"rank"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AccumulateResult reports a score-ledger update.
type AccumulateResult struct {
	PreviousScore int `json:"previous_score"`
	NewScore      int `json:"new_score"`
	TotalScore    int `json:"total_score"`
}

// Service owns the score ledger and ranking computation.
type Service struct {
	repo store.ProgressRepo
	log  *logger.Logger
}

// NewService creates a ranking Service.
func NewService(repo store.ProgressRepo, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "ranking"),
	}
}

// Accumulate adds delta correct answers to the user's score for the
// difficulty. Additive, never overwriting: accumulating 3 twice yields 6.
func (s *Service) Accumulate(ctx context.Context, userID string, difficulty sentencegen.Difficulty, delta int) (*AccumulateResult, error) {
	if delta < 0 {
		return nil, fmt.Errorf("score delta must be non-negative, got %d", delta)
	}

	previous, current, err := s.repo.Accumulate(ctx, userID, string(difficulty), delta)
	if err != nil {
		return nil, fmt.Errorf("accumulate progress: %w", err)
	}

	return &AccumulateResult{
		PreviousScore: previous,
		NewScore:      delta,
		TotalScore:    current,
	}, nil
}

// Progress returns the user's rows across all difficulties.
func (s *Service) Progress(ctx context.Context, userID string) ([]store.Progress, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Rank returns the leaderboard for one difficulty and, when userID is
// non-empty, that user's rank (nil when they have no record).
func (s *Service) Rank(ctx context.Context, difficulty sentencegen.Difficulty, userID string) ([]Entry, *int, error) {
	rows, err := s.repo.ListByDifficulty(ctx, string(difficulty), LeaderboardLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("list progress: %w", err)
	}

	entries := rank(rows)
	return entries, userRank(entries, userID), nil
}

// RankAll returns leaderboards for every difficulty keyed by its label,
// plus the user's rank per difficulty when userID is non-empty.
func (s *Service) RankAll(ctx context.Context, userID string) (map[string][]Entry, map[string]*int, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list progress: %w", err)
	}

	grouped := make(map[string][]store.Progress)
	for _, row := range rows {
		grouped[row.Difficulty] = append(grouped[row.Difficulty], row)
	}

	boards := make(map[string][]Entry, len(grouped))
	ranks := make(map[string]*int, len(grouped))
	for difficulty, group := range grouped {
		entries := rank(group)
		boards[difficulty] = entries
		ranks[difficulty] = userRank(entries, userID)
	}
	return boards, ranks, nil
}

// rank assigns 1-based positional ranks. Input is already ordered by
// score descending.
func rank(rows []store.Progress) []Entry {
	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{
			UserID:     row.UserID,
			Difficulty: row.Difficulty,
			Score:      row.Score,
			Rank:       i + 1,
			UpdatedAt:  row.UpdatedAt,
		}
	}
	return entries
}

func userRank(entries []Entry, userID string) *int {
	if userID == "" {
		return nil
	}
	for _, e := range entries {
		if e.UserID == userID {
			r := e.Rank
			return &r
		}
	}
	return nil
}
