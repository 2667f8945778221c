package ranking

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/dohyun/jumble/internal/logger"
	"github.com/dohyun/jumble/internal/sentencegen"
	"github.com/dohyun/jumble/internal/store"
)

// fakeProgressRepo keeps ledger rows in memory, ordered like the real
// repo reads them: score descending, stable within ties.
type fakeProgressRepo struct {
	rows []store.Progress
}

func (f *fakeProgressRepo) Accumulate(_ context.Context, userID, difficulty string, delta int) (int, int, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].Difficulty == difficulty {
			f.rows[i].Score += delta
			f.rows[i].UpdatedAt = time.Now()
			return f.rows[i].Score - delta, f.rows[i].Score, nil
		}
	}
	f.rows = append(f.rows, store.Progress{
		UserID:     userID,
		Difficulty: difficulty,
		Score:      delta,
		UpdatedAt:  time.Now(),
	})
	return 0, delta, nil
}

func (f *fakeProgressRepo) Get(_ context.Context, userID, difficulty string) (*store.Progress, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].Difficulty == difficulty {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeProgressRepo) ListByUser(_ context.Context, userID string) ([]store.Progress, error) {
	var out []store.Progress
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) ListByDifficulty(_ context.Context, difficulty string, limit int) ([]store.Progress, error) {
	var out []store.Progress
	for _, row := range f.rows {
		if row.Difficulty == difficulty {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProgressRepo) ListAll(_ context.Context) ([]store.Progress, error) {
	out := append([]store.Progress(nil), f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func TestAccumulate_IsAdditive(t *testing.T) {
	svc := NewService(&fakeProgressRepo{}, logger.NewNop())
	ctx := context.Background()

	first, err := svc.Accumulate(ctx, "u1", sentencegen.DifficultyEasy, 3)
	if err != nil {
		t.Fatal(err)
	}
	if first.PreviousScore != 0 || first.NewScore != 3 || first.TotalScore != 3 {
		t.Errorf("first = %+v", first)
	}

	// Same delta again must add, not overwrite.
	second, err := svc.Accumulate(ctx, "u1", sentencegen.DifficultyEasy, 3)
	if err != nil {
		t.Fatal(err)
	}
	if second.PreviousScore != 3 || second.TotalScore != 6 {
		t.Errorf("second = %+v, want total 6", second)
	}
}

func TestAccumulate_ZeroDeltaAllowed(t *testing.T) {
	svc := NewService(&fakeProgressRepo{}, logger.NewNop())

	res, err := svc.Accumulate(context.Background(), "u1", sentencegen.DifficultyHard, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalScore != 0 {
		t.Errorf("total = %d", res.TotalScore)
	}
}

func TestAccumulate_NegativeDeltaRejected(t *testing.T) {
	svc := NewService(&fakeProgressRepo{}, logger.NewNop())

	if _, err := svc.Accumulate(context.Background(), "u1", sentencegen.DifficultyEasy, -1); err == nil {
		t.Fatal("expected error for negative delta")
	}
}

func TestAccumulate_SeparatePerDifficulty(t *testing.T) {
	svc := NewService(&fakeProgressRepo{}, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.Accumulate(ctx, "u1", sentencegen.DifficultyEasy, 5); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Accumulate(ctx, "u1", sentencegen.DifficultyHard, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.PreviousScore != 0 || res.TotalScore != 2 {
		t.Errorf("hard ledger mixed with easy: %+v", res)
	}
}

func TestRank_PositionalOrder(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	for _, seed := range []struct {
		user  string
		score int
	}{
		{"alice", 10},
		{"bob", 7},
		{"carol", 12},
	} {
		if _, err := svc.Accumulate(ctx, seed.user, sentencegen.DifficultyMedium, seed.score); err != nil {
			t.Fatal(err)
		}
	}

	entries, userRank, err := svc.Rank(ctx, sentencegen.DifficultyMedium, "bob")
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"carol", "alice", "bob"}
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("entry %d = %q, want %q", i, entries[i].UserID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
	if userRank == nil || *userRank != 3 {
		t.Errorf("bob's rank = %v, want 3", userRank)
	}
}

func TestRank_TiesGetDistinctRanks(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.Accumulate(ctx, "alice", sentencegen.DifficultyEasy, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Accumulate(ctx, "bob", sentencegen.DifficultyEasy, 5); err != nil {
		t.Fatal(err)
	}

	entries, _, err := svc.Rank(ctx, sentencegen.DifficultyEasy, "")
	if err != nil {
		t.Fatal(err)
	}
	// Equal scores are not collapsed: ranks stay strictly positional.
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = %d, %d; want 1, 2", entries[0].Rank, entries[1].Rank)
	}
}

func TestRank_UnknownUserHasNilRank(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.Accumulate(ctx, "alice", sentencegen.DifficultyEasy, 5); err != nil {
		t.Fatal(err)
	}

	_, userRank, err := svc.Rank(ctx, sentencegen.DifficultyEasy, "stranger")
	if err != nil {
		t.Fatal(err)
	}
	if userRank != nil {
		t.Errorf("expected nil rank, got %d", *userRank)
	}
}

func TestRankAll_GroupsByDifficulty(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.Accumulate(ctx, "alice", sentencegen.DifficultyEasy, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Accumulate(ctx, "alice", sentencegen.DifficultyHard, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Accumulate(ctx, "bob", sentencegen.DifficultyHard, 9); err != nil {
		t.Fatal(err)
	}

	boards, ranks, err := svc.RankAll(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(boards[string(sentencegen.DifficultyEasy)]) != 1 {
		t.Errorf("easy board = %v", boards[string(sentencegen.DifficultyEasy)])
	}
	if len(boards[string(sentencegen.DifficultyHard)]) != 2 {
		t.Errorf("hard board = %v", boards[string(sentencegen.DifficultyHard)])
	}
	if r := ranks[string(sentencegen.DifficultyEasy)]; r == nil || *r != 1 {
		t.Errorf("alice easy rank = %v, want 1", r)
	}
	if r := ranks[string(sentencegen.DifficultyHard)]; r == nil || *r != 2 {
		t.Errorf("alice hard rank = %v, want 2", r)
	}
}
