package attempts

import (
	"context"
	"errors"
	"testing"

	"github.com/dohyun/jumble/internal/logger"
	"github.com/dohyun/jumble/internal/store"
)

// fakeAttemptRepo implements store.AttemptRepo in memory with the same
// count-then-insert semantics as the real one.
type fakeAttemptRepo struct {
	rows    []store.Attempt
	failAll bool
}

func (f *fakeAttemptRepo) Reserve(_ context.Context, att *store.Attempt, max int) (int, error) {
	if f.failAll {
		return 0, errors.New("db down")
	}
	before := f.count(att.UserID, att.AttemptDate)
	if before >= max {
		return before, &store.ErrQuotaExhausted{Count: before, Max: max}
	}
	f.rows = append(f.rows, *att)
	return before, nil
}

func (f *fakeAttemptRepo) CountForDay(_ context.Context, userID, day string) (int, error) {
	if f.failAll {
		return 0, errors.New("db down")
	}
	return f.count(userID, day), nil
}

func (f *fakeAttemptRepo) ListForDay(_ context.Context, userID, day string) ([]store.Attempt, error) {
	if f.failAll {
		return nil, errors.New("db down")
	}
	var out []store.Attempt
	for _, row := range f.rows {
		if row.UserID == userID && row.AttemptDate == day {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) count(userID, day string) int {
	n := 0
	for _, row := range f.rows {
		if row.UserID == userID && row.AttemptDate == day {
			n++
		}
	}
	return n
}

func TestCheckAndReserve_UpToCap(t *testing.T) {
	repo := &fakeAttemptRepo{}
	svc := NewService(repo, 3, logger.NewNop())
	ctx := context.Background()

	for i := range 3 {
		res, err := svc.CheckAndReserve(ctx, "u1", "쉬움", "일상", 5)
		if err != nil {
			t.Fatalf("reserve %d: %v", i, err)
		}
		if res.Remaining != 3-i-1 {
			t.Errorf("reserve %d: remaining = %d, want %d", i, res.Remaining, 3-i-1)
		}
	}

	_, err := svc.CheckAndReserve(ctx, "u1", "쉬움", "일상", 5)
	var quota *ErrQuotaExceeded
	if !errors.As(err, &quota) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if quota.Max != 3 {
		t.Errorf("quota.Max = %d, want 3", quota.Max)
	}
	if len(repo.rows) != 3 {
		t.Errorf("cap breach inserted a row: %d rows", len(repo.rows))
	}
}

func TestCheckAndReserve_QuotaIsPerUser(t *testing.T) {
	repo := &fakeAttemptRepo{}
	svc := NewService(repo, 1, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.CheckAndReserve(ctx, "u1", "쉬움", "일상", 5); err != nil {
		t.Fatalf("u1: %v", err)
	}
	if _, err := svc.CheckAndReserve(ctx, "u2", "쉬움", "일상", 5); err != nil {
		t.Fatalf("u2 should have its own quota: %v", err)
	}
}

func TestStatus_CountsToday(t *testing.T) {
	repo := &fakeAttemptRepo{}
	svc := NewService(repo, 10, logger.NewNop())
	ctx := context.Background()

	for range 4 {
		if _, err := svc.CheckAndReserve(ctx, "u1", "중간", "회사", 5); err != nil {
			t.Fatal(err)
		}
	}

	st := svc.Status(ctx, "u1")
	if st.AttemptsToday != 4 || st.MaxAttempts != 10 || st.RemainingAttempts != 6 {
		t.Errorf("status = %+v", st)
	}
	if !st.CanPlay {
		t.Error("expected can_play")
	}
}

func TestStatus_AtCap(t *testing.T) {
	repo := &fakeAttemptRepo{}
	svc := NewService(repo, 2, logger.NewNop())
	ctx := context.Background()

	for range 2 {
		if _, err := svc.CheckAndReserve(ctx, "u1", "중간", "회사", 5); err != nil {
			t.Fatal(err)
		}
	}

	st := svc.Status(ctx, "u1")
	if st.RemainingAttempts != 0 || st.CanPlay {
		t.Errorf("status = %+v, want exhausted", st)
	}
}

func TestStatus_DegradesToFullQuotaOnStoreFailure(t *testing.T) {
	repo := &fakeAttemptRepo{failAll: true}
	svc := NewService(repo, 10, logger.NewNop())

	st := svc.Status(context.Background(), "u1")
	if !st.CanPlay || st.RemainingAttempts != 10 || st.AttemptsToday != 0 {
		t.Errorf("status = %+v, want full default quota", st)
	}
}

func TestNewService_DefaultCap(t *testing.T) {
	svc := NewService(&fakeAttemptRepo{}, 0, logger.NewNop())
	if svc.MaxDaily() != DefaultMaxDaily {
		t.Errorf("max = %d, want %d", svc.MaxDaily(), DefaultMaxDaily)
	}
}
