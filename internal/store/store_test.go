package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestProgressRepo_AccumulateCreatesAndAdds(t *testing.T) {
	s := openTestStore(t)
	repo := NewProgressRepo(s.DB())
	ctx := context.Background()

	prev, cur, err := repo.Accumulate(ctx, "u1", "쉬움", 3)
	if err != nil {
		t.Fatalf("first accumulate: %v", err)
	}
	if prev != 0 || cur != 3 {
		t.Errorf("first = %d -> %d, want 0 -> 3", prev, cur)
	}

	prev, cur, err = repo.Accumulate(ctx, "u1", "쉬움", 4)
	if err != nil {
		t.Fatalf("second accumulate: %v", err)
	}
	if prev != 3 || cur != 7 {
		t.Errorf("second = %d -> %d, want 3 -> 7", prev, cur)
	}

	// One row per (user, difficulty), the upsert never duplicates.
	rows, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}

func TestProgressRepo_GetAbsent(t *testing.T) {
	s := openTestStore(t)
	repo := NewProgressRepo(s.DB())

	row, err := repo.Get(context.Background(), "nobody", "쉬움")
	if err != nil {
		t.Fatal(err)
	}
	if row != nil {
		t.Errorf("expected nil, got %+v", row)
	}
}

func TestProgressRepo_ListByDifficultyOrdersByScore(t *testing.T) {
	s := openTestStore(t)
	repo := NewProgressRepo(s.DB())
	ctx := context.Background()

	for _, seed := range []struct {
		user  string
		score int
	}{{"low", 2}, {"high", 9}, {"mid", 5}} {
		if _, _, err := repo.Accumulate(ctx, seed.user, "중간", seed.score); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := repo.ListByDifficulty(ctx, "중간", 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].UserID != "high" || rows[2].UserID != "low" {
		t.Errorf("order = %s, %s, %s", rows[0].UserID, rows[1].UserID, rows[2].UserID)
	}
}

func TestAttemptRepo_ReserveEnforcesCap(t *testing.T) {
	s := openTestStore(t)
	repo := NewAttemptRepo(s.DB())
	ctx := context.Background()

	for i := range 2 {
		att := Attempt{UserID: "u1", Difficulty: "쉬움", Environment: "일상", TotalQuestions: 5, AttemptDate: "2026-08-31"}
		before, err := repo.Reserve(ctx, &att, 2)
		if err != nil {
			t.Fatalf("reserve %d: %v", i, err)
		}
		if before != i {
			t.Errorf("reserve %d: before = %d", i, before)
		}
	}

	att := Attempt{UserID: "u1", Difficulty: "쉬움", Environment: "일상", TotalQuestions: 5, AttemptDate: "2026-08-31"}
	_, err := repo.Reserve(ctx, &att, 2)
	var exhausted *ErrQuotaExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}

	n, err := repo.CountForDay(ctx, "u1", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2 (cap breach must not insert)", n)
	}
}

func TestAttemptRepo_ConcurrentReservesRespectCap(t *testing.T) {
	s := openTestStore(t)
	repo := NewAttemptRepo(s.DB())
	ctx := context.Background()

	const (
		workers  = 10
		maxDaily = 3
	)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			att := Attempt{UserID: "u1", Difficulty: "쉬움", Environment: "일상", TotalQuestions: 5, AttemptDate: "2026-08-31"}
			_, err := repo.Reserve(ctx, &att, maxDaily)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	granted, rejected := 0, 0
	for err := range errs {
		if err == nil {
			granted++
			continue
		}
		var exhausted *ErrQuotaExhausted
		if !errors.As(err, &exhausted) {
			t.Fatalf("unexpected reserve error: %v", err)
		}
		rejected++
	}
	if granted != maxDaily || rejected != workers-maxDaily {
		t.Errorf("granted = %d, rejected = %d, want %d and %d", granted, rejected, maxDaily, workers-maxDaily)
	}

	// Exactly cap rows survive the stampede.
	n, err := repo.CountForDay(ctx, "u1", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if n != maxDaily {
		t.Errorf("count = %d, want %d", n, maxDaily)
	}
}

func TestAttemptRepo_DaysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	repo := NewAttemptRepo(s.DB())
	ctx := context.Background()

	att := Attempt{UserID: "u1", Difficulty: "쉬움", Environment: "일상", TotalQuestions: 5, AttemptDate: "2026-08-30"}
	if _, err := repo.Reserve(ctx, &att, 1); err != nil {
		t.Fatal(err)
	}

	// Yesterday's attempt does not count against today.
	next := Attempt{UserID: "u1", Difficulty: "쉬움", Environment: "일상", TotalQuestions: 5, AttemptDate: "2026-08-31"}
	if _, err := repo.Reserve(ctx, &next, 1); err != nil {
		t.Fatalf("new day should reset quota: %v", err)
	}
}

func TestSentenceCacheRepo_SaveAndSample(t *testing.T) {
	s := openTestStore(t)
	repo := NewSentenceCacheRepo(s.DB())
	ctx := context.Background()

	rows := []SentenceCache{
		{Sentence: "One sentence here.", Korean: "문장 하나", Difficulty: "쉬움", Environment: "일상"},
		{Sentence: "Another sentence here.", Korean: "문장 둘", Difficulty: "쉬움", Environment: "일상"},
		{Sentence: "Hard sentence entirely.", Korean: "어려운 문장", Difficulty: "어려움", Environment: "회사"},
	}
	if err := repo.SaveBatch(ctx, rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Sample(ctx, "쉬움", "일상", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("sampled %d rows, want 2", len(got))
	}
	for _, row := range got {
		if row.Difficulty != "쉬움" {
			t.Errorf("wrong bucket: %+v", row)
		}
	}
}

func TestStore_Reset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, _, err := NewProgressRepo(s.DB()).Accumulate(ctx, "u1", "쉬움", 3); err != nil {
		t.Fatal(err)
	}
	att := Attempt{UserID: "u1", Difficulty: "쉬움", Environment: "일상", TotalQuestions: 5, AttemptDate: "2026-08-31"}
	if _, err := NewAttemptRepo(s.DB()).Reserve(ctx, &att, 10); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	rows, err := NewProgressRepo(s.DB()).ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("progress rows survived reset: %d", len(rows))
	}
	n, err := NewAttemptRepo(s.DB()).CountForDay(ctx, "u1", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("attempts survived reset: %d", n)
	}
}
