package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubStreakStore is an in-memory StreakStore that counts writes.
type stubStreakStore struct {
	mu        sync.Mutex
	missing   bool
	failRead  bool
	failWrite bool

	count     int
	lastVisit *time.Time
	writes    int
}

func (s *stubStreakStore) GetStreak(ctx context.Context, clerkID string) (int, *time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.missing {
		return 0, nil, ErrUserNotFound
	}
	if s.failRead {
		return 0, nil, errors.New("connection reset by peer")
	}
	return s.count, s.lastVisit, nil
}

func (s *stubStreakStore) SetStreak(ctx context.Context, clerkID string, dailyStreak int, lastVisit time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrite {
		return errors.New("connection reset by peer")
	}
	s.count = dailyStreak
	s.lastVisit = &lastVisit
	s.writes++
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpdateDailyStreakFirstVisit(t *testing.T) {
	store := &stubStreakStore{}
	svc := NewStreakServiceWithStore(store, fixedClock(time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)))

	got, err := svc.UpdateDailyStreak(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("expected streak 1, got %d", got)
	}
	if store.writes != 1 {
		t.Errorf("expected exactly 1 write, got %d", store.writes)
	}
	if store.lastVisit == nil || !store.lastVisit.Equal(utcDate(2024, 3, 10)) {
		t.Errorf("expected last visit 2024-03-10, got %v", store.lastVisit)
	}
}

func TestUpdateDailyStreakSameDayIsNoWrite(t *testing.T) {
	visited := utcDate(2024, 3, 10)
	store := &stubStreakStore{count: 4, lastVisit: &visited}
	svc := NewStreakServiceWithStore(store, fixedClock(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)))

	got, err := svc.UpdateDailyStreak(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("expected streak unchanged at 4, got %d", got)
	}
	if store.writes != 0 {
		t.Errorf("repeat visit must not write, got %d writes", store.writes)
	}
}

// A server whose clock lags a few seconds behind the one that stamped
// the new UTC day sees a stored date "in the future". It must leave the
// record alone instead of resetting the streak and back-dating the visit.
func TestUpdateDailyStreakLaggingClockIsNoWrite(t *testing.T) {
	visited := utcDate(2024, 3, 12)
	store := &stubStreakStore{count: 5, lastVisit: &visited}
	svc := NewStreakServiceWithStore(store, fixedClock(time.Date(2024, 3, 11, 23, 59, 57, 0, time.UTC)))

	got, err := svc.UpdateDailyStreak(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("expected streak unchanged at 5, got %d", got)
	}
	if store.writes != 0 {
		t.Errorf("lagging clock must not write, got %d writes", store.writes)
	}
	if !store.lastVisit.Equal(visited) {
		t.Errorf("last visit date must not move backwards, got %v", store.lastVisit)
	}
}

func TestUpdateDailyStreakNotFound(t *testing.T) {
	store := &stubStreakStore{missing: true}
	svc := NewStreakServiceWithStore(store, fixedClock(utcDate(2024, 3, 10)))

	got, err := svc.UpdateDailyStreak(context.Background(), "user_missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 on failure, got %d", got)
	}
	if store.writes != 0 {
		t.Errorf("no write may be attempted for an unknown user, got %d", store.writes)
	}
}

func TestUpdateDailyStreakReadFailure(t *testing.T) {
	store := &stubStreakStore{failRead: true}
	svc := NewStreakServiceWithStore(store, fixedClock(utcDate(2024, 3, 10)))

	_, err := svc.UpdateDailyStreak(context.Background(), "user_abc")
	if !errors.Is(err, ErrStreakRead) {
		t.Fatalf("expected ErrStreakRead, got %v", err)
	}
	if store.writes != 0 {
		t.Errorf("no write may follow a failed read, got %d", store.writes)
	}
}

// A value that was never persisted must not be reported as the streak.
func TestUpdateDailyStreakWriteFailure(t *testing.T) {
	visited := utcDate(2024, 3, 10)
	store := &stubStreakStore{count: 4, lastVisit: &visited, failWrite: true}
	svc := NewStreakServiceWithStore(store, fixedClock(utcDate(2024, 3, 11)))

	got, err := svc.UpdateDailyStreak(context.Background(), "user_abc")
	if !errors.Is(err, ErrStreakWrite) {
		t.Fatalf("expected ErrStreakWrite, got %v", err)
	}
	if got != 0 {
		t.Errorf("uncommitted streak value must not be returned, got %d", got)
	}
	if store.count != 4 {
		t.Errorf("stored state must be untouched, got %d", store.count)
	}
}

// Two racing requests read the same state and both write the same
// absolute pair; the final row is that pair no matter the write order.
func TestUpdateDailyStreakConcurrentRequests(t *testing.T) {
	visited := utcDate(2024, 3, 10)
	store := &stubStreakStore{count: 5, lastVisit: &visited}
	svc := NewStreakServiceWithStore(store, fixedClock(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)))

	var wg sync.WaitGroup
	results := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := svc.UpdateDailyStreak(context.Background(), "user_abc")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	// No double increment: both callers computed the same target.
	if store.count != 6 {
		t.Errorf("expected final streak 6, got %d", store.count)
	}
	if store.lastVisit == nil || !store.lastVisit.Equal(utcDate(2024, 3, 11)) {
		t.Errorf("expected last visit 2024-03-11, got %v", store.lastVisit)
	}
	for i, r := range results {
		if r != 6 {
			t.Errorf("call %d: expected 6, got %d", i, r)
		}
	}
}

func TestUpdateDailyStreakFullSequence(t *testing.T) {
	visited := utcDate(2024, 3, 10)
	store := &stubStreakStore{count: 5, lastVisit: &visited}
	ctx := context.Background()

	svc := NewStreakServiceWithStore(store, fixedClock(utcDate(2024, 3, 11)))
	got, err := svc.UpdateDailyStreak(ctx, "user_abc")
	if err != nil || got != 6 {
		t.Fatalf("day after: expected 6, got %d (%v)", got, err)
	}

	got, err = svc.UpdateDailyStreak(ctx, "user_abc")
	if err != nil || got != 6 {
		t.Fatalf("same day repeat: expected 6, got %d (%v)", got, err)
	}
	if store.writes != 1 {
		t.Fatalf("expected a single write so far, got %d", store.writes)
	}

	svc = NewStreakServiceWithStore(store, fixedClock(utcDate(2024, 3, 14)))
	got, err = svc.UpdateDailyStreak(ctx, "user_abc")
	if err != nil || got != 1 {
		t.Fatalf("after 3-day gap: expected reset to 1, got %d (%v)", got, err)
	}
	if store.lastVisit == nil || !store.lastVisit.Equal(utcDate(2024, 3, 14)) {
		t.Fatalf("expected last visit 2024-03-14, got %v", store.lastVisit)
	}
}

func TestGetStreakDoesNotRecordVisit(t *testing.T) {
	visited := utcDate(2024, 3, 10)
	store := &stubStreakStore{count: 3, lastVisit: &visited}
	svc := NewStreakServiceWithStore(store, fixedClock(utcDate(2024, 3, 12)))

	s, err := svc.GetStreak(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DailyStreak != 3 {
		t.Errorf("expected stored streak 3, got %d", s.DailyStreak)
	}
	if store.writes != 0 {
		t.Errorf("reading the streak must not write, got %d writes", store.writes)
	}
}
