package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arcanaAPI/internal/types/streak"
	"arcanaAPI/middleware"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrStreakRead   = errors.New("failed to read streak")
	ErrStreakWrite  = errors.New("failed to write streak")
)

// StreakStore is the persistence the streak tracker needs: a point
// lookup and a full-replace write of both streak fields. SetStreak must
// write the absolute values it is given, never a relative increment,
// so racing requests that computed the same transition land on the
// same row state regardless of write order.
type StreakStore interface {
	GetStreak(ctx context.Context, clerkID string) (int, *time.Time, error)
	SetStreak(ctx context.Context, clerkID string, dailyStreak int, lastVisit time.Time) error
}

type StreakService struct {
	store StreakStore
	now   func() time.Time
}

func NewStreakService(db *pgxpool.Pool) *StreakService {
	return &StreakService{
		store: &pgxStreakStore{db: db},
		now:   time.Now,
	}
}

// NewStreakServiceWithStore wires an explicit store and clock.
func NewStreakServiceWithStore(store StreakStore, now func() time.Time) *StreakService {
	if now == nil {
		now = time.Now
	}
	return &StreakService{store: store, now: now}
}

// UpdateDailyStreak records a visit for the user's current UTC calendar
// day and returns the streak as persisted after the call. At most one
// write happens per user per day; a repeat visit on the same day is a
// pure no-op. Errors are tagged with ErrUserNotFound, ErrStreakRead or
// ErrStreakWrite; on any error the returned count is 0 and nothing the
// caller can display was committed.
func (s *StreakService) UpdateDailyStreak(ctx context.Context, clerkID string) (int, error) {
	current, lastVisit, err := s.store.GetStreak(ctx, clerkID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			middleware.RecordStreakFailure("not_found")
			return 0, err
		}
		middleware.RecordStreakFailure("read")
		return 0, fmt.Errorf("%w: %w", ErrStreakRead, err)
	}

	tr := streak.Advance(current, lastVisit, s.now())

	if tr.Write {
		if err := s.store.SetStreak(ctx, clerkID, tr.Streak, tr.VisitDate); err != nil {
			middleware.RecordStreakFailure("write")
			return 0, fmt.Errorf("%w: %w", ErrStreakWrite, err)
		}
		log.Printf("Streak %s for user %s: %d (visit %s)",
			tr.Kind, clerkID, tr.Streak, tr.VisitDate.Format("2006-01-02"))
	}

	middleware.RecordStreakTransition(string(tr.Kind))
	return tr.Streak, nil
}

// GetStreak returns the stored streak without recording a visit.
func (s *StreakService) GetStreak(ctx context.Context, clerkID string) (*streak.Streak, error) {
	current, lastVisit, err := s.store.GetStreak(ctx, clerkID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrStreakRead, err)
	}

	return &streak.Streak{DailyStreak: current, LastVisitDate: lastVisit}, nil
}

type pgxStreakStore struct {
	db *pgxpool.Pool
}

func (p *pgxStreakStore) GetStreak(ctx context.Context, clerkID string) (int, *time.Time, error) {
	query := `
	SELECT daily_streak, last_visit_date
	FROM users
	WHERE clerk_id = $1
	`

	var dailyStreak int
	var lastVisit *time.Time
	err := p.db.QueryRow(ctx, query, clerkID).Scan(&dailyStreak, &lastVisit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, fmt.Errorf("failed to query streak: %w", err)
	}

	return dailyStreak, lastVisit, nil
}

func (p *pgxStreakStore) SetStreak(ctx context.Context, clerkID string, dailyStreak int, lastVisit time.Time) error {
	// Absolute replace of both fields, not an increment.
	query := `
	UPDATE users
	SET daily_streak = $2, last_visit_date = $3, updated_at = NOW()
	WHERE clerk_id = $1
	`

	result, err := p.db.Exec(ctx, query, clerkID, dailyStreak, lastVisit)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
