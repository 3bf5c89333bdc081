package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arcanaAPI/internal/types/reading"
	"arcanaAPI/internal/types/streak"
	"arcanaAPI/utils"
)

type ReadingService struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewReadingService(db *pgxpool.Pool) *ReadingService {
	return &ReadingService{db: db, now: time.Now}
}

// GetDailyReading returns the user's card of the day, drawing and
// persisting it on the first request of each UTC day. The draw is
// deterministic per (user, day), so concurrent first requests insert
// the same card and the unique (user_id, date) constraint keeps a
// single row.
func (s *ReadingService) GetDailyReading(ctx context.Context, clerkID string) (*reading.DailyReadingResponse, error) {
	var userID string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	today := streak.Day(s.now())

	existing, err := s.readingForDate(ctx, userID, today)
	if err == nil {
		return &reading.DailyReadingResponse{Reading: existing, IsNew: false}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load daily reading: %w", err)
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %s: %w", userID, err)
	}
	card, reversed := utils.CardOfDay(uid, today)

	insert := `
	INSERT INTO daily_readings (user_id, date, card_name, arcana, suit, rank, card_number, reversed, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (user_id, date) DO NOTHING
	`
	if _, err := s.db.Exec(ctx, insert, userID, today, card.Name, card.Arcana, card.Suit, card.Rank, card.Number, reversed); err != nil {
		return nil, fmt.Errorf("failed to save daily reading: %w", err)
	}

	// Re-read so a racing insert still yields the stored row.
	stored, err := s.readingForDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily reading after draw: %w", err)
	}

	return &reading.DailyReadingResponse{Reading: stored, IsNew: true}, nil
}

func (s *ReadingService) readingForDate(ctx context.Context, userID string, date time.Time) (*reading.Reading, error) {
	query := `
	SELECT id, user_id, date, card_name, arcana, suit, rank, card_number, reversed, created_at
	FROM daily_readings
	WHERE user_id = $1 AND date = $2
	`

	r := &reading.Reading{}
	err := s.db.QueryRow(ctx, query, userID, date).Scan(
		&r.ID,
		&r.UserID,
		&r.Date,
		&r.Card.Name,
		&r.Card.Arcana,
		&r.Card.Suit,
		&r.Card.Rank,
		&r.Card.Number,
		&r.Reversed,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r, nil
}
