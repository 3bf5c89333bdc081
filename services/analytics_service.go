package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"arcanaAPI/internal/types/streak"
)

type UserPresence struct {
	UserID     uuid.UUID `json:"user_id"`
	LastSeen   time.Time `json:"last_seen"`
	IsActive   bool      `json:"is_active"`
	DeviceInfo string    `json:"device_info"`
	AppVersion string    `json:"app_version"`
	Platform   string    `json:"platform"`
}

type AnalyticsService struct {
	db *pgxpool.Pool
}

func NewAnalyticsService(db *pgxpool.Pool) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// UpdatePresence records a heartbeat from an open app session. This is
// separate from the daily streak: presence is wall-clock recency,
// streaks are UTC calendar days.
func (s *AnalyticsService) UpdatePresence(ctx context.Context, clerkID string, deviceInfo map[string]string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	deviceInfoJSON, _ := json.Marshal(deviceInfo)

	query := `
		INSERT INTO user_presence (user_id, last_seen, is_active, device_info, app_version, platform)
		VALUES ($1, NOW(), true, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET
			last_seen = NOW(),
			is_active = true,
			device_info = $2,
			app_version = $3,
			platform = $4
	`

	_, err = s.db.Exec(ctx, query, userID, deviceInfoJSON,
		deviceInfo["app_version"], deviceInfo["platform"])
	return err
}

func (s *AnalyticsService) SetUserInactive(ctx context.Context, clerkID string) error {
	query := `
		UPDATE user_presence p
		SET is_active = false
		FROM users u
		WHERE p.user_id = u.id AND u.clerk_id = $1
	`

	_, err := s.db.Exec(ctx, query, clerkID)
	return err
}

func (s *AnalyticsService) GetActiveUsers(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_presence
		WHERE is_active = true AND last_seen > NOW() - INTERVAL '5 minutes'
	`

	var count int
	if err := s.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}

	return count, nil
}

// GetDAU counts users whose streak visit landed on the given UTC day.
// The streak tracker stamps last_visit_date on the first authenticated
// request of each day, which makes it an exact daily-active measure for
// the current day.
func (s *AnalyticsService) GetDAU(ctx context.Context, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE last_visit_date = $1
	`

	var count int
	if err := s.db.QueryRow(ctx, query, streak.Day(date)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count daily active users: %w", err)
	}

	return count, nil
}

// GetStreakDistribution buckets current streak lengths across all
// users, for the ops dashboard.
func (s *AnalyticsService) GetStreakDistribution(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT
			CASE
				WHEN daily_streak = 0 THEN 'none'
				WHEN daily_streak BETWEEN 1 AND 6 THEN '1-6'
				WHEN daily_streak BETWEEN 7 AND 29 THEN '7-29'
				WHEN daily_streak BETWEEN 30 AND 99 THEN '30-99'
				ELSE '100+'
			END AS bucket,
			COUNT(*)
		FROM users
		GROUP BY bucket
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak distribution: %w", err)
	}
	defer rows.Close()

	dist := map[string]int{}
	for rows.Next() {
		var bucket string
		var count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan streak distribution: %w", err)
		}
		dist[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read streak distribution: %w", err)
	}

	return dist, nil
}

func (s *AnalyticsService) CleanupStalePresence(ctx context.Context) error {
	query := `
		UPDATE user_presence
		SET is_active = false
		WHERE is_active = true AND last_seen < NOW() - INTERVAL '10 minutes'
	`

	_, err := s.db.Exec(ctx, query)
	return err
}

// StartCleanupJob marks stale presence rows inactive every few minutes.
func (s *AnalyticsService) StartCleanupJob() {
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			if err := s.CleanupStalePresence(context.Background()); err != nil {
				log.Printf("Presence cleanup failed: %v", err)
			}
		}
	}()
}
