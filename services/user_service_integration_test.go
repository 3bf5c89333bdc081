package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"arcanaAPI/internal/types/user"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if err := godotenv.Load("../.env"); err != nil {
		_ = godotenv.Load()
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}
	return db
}

func TestUserStreakFlow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userSvc := NewUserService(db)
	streakSvc := NewStreakService(db)

	clerkID := fmt.Sprintf("user_test_%d", time.Now().UnixNano())
	created, err := userSvc.CreateUser(ctx, &user.CreateUserRequest{
		ClerkID:   clerkID,
		Email:     fmt.Sprintf("test%d@example.com", time.Now().UnixNano()),
		Username:  "streaktester",
		FirstName: "Streak",
		LastName:  "Tester",
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	defer userSvc.DeleteUserByClerkID(ctx, clerkID)

	if created.DailyStreak != 0 {
		t.Errorf("new user must start with streak 0, got %d", created.DailyStreak)
	}
	if created.LastVisitDate != nil {
		t.Errorf("new user must start with no last visit, got %v", created.LastVisitDate)
	}

	// First visit.
	got, err := streakSvc.UpdateDailyStreak(ctx, clerkID)
	if err != nil {
		t.Fatalf("Failed to update streak: %v", err)
	}
	if got != 1 {
		t.Errorf("first visit: expected streak 1, got %d", got)
	}

	// Same day again is a no-op.
	got, err = streakSvc.UpdateDailyStreak(ctx, clerkID)
	if err != nil {
		t.Fatalf("Failed to update streak: %v", err)
	}
	if got != 1 {
		t.Errorf("repeat visit: expected streak 1, got %d", got)
	}

	// The profile read reflects the committed value.
	u, err := userSvc.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if u.DailyStreak != 1 {
		t.Errorf("profile: expected streak 1, got %d", u.DailyStreak)
	}
	if u.LastVisitDate == nil {
		t.Error("profile: expected a last visit date")
	}
}

func TestUpdateDailyStreakUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	streakSvc := NewStreakService(db)

	_, err := streakSvc.UpdateDailyStreak(context.Background(), "user_does_not_exist")
	if err == nil {
		t.Fatal("expected an error for an unknown user")
	}
}
