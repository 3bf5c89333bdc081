package user

import (
	"time"

	"arcanaAPI/internal/types/reading"
)

type CreateUserRequest struct {
	ClerkID   string `json:"clerkId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=30"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type UpdateProfileRequest struct {
	Username   string     `json:"username,omitempty"`
	FirstName  string     `json:"firstName,omitempty"`
	LastName   string     `json:"lastName,omitempty"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	ZodiacSign string     `json:"zodiacSign,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
}

// ProfileResponse is what the app renders on the home/profile screens.
// DailyStreak here is the post-visit value; it is 0 when the streak
// could not be loaded or updated for this request.
type ProfileResponse struct {
	User        *User `json:"user"`
	DailyStreak int   `json:"dailyStreak"`
}

// HomeResponse bundles everything the home screen renders in one call:
// the profile, today's streak and whether loading it failed, the daily
// card, and the unread notification count.
type HomeResponse struct {
	User              *User                         `json:"user"`
	DailyStreak       int                           `json:"dailyStreak"`
	StreakUnavailable bool                          `json:"streakUnavailable,omitempty"`
	DailyReading      *reading.DailyReadingResponse `json:"dailyReading,omitempty"`
	UnreadCount       int                           `json:"unreadCount"`
}
