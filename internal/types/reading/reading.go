package reading

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	Name   string `json:"name"`
	Arcana string `json:"arcana"` // "major" or "minor"
	Suit   string `json:"suit,omitempty"`
	Rank   string `json:"rank,omitempty"`
	Number int    `json:"number"`
}

type Reading struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Date      time.Time `json:"date" db:"date"`
	Card      Card      `json:"card"`
	Reversed  bool      `json:"reversed" db:"reversed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type DailyReadingResponse struct {
	Reading *Reading `json:"reading"`
	IsNew   bool     `json:"is_new"`
}
