package streak

import (
	"time"

	"github.com/google/uuid"
)

type Streak struct {
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	DailyStreak   int        `json:"daily_streak" db:"daily_streak"`
	LastVisitDate *time.Time `json:"last_visit_date" db:"last_visit_date"`
}

type TransitionKind string

const (
	KindFirstVisit TransitionKind = "first_visit"
	KindRepeat     TransitionKind = "repeat"
	KindExtended   TransitionKind = "extended"
	KindReset      TransitionKind = "reset"
)

// Transition is the outcome of applying one visit to a streak.
// Write reports whether the record must be persisted; on the repeat
// path nothing changed and no write may happen.
type Transition struct {
	Streak    int
	VisitDate time.Time
	Write     bool
	Kind      TransitionKind
}

// Day truncates an instant to its UTC calendar date. Streak days are
// UTC days regardless of the user's timezone.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Advance applies one visit at instant now to the stored streak state.
// Rules, first match wins:
//
//	no previous visit        -> streak 1, write
//	visited today (UTC)      -> unchanged, no write
//	visited yesterday (UTC)  -> streak+1, write
//	anything older           -> streak 1, write
//
// Comparison is by UTC calendar date, never elapsed duration, so 23:59
// followed by 00:01 the next day counts as two consecutive days.
//
// A stored date later than today can only come from clock skew between
// servers around midnight. The record is never back-dated: that case is
// a no-op like a repeat visit, and the skewed server leaves it alone.
func Advance(current int, lastVisit *time.Time, now time.Time) Transition {
	today := Day(now)

	if lastVisit == nil {
		return Transition{Streak: 1, VisitDate: today, Write: true, Kind: KindFirstVisit}
	}

	last := Day(*lastVisit)

	switch {
	case last.Equal(today) || last.After(today):
		return Transition{Streak: current, VisitDate: last, Write: false, Kind: KindRepeat}
	case last.Equal(today.AddDate(0, 0, -1)):
		return Transition{Streak: current + 1, VisitDate: today, Write: true, Kind: KindExtended}
	default:
		return Transition{Streak: 1, VisitDate: today, Write: true, Kind: KindReset}
	}
}
