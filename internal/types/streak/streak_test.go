package streak

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceFirstVisit(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tr := Advance(0, nil, now)

	if tr.Streak != 1 {
		t.Errorf("expected streak 1, got %d", tr.Streak)
	}
	if !tr.Write {
		t.Error("first visit must require a write")
	}
	if tr.Kind != KindFirstVisit {
		t.Errorf("expected kind %s, got %s", KindFirstVisit, tr.Kind)
	}
	if !tr.VisitDate.Equal(date(2024, 3, 10)) {
		t.Errorf("expected visit date 2024-03-10, got %v", tr.VisitDate)
	}
}

func TestAdvanceSameDayIsNoOp(t *testing.T) {
	last := date(2024, 3, 10)
	now := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)

	tr := Advance(7, &last, now)

	if tr.Streak != 7 {
		t.Errorf("expected streak unchanged at 7, got %d", tr.Streak)
	}
	if tr.Write {
		t.Error("same-day visit must not require a write")
	}
	if tr.Kind != KindRepeat {
		t.Errorf("expected kind %s, got %s", KindRepeat, tr.Kind)
	}
}

func TestAdvanceConsecutiveDay(t *testing.T) {
	last := date(2024, 3, 10)
	now := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	tr := Advance(5, &last, now)

	if tr.Streak != 6 {
		t.Errorf("expected streak 6, got %d", tr.Streak)
	}
	if !tr.Write {
		t.Error("consecutive-day visit must require a write")
	}
	if tr.Kind != KindExtended {
		t.Errorf("expected kind %s, got %s", KindExtended, tr.Kind)
	}
	if !tr.VisitDate.Equal(date(2024, 3, 11)) {
		t.Errorf("expected visit date 2024-03-11, got %v", tr.VisitDate)
	}
}

func TestAdvanceGapResets(t *testing.T) {
	last := date(2024, 3, 10)

	for _, gap := range []int{2, 3, 30, 365} {
		now := last.AddDate(0, 0, gap)
		tr := Advance(9, &last, now)

		if tr.Streak != 1 {
			t.Errorf("gap of %d days: expected reset to 1, got %d", gap, tr.Streak)
		}
		if !tr.Write {
			t.Errorf("gap of %d days: reset must require a write", gap)
		}
		if tr.Kind != KindReset {
			t.Errorf("gap of %d days: expected kind %s, got %s", gap, KindReset, tr.Kind)
		}
	}
}

// Midnight boundaries are UTC calendar boundaries, not elapsed time.
func TestAdvanceMidnightBoundary(t *testing.T) {
	lateNight := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	justAfter := time.Date(2024, 3, 11, 0, 0, 1, 0, time.UTC)

	first := Advance(0, nil, lateNight)
	if first.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", first.Streak)
	}

	second := Advance(first.Streak, &first.VisitDate, justAfter)
	if second.Kind != KindExtended {
		t.Errorf("two minutes across midnight should extend the streak, got %s", second.Kind)
	}
	if second.Streak != 2 {
		t.Errorf("expected streak 2, got %d", second.Streak)
	}

	// 23 hours apart but the same UTC date is still the same day.
	morning := time.Date(2024, 3, 12, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 12, 23, 30, 0, 0, time.UTC)

	third := Advance(second.Streak, &second.VisitDate, morning)
	fourth := Advance(third.Streak, &third.VisitDate, evening)
	if fourth.Kind != KindRepeat || fourth.Streak != third.Streak {
		t.Errorf("same UTC date must be a repeat, got kind %s streak %d", fourth.Kind, fourth.Streak)
	}
}

// A stored visit date ahead of the local clock happens when two servers
// straddle UTC midnight. The lagging server must neither reset the streak
// nor move last_visit_date backwards.
func TestAdvanceFutureStoredDateIsNoOp(t *testing.T) {
	last := date(2024, 3, 12)
	now := time.Date(2024, 3, 11, 23, 59, 58, 0, time.UTC)

	tr := Advance(5, &last, now)

	if tr.Streak != 5 {
		t.Errorf("expected streak unchanged at 5, got %d", tr.Streak)
	}
	if tr.Write {
		t.Error("future stored date must not require a write")
	}
	if tr.Kind != KindRepeat {
		t.Errorf("expected kind %s, got %s", KindRepeat, tr.Kind)
	}
	if !tr.VisitDate.Equal(last) {
		t.Errorf("last visit date must never move backwards, got %v", tr.VisitDate)
	}
}

func TestAdvanceIgnoresTimeOfDayOnStoredDate(t *testing.T) {
	// Stored last visit carrying a stray time component still compares by date.
	last := time.Date(2024, 3, 10, 18, 45, 12, 0, time.UTC)
	now := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)

	tr := Advance(3, &last, now)
	if tr.Kind != KindExtended || tr.Streak != 4 {
		t.Errorf("expected extended streak 4, got kind %s streak %d", tr.Kind, tr.Streak)
	}
}

func TestAdvanceEndToEndSequence(t *testing.T) {
	// 5-day streak, visited 2024-03-10.
	last := date(2024, 3, 10)
	streakCount := 5

	tr := Advance(streakCount, &last, date(2024, 3, 11))
	if tr.Streak != 6 {
		t.Fatalf("day after: expected 6, got %d", tr.Streak)
	}

	again := Advance(tr.Streak, &tr.VisitDate, time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC))
	if again.Streak != 6 || again.Write {
		t.Fatalf("same day again: expected 6 with no write, got %d write=%v", again.Streak, again.Write)
	}

	afterGap := Advance(again.Streak, &again.VisitDate, date(2024, 3, 14))
	if afterGap.Streak != 1 {
		t.Fatalf("three-day gap: expected reset to 1, got %d", afterGap.Streak)
	}
	if !afterGap.VisitDate.Equal(date(2024, 3, 14)) {
		t.Fatalf("expected visit date 2024-03-14, got %v", afterGap.VisitDate)
	}
}

func TestDayTruncation(t *testing.T) {
	in := time.Date(2024, 7, 1, 4, 30, 0, 0, time.FixedZone("UTC+6", 6*3600))
	got := Day(in)

	// 04:30 at UTC+6 is 22:30 the previous day in UTC.
	if !got.Equal(date(2024, 6, 30)) {
		t.Errorf("expected 2024-06-30 UTC, got %v", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", got.Location())
	}
}
