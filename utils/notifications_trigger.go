package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"arcanaAPI/internal/notification"
)

// NotificationCreator is the slice of the notification service this
// trigger needs.
type NotificationCreator interface {
	CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
}

var streakMilestones = map[int]string{
	7:   "A full week of daily visits. The cards are starting to know you.",
	30:  "Thirty days in a row. Your dedication is written in the stars.",
	100: "One hundred days. A true seeker.",
	365: "A whole year, every single day. Remarkable.",
}

// IsStreakMilestone reports whether a streak value lands exactly on a
// milestone worth announcing.
func IsStreakMilestone(n int) bool {
	_, ok := streakMilestones[n]
	return ok
}

// StreakMilestoneReached creates a milestone notification for the user.
// The visit handler calls this fire-and-forget after a successful
// streak update; the streak itself is already committed and does not
// depend on it.
func StreakMilestoneReached(notifier NotificationCreator, userID uuid.UUID, newStreak int) {
	message, ok := streakMilestones[newStreak]
	if !ok {
		return
	}

	bgCtx := context.Background()

	req := &notification.CreateNotificationRequest{
		UserID:  userID,
		Type:    notification.TypeStreakMilestone,
		Title:   fmt.Sprintf("%d day streak!", newStreak),
		Message: message,
		Data: map[string]any{
			"days": newStreak,
		},
	}

	if _, err := notifier.CreateNotification(bgCtx, req); err != nil {
		log.Printf("Failed to create streak milestone notification for %s: %v", userID, err)
	}
}
