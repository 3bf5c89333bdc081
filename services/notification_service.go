package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"arcanaAPI/internal/notification"
)

// PushProvider delivers a push message to a set of device tokens.
// FCM implements this; tests substitute a mock.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

type NotificationService struct {
	db   *pgxpool.Pool
	push PushProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.push = p
}

// CreateNotification stores an in-app notification and fires a push in
// the background. Push failures only log; the stored row is the source
// of truth.
func (s *NotificationService) CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	dataJSON, _ := json.Marshal(req.Data)

	query := `
	INSERT INTO notifications (user_id, type, title, message, data, is_read, created_at)
	VALUES ($1, $2, $3, $4, $5, false, NOW())
	RETURNING id, user_id, type, title, message, is_read, created_at
	`

	notif := &notification.Notification{Data: req.Data}
	err := s.db.QueryRow(ctx, query, req.UserID, req.Type, req.Title, req.Message, dataJSON).Scan(
		&notif.ID,
		&notif.UserID,
		&notif.Type,
		&notif.Title,
		&notif.Message,
		&notif.IsRead,
		&notif.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.push != nil {
		go s.sendPush(notif)
	}

	return notif, nil
}

func (s *NotificationService) sendPush(notif *notification.Notification) {
	ctx := context.Background()

	tokens, err := s.deviceTokens(ctx, notif.UserID)
	if err != nil {
		log.Printf("Push skipped for notification %s: %v", notif.ID, err)
		return
	}

	if err := s.push.SendPush(ctx, tokens, notif.Title, notif.Message, notif.Data); err != nil {
		log.Printf("Push failed for notification %s: %v", notif.ID, err)
	}
}

func (s *NotificationService) deviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id, token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform); err != nil {
			log.Printf("Skipping malformed device token row for user %s: %v", userID, err)
			continue
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read device tokens: %w", err)
	}

	return tokens, nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, clerkID string) (*notification.NotificationListResponse, error) {
	query := `
	SELECT n.id, n.user_id, n.type, n.title, n.message, n.data, n.is_read, n.created_at
	FROM notifications n
	JOIN users u ON u.id = n.user_id
	WHERE u.clerk_id = $1
	ORDER BY n.created_at DESC
	LIMIT 50
	`

	rows, err := s.db.Query(ctx, query, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*notification.Notification{}
	for rows.Next() {
		n := &notification.Notification{}
		var dataJSON []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &dataJSON, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Data = decodeNotificationData(n.ID, dataJSON)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	unread, err := s.GetUnreadCount(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	return &notification.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// decodeNotificationData parses the stored data payload. A malformed
// payload is logged and dropped rather than failing the whole list.
func decodeNotificationData(id uuid.UUID, dataJSON []byte) map[string]any {
	if len(dataJSON) == 0 {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(dataJSON, &data); err != nil {
		log.Printf("Malformed data payload on notification %s: %v", id, err)
		return nil
	}
	return data
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, clerkID string) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM notifications n
	JOIN users u ON u.id = n.user_id
	WHERE u.clerk_id = $1 AND n.is_read = false
	`

	var count int
	if err := s.db.QueryRow(ctx, query, clerkID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID, clerkID string) error {
	query := `
	UPDATE notifications n
	SET is_read = true
	FROM users u
	WHERE n.id = $1 AND n.user_id = u.id AND u.clerk_id = $2
	`

	result, err := s.db.Exec(ctx, query, notificationID, clerkID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, clerkID string) error {
	query := `
	UPDATE notifications n
	SET is_read = true
	FROM users u
	WHERE n.user_id = u.id AND u.clerk_id = $1 AND n.is_read = false
	`

	if _, err := s.db.Exec(ctx, query, clerkID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notification.RegisterDeviceRequest) error {
	query := `
	INSERT INTO device_tokens (user_id, token, platform, created_at)
	SELECT u.id, $2, $3, NOW() FROM users u WHERE u.clerk_id = $1
	ON CONFLICT (user_id, token) DO UPDATE SET platform = $3
	`

	result, err := s.db.Exec(ctx, query, clerkID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
