package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dinelink/dinelink/internal/models"
)

// CreateNotification persists a notification. Data is stored as protojson.
func (q *queries) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.SentAt == 0 {
		n.SentAt = time.Now().Unix()
	}

	data := []byte("{}")
	if n.Data != nil {
		var err error
		data, err = protojson.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to encode notification data: %w", err)
		}
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, body, data, is_read, sent_at, read_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Type, n.Title, n.Body, string(data), boolToInt(n.IsRead), n.SentAt, n.ReadAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotifications retrieves a user's most recent notifications.
func (q *queries) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, user_id, type, title, body, data, is_read, sent_at, read_at
		 FROM notifications WHERE user_id = ?
		 ORDER BY sent_at DESC, rowid DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var data string
		var read int
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &data, &read, &n.SentAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.IsRead = read != 0
		n.Data = &structpb.Struct{}
		if err := protojson.Unmarshal([]byte(data), n.Data); err != nil {
			return nil, fmt.Errorf("failed to decode notification data: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return out, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
func (q *queries) MarkNotificationRead(ctx context.Context, notificationID, userID string, readAt int64) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1, read_at = ? WHERE id = ? AND user_id = ?`,
		readAt, notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return notFound("notification", notificationID)
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification of a user as read.
func (q *queries) MarkAllNotificationsRead(ctx context.Context, userID string, readAt int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1, read_at = ? WHERE user_id = ? AND is_read = 0`,
		readAt, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// CountUnreadNotifications returns how many unread notifications a user has.
func (q *queries) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}
