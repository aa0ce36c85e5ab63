// Package notify stores in-app notifications for users. Delivery to devices
// is handled elsewhere; this package only persists the messages and tracks
// whether they were read.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dinelink/dinelink/internal/clock"
	"github.com/dinelink/dinelink/internal/metrics"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

var ErrNotFound = errors.New("notification not found")

// Service persists notifications through a storage.NotificationStore.
type Service struct {
	store   storage.NotificationStore
	clock   clock.Clock
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a notification service backed by store.
func New(store storage.NotificationStore, opts ...Option) *Service {
	s := &Service{store: store, clock: clock.SystemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify stores a notification for userID. data values must be JSON-like
// (strings, numbers, booleans, nested maps and slices); money should be
// passed as a string.
func (s *Service) Notify(ctx context.Context, userID string, kind models.NotificationType, title, body string, data map[string]any) error {
	payload, err := structpb.NewStruct(data)
	if err != nil {
		s.metrics.NotificationFailed()
		return fmt.Errorf("invalid notification data: %w", err)
	}

	n := &models.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
		Data:   payload,
		SentAt: s.clock.Now(ctx).Unix(),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.metrics.NotificationFailed()
		slog.Warn("Failed to store notification", "user_id", userID, "type", kind, "error", err)
		return err
	}

	slog.Debug("Notification stored", "notification_id", n.ID, "user_id", userID, "type", kind)
	return nil
}

// List returns the user's newest notifications. A non-positive limit means
// DefaultListLimit; limits above MaxListLimit are capped.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.store.ListNotifications(ctx, userID, limit)
}

// MarkRead marks one of the user's notifications as read. Notifications
// belonging to someone else are reported as ErrNotFound.
func (s *Service) MarkRead(ctx context.Context, notificationID, userID string) error {
	err := s.store.MarkNotificationRead(ctx, notificationID, userID, s.clock.Now(ctx).Unix())
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, notificationID)
	}
	return err
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID, s.clock.Now(ctx).Unix())
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}
