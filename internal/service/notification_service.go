package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/internal/notify"
	"github.com/dinelink/dinelink/pkg/api"
)

// NotificationService implements the NotificationService RPC interface.
type NotificationService struct {
	notifications *notify.Service
	defaultLimit  int
}

// NewNotificationService creates a notification service. defaultLimit is
// used when a request does not set one.
func NewNotificationService(n *notify.Service, defaultLimit int) *NotificationService {
	return &NotificationService{notifications: n, defaultLimit: defaultLimit}
}

func (s *NotificationService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	list, err := s.notifications.List(ctx, userID, limit)
	if err != nil {
		return nil, toConnectError(err)
	}
	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Notification, len(list))
	for i, n := range list {
		out[i] = notificationToAPI(n)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{
		Notifications: out,
		UnreadCount:   unread,
	}), nil
}

func (s *NotificationService) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkRead(ctx, req.Msg.NotificationID, userID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.MarkNotificationReadResponse{}), nil
}

func (s *NotificationService) MarkAllNotificationsRead(ctx context.Context, req *connect.Request[api.MarkAllNotificationsReadRequest]) (*connect.Response[api.MarkAllNotificationsReadResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.MarkAllNotificationsReadResponse{}), nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, req *connect.Request[api.GetUnreadCountRequest]) (*connect.Response[api.GetUnreadCountResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetUnreadCountResponse{Count: count}), nil
}
