package api

import "encoding/json"

type Notification struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`

	// Data is a JSON object with context such as bill_id.
	Data json.RawMessage `json:"data,omitempty"`

	IsRead bool  `json:"is_read"`
	SentAt int64 `json:"sent_at"`
	ReadAt int64 `json:"read_at,omitempty"`
}

type ListNotificationsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type GetUnreadCountRequest struct{}

type GetUnreadCountResponse struct {
	Count int `json:"count"`
}
