package models

import "google.golang.org/protobuf/types/known/structpb"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotifyEventInvitation NotificationType = "event_invitation"
	NotifyEventUpdate     NotificationType = "event_update"
	NotifyPaymentRequest  NotificationType = "payment_request"
	NotifyPaymentReceived NotificationType = "payment_received"
	NotifyBillSplit       NotificationType = "bill_split"
)

// Notification is a message delivered to one user.
type Notification struct {
	ID     string
	UserID string
	Type   NotificationType
	Title  string
	Body   string

	// Data carries structured context such as bill_id or amount.
	Data *structpb.Struct

	IsRead bool
	SentAt int64
	ReadAt int64
}
