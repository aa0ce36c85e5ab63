// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/dinelink/dinelink/internal/models"
)

// ErrNotFound is returned (possibly wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore persists registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// EventStore persists dining events and their members.
type EventStore interface {
	// CreateEvent persists a new event. ID and CreatedAt are filled when empty.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent returns the event with its members populated.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	AddEventMember(ctx context.Context, member *models.EventMember) error
	GetEventMember(ctx context.Context, eventID, userID string) (*models.EventMember, error)
	UpdateEventMemberStatus(ctx context.Context, eventID, userID string, status models.MemberStatus) error
}

// BillStore persists bills, their items and item assignments.
type BillStore interface {
	// CreateBill persists a new bill. ID and timestamps are filled when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill returns the bill row only; Items is left nil.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// GetBillWithItems returns the bill with items and each item's
	// assignments (joined with user name and phone).
	GetBillWithItems(ctx context.Context, billID string) (*models.Bill, error)

	// ListBillsByEvent returns an event's bills, newest first.
	ListBillsByEvent(ctx context.Context, eventID string) ([]*models.Bill, error)

	UpdateBillStatus(ctx context.Context, billID string, status models.BillStatus, updatedAt int64) error

	// CreateBillItems inserts items for a bill. IDs are filled when empty.
	CreateBillItems(ctx context.Context, billID string, items []*models.BillItem) error

	GetBillItem(ctx context.Context, itemID string) (*models.BillItem, error)
	ListBillItems(ctx context.Context, billID string) ([]models.BillItem, error)

	// DeleteAssignmentsForItems removes every assignment of the given items.
	DeleteAssignmentsForItems(ctx context.Context, itemIDs []string) error

	// CreateAssignments inserts assignments. IDs are filled when empty.
	CreateAssignments(ctx context.Context, assignments []*models.ItemAssignment) error

	ListAssignmentsForItem(ctx context.Context, itemID string) ([]models.ItemAssignment, error)
}

// PaymentStore persists payments. Payments are never deleted.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	ListPaymentsByBill(ctx context.Context, billID string) ([]models.Payment, error)

	// CompletePayment marks a payment completed, overwriting any earlier
	// completion evidence.
	CompletePayment(ctx context.Context, paymentID, transactionID, proofURL string, completedAt int64) error
}

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string, readAt int64) error
	MarkAllNotificationsRead(ctx context.Context, userID string, readAt int64) error
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
}

// Queries is every data operation, usable either directly or inside a transaction.
type Queries interface {
	UserStore
	EventStore
	BillStore
	PaymentStore
	NotificationStore
}

// Store defines the interface for storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	Queries

	// WithTx runs fn inside a single transaction. If fn returns an error the
	// transaction is rolled back and the error returned unchanged; otherwise
	// it is committed. fn must only use the Queries it is given.
	WithTx(ctx context.Context, fn func(q Queries) error) error

	// Close releases any resources held by the store.
	Close() error
}
