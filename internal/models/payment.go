package models

import "github.com/shopspring/decimal"

// PaymentStatus tracks whether a payment has been made.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Payment is a member's claimed contribution toward a bill.
// Payments are append-only: they are created pending and may only be
// completed by their payer. They are never deleted.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	BillID string

	// PayerID is the member expected to pay.
	PayerID string

	// RecipientID is the member collecting the money (usually whoever fronted the bill).
	RecipientID string

	Amount   decimal.Decimal
	Currency string

	// Method is one of the Hong Kong payment methods, e.g. "fps" or "payme".
	Method string

	Status PaymentStatus

	// TransactionID and ProofURL are optional evidence supplied on completion.
	TransactionID string
	ProofURL      string

	CreatedAt   int64
	CompletedAt int64
}

// IsCompleted reports whether the payer has marked the payment as paid.
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
