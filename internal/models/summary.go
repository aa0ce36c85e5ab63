package models

import "github.com/shopspring/decimal"

// SettlementStatus describes how much of their share a member has paid.
type SettlementStatus string

const (
	SettlementPaid    SettlementStatus = "paid"
	SettlementPartial SettlementStatus = "partial"
	SettlementPending SettlementStatus = "pending"
)

// UserTotal is one member's row in a BillSummary.
type UserTotal struct {
	UserID    string
	UserName  string
	UserPhone string

	// TotalAmount is the sum of the member's item assignments.
	TotalAmount decimal.Decimal

	// PaidAmount is the sum of completed payments where the member is payer.
	PaidAmount decimal.Decimal

	// PendingAmount is max(0, TotalAmount - PaidAmount).
	PendingAmount decimal.Decimal

	Status SettlementStatus

	// ChargesShare is the member's proportional part of service charge, tax and tip.
	// PayableAmount = TotalAmount + ChargesShare. Neither affects Status.
	ChargesShare  decimal.Decimal
	PayableAmount decimal.Decimal
}

// BillSummary is a read-side projection of a bill's assignments and payments.
// It is recomputed on every request.
type BillSummary struct {
	Bill         *Bill
	UserTotals   []UserTotal
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
}
