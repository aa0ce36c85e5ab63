package models

import "github.com/shopspring/decimal"

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	// BillStatusDraft bills accept new items and re-splits.
	BillStatusDraft BillStatus = "draft"
	// BillStatusFinalized bills are frozen; only payments may be recorded against them.
	BillStatusFinalized BillStatus = "finalized"
)

// DefaultCurrency is used when a bill or payment does not name one.
const DefaultCurrency = "HKD"

// Bill is the settlement record for one dining event's charge.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// EventID is the dining event this bill settles.
	EventID string

	// Subtotal is the sum of receipt lines before charges.
	Subtotal decimal.Decimal

	// ServiceCharge is the restaurant service charge (10% in Hong Kong by default).
	ServiceCharge decimal.Decimal

	// TaxAmount is any tax on top of the subtotal (usually zero in Hong Kong).
	TaxAmount decimal.Decimal

	// TipAmount is added on top of the calculated totals.
	TipAmount decimal.Decimal

	// TotalAmount always equals Subtotal + ServiceCharge + TaxAmount + TipAmount.
	TotalAmount decimal.Decimal

	// Currency is an ISO 4217 code, HKD unless stated otherwise.
	Currency string

	Status BillStatus

	// ReceiptImageURL optionally points at a photo of the receipt.
	ReceiptImageURL string

	// CreatedBy is the user ID of the member who created the bill.
	CreatedBy string

	CreatedAt int64
	UpdatedAt int64

	// Items is only populated by GetBillWithItems.
	Items []BillItem
}

// IsFinalized reports whether the bill can no longer be edited.
func (b *Bill) IsFinalized() bool {
	return b.Status == BillStatusFinalized
}

// ComputedTotal returns the sum of the bill's components.
func (b *Bill) ComputedTotal() decimal.Decimal {
	return b.Subtotal.Add(b.ServiceCharge).Add(b.TaxAmount).Add(b.TipAmount)
}

// BillItem represents a single receipt line on a bill.
type BillItem struct {
	ID     string
	BillID string

	// Name is the dish or charge name as printed on the receipt.
	Name string

	// NameChinese is the optional localized name.
	NameChinese string

	// Price is the unit price.
	Price decimal.Decimal

	// Quantity defaults to 1 when unset.
	Quantity int

	Category string

	// IsShared items are split across the whole table by auto-split;
	// personal items go to a single owner.
	IsShared bool

	CreatedAt int64

	// Assignments is only populated by GetBillWithItems.
	Assignments []ItemAssignment
}

// EffectiveQuantity returns the quantity, treating unset values as 1.
func (i *BillItem) EffectiveQuantity() int {
	if i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

// TotalCost is price × quantity.
func (i *BillItem) TotalCost() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.EffectiveQuantity())))
}

// ItemAssignment is one member's share of one bill item.
type ItemAssignment struct {
	ID         string
	BillItemID string
	UserID     string

	// Portion is the fraction of the item cost in [0, 1].
	Portion decimal.Decimal

	// Amount is the item cost times Portion, rounded to cents.
	Amount decimal.Decimal

	// UserName and UserPhone are joined from the users table on read.
	UserName  string
	UserPhone string

	CreatedAt int64
}
