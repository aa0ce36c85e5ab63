package api

import "github.com/shopspring/decimal"

type Bill struct {
	ID              string          `json:"id"`
	EventID         string          `json:"event_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ServiceCharge   decimal.Decimal `json:"service_charge"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TipAmount       decimal.Decimal `json:"tip_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	ReceiptImageURL string          `json:"receipt_image_url,omitempty"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       int64           `json:"created_at"`
	UpdatedAt       int64           `json:"updated_at"`
	Items           []*BillItem     `json:"items,omitempty"`
}

type BillItem struct {
	ID          string            `json:"id"`
	BillID      string            `json:"bill_id"`
	Name        string            `json:"name"`
	NameChinese string            `json:"name_chinese,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantity"`
	Category    string            `json:"category,omitempty"`
	IsShared    bool              `json:"is_shared"`
	TotalCost   decimal.Decimal   `json:"total_cost"`
	Assignments []*ItemAssignment `json:"assignments,omitempty"`
}

type ItemAssignment struct {
	ID         string          `json:"id"`
	BillItemID string          `json:"bill_item_id"`
	UserID     string          `json:"user_id"`
	UserName   string          `json:"user_name,omitempty"`
	UserPhone  string          `json:"user_phone,omitempty"`
	Portion    decimal.Decimal `json:"portion"`
	Amount     decimal.Decimal `json:"amount"`
}

type Payment struct {
	ID            string          `json:"id"`
	BillID        string          `json:"bill_id"`
	PayerID       string          `json:"payer_id"`
	RecipientID   string          `json:"recipient_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	ProofURL      string          `json:"payment_proof_url,omitempty"`
	CreatedAt     int64           `json:"created_at"`
	CompletedAt   int64           `json:"completed_at,omitempty"`
}

type UserTotal struct {
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	UserPhone     string          `json:"user_phone"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	PaymentStatus string          `json:"payment_status"`
	ChargesShare  decimal.Decimal `json:"charges_share"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
}

type BillSummary struct {
	Bill         *Bill           `json:"bill"`
	UserTotals   []*UserTotal    `json:"user_totals"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

// CalculateTotalsRequest leaves rates unset to use the server defaults.
type CalculateTotalsRequest struct {
	Subtotal          decimal.Decimal  `json:"subtotal"`
	ServiceChargeRate *decimal.Decimal `json:"service_charge_rate,omitempty"`
	TaxRate           *decimal.Decimal `json:"tax_rate,omitempty"`
	TipAmount         decimal.Decimal  `json:"tip_amount"`
}

type CalculateTotalsResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`

	// PayableTotal is TotalAmount plus the tip.
	PayableTotal decimal.Decimal `json:"payable_total"`
}

// CreateBillRequest may leave TotalAmount zero to have it derived.
type CreateBillRequest struct {
	EventID         string          `json:"event_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ServiceCharge   decimal.Decimal `json:"service_charge"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TipAmount       decimal.Decimal `json:"tip_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency,omitempty"`
	ReceiptImageURL string          `json:"receipt_image_url,omitempty"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type BillItemInput struct {
	Name        string          `json:"name"`
	NameChinese string          `json:"name_chinese,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsShared    bool            `json:"is_shared"`
}

type AddBillItemsRequest struct {
	BillID string           `json:"bill_id"`
	Items  []*BillItemInput `json:"items"`
}

type AddBillItemsResponse struct {
	Items []*BillItem `json:"items"`
}

type Share struct {
	UserID  string          `json:"user_id"`
	Portion decimal.Decimal `json:"portion"`
}

// AssignItemRequest replaces every assignment of ItemID with Shares.
type AssignItemRequest struct {
	ItemID string   `json:"item_id"`
	Shares []*Share `json:"shares"`
}

type AssignItemResponse struct {
	Assignments []*ItemAssignment `json:"assignments"`
}

// AutoSplitBillRequest splits shared items equally between MemberIDs.
// Owners maps personal item ids to the member who ordered them.
type AutoSplitBillRequest struct {
	BillID    string            `json:"bill_id"`
	MemberIDs []string          `json:"member_ids"`
	Owners    map[string]string `json:"owners,omitempty"`
}

type AutoSplitBillResponse struct {
	Assignments []*ItemAssignment `json:"assignments"`
}

type GetBillDetailsRequest struct {
	BillID string `json:"bill_id"`
}

type GetBillDetailsResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillSummaryRequest struct {
	BillID string `json:"bill_id"`
}

type GetBillSummaryResponse struct {
	Summary *BillSummary `json:"summary"`
}

type ListEventBillsRequest struct {
	EventID string `json:"event_id"`
}

type ListEventBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

type FinalizeBillRequest struct {
	BillID string `json:"bill_id"`
}

type FinalizeBillResponse struct {
	BillID string `json:"bill_id"`
	Status string `json:"status"`
}

type CreatePaymentRequestRequest struct {
	BillID      string          `json:"bill_id"`
	PayerID     string          `json:"payer_id"`
	RecipientID string          `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"payment_method"`
}

type CreatePaymentRequestResponse struct {
	Payment *Payment `json:"payment"`
}

type CompletePaymentRequest struct {
	PaymentID     string `json:"payment_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	ProofURL      string `json:"payment_proof_url,omitempty"`
}

type CompletePaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type PaymentMethod struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListPaymentMethodsRequest selects "en" or "zh" labels.
type ListPaymentMethodsRequest struct {
	Language string `json:"language,omitempty"`
}

type ListPaymentMethodsResponse struct {
	Methods []*PaymentMethod `json:"methods"`
}
