package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/calculator"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

// CreateBillInput describes a new bill draft.
type CreateBillInput struct {
	EventID       string
	Subtotal      decimal.Decimal
	ServiceCharge decimal.Decimal
	TaxAmount     decimal.Decimal
	TipAmount     decimal.Decimal

	// TotalAmount may be left zero to have it derived from the parts.
	TotalAmount decimal.Decimal

	Currency        string
	ReceiptImageURL string
}

// ItemInput is one receipt line to add to a bill.
type ItemInput struct {
	Name        string
	NameChinese string
	Price       decimal.Decimal
	Quantity    int
	Category    string
	IsShared    bool
}

// PaymentRequestInput asks PayerID to pay Amount to RecipientID.
type PaymentRequestInput struct {
	BillID      string
	PayerID     string
	RecipientID string
	Amount      decimal.Decimal
	Method      string
}

// CreateBill creates a draft bill for an event. The creator must be the
// event's organizer or a confirmed member.
func (s *Service) CreateBill(ctx context.Context, in CreateBillInput, creatorID string) (*models.Bill, error) {
	if in.EventID == "" {
		return nil, invalidInput("event_id is required")
	}
	if !in.Subtotal.IsPositive() {
		return nil, invalidInput("subtotal must be positive")
	}
	for name, v := range map[string]decimal.Decimal{
		"service_charge": in.ServiceCharge,
		"tax_amount":     in.TaxAmount,
		"tip_amount":     in.TipAmount,
	} {
		if v.IsNegative() {
			return nil, invalidInput("%s must not be negative", name)
		}
	}

	bill := &models.Bill{
		EventID:         in.EventID,
		Subtotal:        in.Subtotal,
		ServiceCharge:   in.ServiceCharge,
		TaxAmount:       in.TaxAmount,
		TipAmount:       in.TipAmount,
		Currency:        strings.ToUpper(in.Currency),
		Status:          models.BillStatusDraft,
		ReceiptImageURL: in.ReceiptImageURL,
		CreatedBy:       creatorID,
		CreatedAt:       s.now(ctx),
	}
	if bill.Currency == "" {
		bill.Currency = s.cfg.Currency
	}
	bill.TotalAmount = bill.ComputedTotal()
	if !in.TotalAmount.IsZero() && !in.TotalAmount.Equal(bill.TotalAmount) {
		return nil, invalidInput("total_amount %s does not match subtotal + charges + tip = %s",
			in.TotalAmount, bill.TotalAmount)
	}

	a, err := resolveActor(ctx, s.store, in.EventID, creatorID)
	if err != nil {
		return nil, err
	}
	if a.event == nil {
		return nil, fmt.Errorf("%w: event %s", ErrNotFound, in.EventID)
	}
	if !a.canMutate(nil) {
		return nil, fmt.Errorf("%w: user %s cannot create bills for event %s", ErrAccessDenied, creatorID, in.EventID)
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, storageError("create bill", err)
	}

	slog.Info("Bill created", "bill_id", bill.ID, "event_id", bill.EventID, "total", bill.TotalAmount.String())
	return bill, nil
}

// AddBillItems appends receipt lines to a draft bill. All items are
// inserted in one transaction.
func (s *Service) AddBillItems(ctx context.Context, billID, userID string, items []ItemInput) ([]models.BillItem, error) {
	if len(items) == 0 {
		return nil, invalidInput("at least one item is required")
	}
	now := s.now(ctx)
	records := make([]*models.BillItem, len(items))
	for i, in := range items {
		if strings.TrimSpace(in.Name) == "" {
			return nil, invalidInput("item %d has no name", i+1)
		}
		if in.Price.IsNegative() {
			return nil, invalidInput("item %q has a negative price", in.Name)
		}
		if in.Quantity < 0 {
			return nil, invalidInput("item %q has a negative quantity", in.Name)
		}
		records[i] = &models.BillItem{
			Name:        in.Name,
			NameChinese: in.NameChinese,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Category:    in.Category,
			IsShared:    in.IsShared,
			CreatedAt:   now,
		}
	}

	err := s.inTx(ctx, "add bill items", func(q storage.Queries) error {
		bill, err := q.GetBill(ctx, billID)
		if err != nil {
			return storageError("load bill", err)
		}
		if err := authorizeMutate(ctx, q, bill, userID); err != nil {
			return err
		}
		if err := requireDraft(bill); err != nil {
			return err
		}
		if err := q.CreateBillItems(ctx, billID, records); err != nil {
			return storageError("insert items", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.BillItem, len(records))
	for i, r := range records {
		out[i] = *r
	}
	slog.Info("Bill items added", "bill_id", billID, "count", len(out))
	return out, nil
}

// FinalizeBill freezes a draft bill. Only the bill's creator or the event
// organizer may finalize; anyone else gets ErrUnauthorized. Every member
// holding a share is then notified of what they owe.
func (s *Service) FinalizeBill(ctx context.Context, billID, userID string) error {
	err := s.inTx(ctx, "finalize bill", func(q storage.Queries) error {
		bill, err := q.GetBill(ctx, billID)
		if err != nil {
			return storageError("load bill", err)
		}
		a, err := resolveActor(ctx, q, bill.EventID, userID)
		if err != nil {
			return err
		}
		if !a.canFinalize(bill) {
			return fmt.Errorf("%w: only the bill creator or event organizer can finalize bill %s", ErrUnauthorized, billID)
		}
		if err := requireDraft(bill); err != nil {
			return err
		}
		if err := q.UpdateBillStatus(ctx, billID, models.BillStatusFinalized, s.now(ctx)); err != nil {
			return storageError("update bill status", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.BillFinalized()
	slog.Info("Bill finalized", "bill_id", billID, "user_id", userID)
	s.notifyShares(ctx, billID)
	return nil
}

// notifyShares tells each assigned member their payable share of a bill.
func (s *Service) notifyShares(ctx context.Context, billID string) {
	bill, err := s.store.GetBillWithItems(ctx, billID)
	if err != nil {
		slog.Warn("Skipping bill split notifications", "bill_id", billID, "error", err)
		return
	}
	rows, _, _ := calculator.Summarize(bill.Items, nil)
	calculator.ApplyChargeShares(rows, calculator.BillCharges(bill))

	eventName := s.eventName(ctx, bill.EventID)
	for _, row := range rows {
		amount := FormatAmount(row.PayableAmount, bill.Currency)
		s.notify(ctx, row.UserID, models.NotifyBillSplit,
			"Bill Split",
			fmt.Sprintf("Your share of %q is %s", eventName, amount),
			map[string]any{
				"bill_id":  bill.ID,
				"event_id": bill.EventID,
				"amount":   row.PayableAmount.StringFixed(calculator.MinorUnits),
				"currency": bill.Currency,
			})
	}
}

// CreatePaymentRequest records a pending payment from PayerID to
// RecipientID against a finalized bill and notifies the payer.
func (s *Service) CreatePaymentRequest(ctx context.Context, in PaymentRequestInput, requesterID string) (*models.Payment, error) {
	switch {
	case in.BillID == "":
		return nil, invalidInput("bill_id is required")
	case in.PayerID == "" || in.RecipientID == "":
		return nil, invalidInput("payer_id and recipient_id are required")
	case in.PayerID == in.RecipientID:
		return nil, invalidInput("payer and recipient must differ")
	case !in.Amount.IsPositive():
		return nil, invalidInput("amount must be positive")
	case !IsPaymentMethod(in.Method):
		return nil, invalidInput("unsupported payment method %q", in.Method)
	}

	bill, err := s.store.GetBill(ctx, in.BillID)
	if err != nil {
		return nil, storageError("load bill", err)
	}
	if err := authorizeMutate(ctx, s.store, bill, requesterID); err != nil {
		return nil, err
	}
	if !bill.IsFinalized() {
		return nil, fmt.Errorf("%w: bill %s must be finalized before requesting payment", ErrInvalidState, bill.ID)
	}

	payment := &models.Payment{
		BillID:      bill.ID,
		PayerID:     in.PayerID,
		RecipientID: in.RecipientID,
		Amount:      calculator.RoundMoney(in.Amount),
		Currency:    bill.Currency,
		Method:      in.Method,
		Status:      models.PaymentStatusPending,
		CreatedAt:   s.now(ctx),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, storageError("create payment", err)
	}
	s.metrics.Payment(string(models.PaymentStatusPending))
	slog.Info("Payment requested", "payment_id", payment.ID, "bill_id", bill.ID,
		"payer_id", payment.PayerID, "amount", payment.Amount.String())

	s.notify(ctx, payment.PayerID, models.NotifyPaymentRequest,
		"Payment Request",
		fmt.Sprintf("%s is requesting %s for %q",
			s.userName(ctx, requesterID), FormatAmount(payment.Amount, payment.Currency), s.eventName(ctx, bill.EventID)),
		map[string]any{
			"bill_id":      bill.ID,
			"payment_id":   payment.ID,
			"amount":       payment.Amount.StringFixed(calculator.MinorUnits),
			"currency":     payment.Currency,
			"method":       payment.Method,
			"requester_id": requesterID,
		})
	return payment, nil
}

// CompletePayment marks a payment completed. Only its payer may do so.
// Completing again overwrites the transaction id, proof and timestamp, but
// only the first completion is counted and notified.
func (s *Service) CompletePayment(ctx context.Context, paymentID, userID, transactionID, proofURL string) (*models.Payment, error) {
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, storageError("load payment", err)
	}
	if payment.PayerID != userID {
		return nil, fmt.Errorf("%w: only the payer can complete payment %s", ErrUnauthorized, paymentID)
	}

	wasCompleted := payment.IsCompleted()
	completedAt := s.now(ctx)
	if err := s.store.CompletePayment(ctx, paymentID, transactionID, proofURL, completedAt); err != nil {
		return nil, storageError("complete payment", err)
	}
	payment.Status = models.PaymentStatusCompleted
	payment.TransactionID = transactionID
	payment.ProofURL = proofURL
	payment.CompletedAt = completedAt

	if wasCompleted {
		slog.Info("Payment evidence updated", "payment_id", paymentID, "payer_id", userID)
		return payment, nil
	}

	s.metrics.Payment(string(models.PaymentStatusCompleted))
	slog.Info("Payment completed", "payment_id", paymentID, "payer_id", userID)

	s.notify(ctx, payment.RecipientID, models.NotifyPaymentReceived,
		"Payment Received",
		fmt.Sprintf("%s paid you %s", s.userName(ctx, userID), FormatAmount(payment.Amount, payment.Currency)),
		map[string]any{
			"bill_id":    payment.BillID,
			"payment_id": payment.ID,
			"amount":     payment.Amount.StringFixed(calculator.MinorUnits),
			"currency":   payment.Currency,
			"payer_id":   userID,
		})
	return payment, nil
}

// ListEventBills returns an event's bills, newest first. Callers without
// access to the event get an empty list rather than an error.
func (s *Service) ListEventBills(ctx context.Context, eventID, userID string) ([]*models.Bill, error) {
	a, err := resolveActor(ctx, s.store, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !a.canView() {
		return nil, nil
	}
	bills, err := s.store.ListBillsByEvent(ctx, eventID)
	if err != nil {
		return nil, storageError("list bills", err)
	}
	return bills, nil
}

// GetBillDetails returns a bill with its items and assignments.
func (s *Service) GetBillDetails(ctx context.Context, billID, userID string) (*models.Bill, error) {
	bill, err := s.store.GetBillWithItems(ctx, billID)
	if err != nil {
		return nil, storageError("load bill", err)
	}
	if err := authorizeView(ctx, s.store, bill, userID); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) userName(ctx context.Context, userID string) string {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil || user.Name == "" {
		return "A friend"
	}
	return user.Name
}

func (s *Service) eventName(ctx context.Context, eventID string) string {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Failed to load event name", "event_id", eventID, "error", err)
		}
		return "your dinner"
	}
	return event.Name
}
