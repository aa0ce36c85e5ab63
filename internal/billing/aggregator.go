package billing

import (
	"context"

	"github.com/dinelink/dinelink/internal/calculator"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

// GetBillSummary projects a bill's assignments and payments into per-member
// balances. It is computed fresh on every call and never stored.
//
// Only members holding at least one assignment get a row. Completed
// payments from anyone else are not counted anywhere in the summary.
// The bill and its payments are read from one snapshot.
func (s *Service) GetBillSummary(ctx context.Context, billID, userID string) (*models.BillSummary, error) {
	var (
		bill     *models.Bill
		payments []models.Payment
	)
	err := s.inTx(ctx, "load bill summary", func(q storage.Queries) error {
		b, err := q.GetBillWithItems(ctx, billID)
		if err != nil {
			return storageError("load bill", err)
		}
		if err := authorizeView(ctx, q, b, userID); err != nil {
			return err
		}
		p, err := q.ListPaymentsByBill(ctx, billID)
		if err != nil {
			return storageError("list payments", err)
		}
		bill, payments = b, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows, totalPaid, totalPending := calculator.Summarize(bill.Items, payments)
	calculator.ApplyChargeShares(rows, calculator.BillCharges(bill))

	return &models.BillSummary{
		Bill:         bill,
		UserTotals:   rows,
		TotalPaid:    totalPaid,
		TotalPending: totalPending,
	}, nil
}
