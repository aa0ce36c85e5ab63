package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/models"
)

// Summarize folds item assignments and payments into per-member totals.
//
// Rows are created only for members holding at least one assignment, in
// the order they are first seen. Completed payments are credited to their
// payer's row; payments from members without a row are ignored. Pending
// payments never count.
func Summarize(items []models.BillItem, payments []models.Payment) ([]models.UserTotal, decimal.Decimal, decimal.Decimal) {
	index := make(map[string]int)
	var rows []models.UserTotal

	for _, item := range items {
		for _, a := range item.Assignments {
			i, ok := index[a.UserID]
			if !ok {
				i = len(rows)
				index[a.UserID] = i
				rows = append(rows, models.UserTotal{
					UserID:      a.UserID,
					UserName:    a.UserName,
					UserPhone:   a.UserPhone,
					TotalAmount: decimal.Zero,
					PaidAmount:  decimal.Zero,
				})
			}
			rows[i].TotalAmount = rows[i].TotalAmount.Add(a.Amount)
		}
	}

	for _, p := range payments {
		if !p.IsCompleted() {
			continue
		}
		if i, ok := index[p.PayerID]; ok {
			rows[i].PaidAmount = rows[i].PaidAmount.Add(p.Amount)
		}
	}

	totalPaid := decimal.Zero
	totalPending := decimal.Zero
	for i := range rows {
		row := &rows[i]
		row.PendingAmount = decimal.Max(decimal.Zero, row.TotalAmount.Sub(row.PaidAmount))
		row.Status = SettlementStatusOf(row.TotalAmount, row.PaidAmount)
		totalPaid = totalPaid.Add(row.PaidAmount)
		totalPending = totalPending.Add(row.PendingAmount)
	}
	return rows, totalPaid, totalPending
}

// SettlementStatusOf tags a member as paid once they have covered their
// total, partial once they have paid anything, pending otherwise.
func SettlementStatusOf(total, paid decimal.Decimal) models.SettlementStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return models.SettlementPaid
	case paid.IsPositive():
		return models.SettlementPartial
	default:
		return models.SettlementPending
	}
}
