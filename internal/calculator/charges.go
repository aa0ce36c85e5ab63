package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/models"
)

// ApplyChargeShares spreads bill-level charges (service charge, tax, tip)
// across summary rows in proportion to each member's item total:
//
//	person_payable = person_items × (1 + charges / assigned_items)
//
// Shares are cent-rounded with AllocateAmounts so they add up to charges
// exactly. Rows are updated in place.
func ApplyChargeShares(rows []models.UserTotal, charges decimal.Decimal) {
	assigned := decimal.Zero
	for _, r := range rows {
		assigned = assigned.Add(r.TotalAmount)
	}

	if assigned.IsZero() || charges.IsZero() {
		for i := range rows {
			rows[i].ChargesShare = decimal.Zero
			rows[i].PayableAmount = rows[i].TotalAmount
		}
		return
	}

	shares := make([]Share, len(rows))
	for i, r := range rows {
		shares[i] = Share{UserID: r.UserID, Portion: r.TotalAmount.Div(assigned)}
	}
	amounts := AllocateAmounts(charges, shares)
	for i := range rows {
		rows[i].ChargesShare = amounts[i]
		rows[i].PayableAmount = rows[i].TotalAmount.Add(amounts[i])
	}
}

// BillCharges is everything on a bill beyond its item subtotal.
func BillCharges(b *models.Bill) decimal.Decimal {
	return b.ServiceCharge.Add(b.TaxAmount).Add(b.TipAmount)
}
