// Package calculator holds the pure arithmetic behind bill settlement:
// service charge and tax totals, splitting item costs into member shares,
// and folding assignments and payments into per-member balances.
//
// Nothing here touches storage. All money is decimal.Decimal.
package calculator

import "github.com/shopspring/decimal"

// MinorUnits is the number of decimal places money is rounded to.
const MinorUnits = 2

var (
	// DefaultServiceChargeRate is the customary Hong Kong restaurant service charge.
	DefaultServiceChargeRate = decimal.RequireFromString("0.10")

	// DefaultTaxRate is zero: Hong Kong restaurants charge no VAT.
	DefaultTaxRate = decimal.Zero

	cent = decimal.New(1, -MinorUnits)
)

// Totals is the result of CalculateTotals.
type Totals struct {
	Subtotal      decimal.Decimal
	ServiceCharge decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
}

// RoundMoney rounds an amount to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnits)
}

// CalculateTotals derives service charge and tax from a subtotal.
// Service charge and tax are rounded to cents before being summed;
// TotalAmount is the exact sum of the three components.
// Tips are not included; see PayableTotal.
func CalculateTotals(subtotal, serviceChargeRate, taxRate decimal.Decimal) Totals {
	serviceCharge := RoundMoney(subtotal.Mul(serviceChargeRate))
	tax := RoundMoney(subtotal.Mul(taxRate))
	return Totals{
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		TaxAmount:     tax,
		TotalAmount:   subtotal.Add(serviceCharge).Add(tax),
	}
}

// PayableTotal adds a tip on top of calculated totals.
func PayableTotal(t Totals, tip decimal.Decimal) decimal.Decimal {
	return t.TotalAmount.Add(tip)
}
