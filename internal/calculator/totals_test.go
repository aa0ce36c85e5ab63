package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name        string
		subtotal    string
		serviceRate decimal.Decimal
		taxRate     decimal.Decimal
		wantService string
		wantTax     string
		wantTotal   string
	}{
		{
			name:        "round subtotal with default rates",
			subtotal:    "1000",
			serviceRate: DefaultServiceChargeRate,
			taxRate:     DefaultTaxRate,
			wantService: "100",
			wantTax:     "0",
			wantTotal:   "1100",
		},
		{
			name:        "service charge rounded to cents before summing",
			subtotal:    "133.33",
			serviceRate: DefaultServiceChargeRate,
			taxRate:     DefaultTaxRate,
			wantService: "13.33",
			wantTax:     "0",
			wantTotal:   "146.66",
		},
		{
			name:        "half cent rounds away from zero",
			subtotal:    "0.05",
			serviceRate: d("0.10"),
			taxRate:     d("0.10"),
			wantService: "0.01",
			wantTax:     "0.01",
			wantTotal:   "0.07",
		},
		{
			name:        "tax and service charge together",
			subtotal:    "360",
			serviceRate: d("0.10"),
			taxRate:     d("0.05"),
			wantService: "36",
			wantTax:     "18",
			wantTotal:   "414",
		},
		{
			name:        "zero subtotal",
			subtotal:    "0",
			serviceRate: DefaultServiceChargeRate,
			taxRate:     DefaultTaxRate,
			wantService: "0",
			wantTax:     "0",
			wantTotal:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(d(tt.subtotal), tt.serviceRate, tt.taxRate)
			if !got.Subtotal.Equal(d(tt.subtotal)) {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, tt.subtotal)
			}
			if !got.ServiceCharge.Equal(d(tt.wantService)) {
				t.Errorf("ServiceCharge = %s, want %s", got.ServiceCharge, tt.wantService)
			}
			if !got.TaxAmount.Equal(d(tt.wantTax)) {
				t.Errorf("TaxAmount = %s, want %s", got.TaxAmount, tt.wantTax)
			}
			if !got.TotalAmount.Equal(d(tt.wantTotal)) {
				t.Errorf("TotalAmount = %s, want %s", got.TotalAmount, tt.wantTotal)
			}
		})
	}
}

func TestPayableTotal(t *testing.T) {
	// 360 subtotal, 10% service charge, 40 tip
	totals := CalculateTotals(d("360"), DefaultServiceChargeRate, DefaultTaxRate)
	if !totals.TotalAmount.Equal(d("396")) {
		t.Fatalf("TotalAmount = %s, want 396", totals.TotalAmount)
	}
	if got := PayableTotal(totals, d("40")); !got.Equal(d("436")) {
		t.Errorf("PayableTotal = %s, want 436", got)
	}
}
