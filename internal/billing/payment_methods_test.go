package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethods(t *testing.T) {
	en := PaymentMethods("en")
	zh := PaymentMethods("zh")
	assert.Len(t, en, 6)
	assert.Len(t, zh, 6)
	assert.Equal(t, PaymentMethod{Value: "fps", Label: "FPS (Fast Payment System)"}, en[1])
	assert.Equal(t, PaymentMethod{Value: "fps", Label: "轉數快"}, zh[1])
	assert.Equal(t, en, PaymentMethods("fr"))

	assert.True(t, IsPaymentMethod("wechat_pay_hk"))
	assert.False(t, IsPaymentMethod("venmo"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"90", "HKD", "HK$90.00"},
		{"12.5", "usd", "$12.50"},
		{"88.888", "CNY", "¥88.89"},
		{"7", "JPY", "JPY7.00"},
		{"1", "", "HK$1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(d(tt.amount), tt.currency))
		})
	}
}
