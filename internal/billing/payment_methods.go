package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/calculator"
)

// PaymentMethod is a way of settling up that Hong Kong diners commonly use.
type PaymentMethod struct {
	Value string
	Label string
}

var paymentMethods = []struct {
	value  string
	labels map[string]string
}{
	{"bank_transfer", map[string]string{"en": "Bank Transfer", "zh": "銀行轉帳"}},
	{"fps", map[string]string{"en": "FPS (Fast Payment System)", "zh": "轉數快"}},
	{"payme", map[string]string{"en": "PayMe", "zh": "PayMe"}},
	{"alipay_hk", map[string]string{"en": "AlipayHK", "zh": "支付寶香港"}},
	{"wechat_pay_hk", map[string]string{"en": "WeChat Pay HK", "zh": "微信支付香港"}},
	{"cash", map[string]string{"en": "Cash", "zh": "現金"}},
}

// PaymentMethods lists the supported methods labelled in lang ("en" or
// "zh"). Any other language falls back to English.
func PaymentMethods(lang string) []PaymentMethod {
	lang = strings.ToLower(lang)
	if lang != "zh" {
		lang = "en"
	}
	out := make([]PaymentMethod, len(paymentMethods))
	for i, m := range paymentMethods {
		out[i] = PaymentMethod{Value: m.value, Label: m.labels[lang]}
	}
	return out
}

// IsPaymentMethod reports whether method is one of PaymentMethods.
func IsPaymentMethod(method string) bool {
	for _, m := range paymentMethods {
		if m.value == method {
			return true
		}
	}
	return false
}

var currencySymbols = map[string]string{
	"HKD": "HK$",
	"USD": "$",
	"CNY": "¥",
}

// FormatAmount renders amount with two decimals behind the currency symbol,
// e.g. "HK$90.00". Unknown currencies use their code as the prefix.
func FormatAmount(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	if code == "" {
		code = "HKD"
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}
	return symbol + calculator.RoundMoney(amount).StringFixed(calculator.MinorUnits)
}
