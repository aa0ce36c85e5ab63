package auth

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("phone number must be a Hong Kong or international number")

// NormalizePhone turns user input into E.164 form. Local numbers without a
// country code are taken to be Hong Kong (+852) numbers.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}
	digits := b.String()
	if !strings.HasPrefix(digits, "852") && len(digits) == 8 {
		digits = "852" + digits
	}
	if len(digits) < 10 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}
	return "+" + digits, nil
}
