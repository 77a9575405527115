package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies accepted on the money boundary. Symbols are stripped during
// unmasking together with the currency code itself.
var currencySymbols = map[string][]string{
	"BRL": {"R$"},
	"USD": {"$"},
	"EUR": {"€"},
}

// UnmaskMoney parses a user-typed money string into an exact decimal amount.
//
// Accepts common formatted inputs like:
//   - "1.200,00" is NOT supported; the frontend always submits dot decimals
//   - "R$ 1,200.00"
//   - "USD -400"
//   - "  $1,234.50  "
//
// Keeps digits, '.', and a leading '-' only. Everything money-related goes
// through decimal.Decimal; no float arithmetic.
func UnmaskMoney(raw string, currency string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	s = strings.ReplaceAll(s, ",", "")
	for _, symbol := range currencySymbols[strings.ToUpper(currency)] {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(s, strings.ToUpper(currency), "")
	s = strings.ReplaceAll(s, strings.ToLower(currency), "")
	s = strings.TrimSpace(s)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}

	// Strip everything except digits and '.'.
	var b strings.Builder
	b.Grow(len(s) + 1)
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if neg {
		clean = "-" + clean
	}

	val, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return val, nil
}

// FormatMoney renders an amount with its currency tag for responses and logs.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}
