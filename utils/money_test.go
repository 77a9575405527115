package utils

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestUnmaskMoney(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		currency string
		want     string
		wantErr  bool
	}{
		{"plain number", "1200", "BRL", "1200", false},
		{"decimal point", "1200.50", "BRL", "1200.5", false},
		{"thousands separators", "1,200.00", "BRL", "1200", false},
		{"brl symbol", "R$ 1,200.00", "BRL", "1200", false},
		{"usd symbol", "$1,234.50", "USD", "1234.5", false},
		{"currency code", "USD 400", "USD", "400", false},
		{"lowercase code", "usd 400", "USD", "400", false},
		{"negative amount", "-400", "BRL", "-400", false},
		{"negative with symbol", "R$ -1,000.25", "BRL", "-1000.25", false},
		{"surrounding whitespace", "  250.75  ", "BRL", "250.75", false},
		{"empty string", "", "BRL", "", true},
		{"only whitespace", "   ", "BRL", "", true},
		{"no digits at all", "abc", "BRL", "", true},
		{"multiple dots", "1.2.3", "BRL", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmaskMoney(tt.raw, tt.currency)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("UnmaskMoney(%q) error = nil, want error", tt.raw)
				}
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("UnmaskMoney(%q) error = %v, want ErrInvalidAmount", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmaskMoney(%q) error = %v", tt.raw, err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("UnmaskMoney(%q) = %s, want %s", tt.raw, got, want)
			}
		})
	}
}

func TestUnmaskMoneyIsExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3; the whole point of the decimal type.
	a, err := UnmaskMoney("0.1", "BRL")
	if err != nil {
		t.Fatal(err)
	}
	b, err := UnmaskMoney("0.2", "BRL")
	if err != nil {
		t.Fatal(err)
	}
	if sum := a.Add(b); !sum.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1200", "BRL", "BRL 1200.00"},
		{"1200.5", "USD", "USD 1200.50"},
		{"-400.25", "EUR", "EUR -400.25"},
	}
	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
		if got != tt.want {
			t.Errorf("FormatMoney(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
