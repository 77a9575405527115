package filters

import (
	"errors"
	"testing"

	"opsdesk-backend/utils"
)

func TestBillFilterRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		filter BillFilter
	}{
		{"empty filter", BillFilter{}},
		{"office only", BillFilter{Office: "3"}},
		{"date range", BillFilter{From: "2026-01-01", To: "2026-06-30"}},
		{"single trailing flag", BillFilter{HasInstallments: true}},
		{"leading flag only", BillFilter{HideLate: true}},
		{"middle fields only", BillFilter{Method: "pix", Category: "Consulting"}},
		{
			"everything set",
			BillFilter{
				Office:          "1",
				Payer:           "7",
				Method:          "transfer",
				Category:        "income",
				Origin:          "contract",
				HasCode:         true,
				From:            "2026-01-01",
				To:              "2026-12-31",
				MinValue:        "100",
				MaxValue:        "5000",
				HideLate:        true,
				HidePaid:        true,
				HidePending:     true,
				HasInstallments: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.filter.Encode()
			decoded, err := DecodeBillFilter(encoded)
			if err != nil {
				t.Fatalf("DecodeBillFilter(%q) error = %v", encoded, err)
			}
			if decoded != tt.filter {
				t.Errorf("round trip changed filter:\n  in:  %+v\n  out: %+v\n  via: %q",
					tt.filter, decoded, encoded)
			}
		})
	}
}

func TestBillFilterEncodeEmpty(t *testing.T) {
	if got := (BillFilter{}).Encode(); got != "" {
		t.Errorf("empty filter Encode() = %q, want empty string", got)
	}
}

func TestBillFilterEncodeOmitsPlaceholders(t *testing.T) {
	got := BillFilter{Method: "pix", HasInstallments: true}.Encode()
	want := "method=pix&installments=true"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestDecodeBillFilterFlags(t *testing.T) {
	f, err := DecodeBillFilter("late=false&paid=false&pending=false&code=true")
	if err != nil {
		t.Fatal(err)
	}
	if !f.HideLate || !f.HidePaid || !f.HidePending || !f.HasCode {
		t.Errorf("flags not decoded: %+v", f)
	}

	// "late=true" is not a hide request.
	f, err = DecodeBillFilter("late=true")
	if err != nil {
		t.Fatal(err)
	}
	if f.HideLate {
		t.Error("late=true decoded as a hide flag")
	}
}

func TestDecodeBillFilterBadDate(t *testing.T) {
	_, err := DecodeBillFilter("from=15-06-2026")
	if err == nil {
		t.Fatal("DecodeBillFilter with malformed date: error = nil, want error")
	}
	if !errors.Is(err, utils.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
}

func TestDecodeBillFilterNoFilters(t *testing.T) {
	for _, raw := range []string{"", "%"} {
		f, err := DecodeBillFilter(raw)
		if err != nil {
			t.Fatalf("DecodeBillFilter(%q) error = %v", raw, err)
		}
		if !f.IsZero() {
			t.Errorf("DecodeBillFilter(%q) = %+v, want zero filter", raw, f)
		}
	}
}
