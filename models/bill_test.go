package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func money(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestScheduleDueDate(t *testing.T) {
	base := datePtr(2026, time.January, 10)

	tests := []struct {
		name      string
		base      *time.Time
		frequency int
		partialID int
		want      *time.Time
	}{
		{"first installment on base date", base, 30, 1, datePtr(2026, time.January, 10)},
		{"second staggered by frequency", base, 30, 2, datePtr(2026, time.February, 9)},
		{"third staggered twice", base, 30, 3, datePtr(2026, time.March, 11)},
		{"weekly frequency", base, 7, 4, datePtr(2026, time.January, 31)},
		{"nil base propagates", nil, 30, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScheduleDueDate(tt.base, tt.frequency, tt.partialID)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ScheduleDueDate() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ScheduleDueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasSchedule(t *testing.T) {
	tests := []struct {
		count int
		want  bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{12, true},
	}
	for _, tt := range tests {
		b := Bill{InstallmentsNumber: tt.count}
		if got := b.HasSchedule(); got != tt.want {
			t.Errorf("HasSchedule() with %d installments = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestIsLate(t *testing.T) {
	today := date(2026, time.June, 15)

	tests := []struct {
		name         string
		bill         Bill
		installments []BillInstallment
		want         bool
	}{
		{
			name: "single bill past due",
			bill: Bill{DueDate: datePtr(2026, time.June, 1)},
			want: true,
		},
		{
			name: "single bill due today is not late",
			bill: Bill{DueDate: datePtr(2026, time.June, 15)},
			want: false,
		},
		{
			name: "single bill with future due date",
			bill: Bill{DueDate: datePtr(2026, time.July, 1)},
			want: false,
		},
		{
			name: "single bill without due date",
			bill: Bill{},
			want: false,
		},
		{
			name: "paid bill is never late",
			bill: Bill{Paid: true, DueDate: datePtr(2026, time.January, 1)},
			want: false,
		},
		{
			name: "scheduled bill with overdue unpaid installment",
			bill: Bill{InstallmentsNumber: 3},
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.May, 1)},
				{PartialID: 2, DueDate: datePtr(2026, time.June, 1)},
				{PartialID: 3, DueDate: datePtr(2026, time.July, 1)},
			},
			want: true,
		},
		{
			name: "scheduled bill with overdue but paid installment",
			bill: Bill{InstallmentsNumber: 2},
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.May, 1)},
				{PartialID: 2, DueDate: datePtr(2026, time.July, 1)},
			},
			want: false,
		},
		{
			name: "scheduled bill ignores its own overdue cached date",
			bill: Bill{InstallmentsNumber: 2, DueDate: datePtr(2026, time.January, 1)},
			installments: []BillInstallment{
				{PartialID: 1, DueDate: datePtr(2026, time.July, 1)},
				{PartialID: 2, DueDate: datePtr(2026, time.August, 1)},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bill.IsLate(today, tt.installments); got != tt.want {
				t.Errorf("IsLate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllPaid(t *testing.T) {
	if !AllPaid(nil) {
		t.Error("AllPaid(nil) = false, want true")
	}
	if !AllPaid([]BillInstallment{{Paid: true}, {Paid: true}}) {
		t.Error("AllPaid with every row paid = false, want true")
	}
	if AllPaid([]BillInstallment{{Paid: true}, {Paid: false}}) {
		t.Error("AllPaid with an unpaid row = true, want false")
	}
}

func TestPaidPartial(t *testing.T) {
	tests := []struct {
		name         string
		bill         Bill
		installments []BillInstallment
		want         decimal.Decimal
	}{
		{
			name: "unpaid single bill",
			bill: Bill{Total: money("1200")},
			want: decimal.Zero,
		},
		{
			name: "paid single bill counts full total",
			bill: Bill{Total: money("1200"), Paid: true},
			want: money("1200"),
		},
		{
			name: "schedule sums paid installments only",
			bill: Bill{Total: money("1200"), InstallmentsNumber: 3},
			installments: []BillInstallment{
				{PartialID: 1, Value: money("400"), Paid: true},
				{PartialID: 2, Value: money("400"), Paid: true},
				{PartialID: 3, Value: money("400")},
			},
			want: money("800"),
		},
		{
			name: "schedule with uneven values",
			bill: Bill{Total: money("1000.50"), InstallmentsNumber: 2},
			installments: []BillInstallment{
				{PartialID: 1, Value: money("600.25"), Paid: true},
				{PartialID: 2, Value: money("400.25")},
			},
			want: money("600.25"),
		},
		{
			name: "schedule with nothing paid",
			bill: Bill{Total: money("900"), InstallmentsNumber: 3},
			installments: []BillInstallment{
				{PartialID: 1, Value: money("300")},
				{PartialID: 2, Value: money("300")},
				{PartialID: 3, Value: money("300")},
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaidPartial(&tt.bill, tt.installments)
			if !got.Equal(tt.want) {
				t.Errorf("PaidPartial() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRollupDueDate(t *testing.T) {
	tests := []struct {
		name         string
		installments []BillInstallment
		want         *time.Time
	}{
		{
			name: "earliest unpaid due date wins",
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.January, 10)},
				{PartialID: 2, DueDate: datePtr(2026, time.February, 9)},
				{PartialID: 3, DueDate: datePtr(2026, time.March, 11)},
			},
			want: datePtr(2026, time.February, 9),
		},
		{
			name: "fully paid falls back to the latest due date",
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.January, 10)},
				{PartialID: 2, Paid: true, DueDate: datePtr(2026, time.February, 9)},
				{PartialID: 3, Paid: true, DueDate: datePtr(2026, time.March, 11)},
			},
			want: datePtr(2026, time.March, 11),
		},
		{
			name: "unpaid rows without dates are skipped",
			installments: []BillInstallment{
				{PartialID: 1},
				{PartialID: 2, DueDate: datePtr(2026, time.May, 1)},
			},
			want: datePtr(2026, time.May, 1),
		},
		{
			name: "fully paid uses latest date even when edited out of order",
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.January, 10)},
				{PartialID: 2, Paid: true, DueDate: datePtr(2026, time.April, 20)},
				{PartialID: 3, Paid: true, DueDate: datePtr(2026, time.March, 11)},
			},
			want: datePtr(2026, time.April, 20),
		},
		{
			name: "empty schedule has no date",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollupDueDate(tt.installments)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("RollupDueDate() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("RollupDueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRollupDueDateAfterEdit(t *testing.T) {
	tests := []struct {
		name         string
		installments []BillInstallment
		want         *time.Time
	}{
		{
			name: "earliest dated unpaid installment wins",
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.January, 1)},
				{PartialID: 2, DueDate: datePtr(2026, time.March, 1)},
				{PartialID: 3, DueDate: datePtr(2026, time.February, 1)},
			},
			want: datePtr(2026, time.February, 1),
		},
		{
			name: "all paid falls back to last installment overall",
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.January, 1)},
				{PartialID: 2, Paid: true, DueDate: datePtr(2026, time.February, 1)},
			},
			want: datePtr(2026, time.February, 1),
		},
		{
			name: "unpaid without dates yields no date",
			installments: []BillInstallment{
				{PartialID: 1, Paid: true, DueDate: datePtr(2026, time.January, 1)},
				{PartialID: 2},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollupDueDateAfterEdit(tt.installments)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("RollupDueDateAfterEdit() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("RollupDueDateAfterEdit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenumberInstallments(t *testing.T) {
	installments := []BillInstallment{
		{PartialID: 1, DueDate: datePtr(2026, time.March, 1)},
		{PartialID: 2, DueDate: datePtr(2026, time.January, 1)},
		{PartialID: 3},
		{PartialID: 4, DueDate: datePtr(2026, time.February, 1)},
	}

	RenumberInstallments(installments)

	wantDates := []*time.Time{
		datePtr(2026, time.January, 1),
		datePtr(2026, time.February, 1),
		datePtr(2026, time.March, 1),
		nil,
	}
	for i, inst := range installments {
		if inst.PartialID != i+1 {
			t.Errorf("installment %d: PartialID = %d, want %d", i, inst.PartialID, i+1)
		}
		want := wantDates[i]
		if (inst.DueDate == nil) != (want == nil) {
			t.Fatalf("installment %d: DueDate = %v, want %v", i, inst.DueDate, want)
		}
		if inst.DueDate != nil && !inst.DueDate.Equal(*want) {
			t.Errorf("installment %d: DueDate = %v, want %v", i, inst.DueDate, want)
		}
	}
}

func TestSettleThenUndoKeepsIndividuallyPaidRows(t *testing.T) {
	earlier := date(2026, time.May, 1)
	bill := &Bill{Total: money("1200"), InstallmentsNumber: 3}
	installments := []BillInstallment{
		{PartialID: 1, Value: money("400"), Paid: true, PaidAt: &earlier, DueDate: datePtr(2026, time.May, 1)},
		{PartialID: 2, Value: money("400"), DueDate: datePtr(2026, time.June, 1)},
		{PartialID: 3, Value: money("400"), DueDate: datePtr(2026, time.July, 1)},
	}
	dueBefore := RollupDueDate(installments)

	ts := date(2026, time.June, 10)
	Settle(bill, installments, ts)

	if !bill.Paid || bill.PaidAt == nil || !bill.PaidAt.Equal(ts) {
		t.Fatalf("settle: bill Paid=%v PaidAt=%v, want paid at %v", bill.Paid, bill.PaidAt, ts)
	}
	if !AllPaid(installments) {
		t.Fatal("settle: every installment should be paid")
	}
	if !installments[0].PaidAt.Equal(earlier) {
		t.Errorf("settle: pre-paid installment PaidAt changed to %v", installments[0].PaidAt)
	}

	UndoSettlement(bill, installments)

	if bill.Paid || bill.PaidAt != nil {
		t.Errorf("undo: bill Paid=%v PaidAt=%v, want unpaid", bill.Paid, bill.PaidAt)
	}
	if !installments[0].Paid || installments[0].PaidAt == nil || !installments[0].PaidAt.Equal(earlier) {
		t.Errorf("undo: individually paid installment reverted: %+v", installments[0])
	}
	if installments[1].Paid || installments[2].Paid {
		t.Error("undo: settlement installments should be unpaid again")
	}
	if installments[1].PaidAt != nil || installments[2].PaidAt != nil {
		t.Error("undo: settlement installments should have no PaidAt")
	}

	dueAfter := RollupDueDate(installments)
	if dueAfter == nil || !dueAfter.Equal(*dueBefore) {
		t.Errorf("undo: rollup due date = %v, want %v restored", dueAfter, dueBefore)
	}
}

func TestApplyInstallmentRemovalCollapsesToSinglePayment(t *testing.T) {
	paidAt := date(2026, time.February, 1)
	bill := &Bill{
		Total:              money("1200"),
		Partial:            money("400"),
		InstallmentsNumber: 3,
	}
	first := BillInstallment{PartialID: 1, Value: money("400"), Paid: true, PaidAt: &paidAt, DueDate: datePtr(2026, time.January, 1)}
	second := BillInstallment{PartialID: 2, Value: money("400"), DueDate: datePtr(2026, time.February, 1)}
	third := BillInstallment{PartialID: 3, Value: money("400"), DueDate: datePtr(2026, time.March, 1)}

	remaining := []BillInstallment{second, third}
	ApplyInstallmentRemoval(bill, &first, remaining)

	if !bill.Total.Equal(money("800")) {
		t.Errorf("after first removal: Total = %s, want 800", bill.Total)
	}
	if !bill.Partial.Equal(money("0")) {
		t.Errorf("after removing paid installment: Partial = %s, want 0", bill.Partial)
	}
	if bill.InstallmentsNumber != 2 {
		t.Errorf("after first removal: InstallmentsNumber = %d, want 2", bill.InstallmentsNumber)
	}
	if remaining[0].PartialID != 1 || remaining[1].PartialID != 2 {
		t.Errorf("survivors not renumbered densely: %d, %d", remaining[0].PartialID, remaining[1].PartialID)
	}

	remaining = []BillInstallment{remaining[1]}
	ApplyInstallmentRemoval(bill, &second, remaining)

	if bill.InstallmentsNumber != 0 {
		t.Errorf("one installment left: InstallmentsNumber = %d, want 0 (single-payment mode)", bill.InstallmentsNumber)
	}
	if bill.HasSchedule() {
		t.Error("one installment left: bill should no longer have a schedule")
	}
	if !bill.Total.Equal(money("400")) {
		t.Errorf("after second removal: Total = %s, want 400", bill.Total)
	}
	if bill.DueDate == nil || !bill.DueDate.Equal(date(2026, time.March, 1)) {
		t.Errorf("DueDate = %v, want remaining installment's date", bill.DueDate)
	}
}

func TestApplyInstallmentRemovalCounterNeverNegative(t *testing.T) {
	bill := &Bill{Total: money("400"), InstallmentsNumber: 0}
	leftover := BillInstallment{PartialID: 1, Value: money("400")}

	ApplyInstallmentRemoval(bill, &leftover, nil)

	if bill.InstallmentsNumber != 0 {
		t.Errorf("InstallmentsNumber = %d, want 0", bill.InstallmentsNumber)
	}
	if !bill.Total.Equal(money("0")) {
		t.Errorf("Total = %s, want 0", bill.Total)
	}
}

func TestRenumberInstallmentsEqualDatesKeepOrder(t *testing.T) {
	shared := datePtr(2026, time.April, 1)
	installments := []BillInstallment{
		{PartialID: 2, DueDate: shared, Value: money("100")},
		{PartialID: 1, DueDate: shared, Value: money("200")},
	}

	RenumberInstallments(installments)

	if !installments[0].Value.Equal(money("200")) {
		t.Errorf("equal due dates should fall back to PartialID order, got %s first", installments[0].Value)
	}
	if installments[0].PartialID != 1 || installments[1].PartialID != 2 {
		t.Errorf("PartialIDs not dense after renumber: %d, %d", installments[0].PartialID, installments[1].PartialID)
	}
}
