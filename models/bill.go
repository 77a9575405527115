package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a receivable/payable record tied to a client. The optional payer is
// a branch of that client. When InstallmentsNumber > 1 the installment rows
// are authoritative for due date and partial totals and DueDate is a cached
// projection, recomputed after every installment change.
type Bill struct {
	ClientID        uint  `gorm:"index;not null"`
	PayerID         *uint `gorm:"index"` // branch responsible for settling
	OfficeID        *uint `gorm:"index"`
	CreatedByUserID uint  `gorm:"index;not null"`

	Title    string `gorm:"not null"`
	Category string `gorm:"index"`
	Method   string
	Origin   string
	Code     string
	Link     string

	Total    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Partial  decimal.Decimal `gorm:"type:decimal(14,2);default:0"` // amount received/paid so far
	Currency string          `gorm:"type:varchar(3);default:'BRL'"`

	DueDate               *time.Time
	InstallmentsNumber    int `gorm:"default:0"` // 0 = single payment
	InstallmentsFrequency int `gorm:"default:0"` // days between installments

	Paid        bool `gorm:"default:false"`
	PaidAt      *time.Time
	Late        bool `gorm:"default:false"`
	Reconciled  bool `gorm:"default:false"`
	PaymentInfo string
	Proof       string

	Installments []BillInstallment `gorm:"foreignKey:BillID"`

	gorm.Model
}

// BillInstallment is one scheduled partial payment of a bill. PartialID
// values are dense and contiguous, exactly {1..N} for the bill's current
// installment count, renumbered after any deletion.
type BillInstallment struct {
	BillID uint `gorm:"index;not null"`

	PartialID   int             `gorm:"not null"`
	Value       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DueDate     *time.Time
	Paid        bool `gorm:"default:false"`
	PaidAt      *time.Time
	PaymentInfo string

	gorm.Model
}

// HasSchedule reports whether installment rows are authoritative for the bill.
func (b *Bill) HasSchedule() bool {
	return b.InstallmentsNumber > 1
}

// IsLate reports whether the bill is overdue as of today: an unpaid
// installment past due, or the bill itself when it has no schedule.
func (b *Bill) IsLate(today time.Time, installments []BillInstallment) bool {
	if b.Paid {
		return false
	}
	if b.HasSchedule() {
		for _, inst := range installments {
			if !inst.Paid && inst.DueDate != nil && inst.DueDate.Before(today) {
				return true
			}
		}
		return false
	}
	return b.DueDate != nil && b.DueDate.Before(today)
}

// ScheduleDueDate computes the due date of one installment: the bill's due
// date staggered by frequency days per preceding installment. Nil propagates.
func ScheduleDueDate(base *time.Time, frequencyDays, partialID int) *time.Time {
	if base == nil {
		return nil
	}
	d := base.AddDate(0, 0, frequencyDays*(partialID-1))
	return &d
}

// AllPaid reports whether no unpaid installment remains.
func AllPaid(installments []BillInstallment) bool {
	for _, inst := range installments {
		if !inst.Paid {
			return false
		}
	}
	return true
}

// PaidPartial is the amount received/paid so far: the sum of paid installment
// values, or the full total for a paid single-payment bill.
func PaidPartial(b *Bill, installments []BillInstallment) decimal.Decimal {
	if !b.HasSchedule() {
		if b.Paid {
			return b.Total
		}
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, inst := range installments {
		if inst.Paid {
			sum = sum.Add(inst.Value)
		}
	}
	return sum
}

// RollupDueDate projects the bill's due date after a paid-state change: the
// earliest due date among unpaid installments, or the latest due date overall
// when none remain unpaid (fully paid).
func RollupDueDate(installments []BillInstallment) *time.Time {
	var earliest *time.Time
	for i := range installments {
		inst := &installments[i]
		if inst.Paid || inst.DueDate == nil {
			continue
		}
		if earliest == nil || inst.DueDate.Before(*earliest) {
			earliest = inst.DueDate
		}
	}
	if earliest != nil {
		return earliest
	}
	var latest *time.Time
	for i := range installments {
		d := installments[i].DueDate
		if d == nil {
			continue
		}
		if latest == nil || d.After(*latest) {
			latest = d
		}
	}
	return latest
}

// RollupDueDateAfterEdit projects the bill's due date after a value/date edit:
// prefer the earliest unpaid installment with a due date, then the latest
// unpaid installment's due date, then the latest installment's overall.
func RollupDueDateAfterEdit(installments []BillInstallment) *time.Time {
	var earliest *time.Time
	var latestUnpaid *BillInstallment
	for i := range installments {
		inst := &installments[i]
		if inst.Paid {
			continue
		}
		if latestUnpaid == nil || inst.PartialID > latestUnpaid.PartialID {
			latestUnpaid = inst
		}
		if inst.DueDate == nil {
			continue
		}
		if earliest == nil || inst.DueDate.Before(*earliest) {
			earliest = inst.DueDate
		}
	}
	if earliest != nil {
		return earliest
	}
	if latestUnpaid != nil {
		return latestUnpaid.DueDate
	}
	if last := lastByPartialID(installments); last != nil {
		return last.DueDate
	}
	return nil
}

// RenumberInstallments reassigns PartialID densely starting at 1, ordered by
// due date (nil dates last, previous order as tiebreak).
func RenumberInstallments(installments []BillInstallment) {
	sort.SliceStable(installments, func(i, j int) bool {
		di, dj := installments[i].DueDate, installments[j].DueDate
		switch {
		case di == nil && dj == nil:
			return installments[i].PartialID < installments[j].PartialID
		case di == nil:
			return false
		case dj == nil:
			return true
		case di.Equal(*dj):
			return installments[i].PartialID < installments[j].PartialID
		default:
			return di.Before(*dj)
		}
	})
	for i := range installments {
		installments[i].PartialID = i + 1
	}
}

// Settle marks the bill and every unpaid installment paid at one shared
// timestamp. The shared timestamp is what lets UndoSettlement tell this
// settlement's rows apart from installments paid individually before it.
func Settle(bill *Bill, installments []BillInstallment, ts time.Time) {
	for i := range installments {
		if installments[i].Paid {
			continue
		}
		installments[i].Paid = true
		installments[i].PaidAt = &ts
	}
	bill.Paid = true
	bill.PaidAt = &ts
	bill.Late = false
}

// UndoSettlement reverses the bill's last settlement: only installments whose
// PaidAt matches the bill's are reverted, installments paid on their own keep
// their state.
func UndoSettlement(bill *Bill, installments []BillInstallment) {
	if bill.PaidAt != nil {
		for i := range installments {
			if installments[i].PaidAt == nil || !installments[i].PaidAt.Equal(*bill.PaidAt) {
				continue
			}
			installments[i].Paid = false
			installments[i].PaidAt = nil
		}
	}
	bill.Paid = false
	bill.PaidAt = nil
}

// ApplyInstallmentRemoval folds the removal of one installment into the bill
// and renumbers the survivors densely. When exactly one installment remains
// the bill collapses to single-payment form. The counter never goes below
// zero, a leftover row on an already-collapsed bill deletes cleanly.
func ApplyInstallmentRemoval(bill *Bill, removed *BillInstallment, remaining []BillInstallment) {
	bill.Total = bill.Total.Sub(removed.Value)
	if bill.InstallmentsNumber > 0 {
		bill.InstallmentsNumber--
	}
	if removed.Paid {
		bill.Partial = bill.Partial.Sub(removed.Value)
	}
	bill.DueDate = RollupDueDate(remaining)
	if len(remaining) == 1 {
		bill.InstallmentsNumber = 0
	}
	RenumberInstallments(remaining)
}

func lastByPartialID(installments []BillInstallment) *BillInstallment {
	var last *BillInstallment
	for i := range installments {
		if last == nil || installments[i].PartialID > last.PartialID {
			last = &installments[i]
		}
	}
	return last
}
