// services/ledger_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService owns the installment rows of a bill. All operations run
// inside the transaction passed by the caller; the bill row is updated in
// place so its cached due-date/paid projections stay consistent with the
// schedule.
type LedgerService struct{}

// CreateSchedule replaces any existing installments with a fresh schedule of
// count rows. Due dates are staggered by frequencyDays from the bill's due
// date; a nil bill due date leaves every installment undated.
func (s *LedgerService) CreateSchedule(tx *gorm.DB, bill *models.Bill, count int, perValue decimal.Decimal, frequencyDays int) error {
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillInstallment{}).Error; err != nil {
		return err
	}

	for i := 1; i <= count; i++ {
		installment := models.BillInstallment{
			BillID:    bill.ID,
			PartialID: i,
			Value:     perValue,
			DueDate:   models.ScheduleDueDate(bill.DueDate, frequencyDays, i),
		}
		if err := tx.Create(&installment).Error; err != nil {
			return err
		}
	}

	bill.InstallmentsNumber = count
	bill.InstallmentsFrequency = frequencyDays
	bill.Partial = decimal.Zero
	return tx.Save(bill).Error
}

// CollapseToSingle drops the whole schedule; the bill's own due-date/paid
// fields become authoritative again.
func (s *LedgerService) CollapseToSingle(tx *gorm.DB, bill *models.Bill) error {
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillInstallment{}).Error; err != nil {
		return err
	}
	bill.InstallmentsNumber = 0
	bill.InstallmentsFrequency = 0
	return tx.Save(bill).Error
}

// Reprice sets a new per-installment value on every row, leaving due dates
// and paid state alone.
func (s *LedgerService) Reprice(tx *gorm.DB, bill *models.Bill, newValue decimal.Decimal) error {
	return tx.Model(&models.BillInstallment{}).
		Where("bill_id = ?", bill.ID).
		Update("value", newValue).Error
}

// Reschedule recomputes every installment's due date with the new frequency.
// Already-paid installments are re-dated too; paid state and PaidAt survive.
func (s *LedgerService) Reschedule(tx *gorm.DB, bill *models.Bill, newFrequency int) error {
	if bill.DueDate == nil {
		return nil
	}
	installments, err := s.loadInstallments(tx, bill.ID)
	if err != nil {
		return err
	}
	for i := range installments {
		installments[i].DueDate = models.ScheduleDueDate(bill.DueDate, newFrequency, installments[i].PartialID)
		if err := tx.Save(&installments[i]).Error; err != nil {
			return err
		}
	}
	bill.InstallmentsFrequency = newFrequency
	return tx.Save(bill).Error
}

// ToggleInstallment flips one installment's paid flag and recomputes the
// bill rollup: due date becomes the earliest unpaid due date (or the last
// installment's when fully paid) and the bill is paid only when no unpaid
// installment remains.
func (s *LedgerService) ToggleInstallment(tx *gorm.DB, installment *models.BillInstallment, paid bool, paidAt *time.Time, paymentInfo string) error {
	installment.Paid = paid
	if paid {
		if paidAt == nil {
			now := time.Now()
			paidAt = &now
		}
		installment.PaidAt = paidAt
	} else {
		installment.PaidAt = nil
	}
	if paymentInfo != "" {
		installment.PaymentInfo = paymentInfo
	}
	if err := tx.Save(installment).Error; err != nil {
		return err
	}

	bill, installments, err := s.loadBillWithInstallments(tx, installment.BillID)
	if err != nil {
		return err
	}

	bill.DueDate = models.RollupDueDate(installments)
	wasPaid := bill.Paid
	bill.Paid = models.AllPaid(installments)
	if bill.Paid && !wasPaid {
		bill.PaidAt = paidAt
	} else if !bill.Paid {
		bill.PaidAt = nil
	}
	bill.Partial = models.PaidPartial(bill, installments)
	bill.Late = bill.IsLate(utils.BeginningOfDay(time.Now()), installments)
	return tx.Save(bill).Error
}

// EditInstallmentValue adjusts the bill total by the value delta, updates the
// installment's due date and reprojects the bill due date.
func (s *LedgerService) EditInstallmentValue(tx *gorm.DB, installment *models.BillInstallment, newValue decimal.Decimal, newDueDate *time.Time, paymentInfo string) error {
	delta := newValue.Sub(installment.Value)

	installment.Value = newValue
	if newDueDate != nil {
		installment.DueDate = newDueDate
	}
	if paymentInfo != "" {
		installment.PaymentInfo = paymentInfo
	}
	if err := tx.Save(installment).Error; err != nil {
		return err
	}

	bill, installments, err := s.loadBillWithInstallments(tx, installment.BillID)
	if err != nil {
		return err
	}

	bill.Total = bill.Total.Add(delta)
	bill.DueDate = models.RollupDueDateAfterEdit(installments)
	bill.Partial = models.PaidPartial(bill, installments)
	return tx.Save(bill).Error
}

// DeleteInstallment removes one installment, shrinking the bill total and
// count, renumbering the survivors densely by due date. When exactly one
// installment remains the bill collapses to single-payment semantics with the
// row left in place.
func (s *LedgerService) DeleteInstallment(tx *gorm.DB, installment *models.BillInstallment) error {
	bill, _, err := s.loadBillWithInstallments(tx, installment.BillID)
	if err != nil {
		return err
	}

	if err := tx.Delete(installment).Error; err != nil {
		return err
	}

	remaining, err := s.loadInstallments(tx, bill.ID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 && bill.InstallmentsNumber > 1 {
		return fmt.Errorf("%w: bill %d has no installments left after delete", utils.ErrInconsistentSchedule, bill.ID)
	}

	models.ApplyInstallmentRemoval(bill, installment, remaining)

	for i := range remaining {
		if err := tx.Model(&remaining[i]).Update("partial_id", remaining[i].PartialID).Error; err != nil {
			return err
		}
	}

	return tx.Save(bill).Error
}

func (s *LedgerService) loadInstallments(tx *gorm.DB, billID uint) ([]models.BillInstallment, error) {
	var installments []models.BillInstallment
	err := tx.Where("bill_id = ?", billID).Order("partial_id ASC").Find(&installments).Error
	return installments, err
}

func (s *LedgerService) loadBillWithInstallments(tx *gorm.DB, billID uint) (*models.Bill, []models.BillInstallment, error) {
	var bill models.Bill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: bill %d", utils.ErrNotFound, billID)
		}
		return nil, nil, err
	}
	installments, err := s.loadInstallments(tx, billID)
	if err != nil {
		return nil, nil, err
	}
	return &bill, installments, nil
}
