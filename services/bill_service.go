// services/bill_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"opsdesk-backend/config"
	"opsdesk-backend/filters"
	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillService is the bill aggregate: it owns totals and status flags and
// delegates installment-level mutations to the ledger. Authorization and
// input parsing happen before any write; each mutation runs in one
// transaction.
type BillService struct {
	db     *gorm.DB
	ledger *LedgerService
	tax    config.Taxonomy
	files  utils.FileStore
}

func NewBillService(db *gorm.DB) *BillService {
	return &BillService{
		db:     db,
		ledger: &LedgerService{},
		tax:    config.LoadTaxonomy(),
		files:  utils.DefaultFileStore,
	}
}

// CreateBillInput carries the already-decoded form fields for a new bill.
// Money crosses this boundary as currency-tagged strings, dates as
// YYYY-MM-DD.
type CreateBillInput struct {
	ClientSlug string
	PayerID    *uint
	OfficeID   *uint
	CreatedBy  uint

	Title    string
	Category string
	Method   string
	Origin   string
	Code     string
	Link     string

	DueDate  string
	Total    string
	Currency string

	InstallmentsCount     int
	InstallmentsValue     string
	InstallmentsFrequency int

	Status string // token: "Paid"/"Pending", may carry "reconciled"
	Proof  string // stored file path, already saved by the controller
}

// UpdateBillInput is the partial-update form: nil means "leave untouched",
// a present empty string clears the field. The FK references carry an
// explicit Set flag so a submitted empty payer_id/office_id clears the
// reference while an absent key leaves it alone.
type UpdateBillInput struct {
	PayerID   *uint
	PayerSet  bool
	OfficeID  *uint
	OfficeSet bool

	Title    *string
	Category *string
	Method   *string
	Origin   *string
	Code     *string
	Link     *string

	DueDate  *string
	Total    *string
	Currency *string

	InstallmentsCount     *int
	InstallmentsValue     *string
	InstallmentsFrequency *int

	Proof *string
}

// BalanceSummary is the money rollup shown next to a filtered bill list.
type BalanceSummary struct {
	Received       decimal.Decimal `json:"received"`
	Income         decimal.Decimal `json:"income"`
	PendingIncome  decimal.Decimal `json:"pendingIncome"`
	LateIncome     decimal.Decimal `json:"lateIncome"`
	Paid           decimal.Decimal `json:"paid"`
	Expense        decimal.Decimal `json:"expense"`
	PendingExpense decimal.Decimal `json:"pendingExpense"`
	LateExpense    decimal.Decimal `json:"lateExpense"`
}

// Create validates references and input shape, then persists the bill and,
// when requested, its installment schedule.
func (s *BillService) Create(input CreateBillInput) (*models.Bill, error) {
	client, err := s.findClientBySlug(input.ClientSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checkPayer(input.PayerID, client.ID); err != nil {
		return nil, err
	}
	if err := s.checkOffice(input.OfficeID); err != nil {
		return nil, err
	}

	total, err := utils.UnmaskMoney(input.Total, input.Currency)
	if err != nil {
		return nil, err
	}
	dueDate, err := utils.ParseDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	withSchedule := input.InstallmentsCount > 1 && input.InstallmentsValue != ""
	var perValue decimal.Decimal
	if withSchedule {
		if perValue, err = utils.UnmaskMoney(input.InstallmentsValue, input.Currency); err != nil {
			return nil, err
		}
	}

	bill := models.Bill{
		ClientID:        client.ID,
		PayerID:         input.PayerID,
		OfficeID:        input.OfficeID,
		CreatedByUserID: input.CreatedBy,
		Title:           input.Title,
		Category:        input.Category,
		Method:          input.Method,
		Origin:          input.Origin,
		Code:            input.Code,
		Link:            input.Link,
		Total:           total,
		Currency:        strings.ToUpper(input.Currency),
		DueDate:         dueDate,
		Proof:           input.Proof,
	}

	if strings.Contains(input.Status, "Paid") {
		now := time.Now()
		bill.Paid = true
		bill.PaidAt = &now
		bill.Partial = total
	}
	if strings.Contains(input.Status, "reconciled") {
		bill.Reconciled = true
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&bill).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if withSchedule {
		if err := s.ledger.CreateSchedule(tx, &bill, input.InstallmentsCount, perValue, input.InstallmentsFrequency); err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		bill.InstallmentsNumber = 0
		bill.InstallmentsFrequency = 0
		if err := tx.Save(&bill).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	tx.Commit()
	return &bill, nil
}

// Update merges only the present fields, then applies ledger operations for
// the three independent change predicates in fixed order: reschedule first,
// count-driven regeneration second, repricing last. A single request can do
// all three.
func (s *BillService) Update(billID uint, input UpdateBillInput) (*models.Bill, error) {
	bill, installments, err := s.ledger.loadBillWithInstallments(s.db, billID)
	if err != nil {
		return nil, err
	}

	if input.PayerSet {
		if err := s.checkPayer(input.PayerID, bill.ClientID); err != nil {
			return nil, err
		}
		bill.PayerID = input.PayerID
	}
	if input.OfficeSet {
		if err := s.checkOffice(input.OfficeID); err != nil {
			return nil, err
		}
		bill.OfficeID = input.OfficeID
	}
	if input.Title != nil {
		bill.Title = *input.Title
	}
	if input.Category != nil {
		bill.Category = *input.Category
	}
	if input.Method != nil {
		bill.Method = *input.Method
	}
	if input.Origin != nil {
		bill.Origin = *input.Origin
	}
	if input.Code != nil {
		bill.Code = *input.Code
	}
	if input.Link != nil {
		bill.Link = *input.Link
	}
	if input.Currency != nil && *input.Currency != "" {
		bill.Currency = strings.ToUpper(*input.Currency)
	}
	if input.DueDate != nil {
		dueDate, err := utils.ParseDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		bill.DueDate = dueDate
	}
	if input.Total != nil && *input.Total != "" {
		total, err := utils.UnmaskMoney(*input.Total, bill.Currency)
		if err != nil {
			return nil, err
		}
		bill.Total = total
	}

	frequencyChanged := input.InstallmentsFrequency != nil &&
		*input.InstallmentsFrequency != bill.InstallmentsFrequency
	countChanged := input.InstallmentsCount != nil &&
		*input.InstallmentsCount != bill.InstallmentsNumber

	var newPerValue decimal.Decimal
	valueChanged := false
	if input.InstallmentsValue != nil && *input.InstallmentsValue != "" {
		if newPerValue, err = utils.UnmaskMoney(*input.InstallmentsValue, bill.Currency); err != nil {
			return nil, err
		}
		valueChanged = len(installments) > 0 && !newPerValue.Equal(installments[0].Value)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if frequencyChanged && bill.HasSchedule() {
		if err := s.ledger.Reschedule(tx, bill, *input.InstallmentsFrequency); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	switch {
	case countChanged && *input.InstallmentsCount > 1 && input.InstallmentsValue != nil && *input.InstallmentsValue != "":
		frequency := bill.InstallmentsFrequency
		if input.InstallmentsFrequency != nil {
			frequency = *input.InstallmentsFrequency
		}
		if err := s.ledger.CreateSchedule(tx, bill, *input.InstallmentsCount, newPerValue, frequency); err != nil {
			tx.Rollback()
			return nil, err
		}
	case countChanged && *input.InstallmentsCount <= 1:
		if err := s.ledger.CollapseToSingle(tx, bill); err != nil {
			tx.Rollback()
			return nil, err
		}
	case !countChanged && valueChanged:
		if err := s.ledger.Reprice(tx, bill, newPerValue); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if input.Proof != nil && *input.Proof != "" && *input.Proof != bill.Proof {
		if bill.Proof != "" && !utils.IsPlaceholderFile(bill.Proof) {
			if err := s.files.Delete(bill.Proof); err != nil {
				config.LogError(config.GetLogger(), "services", "BillService.Update",
					"releasing replaced proof", bill.Proof, err)
			}
		}
		bill.Proof = *input.Proof
	}

	if err := tx.Save(bill).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return bill, nil
}

// SetPaid toggles the bill's paid flag. Transitioning to paid settles every
// unpaid installment at one shared timestamp; transitioning back reverses
// only the installments marked at that exact timestamp.
func (s *BillService) SetPaid(billID uint, paidAt *time.Time, paymentInfo string, reconcile bool) (*models.Bill, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	bill, installments, err := s.ledger.loadBillWithInstallments(tx, billID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if !bill.Paid {
		ts := time.Now()
		if paidAt != nil {
			ts = *paidAt
		}
		models.Settle(bill, installments, ts)
	} else {
		models.UndoSettlement(bill, installments)
	}
	for i := range installments {
		if err := tx.Save(&installments[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if paymentInfo != "" {
		bill.PaymentInfo = paymentInfo
	}
	if reconcile {
		bill.Reconciled = true
	}

	if bill.HasSchedule() {
		bill.DueDate = models.RollupDueDate(installments)
	}
	bill.Partial = models.PaidPartial(bill, installments)
	bill.Late = bill.IsLate(utils.BeginningOfDay(time.Now()), installments)

	if err := tx.Save(bill).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return bill, nil
}

// Delete releases the proof file and cascades to the installments.
func (s *BillService) Delete(billID uint) error {
	bill, _, err := s.ledger.loadBillWithInstallments(s.db, billID)
	if err != nil {
		return err
	}

	if bill.Proof != "" && !utils.IsPlaceholderFile(bill.Proof) {
		if err := s.files.Delete(bill.Proof); err != nil {
			config.LogError(config.GetLogger(), "services", "BillService.Delete",
				"releasing proof", bill.Proof, err)
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillInstallment{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(bill).Error; err != nil {
		tx.Rollback()
		return err
	}

	tx.Commit()
	return nil
}

// EditInstallment changes one installment's value and due date, shifting the
// bill total by the value delta.
func (s *BillService) EditInstallment(installmentID uint, valueStr, dueDateStr, paymentInfo string) (*models.BillInstallment, error) {
	installment, bill, err := s.findInstallment(installmentID)
	if err != nil {
		return nil, err
	}

	newValue, err := utils.UnmaskMoney(valueStr, bill.Currency)
	if err != nil {
		return nil, err
	}
	newDueDate, err := utils.ParseDate(dueDateStr)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := s.ledger.EditInstallmentValue(tx, installment, newValue, newDueDate, paymentInfo); err != nil {
		tx.Rollback()
		return nil, err
	}
	tx.Commit()
	return installment, nil
}

// SetInstallmentStatus toggles one installment's paid flag.
func (s *BillService) SetInstallmentStatus(installmentID uint, paidAt *time.Time, paymentInfo string) (*models.BillInstallment, error) {
	installment, _, err := s.findInstallment(installmentID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := s.ledger.ToggleInstallment(tx, installment, !installment.Paid, paidAt, paymentInfo); err != nil {
		tx.Rollback()
		return nil, err
	}
	tx.Commit()
	return installment, nil
}

// DeleteInstallment removes one installment and renumbers the rest.
func (s *BillService) DeleteInstallment(installmentID uint) error {
	installment, _, err := s.findInstallment(installmentID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := s.ledger.DeleteInstallment(tx, installment); err != nil {
		tx.Rollback()
		return err
	}
	tx.Commit()
	return nil
}

// FilterBills returns a client's bills narrowed by the filter token string,
// ordered by the sort pair (internal id descending by default), together
// with the newest bill id and the balance rollup.
func (s *BillService) FilterBills(clientSlug, filterStr string, sort filters.Sort) ([]models.Bill, uint, *BalanceSummary, error) {
	client, err := s.findClientBySlug(clientSlug)
	if err != nil {
		return nil, 0, nil, err
	}

	filter, err := filters.DecodeBillFilter(filterStr)
	if err != nil {
		return nil, 0, nil, err
	}

	query := s.db.Model(&models.Bill{}).Where("bills.client_id = ?", client.ID)
	query, err = filter.Apply(query, s.tax)
	if err != nil {
		return nil, 0, nil, err
	}
	query = sort.ApplyToBills(query)

	var bills []models.Bill
	if err := query.Preload("Installments").Find(&bills).Error; err != nil {
		return nil, 0, nil, err
	}

	var lastID uint
	for _, bill := range bills {
		if bill.ID > lastID {
			lastID = bill.ID
		}
	}

	return bills, lastID, s.summarize(bills), nil
}

func (s *BillService) summarize(bills []models.Bill) *BalanceSummary {
	summary := &BalanceSummary{
		Received: decimal.Zero, Income: decimal.Zero, PendingIncome: decimal.Zero, LateIncome: decimal.Zero,
		Paid: decimal.Zero, Expense: decimal.Zero, PendingExpense: decimal.Zero, LateExpense: decimal.Zero,
	}
	for _, bill := range bills {
		switch {
		case s.tax.IsIncome(bill.Category):
			summary.Income = summary.Income.Add(bill.Total)
			if bill.Paid {
				summary.Received = summary.Received.Add(bill.Total)
			} else {
				summary.PendingIncome = summary.PendingIncome.Add(bill.Total)
			}
			if bill.Late {
				summary.LateIncome = summary.LateIncome.Add(bill.Total)
			}
		case s.tax.IsExpense(bill.Category):
			summary.Expense = summary.Expense.Add(bill.Total)
			if bill.Paid {
				summary.Paid = summary.Paid.Add(bill.Total)
			} else {
				summary.PendingExpense = summary.PendingExpense.Add(bill.Total)
			}
			if bill.Late {
				summary.LateExpense = summary.LateExpense.Add(bill.Total)
			}
		}
	}
	return summary
}

func (s *BillService) findClientBySlug(slug string) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("slug = ?", slug).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %q", utils.ErrNotFound, slug)
		}
		return nil, err
	}
	return &client, nil
}

func (s *BillService) checkPayer(payerID *uint, clientID uint) error {
	if payerID == nil {
		return nil
	}
	var branch models.Branch
	if err := s.db.Where("id = ? AND client_id = ?", *payerID, clientID).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: branch %d for client %d", utils.ErrNotFound, *payerID, clientID)
		}
		return err
	}
	return nil
}

func (s *BillService) checkOffice(officeID *uint) error {
	if officeID == nil {
		return nil
	}
	var office models.Office
	if err := s.db.First(&office, *officeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: office %d", utils.ErrNotFound, *officeID)
		}
		return err
	}
	return nil
}

func (s *BillService) findInstallment(installmentID uint) (*models.BillInstallment, *models.Bill, error) {
	var installment models.BillInstallment
	if err := s.db.First(&installment, installmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: installment %d", utils.ErrNotFound, installmentID)
		}
		return nil, nil, err
	}
	var bill models.Bill
	if err := s.db.First(&bill, installment.BillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: bill %d", utils.ErrNotFound, installment.BillID)
		}
		return nil, nil, err
	}
	return &installment, &bill, nil
}
