// services/sweeper_service.go
package services

import (
	"time"

	"opsdesk-backend/config"
	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier is the outbound notification collaborator. Dispatching (email,
// queue) lives outside this service; the default just logs.
type Notifier interface {
	NotifyLateBill(bill *models.Bill)
}

type logNotifier struct{}

func (logNotifier) NotifyLateBill(bill *models.Bill) {
	fields := logrus.Fields{
		"billId":  bill.ID,
		"title":   bill.Title,
		"dueDate": utils.FormatDate(bill.DueDate),
		"total":   utils.FormatMoney(bill.Total, bill.Currency),
	}
	if bill.DueDate != nil {
		fields["daysLate"] = utils.DaysBetween(*bill.DueDate, time.Now())
	}
	config.GetLogger().WithFields(fields).Info("bill became late")
}

// SweeperService keeps the derived expired/late flags current. It runs daily
// from a cron schedule and is also invoked on demand by the list handlers.
type SweeperService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewSweeperService(db *gorm.DB) *SweeperService {
	return &SweeperService{db: db, notifier: logNotifier{}}
}

func (s *SweeperService) StartScheduler() {
	c := cron.New()

	// Run every day shortly after midnight
	c.AddFunc("10 0 * * *", func() {
		s.CheckExpiredDocuments()
		s.CheckLateBills()
	})

	c.Start()
	config.GetLogger().Info("sweeper scheduler started")
}

// CheckExpiredDocuments flips Document.Expired in both directions around
// today, so edits that push an expiration forward un-expire the document.
func (s *SweeperService) CheckExpiredDocuments() {
	today := utils.BeginningOfDay(time.Now())

	if err := s.db.Model(&models.Document{}).
		Where("expiration < ? AND expired = ?", today, false).
		Update("expired", true).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "SweeperService.CheckExpiredDocuments",
			"marking expired documents", nil, err)
	}

	if err := s.db.Model(&models.Document{}).
		Where("expiration >= ? AND expired = ?", today, true).
		Update("expired", false).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "SweeperService.CheckExpiredDocuments",
			"unmarking expired documents", nil, err)
	}
}

// CheckLateBills recomputes Bill.Late for every unpaid bill, considering the
// installment schedule when one exists, and notifies on new late bills.
func (s *SweeperService) CheckLateBills() {
	today := utils.BeginningOfDay(time.Now())

	var bills []models.Bill
	if err := s.db.Preload("Installments").Where("paid = ?", false).Find(&bills).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "SweeperService.CheckLateBills",
			"loading unpaid bills", nil, err)
		return
	}

	for i := range bills {
		bill := &bills[i]
		late := bill.IsLate(today, bill.Installments)
		if late == bill.Late {
			continue
		}
		if err := s.db.Model(bill).Update("late", late).Error; err != nil {
			config.LogError(config.GetLogger(), "services", "SweeperService.CheckLateBills",
				"updating late flag", bill.ID, err)
			continue
		}
		if late {
			s.notifier.NotifyLateBill(bill)
		}
	}

	// Paid bills are never late.
	if err := s.db.Model(&models.Bill{}).
		Where("paid = ? AND late = ?", true, true).
		Update("late", false).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "SweeperService.CheckLateBills",
			"clearing late flag on paid bills", nil, err)
	}
}
