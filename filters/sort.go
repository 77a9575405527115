package filters

import (
	"gorm.io/gorm"
)

// Sort is a (field, direction) pair, carried separately from the filter
// string as sort_by/sort_type query params.
type Sort struct {
	Field     string
	Direction string // "asc" or "desc"
}

func ParseSort(field, direction string) Sort {
	if direction != "asc" {
		direction = "desc"
	}
	return Sort{Field: field, Direction: direction}
}

func (s Sort) IsZero() bool {
	return s.Field == "" || s.Field == "None"
}

func (s Sort) dir() string {
	if s.Direction == "asc" {
		return "ASC"
	}
	return "DESC"
}

// avgInstallmentValue is the derived aggregate column backing the
// installments_value sort key.
const avgInstallmentValue = "(SELECT SUM(bill_installments.value) / NULLIF(bills.installments_number, 0)" +
	" FROM bill_installments WHERE bill_installments.bill_id = bills.id)"

// ApplyToBills orders a bill query. Composite and computed keys:
//   - "code" also orders by link as a tiebreak
//   - "installments_value" sorts by the average installment value
//   - "office" sorts by the joined office name
//
// Without an explicit sort the list is ordered by internal id descending.
func (s Sort) ApplyToBills(db *gorm.DB) *gorm.DB {
	if s.IsZero() {
		return db.Order("bills.id DESC")
	}
	switch s.Field {
	case "date":
		return db.Order("bills.created_at " + s.dir())
	case "expiration":
		return db.Order("bills.due_date " + s.dir())
	case "office":
		return db.Joins("LEFT JOIN offices ON offices.id = bills.office_id").
			Order("offices.name " + s.dir())
	case "code":
		return db.Order("bills.code " + s.dir()).Order("bills.link " + s.dir())
	case "installments_value":
		return db.Order(avgInstallmentValue + " " + s.dir())
	case "title", "category", "method", "origin", "total", "paid", "late":
		return db.Order("bills." + s.Field + " " + s.dir())
	default:
		return db.Order("bills.id DESC")
	}
}

// ApplyToDocuments orders a document query; unknown fields keep insertion
// order by id.
func (s Sort) ApplyToDocuments(db *gorm.DB) *gorm.DB {
	if s.IsZero() {
		return db.Order("documents.id DESC")
	}
	switch s.Field {
	case "name", "category", "expiration":
		return db.Order("documents." + s.Field + " " + s.dir())
	default:
		return db.Order("documents.id DESC")
	}
}

// ApplyToClients orders a client query; office sorts by joined office name.
func (s Sort) ApplyToClients(db *gorm.DB) *gorm.DB {
	if s.IsZero() {
		return db.Order("clients.id DESC")
	}
	switch s.Field {
	case "office":
		return db.Joins("LEFT JOIN offices ON offices.id = clients.office_id").
			Order("offices.name " + s.dir())
	case "name", "area", "cnpj":
		return db.Order("clients." + s.Field + " " + s.dir())
	default:
		return db.Order("clients.id DESC")
	}
}
