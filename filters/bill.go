package filters

import (
	"fmt"

	"opsdesk-backend/config"
	"opsdesk-backend/utils"

	"gorm.io/gorm"
)

// BillFilter is the typed form of the bill list filter string. String fields
// hold wire values ("" = filter omitted); dates stay in YYYY-MM-DD form so
// the struct is comparable and round-trips exactly. The Hide flags map to the
// original "<flag>=false" tokens: when set, that class of bill is excluded.
type BillFilter struct {
	Office   string
	Payer    string
	Method   string
	Category string
	Origin   string
	HasCode  bool
	From     string
	To       string
	MinValue string
	MaxValue string

	HideLate    bool
	HidePaid    bool
	HidePending bool

	HasInstallments bool
}

func (f BillFilter) IsZero() bool {
	return f == BillFilter{}
}

// Encode renders the filter as the ordered token string. The all-empty
// filter encodes to "".
func (f BillFilter) Encode() string {
	tokens := []string{
		token("office", f.Office),
		token("from", f.From),
		token("to", f.To),
		token("method", f.Method),
		token("payer", f.Payer),
		token("category", f.Category),
		token("origin", f.Origin),
		flagToken("code", f.HasCode, "true"),
		flagToken("late", f.HideLate, "false"),
		flagToken("paid", f.HidePaid, "false"),
		flagToken("pending", f.HidePending, "false"),
		token("value_min", f.MinValue),
		token("value_max", f.MaxValue),
		flagToken("installments", f.HasInstallments, "true"),
	}
	return joinTokens(tokens)
}

// DecodeBillFilter parses a token string back into the typed filter.
// Malformed dates fail with ErrInvalidDate before any query runs.
func DecodeBillFilter(s string) (BillFilter, error) {
	kv := splitTokens(s)
	f := BillFilter{
		Office:          kv["office"],
		Payer:           kv["payer"],
		Method:          kv["method"],
		Category:        kv["category"],
		Origin:          kv["origin"],
		From:            kv["from"],
		To:              kv["to"],
		MinValue:        kv["value_min"],
		MaxValue:        kv["value_max"],
		HasCode:         kv["code"] == "true",
		HideLate:        kv["late"] == "false",
		HidePaid:        kv["paid"] == "false",
		HidePending:     kv["pending"] == "false",
		HasInstallments: kv["installments"] == "true",
	}
	for _, raw := range []string{f.From, f.To} {
		if _, err := utils.ParseDate(raw); err != nil {
			return BillFilter{}, err
		}
	}
	return f, nil
}

// Apply translates the filter into gorm clauses. The category token may name
// a single category or a whole taxonomy side ("income"/"expense").
func (f BillFilter) Apply(db *gorm.DB, tax config.Taxonomy) (*gorm.DB, error) {
	if f.Office != "" {
		db = db.Where("bills.office_id = ?", f.Office)
	}
	if f.Payer != "" {
		db = db.Where("bills.payer_id = ?", f.Payer)
	}
	if f.Method != "" {
		db = db.Where("bills.method = ?", f.Method)
	}
	if f.Origin != "" {
		db = db.Where("bills.origin = ?", f.Origin)
	}
	switch f.Category {
	case "":
	case "income":
		db = db.Where("bills.category IN ?", tax.Income)
	case "expense":
		db = db.Where("bills.category IN ?", tax.Expense)
	default:
		db = db.Where("bills.category = ?", f.Category)
	}
	if f.HasCode {
		db = db.Where("bills.code <> ''")
	}

	from, err := utils.ParseDate(f.From)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseDate(f.To)
	if err != nil {
		return nil, err
	}
	switch {
	case from != nil && to != nil && from.Before(*to):
		db = db.Where("bills.due_date >= ?", *from).Where("bills.due_date <= ?", *to)
	case from != nil:
		db = db.Where("bills.due_date >= ?", *from)
	case to != nil:
		db = db.Where("bills.due_date <= ?", *to)
	}

	if f.MinValue != "" {
		min, err := utils.UnmaskMoney(f.MinValue, "")
		if err != nil {
			return nil, fmt.Errorf("value_min: %w", err)
		}
		db = db.Where("bills.total >= ?", min)
	}
	if f.MaxValue != "" {
		max, err := utils.UnmaskMoney(f.MaxValue, "")
		if err != nil {
			return nil, fmt.Errorf("value_max: %w", err)
		}
		db = db.Where("bills.total <= ?", max)
	}

	if f.HideLate {
		db = db.Where("bills.late = ?", false)
	}
	if f.HidePaid {
		db = db.Where("bills.paid = ?", false)
	}
	if f.HidePending {
		// Keep settled and overdue bills, drop the in-between.
		db = db.Where("(bills.paid = ? AND bills.late = ?) OR (bills.paid = ? AND bills.late = ?)",
			true, false, false, true)
	}
	if f.HasInstallments {
		db = db.Where("bills.installments_number > 1")
	}
	return db, nil
}

func token(key, value string) string {
	if value == "" {
		return placeholder
	}
	return key + "=" + value
}

func flagToken(key string, set bool, value string) string {
	if !set {
		return placeholder
	}
	return key + "=" + value
}
