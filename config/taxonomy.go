package config

import (
	"os"
	"strings"
)

// Category taxonomy for bills. The sets are injected configuration, not
// hardcoded business rules: INCOME_CATEGORIES / EXPENSE_CATEGORIES env vars
// (comma separated) override the defaults.
type Taxonomy struct {
	Income  []string
	Expense []string
}

var defaultIncome = []string{
	"Service", "Consulting", "License", "Subscription", "Reimbursement",
}

var defaultExpense = []string{
	"Salary", "Rent", "Supplier", "Travel", "Tax", "Equipment", "Software",
}

func LoadTaxonomy() Taxonomy {
	return Taxonomy{
		Income:  categoriesFromEnv("INCOME_CATEGORIES", defaultIncome),
		Expense: categoriesFromEnv("EXPENSE_CATEGORIES", defaultExpense),
	}
}

func categoriesFromEnv(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (t Taxonomy) IsIncome(category string) bool {
	return contains(t.Income, category)
}

func (t Taxonomy) IsExpense(category string) bool {
	return contains(t.Expense, category)
}

func contains(set []string, item string) bool {
	for _, s := range set {
		if s == item {
			return true
		}
	}
	return false
}
