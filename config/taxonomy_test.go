package config

import "testing"

func TestLoadTaxonomyDefaults(t *testing.T) {
	t.Setenv("INCOME_CATEGORIES", "")
	t.Setenv("EXPENSE_CATEGORIES", "")

	tax := LoadTaxonomy()
	if !tax.IsIncome("Consulting") {
		t.Error("Consulting should default to income")
	}
	if !tax.IsExpense("Rent") {
		t.Error("Rent should default to expense")
	}
	if tax.IsIncome("Rent") || tax.IsExpense("Consulting") {
		t.Error("categories leaked across taxonomy sides")
	}
	if tax.IsIncome("Unknown") || tax.IsExpense("Unknown") {
		t.Error("unknown category matched a side")
	}
}

func TestLoadTaxonomyEnvOverride(t *testing.T) {
	t.Setenv("INCOME_CATEGORIES", "Retainer, Royalties")
	t.Setenv("EXPENSE_CATEGORIES", "Hosting")

	tax := LoadTaxonomy()
	if !tax.IsIncome("Retainer") || !tax.IsIncome("Royalties") {
		t.Errorf("override not applied: %v", tax.Income)
	}
	if tax.IsIncome("Consulting") {
		t.Error("default income categories should be replaced by the override")
	}
	if !tax.IsExpense("Hosting") || tax.IsExpense("Rent") {
		t.Errorf("expense override not applied: %v", tax.Expense)
	}
}
