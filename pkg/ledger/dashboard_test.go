package ledger

import (
	"testing"
	"time"

	"gobudget/models"
)

func TestComputeDashboardStats(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	a := makeAccount(t, db, budget, "checking", "500.00", false)
	b := makeAccount(t, db, budget, "cash", "500.00", false)
	locked := makeAccount(t, db, budget, "archived", "500.00", true)

	makeExpense(t, db, budget, a, "rent", "150.00", date(2024, time.March, 1))
	makeExpense(t, db, budget, b, "food", "250.00", date(2024, time.March, 2))
	// expenses on locked accounts must not show up anywhere
	makeExpense(t, db, budget, locked, "hidden", "100.00", date(2024, time.March, 3))

	d, err := ComputeDashboard(db, budget, "en")
	if err != nil {
		t.Fatalf("ComputeDashboard: %v", err)
	}
	if d.Stats.TotalBudget != "1000.00" {
		t.Fatalf("total_budget = %q, want 1000.00", d.Stats.TotalBudget)
	}
	if d.Stats.Expenses != "400.00" {
		t.Fatalf("expenses = %q, want 400.00", d.Stats.Expenses)
	}
	if d.Stats.RemainingBudget != "600.00" {
		t.Fatalf("remaining_budget = %q, want 600.00", d.Stats.RemainingBudget)
	}
	if d.Stats.NumAccounts != 2 {
		t.Fatalf("num_accounts = %d, want 2", d.Stats.NumAccounts)
	}
}

func TestComputeDashboardHistory(t *testing.T) {
	db := openTestDB(t)
	if err := db.Create(&models.TranslationEntry{Name: "EXPENSES", Text: "Expenses", Lang: "en"}).Error; err != nil {
		t.Fatalf("seed translation: %v", err)
	}
	budget := makeBudget(t, db, "b", nil)
	a := makeAccount(t, db, budget, "checking", "500.00", false)
	b := makeAccount(t, db, budget, "cash", "300.00", false)

	makeExpense(t, db, budget, a, "second", "50.00", date(2024, time.March, 2))
	makeExpense(t, db, budget, a, "first", "100.00", date(2024, time.March, 1))

	d, err := ComputeDashboard(db, budget, "en")
	if err != nil {
		t.Fatalf("ComputeDashboard: %v", err)
	}
	h := d.Charts.History

	if len(h.Series) != 2 {
		t.Fatalf("expected 2 history points, got %d", len(h.Series))
	}
	if h.Series[0]["x"] != "2024/03/01" || h.Series[1]["x"] != "2024/03/02" {
		t.Fatalf("series not in chronological order: %v", h.Series)
	}
	if h.Series[0]["expense"] != 100.0 {
		t.Fatalf("first point expense = %v, want 100", h.Series[0]["expense"])
	}

	aKey := accountKey(a.ID)
	bKey := accountKey(b.ID)
	// balances as of each expense date
	if h.Series[0][aKey] != 400.0 {
		t.Fatalf("checking balance at first point = %v, want 400", h.Series[0][aKey])
	}
	if h.Series[1][aKey] != 350.0 {
		t.Fatalf("checking balance at second point = %v, want 350", h.Series[1][aKey])
	}
	if h.Series[0][bKey] != 300.0 {
		t.Fatalf("untouched cash balance = %v, want 300", h.Series[0][bKey])
	}

	wantYKeys := []string{"expense", aKey, bKey}
	if len(h.YKeys) != len(wantYKeys) {
		t.Fatalf("ykeys = %v, want %v", h.YKeys, wantYKeys)
	}
	for i := range wantYKeys {
		if h.YKeys[i] != wantYKeys[i] {
			t.Fatalf("ykeys = %v, want %v", h.YKeys, wantYKeys)
		}
	}
	wantLabels := []string{"Expenses", "checking", "cash"}
	for i := range wantLabels {
		if h.Labels[i] != wantLabels[i] {
			t.Fatalf("labels = %v, want %v", h.Labels, wantLabels)
		}
	}
	if h.Lang != "en" {
		t.Fatalf("lang = %q, want en", h.Lang)
	}
}

func TestComputeDashboardEmptyBudget(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)

	d, err := ComputeDashboard(db, budget, "en")
	if err != nil {
		t.Fatalf("ComputeDashboard: %v", err)
	}
	if d.Stats.NumAccounts != 0 || d.Stats.TotalBudget != "0.00" {
		t.Fatalf("unexpected stats for empty budget: %+v", d.Stats)
	}
	if len(d.Charts.History.Series) != 0 {
		t.Fatalf("expected empty series, got %v", d.Charts.History.Series)
	}
	if d.Charts.Distribution == nil || len(d.Charts.Distribution) != 0 {
		t.Fatalf("distribution must be present and empty, got %v", d.Charts.Distribution)
	}
}
