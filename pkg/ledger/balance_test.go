package ledger

import (
	"testing"
	"time"
)

func TestBalanceAtNoExpenses(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)

	got, err := BalanceAt(db, account, date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("BalanceAt: %v", err)
	}
	if !got.Equal(dec(t, "500.00")) {
		t.Fatalf("expected start balance 500.00, got %s", got)
	}
}

func TestBalanceAtSubtractsExpensesUpToRef(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)

	makeExpense(t, db, budget, account, "before", "100.10", date(2024, time.February, 1))
	makeExpense(t, db, budget, account, "also before", "200.20", date(2024, time.February, 15))
	makeExpense(t, db, budget, account, "after", "50.00", date(2024, time.April, 1))

	got, err := BalanceAt(db, account, date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("BalanceAt: %v", err)
	}
	if !got.Equal(dec(t, "199.70")) {
		t.Fatalf("expected 199.70, got %s", got)
	}
}

func TestBalanceAtIncludesExpenseOnReferenceDay(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "100.00", false)

	makeExpense(t, db, budget, account, "same day", "30.00", date(2024, time.March, 1))

	got, err := BalanceAt(db, account, date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("BalanceAt: %v", err)
	}
	if !got.Equal(dec(t, "70.00")) {
		t.Fatalf("expense on the reference day must count; got %s", got)
	}
}

func TestBalanceAtIgnoresOtherAccounts(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	other := makeAccount(t, db, budget, "cash", "500.00", false)

	makeExpense(t, db, budget, other, "elsewhere", "400.00", date(2024, time.January, 1))
	makeExpense(t, db, budget, account, "mine", "25.50", date(2024, time.January, 2))

	got, err := BalanceAt(db, account, date(2024, time.December, 31))
	if err != nil {
		t.Fatalf("BalanceAt: %v", err)
	}
	if !got.Equal(dec(t, "474.50")) {
		t.Fatalf("expected 474.50, got %s", got)
	}
}

func TestSpentOnIsLifetimeTotal(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)

	makeExpense(t, db, budget, account, "old", "10.00", date(2020, time.January, 1))
	makeExpense(t, db, budget, account, "future", "15.25", date(2099, time.January, 1))

	got, err := SpentOn(db, account)
	if err != nil {
		t.Fatalf("SpentOn: %v", err)
	}
	if !got.Equal(dec(t, "25.25")) {
		t.Fatalf("expected lifetime total 25.25, got %s", got)
	}
}
