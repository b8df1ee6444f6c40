package ledger

import (
	"testing"
	"time"

	"gobudget/models"
)

func TestLogModificationsNameChange(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	user := makeUser(t, db, "editor", false)

	expense := makeExpense(t, db, budget, account, "Foobar1", "10.00", date(2024, time.March, 1))

	updated := *expense
	updated.Name = "ABC123"
	if err := LogModifications(db, expense, &updated, &user.ID); err != nil {
		t.Fatalf("LogModifications: %v", err)
	}

	var mods []models.ExpenseModification
	if err := db.Where("expense_id = ?", expense.ID).Find(&mods).Error; err != nil {
		t.Fatalf("load modifications: %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("expected exactly 1 modification, got %d", len(mods))
	}
	m := mods[0]
	if m.FieldName != "name" || m.OldValue != "Foobar1" || m.NewValue != "ABC123" {
		t.Fatalf("unexpected record: field=%s old=%s new=%s", m.FieldName, m.OldValue, m.NewValue)
	}
	if m.UpdatedByID == nil || *m.UpdatedByID != user.ID {
		t.Fatalf("expected updated_by %d, got %v", user.ID, m.UpdatedByID)
	}
}

func TestLogModificationsNoteFromUnset(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	user := makeUser(t, db, "editor", false)

	expense := makeExpense(t, db, budget, account, "e", "10.00", date(2024, time.March, 1))

	updated := *expense
	updated.Note = "Hello World"
	if err := LogModifications(db, expense, &updated, &user.ID); err != nil {
		t.Fatalf("LogModifications: %v", err)
	}

	var mods []models.ExpenseModification
	db.Where("expense_id = ?", expense.ID).Find(&mods)
	if len(mods) != 1 {
		t.Fatalf("expected 1 modification, got %d", len(mods))
	}
	if mods[0].FieldName != "note" || mods[0].OldValue != "" || mods[0].NewValue != "Hello World" {
		t.Fatalf("unexpected record: field=%s old=%q new=%q", mods[0].FieldName, mods[0].OldValue, mods[0].NewValue)
	}
}

func TestLogModificationsUnchangedExpense(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	user := makeUser(t, db, "editor", false)

	expense := makeExpense(t, db, budget, account, "e", "10.00", date(2024, time.March, 1))

	updated := *expense
	if err := LogModifications(db, expense, &updated, &user.ID); err != nil {
		t.Fatalf("LogModifications: %v", err)
	}

	var count int64
	db.Model(&models.ExpenseModification{}).Where("expense_id = ?", expense.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no modifications for identical state, got %d", count)
	}
}

func TestLogModificationsAmountAndCreated(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	user := makeUser(t, db, "editor", false)

	expense := makeExpense(t, db, budget, account, "e", "10.50", date(2024, time.March, 1))

	updated := *expense
	updated.Amount = dec(t, "12.00")
	updated.Created = date(2024, time.March, 5)
	if err := LogModifications(db, expense, &updated, &user.ID); err != nil {
		t.Fatalf("LogModifications: %v", err)
	}

	var mods []models.ExpenseModification
	db.Where("expense_id = ?", expense.ID).Order("field_name").Find(&mods)
	if len(mods) != 2 {
		t.Fatalf("expected 2 modifications, got %d", len(mods))
	}
	if mods[0].FieldName != "amount" || mods[0].OldValue != "10.5" || mods[0].NewValue != "12" {
		t.Fatalf("unexpected amount record: old=%q new=%q", mods[0].OldValue, mods[0].NewValue)
	}
	if mods[1].FieldName != "created" || mods[1].OldValue != "2024-03-01" || mods[1].NewValue != "2024-03-05" {
		t.Fatalf("unexpected created record: old=%q new=%q", mods[1].OldValue, mods[1].NewValue)
	}
}

func TestLogModificationsCategoryByName(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	user := makeUser(t, db, "editor", false)
	food := makeCategory(t, db, budget, "Food", nil)
	travel := makeCategory(t, db, budget, "Travel", nil)

	expense := makeExpense(t, db, budget, account, "e", "10.00", date(2024, time.March, 1))
	expense.CategoryID = &food.ID
	if err := db.Save(expense).Error; err != nil {
		t.Fatalf("assign category: %v", err)
	}

	updated := *expense
	updated.CategoryID = &travel.ID
	if err := LogModifications(db, expense, &updated, &user.ID); err != nil {
		t.Fatalf("LogModifications: %v", err)
	}

	var mods []models.ExpenseModification
	db.Where("expense_id = ?", expense.ID).Find(&mods)
	if len(mods) != 1 {
		t.Fatalf("expected 1 modification, got %d", len(mods))
	}
	if mods[0].FieldName != "category" || mods[0].OldValue != "Food" || mods[0].NewValue != "Travel" {
		t.Fatalf("unexpected category record: old=%q new=%q", mods[0].OldValue, mods[0].NewValue)
	}
}

func TestLogModificationsMultipleFieldsOneSave(t *testing.T) {
	db := openTestDB(t)
	budget := makeBudget(t, db, "b", nil)
	account := makeAccount(t, db, budget, "checking", "500.00", false)
	user := makeUser(t, db, "editor", false)

	expense := makeExpense(t, db, budget, account, "Old name", "10.00", date(2024, time.March, 1))

	updated := *expense
	updated.Name = "New name"
	updated.Note = "added a note"
	updated.Amount = dec(t, "11.00")
	if err := LogModifications(db, expense, &updated, &user.ID); err != nil {
		t.Fatalf("LogModifications: %v", err)
	}

	var count int64
	db.Model(&models.ExpenseModification{}).Where("expense_id = ?", expense.ID).Count(&count)
	if count != 3 {
		t.Fatalf("expected one record per changed field (3), got %d", count)
	}
}
