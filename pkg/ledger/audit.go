package ledger

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gobudget/models"
)

// TrackedFields are the expense fields recorded in the modification history.
var TrackedFields = []string{"category", "amount", "name", "note", "created"}

// LockForUpdate adds a row lock on dialects that support it. SQLite rejects
// FOR UPDATE and serializes writers on its own, so it is left untouched.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" || tx.Dialector.Name() == "sqlite3" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LogModifications diffs the persisted state of an expense against its
// updated state and appends one ExpenseModification per changed tracked
// field. old must be the row as currently stored, read inside the same
// transaction that will save updated; chained edits then always log against
// the latest committed values. Values are stringified, with the empty string
// standing in for an absent value. Nothing is logged for brand-new expenses;
// callers skip the diff entirely on create.
func LogModifications(tx *gorm.DB, old, updated *models.Expense, actorID *uint) error {
	var mods []models.ExpenseModification

	record := func(field, oldVal, newVal string) {
		mods = append(mods, models.ExpenseModification{
			ExpenseID:   old.ID,
			FieldName:   field,
			OldValue:    oldVal,
			NewValue:    newVal,
			UpdatedByID: actorID,
		})
	}

	if !equalUintPtr(old.CategoryID, updated.CategoryID) {
		oldName, err := categoryName(tx, old.CategoryID)
		if err != nil {
			return err
		}
		newName, err := categoryName(tx, updated.CategoryID)
		if err != nil {
			return err
		}
		record("category", oldName, newName)
	}
	if !old.Amount.Equal(updated.Amount) {
		record("amount", old.Amount.String(), updated.Amount.String())
	}
	if old.Name != updated.Name {
		record("name", old.Name, updated.Name)
	}
	if old.Note != updated.Note {
		record("note", old.Note, updated.Note)
	}
	if !sameDay(old.Created, updated.Created) {
		record("created", old.Created.Format("2006-01-02"), updated.Created.Format("2006-01-02"))
	}

	if len(mods) == 0 {
		return nil
	}
	return tx.Create(&mods).Error
}

func equalUintPtr(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// categoryName resolves a category reference to its display name, empty for
// an unset category.
func categoryName(tx *gorm.DB, id *uint) (string, error) {
	if id == nil {
		return "", nil
	}
	var c models.Category
	if err := tx.First(&c, *id).Error; err != nil {
		return "", err
	}
	return c.Name, nil
}
