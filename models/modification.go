package models

import "time"

// ExpenseModification is one field-level change of an expense. Records are
// append-only; they are never updated and only disappear when the parent
// expense is deleted.
type ExpenseModification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ExpenseID   uint      `gorm:"not null;index" json:"expense_id"`
	Expense     *Expense  `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE" json:"-"`
	FieldName   string    `gorm:"size:100;not null" json:"field_name"`
	OldValue    string    `gorm:"size:100;not null" json:"old_value"`
	NewValue    string    `gorm:"size:100;not null" json:"new_value"`
	UpdatedByID *uint     `json:"updated_by_id"`
	UpdatedBy   *User     `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
