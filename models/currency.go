package models

// Currency is immutable reference data shared by all budgets.
type Currency struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null;unique" json:"name"`
	Symbol string `gorm:"size:100;not null;unique" json:"symbol"`
}
