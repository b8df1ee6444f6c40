package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a dated monetary outflow against an account and category.
// Author is the creating user, UpdatedBy whoever saved it last; both survive
// user deletion as NULL. Created carries the expense date (day precision),
// Updated the save timestamp.
type Expense struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"size:100;not null" json:"name"`
	BudgetID          uint            `gorm:"not null;index" json:"budget_id"`
	Budget            *Budget         `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID        *uint           `gorm:"index" json:"category_id"`
	Category          *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Created           time.Time       `gorm:"type:date;not null;index" json:"created"`
	Updated           time.Time       `gorm:"autoUpdateTime" json:"updated"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	AuthorID          *uint           `json:"author_id"`
	Author            *User           `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
	UpdatedByID       *uint           `json:"updated_by_id"`
	UpdatedBy         *User           `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"-"`
	ExternalReference string          `gorm:"size:200" json:"external_reference"`
	AccountID         *uint           `gorm:"index" json:"account_id"`
	Account           *Account        `gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL" json:"-"`
	Note              string          `gorm:"type:text" json:"note"`
}
