package models

import "github.com/shopspring/decimal"

// Account is a balance-bearing pool within a budget. Locked accounts are
// kept for their history but excluded from dashboards and from the account
// choices offered for new expenses.
type Account struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null;uniqueIndex:idx_accounts_budget_name" json:"name"`
	BudgetID     uint            `gorm:"not null;uniqueIndex:idx_accounts_budget_name" json:"budget_id"`
	Budget       *Budget         `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
	StartBalance decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"start_balance"`
	Locked       bool            `gorm:"default:false" json:"locked"`
}
