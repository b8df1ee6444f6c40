package models

// Category is a hierarchical expense tag. Categories form a forest per
// budget; deleting a parent detaches its children rather than removing them.
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:idx_categories_budget_name" json:"name"`
	BudgetID uint      `gorm:"not null;uniqueIndex:idx_categories_budget_name" json:"budget_id"`
	Budget   *Budget   `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
	ParentID *uint     `gorm:"index" json:"parent_id"`
	Parent   *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
}
