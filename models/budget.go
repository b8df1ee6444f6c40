package models

import "time"

// Budget is a named financial scope. The owner implicitly holds read and
// write permission; other users gain access through the two access lists.
type Budget struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	Name        string    `gorm:"size:100;not null;unique" json:"name"`
	OwnerID     *uint     `gorm:"index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
	Note        string    `gorm:"type:text" json:"note"`
	CurrencyID  *uint     `json:"currency_id"`
	Currency    *Currency `gorm:"foreignKey:CurrencyID;constraint:OnDelete:SET NULL" json:"currency,omitempty"`
	ReadAccess  []User    `gorm:"many2many:budget_read_access" json:"-"`
	WriteAccess []User    `gorm:"many2many:budget_write_access" json:"-"`
}
