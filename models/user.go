package models

import (
	"time"
)

// User is an authenticated actor. Superusers pass every budget permission
// check regardless of ownership or access-list membership.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	Username       string    `gorm:"size:255;not null;unique" json:"username"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	IsSuperuser    bool      `gorm:"default:false" json:"is_superuser"`
}
