// Package model defines the persisted entities of authboard.
package model

import "time"

// User is a registered account. Email is the login key and the only unique
// column; usernames may collide.
type User struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"not null;size:50"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName keeps the historical singular table name.
func (User) TableName() string {
	return "user"
}
