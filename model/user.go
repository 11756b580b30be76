package model

import "time"

// User represents a user in the system.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:50"`
	Username     string    `json:"username" gorm:"size:50;not null;uniqueIndex:uq_users_username"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"` // Not exposed in API responses
	Fullname     string    `json:"fullname" gorm:"size:100;not null"`
	Email        string    `json:"email,omitempty" gorm:"size:100"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
