package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Provider     string    `gorm:"default:local" json:"provider,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserUpdate is a partial profile update. Nil fields are left untouched
type UserUpdate struct {
	Username *string
	Email    *string
}
