package models

import "time"

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Phone        *string `gorm:"size:20;uniqueIndex" json:"phone"`
	Role         string  `gorm:"size:20;default:'Client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
