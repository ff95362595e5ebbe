package models

import "time"

type Service struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	TypeID string      `gorm:"type:uuid;not null" json:"type_id"`
	Type   ServiceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"type"`

	CreatedBy string `gorm:"type:uuid" json:"created_by"`

	Description     string  `gorm:"size:255" json:"description"`
	Price           float64 `gorm:"type:numeric(12,2)" json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	ImageURL        string  `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
