package models

import "time"

// uq_appointments_booking is the authoritative guard against duplicate
// bookings: the validator's pre-check is only an early exit.
type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;not null;uniqueIndex:uq_appointments_booking" json:"client_id"`
	Client   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	StylistID *string `gorm:"type:uuid" json:"stylist_id"`
	Stylist   *User   `gorm:"foreignKey:StylistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist,omitempty"`

	ServiceID string  `gorm:"type:uuid;not null;uniqueIndex:uq_appointments_booking" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ScheduledAt time.Time `gorm:"not null;uniqueIndex:uq_appointments_booking" json:"scheduled_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
