package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	Role       string     `gorm:"size:20;index;not null" json:"role"`
	IsVerified bool       `json:"is_verified"`
	IsBlocked  bool       `json:"is_blocked"`
	OTPCode    *string    `gorm:"size:6" json:"-"`
	OTPExpiry  *time.Time `json:"-"`

	// Written only by the first purchase approval and by an explicit set-active call.
	ActivePackageID *uuid.UUID `gorm:"type:uuid" json:"active_package_id,omitempty"`

	Timestamp
}
