package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PurchaseStatusPending  = "pending"
	PurchaseStatusApproved = "approved"
	PurchaseStatusRejected = "rejected"
)

type PurchaseRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_pending_purchase,where:status = 'pending'" json:"user_id"`
	MealPackageID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_pending_purchase,where:status = 'pending'" json:"meal_package_id"`
	Status        string     `gorm:"size:20;index;not null" json:"status"`
	RequestedAt   time.Time  `json:"requested_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	ProcessedBy   *uuid.UUID `gorm:"type:uuid" json:"processed_by,omitempty"`

	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MealPackage *MealPackage `gorm:"foreignKey:MealPackageID" json:"meal_package,omitempty"`
	Timestamp
}
