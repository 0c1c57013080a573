package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MealPackage is the catalog template an admin sells.
type MealPackage struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Turns       int             `gorm:"not null" json:"turns"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ValidDays   int             `gorm:"not null" json:"valid_days"`
	PackageType string          `gorm:"size:20;not null" json:"package_type"`
	QRCodeImage string          `json:"qr_code_image,omitempty"`
	IsActive    bool            `gorm:"index" json:"is_active"`

	Timestamp
}

// UserPackage is a ledger entry: turns a user owns from one approved purchase.
type UserPackage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	MealPackageID  uuid.UUID `gorm:"type:uuid;not null" json:"meal_package_id"`
	PackageType    string    `gorm:"size:20;not null" json:"package_type"`
	RemainingTurns int       `gorm:"not null" json:"remaining_turns"`
	PurchasedAt    time.Time `json:"purchased_at"`
	ExpiresAt      time.Time `gorm:"index" json:"expires_at"`
	IsActive       bool      `gorm:"index" json:"is_active"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	MealPackage *MealPackage `gorm:"foreignKey:MealPackageID" json:"meal_package,omitempty"`
	Timestamp
}

// Usable reports whether the package can still back an order at now.
func (p *UserPackage) Usable(now time.Time) bool {
	return p.IsActive && p.RemainingTurns > 0 && p.ExpiresAt.After(now)
}
