package entities

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_user_menu" json:"user_id"`
	DailyMenuID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_user_menu" json:"daily_menu_id"`
	UserPackageID uuid.UUID `gorm:"type:uuid;not null" json:"user_package_id"`
	OrderType     string    `gorm:"size:20;not null" json:"order_type"`
	IsConfirmed   bool      `gorm:"index" json:"is_confirmed"`
	OrderedAt     time.Time `json:"ordered_at"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	DailyMenu   *DailyMenu   `gorm:"foreignKey:DailyMenuID" json:"-"`
	UserPackage *UserPackage `gorm:"foreignKey:UserPackageID" json:"-"`
	OrderItems  []*OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	Timestamp
}

type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Note       string    `gorm:"size:200" json:"note"`
	Position   int       `gorm:"not null" json:"position"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Timestamp
}
