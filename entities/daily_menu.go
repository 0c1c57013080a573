package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	MenuCategoryNew     = "new"
	MenuCategoryDaily   = "daily"
	MenuCategorySpecial = "special"
)

type DailyMenu struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenuDate   time.Time `gorm:"index;not null" json:"menu_date"`
	RawContent string    `gorm:"type:text;not null" json:"raw_content"`
	BeginAt    string    `gorm:"size:5;not null" json:"begin_at"`
	EndAt      string    `gorm:"size:5;not null" json:"end_at"`
	IsLocked   bool      `gorm:"index" json:"is_locked"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	Creator   *User       `gorm:"foreignKey:CreatedBy" json:"-"`
	MenuItems []*MenuItem `gorm:"foreignKey:DailyMenuID" json:"menu_items,omitempty"`
	Timestamp
}

type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DailyMenuID uuid.UUID `gorm:"type:uuid;index;not null" json:"daily_menu_id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"size:20;index;not null" json:"category"`
	Position    int       `gorm:"not null" json:"position"`

	Timestamp
}
