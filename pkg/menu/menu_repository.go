package menu

import (
	"context"
	"time"

	"Meal-Preorder-Backend/entities"

	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		CreateDailyMenu(ctx context.Context, menu *entities.DailyMenu) error
		GetDailyMenuByID(ctx context.Context, id string) (*entities.DailyMenu, error)
		GetDailyMenus(ctx context.Context, limit int) ([]*entities.DailyMenu, error)
		GetDailyMenusBetween(ctx context.Context, start, end time.Time) ([]*entities.DailyMenu, error)
		FindFirstMenuBetween(ctx context.Context, start, end time.Time) (*entities.DailyMenu, error)
		UpdateDailyMenu(ctx context.Context, menu *entities.DailyMenu, items []*entities.MenuItem) error
		SetLocked(ctx context.Context, id string, locked bool) error
		HasOrders(ctx context.Context, id string) (bool, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{
		db: db,
	}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *menuRepository) CreateDailyMenu(ctx context.Context, menu *entities.DailyMenu) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Creator", "MenuItems").Create(menu).Error; err != nil {
			return err
		}
		if len(menu.MenuItems) == 0 {
			return nil
		}
		return tx.Create(menu.MenuItems).Error
	})
}

func (r *menuRepository) GetDailyMenuByID(ctx context.Context, id string) (*entities.DailyMenu, error) {
	var menu entities.DailyMenu
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetDailyMenus(ctx context.Context, limit int) ([]*entities.DailyMenu, error) {
	var menus []*entities.DailyMenu
	if err := preloadItems(r.db.WithContext(ctx)).
		Order("menu_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// GetDailyMenusBetween lists menus dated within [start, end], oldest created first.
func (r *menuRepository) GetDailyMenusBetween(ctx context.Context, start, end time.Time) ([]*entities.DailyMenu, error) {
	var menus []*entities.DailyMenu
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("menu_date BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// FindFirstMenuBetween resolves the menu of a day. Several menus may share a
// date; the earliest created wins, then the lowest id.
func (r *menuRepository) FindFirstMenuBetween(ctx context.Context, start, end time.Time) (*entities.DailyMenu, error) {
	var menu entities.DailyMenu
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("menu_date BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("created_at ASC").
		Order("id ASC").
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// UpdateDailyMenu saves the menu row. When items is non-nil the existing
// dishes are replaced by items.
func (r *menuRepository) UpdateDailyMenu(ctx context.Context, menu *entities.DailyMenu, items []*entities.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Creator", "MenuItems").Save(menu).Error; err != nil {
			return err
		}
		if items == nil {
			return nil
		}
		if err := tx.Where("daily_menu_id = ?", menu.ID).Delete(&entities.MenuItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(items).Error; err != nil {
				return err
			}
		}
		menu.MenuItems = items
		return nil
	})
}

func (r *menuRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	res := r.db.WithContext(ctx).
		Model(&entities.DailyMenu{}).
		Where("id = ?", id).
		Update("is_locked", locked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) HasOrders(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("daily_menu_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
