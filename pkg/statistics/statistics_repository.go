package statistics

import (
	"context"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"

	"gorm.io/gorm"
)

type (
	itemCountRow struct {
		Name  string
		Count int
	}

	StatisticsRepository interface {
		GetApprovedPurchasesBetween(ctx context.Context, start, end time.Time) ([]*entities.PurchaseRequest, error)
		CountOrdersBetween(ctx context.Context, start, end time.Time, confirmedOnly bool) (int64, error)
		CountMenusBetween(ctx context.Context, start, end time.Time) (int64, error)
		CountPendingPurchases(ctx context.Context) (int64, error)
		CountUsers(ctx context.Context) (int64, error)
		GetItemCountsBetween(ctx context.Context, start, end time.Time, limit int) ([]*domain.ItemCount, error)
	}

	statisticsRepository struct {
		db *gorm.DB
	}
)

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{
		db: db,
	}
}

func (r *statisticsRepository) GetApprovedPurchasesBetween(ctx context.Context, start, end time.Time) ([]*entities.PurchaseRequest, error) {
	var requests []*entities.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("MealPackage").
		Where("status = ?", entities.PurchaseStatusApproved).
		Where("processed_at BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("processed_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *statisticsRepository) ordersOfMenusBetween(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Joins("JOIN daily_menus ON daily_menus.id = orders.daily_menu_id").
		Where("daily_menus.menu_date BETWEEN ? AND ?", start.UTC(), end.UTC())
}

func (r *statisticsRepository) CountOrdersBetween(ctx context.Context, start, end time.Time, confirmedOnly bool) (int64, error) {
	var count int64
	query := r.ordersOfMenusBetween(ctx, start, end)
	if confirmedOnly {
		query = query.Where("orders.is_confirmed = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountMenusBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.DailyMenu{}).
		Where("menu_date BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountPendingPurchases(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.PurchaseRequest{}).
		Where("status = ?", entities.PurchaseStatusPending).
		Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("role = ?", domain.RoleUser).
		Count(&count).Error
	return count, err
}

// GetItemCountsBetween ranks dishes by ordered quantity. Dishes are grouped by
// name since every menu carries its own item rows.
func (r *statisticsRepository) GetItemCountsBetween(ctx context.Context, start, end time.Time, limit int) ([]*domain.ItemCount, error) {
	var rows []itemCountRow
	query := r.db.WithContext(ctx).
		Table("order_items").
		Select("menu_items.name AS name, SUM(order_items.quantity) AS count").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN daily_menus ON daily_menus.id = menu_items.daily_menu_id").
		Where("daily_menus.menu_date BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Group("menu_items.name").
		Order("count DESC").
		Order("menu_items.name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.ItemCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, &domain.ItemCount{Name: row.Name, Count: row.Count})
	}
	return result, nil
}
