package order

import (
	"context"
	"errors"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"

	"gorm.io/gorm"
)

type (
	ConfirmResult struct {
		ConfirmedCount int
		TotalItems     int
	}

	OrderRepository interface {
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		GetOrderByUserAndMenu(ctx context.Context, userID string, menuID string) (*entities.Order, error)
		UpsertOrder(ctx context.Context, order *entities.Order, items []*entities.OrderItem) (bool, error)
		ConfirmOrders(ctx context.Context, menuID string) (*ConfirmResult, error)
		GetOrdersByUser(ctx context.Context, userID string, limit int) ([]*entities.Order, error)
		GetOrdersByMenu(ctx context.Context, menuID string) ([]*entities.Order, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{
		db: db,
	}
}

func preloadOrderItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("OrderItems.MenuItem")
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := preloadOrderItems(r.db.WithContext(ctx)).
		Preload("User").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrderByUserAndMenu(ctx context.Context, userID string, menuID string) (*entities.Order, error) {
	var order entities.Order
	if err := preloadOrderItems(r.db.WithContext(ctx)).
		Where("user_id = ? AND daily_menu_id = ?", userID, menuID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpsertOrder writes the user's single order for a menu. An existing order
// gets its type and charged package overwritten and its items replaced;
// otherwise order is inserted. It reports whether a new row was created.
// A concurrent insert of the same (user, menu) surfaces as a duplicate key
// error, which callers retry as an update.
func (r *orderRepository) UpsertOrder(ctx context.Context, order *entities.Order, items []*entities.OrderItem) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Order
		err := tx.Where("user_id = ? AND daily_menu_id = ?", order.UserID, order.DailyMenuID).
			Take(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&entities.Order{}).
				Where("id = ?", existing.ID).
				Updates(map[string]any{
					"order_type":      order.OrderType,
					"user_package_id": order.UserPackageID,
					"ordered_at":      order.OrderedAt.UTC(),
				}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", existing.ID).Delete(&entities.OrderItem{}).Error; err != nil {
				return err
			}
			order.ID = existing.ID
			order.IsConfirmed = existing.IsConfirmed
			order.CreatedAt = existing.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit("User", "DailyMenu", "UserPackage", "OrderItems").Create(order).Error; err != nil {
				return err
			}
			created = true
		default:
			return err
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("MenuItem").Create(items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return created, err
}

// ConfirmOrders finalizes every pending order of a menu and locks it. Each
// order's items are debited from its charged package, which is deactivated
// once it has no turns left. The whole batch is one transaction: any failure
// rolls back every debit already applied.
func (r *orderRepository) ConfirmOrders(ctx context.Context, menuID string) (*ConfirmResult, error) {
	result := &ConfirmResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending []*entities.Order
		if err := tx.Preload("OrderItems").
			Where("daily_menu_id = ? AND is_confirmed = ?", menuID, false).
			Order("ordered_at ASC").
			Find(&pending).Error; err != nil {
			return err
		}

		for _, order := range pending {
			res := tx.Model(&entities.Order{}).
				Where("id = ? AND is_confirmed = ?", order.ID, false).
				Update("is_confirmed", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}

			itemCount := len(order.OrderItems)
			if itemCount > 0 {
				res := tx.Model(&entities.UserPackage{}).
					Where("id = ?", order.UserPackageID).
					Update("remaining_turns", gorm.Expr("remaining_turns - ?", itemCount))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return domain.ErrPackageNotFound.WithMessage("charged package of an order no longer exists")
				}

				if err := tx.Model(&entities.UserPackage{}).
					Where("id = ? AND remaining_turns <= 0", order.UserPackageID).
					Update("is_active", false).Error; err != nil {
					return err
				}
			}

			result.ConfirmedCount++
			result.TotalItems += itemCount
		}

		res := tx.Model(&entities.DailyMenu{}).
			Where("id = ?", menuID).
			Update("is_locked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrMenuNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) GetOrdersByUser(ctx context.Context, userID string, limit int) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := preloadOrderItems(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("ordered_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrdersByMenu(ctx context.Context, menuID string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := preloadOrderItems(r.db.WithContext(ctx)).
		Preload("User").
		Where("daily_menu_id = ?", menuID).
		Order("ordered_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
