package order_test

import (
	"context"
	"testing"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/testutil"
	"Meal-Preorder-Backend/pkg/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertOrder_ReportsCreation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := order.NewOrderRepository(db)
	now := time.Now().UTC()

	admin := testutil.CreateUser(t, db, domain.RoleAdmin)
	user := testutil.CreateUser(t, db, domain.RoleUser)
	m := testutil.CreateMenu(t, db, admin.ID, now, "10:00", "10:45", "Gà luộc", "Đậu hũ")
	p := testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	newOrder := func() *entities.Order {
		return &entities.Order{
			ID:            uuid.New(),
			UserID:        user.ID,
			DailyMenuID:   m.ID,
			UserPackageID: p.ID,
			OrderType:     entities.PackageTypeNormal,
			OrderedAt:     now,
		}
	}
	itemFor := func(idx, pos int) *entities.OrderItem {
		return &entities.OrderItem{ID: uuid.New(), MenuItemID: m.MenuItems[idx].ID, Quantity: 1, Position: pos}
	}

	first := newOrder()
	created, err := repo.UpsertOrder(context.Background(), first, []*entities.OrderItem{itemFor(1, 0), itemFor(0, 1)})
	require.NoError(t, err)
	assert.True(t, created)

	second := newOrder()
	created, err = repo.UpsertOrder(context.Background(), second, []*entities.OrderItem{itemFor(0, 0)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	saved, err := repo.GetOrderByUserAndMenu(context.Background(), user.ID.String(), m.ID.String())
	require.NoError(t, err)
	require.Len(t, saved.OrderItems, 1)
	assert.Equal(t, "Gà luộc", saved.OrderItems[0].MenuItem.Name)
}

func TestConfirmOrders_RollsBackWholeBatch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := order.NewOrderRepository(db)
	now := time.Now().UTC()

	admin := testutil.CreateUser(t, db, domain.RoleAdmin)
	m := testutil.CreateMenu(t, db, admin.ID, now, "10:00", "10:45", "Gà luộc")

	place := func(at time.Time) (*entities.Order, *entities.UserPackage) {
		user := testutil.CreateUser(t, db, domain.RoleUser)
		p := testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 3, now, now.AddDate(0, 0, 5))
		o := &entities.Order{
			ID:            uuid.New(),
			UserID:        user.ID,
			DailyMenuID:   m.ID,
			UserPackageID: p.ID,
			OrderType:     entities.PackageTypeNormal,
			OrderedAt:     at,
		}
		_, err := repo.UpsertOrder(context.Background(), o, []*entities.OrderItem{
			{ID: uuid.New(), MenuItemID: m.MenuItems[0].ID, Quantity: 1},
		})
		require.NoError(t, err)
		return o, p
	}
	firstOrder, firstPackage := place(now)
	_, secondPackage := place(now.Add(time.Minute))

	// orphan the later order's package so the batch fails midway
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Delete(&entities.UserPackage{}, "id = ?", secondPackage.ID).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	_, err := repo.ConfirmOrders(context.Background(), m.ID.String())
	require.ErrorIs(t, err, domain.ErrPackageNotFound)

	var untouched entities.UserPackage
	require.NoError(t, db.First(&untouched, "id = ?", firstPackage.ID).Error)
	assert.Equal(t, 3, untouched.RemainingTurns)

	var stillPending entities.Order
	require.NoError(t, db.First(&stillPending, "id = ?", firstOrder.ID).Error)
	assert.False(t, stillPending.IsConfirmed)

	var menu entities.DailyMenu
	require.NoError(t, db.First(&menu, "id = ?", m.ID).Error)
	assert.False(t, menu.IsLocked)
}
