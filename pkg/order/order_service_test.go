package order_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/testutil"
	"Meal-Preorder-Backend/pkg/menu"
	"Meal-Preorder-Backend/pkg/order"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderFixture struct {
	db      *gorm.DB
	clock   *testutil.FixedClock
	service order.OrderService
	admin   *entities.User
	user    *entities.User
	menu    *entities.DailyMenu
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := testutil.NewFixedClock(testutil.CivilAt(2025, time.March, 10, 10, 30))

	admin := testutil.CreateUser(t, db, domain.RoleAdmin)
	user := testutil.CreateUser(t, db, domain.RoleUser)
	m := testutil.CreateMenu(t, db, admin.ID, clock.Now(), "10:00", "10:45", "Rau muống xào", "Cá kho", "Canh chua")

	service := order.NewOrderService(
		order.NewOrderRepository(db),
		menu.NewMenuRepository(db),
		userpackage.NewUserPackageRepository(db),
		clock,
	)
	return &orderFixture{db: db, clock: clock, service: service, admin: admin, user: user, menu: m}
}

func (f *orderFixture) items(idx ...int) []domain.OrderItemRequest {
	items := make([]domain.OrderItemRequest, 0, len(idx))
	for _, i := range idx {
		items = append(items, domain.OrderItemRequest{MenuItemID: f.menu.MenuItems[i].ID.String()})
	}
	return items
}

func (f *orderFixture) reloadPackage(t *testing.T, p *entities.UserPackage) *entities.UserPackage {
	t.Helper()
	var fresh entities.UserPackage
	require.NoError(t, f.db.First(&fresh, "id = ?", p.ID).Error)
	return &fresh
}

func TestPlaceOrder_ChargesEarliestExpiringPackage(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	later := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 10, now, now.AddDate(0, 0, 20))
	sooner := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	res, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0, 1)}, f.user.ID.String())
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, sooner.ID.String(), res.Order.UserPackageID)
	assert.Equal(t, entities.PackageTypeNormal, res.Order.OrderType)
	assert.False(t, res.Order.IsConfirmed)
	require.Len(t, res.Order.Items, 2)
	assert.Equal(t, "Rau muống xào", res.Order.Items[0].MenuItemName)
	assert.Equal(t, "Cá kho", res.Order.Items[1].MenuItemName)

	// turns are only debited on confirmation
	assert.Equal(t, 5, f.reloadPackage(t, sooner).RemainingTurns)
	assert.Equal(t, 10, f.reloadPackage(t, later).RemainingTurns)
}

func TestPlaceOrder_SkipsUnusablePackages(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	expired := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now.AddDate(0, 0, -40), now.Add(-time.Hour))
	empty := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 0, now, now.AddDate(0, 0, 1))
	noRice := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNoRice, 5, now, now.AddDate(0, 0, 2))
	usable := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 30))

	res, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0)}, f.user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, usable.ID.String(), res.Order.UserPackageID)
	assert.NotEqual(t, expired.ID.String(), res.Order.UserPackageID)
	assert.NotEqual(t, empty.ID.String(), res.Order.UserPackageID)
	assert.NotEqual(t, noRice.ID.String(), res.Order.UserPackageID)
}

func TestPlaceOrder_NoRiceUsesNoRicePackage(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 1))
	noRice := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNoRice, 5, now, now.AddDate(0, 0, 10))

	res, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:     f.items(2),
		OrderType: entities.PackageTypeNoRice,
	}, f.user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, noRice.ID.String(), res.Order.UserPackageID)
	assert.Equal(t, entities.PackageTypeNoRice, res.Order.OrderType)
}

func TestPlaceOrder_NotEnoughTurnsCreatesNothing(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 2, now, now.AddDate(0, 0, 5))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0, 1, 2)}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrNotEnoughTurns)

	var count int64
	require.NoError(t, f.db.Model(&entities.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrder_NoMatchingPackage(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:     f.items(0),
		OrderType: entities.PackageTypeNoRice,
	}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrNoMatchingPackage)
	assert.Contains(t, err.Error(), entities.PackageTypeNoRice)
}

func TestPlaceOrder_InvalidOrderType(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:     f.items(0),
		OrderType: "vegan",
	}, f.user.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidOrderType)
}

func TestPlaceOrder_OrderingWindow(t *testing.T) {
	cases := []struct {
		name    string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "before window", hour: 9, minute: 59, wantErr: true},
		{name: "window opens", hour: 10, minute: 0},
		{name: "window closes", hour: 10, minute: 45},
		{name: "after window", hour: 10, minute: 46, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(t)
			now := f.clock.Now()
			testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))
			f.clock.Set(testutil.CivilAt(2025, time.March, 10, tc.hour, tc.minute))

			_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0)}, f.user.ID.String())
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrMenuLocked)
			assert.Contains(t, err.Error(), "outside ordering time")
			assert.Contains(t, err.Error(), "10:00")
			assert.Contains(t, err.Error(), "10:45")
		})
	}
}

func TestPlaceOrder_LockTakesPriorityOverWindow(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.db.Model(&entities.DailyMenu{}).Where("id = ?", f.menu.ID).Update("is_locked", true).Error)
	f.clock.Set(testutil.CivilAt(2025, time.March, 10, 15, 0))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0)}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrMenuLocked)
	assert.Contains(t, err.Error(), "locked by an admin")
}

func TestPlaceOrder_NoMenuToday(t *testing.T) {
	f := newOrderFixture(t)
	f.clock.Set(testutil.CivilAt(2025, time.March, 11, 10, 30))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0)}, f.user.ID.String())
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}

func TestPlaceOrder_UsesFirstMenuOfTheDay(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))
	second := testutil.CreateMenu(t, f.db, f.admin.ID, now, "10:00", "10:45", "Phở")
	require.NoError(t, f.db.Model(&entities.DailyMenu{}).Where("id = ?", second.ID).
		Update("created_at", time.Now().UTC().Add(time.Hour)).Error)

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: []domain.OrderItemRequest{
		{MenuItemID: second.MenuItems[0].ID.String()},
	}}, f.user.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidMenuItem)
}

func TestPlaceOrder_RejectsForeignMenuItem(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))
	yesterday := testutil.CreateMenu(t, f.db, f.admin.ID, now.AddDate(0, 0, -1), "10:00", "10:45", "Bún bò")

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: []domain.OrderItemRequest{
		{MenuItemID: yesterday.MenuItems[0].ID.String()},
	}}, f.user.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidMenuItem)
}

func TestPlaceOrder_RejectsLongNote(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	items := f.items(0)
	items[0].Note = strings.Repeat("x", 201)
	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: items}, f.user.ID.String())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceOrder_ResubmitReplacesItems(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))
	noRice := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNoRice, 5, now, now.AddDate(0, 0, 5))

	first, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0, 1)}, f.user.ID.String())
	require.NoError(t, err)
	require.True(t, first.Created)

	f.clock.Advance(5 * time.Minute)
	items := f.items(2)
	items[0].Note = "ít cay"
	second, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:     items,
		OrderType: entities.PackageTypeNoRice,
	}, f.user.ID.String())
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, noRice.ID.String(), second.Order.UserPackageID)
	assert.Equal(t, entities.PackageTypeNoRice, second.Order.OrderType)
	require.Len(t, second.Order.Items, 1)
	assert.Equal(t, "Canh chua", second.Order.Items[0].MenuItemName)
	assert.Equal(t, "ít cay", second.Order.Items[0].Note)

	var orders, items64 int64
	require.NoError(t, f.db.Model(&entities.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&entities.OrderItem{}).Count(&items64).Error)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 1, items64)
}

func TestPlaceOrder_EmptyOrderIsAllowed(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	p := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	res, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{}, f.user.ID.String())
	require.NoError(t, err)
	assert.Empty(t, res.Order.Items)

	confirmed, err := f.service.ConfirmAllOrders(context.Background(), domain.ConfirmOrdersRequest{MenuID: f.menu.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, confirmed.ConfirmedCount)
	assert.Zero(t, confirmed.TotalItems)
	assert.Equal(t, 5, f.reloadPackage(t, p).RemainingTurns)
}

func TestConfirmAllOrders_DebitsAndLocks(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	p := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	other := testutil.CreateUser(t, f.db, domain.RoleUser)
	exhausted := testutil.CreateUserPackage(t, f.db, other.ID, entities.PackageTypeNormal, 2, now, now.AddDate(0, 0, 5))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0, 1)}, f.user.ID.String())
	require.NoError(t, err)
	_, err = f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(1, 2)}, other.ID.String())
	require.NoError(t, err)

	res, err := f.service.ConfirmAllOrders(context.Background(), domain.ConfirmOrdersRequest{MenuID: f.menu.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ConfirmedCount)
	assert.Equal(t, 4, res.TotalItems)

	charged := f.reloadPackage(t, p)
	assert.Equal(t, 3, charged.RemainingTurns)
	assert.True(t, charged.IsActive)

	drained := f.reloadPackage(t, exhausted)
	assert.Zero(t, drained.RemainingTurns)
	assert.False(t, drained.IsActive)

	var m entities.DailyMenu
	require.NoError(t, f.db.First(&m, "id = ?", f.menu.ID).Error)
	assert.True(t, m.IsLocked)

	var orders []entities.Order
	require.NoError(t, f.db.Find(&orders).Error)
	for _, o := range orders {
		assert.True(t, o.IsConfirmed)
	}
}

func TestConfirmAllOrders_IsIdempotent(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	p := testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0, 1)}, f.user.ID.String())
	require.NoError(t, err)

	_, err = f.service.ConfirmAllOrders(context.Background(), domain.ConfirmOrdersRequest{MenuID: f.menu.ID.String()})
	require.NoError(t, err)
	again, err := f.service.ConfirmAllOrders(context.Background(), domain.ConfirmOrdersRequest{MenuID: f.menu.ID.String()})
	require.NoError(t, err)

	assert.Zero(t, again.ConfirmedCount)
	assert.Zero(t, again.TotalItems)
	assert.Equal(t, 3, f.reloadPackage(t, p).RemainingTurns)
}

func TestConfirmAllOrders_BlocksFurtherOrders(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	_, err := f.service.ConfirmAllOrders(context.Background(), domain.ConfirmOrdersRequest{MenuID: f.menu.ID.String()})
	require.NoError(t, err)

	_, err = f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0)}, f.user.ID.String())
	assert.ErrorIs(t, err, domain.ErrMenuLocked)
}

func TestConfirmAllOrders_UnknownMenu(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.service.ConfirmAllOrders(context.Background(), domain.ConfirmOrdersRequest{MenuID: f.user.ID.String()})
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}

func TestGetMyTodayOrder(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))

	none, err := f.service.GetMyTodayOrder(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	assert.Nil(t, none)

	placed, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(1)}, f.user.ID.String())
	require.NoError(t, err)

	today, err := f.service.GetMyTodayOrder(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, placed.Order.ID, today.ID)

	f.clock.Set(testutil.CivilAt(2025, time.March, 11, 9, 0))
	tomorrow, err := f.service.GetMyTodayOrder(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	assert.Nil(t, tomorrow)
}

func TestGetOrdersByDateAndCopyText(t *testing.T) {
	f := newOrderFixture(t)
	now := f.clock.Now()
	testutil.CreateUserPackage(t, f.db, f.user.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 5))
	other := testutil.CreateUser(t, f.db, domain.RoleUser)
	testutil.CreateUserPackage(t, f.db, other.ID, entities.PackageTypeNoRice, 5, now, now.AddDate(0, 0, 5))

	_, err := f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{Items: f.items(0, 1)}, f.user.ID.String())
	require.NoError(t, err)
	items := f.items(1)
	items[0].Note = "thêm nước mắm"
	_, err = f.service.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:     items,
		OrderType: entities.PackageTypeNoRice,
	}, other.ID.String())
	require.NoError(t, err)

	byDate, err := f.service.GetOrdersByDate(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, f.menu.ID.String(), byDate.Menu.ID)
	assert.Len(t, byDate.Orders, 2)
	require.NotEmpty(t, byDate.Summary)
	assert.Equal(t, "Cá kho", byDate.Summary[0].Name)
	assert.Equal(t, 2, byDate.Summary[0].Count)

	digest, err := f.service.GetCopyText(context.Background(), f.menu.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, digest.TotalMeals)
	assert.Equal(t, 2, digest.TotalNormalMeals)
	assert.Equal(t, 1, digest.TotalNoRiceMeals)
	assert.Equal(t, 2, digest.TotalOrders)
	assert.Contains(t, digest.CopyText, "TOTAL: 3 meals (2 people)")
	assert.Contains(t, digest.CopyText, f.user.Name)
	assert.Contains(t, digest.CopyText, "Cá kho (thêm nước mắm)")

	_, err = f.service.GetOrdersByDate(context.Background(), "2025-03-11")
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
	_, err = f.service.GetOrdersByDate(context.Background(), "10/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
