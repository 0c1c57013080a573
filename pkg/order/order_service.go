package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/pkg/menu"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	myOrdersLimit = 20
	maxNoteLength = 200
)

type (
	OrderService interface {
		PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest, userID string) (*domain.PlaceOrderResponse, error)
		ConfirmAllOrders(ctx context.Context, req domain.ConfirmOrdersRequest) (*domain.ConfirmOrdersResponse, error)
		GetMyOrders(ctx context.Context, userID string) ([]*domain.OrderResponse, error)
		GetMyTodayOrder(ctx context.Context, userID string) (*domain.OrderResponse, error)
		GetOrdersByDate(ctx context.Context, date string) (*domain.OrdersByDateResponse, error)
		GetCopyText(ctx context.Context, menuID string) (*domain.CopyTextResponse, error)
	}

	orderService struct {
		orderRepository       OrderRepository
		menuRepository        menu.MenuRepository
		userPackageRepository userpackage.UserPackageRepository
		clock                 utils.Clock
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	menuRepository menu.MenuRepository,
	userPackageRepository userpackage.UserPackageRepository,
	clock utils.Clock,
) OrderService {
	return &orderService{
		orderRepository:       orderRepository,
		menuRepository:        menuRepository,
		userPackageRepository: userPackageRepository,
		clock:                 clock,
	}
}

func ToOrderResponse(o *entities.Order) *domain.OrderResponse {
	items := make([]*domain.OrderItemResponse, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		res := &domain.OrderItemResponse{
			ID:         item.ID.String(),
			MenuItemID: item.MenuItemID.String(),
			Quantity:   item.Quantity,
			Note:       item.Note,
		}
		if item.MenuItem != nil {
			res.MenuItemName = item.MenuItem.Name
		}
		items = append(items, res)
	}

	res := &domain.OrderResponse{
		ID:            o.ID.String(),
		UserID:        o.UserID.String(),
		DailyMenuID:   o.DailyMenuID.String(),
		UserPackageID: o.UserPackageID.String(),
		OrderType:     o.OrderType,
		IsConfirmed:   o.IsConfirmed,
		OrderedAt:     o.OrderedAt,
		Items:         items,
	}
	if o.User != nil {
		res.UserName = o.User.Name
		res.UserEmail = o.User.Email
	}
	return res
}

func (s *orderService) findTodayMenu(ctx context.Context) (*entities.DailyMenu, error) {
	now := s.clock.Now()
	m, err := s.menuRepository.FindFirstMenuBetween(ctx, utils.StartOfDay(now), utils.EndOfDay(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound.WithMessage(domain.MessageNoMenuToday)
		}
		return nil, err
	}
	return m, nil
}

// checkOrderable rejects a locked menu before checking the ordering window so
// the caller learns which of the two closed it.
func (s *orderService) checkOrderable(m *entities.DailyMenu) error {
	if m.IsLocked {
		return domain.ErrMenuLocked.WithMessage("menu has been locked by an admin, orders are closed")
	}
	if !utils.IsWithinTimeRange(s.clock.Now(), m.BeginAt, m.EndAt) {
		return domain.ErrMenuLocked.WithMessage(
			fmt.Sprintf("outside ordering time, orders are accepted from %s to %s", m.BeginAt, m.EndAt))
	}
	return nil
}

func normalizeOrderType(orderType string) (string, error) {
	switch orderType {
	case "":
		return entities.PackageTypeNormal, nil
	case entities.PackageTypeNormal, entities.PackageTypeNoRice:
		return orderType, nil
	default:
		return "", domain.ErrInvalidOrderType
	}
}

// PlaceOrder admits the user's order for today's menu. Turns are only checked
// here; they are debited when an admin confirms the menu's orders.
func (s *orderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest, userID string) (*domain.PlaceOrderResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	orderType, err := normalizeOrderType(req.OrderType)
	if err != nil {
		return nil, err
	}

	m, err := s.findTodayMenu(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkOrderable(m); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	candidate, err := s.userPackageRepository.FindChargeCandidate(ctx, userID, orderType, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoMatchingPackage.WithMessage(
				fmt.Sprintf("you have no usable %s package", orderType))
		}
		return nil, err
	}
	if len(req.Items) > candidate.RemainingTurns {
		return nil, domain.ErrNotEnoughTurns.WithMessage(
			fmt.Sprintf("not enough turns: %d requested, %d left", len(req.Items), candidate.RemainingTurns))
	}

	menuItems := make(map[uuid.UUID]bool, len(m.MenuItems))
	for _, item := range m.MenuItems {
		menuItems[item.ID] = true
	}
	items := make([]*entities.OrderItem, 0, len(req.Items))
	for i, reqItem := range req.Items {
		menuItemID, err := uuid.Parse(reqItem.MenuItemID)
		if err != nil || !menuItems[menuItemID] {
			return nil, domain.ErrInvalidMenuItem
		}
		note := strings.TrimSpace(reqItem.Note)
		if utf8.RuneCountInString(note) > maxNoteLength {
			return nil, domain.ErrValidation.WithMessage("note must be at most 200 characters")
		}
		items = append(items, &entities.OrderItem{
			ID:         uuid.New(),
			MenuItemID: menuItemID,
			Quantity:   1,
			Note:       note,
			Position:   i,
		})
	}

	o := &entities.Order{
		ID:            uuid.New(),
		UserID:        userUUID,
		DailyMenuID:   m.ID,
		UserPackageID: candidate.ID,
		OrderType:     orderType,
		OrderedAt:     now,
	}
	created, err := s.orderRepository.UpsertOrder(ctx, o, items)
	if err != nil && utils.IsDuplicateKey(err) {
		log.Warnf("concurrent order insert for user %s menu %s, retrying as update", userID, m.ID)
		o.ID = uuid.New()
		created, err = s.orderRepository.UpsertOrder(ctx, o, items)
	}
	if err != nil {
		return nil, err
	}

	saved, err := s.orderRepository.GetOrderByID(ctx, o.ID.String())
	if err != nil {
		return nil, err
	}
	return &domain.PlaceOrderResponse{
		Order:   ToOrderResponse(saved),
		Created: created,
	}, nil
}

func (s *orderService) getMenu(ctx context.Context, menuID string) (*entities.DailyMenu, error) {
	if _, err := uuid.Parse(menuID); err != nil {
		return nil, domain.ErrMenuNotFound
	}
	m, err := s.menuRepository.GetDailyMenuByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *orderService) ConfirmAllOrders(ctx context.Context, req domain.ConfirmOrdersRequest) (*domain.ConfirmOrdersResponse, error) {
	if _, err := s.getMenu(ctx, req.MenuID); err != nil {
		return nil, err
	}

	result, err := s.orderRepository.ConfirmOrders(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	log.Infof("confirmed %d orders (%d items) for menu %s", result.ConfirmedCount, result.TotalItems, req.MenuID)

	return &domain.ConfirmOrdersResponse{
		ConfirmedCount: result.ConfirmedCount,
		TotalItems:     result.TotalItems,
	}, nil
}

func (s *orderService) GetMyOrders(ctx context.Context, userID string) ([]*domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetOrdersByUser(ctx, userID, myOrdersLimit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, ToOrderResponse(o))
	}
	return result, nil
}

// GetMyTodayOrder returns nil without error when there is no menu or no order today.
func (s *orderService) GetMyTodayOrder(ctx context.Context, userID string) (*domain.OrderResponse, error) {
	m, err := s.findTodayMenu(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			return nil, nil
		}
		return nil, err
	}

	o, err := s.orderRepository.GetOrderByUserAndMenu(ctx, userID, m.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// summarize counts ordered items per dish, most ordered first.
func summarize(orders []*entities.Order) []*domain.ItemCount {
	counts := make(map[uuid.UUID]*domain.ItemCount)
	var ordered []*domain.ItemCount
	for _, o := range orders {
		for _, item := range o.OrderItems {
			if item.MenuItem == nil {
				continue
			}
			c, ok := counts[item.MenuItemID]
			if !ok {
				c = &domain.ItemCount{MenuItemID: item.MenuItemID.String(), Name: item.MenuItem.Name}
				counts[item.MenuItemID] = c
				ordered = append(ordered, c)
			}
			c.Count += item.Quantity
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})
	if ordered == nil {
		ordered = []*domain.ItemCount{}
	}
	return ordered
}

func (s *orderService) GetOrdersByDate(ctx context.Context, date string) (*domain.OrdersByDateResponse, error) {
	day, err := utils.ParseCivilDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	m, err := s.menuRepository.FindFirstMenuBetween(ctx, utils.StartOfDay(day), utils.EndOfDay(day))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound.WithMessage("no menu was published on " + date)
		}
		return nil, err
	}

	orders, err := s.orderRepository.GetOrdersByMenu(ctx, m.ID.String())
	if err != nil {
		return nil, err
	}

	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, ToOrderResponse(o))
	}
	return &domain.OrdersByDateResponse{
		Menu:    menu.ToDailyMenuResponse(m),
		Orders:  result,
		Summary: summarize(orders),
	}, nil
}

// GetCopyText renders a plain text digest of a menu's orders, split into
// with-rice and no-rice sections, for pasting into a chat with the kitchen.
func (s *orderService) GetCopyText(ctx context.Context, menuID string) (*domain.CopyTextResponse, error) {
	if _, err := s.getMenu(ctx, menuID); err != nil {
		return nil, err
	}
	orders, err := s.orderRepository.GetOrdersByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}

	var (
		normalDetails, noRiceDetails []string
		totalNormal, totalNoRice     int
	)
	for _, o := range orders {
		if len(o.OrderItems) == 0 {
			continue
		}
		lines := make([]string, 0, len(o.OrderItems))
		for _, item := range o.OrderItems {
			if item.MenuItem == nil {
				continue
			}
			text := item.MenuItem.Name
			if item.Note != "" {
				text += " (" + item.Note + ")"
			}
			lines = append(lines, "  - "+text)
		}

		name := "Guest"
		if o.User != nil {
			name = o.User.Name
		}
		detail := fmt.Sprintf("📍 %s:\n%s", name, strings.Join(lines, "\n"))

		if o.OrderType == entities.PackageTypeNoRice {
			totalNoRice += len(o.OrderItems)
			noRiceDetails = append(noRiceDetails, detail)
		} else {
			totalNormal += len(o.OrderItems)
			normalDetails = append(normalDetails, detail)
		}
	}

	total := totalNormal + totalNoRice
	parts := []string{
		fmt.Sprintf("📋 TOTAL: %d meals (%d people)", total, len(orders)),
		fmt.Sprintf("   🍚 With rice: %d meals", totalNormal),
		fmt.Sprintf("   🥢 No rice: %d meals", totalNoRice),
		"",
	}
	if len(normalDetails) > 0 {
		parts = append(parts, "🍚 WITH RICE:")
		parts = append(parts, normalDetails...)
		parts = append(parts, "")
	}
	if len(noRiceDetails) > 0 {
		parts = append(parts, "🥢 NO RICE:")
		parts = append(parts, noRiceDetails...)
	}

	return &domain.CopyTextResponse{
		CopyText:         strings.Join(parts, "\n"),
		Summary:          summarize(orders),
		TotalMeals:       total,
		TotalNormalMeals: totalNormal,
		TotalNoRiceMeals: totalNoRice,
		TotalOrders:      len(orders),
	}, nil
}
