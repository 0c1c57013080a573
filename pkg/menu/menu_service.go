package menu

import (
	"context"
	"errors"
	"strings"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 10

type (
	MenuService interface {
		GetDailyMenus(ctx context.Context, req domain.ListDailyMenusRequest) ([]*domain.DailyMenuResponse, error)
		GetTodayMenus(ctx context.Context) ([]*domain.DailyMenuResponse, error)
		GetDailyMenu(ctx context.Context, id string) (*domain.DailyMenuResponse, error)
		PreviewMenu(ctx context.Context, req domain.PreviewMenuRequest) []domain.ParsedMenuItem
		CreateDailyMenu(ctx context.Context, req domain.CreateDailyMenuRequest, adminID string) (*domain.DailyMenuResponse, error)
		UpdateDailyMenu(ctx context.Context, id string, req domain.UpdateDailyMenuRequest) (*domain.DailyMenuResponse, error)
		LockMenu(ctx context.Context, id string) (*domain.DailyMenuResponse, error)
		UnlockMenu(ctx context.Context, id string) (*domain.DailyMenuResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		clock          utils.Clock
	}
)

func NewMenuService(menuRepository MenuRepository, clock utils.Clock) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		clock:          clock,
	}
}

func ToDailyMenuResponse(m *entities.DailyMenu) *domain.DailyMenuResponse {
	if m == nil {
		return nil
	}
	items := make([]*domain.MenuItemResponse, 0, len(m.MenuItems))
	for _, item := range m.MenuItems {
		items = append(items, &domain.MenuItemResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Category: item.Category,
		})
	}
	return &domain.DailyMenuResponse{
		ID:         m.ID.String(),
		MenuDate:   utils.CivilTime(m.MenuDate),
		RawContent: m.RawContent,
		BeginAt:    m.BeginAt,
		EndAt:      m.EndAt,
		IsLocked:   m.IsLocked,
		CreatedBy:  m.CreatedBy.String(),
		MenuItems:  items,
		CreatedAt:  m.CreatedAt,
	}
}

// CanOrder reports whether a menu currently accepts orders.
func CanOrder(m *entities.DailyMenu, clock utils.Clock) bool {
	return !m.IsLocked && utils.IsWithinTimeRange(clock.Now(), m.BeginAt, m.EndAt)
}

func buildMenuItems(menuID uuid.UUID, raw string) []*entities.MenuItem {
	parsed := utils.ParseMenuText(raw)
	items := make([]*entities.MenuItem, 0, len(parsed))
	for i, p := range parsed {
		items = append(items, &entities.MenuItem{
			ID:          uuid.New(),
			DailyMenuID: menuID,
			Name:        p.Name,
			Category:    p.Category,
			Position:    i,
		})
	}
	return items
}

func (s *menuService) getDailyMenu(ctx context.Context, id string) (*entities.DailyMenu, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrMenuNotFound
	}
	m, err := s.menuRepository.GetDailyMenuByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *menuService) GetDailyMenus(ctx context.Context, req domain.ListDailyMenusRequest) ([]*domain.DailyMenuResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	menus, err := s.menuRepository.GetDailyMenus(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.DailyMenuResponse, 0, len(menus))
	for _, m := range menus {
		result = append(result, ToDailyMenuResponse(m))
	}
	return result, nil
}

func (s *menuService) GetTodayMenus(ctx context.Context) ([]*domain.DailyMenuResponse, error) {
	now := s.clock.Now()
	menus, err := s.menuRepository.GetDailyMenusBetween(ctx, utils.StartOfDay(now), utils.EndOfDay(now))
	if err != nil {
		return nil, err
	}

	result := make([]*domain.DailyMenuResponse, 0, len(menus))
	for _, m := range menus {
		res := ToDailyMenuResponse(m)
		canOrder := CanOrder(m, s.clock)
		res.CanOrder = &canOrder
		result = append(result, res)
	}
	return result, nil
}

func (s *menuService) GetDailyMenu(ctx context.Context, id string) (*domain.DailyMenuResponse, error) {
	m, err := s.getDailyMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	res := ToDailyMenuResponse(m)
	canOrder := CanOrder(m, s.clock)
	res.CanOrder = &canOrder
	return res, nil
}

func (s *menuService) PreviewMenu(_ context.Context, req domain.PreviewMenuRequest) []domain.ParsedMenuItem {
	return utils.ParseMenuText(req.RawContent)
}

func (s *menuService) CreateDailyMenu(ctx context.Context, req domain.CreateDailyMenuRequest, adminID string) (*domain.DailyMenuResponse, error) {
	creator, err := uuid.Parse(adminID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	menuDate := utils.StartOfDay(s.clock.Now())
	if req.MenuDate != "" {
		menuDate, err = utils.ParseCivilDate(req.MenuDate)
		if err != nil {
			return nil, domain.ErrInvalidMenuDate
		}
	}

	beginAt, endAt := req.BeginAt, req.EndAt
	if beginAt == "" {
		beginAt = domain.DefaultBeginAt
	}
	if endAt == "" {
		endAt = domain.DefaultEndAt
	}

	m := &entities.DailyMenu{
		ID:         uuid.New(),
		MenuDate:   menuDate.UTC(),
		RawContent: strings.TrimSpace(req.RawContent),
		BeginAt:    beginAt,
		EndAt:      endAt,
		CreatedBy:  creator,
	}
	m.MenuItems = buildMenuItems(m.ID, m.RawContent)

	if err := s.menuRepository.CreateDailyMenu(ctx, m); err != nil {
		return nil, err
	}
	return ToDailyMenuResponse(m), nil
}

func (s *menuService) UpdateDailyMenu(ctx context.Context, id string, req domain.UpdateDailyMenuRequest) (*domain.DailyMenuResponse, error) {
	m, err := s.getDailyMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	var items []*entities.MenuItem
	if req.RawContent != nil {
		raw := strings.TrimSpace(*req.RawContent)
		if raw != m.RawContent {
			hasOrders, err := s.menuRepository.HasOrders(ctx, id)
			if err != nil {
				return nil, err
			}
			if hasOrders {
				return nil, domain.ErrMenuHasOrders
			}
			m.RawContent = raw
			items = buildMenuItems(m.ID, raw)
		}
	}
	if req.BeginAt != nil {
		m.BeginAt = *req.BeginAt
	}
	if req.EndAt != nil {
		m.EndAt = *req.EndAt
	}
	if req.IsLocked != nil {
		m.IsLocked = *req.IsLocked
	}

	if err := s.menuRepository.UpdateDailyMenu(ctx, m, items); err != nil {
		return nil, err
	}
	return ToDailyMenuResponse(m), nil
}

func (s *menuService) setLocked(ctx context.Context, id string, locked bool) (*domain.DailyMenuResponse, error) {
	m, err := s.getDailyMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.menuRepository.SetLocked(ctx, id, locked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	m.IsLocked = locked
	return ToDailyMenuResponse(m), nil
}

func (s *menuService) LockMenu(ctx context.Context, id string) (*domain.DailyMenuResponse, error) {
	return s.setLocked(ctx, id, true)
}

func (s *menuService) UnlockMenu(ctx context.Context, id string) (*domain.DailyMenuResponse, error) {
	return s.setLocked(ctx, id, false)
}
