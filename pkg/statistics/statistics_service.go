package statistics

import (
	"context"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/shopspring/decimal"
)

const topItemsLimit = 5

type (
	StatisticsService interface {
		GetRevenue(ctx context.Context, req domain.RevenueRequest) (*domain.RevenueResponse, error)
		GetMenuItemStats(ctx context.Context, req domain.MenuItemStatsRequest) (*domain.MenuItemStatsResponse, error)
		GetDashboard(ctx context.Context) (*domain.DashboardResponse, error)
	}

	statisticsService struct {
		statisticsRepository  StatisticsRepository
		userPackageRepository userpackage.UserPackageRepository
		clock                 utils.Clock
	}
)

func NewStatisticsService(
	statisticsRepository StatisticsRepository,
	userPackageRepository userpackage.UserPackageRepository,
	clock utils.Clock,
) StatisticsService {
	return &statisticsService{
		statisticsRepository:  statisticsRepository,
		userPackageRepository: userPackageRepository,
		clock:                 clock,
	}
}

// PeriodRange returns the civil [start, end] range of period containing day.
func PeriodRange(period string, day time.Time) (time.Time, time.Time, error) {
	start := utils.StartOfDay(day)
	switch period {
	case domain.PeriodDay:
		return start, utils.EndOfDay(start), nil
	case domain.PeriodMonth:
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, utils.CivilZone)
		return first, first.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
	case domain.PeriodYear:
		first := time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, utils.CivilZone)
		return first, first.AddDate(1, 0, 0).Add(-time.Nanosecond), nil
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
}

func (s *statisticsService) revenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, []*domain.PackageRevenue, int, error) {
	purchases, err := s.statisticsRepository.GetApprovedPurchasesBetween(ctx, start, end)
	if err != nil {
		return decimal.Zero, nil, 0, err
	}

	total := decimal.Zero
	byPackage := make(map[string]*domain.PackageRevenue)
	breakdown := make([]*domain.PackageRevenue, 0)
	for _, p := range purchases {
		if p.MealPackage == nil {
			continue
		}
		total = total.Add(p.MealPackage.Price)

		id := p.MealPackageID.String()
		entry, ok := byPackage[id]
		if !ok {
			entry = &domain.PackageRevenue{MealPackageID: id, Name: p.MealPackage.Name, Revenue: decimal.Zero}
			byPackage[id] = entry
			breakdown = append(breakdown, entry)
		}
		entry.Count++
		entry.Revenue = entry.Revenue.Add(p.MealPackage.Price)
	}
	return total, breakdown, len(purchases), nil
}

func (s *statisticsService) GetRevenue(ctx context.Context, req domain.RevenueRequest) (*domain.RevenueResponse, error) {
	period := req.Period
	if period == "" {
		period = domain.PeriodMonth
	}
	day := s.clock.Now()
	if req.Date != "" {
		parsed, err := utils.ParseCivilDate(req.Date)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		day = parsed
	}

	start, end, err := PeriodRange(period, day)
	if err != nil {
		return nil, err
	}

	total, breakdown, sold, err := s.revenueBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	orders, err := s.statisticsRepository.CountOrdersBetween(ctx, start, end, true)
	if err != nil {
		return nil, err
	}

	return &domain.RevenueResponse{
		Period:            period,
		StartDate:         start,
		EndDate:           end,
		TotalRevenue:      total,
		TotalPackagesSold: sold,
		TotalOrders:       orders,
		Breakdown:         breakdown,
	}, nil
}

func (s *statisticsService) GetMenuItemStats(ctx context.Context, req domain.MenuItemStatsRequest) (*domain.MenuItemStatsResponse, error) {
	now := s.clock.Now()
	start, end, _ := PeriodRange(domain.PeriodMonth, now)

	if req.StartDate != "" {
		parsed, err := utils.ParseCivilDate(req.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		start = parsed
	}
	if req.EndDate != "" {
		parsed, err := utils.ParseCivilDate(req.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		end = utils.EndOfDay(parsed)
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidDate.WithMessage("end date must not be before start date")
	}

	items, err := s.statisticsRepository.GetItemCountsBetween(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}
	orders, err := s.statisticsRepository.CountOrdersBetween(ctx, start, end, false)
	if err != nil {
		return nil, err
	}

	return &domain.MenuItemStatsResponse{
		StartDate:   start,
		EndDate:     end,
		TotalOrders: orders,
		Items:       items,
	}, nil
}

func (s *statisticsService) GetDashboard(ctx context.Context) (*domain.DashboardResponse, error) {
	now := s.clock.Now()
	dayStart, dayEnd := utils.StartOfDay(now), utils.EndOfDay(now)
	monthStart, monthEnd, _ := PeriodRange(domain.PeriodMonth, now)

	users, err := s.statisticsRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	usable, err := s.userPackageRepository.CountUsable(ctx, now)
	if err != nil {
		return nil, err
	}
	todayMenus, err := s.statisticsRepository.CountMenusBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	todayOrders, err := s.statisticsRepository.CountOrdersBetween(ctx, dayStart, dayEnd, false)
	if err != nil {
		return nil, err
	}
	pending, err := s.statisticsRepository.CountPendingPurchases(ctx)
	if err != nil {
		return nil, err
	}
	revenue, _, _, err := s.revenueBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	topItems, err := s.statisticsRepository.GetItemCountsBetween(ctx, monthStart, monthEnd, topItemsLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardResponse{
		TotalUsers:              users,
		ActivePackages:          usable,
		TodayMenus:              todayMenus,
		TodayOrders:             todayOrders,
		PendingPurchaseRequests: pending,
		MonthlyRevenue:          revenue,
		TopItems:                topItems,
	}, nil
}
