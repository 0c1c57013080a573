package userpackage

import (
	"context"
	"errors"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserPackageService interface {
		GetMyPackages(ctx context.Context, userID string) ([]*domain.UserPackageResponse, error)
		GetMyActivePackages(ctx context.Context, userID string) ([]*domain.UserPackageResponse, error)
		SetActivePackage(ctx context.Context, userID string, userPackageID string) (*domain.UserPackageResponse, error)
	}

	userPackageService struct {
		userPackageRepository UserPackageRepository
		clock                 utils.Clock
	}
)

func NewUserPackageService(userPackageRepository UserPackageRepository, clock utils.Clock) UserPackageService {
	return &userPackageService{
		userPackageRepository: userPackageRepository,
		clock:                 clock,
	}
}

// ToUserPackageResponse converts a ledger entry, evaluating usability at now.
func ToUserPackageResponse(p *entities.UserPackage, now time.Time) *domain.UserPackageResponse {
	if p == nil {
		return nil
	}
	res := &domain.UserPackageResponse{
		ID:             p.ID.String(),
		MealPackageID:  p.MealPackageID.String(),
		PackageType:    p.PackageType,
		RemainingTurns: p.RemainingTurns,
		PurchasedAt:    p.PurchasedAt,
		ExpiresAt:      p.ExpiresAt,
		IsActive:       p.IsActive,
		IsUsable:       p.Usable(now),
	}
	if p.MealPackage != nil {
		res.MealPackageName = p.MealPackage.Name
	}
	return res
}

func ToUserPackageResponses(packages []*entities.UserPackage, now time.Time) []*domain.UserPackageResponse {
	result := make([]*domain.UserPackageResponse, 0, len(packages))
	for _, p := range packages {
		result = append(result, ToUserPackageResponse(p, now))
	}
	return result
}

func (s *userPackageService) GetMyPackages(ctx context.Context, userID string) ([]*domain.UserPackageResponse, error) {
	packages, err := s.userPackageRepository.GetUserPackages(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserPackageResponses(packages, s.clock.Now()), nil
}

func (s *userPackageService) GetMyActivePackages(ctx context.Context, userID string) ([]*domain.UserPackageResponse, error) {
	now := s.clock.Now()
	packages, err := s.userPackageRepository.GetUsableUserPackages(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return ToUserPackageResponses(packages, now), nil
}

func (s *userPackageService) SetActivePackage(ctx context.Context, userID string, userPackageID string) (*domain.UserPackageResponse, error) {
	if _, err := uuid.Parse(userPackageID); err != nil {
		return nil, domain.ErrPackageNotFound
	}

	userPackage, err := s.userPackageRepository.GetUserPackageByID(ctx, userPackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}
	if userPackage.UserID.String() != userID {
		return nil, domain.ErrPackageNotFound
	}

	now := s.clock.Now()
	if !userPackage.Usable(now) {
		return nil, domain.ErrPackageUnavailable
	}

	if err := s.userPackageRepository.SetActiveUserPackage(ctx, userID, userPackageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return ToUserPackageResponse(userPackage, now), nil
}
