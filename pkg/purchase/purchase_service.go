package purchase

import (
	"context"
	"errors"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/internal/utils/mailing"
	"Meal-Preorder-Backend/pkg/mealpackage"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PurchaseService interface {
		CreatePurchaseRequest(ctx context.Context, req domain.CreatePurchaseRequest, userID string) (*domain.PurchaseRequestResponse, error)
		GetMyPurchaseRequests(ctx context.Context, userID string) ([]*domain.PurchaseRequestResponse, error)
		GetPurchaseRequests(ctx context.Context, req domain.ListPurchaseRequestsRequest) ([]*domain.PurchaseRequestResponse, error)
		ApprovePurchaseRequest(ctx context.Context, requestID string, adminID string) (*domain.ApprovePurchaseResponse, error)
		RejectPurchaseRequest(ctx context.Context, requestID string, adminID string) (*domain.PurchaseRequestResponse, error)
	}

	purchaseService struct {
		purchaseRepository    PurchaseRepository
		mealPackageRepository mealpackage.MealPackageRepository
		notifier              mailing.Notifier
		clock                 utils.Clock
	}
)

func NewPurchaseService(
	purchaseRepository PurchaseRepository,
	mealPackageRepository mealpackage.MealPackageRepository,
	notifier mailing.Notifier,
	clock utils.Clock,
) PurchaseService {
	return &purchaseService{
		purchaseRepository:    purchaseRepository,
		mealPackageRepository: mealPackageRepository,
		notifier:              notifier,
		clock:                 clock,
	}
}

func ToPurchaseRequestResponse(r *entities.PurchaseRequest) *domain.PurchaseRequestResponse {
	res := &domain.PurchaseRequestResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		MealPackage: mealpackage.ToMealPackageResponse(r.MealPackage),
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
		ProcessedAt: r.ProcessedAt,
	}
	if r.User != nil {
		res.UserName = r.User.Name
		res.UserEmail = r.User.Email
	}
	if r.ProcessedBy != nil {
		res.ProcessedBy = r.ProcessedBy.String()
	}
	return res
}

func toPurchaseRequestResponses(requests []*entities.PurchaseRequest) []*domain.PurchaseRequestResponse {
	result := make([]*domain.PurchaseRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, ToPurchaseRequestResponse(r))
	}
	return result
}

func (s *purchaseService) CreatePurchaseRequest(ctx context.Context, req domain.CreatePurchaseRequest, userID string) (*domain.PurchaseRequestResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := uuid.Parse(req.MealPackageID); err != nil {
		return nil, domain.ErrPackageNotFound
	}

	template, err := s.mealPackageRepository.GetMealPackageByID(ctx, req.MealPackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}
	if !template.IsActive {
		return nil, domain.ErrPackageNotFound.WithMessage("meal package is not available for purchase")
	}

	pending, err := s.purchaseRepository.HasPendingRequest(ctx, userID, req.MealPackageID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrRequestAlreadyExists
	}

	request := &entities.PurchaseRequest{
		ID:            uuid.New(),
		UserID:        userUUID,
		MealPackageID: template.ID,
		Status:        entities.PurchaseStatusPending,
		RequestedAt:   s.clock.Now(),
	}
	if err := s.purchaseRepository.CreatePurchaseRequest(ctx, request); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, domain.ErrRequestAlreadyExists
		}
		return nil, err
	}
	request.MealPackage = template
	return ToPurchaseRequestResponse(request), nil
}

func (s *purchaseService) GetMyPurchaseRequests(ctx context.Context, userID string) ([]*domain.PurchaseRequestResponse, error) {
	requests, err := s.purchaseRepository.GetPurchaseRequestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPurchaseRequestResponses(requests), nil
}

func (s *purchaseService) GetPurchaseRequests(ctx context.Context, req domain.ListPurchaseRequestsRequest) ([]*domain.PurchaseRequestResponse, error) {
	requests, err := s.purchaseRepository.GetPurchaseRequests(ctx, req.Status)
	if err != nil {
		return nil, err
	}
	return toPurchaseRequestResponses(requests), nil
}

func (s *purchaseService) ApprovePurchaseRequest(ctx context.Context, requestID string, adminID string) (*domain.ApprovePurchaseResponse, error) {
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, domain.ErrRequestNotFound
	}

	now := s.clock.Now()
	issued, err := s.purchaseRepository.ApprovePurchaseRequest(ctx, requestID, adminUUID, now)
	if err != nil {
		return nil, err
	}

	request, err := s.purchaseRepository.GetPurchaseRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.notifyApproved(request, issued)

	return &domain.ApprovePurchaseResponse{
		Request:     ToPurchaseRequestResponse(request),
		UserPackage: userpackage.ToUserPackageResponse(issued, now),
	}, nil
}

// notifyApproved sends the confirmation email without holding up the caller.
// Failures are logged and never retried.
func (s *purchaseService) notifyApproved(request *entities.PurchaseRequest, issued *entities.UserPackage) {
	if request.User == nil || request.MealPackage == nil {
		return
	}
	mail := mailing.PurchaseApprovedMail{
		Email:       request.User.Email,
		Name:        request.User.Name,
		PackageName: request.MealPackage.Name,
		Turns:       issued.RemainingTurns,
		Price:       request.MealPackage.Price,
		PurchasedAt: issued.PurchasedAt,
	}
	go func() {
		if err := s.notifier.NotifyPurchaseApproved(context.Background(), mail); err != nil {
			log.Errorf("failed to send purchase confirmation to %s: %v", mail.Email, err)
		}
	}()
}

func (s *purchaseService) RejectPurchaseRequest(ctx context.Context, requestID string, adminID string) (*domain.PurchaseRequestResponse, error) {
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, domain.ErrRequestNotFound
	}

	if err := s.purchaseRepository.RejectPurchaseRequest(ctx, requestID, adminUUID, s.clock.Now()); err != nil {
		return nil, err
	}

	request, err := s.purchaseRepository.GetPurchaseRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseRequestResponse(request), nil
}
