package purchase

import (
	"context"
	"errors"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PurchaseRepository interface {
		CreatePurchaseRequest(ctx context.Context, request *entities.PurchaseRequest) error
		HasPendingRequest(ctx context.Context, userID string, mealPackageID string) (bool, error)
		GetPurchaseRequestByID(ctx context.Context, id string) (*entities.PurchaseRequest, error)
		GetPurchaseRequestsByUser(ctx context.Context, userID string) ([]*entities.PurchaseRequest, error)
		GetPurchaseRequests(ctx context.Context, status string) ([]*entities.PurchaseRequest, error)
		ApprovePurchaseRequest(ctx context.Context, id string, adminID uuid.UUID, now time.Time) (*entities.UserPackage, error)
		RejectPurchaseRequest(ctx context.Context, id string, adminID uuid.UUID, now time.Time) error
	}

	purchaseRepository struct {
		db *gorm.DB
	}
)

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

func (r *purchaseRepository) CreatePurchaseRequest(ctx context.Context, request *entities.PurchaseRequest) error {
	return r.db.WithContext(ctx).Omit("User", "MealPackage").Create(request).Error
}

func (r *purchaseRepository) HasPendingRequest(ctx context.Context, userID string, mealPackageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.PurchaseRequest{}).
		Where("user_id = ? AND meal_package_id = ? AND status = ?", userID, mealPackageID, entities.PurchaseStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) GetPurchaseRequestByID(ctx context.Context, id string) (*entities.PurchaseRequest, error) {
	var request entities.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("MealPackage").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *purchaseRepository) GetPurchaseRequestsByUser(ctx context.Context, userID string) ([]*entities.PurchaseRequest, error) {
	var requests []*entities.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("MealPackage").
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *purchaseRepository) GetPurchaseRequests(ctx context.Context, status string) ([]*entities.PurchaseRequest, error) {
	var requests []*entities.PurchaseRequest
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("MealPackage")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// markProcessed moves a pending request to status. The status guard in the
// WHERE clause makes a concurrent second approval affect no rows.
func markProcessed(tx *gorm.DB, id string, status string, adminID uuid.UUID, now time.Time) error {
	res := tx.Model(&entities.PurchaseRequest{}).
		Where("id = ? AND status = ?", id, entities.PurchaseStatusPending).
		Updates(map[string]any{
			"status":       status,
			"processed_at": now.UTC(),
			"processed_by": adminID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRequestAlreadyProcessed
	}
	return nil
}

func loadPending(tx *gorm.DB, id string) (*entities.PurchaseRequest, error) {
	var request entities.PurchaseRequest
	if err := tx.Preload("MealPackage").Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	if request.Status != entities.PurchaseStatusPending {
		return nil, domain.ErrRequestAlreadyProcessed
	}
	return &request, nil
}

// ApprovePurchaseRequest issues a ledger entry from the request's template,
// marks the request approved and points the owner's active package at the new
// entry when none is designated yet. All of it commits or none of it does.
func (r *purchaseRepository) ApprovePurchaseRequest(ctx context.Context, id string, adminID uuid.UUID, now time.Time) (*entities.UserPackage, error) {
	var issued *entities.UserPackage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := loadPending(tx, id)
		if err != nil {
			return err
		}
		if request.MealPackage == nil {
			return domain.ErrPackageNotFound
		}

		if err := markProcessed(tx, id, entities.PurchaseStatusApproved, adminID, now); err != nil {
			return err
		}

		template := request.MealPackage
		packageType := template.PackageType
		if packageType == "" {
			packageType = entities.PackageTypeNormal
		}
		purchasedAt := now.UTC()
		issued = &entities.UserPackage{
			ID:             uuid.New(),
			UserID:         request.UserID,
			MealPackageID:  template.ID,
			PackageType:    packageType,
			RemainingTurns: template.Turns,
			PurchasedAt:    purchasedAt,
			ExpiresAt:      purchasedAt.AddDate(0, 0, template.ValidDays),
			IsActive:       true,
		}
		if err := tx.Omit("User", "MealPackage").Create(issued).Error; err != nil {
			return err
		}
		issued.MealPackage = template

		return tx.Model(&entities.User{}).
			Where("id = ? AND active_package_id IS NULL", request.UserID).
			Update("active_package_id", issued.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

func (r *purchaseRepository) RejectPurchaseRequest(ctx context.Context, id string, adminID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadPending(tx, id); err != nil {
			return err
		}
		return markProcessed(tx, id, entities.PurchaseStatusRejected, adminID, now)
	})
}
