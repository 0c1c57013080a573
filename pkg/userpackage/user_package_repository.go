package userpackage

import (
	"context"
	"time"

	"Meal-Preorder-Backend/entities"

	"gorm.io/gorm"
)

const usableCondition = "is_active = ? AND remaining_turns > 0 AND expires_at > ?"

type (
	UserPackageRepository interface {
		CreateUserPackage(ctx context.Context, userPackage *entities.UserPackage) error
		GetUserPackageByID(ctx context.Context, id string) (*entities.UserPackage, error)
		GetUserPackages(ctx context.Context, userID string) ([]*entities.UserPackage, error)
		GetUsableUserPackages(ctx context.Context, userID string, now time.Time) ([]*entities.UserPackage, error)
		FindChargeCandidate(ctx context.Context, userID string, packageType string, now time.Time) (*entities.UserPackage, error)
		GetActiveUserPackage(ctx context.Context, userID string) (*entities.UserPackage, error)
		SetActiveUserPackage(ctx context.Context, userID string, userPackageID string) error
		CountUsable(ctx context.Context, now time.Time) (int64, error)
	}

	userPackageRepository struct {
		db *gorm.DB
	}
)

func NewUserPackageRepository(db *gorm.DB) UserPackageRepository {
	return &userPackageRepository{
		db: db,
	}
}

func (r *userPackageRepository) CreateUserPackage(ctx context.Context, userPackage *entities.UserPackage) error {
	return r.db.WithContext(ctx).Omit("User", "MealPackage").Create(userPackage).Error
}

func (r *userPackageRepository) GetUserPackageByID(ctx context.Context, id string) (*entities.UserPackage, error) {
	var userPackage entities.UserPackage
	if err := r.db.WithContext(ctx).
		Preload("MealPackage").
		Where("id = ?", id).
		First(&userPackage).Error; err != nil {
		return nil, err
	}
	return &userPackage, nil
}

func (r *userPackageRepository) GetUserPackages(ctx context.Context, userID string) ([]*entities.UserPackage, error) {
	var userPackages []*entities.UserPackage
	if err := r.db.WithContext(ctx).
		Preload("MealPackage").
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&userPackages).Error; err != nil {
		return nil, err
	}
	return userPackages, nil
}

func (r *userPackageRepository) GetUsableUserPackages(ctx context.Context, userID string, now time.Time) ([]*entities.UserPackage, error) {
	var userPackages []*entities.UserPackage
	if err := r.db.WithContext(ctx).
		Preload("MealPackage").
		Where("user_id = ?", userID).
		Where(usableCondition, true, now.UTC()).
		Order("expires_at ASC").
		Order("id ASC").
		Find(&userPackages).Error; err != nil {
		return nil, err
	}
	return userPackages, nil
}

// FindChargeCandidate returns the usable package of the given type that
// expires first. Ties on expiry are broken by id.
func (r *userPackageRepository) FindChargeCandidate(ctx context.Context, userID string, packageType string, now time.Time) (*entities.UserPackage, error) {
	var userPackage entities.UserPackage
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND package_type = ?", userID, packageType).
		Where(usableCondition, true, now.UTC()).
		Order("expires_at ASC").
		Order("id ASC").
		First(&userPackage).Error; err != nil {
		return nil, err
	}
	return &userPackage, nil
}

func (r *userPackageRepository) GetActiveUserPackage(ctx context.Context, userID string) (*entities.UserPackage, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("id", "active_package_id").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return nil, err
	}
	if user.ActivePackageID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetUserPackageByID(ctx, user.ActivePackageID.String())
}

func (r *userPackageRepository) SetActiveUserPackage(ctx context.Context, userID string, userPackageID string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Update("active_package_id", userPackageID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userPackageRepository) CountUsable(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.UserPackage{}).
		Where(usableCondition, true, now.UTC()).
		Count(&count).Error
	return count, err
}
