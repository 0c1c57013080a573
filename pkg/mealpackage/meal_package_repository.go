package mealpackage

import (
	"context"

	"Meal-Preorder-Backend/entities"

	"gorm.io/gorm"
)

type (
	MealPackageRepository interface {
		CreateMealPackage(ctx context.Context, mealPackage *entities.MealPackage) error
		GetMealPackages(ctx context.Context, isActive *bool) ([]*entities.MealPackage, error)
		GetMealPackageByID(ctx context.Context, id string) (*entities.MealPackage, error)
		UpdateMealPackage(ctx context.Context, mealPackage *entities.MealPackage) error
		DeleteMealPackage(ctx context.Context, id string) error
		IsReferenced(ctx context.Context, id string) (bool, error)
	}

	mealPackageRepository struct {
		db *gorm.DB
	}
)

func NewMealPackageRepository(db *gorm.DB) MealPackageRepository {
	return &mealPackageRepository{
		db: db,
	}
}

func (r *mealPackageRepository) CreateMealPackage(ctx context.Context, mealPackage *entities.MealPackage) error {
	return r.db.WithContext(ctx).Create(mealPackage).Error
}

func (r *mealPackageRepository) GetMealPackages(ctx context.Context, isActive *bool) ([]*entities.MealPackage, error) {
	var packages []*entities.MealPackage
	query := r.db.WithContext(ctx)
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	if err := query.
		Order("turns ASC").
		Order("package_type ASC").
		Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *mealPackageRepository) GetMealPackageByID(ctx context.Context, id string) (*entities.MealPackage, error) {
	var mealPackage entities.MealPackage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mealPackage).Error; err != nil {
		return nil, err
	}
	return &mealPackage, nil
}

func (r *mealPackageRepository) UpdateMealPackage(ctx context.Context, mealPackage *entities.MealPackage) error {
	return r.db.WithContext(ctx).Save(mealPackage).Error
}

func (r *mealPackageRepository) DeleteMealPackage(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MealPackage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsReferenced reports whether any purchase request or ledger entry points at the template.
func (r *mealPackageRepository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var purchases int64
	if err := r.db.WithContext(ctx).
		Model(&entities.PurchaseRequest{}).
		Where("meal_package_id = ?", id).
		Count(&purchases).Error; err != nil {
		return false, err
	}
	if purchases > 0 {
		return true, nil
	}

	var ledger int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UserPackage{}).
		Where("meal_package_id = ?", id).
		Count(&ledger).Error; err != nil {
		return false, err
	}
	return ledger > 0, nil
}
