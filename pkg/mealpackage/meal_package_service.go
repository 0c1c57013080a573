package mealpackage

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const qrCodeFolder = "qr-codes"

type (
	MealPackageService interface {
		GetMealPackages(ctx context.Context, req domain.ListMealPackagesRequest) ([]*domain.MealPackageResponse, error)
		GetMealPackage(ctx context.Context, id string) (*domain.MealPackageResponse, error)
		CreateMealPackage(ctx context.Context, req domain.CreateMealPackageRequest) (*domain.MealPackageResponse, error)
		UpdateMealPackage(ctx context.Context, id string, req domain.UpdateMealPackageRequest) (*domain.MealPackageResponse, error)
		DeleteMealPackage(ctx context.Context, id string) error
		UploadQRCode(ctx context.Context, id string, file *multipart.FileHeader) (*domain.MealPackageResponse, error)
	}

	mealPackageService struct {
		mealPackageRepository MealPackageRepository
		s3                    storage.AwsS3
	}
)

func NewMealPackageService(mealPackageRepository MealPackageRepository, s3 storage.AwsS3) MealPackageService {
	return &mealPackageService{
		mealPackageRepository: mealPackageRepository,
		s3:                    s3,
	}
}

func ToMealPackageResponse(p *entities.MealPackage) *domain.MealPackageResponse {
	if p == nil {
		return nil
	}
	return &domain.MealPackageResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Turns:       p.Turns,
		Price:       p.Price,
		ValidDays:   p.ValidDays,
		PackageType: p.PackageType,
		QRCodeImage: p.QRCodeImage,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func (s *mealPackageService) getMealPackage(ctx context.Context, id string) (*entities.MealPackage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPackageNotFound
	}
	p, err := s.mealPackageRepository.GetMealPackageByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *mealPackageService) GetMealPackages(ctx context.Context, req domain.ListMealPackagesRequest) ([]*domain.MealPackageResponse, error) {
	packages, err := s.mealPackageRepository.GetMealPackages(ctx, req.IsActive)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.MealPackageResponse, 0, len(packages))
	for _, p := range packages {
		result = append(result, ToMealPackageResponse(p))
	}
	return result, nil
}

func (s *mealPackageService) GetMealPackage(ctx context.Context, id string) (*domain.MealPackageResponse, error) {
	p, err := s.getMealPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMealPackageResponse(p), nil
}

func (s *mealPackageService) CreateMealPackage(ctx context.Context, req domain.CreateMealPackageRequest) (*domain.MealPackageResponse, error) {
	packageType := req.PackageType
	if packageType == "" {
		packageType = entities.PackageTypeNormal
	}

	p := &entities.MealPackage{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Turns:       req.Turns,
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		ValidDays:   req.ValidDays,
		PackageType: packageType,
		QRCodeImage: req.QRCodeImage,
		IsActive:    true,
	}
	if err := s.mealPackageRepository.CreateMealPackage(ctx, p); err != nil {
		return nil, err
	}
	return ToMealPackageResponse(p), nil
}

// UpdateMealPackage keeps the commercial terms frozen once a purchase refers
// to the template. The active flag and QR image stay editable.
func (s *mealPackageService) UpdateMealPackage(ctx context.Context, id string, req domain.UpdateMealPackageRequest) (*domain.MealPackageResponse, error) {
	p, err := s.getMealPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	termsChanged := (req.Name != nil && strings.TrimSpace(*req.Name) != p.Name) ||
		(req.Turns != nil && *req.Turns != p.Turns) ||
		(req.Price != nil && !decimal.NewFromFloat(*req.Price).Round(2).Equal(p.Price)) ||
		(req.ValidDays != nil && *req.ValidDays != p.ValidDays) ||
		(req.PackageType != nil && *req.PackageType != p.PackageType)

	if termsChanged {
		referenced, err := s.mealPackageRepository.IsReferenced(ctx, id)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, domain.ErrPackageInUse
		}
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Turns != nil {
		p.Turns = *req.Turns
	}
	if req.Price != nil {
		p.Price = decimal.NewFromFloat(*req.Price).Round(2)
	}
	if req.ValidDays != nil {
		p.ValidDays = *req.ValidDays
	}
	if req.PackageType != nil {
		p.PackageType = *req.PackageType
	}
	if req.QRCodeImage != nil {
		p.QRCodeImage = *req.QRCodeImage
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.mealPackageRepository.UpdateMealPackage(ctx, p); err != nil {
		return nil, err
	}
	return ToMealPackageResponse(p), nil
}

func (s *mealPackageService) DeleteMealPackage(ctx context.Context, id string) error {
	p, err := s.getMealPackage(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.mealPackageRepository.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrPackageInUse
	}

	if err := s.mealPackageRepository.DeleteMealPackage(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPackageNotFound
		}
		return err
	}

	if key := s.s3.GetObjectKeyFromLink(p.QRCodeImage); key != "" {
		if err := s.s3.DeleteFile(key); err != nil {
			log.Errorf("failed to delete QR code %s: %v", key, err)
		}
	}
	return nil
}

func (s *mealPackageService) UploadQRCode(ctx context.Context, id string, file *multipart.FileHeader) (*domain.MealPackageResponse, error) {
	p, err := s.getMealPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	var objectKey string
	if key := s.s3.GetObjectKeyFromLink(p.QRCodeImage); key != "" {
		objectKey, err = s.s3.UpdateFile(key, file, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(p.ID.String(), file, qrCodeFolder, storage.AllowImage...)
	}
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return nil, domain.ErrInvalidImageFormat
		}
		return nil, err
	}

	p.QRCodeImage = s.s3.GetPublicLinkKey(objectKey)
	if err := s.mealPackageRepository.UpdateMealPackage(ctx, p); err != nil {
		return nil, err
	}
	return ToMealPackageResponse(p), nil
}
