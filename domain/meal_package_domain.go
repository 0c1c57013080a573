package domain

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetMealPackages   = "meal packages retrieved successfully"
	MessageSuccessGetMealPackage    = "meal package retrieved successfully"
	MessageSuccessCreateMealPackage = "meal package created successfully"
	MessageSuccessUpdateMealPackage = "meal package updated successfully"
	MessageSuccessDeleteMealPackage = "meal package deleted successfully"
	MessageSuccessUploadQRCode      = "payment QR code uploaded successfully"

	MessageFailedGetMealPackages   = "failed to retrieve meal packages"
	MessageFailedGetMealPackage    = "failed to retrieve meal package"
	MessageFailedCreateMealPackage = "failed to create meal package"
	MessageFailedUpdateMealPackage = "failed to update meal package"
	MessageFailedDeleteMealPackage = "failed to delete meal package"
	MessageFailedUploadQRCode      = "failed to upload payment QR code"

	ErrPackageNotFound    = NewServiceError("PACKAGE_NOT_FOUND", "meal package not found", http.StatusNotFound)
	ErrPackageInUse       = NewServiceError("PACKAGE_IN_USE", "meal package is referenced by purchases and can no longer be changed", http.StatusBadRequest)
	ErrPackageUnavailable = NewServiceError("PACKAGE_UNAVAILABLE", "meal package is no longer usable", http.StatusBadRequest)
	ErrInvalidImageFormat = NewServiceError("INVALID_IMAGE_FORMAT", "invalid image format", http.StatusBadRequest)
)

type (
	MealPackageResponse struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Turns       int             `json:"turns"`
		Price       decimal.Decimal `json:"price"`
		ValidDays   int             `json:"valid_days"`
		PackageType string          `json:"package_type"`
		QRCodeImage string          `json:"qr_code_image,omitempty"`
		IsActive    bool            `json:"is_active"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	CreateMealPackageRequest struct {
		Name        string  `json:"name" validate:"required"`
		Turns       int     `json:"turns" validate:"required,min=1"`
		Price       float64 `json:"price" validate:"min=0"`
		ValidDays   int     `json:"valid_days" validate:"required,min=1"`
		PackageType string  `json:"package_type" validate:"omitempty,oneof=normal no-rice"`
		QRCodeImage string  `json:"qr_code_image" validate:"omitempty,url"`
	}

	UpdateMealPackageRequest struct {
		Name        *string  `json:"name" validate:"omitempty,min=1"`
		Turns       *int     `json:"turns" validate:"omitempty,min=1"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		ValidDays   *int     `json:"valid_days" validate:"omitempty,min=1"`
		PackageType *string  `json:"package_type" validate:"omitempty,oneof=normal no-rice"`
		QRCodeImage *string  `json:"qr_code_image" validate:"omitempty,url"`
		IsActive    *bool    `json:"is_active"`
	}

	ListMealPackagesRequest struct {
		IsActive *bool `query:"is_active"`
	}

	UploadQRCodeRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
