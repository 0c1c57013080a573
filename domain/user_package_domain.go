package domain

import "time"

var (
	MessageSuccessGetMyPackages    = "packages retrieved successfully"
	MessageSuccessSetActivePackage = "package set as default"
	MessageFailedGetMyPackages     = "failed to retrieve packages"
	MessageFailedSetActivePackage  = "failed to set default package"
)

type UserPackageResponse struct {
	ID              string    `json:"id"`
	MealPackageID   string    `json:"meal_package_id"`
	MealPackageName string    `json:"meal_package_name,omitempty"`
	PackageType     string    `json:"package_type"`
	RemainingTurns  int       `json:"remaining_turns"`
	PurchasedAt     time.Time `json:"purchased_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	IsActive        bool      `json:"is_active"`
	IsUsable        bool      `json:"is_usable"`
}
