package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessCreatePurchase  = "purchase request sent, please wait for an admin to confirm the payment"
	MessageSuccessGetPurchases    = "purchase requests retrieved successfully"
	MessageSuccessApprovePurchase = "purchase request approved"
	MessageSuccessRejectPurchase  = "purchase request rejected"

	MessageFailedCreatePurchase  = "failed to create purchase request"
	MessageFailedGetPurchases    = "failed to retrieve purchase requests"
	MessageFailedApprovePurchase = "failed to approve purchase request"
	MessageFailedRejectPurchase  = "failed to reject purchase request"

	ErrRequestNotFound         = NewServiceError("REQUEST_NOT_FOUND", "purchase request not found", http.StatusNotFound)
	ErrRequestAlreadyExists    = NewServiceError("REQUEST_ALREADY_EXISTS", "you already have a pending request for this package", http.StatusBadRequest)
	ErrRequestAlreadyProcessed = NewServiceError("REQUEST_ALREADY_PROCESSED", "purchase request has already been processed", http.StatusBadRequest)
)

type (
	CreatePurchaseRequest struct {
		MealPackageID string `json:"meal_package_id" validate:"required,uuid"`
	}

	ListPurchaseRequestsRequest struct {
		Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	}

	PurchaseRequestResponse struct {
		ID          string               `json:"id"`
		UserID      string               `json:"user_id"`
		UserName    string               `json:"user_name,omitempty"`
		UserEmail   string               `json:"user_email,omitempty"`
		MealPackage *MealPackageResponse `json:"meal_package,omitempty"`
		Status      string               `json:"status"`
		RequestedAt time.Time            `json:"requested_at"`
		ProcessedAt *time.Time           `json:"processed_at,omitempty"`
		ProcessedBy string               `json:"processed_by,omitempty"`
	}

	ApprovePurchaseResponse struct {
		Request     *PurchaseRequestResponse `json:"request"`
		UserPackage *UserPackageResponse     `json:"user_package"`
	}
)
