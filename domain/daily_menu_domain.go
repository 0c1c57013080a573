package domain

import (
	"net/http"
	"time"
)

const (
	DefaultBeginAt = "10:00"
	DefaultEndAt   = "10:45"
)

var (
	MessageSuccessGetMenus    = "menus retrieved successfully"
	MessageSuccessGetMenu     = "menu retrieved successfully"
	MessageNoMenuToday        = "no menu has been published today"
	MessageSuccessPreviewMenu = "menu preview generated"
	MessageSuccessCreateMenu  = "menu created successfully"
	MessageSuccessUpdateMenu  = "menu updated successfully"
	MessageSuccessLockMenu    = "menu locked"
	MessageSuccessUnlockMenu  = "menu unlocked"

	MessageFailedGetMenus    = "failed to retrieve menus"
	MessageFailedGetMenu     = "failed to retrieve menu"
	MessageFailedPreviewMenu = "failed to preview menu"
	MessageFailedCreateMenu  = "failed to create menu"
	MessageFailedUpdateMenu  = "failed to update menu"
	MessageFailedLockMenu    = "failed to lock menu"
	MessageFailedUnlockMenu  = "failed to unlock menu"

	ErrMenuNotFound    = NewServiceError("MENU_NOT_FOUND", "menu not found", http.StatusNotFound)
	ErrMenuLocked      = NewServiceError("MENU_LOCKED", "menu has been locked, orders are closed", http.StatusBadRequest)
	ErrInvalidMenuDate = NewServiceError("INVALID_MENU_DATE", "menu date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
	ErrMenuHasOrders   = NewServiceError("MENU_HAS_ORDERS", "menu already has orders, its dishes can no longer be changed", http.StatusBadRequest)
)

type (
	ParsedMenuItem struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	ListDailyMenusRequest struct {
		Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
	}

	PreviewMenuRequest struct {
		RawContent string `json:"raw_content" validate:"required"`
	}

	CreateDailyMenuRequest struct {
		RawContent string `json:"raw_content" validate:"required"`
		MenuDate   string `json:"menu_date" validate:"omitempty,datetime=2006-01-02"`
		BeginAt    string `json:"begin_at" validate:"omitempty,hhmm"`
		EndAt      string `json:"end_at" validate:"omitempty,hhmm"`
	}

	UpdateDailyMenuRequest struct {
		RawContent *string `json:"raw_content" validate:"omitempty,min=1"`
		BeginAt    *string `json:"begin_at" validate:"omitempty,hhmm"`
		EndAt      *string `json:"end_at" validate:"omitempty,hhmm"`
		IsLocked   *bool   `json:"is_locked"`
	}

	MenuItemResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	DailyMenuResponse struct {
		ID         string              `json:"id"`
		MenuDate   time.Time           `json:"menu_date"`
		RawContent string              `json:"raw_content"`
		BeginAt    string              `json:"begin_at"`
		EndAt      string              `json:"end_at"`
		IsLocked   bool                `json:"is_locked"`
		CanOrder   *bool               `json:"can_order,omitempty"`
		CreatedBy  string              `json:"created_by"`
		MenuItems  []*MenuItemResponse `json:"menu_items"`
		CreatedAt  time.Time           `json:"created_at"`
	}
)
