package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessCreateOrder   = "order placed successfully"
	MessageSuccessUpdateOrder   = "order updated successfully"
	MessageSuccessGetOrders     = "orders retrieved successfully"
	MessageSuccessConfirmOrders = "orders confirmed"
	MessageSuccessGetCopyText   = "order digest generated"

	MessageFailedCreateOrder   = "failed to place order"
	MessageFailedGetOrders     = "failed to retrieve orders"
	MessageFailedConfirmOrders = "failed to confirm orders"
	MessageFailedGetCopyText   = "failed to generate order digest"

	ErrOrderNotFound     = NewServiceError("ORDER_NOT_FOUND", "order not found", http.StatusNotFound)
	ErrInvalidOrderType  = NewServiceError("INVALID_ORDER_TYPE", "order type must be normal or no-rice", http.StatusBadRequest)
	ErrNoMatchingPackage = NewServiceError("NO_MATCHING_PACKAGE", "you have no usable package for this order type", http.StatusBadRequest)
	ErrNotEnoughTurns    = NewServiceError("NOT_ENOUGH_TURNS", "not enough turns left for this order", http.StatusBadRequest)
	ErrInvalidMenuItem   = NewServiceError("INVALID_MENU_ITEM", "menu item does not belong to today's menu", http.StatusBadRequest)
)

type (
	OrderItemRequest struct {
		MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
		Note       string `json:"note" validate:"max=200"`
	}

	PlaceOrderRequest struct {
		Items     []OrderItemRequest `json:"items" validate:"dive"`
		OrderType string             `json:"order_type"`
	}

	OrderItemResponse struct {
		ID           string `json:"id"`
		MenuItemID   string `json:"menu_item_id"`
		MenuItemName string `json:"menu_item_name,omitempty"`
		Quantity     int    `json:"quantity"`
		Note         string `json:"note"`
	}

	OrderResponse struct {
		ID            string               `json:"id"`
		UserID        string               `json:"user_id"`
		UserName      string               `json:"user_name,omitempty"`
		UserEmail     string               `json:"user_email,omitempty"`
		DailyMenuID   string               `json:"daily_menu_id"`
		UserPackageID string               `json:"user_package_id"`
		OrderType     string               `json:"order_type"`
		IsConfirmed   bool                 `json:"is_confirmed"`
		OrderedAt     time.Time            `json:"ordered_at"`
		Items         []*OrderItemResponse `json:"items"`
	}

	PlaceOrderResponse struct {
		Order   *OrderResponse `json:"order"`
		Created bool           `json:"created"`
	}

	ConfirmOrdersRequest struct {
		MenuID string `json:"menu_id" validate:"required,uuid"`
	}

	ConfirmOrdersResponse struct {
		ConfirmedCount int `json:"confirmed_count"`
		TotalItems     int `json:"total_items"`
	}

	ItemCount struct {
		MenuItemID string `json:"menu_item_id,omitempty"`
		Name       string `json:"name"`
		Count      int    `json:"count"`
	}

	OrdersByDateResponse struct {
		Menu    *DailyMenuResponse `json:"menu"`
		Orders  []*OrderResponse   `json:"orders"`
		Summary []*ItemCount       `json:"summary"`
	}

	CopyTextResponse struct {
		CopyText         string       `json:"copy_text"`
		Summary          []*ItemCount `json:"summary"`
		TotalMeals       int          `json:"total_meals"`
		TotalNormalMeals int          `json:"total_normal_meals"`
		TotalNoRiceMeals int          `json:"total_no_rice_meals"`
		TotalOrders      int          `json:"total_orders"`
	}
)
