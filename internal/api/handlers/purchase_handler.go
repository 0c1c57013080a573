package handlers

import (
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/pkg/purchase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PurchaseHandler interface {
		CreatePurchaseRequest(c *fiber.Ctx) error
		GetMyPurchaseRequests(c *fiber.Ctx) error
		GetPurchaseRequests(c *fiber.Ctx) error
		ApprovePurchaseRequest(c *fiber.Ctx) error
		RejectPurchaseRequest(c *fiber.Ctx) error
	}

	purchaseHandler struct {
		purchaseService purchase.PurchaseService
		validator       *validator.Validate
	}
)

func NewPurchaseHandler(purchaseService purchase.PurchaseService, validator *validator.Validate) PurchaseHandler {
	return &purchaseHandler{
		purchaseService: purchaseService,
		validator:       validator,
	}
}

func (h *purchaseHandler) CreatePurchaseRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreatePurchaseRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePurchase, err)
	}

	res, err := h.purchaseService.CreatePurchaseRequest(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePurchase, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePurchase)
}

func (h *purchaseHandler) GetMyPurchaseRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.purchaseService.GetMyPurchaseRequests(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchases, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPurchases)
}

func (h *purchaseHandler) GetPurchaseRequests(c *fiber.Ctx) error {
	req := new(domain.ListPurchaseRequestsRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchases, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchases, err)
	}

	res, err := h.purchaseService.GetPurchaseRequests(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchases, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPurchases)
}

func (h *purchaseHandler) ApprovePurchaseRequest(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	res, err := h.purchaseService.ApprovePurchaseRequest(c.Context(), c.Params("id"), adminID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApprovePurchase, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApprovePurchase)
}

func (h *purchaseHandler) RejectPurchaseRequest(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	res, err := h.purchaseService.RejectPurchaseRequest(c.Context(), c.Params("id"), adminID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectPurchase, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectPurchase)
}
