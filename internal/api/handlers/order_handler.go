package handlers

import (
	"fmt"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/pkg/order"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		PlaceOrder(c *fiber.Ctx) error
		GetMyOrders(c *fiber.Ctx) error
		GetMyTodayOrder(c *fiber.Ctx) error
		GetOrdersByDate(c *fiber.Ctx) error
		ConfirmAllOrders(c *fiber.Ctx) error
		GetCopyText(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) PlaceOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.PlaceOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.orderService.PlaceOrder(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}
	if res.Created {
		return presenters.SuccessResponse(c, res.Order, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
	}
	return presenters.SuccessResponse(c, res.Order, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *orderHandler) GetMyOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.orderService.GetMyOrders(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetMyTodayOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.orderService.GetMyTodayOrder(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrdersByDate(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrdersByDate(c.Context(), c.Params("date"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) ConfirmAllOrders(c *fiber.Ctx) error {
	req := new(domain.ConfirmOrdersRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmOrders, err)
	}

	res, err := h.orderService.ConfirmAllOrders(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK,
		fmt.Sprintf("%s: %d orders, %d items", domain.MessageSuccessConfirmOrders, res.ConfirmedCount, res.TotalItems))
}

func (h *orderHandler) GetCopyText(c *fiber.Ctx) error {
	res, err := h.orderService.GetCopyText(c.Context(), c.Params("menuId"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCopyText, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCopyText)
}
