package handlers

import (
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/pkg/statistics"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StatisticsHandler interface {
		GetRevenue(c *fiber.Ctx) error
		GetMenuItemStats(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	statisticsHandler struct {
		statisticsService statistics.StatisticsService
		validator         *validator.Validate
	}
)

func NewStatisticsHandler(statisticsService statistics.StatisticsService, validator *validator.Validate) StatisticsHandler {
	return &statisticsHandler{
		statisticsService: statisticsService,
		validator:         validator,
	}
}

func (h *statisticsHandler) GetRevenue(c *fiber.Ctx) error {
	req := new(domain.RevenueRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRevenue, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRevenue, err)
	}

	res, err := h.statisticsService.GetRevenue(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRevenue, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRevenue)
}

func (h *statisticsHandler) GetMenuItemStats(c *fiber.Ctx) error {
	req := new(domain.MenuItemStatsRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItemStats, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItemStats, err)
	}

	res, err := h.statisticsService.GetMenuItemStats(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItemStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetItemStats)
}

func (h *statisticsHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.statisticsService.GetDashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
