package handlers

import (
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/gofiber/fiber/v2"
)

type (
	UserPackageHandler interface {
		GetMyPackages(c *fiber.Ctx) error
		GetMyActivePackages(c *fiber.Ctx) error
		SetActivePackage(c *fiber.Ctx) error
	}

	userPackageHandler struct {
		userPackageService userpackage.UserPackageService
	}
)

func NewUserPackageHandler(userPackageService userpackage.UserPackageService) UserPackageHandler {
	return &userPackageHandler{
		userPackageService: userPackageService,
	}
}

func (h *userPackageHandler) GetMyPackages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userPackageService.GetMyPackages(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMyPackages, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMyPackages)
}

func (h *userPackageHandler) GetMyActivePackages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userPackageService.GetMyActivePackages(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMyPackages, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMyPackages)
}

func (h *userPackageHandler) SetActivePackage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userPackageService.SetActivePackage(c.Context(), userID, c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetActivePackage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetActivePackage)
}
