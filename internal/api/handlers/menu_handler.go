package handlers

import (
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetDailyMenus(c *fiber.Ctx) error
		GetTodayMenus(c *fiber.Ctx) error
		GetDailyMenu(c *fiber.Ctx) error
		PreviewMenu(c *fiber.Ctx) error
		CreateDailyMenu(c *fiber.Ctx) error
		UpdateDailyMenu(c *fiber.Ctx) error
		LockMenu(c *fiber.Ctx) error
		UnlockMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) GetDailyMenus(c *fiber.Ctx) error {
	req := new(domain.ListDailyMenusRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenus, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenus, err)
	}

	res, err := h.menuService.GetDailyMenus(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenus)
}

func (h *menuHandler) GetTodayMenus(c *fiber.Ctx) error {
	res, err := h.menuService.GetTodayMenus(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenus, err)
	}
	if len(res) == 0 {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageNoMenuToday)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenus)
}

func (h *menuHandler) GetDailyMenu(c *fiber.Ctx) error {
	res, err := h.menuService.GetDailyMenu(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenu)
}

func (h *menuHandler) PreviewMenu(c *fiber.Ctx) error {
	req := new(domain.PreviewMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPreviewMenu, err)
	}

	items := h.menuService.PreviewMenu(c.Context(), *req)
	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"count": len(items),
	}, fiber.StatusOK, domain.MessageSuccessPreviewMenu)
}

func (h *menuHandler) CreateDailyMenu(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	req := new(domain.CreateDailyMenuRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}

	res, err := h.menuService.CreateDailyMenu(c.Context(), *req, adminID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenu)
}

func (h *menuHandler) UpdateDailyMenu(c *fiber.Ctx) error {
	req := new(domain.UpdateDailyMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenu, err)
	}

	res, err := h.menuService.UpdateDailyMenu(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenu)
}

func (h *menuHandler) LockMenu(c *fiber.Ctx) error {
	res, err := h.menuService.LockMenu(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLockMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLockMenu)
}

func (h *menuHandler) UnlockMenu(c *fiber.Ctx) error {
	res, err := h.menuService.UnlockMenu(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUnlockMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUnlockMenu)
}
