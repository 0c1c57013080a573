package handlers

import (
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/pkg/mealpackage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MealPackageHandler interface {
		GetMealPackages(c *fiber.Ctx) error
		GetMealPackage(c *fiber.Ctx) error
		CreateMealPackage(c *fiber.Ctx) error
		UpdateMealPackage(c *fiber.Ctx) error
		DeleteMealPackage(c *fiber.Ctx) error
		UploadQRCode(c *fiber.Ctx) error
	}

	mealPackageHandler struct {
		mealPackageService mealpackage.MealPackageService
		validator          *validator.Validate
	}
)

func NewMealPackageHandler(mealPackageService mealpackage.MealPackageService, validator *validator.Validate) MealPackageHandler {
	return &mealPackageHandler{
		mealPackageService: mealPackageService,
		validator:          validator,
	}
}

// GetMealPackages lists the catalog. Only admins may see retired templates.
func (h *mealPackageHandler) GetMealPackages(c *fiber.Ctx) error {
	req := new(domain.ListMealPackagesRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMealPackages, domain.InvalidRequest(err))
	}
	if role, _ := c.Locals("role").(string); role != domain.RoleAdmin {
		active := true
		req.IsActive = &active
	}

	res, err := h.mealPackageService.GetMealPackages(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMealPackages, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealPackages)
}

func (h *mealPackageHandler) GetMealPackage(c *fiber.Ctx) error {
	res, err := h.mealPackageService.GetMealPackage(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMealPackage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealPackage)
}

func (h *mealPackageHandler) CreateMealPackage(c *fiber.Ctx) error {
	req := new(domain.CreateMealPackageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMealPackage, err)
	}

	res, err := h.mealPackageService.CreateMealPackage(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMealPackage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMealPackage)
}

func (h *mealPackageHandler) UpdateMealPackage(c *fiber.Ctx) error {
	req := new(domain.UpdateMealPackageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMealPackage, err)
	}

	res, err := h.mealPackageService.UpdateMealPackage(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMealPackage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMealPackage)
}

func (h *mealPackageHandler) DeleteMealPackage(c *fiber.Ctx) error {
	if err := h.mealPackageService.DeleteMealPackage(c.Context(), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMealPackage, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMealPackage)
}

func (h *mealPackageHandler) UploadQRCode(c *fiber.Ctx) error {
	req := new(domain.UploadQRCodeRequest)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.InvalidRequest(err))
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadQRCode, err)
	}

	res, err := h.mealPackageService.UploadQRCode(c.Context(), c.Params("id"), req.Image)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadQRCode, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadQRCode)
}
