package presenters

import (
	"errors"

	"Meal-Preorder-Backend/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	Response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
		Error   *Error `json:"error,omitempty"`
	}

	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse answers with the status carried by a domain.ServiceError.
// Validator failures become VALIDATION_ERROR; anything else unknown is logged
// and hidden behind INTERNAL_ERROR.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	var (
		se          *domain.ServiceError
		validateErr validator.ValidationErrors
		fiberErr    *fiber.Error
	)

	switch {
	case errors.As(err, &se):
		statusCode = se.StatusCode
	case errors.As(err, &validateErr):
		se = domain.ErrValidation.WithMessage(validateErr.Error())
		statusCode = se.StatusCode
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		se = domain.ErrValidation.WithMessage(fiberErr.Message)
		statusCode = se.StatusCode
	default:
		log.Errorf("%s: %v", message, err)
		se = domain.ErrInternal
		statusCode = se.StatusCode
	}

	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
		Error: &Error{
			Code:    se.Code,
			Message: se.Message,
		},
	})
}
