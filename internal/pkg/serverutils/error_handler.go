package serverutils

import (
	"errors"

	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindForeignKey:
		return fiber.StatusBadRequest
	case apperror.KindInvalidCredentials, apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns any error returned further down the chain into
// the JSON error body. Internal failures are logged and answered generically.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
			}
			appErr = apperror.NewInternalError(internalErrorMessage, err)
		}

		status := StatusOf(appErr.Kind)
		if status == fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			return ctx.Status(status).JSON(ErrorResponse(status, internalErrorMessage).WithDetail(appErr.Detail))
		}

		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message).WithDetail(appErr.Detail))
	}
}
