package serverutils

import (
	"errors"

	"exam-prep-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

// WriteError maps typed errors onto status codes. Anything unknown is a 500.
func WriteError(ctx *fiber.Ctx, err error) error {
	var (
		validationErr *dto.ValidationError
		mismatchErr   *dto.MismatchError
		notFoundErr   *dto.NotFoundError
		unauthErr     *dto.UnauthorizedError
		conflictErr   *dto.ConflictError
		fetchErr      *dto.FetchFailureError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return ctx.Status(fiber.StatusBadRequest).
			JSON(ErrorResponseWithData(fiber.StatusBadRequest, validationErr.Error(), validationErr.Fields))
	case errors.As(err, &mismatchErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, mismatchErr.Error()))
	case errors.As(err, &notFoundErr):
		return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, notFoundErr.Error()))
	case errors.As(err, &unauthErr):
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, unauthErr.Error()))
	case errors.As(err, &conflictErr):
		return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, conflictErr.Error()))
	case errors.As(err, &fetchErr):
		return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, fetchErr.Error()))
	case errors.As(err, &fiberErr):
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
