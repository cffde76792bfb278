package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/errx"
	"github.com/palazzem/cash-register/internal/core/push"
	"github.com/palazzem/cash-register/internal/core/receipts"
	"github.com/palazzem/cash-register/internal/core/worker"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
)

// toAppError translates domain errors into their HTTP status and message.
func toAppError(err error) *errx.AppError {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var pushErr *push.Error
	if errors.As(err, &pushErr) {
		return errx.New(err, http.StatusInternalServerError, pushErr.Detail())
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errx.New(err, http.StatusNotFound, "Not found.")
	case errors.Is(err, domain.ErrDuplicateProduct):
		return errx.New(err, http.StatusConflict, "product with this name already exists.")
	case errors.Is(err, domain.ErrProductNameEmpty),
		errors.Is(err, domain.ErrProductNameLong),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidRange):
		return errx.New(err, http.StatusBadRequest, err.Error())
	case errors.Is(err, worker.ErrQueueFull):
		return errx.New(err, http.StatusServiceUnavailable, "Backfill queue is full, retry later.")
	case errors.Is(err, domain.ErrIntegrity):
		return errx.New(err, http.StatusInternalServerError, "The receipt references data that no longer exists.")
	}
	return errx.Internal(err)
}

func writeError(c *fiber.Ctx, err error) error {
	var verr *receipts.ValidationError
	if errors.As(err, &verr) {
		return c.Status(http.StatusBadRequest).JSON(verr.Fields())
	}

	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(appErr.Status).JSON(fiber.Map{"detail": appErr.Message})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"detail": detail})
}
