package handlers

import (
	"errors"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"github.com/fathima-sithara/uriel-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const maxErrorDetail = 200

// errorKinds maps each error kind to its status and client message, checked in order.
var errorKinds = []struct {
	kind    error
	status  int
	message func(err error) string
}{
	{models.ErrValidation, fiber.StatusUnprocessableEntity, func(error) string { return "validation failed" }},
	{models.ErrStoreUnavailable, fiber.StatusInternalServerError, func(error) string { return "Database not configured" }},
	{models.ErrInvalidID, fiber.StatusBadRequest, func(err error) string { return err.Error() }},
	{models.ErrNotFound, fiber.StatusNotFound, func(error) string { return "Media not found" }},
}

// statusFor returns the HTTP status and message for err. Unknown errors are store failures.
func statusFor(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			return k.status, k.message(err)
		}
	}
	return fiber.StatusInternalServerError, utils.Truncate(err.Error(), maxErrorDetail)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return utils.JSONValidationError(c, status, msg, ve.Fields)
	}
	if status >= fiber.StatusInternalServerError {
		h.log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return utils.JSONError(c, status, msg)
}
