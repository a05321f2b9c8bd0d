package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"github.com/fathima-sithara/uriel-service/internal/repository"
	service "github.com/fathima-sithara/uriel-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *service.MediaService
	health *service.HealthService
	log    *zap.SugaredLogger
}

func NewHandler(svc *service.MediaService, health *service.HealthService, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, health: health, log: log}
}

// GET /
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Uriel API running"})
}

// GET /test
func (h *Handler) Diagnostics(c *fiber.Ctx) error {
	return c.JSON(h.health.Diagnose(c.UserContext()))
}

// POST /api/media
func (h *Handler) CreateMedia(c *fiber.Ctx) error {
	var req models.MediaCreate
	if err := c.BodyParser(&req); err != nil {
		return h.writeError(c, bodyError(err))
	}
	id, err := h.svc.Create(c.UserContext(), &req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GET /api/media?kind=&q=
func (h *Handler) ListMedia(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext(), repository.Filter{
		Kind:  c.Query("kind"),
		Query: c.Query("q"),
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(items)
}

// POST /api/media/:id/download
func (h *Handler) Download(c *fiber.Ctx) error {
	m, err := h.svc.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(m)
}

// GET /api/media/top?limit=
func (h *Handler) Top(c *fiber.Ctx) error {
	limit := service.DefaultTopLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return h.writeError(c, models.FieldInvalid("limit", "int", "limit must be an integer"))
		}
		limit = n
	}
	items, err := h.svc.Top(c.UserContext(), limit)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(items)
}

// bodyError turns a decode failure into a validation error naming the field when known.
func bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.FieldInvalid(typeErr.Field, "type", "must be of type "+typeErr.Type.String())
	}
	return models.FieldInvalid("body", "json", "request body must be a JSON object")
}
