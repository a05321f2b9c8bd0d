package api

import (
	"time"

	"github.com/fathima-sithara/uriel-service/internal/handlers"
	"github.com/fathima-sithara/uriel-service/internal/metrics"
	"github.com/fathima-sithara/uriel-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type Deps struct {
	Handler *handlers.Handler
	Metrics *metrics.Metrics
	Logger  *zap.SugaredLogger
	// DownloadLimiter guards the download counter; nil disables rate limiting.
	DownloadLimiter fiber.Handler
}

func NewServer(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Uriel API",
		Immutable:    true,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(d.Logger, d.Metrics))

	h := d.Handler
	app.Get("/", h.Root)
	app.Get("/test", h.Diagnostics)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	app.Post("/api/media", h.CreateMedia)
	app.Get("/api/media", h.ListMedia)
	app.Get("/api/media/top", h.Top)
	if d.DownloadLimiter != nil {
		app.Post("/api/media/:id/download", d.DownloadLimiter, h.Download)
	} else {
		app.Post("/api/media/:id/download", h.Download)
	}

	return app
}
