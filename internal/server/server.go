package server

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/view"
)

// Slots is the read side of the view store.
type Slots interface {
	Get(slot view.Slot) (string, bool)
	Snapshot() (map[view.Slot]string, uint64)
	Version() uint64
}

type slotsResponse struct {
	Version uint64               `json:"version"`
	Slots   map[view.Slot]string `json:"slots"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   uint64    `json:"version"`
}

// New builds the HTTP surface: rendered view slots, health, metrics and pprof.
func New(slots Slots, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(pprof.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Version:   slots.Version(),
		})
	})

	app.Get("/slots", func(c *fiber.Ctx) error {
		content, version := slots.Snapshot()
		return c.JSON(slotsResponse{Version: version, Slots: content})
	})

	app.Get("/slots/:slot", func(c *fiber.Ctx) error {
		name := c.Params("slot")
		content, ok := slots.Get(view.Slot(name))
		if !ok {
			logger.Debug("unknown view slot requested", zap.String("slot", name))
			return fiber.NewError(fiber.StatusNotFound, "unknown view slot")
		}
		c.Type("html", "utf-8")
		return c.SendString(content)
	})

	return app
}
