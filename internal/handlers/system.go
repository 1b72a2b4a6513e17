package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/database"
	"github.com/example/stylehub/internal/seed"
)

// SystemHandler serves the sample data loader and health check.
type SystemHandler struct {
	db *gorm.DB
}

// NewSystemHandler constructs SystemHandler.
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// InitData loads the sample catalog when no products exist yet.
func (h *SystemHandler) InitData(c *fiber.Ctx) error {
	res, err := seed.Load(c.UserContext(), h.db)
	if err != nil {
		return err
	}
	if res.Skipped {
		return message(c, "Sample data already exists")
	}
	return message(c, fmt.Sprintf("Initialized %d sample products", res.Products))
}

// Health reports liveness and database reachability.
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unavailable",
			"database": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}
