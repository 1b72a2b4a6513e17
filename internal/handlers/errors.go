package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/models"
)

// ErrorHandler renders every error as {"detail": "..."}. Errors that are not
// fiber errors are logged and reported as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		detail = fe.Message
	} else {
		slog.Error("request failed",
			"component", "http",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

func notFound(msg string) error {
	return fiber.NewError(fiber.StatusNotFound, msg)
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

// findProduct loads a product or returns a 404 fiber error.
func findProduct(ctx context.Context, db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, err
	}
	return &product, nil
}
