package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/utils"
)

// ActivityHandler records session interactions with products.
type ActivityHandler struct {
	db *gorm.DB
}

// NewActivityHandler constructs ActivityHandler.
func NewActivityHandler(db *gorm.DB) *ActivityHandler {
	return &ActivityHandler{db: db}
}

type activityRequest struct {
	SessionID      string                 `json:"session_id" validate:"required"`
	ActivityType   string                 `json:"activity_type" validate:"required,activity"`
	AdditionalData map[string]interface{} `json:"additional_data"`
}

var activityCounters = map[string]catalog.Counter{
	models.ActivityView:     catalog.ViewCount,
	models.ActivityWishlist: catalog.WishlistCount,
	models.ActivityPurchase: catalog.PurchaseCount,
}

// Track appends an activity and bumps the matching product counter.
func (h *ActivityHandler) Track(c *fiber.Ctx) error {
	productID := c.Params("id")

	var req activityRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	activity := models.UserActivity{
		SessionID:      req.SessionID,
		ProductID:      productID,
		ActivityType:   req.ActivityType,
		AdditionalData: req.AdditionalData,
	}

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx.Statement.Context, tx, productID); err != nil {
			return err
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		if counter, ok := activityCounters[req.ActivityType]; ok {
			return catalog.Bump(tx, productID, counter, 1)
		}
		return nil
	}); err != nil {
		return err
	}

	return message(c, "Activity tracked")
}
