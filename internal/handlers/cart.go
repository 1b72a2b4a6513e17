package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/utils"
)

// CartHandler manages session carts.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// GetCart lists the items of a session cart.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	items := []models.CartItem{}
	if err := h.db.WithContext(c.UserContext()).
		Where("session_id = ?", c.Params("session_id")).
		Order("created_at ASC").Order("id ASC").
		Limit(utils.SessionListWindow.Max).
		Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(items)
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required,size"`
	Color     string `json:"color" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,gte=1"`
	SessionID string `json:"session_id" validate:"required"`
}

// AddToCart adds a line to the cart, merging quantities when the same
// product, size and color are already present for the session.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var req cartItemRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	var item models.CartItem
	err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx.Statement.Context, tx, req.ProductID); err != nil {
			return err
		}

		err := tx.Where("product_id = ? AND size = ? AND color = ? AND session_id = ?",
			req.ProductID, req.Size, req.Color, req.SessionID).
			First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				ProductID: req.ProductID,
				Size:      models.Size(req.Size),
				Color:     req.Color,
				Quantity:  quantity,
				SessionID: req.SessionID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Create(&models.UserActivity{
			SessionID:    req.SessionID,
			ProductID:    req.ProductID,
			ActivityType: models.ActivityCartAdd,
		}).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(item)
}

// UpdateCartItem sets the quantity of a cart line.
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("quantity"))
	if raw == "" {
		return badRequest("quantity is required")
	}
	quantity, err := utils.QueryInt(c, "quantity", 0)
	if err != nil {
		return err
	}
	if quantity < 1 {
		return badRequest("quantity must be greater than or equal to 1")
	}

	db := h.db.WithContext(c.UserContext())
	var item models.CartItem
	if err := db.First(&item, "id = ?", c.Params("item_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Cart item not found")
		}
		return err
	}

	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return err
	}
	item.Quantity = quantity
	return c.JSON(item)
}

// RemoveCartItem deletes one cart line.
func (h *CartHandler) RemoveCartItem(c *fiber.Ctx) error {
	res := h.db.WithContext(c.UserContext()).Delete(&models.CartItem{}, "id = ?", c.Params("item_id"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Cart item not found")
	}
	return message(c, "Item removed from cart")
}

// ClearCart deletes every line of a session cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.db.WithContext(c.UserContext()).
		Where("session_id = ?", c.Params("session_id")).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return message(c, "Cart cleared")
}
