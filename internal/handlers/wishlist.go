package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/utils"
)

// WishlistHandler manages session wishlists.
type WishlistHandler struct {
	db *gorm.DB
}

// NewWishlistHandler constructs WishlistHandler.
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{db: db}
}

type wishlistRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

// wishlistEntry is a wishlist row together with the product it points at.
type wishlistEntry struct {
	models.WishlistItem
	Product models.Product `json:"product"`
}

// AddToWishlist stores a (session, product) pair. Duplicates are rejected.
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	var req wishlistRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	item := models.WishlistItem{SessionID: req.SessionID, ProductID: req.ProductID}
	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx.Statement.Context, tx, req.ProductID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.WishlistItem{}).
			Where("session_id = ? AND product_id = ?", req.SessionID, req.ProductID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return badRequest("Product already in wishlist")
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if err := catalog.Bump(tx, req.ProductID, catalog.WishlistCount, 1); err != nil {
			return err
		}
		return tx.Create(&models.UserActivity{
			SessionID:    req.SessionID,
			ProductID:    req.ProductID,
			ActivityType: models.ActivityWishlist,
		}).Error
	}); err != nil {
		return err
	}

	return c.JSON(item)
}

// GetWishlist lists a session's wishlist, newest first. Entries whose product
// was deleted are left out.
func (h *WishlistHandler) GetWishlist(c *fiber.Ctx) error {
	db := h.db.WithContext(c.UserContext())

	var items []models.WishlistItem
	if err := db.Where("session_id = ?", c.Params("session_id")).
		Order("added_at DESC").Order("id ASC").
		Limit(utils.SessionListWindow.Max).
		Find(&items).Error; err != nil {
		return err
	}

	entries := make([]wishlistEntry, 0, len(items))
	if len(items) == 0 {
		return c.JSON(entries)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		if p, ok := byID[item.ProductID]; ok {
			entries = append(entries, wishlistEntry{WishlistItem: item, Product: p})
		}
	}
	return c.JSON(entries)
}

// RemoveFromWishlist deletes a pair and lowers the product's wishlist count.
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	productID := c.Params("product_id")

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ? AND product_id = ?", sessionID, productID).
			Delete(&models.WishlistItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("Item not found in wishlist")
		}
		err := catalog.Bump(tx, productID, catalog.WishlistCount, -1)
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil
		}
		return err
	}); err != nil {
		return err
	}

	return message(c, "Item removed from wishlist")
}
