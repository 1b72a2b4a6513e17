package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/utils"
)

// ReviewHandler manages product reviews.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

var reviewOrders = map[string][]string{
	"newest":      {"created_at DESC"},
	"helpful":     {"helpful_count DESC", "created_at DESC"},
	"rating_high": {"rating DESC", "created_at DESC"},
	"rating_low":  {"rating ASC", "created_at DESC"},
}

// ListReviews returns a product's reviews.
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	ctx := c.UserContext()
	product, err := findProduct(ctx, h.db, c.Params("id"))
	if err != nil {
		return err
	}
	window, err := utils.ParseWindow(c, utils.ReviewWindow)
	if err != nil {
		return err
	}
	orders, ok := reviewOrders[c.Query("sort_by", "newest")]
	if !ok {
		return badRequest("sort_by must be one of: newest helpful rating_high rating_low")
	}

	query := h.db.WithContext(ctx).Where("product_id = ?", product.ID)
	for _, o := range orders {
		query = query.Order(o)
	}

	reviews := []models.Review{}
	if err := query.Order("id ASC").
		Limit(window.Limit).Offset(window.Skip).
		Find(&reviews).Error; err != nil {
		return err
	}
	return c.JSON(reviews)
}

type reviewRequest struct {
	UserName         string   `json:"user_name" validate:"required"`
	UserEmail        *string  `json:"user_email" validate:"omitempty,email"`
	Rating           int      `json:"rating" validate:"required,gte=1,lte=5"`
	Title            string   `json:"title"`
	Comment          string   `json:"comment"`
	VerifiedPurchase bool     `json:"verified_purchase"`
	Images           []string `json:"images"`
}

// CreateReview stores a review and refreshes the product's rating in the same transaction.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	productID := c.Params("id")

	var req reviewRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	review := models.Review{
		ProductID:        productID,
		UserName:         req.UserName,
		UserEmail:        req.UserEmail,
		Rating:           req.Rating,
		Title:            req.Title,
		Comment:          req.Comment,
		VerifiedPurchase: req.VerifiedPurchase,
		Images:           models.StringList(req.Images),
	}

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx.Statement.Context, tx, productID); err != nil {
			return err
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return catalog.RefreshRating(tx, productID)
	}); err != nil {
		return err
	}

	return c.JSON(review)
}

// MarkHelpful increments a review's helpful count.
func (h *ReviewHandler) MarkHelpful(c *fiber.Ctx) error {
	db := h.db.WithContext(c.UserContext())
	id := c.Params("id")

	res := db.Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Review not found")
	}

	var review models.Review
	if err := db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Review not found")
		}
		return err
	}
	return c.JSON(review)
}
