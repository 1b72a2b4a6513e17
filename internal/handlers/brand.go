package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/utils"
)

// BrandHandler manages brands and their product listings.
type BrandHandler struct {
	db     *gorm.DB
	engine *catalog.Engine
}

// NewBrandHandler constructs BrandHandler.
func NewBrandHandler(db *gorm.DB, engine *catalog.Engine) *BrandHandler {
	return &BrandHandler{db: db, engine: engine}
}

type brandRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	LogoURL     *string           `json:"logo_url" validate:"omitempty,url"`
	BrandStory  *string           `json:"brand_story"`
	Featured    bool              `json:"featured"`
	FoundedYear *int              `json:"founded_year" validate:"omitempty,gte=1800,lte=2100"`
	WebsiteURL  *string           `json:"website_url" validate:"omitempty,url"`
	SocialLinks map[string]string `json:"social_links"`
}

func (r brandRequest) apply(b *models.Brand) {
	b.Name = strings.TrimSpace(r.Name)
	b.Description = r.Description
	b.LogoURL = r.LogoURL
	b.BrandStory = r.BrandStory
	b.Featured = r.Featured
	b.FoundedYear = r.FoundedYear
	b.WebsiteURL = r.WebsiteURL
	b.SocialLinks = datatypes.JSONMap{}
	for k, v := range r.SocialLinks {
		b.SocialLinks[k] = v
	}
}

// ListBrands returns brands ordered by name, optionally only featured ones.
func (h *BrandHandler) ListBrands(c *fiber.Ctx) error {
	window, err := utils.ParseWindow(c, utils.ListingWindow)
	if err != nil {
		return err
	}
	featured, err := utils.QueryBool(c, "featured")
	if err != nil {
		return err
	}

	query := h.db.WithContext(c.UserContext()).Model(&models.Brand{})
	if featured != nil {
		query = query.Where("featured = ?", *featured)
	}

	brands := []models.Brand{}
	if err := query.Order("name ASC").Order("id ASC").
		Limit(window.Limit).Offset(window.Skip).
		Find(&brands).Error; err != nil {
		return err
	}

	return c.JSON(brands)
}

// GetBrand returns a single brand.
func (h *BrandHandler) GetBrand(c *fiber.Ctx) error {
	brand, err := h.find(c)
	if err != nil {
		return err
	}
	return c.JSON(brand)
}

// CreateBrand persists a new brand.
func (h *BrandHandler) CreateBrand(c *fiber.Ctx) error {
	var req brandRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	var brand models.Brand
	req.apply(&brand)
	if err := h.db.WithContext(c.UserContext()).Create(&brand).Error; err != nil {
		return err
	}

	return c.JSON(brand)
}

// UpdateBrand replaces a brand's fields. Products keep their copied brand name.
func (h *BrandHandler) UpdateBrand(c *fiber.Ctx) error {
	brand, err := h.find(c)
	if err != nil {
		return err
	}

	var req brandRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	req.apply(brand)
	if err := h.db.WithContext(c.UserContext()).Save(brand).Error; err != nil {
		return err
	}

	return c.JSON(brand)
}

// DeleteBrand removes a brand. Products referencing it are left untouched.
func (h *BrandHandler) DeleteBrand(c *fiber.Ctx) error {
	res := h.db.WithContext(c.UserContext()).Delete(&models.Brand{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Brand not found")
	}
	return message(c, "Brand deleted successfully")
}

// ListBrandProducts returns the products of one brand.
func (h *BrandHandler) ListBrandProducts(c *fiber.Ctx) error {
	brand, err := h.find(c)
	if err != nil {
		return err
	}
	window, err := utils.ParseWindow(c, utils.ListingWindow)
	if err != nil {
		return err
	}
	sort, err := parseSort(c.Query("sort_by"), catalog.SortRelevance)
	if err != nil {
		return err
	}

	products, err := h.engine.Find(c.UserContext(), catalog.Query{
		BrandID: brand.ID,
		Sort:    sort,
		Skip:    window.Skip,
		Limit:   window.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *BrandHandler) find(c *fiber.Ctx) (*models.Brand, error) {
	var brand models.Brand
	if err := h.db.WithContext(c.UserContext()).First(&brand, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Brand not found")
		}
		return nil, err
	}
	return &brand, nil
}
