package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/utils"
)

// ProductHandler serves catalog listings, search and product CRUD.
type ProductHandler struct {
	db     *gorm.DB
	engine *catalog.Engine
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB, engine *catalog.Engine) *ProductHandler {
	return &ProductHandler{db: db, engine: engine}
}

// ListProducts returns products filtered by category, featured flag and brand.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	window, err := utils.ParseWindow(c, utils.ListingWindow)
	if err != nil {
		return err
	}
	category, err := parseCategory(c.Query("category"))
	if err != nil {
		return err
	}
	featured, err := utils.QueryBool(c, "featured")
	if err != nil {
		return err
	}
	sort, err := parseSort(c.Query("sort_by"), catalog.SortRelevance)
	if err != nil {
		return err
	}

	return h.list(c, catalog.Query{
		Category: category,
		Featured: featured,
		BrandID:  strings.TrimSpace(c.Query("brand_id")),
		Sort:     sort,
		Skip:     window.Skip,
		Limit:    window.Limit,
	})
}

// ListGroup serves the men's and women's listings.
func (h *ProductHandler) ListGroup(group models.CategoryGroup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		window, err := utils.ParseWindow(c, utils.ListingWindow)
		if err != nil {
			return err
		}
		category, err := parseCategory(c.Query("category"))
		if err != nil {
			return err
		}
		sort, err := parseSort(c.Query("sort_by"), catalog.SortFeatured)
		if err != nil {
			return err
		}
		minPrice, err := queryPrice(c, "min_price")
		if err != nil {
			return err
		}
		maxPrice, err := queryPrice(c, "max_price")
		if err != nil {
			return err
		}

		return h.list(c, catalog.Query{
			Group:    group,
			Category: category,
			BrandID:  strings.TrimSpace(c.Query("brand_id")),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Sizes:    utils.QueryList(c, "sizes"),
			Colors:   utils.QueryList(c, "colors"),
			Sort:     sort,
			Skip:     window.Skip,
			Limit:    window.Limit,
		})
	}
}

// ListSale returns discounted products.
func (h *ProductHandler) ListSale(c *fiber.Ctx) error {
	window, err := utils.ParseWindow(c, utils.ListingWindow)
	if err != nil {
		return err
	}
	category, err := parseCategory(c.Query("category"))
	if err != nil {
		return err
	}
	sort, err := parseSort(c.Query("sort_by"), catalog.SortDiscountHigh)
	if err != nil {
		return err
	}
	minDiscount, err := utils.QueryFloat(c, "min_discount")
	if err != nil {
		return err
	}

	return h.list(c, catalog.Query{
		Category:    category,
		OnSale:      true,
		MinDiscount: minDiscount,
		Sort:        sort,
		Skip:        window.Skip,
		Limit:       window.Limit,
	})
}

type searchRequest struct {
	Query    string           `json:"query"`
	Category string           `json:"category" validate:"omitempty,category"`
	BrandID  string           `json:"brand_id"`
	MinPrice *decimal.Decimal `json:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price"`
	Sizes    []string         `json:"sizes" validate:"dive,size"`
	Colors   []string         `json:"colors"`
	Featured *bool            `json:"featured"`
	OnSale   bool             `json:"on_sale"`
	SortBy   string           `json:"sort_by"`
	Limit    int              `json:"limit"`
	Skip     int              `json:"skip"`
}

// Search runs a full filter/sort query taken from the request body.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}
	window, err := utils.ListingWindow.Clamp(req.Skip, req.Limit)
	if err != nil {
		return err
	}
	sort, err := parseSort(req.SortBy, catalog.SortRelevance)
	if err != nil {
		return err
	}

	return h.list(c, catalog.Query{
		Text:     req.Query,
		Category: models.Category(req.Category),
		BrandID:  strings.TrimSpace(req.BrandID),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Sizes:    req.Sizes,
		Colors:   req.Colors,
		Featured: req.Featured,
		OnSale:   req.OnSale,
		Sort:     sort,
		Skip:     window.Skip,
		Limit:    window.Limit,
	})
}

// Suggestions returns name and brand completions for a prefix.
func (h *ProductHandler) Suggestions(c *fiber.Ctx) error {
	suggestions, err := h.engine.Suggestions(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

// Trending returns the most viewed products. The period query parameter is
// accepted for client compatibility; counters are not bucketed by time.
func (h *ProductHandler) Trending(c *fiber.Ctx) error {
	window, err := utils.ParseWindow(c, utils.TrendingWindow)
	if err != nil {
		return err
	}

	products, err := h.engine.Trending(c.UserContext(), window.Limit)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// Recommended returns products related to what the session viewed.
func (h *ProductHandler) Recommended(c *fiber.Ctx) error {
	window, err := utils.ParseWindow(c, utils.PersonalWindow)
	if err != nil {
		return err
	}
	products, err := h.engine.Recommended(c.UserContext(), c.Params("session_id"), window.Limit)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// RecentlyViewed returns the session's viewed products, newest first.
func (h *ProductHandler) RecentlyViewed(c *fiber.Ctx) error {
	window, err := utils.ParseWindow(c, utils.PersonalWindow)
	if err != nil {
		return err
	}
	products, err := h.engine.RecentlyViewed(c.UserContext(), c.Params("session_id"), window.Limit)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GetProduct loads a single product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := findProduct(c.UserContext(), h.db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

type productRequest struct {
	Name               string          `json:"name" validate:"required"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Category           string          `json:"category" validate:"required,category"`
	BrandID            *string         `json:"brand_id"`
	Sizes              []string        `json:"sizes" validate:"dive,size"`
	Colors             []string        `json:"colors"`
	Images             []string        `json:"images"`
	Tags               []string        `json:"tags"`
	Materials          []string        `json:"materials"`
	StockQuantity      int             `json:"stock_quantity" validate:"gte=0"`
	Featured           bool            `json:"featured"`
	DiscountPercentage *float64        `json:"discount_percentage" validate:"omitempty,gt=0,lte=100"`
}

func (r productRequest) apply(p *models.Product) {
	p.Name = strings.TrimSpace(r.Name)
	p.Description = r.Description
	p.Price = r.Price
	p.Category = models.Category(r.Category)
	p.Sizes = models.StringList(r.Sizes)
	p.Colors = models.StringList(r.Colors)
	p.Images = models.StringList(r.Images)
	p.Tags = models.StringList(r.Tags)
	p.Materials = models.StringList(r.Materials)
	p.StockQuantity = r.StockQuantity
	p.Featured = r.Featured
	p.DiscountPercentage = r.DiscountPercentage
}

func (h *ProductHandler) parseProduct(c *fiber.Ctx) (productRequest, error) {
	var req productRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return req, err
	}
	if req.Price.IsNegative() {
		return req, badRequest("field 'price' must be greater than or equal to 0")
	}
	return req, nil
}

// resolveBrand checks the brand reference and copies its name onto the product.
func resolveBrand(tx *gorm.DB, p *models.Product, brandID *string) error {
	if brandID == nil || strings.TrimSpace(*brandID) == "" {
		p.BrandID = nil
		p.BrandName = ""
		return nil
	}

	var brand models.Brand
	if err := tx.First(&brand, "id = ?", *brandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Brand not found")
		}
		return err
	}
	p.BrandID = &brand.ID
	p.BrandName = brand.Name
	return nil
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	req, err := h.parseProduct(c)
	if err != nil {
		return err
	}

	var product models.Product
	req.apply(&product)

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := resolveBrand(tx, &product, req.BrandID); err != nil {
			return err
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return catalog.SyncAttributes(tx, &product)
	}); err != nil {
		return err
	}

	return c.JSON(product)
}

// UpdateProduct replaces the editable fields of a product. Derived counters are kept.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	existing, err := findProduct(c.UserContext(), h.db, c.Params("id"))
	if err != nil {
		return err
	}

	req, err := h.parseProduct(c)
	if err != nil {
		return err
	}
	req.apply(existing)

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := resolveBrand(tx, existing, req.BrandID); err != nil {
			return err
		}
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		return catalog.SyncAttributes(tx, existing)
	}); err != nil {
		return err
	}

	return c.JSON(existing)
}

// DeleteProduct removes a product and its attribute index.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("Product not found")
		}
		return catalog.DeleteAttributes(tx, id)
	}); err != nil {
		return err
	}

	return message(c, "Product deleted successfully")
}

func (h *ProductHandler) list(c *fiber.Ctx, q catalog.Query) error {
	ctx := c.UserContext()

	total, err := h.engine.Count(ctx, q)
	if err != nil {
		return err
	}
	products, err := h.engine.Find(ctx, q)
	if err != nil {
		return err
	}

	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(products)
}

func parseCategory(raw string) (models.Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	category := models.Category(raw)
	if !category.Valid() {
		return "", badRequest("invalid category: " + raw)
	}
	return category, nil
}

func parseSort(raw string, fallback catalog.SortOption) (catalog.SortOption, error) {
	sort, err := catalog.ParseSort(raw, fallback)
	if err != nil {
		return "", badRequest("invalid sort_by: " + raw)
	}
	return sort, nil
}

func queryPrice(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, badRequest(key + " must be a number")
	}
	return &price, nil
}
