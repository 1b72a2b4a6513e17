package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/example/stylehub/internal/models"
)

// Engine turns Query values into ordered product pages.
type Engine struct {
	db *gorm.DB
}

// NewEngine constructs an Engine over db.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Find returns the products matching q, sorted and paged.
func (e *Engine) Find(ctx context.Context, q Query) ([]models.Product, error) {
	tx := e.filtered(ctx, q)
	for _, clause := range orderClauses(q.Sort) {
		tx = tx.Order(clause)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	products := []models.Product{}
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

// Count returns how many products match q, ignoring sort and paging.
func (e *Engine) Count(ctx context.Context, q Query) (int64, error) {
	var total int64
	if err := e.filtered(ctx, q).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

func (e *Engine) filtered(ctx context.Context, q Query) *gorm.DB {
	base := e.db.WithContext(ctx)
	tx := base.Model(&models.Product{})

	if cats := q.categories(); len(cats) > 0 {
		tx = tx.Where("category IN ?", cats)
	}
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if q.BrandID != "" {
		tx = tx.Where("brand_id = ?", q.BrandID)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if sizes := normalizeAll(q.Sizes); len(sizes) > 0 {
		tx = tx.Where("id IN (?)", attributeSubquery(base, models.AttributeSize, sizes))
	}
	if colors := normalizeAll(q.Colors); len(colors) > 0 {
		tx = tx.Where("id IN (?)", attributeSubquery(base, models.AttributeColor, colors))
	}
	if q.OnSale {
		tx = tx.Where("discount_percentage IS NOT NULL AND discount_percentage > 0")
	}
	if q.MinDiscount != nil {
		tx = tx.Where("discount_percentage >= ?", *q.MinDiscount)
	}
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		like := "%" + escapeLike(text) + "%"
		tags := attributeSubquery(base, models.AttributeTag, []string{text})
		tx = tx.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(brand_name) LIKE ? ESCAPE '\' OR id IN (?))`,
			like, like, like, tags,
		)
	}

	switch {
	case len(q.RelatedCategories) > 0 && len(q.RelatedBrands) > 0:
		tx = tx.Where("(category IN ? OR brand_id IN ?)", q.RelatedCategories, q.RelatedBrands)
	case len(q.RelatedCategories) > 0:
		tx = tx.Where("category IN ?", q.RelatedCategories)
	case len(q.RelatedBrands) > 0:
		tx = tx.Where("brand_id IN ?", q.RelatedBrands)
	}

	if len(q.ExcludeIDs) > 0 {
		tx = tx.Where("id NOT IN ?", q.ExcludeIDs)
	}

	return tx
}

func attributeSubquery(base *gorm.DB, kind string, values []string) *gorm.DB {
	return base.Model(&models.ProductAttribute{}).
		Select("product_id").
		Where("kind = ? AND value IN ?", kind, values)
}
