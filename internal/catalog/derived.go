package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/example/stylehub/internal/models"
)

// Counter names a product popularity column adjusted by Bump.
type Counter string

const (
	ViewCount     Counter = "view_count"
	PurchaseCount Counter = "purchase_count"
	WishlistCount Counter = "wishlist_count"
)

// ErrProductNotFound is returned when a derived-field update targets a missing product.
var ErrProductNotFound = errors.New("product not found")

// RefreshRating recomputes average_rating and review_count from the reviews table.
func RefreshRating(tx *gorm.DB, productID string) error {
	var stats struct {
		Average sql.NullFloat64
		Total   int64
	}
	if err := tx.Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&stats).Error; err != nil {
		return fmt.Errorf("aggregate reviews: %w", err)
	}

	average := 0.0
	if stats.Average.Valid {
		average = math.Round(stats.Average.Float64*10) / 10
	}

	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   stats.Total,
		})
	if res.Error != nil {
		return fmt.Errorf("update rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Bump adds delta to a counter column, never letting it drop below zero.
func Bump(tx *gorm.DB, productID string, counter Counter, delta int) error {
	switch counter {
	case ViewCount, PurchaseCount, WishlistCount:
	default:
		return fmt.Errorf("unknown counter %q", counter)
	}

	col := string(counter)
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn(col, gorm.Expr("CASE WHEN "+col+" + ? < 0 THEN 0 ELSE "+col+" + ? END", delta, delta))
	if res.Error != nil {
		return fmt.Errorf("bump %s: %w", col, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SyncAttributes rebuilds the size, color and tag index rows for p.
func SyncAttributes(tx *gorm.DB, p *models.Product) error {
	if err := DeleteAttributes(tx, p.ID); err != nil {
		return err
	}

	var rows []models.ProductAttribute
	add := func(kind string, values []string) {
		seen := map[string]struct{}{}
		for _, v := range values {
			v = strings.ToLower(strings.TrimSpace(v))
			if _, ok := seen[v]; ok || v == "" {
				continue
			}
			seen[v] = struct{}{}
			rows = append(rows, models.ProductAttribute{ProductID: p.ID, Kind: kind, Value: v})
		}
	}
	add(models.AttributeSize, p.Sizes)
	add(models.AttributeColor, p.Colors)
	add(models.AttributeTag, p.Tags)

	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("index attributes: %w", err)
	}
	return nil
}

// DeleteAttributes drops the index rows of a product.
func DeleteAttributes(tx *gorm.DB, productID string) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductAttribute{}).Error; err != nil {
		return fmt.Errorf("drop attributes: %w", err)
	}
	return nil
}
