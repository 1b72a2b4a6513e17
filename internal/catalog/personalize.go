package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/stylehub/internal/models"
)

const (
	suggestionsByName  = 5
	suggestionsByBrand = 3
	suggestionsTotal   = 8

	// recommendationWindow is how many view activities feed a recommendation.
	recommendationWindow = 20
)

// Suggestions returns up to eight product and brand names starting with prefix.
func (e *Engine) Suggestions(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return []string{}, nil
	}
	like := escapeLike(prefix) + "%"
	base := e.db.WithContext(ctx)

	var names []string
	if err := base.Model(&models.Product{}).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, like).
		Order("name ASC").
		Limit(suggestionsByName).
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("suggest names: %w", err)
	}

	var brands []string
	if err := base.Model(&models.Product{}).
		Distinct().
		Where(`LOWER(brand_name) LIKE ? ESCAPE '\'`, like).
		Order("brand_name ASC").
		Limit(suggestionsByBrand).
		Pluck("brand_name", &brands).Error; err != nil {
		return nil, fmt.Errorf("suggest brands: %w", err)
	}

	seen := make(map[string]struct{}, len(names)+len(brands))
	out := make([]string, 0, suggestionsTotal)
	for _, s := range append(names, brands...) {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == suggestionsTotal {
			break
		}
	}
	return out, nil
}

// Trending returns the most viewed products.
func (e *Engine) Trending(ctx context.Context, limit int) ([]models.Product, error) {
	return e.Find(ctx, Query{Sort: SortPopularity, Limit: limit})
}

// Recommended derives category and brand interests from the session's recent
// views and returns unseen products sharing either. Sessions without usable
// history get featured products.
func (e *Engine) Recommended(ctx context.Context, sessionID string, limit int) ([]models.Product, error) {
	viewed, err := e.lastViewed(ctx, sessionID, recommendationWindow)
	if err != nil {
		return nil, err
	}
	if len(viewed) == 0 {
		return e.featured(ctx, limit)
	}

	var seen []models.Product
	if err := e.db.WithContext(ctx).
		Select("id", "category", "brand_id").
		Where("id IN ?", viewed).
		Find(&seen).Error; err != nil {
		return nil, fmt.Errorf("load viewed products: %w", err)
	}

	var categories []models.Category
	var brands []string
	catSet := map[models.Category]struct{}{}
	brandSet := map[string]struct{}{}
	for _, p := range seen {
		if _, ok := catSet[p.Category]; !ok && p.Category != "" {
			catSet[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
		if p.BrandID == nil || *p.BrandID == "" {
			continue
		}
		if _, ok := brandSet[*p.BrandID]; !ok {
			brandSet[*p.BrandID] = struct{}{}
			brands = append(brands, *p.BrandID)
		}
	}

	if len(categories) == 0 && len(brands) == 0 {
		return e.featured(ctx, limit)
	}

	return e.Find(ctx, Query{
		RelatedCategories: categories,
		RelatedBrands:     brands,
		ExcludeIDs:        viewed,
		Sort:              SortRelevance,
		Limit:             limit,
	})
}

// RecentlyViewed returns the session's last viewed products, most recent first.
// Each product appears once; views of deleted products are skipped.
func (e *Engine) RecentlyViewed(ctx context.Context, sessionID string, limit int) ([]models.Product, error) {
	ids, err := e.recentViews(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var found []models.Product
	if err := e.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load viewed products: %w", err)
	}

	byID := make(map[string]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// recentViews lists distinct viewed product ids, latest view first.
func (e *Engine) recentViews(ctx context.Context, sessionID string, limit int) ([]string, error) {
	tx := e.db.WithContext(ctx).Model(&models.UserActivity{}).
		Where("session_id = ? AND activity_type = ?", sessionID, models.ActivityView).
		Group("product_id").
		Order("MAX(recorded_at) DESC").
		Order("product_id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var ids []string
	if err := tx.Pluck("product_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load recent views: %w", err)
	}
	return ids, nil
}

// lastViewed reads the session's latest view activities, at most window rows,
// and returns the distinct product ids among them.
func (e *Engine) lastViewed(ctx context.Context, sessionID string, window int) ([]string, error) {
	var rows []string
	if err := e.db.WithContext(ctx).Model(&models.UserActivity{}).
		Where("session_id = ? AND activity_type = ?", sessionID, models.ActivityView).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(window).
		Pluck("product_id", &rows).Error; err != nil {
		return nil, fmt.Errorf("load view window: %w", err)
	}

	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, id := range rows {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (e *Engine) featured(ctx context.Context, limit int) ([]models.Product, error) {
	featured := true
	return e.Find(ctx, Query{Featured: &featured, Sort: SortRelevance, Limit: limit})
}
