package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/stylehub/internal/models"
)

// SortOption names an ordering accepted by the listing and search endpoints.
type SortOption string

const (
	SortRelevance    SortOption = "relevance"
	SortFeatured     SortOption = "featured"
	SortPriceLow     SortOption = "price_low"
	SortPriceHigh    SortOption = "price_high"
	SortRating       SortOption = "rating"
	SortNewest       SortOption = "newest"
	SortPopularity   SortOption = "popularity"
	SortDiscountHigh SortOption = "discount_high"
	SortDiscountLow  SortOption = "discount_low"
)

// ErrInvalidSort is returned by ParseSort for unknown sort names.
var ErrInvalidSort = errors.New("invalid sort option")

var sortOrders = map[SortOption][]string{
	SortRelevance:    {"featured DESC", "average_rating DESC"},
	SortFeatured:     {"featured DESC", "average_rating DESC"},
	SortPriceLow:     {"price ASC"},
	SortPriceHigh:    {"price DESC"},
	SortRating:       {"average_rating DESC"},
	SortNewest:       {"created_at DESC"},
	SortPopularity:   {"view_count DESC"},
	SortDiscountHigh: {"COALESCE(discount_percentage, 0) DESC"},
	SortDiscountLow:  {"COALESCE(discount_percentage, 0) ASC"},
}

// ParseSort resolves a sort name, using fallback when v is blank.
func ParseSort(v string, fallback SortOption) (SortOption, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback, nil
	}
	opt := SortOption(v)
	if _, ok := sortOrders[opt]; !ok {
		return "", ErrInvalidSort
	}
	return opt, nil
}

// Query is the full set of optional filters, ordering and paging understood by Engine.
// Zero values mean "no restriction".
type Query struct {
	// Category narrows to one category. When Group is also set and the category
	// is outside the group, the whole group is used instead.
	Category models.Category
	Group    models.CategoryGroup

	Featured *bool
	BrandID  string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	// Sizes and Colors match products listing at least one of the values.
	Sizes  []string
	Colors []string

	// OnSale requires a positive discount; MinDiscount raises the threshold.
	OnSale      bool
	MinDiscount *float64

	// Text matches name, description or brand name substrings, or an exact tag.
	Text string

	// RelatedCategories and RelatedBrands are OR-ed together; empty sets are ignored.
	RelatedCategories []models.Category
	RelatedBrands     []string
	ExcludeIDs        []string

	Sort  SortOption
	Skip  int
	Limit int
}

// categories returns the category set the query is restricted to, or nil.
func (q Query) categories() []models.Category {
	if q.Group != "" {
		if q.Category != "" && q.Group.Contains(q.Category) {
			return []models.Category{q.Category}
		}
		return q.Group.Categories()
	}
	if q.Category != "" {
		return []models.Category{q.Category}
	}
	return nil
}

func orderClauses(opt SortOption) []string {
	clauses, ok := sortOrders[opt]
	if !ok {
		clauses = sortOrders[SortRelevance]
	}
	return append(append([]string{}, clauses...), "id ASC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
