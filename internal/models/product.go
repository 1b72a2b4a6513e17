package models

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name               string          `gorm:"index" json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `gorm:"type:decimal(12,2);index" json:"price"`
	Category           Category        `gorm:"size:32;index" json:"category"`
	BrandID            *string         `gorm:"size:36;index" json:"brand_id"`
	BrandName          string          `json:"brand_name"`
	Sizes              StringList      `json:"sizes"`
	Colors             StringList      `json:"colors"`
	Images             StringList      `json:"images"`
	Tags               StringList      `json:"tags"`
	Materials          StringList      `json:"materials"`
	StockQuantity      int             `json:"stock_quantity"`
	Featured           bool            `gorm:"index" json:"featured"`
	DiscountPercentage *float64        `json:"discount_percentage"`
	AverageRating      float64         `json:"average_rating"`
	ReviewCount        int             `json:"review_count"`
	ViewCount          int             `json:"view_count"`
	PurchaseCount      int             `json:"purchase_count"`
	WishlistCount      int             `json:"wishlist_count"`
}

// Attribute kinds indexed for set-membership filters.
const (
	AttributeSize  = "size"
	AttributeColor = "color"
	AttributeTag   = "tag"
)

// ProductAttribute is one (kind, value) pair of a product's sizes, colors or tags.
// Rows are rebuilt whenever the product is written.
type ProductAttribute struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID string `gorm:"size:36;index" json:"product_id"`
	Kind      string `gorm:"size:16;index:idx_attr_kind_value" json:"kind"`
	Value     string `gorm:"index:idx_attr_kind_value" json:"value"`
}
