package models

import "github.com/shopspring/decimal"

// Order statuses.
const (
	OrderStatusPending = "pending"
)

type Order struct {
	BaseModel
	SessionID       string          `gorm:"size:128;index" json:"session_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress string          `json:"shipping_address"`
	Status          string          `gorm:"size:32" json:"status"`
}

// OrderItem is a snapshot of a cart line at the time the order was placed.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     string          `gorm:"size:36;index" json:"-"`
	ProductID   string          `gorm:"size:36" json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        Size            `gorm:"size:8" json:"size"`
	Color       string          `json:"color"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}

type CartItem struct {
	BaseModel
	ProductID string `gorm:"size:36;uniqueIndex:idx_cart_line" json:"product_id"`
	Size      Size   `gorm:"size:8;uniqueIndex:idx_cart_line" json:"size"`
	Color     string `gorm:"size:64;uniqueIndex:idx_cart_line" json:"color"`
	Quantity  int    `json:"quantity"`
	SessionID string `gorm:"size:128;uniqueIndex:idx_cart_line;index" json:"session_id"`
}
