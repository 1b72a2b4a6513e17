package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types recorded per session.
const (
	ActivityView     = "view"
	ActivityWishlist = "wishlist"
	ActivityCartAdd  = "cart_add"
	ActivityPurchase = "purchase"
)

// ValidActivity reports whether t is a known activity type.
func ValidActivity(t string) bool {
	switch t {
	case ActivityView, ActivityWishlist, ActivityCartAdd, ActivityPurchase:
		return true
	}
	return false
}

// UserActivity is an append-only interaction log entry.
type UserActivity struct {
	ID             string            `gorm:"size:36;primaryKey" json:"id"`
	SessionID      string            `gorm:"size:128;index:idx_activity_session" json:"session_id"`
	ProductID      string            `gorm:"size:36;index" json:"product_id"`
	ActivityType   string            `gorm:"size:16;index:idx_activity_session" json:"activity_type"`
	Timestamp      time.Time         `gorm:"column:recorded_at;index" json:"timestamp"`
	AdditionalData datatypes.JSONMap `json:"additional_data,omitempty"`
}

type WishlistItem struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	SessionID string    `gorm:"size:128;uniqueIndex:idx_wishlist_pair" json:"session_id"`
	ProductID string    `gorm:"size:36;uniqueIndex:idx_wishlist_pair" json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// BeforeCreate fills the id and timestamp of a new activity.
func (a *UserActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

// BeforeCreate fills the id and added_at of a new wishlist entry.
func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.AddedAt.IsZero() {
		w.AddedAt = time.Now().UTC()
	}
	return nil
}
