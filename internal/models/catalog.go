package models

import "gorm.io/datatypes"

type Brand struct {
	BaseModel
	Name        string            `gorm:"index" json:"name"`
	Description string            `json:"description"`
	LogoURL     *string           `json:"logo_url"`
	BrandStory  *string           `json:"brand_story"`
	Featured    bool              `json:"featured"`
	FoundedYear *int              `json:"founded_year"`
	WebsiteURL  *string           `json:"website_url"`
	SocialLinks datatypes.JSONMap `json:"social_links"`
}

type Review struct {
	BaseModel
	ProductID        string     `gorm:"size:36;index" json:"product_id"`
	UserName         string     `json:"user_name"`
	UserEmail        *string    `json:"user_email"`
	Rating           int        `json:"rating"`
	Title            string     `json:"title"`
	Comment          string     `json:"comment"`
	VerifiedPurchase bool       `json:"verified_purchase"`
	HelpfulCount     int        `json:"helpful_count"`
	Images           StringList `json:"images"`
}
