package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
)

// Result reports what Load did.
type Result struct {
	Brands   int
	Products int
	Skipped  bool
}

// Load inserts the sample brands and products unless the catalog already has products.
func Load(ctx context.Context, db *gorm.DB) (Result, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&existing).Error; err != nil {
		return Result{}, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		return Result{Skipped: true}, nil
	}

	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		brandIDs := map[string]*models.Brand{}
		for _, b := range sampleBrands() {
			brand := b
			if err := tx.Create(&brand).Error; err != nil {
				return fmt.Errorf("create brand %s: %w", brand.Name, err)
			}
			brandIDs[brand.Name] = &brand
			res.Brands++
		}

		for _, sp := range sampleProducts() {
			p := sp.product
			if brand, ok := brandIDs[sp.brand]; ok {
				p.BrandID = &brand.ID
				p.BrandName = brand.Name
			}
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("create product %s: %w", p.Name, err)
			}
			if err := catalog.SyncAttributes(tx, &p); err != nil {
				return err
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("sample catalog loaded", "component", "seed", "brands", res.Brands, "products", res.Products)
	return res, nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func pct(f float64) *float64 { return &f }

func sampleBrands() []models.Brand {
	return []models.Brand{
		{
			Name:        "Northline",
			Description: "Tailored menswear and modern office staples",
			BrandStory:  strPtr("Started as a single shirt workshop and grew into a full tailoring house."),
			Featured:    true,
			FoundedYear: intPtr(1998),
			WebsiteURL:  strPtr("https://northline.example.com"),
			SocialLinks: datatypes.JSONMap{"instagram": "https://instagram.com/northline"},
		},
		{
			Name:        "Maison Rouge",
			Description: "Evening wear and dresses with a French accent",
			BrandStory:  strPtr("Designed in Lyon, made for special occasions."),
			Featured:    true,
			FoundedYear: intPtr(2006),
			WebsiteURL:  strPtr("https://maisonrouge.example.com"),
			SocialLinks: datatypes.JSONMap{"instagram": "https://instagram.com/maisonrouge", "pinterest": "https://pinterest.com/maisonrouge"},
		},
		{
			Name:        "Stride Athletics",
			Description: "Performance sportswear for every day",
			FoundedYear: intPtr(2012),
			WebsiteURL:  strPtr("https://stride.example.com"),
			SocialLinks: datatypes.JSONMap{},
		},
		{
			Name:        "Indigo Works",
			Description: "Denim cut and washed in small batches",
			FoundedYear: intPtr(2015),
			SocialLinks: datatypes.JSONMap{"twitter": "https://twitter.com/indigoworks"},
		},
	}
}

type sampleProduct struct {
	brand   string
	product models.Product
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleProducts() []sampleProduct {
	return []sampleProduct{
		{"Northline", models.Product{
			Name:          "Classic White Shirt",
			Description:   "Elegant white cotton shirt perfect for formal occasions and office wear",
			Price:         price("79.99"),
			Category:      models.FormalWear,
			Sizes:         models.StringList{"S", "M", "L", "XL"},
			Colors:        models.StringList{"White", "Light Blue"},
			Images:        models.StringList{"https://images.unsplash.com/photo-1532453288672-3a27e9be9efd"},
			Tags:          models.StringList{"office", "cotton"},
			Materials:     models.StringList{"Cotton"},
			StockQuantity: 50,
			Featured:      true,
		}},
		{"Maison Rouge", models.Product{
			Name:          "Elegant Maroon Dress",
			Description:   "Stunning maroon dress perfect for evening events and special occasions",
			Price:         price("129.99"),
			Category:      models.WomensDresses,
			Sizes:         models.StringList{"XS", "S", "M", "L"},
			Colors:        models.StringList{"Maroon", "Black", "Navy"},
			Images:        models.StringList{"https://images.unsplash.com/photo-1568252542512-9fe8fe9c87bb"},
			Tags:          models.StringList{"evening", "party"},
			Materials:     models.StringList{"Silk", "Polyester"},
			StockQuantity: 30,
			Featured:      true,
		}},
		{"Stride Athletics", models.Product{
			Name:               "Casual Yellow Tracksuit",
			Description:        "Comfortable yellow tracksuit ideal for casual outings and sports activities",
			Price:              price("89.99"),
			Category:           models.Sportswear,
			Sizes:              models.StringList{"S", "M", "L", "XL"},
			Colors:             models.StringList{"Yellow", "Gray", "Black"},
			Images:             models.StringList{"https://images.unsplash.com/photo-1515886657613-9f3515b0c78f"},
			Tags:               models.StringList{"training", "casual"},
			Materials:          models.StringList{"Polyester"},
			StockQuantity:      40,
			DiscountPercentage: pct(15),
		}},
		{"Indigo Works", models.Product{
			Name:          "Designer Denim Jeans",
			Description:   "Premium quality denim jeans with perfect fit and modern styling",
			Price:         price("99.99"),
			Category:      models.MensPants,
			Sizes:         models.StringList{"M", "L", "XL", "XXL"},
			Colors:        models.StringList{"Blue", "Black", "Gray"},
			Images:        models.StringList{"https://images.unsplash.com/photo-1441984904996-e0b6ba687e04"},
			Tags:          models.StringList{"denim"},
			Materials:     models.StringList{"Cotton", "Elastane"},
			StockQuantity: 60,
			Featured:      true,
		}},
		{"Maison Rouge", models.Product{
			Name:               "Stylish Summer Top",
			Description:        "Light and breathable summer top perfect for warm weather",
			Price:              price("49.99"),
			Category:           models.WomensTops,
			Sizes:              models.StringList{"XS", "S", "M", "L"},
			Colors:             models.StringList{"Pink", "White", "Mint Green"},
			Images:             models.StringList{"https://images.unsplash.com/photo-1445205170230-053b83016050"},
			Tags:               models.StringList{"summer"},
			Materials:          models.StringList{"Linen"},
			StockQuantity:      35,
			DiscountPercentage: pct(20),
		}},
		{"Northline", models.Product{
			Name:          "Professional Blazer",
			Description:   "Sharp and sophisticated blazer for business meetings and formal events",
			Price:         price("159.99"),
			Category:      models.FormalWear,
			Sizes:         models.StringList{"S", "M", "L", "XL"},
			Colors:        models.StringList{"Black", "Navy", "Charcoal"},
			Images:        models.StringList{"https://images.unsplash.com/photo-1562572159-4efc207f5aff"},
			Tags:          models.StringList{"office", "tailored"},
			Materials:     models.StringList{"Wool"},
			StockQuantity: 25,
			Featured:      true,
		}},
		{"Northline", models.Product{
			Name:               "Oxford Button-Down Shirt",
			Description:        "Everyday oxford cloth shirt with a button-down collar",
			Price:              price("59.99"),
			Category:           models.MensShirts,
			Sizes:              models.StringList{"S", "M", "L", "XL", "XXL"},
			Colors:             models.StringList{"Blue", "White"},
			Tags:               models.StringList{"cotton", "casual"},
			Materials:          models.StringList{"Cotton"},
			StockQuantity:      80,
			DiscountPercentage: pct(10),
		}},
		{"Northline", models.Product{
			Name:          "Quilted Field Jacket",
			Description:   "Lightweight quilted jacket for transitional weather",
			Price:         price("189.00"),
			Category:      models.MensJackets,
			Sizes:         models.StringList{"M", "L", "XL"},
			Colors:        models.StringList{"Olive", "Navy"},
			Tags:          models.StringList{"outerwear"},
			Materials:     models.StringList{"Nylon", "Polyester"},
			StockQuantity: 20,
		}},
		{"Stride Athletics", models.Product{
			Name:               "Performance Running Tee",
			Description:        "Moisture-wicking tee for long runs",
			Price:              price("34.99"),
			Category:           models.MensActivewear,
			Sizes:              models.StringList{"S", "M", "L", "XL"},
			Colors:             models.StringList{"Black", "Red"},
			Tags:               models.StringList{"running", "training"},
			Materials:          models.StringList{"Polyester"},
			StockQuantity:      120,
			DiscountPercentage: pct(30),
		}},
		{"Stride Athletics", models.Product{
			Name:          "Seamless Yoga Leggings",
			Description:   "High-rise leggings with four-way stretch",
			Price:         price("64.50"),
			Category:      models.WomensActivewear,
			Sizes:         models.StringList{"XS", "S", "M", "L"},
			Colors:        models.StringList{"Black", "Plum"},
			Tags:          models.StringList{"yoga", "training"},
			Materials:     models.StringList{"Nylon", "Elastane"},
			StockQuantity: 70,
			Featured:      true,
		}},
		{"Maison Rouge", models.Product{
			Name:               "Pleated Midi Skirt",
			Description:        "Flowing pleated skirt that moves from desk to dinner",
			Price:              price("74.00"),
			Category:           models.WomensSkirts,
			Sizes:              models.StringList{"XS", "S", "M"},
			Colors:             models.StringList{"Emerald", "Black"},
			Tags:               models.StringList{"office", "evening"},
			Materials:          models.StringList{"Polyester"},
			StockQuantity:      25,
			DiscountPercentage: pct(25),
		}},
		{"Indigo Works", models.Product{
			Name:          "Relaxed Denim Jacket",
			Description:   "Washed denim jacket with a relaxed unisex fit",
			Price:         price("110.00"),
			Category:      models.CasualWear,
			Sizes:         models.StringList{"S", "M", "L", "XL"},
			Colors:        models.StringList{"Blue"},
			Tags:          models.StringList{"denim", "outerwear"},
			Materials:     models.StringList{"Cotton"},
			StockQuantity: 45,
		}},
	}
}
