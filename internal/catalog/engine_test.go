package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/database/databasetest"
	"github.com/example/stylehub/internal/models"
)

func ptr[T any](v T) *T { return &v }

func newProduct(name string, category models.Category, price string) models.Product {
	return models.Product{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Sizes:    models.StringList{"M"},
		Colors:   models.StringList{"Black"},
	}
}

func insertProducts(t *testing.T, db *gorm.DB, products ...models.Product) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, len(products))
	for i := range products {
		p := products[i]
		require.NoError(t, db.Create(&p).Error)
		require.NoError(t, SyncAttributes(db, &p))
		out = append(out, p)
	}
	return out
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFind_EmptyQueryReturnsCatalog(t *testing.T) {
	db := databasetest.New(t)
	insertProducts(t, db,
		newProduct("Shirt", models.MensShirts, "40"),
		newProduct("Dress", models.WomensDresses, "90"),
		newProduct("Hoodie", models.CasualWear, "55"),
	)
	engine := NewEngine(db)

	products, err := engine.Find(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, products, 3)

	total, err := engine.Count(context.Background(), Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestFind_GroupRestriction(t *testing.T) {
	db := databasetest.New(t)
	insertProducts(t, db,
		newProduct("Oxford Shirt", models.MensShirts, "40"),
		newProduct("Chinos", models.MensPants, "60"),
		newProduct("Dress", models.WomensDresses, "90"),
		newProduct("Hoodie", models.CasualWear, "55"),
	)
	engine := NewEngine(db)
	ctx := context.Background()

	t.Run("group only", func(t *testing.T) {
		products, err := engine.Find(ctx, Query{Group: models.GroupMen})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Oxford Shirt", "Chinos"}, names(products))
		for _, p := range products {
			assert.Equal(t, models.GroupMen, p.Category.Group())
		}
	})

	t.Run("category inside group narrows", func(t *testing.T) {
		products, err := engine.Find(ctx, Query{Group: models.GroupMen, Category: models.MensPants})
		require.NoError(t, err)
		assert.Equal(t, []string{"Chinos"}, names(products))
	})

	t.Run("category outside group falls back to group", func(t *testing.T) {
		products, err := engine.Find(ctx, Query{Group: models.GroupMen, Category: models.WomensDresses})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Oxford Shirt", "Chinos"}, names(products))
	})

	t.Run("category without group", func(t *testing.T) {
		products, err := engine.Find(ctx, Query{Category: models.WomensDresses})
		require.NoError(t, err)
		assert.Equal(t, []string{"Dress"}, names(products))
	})
}

func TestFind_PriceRangeInclusive(t *testing.T) {
	db := databasetest.New(t)
	insertProducts(t, db,
		newProduct("Fifty", models.CasualWear, "50"),
		newProduct("Hundred", models.CasualWear, "100"),
		newProduct("Seventy", models.CasualWear, "70.50"),
	)
	engine := NewEngine(db)
	ctx := context.Background()

	products, err := engine.Find(ctx, Query{MinPrice: ptr(decimal.NewFromInt(60))})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Hundred", "Seventy"}, names(products))

	products, err = engine.Find(ctx, Query{MinPrice: ptr(decimal.NewFromInt(50)), MaxPrice: ptr(decimal.RequireFromString("70.50"))})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Fifty", "Seventy"}, names(products))
}

func TestFind_SizesAndColorsAnyOf(t *testing.T) {
	db := databasetest.New(t)
	small := newProduct("Small Navy", models.WomensTops, "30")
	small.Sizes = models.StringList{"XS", "S"}
	small.Colors = models.StringList{"Navy"}
	large := newProduct("Large Red", models.WomensTops, "30")
	large.Sizes = models.StringList{"L", "XL"}
	large.Colors = models.StringList{"Red", "Black"}
	insertProducts(t, db, small, large)
	engine := NewEngine(db)
	ctx := context.Background()

	products, err := engine.Find(ctx, Query{Sizes: []string{"S", "XXL"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Small Navy"}, names(products))

	products, err = engine.Find(ctx, Query{Colors: []string{"black", "navy"}})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = engine.Find(ctx, Query{Sizes: []string{"XL"}, Colors: []string{"Navy"}})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFind_SaleRequiresDiscount(t *testing.T) {
	db := databasetest.New(t)
	none := newProduct("Full Price", models.CasualWear, "40")
	zero := newProduct("Zero Discount", models.CasualWear, "40")
	zero.DiscountPercentage = ptr(0.0)
	ten := newProduct("Ten Off", models.CasualWear, "40")
	ten.DiscountPercentage = ptr(10.0)
	forty := newProduct("Forty Off", models.CasualWear, "40")
	forty.DiscountPercentage = ptr(40.0)
	insertProducts(t, db, none, zero, ten, forty)
	engine := NewEngine(db)
	ctx := context.Background()

	products, err := engine.Find(ctx, Query{OnSale: true, Sort: SortDiscountHigh})
	require.NoError(t, err)
	assert.Equal(t, []string{"Forty Off", "Ten Off"}, names(products))

	products, err = engine.Find(ctx, Query{OnSale: true, MinDiscount: ptr(20.0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Forty Off"}, names(products))
	for _, p := range products {
		require.NotNil(t, p.DiscountPercentage)
		assert.Greater(t, *p.DiscountPercentage, 0.0)
	}
}

func TestFind_TextMatchesAnyField(t *testing.T) {
	db := databasetest.New(t)
	byName := newProduct("Linen Shirt", models.MensShirts, "40")
	byDesc := newProduct("Plain Tee", models.MensTShirts, "20")
	byDesc.Description = "Soft LINEN blend"
	byBrand := newProduct("Runner", models.Sportswear, "80")
	byBrand.BrandName = "Linenworks"
	byTag := newProduct("Summer Set", models.CasualWear, "60")
	byTag.Tags = models.StringList{"Linen"}
	other := newProduct("Wool Coat", models.MensJackets, "200")
	percent := newProduct("100% Cotton Tee", models.MensTShirts, "25")
	insertProducts(t, db, byName, byDesc, byBrand, byTag, other, percent)
	engine := NewEngine(db)
	ctx := context.Background()

	products, err := engine.Find(ctx, Query{Text: "linen"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Linen Shirt", "Plain Tee", "Runner", "Summer Set"}, names(products))

	products, err = engine.Find(ctx, Query{Text: "0%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Cotton Tee"}, names(products))

	products, err = engine.Find(ctx, Query{Text: "linen", Category: models.MensShirts})
	require.NoError(t, err)
	assert.Equal(t, []string{"Linen Shirt"}, names(products))
}

func TestFind_Sorting(t *testing.T) {
	db := databasetest.New(t)
	a := newProduct("A", models.CasualWear, "30")
	a.AverageRating = 4.0
	a.ViewCount = 5
	b := newProduct("B", models.CasualWear, "10")
	b.AverageRating = 4.8
	b.Featured = true
	b.ViewCount = 50
	c := newProduct("C", models.CasualWear, "20")
	c.AverageRating = 3.5
	c.Featured = true
	c.ViewCount = 1
	now := time.Now().UTC()
	a.CreatedAt, b.CreatedAt, c.CreatedAt = now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour)
	a.DiscountPercentage, b.DiscountPercentage, c.DiscountPercentage = ptr(30.0), ptr(5.0), ptr(15.0)
	insertProducts(t, db, a, b, c)
	engine := NewEngine(db)
	ctx := context.Background()

	cases := []struct {
		sort SortOption
		want []string
	}{
		{SortPriceLow, []string{"B", "C", "A"}},
		{SortPriceHigh, []string{"A", "C", "B"}},
		{SortRating, []string{"B", "A", "C"}},
		{SortPopularity, []string{"B", "A", "C"}},
		{SortFeatured, []string{"B", "C", "A"}},
		{SortRelevance, []string{"B", "C", "A"}},
		{SortNewest, []string{"C", "B", "A"}},
		{SortDiscountHigh, []string{"A", "C", "B"}},
		{SortDiscountLow, []string{"B", "C", "A"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.sort), func(t *testing.T) {
			products, err := engine.Find(ctx, Query{Sort: tc.sort})
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(products))
		})
	}

	products, err := engine.Find(ctx, Query{Sort: SortPriceLow})
	require.NoError(t, err)
	for i := 1; i < len(products); i++ {
		assert.True(t, products[i-1].Price.LessThanOrEqual(products[i].Price))
	}

	discount := func(p models.Product) float64 { return *p.DiscountPercentage }
	high, err := engine.Find(ctx, Query{Sort: SortDiscountHigh})
	require.NoError(t, err)
	for i := 1; i < len(high); i++ {
		assert.GreaterOrEqual(t, discount(high[i-1]), discount(high[i]))
	}
	low, err := engine.Find(ctx, Query{Sort: SortDiscountLow})
	require.NoError(t, err)
	for i := 1; i < len(low); i++ {
		assert.LessOrEqual(t, discount(low[i-1]), discount(low[i]))
	}

	newest, err := engine.Find(ctx, Query{Sort: SortNewest})
	require.NoError(t, err)
	for i := 1; i < len(newest); i++ {
		assert.False(t, newest[i-1].CreatedAt.Before(newest[i].CreatedAt))
	}
}

func TestFind_Paging(t *testing.T) {
	db := databasetest.New(t)
	for _, price := range []string{"10", "20", "30", "40", "50"} {
		insertProducts(t, db, newProduct("P"+price, models.CasualWear, price))
	}
	engine := NewEngine(db)
	ctx := context.Background()

	products, err := engine.Find(ctx, Query{Sort: SortPriceLow, Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"P20", "P30"}, names(products))

	products, err = engine.Find(ctx, Query{Sort: SortPriceLow, Skip: 4, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"P50"}, names(products))

	total, err := engine.Count(ctx, Query{Sort: SortPriceLow, Skip: 4, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
}

func TestParseSort(t *testing.T) {
	opt, err := ParseSort("", SortFeatured)
	require.NoError(t, err)
	assert.Equal(t, SortFeatured, opt)

	opt, err = ParseSort("price_high", SortFeatured)
	require.NoError(t, err)
	assert.Equal(t, SortPriceHigh, opt)

	_, err = ParseSort("cheapest", SortFeatured)
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestSuggestions(t *testing.T) {
	db := databasetest.New(t)
	var products []models.Product
	for _, name := range []string{"Denim Jacket", "Denim Jeans", "Denim Shirt", "Denim Skirt", "Denim Shorts", "Denim Vest", "Dress"} {
		p := newProduct(name, models.CasualWear, "20")
		p.BrandName = "Denim Co"
		products = append(products, p)
	}
	other := newProduct("Parka", models.MensJackets, "150")
	other.BrandName = "Denmark Outdoors"
	products = append(products, other)
	insertProducts(t, db, products...)
	engine := NewEngine(db)

	got, err := engine.Suggestions(context.Background(), "DEN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Denim Jacket", "Denim Jeans", "Denim Shirt", "Denim Shorts", "Denim Skirt", "Denim Co", "Denmark Outdoors"}, got)

	got, err = engine.Suggestions(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func recordView(t *testing.T, db *gorm.DB, session, productID string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserActivity{
		SessionID:    session,
		ProductID:    productID,
		ActivityType: models.ActivityView,
		Timestamp:    at.UTC(),
	}).Error)
}

func TestRecommended(t *testing.T) {
	db := databasetest.New(t)
	brand := "brand-1"
	viewed := newProduct("Viewed Shirt", models.MensShirts, "40")
	sameCategory := newProduct("Other Shirt", models.MensShirts, "45")
	sameBrand := newProduct("Branded Pants", models.MensPants, "60")
	sameBrand.BrandID = &brand
	viewed.BrandID = &brand
	unrelated := newProduct("Dress", models.WomensDresses, "90")
	featured := newProduct("Featured Top", models.WomensTops, "35")
	featured.Featured = true
	products := insertProducts(t, db, viewed, sameCategory, sameBrand, unrelated, featured)
	engine := NewEngine(db)
	ctx := context.Background()

	t.Run("no history falls back to featured", func(t *testing.T) {
		got, err := engine.Recommended(ctx, "fresh", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Featured Top"}, names(got))
	})

	t.Run("related by category or brand", func(t *testing.T) {
		recordView(t, db, "s1", products[0].ID, time.Now())
		got, err := engine.Recommended(ctx, "s1", 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Other Shirt", "Branded Pants"}, names(got))
	})

	t.Run("only deleted products viewed", func(t *testing.T) {
		recordView(t, db, "s2", "gone", time.Now())
		got, err := engine.Recommended(ctx, "s2", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Featured Top"}, names(got))
	})
}

func TestRecommended_OnlyLatestViewWindow(t *testing.T) {
	db := databasetest.New(t)
	products := insertProducts(t, db,
		newProduct("Old Dress", models.WomensDresses, "80"),
		newProduct("Hot Shirt", models.MensShirts, "40"),
		newProduct("Other Dress", models.WomensDresses, "85"),
		newProduct("Other Shirt", models.MensShirts, "45"),
	)
	engine := NewEngine(db)
	start := time.Now().Add(-time.Hour)

	recordView(t, db, "s", products[0].ID, start)
	for i := 1; i <= recommendationWindow; i++ {
		recordView(t, db, "s", products[1].ID, start.Add(time.Duration(i)*time.Minute))
	}

	got, err := engine.Recommended(context.Background(), "s", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Other Shirt"}, names(got))

	recent, err := engine.RecentlyViewed(context.Background(), "s", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hot Shirt", "Old Dress"}, names(recent))
}

func TestRecentlyViewed(t *testing.T) {
	db := databasetest.New(t)
	products := insertProducts(t, db,
		newProduct("First", models.CasualWear, "10"),
		newProduct("Second", models.CasualWear, "20"),
		newProduct("Third", models.CasualWear, "30"),
	)
	engine := NewEngine(db)
	now := time.Now()

	recordView(t, db, "s", products[0].ID, now.Add(-5*time.Minute))
	recordView(t, db, "s", products[1].ID, now.Add(-4*time.Minute))
	recordView(t, db, "s", "deleted-product", now.Add(-3*time.Minute))
	recordView(t, db, "s", products[2].ID, now.Add(-2*time.Minute))
	recordView(t, db, "s", products[0].ID, now.Add(-1*time.Minute))
	recordView(t, db, "other", products[1].ID, now)

	got, err := engine.RecentlyViewed(context.Background(), "s", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Third", "Second"}, names(got))

	got, err = engine.RecentlyViewed(context.Background(), "s", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Third"}, names(got))

	got, err = engine.RecentlyViewed(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTrending(t *testing.T) {
	db := databasetest.New(t)
	low := newProduct("Low", models.CasualWear, "10")
	low.ViewCount = 1
	high := newProduct("High", models.CasualWear, "10")
	high.ViewCount = 100
	insertProducts(t, db, low, high)

	got, err := NewEngine(db).Trending(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"High"}, names(got))
}
