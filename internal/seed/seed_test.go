package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stylehub/internal/database/databasetest"
	"github.com/example/stylehub/internal/models"
)

func TestLoad_InsertsOnce(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	res, err := Load(ctx, db)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, len(sampleBrands()), res.Brands)
	assert.Equal(t, len(sampleProducts()), res.Products)

	res, err = Load(ctx, db)
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, len(sampleProducts()), count)
}

func TestLoad_LinksBrandsAndIndexesAttributes(t *testing.T) {
	db := databasetest.New(t)
	_, err := Load(context.Background(), db)
	require.NoError(t, err)

	var shirt models.Product
	require.NoError(t, db.First(&shirt, "name = ?", "Classic White Shirt").Error)
	require.NotNil(t, shirt.BrandID)
	assert.Equal(t, "Northline", shirt.BrandName)

	var attrs int64
	require.NoError(t, db.Model(&models.ProductAttribute{}).Where("product_id = ?", shirt.ID).Count(&attrs).Error)
	assert.EqualValues(t, 4+2+2, attrs)
}

func TestSampleProducts_AreValid(t *testing.T) {
	for _, sp := range sampleProducts() {
		assert.True(t, sp.product.Category.Valid(), sp.product.Name)
		for _, s := range sp.product.Sizes {
			assert.True(t, models.Size(s).Valid(), "%s size %s", sp.product.Name, s)
		}
	}
}
