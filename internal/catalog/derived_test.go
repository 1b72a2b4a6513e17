package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stylehub/internal/database/databasetest"
	"github.com/example/stylehub/internal/models"
)

func TestRefreshRating(t *testing.T) {
	db := databasetest.New(t)
	products := insertProducts(t, db, newProduct("Rated", models.CasualWear, "30"))
	id := products[0].ID

	for _, rating := range []int{4, 5} {
		require.NoError(t, db.Create(&models.Review{ProductID: id, UserName: "u", Rating: rating}).Error)
		require.NoError(t, RefreshRating(db, id))
	}

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", id).Error)
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestRefreshRating_RoundsToOneDecimal(t *testing.T) {
	db := databasetest.New(t)
	products := insertProducts(t, db, newProduct("Rated", models.CasualWear, "30"))
	id := products[0].ID

	for _, rating := range []int{5, 4, 4} {
		require.NoError(t, db.Create(&models.Review{ProductID: id, UserName: "u", Rating: rating}).Error)
	}
	require.NoError(t, RefreshRating(db, id))

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", id).Error)
	assert.Equal(t, 4.3, got.AverageRating)
	assert.Equal(t, 3, got.ReviewCount)
}

func TestRefreshRating_MissingProduct(t *testing.T) {
	db := databasetest.New(t)
	assert.ErrorIs(t, RefreshRating(db, "missing"), ErrProductNotFound)
}

func TestBump(t *testing.T) {
	db := databasetest.New(t)
	products := insertProducts(t, db, newProduct("Counted", models.CasualWear, "30"))
	id := products[0].ID

	require.NoError(t, Bump(db, id, ViewCount, 1))
	require.NoError(t, Bump(db, id, ViewCount, 1))
	require.NoError(t, Bump(db, id, PurchaseCount, 3))
	require.NoError(t, Bump(db, id, WishlistCount, 1))
	require.NoError(t, Bump(db, id, WishlistCount, -5))

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", id).Error)
	assert.Equal(t, 2, got.ViewCount)
	assert.Equal(t, 3, got.PurchaseCount)
	assert.Equal(t, 0, got.WishlistCount)

	assert.ErrorIs(t, Bump(db, "missing", ViewCount, 1), ErrProductNotFound)
	assert.Error(t, Bump(db, id, Counter("price"), 1))
}

func TestSyncAttributes_Rebuilds(t *testing.T) {
	db := databasetest.New(t)
	p := newProduct("Tagged", models.CasualWear, "30")
	p.Sizes = models.StringList{"S", "M"}
	p.Colors = models.StringList{"Black", "black"}
	p.Tags = models.StringList{"Summer"}
	products := insertProducts(t, db, p)

	var count int64
	require.NoError(t, db.Model(&models.ProductAttribute{}).Where("product_id = ?", products[0].ID).Count(&count).Error)
	assert.EqualValues(t, 4, count)

	updated := products[0]
	updated.Sizes = models.StringList{"XL"}
	updated.Colors = nil
	updated.Tags = nil
	require.NoError(t, SyncAttributes(db, &updated))

	var rows []models.ProductAttribute
	require.NoError(t, db.Where("product_id = ?", updated.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.AttributeSize, rows[0].Kind)
	assert.Equal(t, "xl", rows[0].Value)

	require.NoError(t, DeleteAttributes(db, updated.ID))
	require.NoError(t, db.Model(&models.ProductAttribute{}).Where("product_id = ?", updated.ID).Count(&count).Error)
	assert.Zero(t, count)
}
