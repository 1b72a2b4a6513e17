package databasetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stylehub/internal/database"
	"github.com/example/stylehub/internal/models"
)

func TestNew_MigratesTables(t *testing.T) {
	db := New(t)

	for _, table := range []interface{}{
		&models.Brand{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.UserActivity{},
		&models.WishlistItem{},
	} {
		assert.True(t, db.Migrator().HasTable(table), "%T", table)
	}
}

func TestNew_Ping(t *testing.T) {
	db := New(t)
	require.NoError(t, database.Ping(context.Background(), db))
}

func TestNew_Isolated(t *testing.T) {
	first := New(t)
	second := New(t)

	require.NoError(t, first.Create(&models.Brand{Name: "Only here"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Brand{}).Count(&count).Error)
	assert.Zero(t, count)
}
