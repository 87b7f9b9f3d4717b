package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.SalesChannelModel{},
		&models.SalesChannelProductModel{},
		&models.StoreModel{},
		&models.ProductModel{},
		&models.OutboxEntryModel{},
	))
	return db
}

func seedChannel(t *testing.T, repo *GormSalesChannelRepository, name string) *channel.SalesChannel {
	t.Helper()

	sc, err := channel.NewSalesChannel(name, "desc", false)
	require.NoError(t, err)
	sc.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), sc))
	return sc
}

func TestGormSalesChannelRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSalesChannelRepository(db)
	ctx := context.Background()

	t.Run("round trips a saved channel", func(t *testing.T) {
		sc := seedChannel(t, repo, "Webshop")

		found, err := repo.FindByID(ctx, sc.ID)

		require.NoError(t, err)
		assert.Equal(t, sc.ID, found.ID)
		assert.Equal(t, "Webshop", found.Name)
		assert.Equal(t, "desc", found.Description)
		assert.Nil(t, found.DeletedAt)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSalesChannelRepository_SoftRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSalesChannelRepository(db)
	ctx := context.Background()

	sc := seedChannel(t, repo, "Webshop")
	require.NoError(t, sc.SoftRemove())
	sc.ClearEvents()
	require.NoError(t, repo.SoftRemove(ctx, sc))

	t.Run("removed channels are hidden from FindByID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, sc.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("removed channels keep their row", func(t *testing.T) {
		var row models.SalesChannelModel
		require.NoError(t, db.Where("id = ?", sc.ID).First(&row).Error)
		assert.NotNil(t, row.DeletedAt)
	})
}

func TestGormSalesChannelRepository_AddProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSalesChannelRepository(db)
	ctx := context.Background()

	countRows := func(t *testing.T, channelID uuid.UUID) int64 {
		t.Helper()
		var n int64
		require.NoError(t, db.Model(&models.SalesChannelProductModel{}).
			Where("sales_channel_id = ?", channelID).Count(&n).Error)
		return n
	}

	t.Run("repeated inserts leave one row per pair", func(t *testing.T) {
		sc := seedChannel(t, repo, "Webshop")
		p1 := uuid.New()
		p2 := uuid.New()

		require.NoError(t, repo.AddProducts(ctx, sc.ID, []uuid.UUID{p1, p2}))
		require.NoError(t, repo.AddProducts(ctx, sc.ID, []uuid.UUID{p1, p2}))

		assert.EqualValues(t, 2, countRows(t, sc.ID))
	})

	t.Run("overlapping batches insert only the new pairs", func(t *testing.T) {
		sc := seedChannel(t, repo, "Storefront")
		p1 := uuid.New()
		p2 := uuid.New()
		p3 := uuid.New()

		require.NoError(t, repo.AddProducts(ctx, sc.ID, []uuid.UUID{p1, p2}))
		require.NoError(t, repo.AddProducts(ctx, sc.ID, []uuid.UUID{p2, p3}))

		assert.EqualValues(t, 3, countRows(t, sc.ID))

		var ids []uuid.UUID
		require.NoError(t, db.Model(&models.SalesChannelProductModel{}).
			Where("sales_channel_id = ?", sc.ID).
			Pluck("product_id", &ids).Error)
		assert.ElementsMatch(t, []uuid.UUID{p1, p2, p3}, ids)
	})

	t.Run("duplicate ids in one batch collapse to one row", func(t *testing.T) {
		sc := seedChannel(t, repo, "POS")
		p := uuid.New()

		require.NoError(t, repo.AddProducts(ctx, sc.ID, []uuid.UUID{p, p, p}))

		assert.EqualValues(t, 1, countRows(t, sc.ID))
	})

	t.Run("an empty batch is a no-op", func(t *testing.T) {
		sc := seedChannel(t, repo, "Empty")

		require.NoError(t, repo.AddProducts(ctx, sc.ID, nil))

		assert.EqualValues(t, 0, countRows(t, sc.ID))
	})
}

func TestGormSalesChannelRepository_Save(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSalesChannelRepository(db)
	ctx := context.Background()

	sc := seedChannel(t, repo, "Webshop")
	sc.Name = "Storefront"
	require.NoError(t, repo.Save(ctx, sc))

	found, err := repo.FindByID(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Storefront", found.Name)

	var n int64
	require.NoError(t, db.Model(&models.SalesChannelModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n, "save must update in place")
}
