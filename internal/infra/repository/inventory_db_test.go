package repository_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 実DBに対する在庫減算の検証。
// TEST_DATABASE_DSN が無ければスキップ（CIのpostgresジョブでだけ回す）。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sqlDB.PingContext(ctx))

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(&model.ProductVariant{}, &model.CartItem{}))

	return gormDB
}

func createTestVariant(t *testing.T, db *gorm.DB, stock int64) model.ProductVariant {
	t.Helper()

	v := model.ProductVariant{ProductID: 999999, Size: "9", Color: "TestBlack", StockQuantity: stock}
	require.NoError(t, db.Create(&v).Error)

	t.Cleanup(func() {
		db.Delete(&model.ProductVariant{}, v.ID)
	})
	return v
}

func TestInventoryGorm_DecreaseStockIfEnough(t *testing.T) {
	db := openTestDB(t)
	repo := infraRepo.NewInventoryGormRepository(db)
	ctx := context.Background()

	v := createTestVariant(t, db, 5)

	// 5 → 2
	ok, err := repo.DecreaseStockIfEnough(ctx, v.ID, 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	// 残2に3は引けない。在庫は減らない。
	ok, err = repo.DecreaseStockIfEnough(ctx, v.ID, 3)
	assert.NoError(t, err)
	assert.False(t, ok)

	var got model.ProductVariant
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.Equal(t, int64(2), got.StockQuantity)
}

func TestInventoryGorm_IncreaseStock(t *testing.T) {
	db := openTestDB(t)
	repo := infraRepo.NewInventoryGormRepository(db)
	ctx := context.Background()

	v := createTestVariant(t, db, 2)

	require.NoError(t, repo.IncreaseStock(ctx, v.ID, 3))

	var got model.ProductVariant
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.Equal(t, int64(5), got.StockQuantity)
}

// (user_id, variant_id) は1行のまま数量だけ加算される
func TestCartGorm_UpsertMergesQuantity(t *testing.T) {
	db := openTestDB(t)
	repo := infraRepo.NewCartGormRepository(db)
	ctx := context.Background()

	v := createTestVariant(t, db, 100)
	userID := time.Now().UnixNano() // 他テストと衝突しないユーザー

	t.Cleanup(func() {
		db.Where("user_id = ?", userID).Delete(&model.CartItem{})
	})

	require.NoError(t, repo.UpsertByUserAndVariant(ctx, userID, 999999, v.ID, 2))
	require.NoError(t, repo.UpsertByUserAndVariant(ctx, userID, 999999, v.ID, 3))

	items, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Quantity)
}
