package inventory

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Inventory{}))
	database.SetForTest(db)
	return NewRepository()
}

func TestAdjustCreatesRowOnFirstInbound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inv, err := repo.Adjust(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, inv.Quantity)

	found, err := repo.FindByMaterialID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 20, found.Quantity)
}

func TestAdjustInboundAndOutbound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Adjust(ctx, 1, 20)
	require.NoError(t, err)

	inv, err := repo.Adjust(ctx, 1, -5)
	require.NoError(t, err)
	assert.Equal(t, 15, inv.Quantity)
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Adjust(ctx, 1, 10)
	require.NoError(t, err)

	_, err = repo.Adjust(ctx, 1, -11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// 失败的出库不改变库存
	inv, err := repo.FindByMaterialID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)
}

func TestAdjustRejectsOutboundWithoutRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// 从未入库的耗材不允许出库，也不建行
	_, err := repo.Adjust(ctx, 9, -1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	found, err := repo.FindByMaterialID(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindWarnings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	low := &model.Inventory{MaterialID: 1, Quantity: 2, MinStock: 10}
	ok := &model.Inventory{MaterialID: 2, Quantity: 50, MinStock: 10}
	noLimit := &model.Inventory{MaterialID: 3, Quantity: 0}
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, ok))
	require.NoError(t, repo.Create(ctx, noLimit))

	warnings, err := repo.FindWarnings(ctx)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(1), warnings[0].MaterialID)
}
