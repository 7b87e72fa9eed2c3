package bootstrap

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.Role{},
		&model.RolePermission{},
		&model.Permission{},
	))
	return db
}

func TestSeedGrantsAdminFullCatalog(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	var admin model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, int8(1), admin.Status)

	resolver := permission.NewResolver(permission.NewStore(db))
	codes, err := resolver.ResolvePermissionCodes(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Len(t, codes, len(seedCatalog))
	assert.Contains(t, codes, "user:create")
	assert.Contains(t, codes, "inventory:out")
}

func TestSeedBuildsPermissionForest(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	var root, menu, button model.Permission
	require.NoError(t, db.Where("code = ?", "system").First(&root).Error)
	require.NoError(t, db.Where("code = ?", "user:list").First(&menu).Error)
	require.NoError(t, db.Where("code = ?", "user:create").First(&button).Error)

	// 按钮挂在模块菜单下，模块菜单挂在系统管理下
	assert.Zero(t, root.ParentID)
	assert.Equal(t, root.ID, menu.ParentID)
	assert.Equal(t, menu.ID, button.ParentID)

	// 每个按钮都有父节点，目录不再是单层
	var flatButtons int64
	require.NoError(t, db.Model(&model.Permission{}).
		Where("type = ? AND parent_id = 0", model.PermissionTypeButton).
		Count(&flatButtons).Error)
	assert.Zero(t, flatButtons)
}

func TestSeedSkipsWhenUsersExist(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var users int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}
