package permission

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

// newTestDB 打开内存数据库并迁移表结构
// 限制为单连接，保证所有操作落在同一个内存实例上
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

	database.SetForTest(db)
	return db
}

func seedPermission(t *testing.T, db *gorm.DB, p *model.Permission) *model.Permission {
	t.Helper()
	if p.Type == "" {
		p.Type = model.PermissionTypeAPI
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedRole(t *testing.T, db *gorm.DB, code string, status int8) *model.Role {
	t.Helper()
	r := &model.Role{Name: code, Code: code, Status: status}
	require.NoError(t, db.Create(r).Error)
	return r
}

func grant(t *testing.T, db *gorm.DB, roleID int64, permIDs ...int64) {
	t.Helper()
	for _, pid := range permIDs {
		require.NoError(t, db.Create(&model.RolePermission{RoleID: roleID, PermissionID: pid}).Error)
	}
}

func assign(t *testing.T, db *gorm.DB, userID int64, roleIDs ...int64) {
	t.Helper()
	for _, rid := range roleIDs {
		require.NoError(t, db.Create(&model.UserRole{UserID: userID, RoleID: rid}).Error)
	}
}

func TestResolveZeroRoles(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(NewStore(db))

	codes, err := resolver.ResolvePermissionCodes(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestResolveUnionAcrossRoles(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(NewStore(db))

	p1 := seedPermission(t, db, &model.Permission{Name: "P1", Code: "p1", Status: 1})
	p2 := seedPermission(t, db, &model.Permission{Name: "P2", Code: "p2", Status: 1})
	p3 := seedPermission(t, db, &model.Permission{Name: "P3", Code: "p3", Status: 1})

	r1 := seedRole(t, db, "r1", 1)
	r2 := seedRole(t, db, "r2", 1)
	grant(t, db, r1.ID, p1.ID, p2.ID)
	grant(t, db, r2.ID, p2.ID, p3.ID)
	assign(t, db, 10, r1.ID, r2.ID)

	codes, err := resolver.ResolvePermissionCodes(context.Background(), 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, codes)
}

func TestResolveSkipsDisabledRole(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(NewStore(db))

	p1 := seedPermission(t, db, &model.Permission{Name: "P1", Code: "p1", Status: 1})
	p2 := seedPermission(t, db, &model.Permission{Name: "P2", Code: "p2", Status: 1})

	active := seedRole(t, db, "active", 1)
	disabled := seedRole(t, db, "disabled", 0)
	grant(t, db, active.ID, p1.ID)
	grant(t, db, disabled.ID, p2.ID)
	assign(t, db, 10, active.ID, disabled.ID)

	codes, err := resolver.ResolvePermissionCodes(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, codes)
}

func TestResolveSkipsDisabledPermission(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(NewStore(db))

	p1 := seedPermission(t, db, &model.Permission{Name: "P1", Code: "p1", Status: 1})
	p2 := seedPermission(t, db, &model.Permission{Name: "P2", Code: "p2", Status: 0})

	r1 := seedRole(t, db, "r1", 1)
	grant(t, db, r1.ID, p1.ID, p2.ID)
	assign(t, db, 10, r1.ID)

	codes, err := resolver.ResolvePermissionCodes(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, codes)
}

func TestResolveSkipsSoftDeletedAssociations(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(NewStore(db))

	p1 := seedPermission(t, db, &model.Permission{Name: "P1", Code: "p1", Status: 1})
	p2 := seedPermission(t, db, &model.Permission{Name: "P2", Code: "p2", Status: 1})

	r1 := seedRole(t, db, "r1", 1)
	r2 := seedRole(t, db, "r2", 1)
	grant(t, db, r1.ID, p1.ID)
	grant(t, db, r2.ID, p2.ID)
	assign(t, db, 10, r1.ID, r2.ID)

	// 解除用户与r2的关联、r1与p1的授权，都只打删除标记
	require.NoError(t, db.Where("user_id = ? AND role_id = ?", 10, r2.ID).Delete(&model.UserRole{}).Error)
	require.NoError(t, db.Where("role_id = ? AND permission_id = ?", r1.ID, p1.ID).Delete(&model.RolePermission{}).Error)

	codes, err := resolver.ResolvePermissionCodes(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, codes)

	// 数据行仍在表里
	var raw int64
	require.NoError(t, db.Unscoped().Model(&model.UserRole{}).Where("user_id = ?", 10).Count(&raw).Error)
	assert.Equal(t, int64(2), raw)
}

func TestResolveMenuTree(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(NewStore(db))

	root := seedPermission(t, db, &model.Permission{Name: "系统", Code: "sys", Type: model.PermissionTypeMenu, Status: 1, SortOrder: 1})
	child := seedPermission(t, db, &model.Permission{Name: "用户", Code: "sys:user", Type: model.PermissionTypeMenu, ParentID: root.ID, Status: 1, SortOrder: 1})
	button := seedPermission(t, db, &model.Permission{Name: "新增", Code: "sys:user:add", Type: model.PermissionTypeButton, ParentID: child.ID, Status: 1})

	r1 := seedRole(t, db, "r1", 1)
	grant(t, db, r1.ID, root.ID, child.ID, button.ID)
	assign(t, db, 10, r1.ID)

	tree, err := resolver.ResolveMenuTree(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "sys:user", tree[0].Children[0].Code)
	// 按钮类型不进菜单树
	assert.Empty(t, tree[0].Children[0].Children)
}
