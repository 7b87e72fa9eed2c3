package permission

import (
	"context"
	"testing"

	"github.com/haocai/material-system/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePermissionReplace(t *testing.T) {
	db := newTestDB(t)
	repo := NewRolePermissionRepository()
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, 1, []int64{10, 11}))

	rps, err := repo.FindByRoleID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rps, 2)

	// 全量覆盖：旧关联软删除后写入新关联
	require.NoError(t, repo.DeleteByRoleID(ctx, 1))
	require.NoError(t, repo.BatchCreate(ctx, 1, []int64{11, 12, 13}))

	rps, err = repo.FindByRoleID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rps, 3)

	// 软删除的关联仍保留在表里
	var raw int64
	require.NoError(t, db.Unscoped().Model(&model.RolePermission{}).Where("role_id = ?", 1).Count(&raw).Error)
	assert.Equal(t, int64(5), raw)
}

func TestCountByPermissionIDIgnoresSoftDeleted(t *testing.T) {
	_ = newTestDB(t)
	repo := NewRolePermissionRepository()
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, 1, []int64{10}))
	require.NoError(t, repo.BatchCreate(ctx, 2, []int64{10}))

	count, err := repo.CountByPermissionID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteByRoleID(ctx, 2))

	count, err = repo.CountByPermissionID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateDisabledPersistsDisabled(t *testing.T) {
	db := newTestDB(t)

	// 显式写入status=0不能被数据库默认值覆盖成启用
	role := &model.Role{Name: "停用角色", Code: "frozen", Status: 0}
	require.NoError(t, db.Create(role).Error)

	var gotRole model.Role
	require.NoError(t, db.First(&gotRole, role.ID).Error)
	assert.Equal(t, int8(0), gotRole.Status)

	perm := &model.Permission{Name: "停用权限", Code: "frozen:view", Status: 0}
	require.NoError(t, db.Create(perm).Error)

	var gotPerm model.Permission
	require.NoError(t, db.First(&gotPerm, perm.ID).Error)
	assert.Equal(t, int8(0), gotPerm.Status)
}

func TestFindByCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository()
	ctx := context.Background()

	seedPermission(t, db, &model.Permission{Name: "P1", Code: "p1", Status: 1})

	found, err := repo.FindByCode(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "P1", found.Name)

	missing, err := repo.FindByCode(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
