package permission

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 权限仓储接口
type Repository interface {
	dal.Repository[model.Permission]
	FindByCode(ctx context.Context, code string) (*model.Permission, error)
	FindAllOrdered(ctx context.Context) ([]model.Permission, error)
	FindByRoleID(ctx context.Context, roleID int64) ([]model.Permission, error)
	CountChildren(ctx context.Context, parentID int64) (int64, error)
}

// repository 权限仓储实现
type repository struct {
	*dal.BaseRepository[model.Permission]
}

// NewRepository 创建权限仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.Permission](),
	}
}

// FindByCode 根据编码查找
func (r *repository) FindByCode(ctx context.Context, code string) (*model.Permission, error) {
	return r.FindOne(ctx, map[string]interface{}{"code": code})
}

// FindAllOrdered 查找全部权限，按树内兄弟顺序排列
func (r *repository) FindAllOrdered(ctx context.Context) ([]model.Permission, error) {
	return r.FindAll(ctx, nil, dal.WithOrder("sort_order ASC, id ASC"))
}

// FindByRoleID 根据角色ID查找权限
func (r *repository) FindByRoleID(ctx context.Context, roleID int64) ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.DB().WithContext(ctx).
		Joins("JOIN sys_role_permission ON sys_role_permission.permission_id = sys_permission.id AND sys_role_permission.deleted_at IS NULL").
		Where("sys_role_permission.role_id = ?", roleID).
		Order("sys_permission.sort_order ASC, sys_permission.id ASC").
		Find(&permissions).Error
	return permissions, err
}

// CountChildren 统计直接子节点数量
func (r *repository) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	return r.Count(ctx, map[string]interface{}{"parent_id": parentID})
}

// RolePermissionRepository 角色权限关联仓储
type RolePermissionRepository interface {
	FindByRoleID(ctx context.Context, roleID int64) ([]model.RolePermission, error)
	DeleteByRoleID(ctx context.Context, roleID int64) error
	BatchCreate(ctx context.Context, roleID int64, permissionIDs []int64) error
	CountByPermissionID(ctx context.Context, permissionID int64) (int64, error)
}

// rolePermissionRepository 角色权限关联仓储实现
type rolePermissionRepository struct {
	*dal.BaseRepository[model.RolePermission]
}

// NewRolePermissionRepository 创建角色权限关联仓储
func NewRolePermissionRepository() RolePermissionRepository {
	return &rolePermissionRepository{
		BaseRepository: dal.NewBaseRepository[model.RolePermission](),
	}
}

// FindByRoleID 根据角色ID查找关联
func (r *rolePermissionRepository) FindByRoleID(ctx context.Context, roleID int64) ([]model.RolePermission, error) {
	return r.FindAll(ctx, map[string]interface{}{"role_id": roleID})
}

// DeleteByRoleID 根据角色ID软删除所有关联
func (r *rolePermissionRepository) DeleteByRoleID(ctx context.Context, roleID int64) error {
	return r.DB().WithContext(ctx).
		Where("role_id = ?", roleID).
		Delete(&model.RolePermission{}).Error
}

// BatchCreate 批量创建关联
func (r *rolePermissionRepository) BatchCreate(ctx context.Context, roleID int64, permissionIDs []int64) error {
	if len(permissionIDs) == 0 {
		return nil
	}

	rps := make([]model.RolePermission, len(permissionIDs))
	for i, permID := range permissionIDs {
		rps[i] = model.RolePermission{
			RoleID:       roleID,
			PermissionID: permID,
		}
	}

	return r.DB().WithContext(ctx).CreateInBatches(rps, 100).Error
}

// CountByPermissionID 统计引用某权限的有效关联数
func (r *rolePermissionRepository) CountByPermissionID(ctx context.Context, permissionID int64) (int64, error) {
	return r.Count(ctx, map[string]interface{}{"permission_id": permissionID})
}
