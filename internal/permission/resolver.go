package permission

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"gorm.io/gorm"
)

// Store 权限解析所需的最小数据访问契约
// 三步各自独立可测：用户→角色ID，角色ID→权限ID（去重），权限ID→启用的权限行
type Store interface {
	FindRoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	FindPermissionIDsByRoleIDs(ctx context.Context, roleIDs []int64) ([]int64, error)
	FindEnabledPermissionsByIDs(ctx context.Context, ids []int64) ([]model.Permission, error)
}

// gormStore 基于gorm的Store实现
type gormStore struct {
	db *gorm.DB
}

// NewStore 创建权限解析数据访问层
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// FindRoleIDsByUserID 查找用户的启用角色ID
// 软删除的关联和禁用的角色都不参与
func (s *gormStore) FindRoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Joins("JOIN sys_role ON sys_role.id = sys_user_role.role_id AND sys_role.status = 1 AND sys_role.deleted_at IS NULL").
		Where("sys_user_role.user_id = ?", userID).
		Distinct().
		Pluck("sys_user_role.role_id", &ids).Error
	return ids, err
}

// FindPermissionIDsByRoleIDs 查找角色集合关联的权限ID，去重
func (s *gormStore) FindPermissionIDsByRoleIDs(ctx context.Context, roleIDs []int64) ([]int64, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&model.RolePermission{}).
		Where("role_id IN ?", roleIDs).
		Distinct().
		Pluck("permission_id", &ids).Error
	return ids, err
}

// FindEnabledPermissionsByIDs 按ID查找启用的权限行
func (s *gormStore) FindEnabledPermissionsByIDs(ctx context.Context, ids []int64) ([]model.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var permissions []model.Permission
	err := s.db.WithContext(ctx).
		Where("id IN ? AND status = 1", ids).
		Order("sort_order ASC, id ASC").
		Find(&permissions).Error
	return permissions, err
}

// Resolver 权限解析器
// 把用户ID解析为有效权限集合：用户的启用角色 → 关联权限 → 启用的权限编码并集
type Resolver struct {
	store Store
}

// NewResolver 创建权限解析器
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolvePermissions 解析用户的有效权限行
// 没有任何角色不是错误，返回空集
func (r *Resolver) ResolvePermissions(ctx context.Context, userID int64) ([]model.Permission, error) {
	roleIDs, err := r.store.FindRoleIDsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}

	permIDs, err := r.store.FindPermissionIDsByRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	if len(permIDs) == 0 {
		return nil, nil
	}

	return r.store.FindEnabledPermissionsByIDs(ctx, permIDs)
}

// ResolvePermissionCodes 解析用户的有效权限编码集合
func (r *Resolver) ResolvePermissionCodes(ctx context.Context, userID int64) ([]string, error) {
	permissions, err := r.ResolvePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(permissions))
	seen := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		if _, ok := seen[p.Code]; ok {
			continue
		}
		seen[p.Code] = struct{}{}
		codes = append(codes, p.Code)
	}
	return codes, nil
}

// ResolveMenuTree 解析用户的菜单树（只含menu类型的启用权限）
func (r *Resolver) ResolveMenuTree(ctx context.Context, userID int64) ([]*TreeNode, error) {
	permissions, err := r.ResolvePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	menus := make([]model.Permission, 0, len(permissions))
	for _, p := range permissions {
		if p.Type == model.PermissionTypeMenu {
			menus = append(menus, p)
		}
	}
	return BuildTree(menus, 0), nil
}
