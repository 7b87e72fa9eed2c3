package role

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 角色仓储接口
type Repository interface {
	dal.Repository[model.Role]
	FindByCode(ctx context.Context, code string) (*model.Role, error)
	CountAssignedUsers(ctx context.Context, roleID int64) (int64, error)
}

// repository 角色仓储实现
type repository struct {
	*dal.BaseRepository[model.Role]
}

// NewRepository 创建角色仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.Role](),
	}
}

// FindByCode 根据编码查找
func (r *repository) FindByCode(ctx context.Context, code string) (*model.Role, error) {
	return r.FindOne(ctx, map[string]interface{}{"code": code})
}

// CountAssignedUsers 统计分配了该角色的用户数
func (r *repository) CountAssignedUsers(ctx context.Context, roleID int64) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Model(&model.UserRole{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}
