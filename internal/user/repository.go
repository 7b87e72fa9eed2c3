package user

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 用户仓储接口
type Repository interface {
	dal.Repository[model.User]
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// repository 用户仓储实现
type repository struct {
	*dal.BaseRepository[model.User]
}

// NewRepository 创建用户仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.User](),
	}
}

// FindByUsername 根据用户名查找
func (r *repository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.FindOne(ctx, map[string]interface{}{"username": username})
}

// UserRoleRepository 用户角色关联仓储
type UserRoleRepository interface {
	FindRoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	BatchCreate(ctx context.Context, userID int64, roleIDs []int64) error
}

// userRoleRepository 用户角色关联仓储实现
type userRoleRepository struct {
	*dal.BaseRepository[model.UserRole]
}

// NewUserRoleRepository 创建用户角色关联仓储
func NewUserRoleRepository() UserRoleRepository {
	return &userRoleRepository{
		BaseRepository: dal.NewBaseRepository[model.UserRole](),
	}
}

// FindRoleIDsByUserID 查找用户的角色ID
func (r *userRoleRepository) FindRoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.DB().WithContext(ctx).
		Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role_id", &ids).Error
	return ids, err
}

// DeleteByUserID 根据用户ID软删除所有关联
func (r *userRoleRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserRole{}).Error
}

// BatchCreate 批量创建关联
func (r *userRoleRepository) BatchCreate(ctx context.Context, userID int64, roleIDs []int64) error {
	if len(roleIDs) == 0 {
		return nil
	}

	urs := make([]model.UserRole, len(roleIDs))
	for i, roleID := range roleIDs {
		urs[i] = model.UserRole{
			UserID: userID,
			RoleID: roleID,
		}
	}

	return r.DB().WithContext(ctx).CreateInBatches(urs, 100).Error
}
