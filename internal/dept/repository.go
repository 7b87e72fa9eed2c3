package dept

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 部门仓储接口
type Repository interface {
	dal.Repository[model.Dept]
	FindAllOrdered(ctx context.Context) ([]model.Dept, error)
	CountChildren(ctx context.Context, parentID int64) (int64, error)
	CountMembers(ctx context.Context, deptID int64) (int64, error)
}

// repository 部门仓储实现
type repository struct {
	*dal.BaseRepository[model.Dept]
}

// NewRepository 创建部门仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.Dept](),
	}
}

// FindAllOrdered 查找全部部门，按树内兄弟顺序排列
func (r *repository) FindAllOrdered(ctx context.Context) ([]model.Dept, error) {
	return r.FindAll(ctx, nil, dal.WithOrder("sort ASC, id ASC"))
}

// CountChildren 统计直接子部门数量
func (r *repository) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	return r.Count(ctx, map[string]interface{}{"parent_id": parentID})
}

// CountMembers 统计部门下的用户数量
func (r *repository) CountMembers(ctx context.Context, deptID int64) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Model(&model.User{}).
		Where("dept_id = ?", deptID).
		Count(&count).Error
	return count, err
}
