package material

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 耗材仓储接口
type Repository interface {
	dal.Repository[model.Material]
	FindByCode(ctx context.Context, code string) (*model.Material, error)
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
}

// repository 耗材仓储实现
type repository struct {
	*dal.BaseRepository[model.Material]
}

// NewRepository 创建耗材仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.Material](),
	}
}

// FindByCode 根据编码查找
func (r *repository) FindByCode(ctx context.Context, code string) (*model.Material, error) {
	return r.FindOne(ctx, map[string]interface{}{"code": code})
}

// CountByCategoryID 统计分类下的耗材数量
func (r *repository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	return r.Count(ctx, map[string]interface{}{"category_id": categoryID})
}

// CategoryRepository 耗材分类仓储接口
type CategoryRepository interface {
	dal.Repository[model.MaterialCategory]
	FindByCode(ctx context.Context, code string) (*model.MaterialCategory, error)
	FindAllOrdered(ctx context.Context) ([]model.MaterialCategory, error)
	CountChildren(ctx context.Context, parentID int64) (int64, error)
}

// categoryRepository 耗材分类仓储实现
type categoryRepository struct {
	*dal.BaseRepository[model.MaterialCategory]
}

// NewCategoryRepository 创建耗材分类仓储
func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{
		BaseRepository: dal.NewBaseRepository[model.MaterialCategory](),
	}
}

// FindByCode 根据编码查找
func (r *categoryRepository) FindByCode(ctx context.Context, code string) (*model.MaterialCategory, error) {
	return r.FindOne(ctx, map[string]interface{}{"code": code})
}

// FindAllOrdered 查找全部分类，按树内兄弟顺序排列
func (r *categoryRepository) FindAllOrdered(ctx context.Context) ([]model.MaterialCategory, error) {
	return r.FindAll(ctx, nil, dal.WithOrder("sort ASC, id ASC"))
}

// CountChildren 统计直接子分类数量
func (r *categoryRepository) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	return r.Count(ctx, map[string]interface{}{"parent_id": parentID})
}
