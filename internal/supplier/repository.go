package supplier

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 供应商仓储接口
type Repository interface {
	dal.Repository[model.Supplier]
	FindByCode(ctx context.Context, code string) (*model.Supplier, error)
	CountMaterials(ctx context.Context, supplierID int64) (int64, error)
}

// repository 供应商仓储实现
type repository struct {
	*dal.BaseRepository[model.Supplier]
}

// NewRepository 创建供应商仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.Supplier](),
	}
}

// FindByCode 根据编码查找
func (r *repository) FindByCode(ctx context.Context, code string) (*model.Supplier, error) {
	return r.FindOne(ctx, map[string]interface{}{"code": code})
}

// CountMaterials 统计该供应商关联的耗材数量
func (r *repository) CountMaterials(ctx context.Context, supplierID int64) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Model(&model.Material{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}
