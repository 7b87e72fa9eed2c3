package inventory

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"gorm.io/gorm"
)

// Repository 库存仓储接口
type Repository interface {
	dal.Repository[model.Inventory]
	FindByMaterialID(ctx context.Context, materialID int64) (*model.Inventory, error)
	FindWarnings(ctx context.Context) ([]model.Inventory, error)
	Adjust(ctx context.Context, materialID int64, delta int) (*model.Inventory, error)
}

// ErrInsufficientStock 出库数量超过当前库存
var ErrInsufficientStock = errors.New(400, "库存不足")

// repository 库存仓储实现
type repository struct {
	*dal.BaseRepository[model.Inventory]
}

// NewRepository 创建库存仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.Inventory](),
	}
}

// FindByMaterialID 根据耗材ID查找库存行
func (r *repository) FindByMaterialID(ctx context.Context, materialID int64) (*model.Inventory, error) {
	return r.FindOne(ctx, map[string]interface{}{"material_id": materialID})
}

// FindWarnings 查找低于下限的库存行
func (r *repository) FindWarnings(ctx context.Context) ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.DB().WithContext(ctx).
		Where("min_stock > 0 AND quantity < min_stock").
		Order("quantity ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// Adjust 调整库存，首次入库自动建行
// 非负守卫写在UPDATE的WHERE里，并发出库不会把数量减成负数
func (r *repository) Adjust(ctx context.Context, materialID int64, delta int) (*model.Inventory, error) {
	var result *model.Inventory
	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&model.Inventory{}).
			Where("material_id = ? AND quantity + ? >= 0", materialID, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 没改到行：要么库存行不存在，要么会减成负数
			var exists int64
			if err := tx.Model(&model.Inventory{}).Where("material_id = ?", materialID).Count(&exists).Error; err != nil {
				return err
			}
			if exists > 0 || delta < 0 {
				return ErrInsufficientStock
			}
			if err := tx.Create(&model.Inventory{MaterialID: materialID, Quantity: delta}).Error; err != nil {
				return err
			}
		}

		var inv model.Inventory
		if err := tx.Where("material_id = ?", materialID).First(&inv).Error; err != nil {
			return err
		}
		result = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
