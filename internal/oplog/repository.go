package oplog

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 操作日志仓储接口
type Repository interface {
	dal.Repository[model.OperationLog]
	Record(ctx context.Context, entry *model.OperationLog) error
}

// repository 操作日志仓储实现
type repository struct {
	*dal.BaseRepository[model.OperationLog]
}

// NewRepository 创建操作日志仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.OperationLog](),
	}
}

// Record 记录一条操作日志
func (r *repository) Record(ctx context.Context, entry *model.OperationLog) error {
	return r.Create(ctx, entry)
}
