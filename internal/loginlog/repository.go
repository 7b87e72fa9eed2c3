package loginlog

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
)

// Repository 登录日志仓储接口
type Repository interface {
	dal.Repository[model.LoginLog]
	Record(ctx context.Context, entry *model.LoginLog) error
}

// repository 登录日志仓储实现
type repository struct {
	*dal.BaseRepository[model.LoginLog]
}

// NewRepository 创建登录日志仓储
func NewRepository() Repository {
	return &repository{
		BaseRepository: dal.NewBaseRepository[model.LoginLog](),
	}
}

// Record 记录一条登录日志
func (r *repository) Record(ctx context.Context, entry *model.LoginLog) error {
	return r.Create(ctx, entry)
}
