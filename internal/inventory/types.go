package inventory

import (
	"github.com/haocai/material-system/pkg/dal"
)

// AdjustRequest 库存调整请求
// delta为正表示入库，为负表示出库
type AdjustRequest struct {
	MaterialID int64 `json:"materialId"`
	Delta      int   `json:"delta"`
}

// SetStockLimitsRequest 设置库存上下限请求
type SetStockLimitsRequest struct {
	MinStock *int `json:"minStock"`
	MaxStock *int `json:"maxStock"`
}

// ListRequest 库存列表请求
type ListRequest struct {
	dal.Pagination
	MaterialID *int64 `query:"materialId"`
}
