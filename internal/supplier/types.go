package supplier

import (
	"github.com/haocai/material-system/pkg/dal"
)

// CreateRequest 创建供应商请求
type CreateRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Status  *int8  `json:"status"`
	Remark  string `json:"remark"`
}

// UpdateRequest 更新供应商请求
type UpdateRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Status  *int8  `json:"status"`
	Remark  string `json:"remark"`
}

// ListRequest 供应商列表请求
type ListRequest struct {
	dal.Pagination
	Name   string `query:"name"`
	Code   string `query:"code"`
	Status *int8  `query:"status"`
}
