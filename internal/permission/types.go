package permission

import (
	"github.com/haocai/material-system/pkg/dal"
)

// CreateRequest 创建权限请求
type CreateRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Type      string `json:"type"`
	ParentID  int64  `json:"parentId"`
	Path      string `json:"path"`
	Component string `json:"component"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
	Status    *int8  `json:"status"`
}

// UpdateRequest 更新权限请求
type UpdateRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ParentID  *int64 `json:"parentId"`
	Path      string `json:"path"`
	Component string `json:"component"`
	Icon      string `json:"icon"`
	SortOrder *int   `json:"sortOrder"`
	Status    *int8  `json:"status"`
}

// ListRequest 权限列表请求
type ListRequest struct {
	dal.Pagination
	Name   string `query:"name"`
	Code   string `query:"code"`
	Type   string `query:"type"`
	Status *int8  `query:"status"`
}
