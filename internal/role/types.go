package role

import (
	"github.com/haocai/material-system/pkg/dal"
)

// CreateRequest 创建角色请求
type CreateRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Sort        int    `json:"sort"`
	Status      *int8  `json:"status"`
	Description string `json:"description"`
}

// UpdateRequest 更新角色请求
type UpdateRequest struct {
	Name        string `json:"name"`
	Sort        *int   `json:"sort"`
	Status      *int8  `json:"status"`
	Description string `json:"description"`
}

// ListRequest 角色列表请求
type ListRequest struct {
	dal.Pagination
	Name   string `query:"name"`
	Code   string `query:"code"`
	Status *int8  `query:"status"`
}

// SetPermissionsRequest 设置角色权限请求
type SetPermissionsRequest struct {
	PermissionIDs []int64 `json:"permissionIds"`
}

// StatusRequest 启用/禁用请求
type StatusRequest struct {
	Status int8 `json:"status"`
}
