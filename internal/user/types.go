package user

import (
	"github.com/haocai/material-system/pkg/dal"
)

// CreateRequest 创建用户请求
type CreateRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Nickname string  `json:"nickname"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	DeptID   int64   `json:"deptId"`
	Status   *int8   `json:"status"`
	RoleIDs  []int64 `json:"roleIds"`
}

// UpdateRequest 更新用户请求
type UpdateRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
	DeptID   *int64 `json:"deptId"`
	Status   *int8  `json:"status"`
}

// ListRequest 用户列表请求
type ListRequest struct {
	dal.Pagination
	Username string `query:"username"`
	Nickname string `query:"nickname"`
	Phone    string `query:"phone"`
	DeptID   *int64 `query:"deptId"`
	Status   *int8  `query:"status"`
}

// AssignRolesRequest 分配角色请求
type AssignRolesRequest struct {
	RoleIDs []int64 `json:"roleIds"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// StatusRequest 启用/禁用请求
type StatusRequest struct {
	Status int8 `json:"status"`
}
