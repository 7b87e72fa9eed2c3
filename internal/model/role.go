package model

import (
	"github.com/haocai/material-system/pkg/dal"
	"gorm.io/gorm"
)

// Role 角色模型
type Role struct {
	dal.Model
	Name        string `gorm:"size:50;not null" json:"name"`
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Status      int8   `gorm:"not null" json:"status"` // 1:启用 0:禁用
	Sort        int    `gorm:"default:0" json:"sort"`
	Description string `gorm:"size:255" json:"description"`
}

// TableName 表名
func (Role) TableName() string {
	return "sys_role"
}

// RolePermission 角色权限关联
// 软删除：解除关联只打删除标记，保留历史
type RolePermission struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID       int64          `gorm:"index:idx_role_perm;not null" json:"roleId"`
	PermissionID int64          `gorm:"index:idx_role_perm;not null" json:"permissionId"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 表名
func (RolePermission) TableName() string {
	return "sys_role_permission"
}
