package model

import (
	"github.com/haocai/material-system/pkg/dal"
)

// 权限类型
const (
	PermissionTypeMenu   = "menu"
	PermissionTypeButton = "button"
	PermissionTypeAPI    = "api"
)

// Permission 权限模型
// parent_id构成权限森林，0表示顶级节点；祖先链不允许成环
type Permission struct {
	dal.Model
	Name      string `gorm:"size:50;not null" json:"name"`
	Code      string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Type      string `gorm:"size:20;not null;default:menu" json:"type"` // menu/button/api
	ParentID  int64  `gorm:"default:0;index" json:"parentId"`
	Path      string `gorm:"size:255" json:"path"`
	Component string `gorm:"size:255" json:"component"`
	Icon      string `gorm:"size:100" json:"icon"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
	Status    int8   `gorm:"not null" json:"status"` // 1:启用 0:禁用
}

// TableName 表名
func (Permission) TableName() string {
	return "sys_permission"
}
