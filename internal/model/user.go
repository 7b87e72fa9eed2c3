package model

import (
	"github.com/haocai/material-system/pkg/dal"
	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	dal.Model
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Nickname string `gorm:"size:50" json:"nickname"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Avatar   string `gorm:"size:255" json:"avatar"`
	Status   int8   `gorm:"not null" json:"status"` // 1:正常 0:禁用
	DeptID   int64  `gorm:"index" json:"deptId"`
}

// TableName 表名
func (User) TableName() string {
	return "sys_user"
}

// UserRole 用户角色关联
// 软删除：解除关联只打删除标记，保留历史
type UserRole struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"index:idx_user_role;not null" json:"userId"`
	RoleID    int64          `gorm:"index:idx_user_role;not null" json:"roleId"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 表名
func (UserRole) TableName() string {
	return "sys_user_role"
}
