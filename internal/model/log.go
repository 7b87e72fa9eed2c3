package model

import (
	"github.com/haocai/material-system/pkg/dal"
)

// LoginLog 登录日志
type LoginLog struct {
	dal.Model
	UserID    int64  `gorm:"index" json:"userId"`
	Username  string `gorm:"size:50;index" json:"username"`
	IP        string `gorm:"size:50" json:"ip"`
	UserAgent string `gorm:"size:255" json:"userAgent"`
	Success   bool   `gorm:"default:false" json:"success"`
	Message   string `gorm:"size:255" json:"message"`
}

// TableName 表名
func (LoginLog) TableName() string {
	return "sys_login_log"
}

// OperationLog 操作日志
type OperationLog struct {
	dal.Model
	UserID    int64  `gorm:"index" json:"userId"`
	Username  string `gorm:"size:50" json:"username"`
	Method    string `gorm:"size:10" json:"method"`
	Path      string `gorm:"size:255" json:"path"`
	IP        string `gorm:"size:50" json:"ip"`
	UserAgent string `gorm:"size:255" json:"userAgent"`
	Status    int    `gorm:"default:0" json:"status"`
	LatencyMs int64  `gorm:"default:0" json:"latencyMs"`
}

// TableName 表名
func (OperationLog) TableName() string {
	return "sys_operation_log"
}
