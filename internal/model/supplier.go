package model

import (
	"github.com/haocai/material-system/pkg/dal"
)

// Supplier 供应商信息
type Supplier struct {
	dal.Model
	Name    string `gorm:"size:100;not null" json:"name"`
	Code    string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Contact string `gorm:"size:50" json:"contact"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`
	Status  int8   `gorm:"not null" json:"status"` // 1:合作中 0:停止合作
	Remark  string `gorm:"size:255" json:"remark"`
}

// TableName 表名
func (Supplier) TableName() string {
	return "supplier_info"
}
