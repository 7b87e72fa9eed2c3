package model

import (
	"github.com/haocai/material-system/pkg/dal"
)

// MaterialCategory 耗材分类
type MaterialCategory struct {
	dal.Model
	ParentID int64               `gorm:"default:0;index" json:"parentId"`
	Name     string              `gorm:"size:50;not null" json:"name"`
	Code     string              `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Sort     int                 `gorm:"default:0" json:"sort"`
	Status   int8                `gorm:"not null" json:"status"`
	Children []*MaterialCategory `gorm:"-" json:"children,omitempty"`
}

// TableName 表名
func (MaterialCategory) TableName() string {
	return "material_category"
}

// Material 耗材信息
type Material struct {
	dal.Model
	CategoryID  int64   `gorm:"index;not null" json:"categoryId"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Code        string  `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Spec        string  `gorm:"size:100" json:"spec"`
	Unit        string  `gorm:"size:20" json:"unit"`
	Price       float64 `gorm:"type:decimal(10,2);default:0" json:"price"`
	SupplierID  int64   `gorm:"index" json:"supplierId"`
	Status      int8    `gorm:"not null" json:"status"`
	Description string  `gorm:"size:255" json:"description"`
}

// TableName 表名
func (Material) TableName() string {
	return "material_info"
}
