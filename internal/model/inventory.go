package model

import (
	"github.com/haocai/material-system/pkg/dal"
)

// Inventory 耗材库存，每种耗材一行
type Inventory struct {
	dal.Model
	MaterialID int64 `gorm:"uniqueIndex;not null" json:"materialId"`
	Quantity   int   `gorm:"default:0" json:"quantity"`
	MinStock   int   `gorm:"default:0" json:"minStock"`
	MaxStock   int   `gorm:"default:0" json:"maxStock"`
}

// TableName 表名
func (Inventory) TableName() string {
	return "material_inventory"
}
