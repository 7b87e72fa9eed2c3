package material

import (
	"github.com/haocai/material-system/pkg/dal"
)

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	ParentID int64  `json:"parentId"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Sort     int    `json:"sort"`
	Status   *int8  `json:"status"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	ParentID *int64 `json:"parentId"`
	Name     string `json:"name"`
	Sort     *int   `json:"sort"`
	Status   *int8  `json:"status"`
}

// CreateRequest 创建耗材请求
type CreateRequest struct {
	CategoryID  int64   `json:"categoryId"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Spec        string  `json:"spec"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	SupplierID  int64   `json:"supplierId"`
	Status      *int8   `json:"status"`
	Description string  `json:"description"`
}

// UpdateRequest 更新耗材请求
type UpdateRequest struct {
	CategoryID  *int64   `json:"categoryId"`
	Name        string   `json:"name"`
	Spec        string   `json:"spec"`
	Unit        string   `json:"unit"`
	Price       *float64 `json:"price"`
	SupplierID  *int64   `json:"supplierId"`
	Status      *int8    `json:"status"`
	Description string   `json:"description"`
}

// ListRequest 耗材列表请求
type ListRequest struct {
	dal.Pagination
	Name       string `query:"name"`
	Code       string `query:"code"`
	CategoryID *int64 `query:"categoryId"`
	SupplierID *int64 `query:"supplierId"`
	Status     *int8  `query:"status"`
}
