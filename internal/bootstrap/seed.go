package bootstrap

import (
	"context"

	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// seedEntry 初始权限目录项，parentCode指向所属菜单
type seedEntry struct {
	name       string
	code       string
	typ        string
	parentCode string
	sortOrder  int
}

// 初始权限目录：与路由声明的权限编码一一对应
// 按钮挂在所属模块菜单下，系统类菜单统一挂在"系统管理"下；父节点必须排在子节点前面
var seedCatalog = []seedEntry{
	{name: "系统管理", code: "system", typ: model.PermissionTypeMenu, sortOrder: 1},
	{name: "用户管理", code: "user:list", typ: model.PermissionTypeMenu, parentCode: "system", sortOrder: 1},
	{name: "创建用户", code: "user:create", typ: model.PermissionTypeButton, parentCode: "user:list", sortOrder: 1},
	{name: "修改用户", code: "user:update", typ: model.PermissionTypeButton, parentCode: "user:list", sortOrder: 2},
	{name: "删除用户", code: "user:delete", typ: model.PermissionTypeButton, parentCode: "user:list", sortOrder: 3},
	{name: "重置密码", code: "user:resetPwd", typ: model.PermissionTypeButton, parentCode: "user:list", sortOrder: 4},
	{name: "用户详情", code: "user:view", typ: model.PermissionTypeButton, parentCode: "user:list", sortOrder: 5},
	{name: "角色管理", code: "role:list", typ: model.PermissionTypeMenu, parentCode: "system", sortOrder: 2},
	{name: "创建角色", code: "role:create", typ: model.PermissionTypeButton, parentCode: "role:list", sortOrder: 1},
	{name: "修改角色", code: "role:update", typ: model.PermissionTypeButton, parentCode: "role:list", sortOrder: 2},
	{name: "删除角色", code: "role:delete", typ: model.PermissionTypeButton, parentCode: "role:list", sortOrder: 3},
	{name: "分配权限", code: "role:assign", typ: model.PermissionTypeButton, parentCode: "role:list", sortOrder: 4},
	{name: "权限管理", code: "permission:list", typ: model.PermissionTypeMenu, parentCode: "system", sortOrder: 3},
	{name: "创建权限", code: "permission:create", typ: model.PermissionTypeButton, parentCode: "permission:list", sortOrder: 1},
	{name: "修改权限", code: "permission:update", typ: model.PermissionTypeButton, parentCode: "permission:list", sortOrder: 2},
	{name: "删除权限", code: "permission:delete", typ: model.PermissionTypeButton, parentCode: "permission:list", sortOrder: 3},
	{name: "部门管理", code: "dept:list", typ: model.PermissionTypeMenu, parentCode: "system", sortOrder: 4},
	{name: "创建部门", code: "dept:create", typ: model.PermissionTypeButton, parentCode: "dept:list", sortOrder: 1},
	{name: "修改部门", code: "dept:update", typ: model.PermissionTypeButton, parentCode: "dept:list", sortOrder: 2},
	{name: "删除部门", code: "dept:delete", typ: model.PermissionTypeButton, parentCode: "dept:list", sortOrder: 3},
	{name: "日志管理", code: "log:list", typ: model.PermissionTypeMenu, parentCode: "system", sortOrder: 5},
	{name: "耗材管理", code: "material:list", typ: model.PermissionTypeMenu, sortOrder: 2},
	{name: "创建耗材", code: "material:create", typ: model.PermissionTypeButton, parentCode: "material:list", sortOrder: 1},
	{name: "修改耗材", code: "material:update", typ: model.PermissionTypeButton, parentCode: "material:list", sortOrder: 2},
	{name: "删除耗材", code: "material:delete", typ: model.PermissionTypeButton, parentCode: "material:list", sortOrder: 3},
	{name: "供应商管理", code: "supplier:list", typ: model.PermissionTypeMenu, sortOrder: 3},
	{name: "创建供应商", code: "supplier:create", typ: model.PermissionTypeButton, parentCode: "supplier:list", sortOrder: 1},
	{name: "修改供应商", code: "supplier:update", typ: model.PermissionTypeButton, parentCode: "supplier:list", sortOrder: 2},
	{name: "删除供应商", code: "supplier:delete", typ: model.PermissionTypeButton, parentCode: "supplier:list", sortOrder: 3},
	{name: "库存管理", code: "inventory:list", typ: model.PermissionTypeMenu, sortOrder: 4},
	{name: "入库", code: "inventory:in", typ: model.PermissionTypeButton, parentCode: "inventory:list", sortOrder: 1},
	{name: "出库", code: "inventory:out", typ: model.PermissionTypeButton, parentCode: "inventory:list", sortOrder: 2},
	{name: "修改库存上下限", code: "inventory:update", typ: model.PermissionTypeButton, parentCode: "inventory:list", sortOrder: 3},
}

// Seed 首次启动时写入初始数据
// 已有用户则跳过；创建admin角色、全量权限目录、admin用户及其关联
func Seed(db *gorm.DB) error {
	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole := &model.Role{
			Name:        "超级管理员",
			Code:        "admin",
			Status:      1,
			Description: "系统初始管理员角色",
		}
		if err := tx.Create(adminRole).Error; err != nil {
			return err
		}

		idByCode := make(map[string]int64, len(seedCatalog))
		permIDs := make([]int64, 0, len(seedCatalog))
		for _, e := range seedCatalog {
			p := model.Permission{
				Name:      e.name,
				Code:      e.code,
				Type:      e.typ,
				ParentID:  idByCode[e.parentCode],
				SortOrder: e.sortOrder,
				Status:    1,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			idByCode[e.code] = p.ID
			permIDs = append(permIDs, p.ID)
		}

		rps := make([]model.RolePermission, len(permIDs))
		for i, id := range permIDs {
			rps[i] = model.RolePermission{RoleID: adminRole.ID, PermissionID: id}
		}
		if err := tx.CreateInBatches(rps, 100).Error; err != nil {
			return err
		}

		hashed, err := auth.HashPassword("admin123")
		if err != nil {
			return err
		}
		adminUser := &model.User{
			Username: "admin",
			Password: hashed,
			Nickname: "管理员",
			Status:   1,
		}
		if err := tx.Create(adminUser).Error; err != nil {
			return err
		}

		if err := tx.Create(&model.UserRole{UserID: adminUser.ID, RoleID: adminRole.ID}).Error; err != nil {
			return err
		}

		logger.Info("initial data seeded",
			zap.String("username", adminUser.Username),
			zap.Int("permissions", len(permIDs)),
		)
		return nil
	})
}
