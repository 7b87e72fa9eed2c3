package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/response"
)

// RequirePermissions 授权网关
// 所需权限编码与组合方式作为路由元数据声明一次，分发时统一执行：
//  1. 未声明所需权限的操作无条件放行
//  2. 无认证身份到达受保护操作 → 401
//  3. 按组合方式（AND全部/OR任一）对照认证时解析的权限集合 → 不满足为403
func RequirePermissions(logical auth.Logical, codes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(codes) == 0 {
			return c.Next()
		}

		sc := GetSecurityContext(c)
		if sc == nil {
			return response.Unauthenticated(c, nil)
		}

		if !sc.Satisfies(logical, codes) {
			return response.PermissionDenied(c, codes)
		}

		return c.Next()
	}
}

// RequirePermission 要求单个权限编码
func RequirePermission(code string) fiber.Handler {
	return RequirePermissions(auth.LogicalOr, code)
}

// RequireAuthenticated 仅要求已认证身份，不检查具体权限
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSecurityContext(c) == nil {
			return response.Unauthenticated(c, nil)
		}
		return c.Next()
	}
}
