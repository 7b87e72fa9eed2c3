package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/logger"
	"go.uber.org/zap"
)

// 安全上下文在请求Locals中的键
const securityContextKey = "securityContext"

// AuthorityResolver 认证时解析用户的有效权限集合
// 由权限模块实现：用户→角色→权限去重后的编码集合
type AuthorityResolver interface {
	ResolvePermissionCodes(ctx context.Context, userID int64) ([]string, error)
}

// AuthGateConfig 认证网关配置
type AuthGateConfig struct {
	Tokens   *auth.TokenService
	Resolver AuthorityResolver
	Header   string // token所在请求头，默认 Authorization
	Prefix   string // token前缀，默认 "Bearer "
}

// AuthenticationGate 认证网关
// 每个请求执行一次：提取并验证token，成功则填充安全上下文。
// 放行策略：缺失或无效token不在此处拒绝，只记录原因后继续（公共接口与受保护
// 接口共用同一管线，拒绝由授权网关针对声明了所需权限的操作执行）。
func AuthenticationGate(cfg AuthGateConfig) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = "Authorization"
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "Bearer "
	}

	return func(c *fiber.Ctx) error {
		raw := c.Get(header)
		if raw == "" || !strings.HasPrefix(raw, prefix) {
			return c.Next()
		}
		tokenString := strings.TrimPrefix(raw, prefix)

		claims, err := cfg.Tokens.Validate(tokenString)
		if err != nil {
			// 只记录失败类型，不回显token内容
			logger.Warn("token validation failed",
				zap.Error(err),
				zap.String("path", c.Path()),
			)
			return c.Next()
		}

		userID, err := cfg.Tokens.GetUserID(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrClaimMissing) {
				// 自己签发的token缺少userId，内部契约被破坏
				logger.Error("issued token lacks userId claim", zap.String("path", c.Path()))
			}
			return c.Next()
		}

		username, _ := claims[auth.ClaimUsername].(string)

		codes, err := cfg.Resolver.ResolvePermissionCodes(c.UserContext(), userID)
		if err != nil {
			logger.Error("resolve permission codes failed",
				zap.Error(err),
				zap.Int64("userId", userID),
			)
			return c.Next()
		}

		c.Locals(securityContextKey, auth.NewSecurityContext(userID, username, codes))
		return c.Next()
	}
}

// GetSecurityContext 获取当前请求的安全上下文，未认证时返回nil
func GetSecurityContext(c *fiber.Ctx) *auth.SecurityContext {
	sc, _ := c.Locals(securityContextKey).(*auth.SecurityContext)
	return sc
}

// GetUserID 获取当前用户ID，未认证时返回0
func GetUserID(c *fiber.Ctx) int64 {
	if sc := GetSecurityContext(c); sc != nil {
		return sc.UserID
	}
	return 0
}

// GetUsername 获取当前用户名，未认证时返回空串
func GetUsername(c *fiber.Ctx) string {
	if sc := GetSecurityContext(c); sc != nil {
		return sc.Principal
	}
	return ""
}

// SetSecurityContextForTest 测试用：直接注入安全上下文
func SetSecurityContextForTest(c *fiber.Ctx, sc *auth.SecurityContext) {
	c.Locals(securityContextKey, sc)
}
