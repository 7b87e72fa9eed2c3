package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/loginlog"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/internal/permission"
	"github.com/haocai/material-system/internal/user"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/config"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/logger"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
	"go.uber.org/zap"
)

// Controller 认证控制器
type Controller struct {
	tokens    *auth.TokenService
	userRepo  user.Repository
	resolver  *permission.Resolver
	loginLogs loginlog.Repository
	throttle  *Throttle
}

// NewController 创建认证控制器
func NewController(tokens *auth.TokenService, userRepo user.Repository, resolver *permission.Resolver, loginLogs loginlog.Repository, throttle *Throttle) *Controller {
	return &Controller{
		tokens:    tokens,
		userRepo:  userRepo,
		resolver:  resolver,
		loginLogs: loginLogs,
		throttle:  throttle,
	}
}

// RegisterRoutes 注册路由
// 登录和刷新是公开接口；登出和个人信息要求已认证身份
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/auth")
	g.Post("/login", c.login)
	g.Post("/refresh", c.refresh)
	g.Post("/logout", middleware.RequireAuthenticated(), c.logout)
	g.Get("/me", middleware.RequireAuthenticated(), c.me)
}

func (c *Controller) login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	if req.Username == "" || req.Password == "" {
		return response.ValidateError(ctx, "用户名和密码不能为空")
	}

	if c.throttle.Locked(ctx.UserContext(), req.Username) {
		c.recordLogin(ctx, 0, req.Username, false, "账号已锁定")
		return response.Error(ctx, 429, "登录失败次数过多，请稍后再试")
	}

	u, err := c.userRepo.FindByUsername(ctx.UserContext(), req.Username)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}

	// 用户不存在和密码错误对外同一提示，避免用户名枚举
	if u == nil || !auth.CheckPassword(req.Password, u.Password) {
		c.throttle.RecordFailure(ctx.UserContext(), req.Username)
		var userID int64
		if u != nil {
			userID = u.ID
		}
		c.recordLogin(ctx, userID, req.Username, false, "用户名或密码错误")
		return response.Error(ctx, 401, "用户名或密码错误")
	}

	if u.Status != 1 {
		c.recordLogin(ctx, u.ID, u.Username, false, "账号已禁用")
		return response.Error(ctx, 403, "账号已禁用")
	}

	info, err := c.tokens.CreateTokenInfo(u.ID, u.Username)
	if err != nil {
		logger.Error("issue token failed", zap.Error(err), zap.Int64("userId", u.ID))
		return response.ServerError(ctx, "")
	}

	c.throttle.Reset(ctx.UserContext(), req.Username)
	c.recordLogin(ctx, u.ID, u.Username, true, "登录成功")
	return response.Success(ctx, info)
}

// recordLogin 写登录日志，失败只记日志不影响主流程
func (c *Controller) recordLogin(ctx *fiber.Ctx, userID int64, username string, success bool, message string) {
	entry := &model.LoginLog{
		UserID:    userID,
		Username:  username,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
		Success:   success,
		Message:   message,
	}
	if err := c.loginLogs.Record(ctx.UserContext(), entry); err != nil {
		logger.Error("record login log failed", zap.Error(err), zap.String("username", username))
	}
}

// refresh 刷新token，过期的token也允许刷新
func (c *Controller) refresh(ctx *fiber.Ctx) error {
	var req RefreshRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	tokenString := req.Token
	if tokenString == "" {
		// 兼容从请求头取token
		cfg := config.GetJWT()
		raw := ctx.Get(cfg.HeaderName())
		tokenString = strings.TrimPrefix(raw, cfg.HeaderPrefix())
	}

	refreshed, err := c.tokens.Refresh(tokenString)
	if err != nil {
		return response.Unauthenticated(ctx, err)
	}
	return response.Success(ctx, &auth.TokenInfo{
		AccessToken: refreshed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(c.tokens.ExpireIn().Seconds()),
	})
}

// logout 登出
// token无状态、不可吊销，服务端只记录事件；客户端丢弃token即完成登出
func (c *Controller) logout(ctx *fiber.Ctx) error {
	logger.Info("user logged out",
		zap.Int64("userId", middleware.GetUserID(ctx)),
		zap.String("username", middleware.GetUsername(ctx)),
	)
	return response.Success(ctx, nil)
}

// me 当前用户信息：基本资料、权限编码集合、菜单树
func (c *Controller) me(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)

	profile, err := c.buildProfile(ctx.UserContext(), userID)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if profile == nil {
		return response.NotFound(ctx, "用户不存在")
	}
	return response.Success(ctx, profile)
}

func (c *Controller) buildProfile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	codes, err := c.resolver.ResolvePermissionCodes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []string{}
	}

	menus, err := c.resolver.ResolveMenuTree(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		ID:          u.ID,
		Username:    u.Username,
		Nickname:    u.Nickname,
		Email:       u.Email,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		DeptID:      u.DeptID,
		Permissions: codes,
		Menus:       menus,
	}, nil
}
