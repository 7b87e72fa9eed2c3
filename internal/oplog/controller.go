package oplog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/logger"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
	"go.uber.org/zap"
)

// ListRequest 操作日志列表请求
type ListRequest struct {
	dal.Pagination
	Username string `query:"username"`
	Method   string `query:"method"`
	Path     string `query:"path"`
}

// Controller 操作日志控制器
type Controller struct {
	repo Repository
}

// NewController 创建操作日志控制器
func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// RegisterRoutes 注册路由
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/operation-logs")
	g.Get("", middleware.RequirePermission("log:list"), c.list)
}

// RecordFunc 返回写操作日志的回调，挂到操作日志中间件上
// 写日志失败只记录，不影响请求
func (c *Controller) RecordFunc() middleware.OperationLogFunc {
	return func(userID int64, username, method, path, ip, userAgent string, status int, latency time.Duration) {
		entry := &model.OperationLog{
			UserID:    userID,
			Username:  username,
			Method:    method,
			Path:      path,
			IP:        ip,
			UserAgent: userAgent,
			Status:    status,
			LatencyMs: latency.Milliseconds(),
		}
		if err := c.repo.Record(context.Background(), entry); err != nil {
			logger.Error("record operation log failed", zap.Error(err), zap.String("path", path))
		}
	}
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.OperationLog{})
	if req.Username != "" {
		query = query.Where("username LIKE ?", "%"+req.Username+"%")
	}
	if req.Method != "" {
		query = query.Where("method = ?", req.Method)
	}
	if req.Path != "" {
		query = query.Where("path LIKE ?", "%"+req.Path+"%")
	}
	query = query.Order("id DESC")

	result, err := c.repo.FindPagedWithQuery(ctx.UserContext(), query, &req.Pagination)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.SuccessPage(ctx, result.Items, result.Total, result.Page, result.PageSize)
}
