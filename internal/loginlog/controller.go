package loginlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// ListRequest 登录日志列表请求
type ListRequest struct {
	dal.Pagination
	Username string `query:"username"`
	Success  *bool  `query:"success"`
}

// Controller 登录日志控制器
type Controller struct {
	repo Repository
}

// NewController 创建登录日志控制器
func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// RegisterRoutes 注册路由
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/login-logs")
	g.Get("", middleware.RequirePermission("log:list"), c.list)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.LoginLog{})
	if req.Username != "" {
		query = query.Where("username LIKE ?", "%"+req.Username+"%")
	}
	if req.Success != nil {
		query = query.Where("success = ?", *req.Success)
	}
	query = query.Order("id DESC")

	result, err := c.repo.FindPagedWithQuery(ctx.UserContext(), query, &req.Pagination)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.SuccessPage(ctx, result.Items, result.Total, result.Page, result.PageSize)
}
