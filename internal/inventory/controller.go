package inventory

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/material"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 库存控制器
type Controller struct {
	repo         Repository
	materialRepo material.Repository
}

// NewController 创建库存控制器
func NewController(repo Repository, materialRepo material.Repository) *Controller {
	return &Controller{
		repo:         repo,
		materialRepo: materialRepo,
	}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
// 入库和出库是不同岗位的操作，调整接口允许任一权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/inventories")
	g.Post("/adjust", middleware.RequirePermissions(auth.LogicalOr, "inventory:in", "inventory:out"), c.adjust)
	g.Get("/warnings", middleware.RequirePermission("inventory:list"), c.warnings)
	g.Put("/:id/limits", middleware.RequirePermission("inventory:update"), c.setLimits)
	g.Get("", middleware.RequirePermission("inventory:list"), c.list)
}

func (c *Controller) adjust(ctx *fiber.Ctx) error {
	var req AdjustRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	inv, err := c.doAdjust(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, inv)
}

func (c *Controller) doAdjust(ctx context.Context, req *AdjustRequest) (*model.Inventory, error) {
	if req.MaterialID <= 0 {
		return nil, errors.Validation("无效的耗材ID")
	}
	if req.Delta == 0 {
		return nil, errors.Validation("调整数量不能为0")
	}

	m, err := c.materialRepo.FindByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.NotFound("耗材")
	}

	return c.repo.Adjust(ctx, req.MaterialID, req.Delta)
}

func (c *Controller) setLimits(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的库存ID")
	}
	var req SetStockLimitsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	fields := map[string]interface{}{}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return response.ValidateError(ctx, "库存下限不能为负数")
		}
		fields["min_stock"] = *req.MinStock
	}
	if req.MaxStock != nil {
		if *req.MaxStock < 0 {
			return response.ValidateError(ctx, "库存上限不能为负数")
		}
		fields["max_stock"] = *req.MaxStock
	}
	if len(fields) == 0 {
		return response.ValidateError(ctx, "未指定要修改的字段")
	}

	if err := c.repo.UpdateFields(ctx.UserContext(), id, fields); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) warnings(ctx *fiber.Ctx) error {
	rows, err := c.repo.FindWarnings(ctx.UserContext())
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, rows)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.Inventory{})
	if req.MaterialID != nil {
		query = query.Where("material_id = ?", *req.MaterialID)
	}
	query = query.Order("id ASC")

	result, err := c.repo.FindPagedWithQuery(ctx.UserContext(), query, &req.Pagination)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.SuccessPage(ctx, result.Items, result.Total, result.Page, result.PageSize)
}
