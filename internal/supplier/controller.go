package supplier

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 供应商控制器
type Controller struct {
	repo Repository
}

// NewController 创建供应商控制器
func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/suppliers")
	g.Post("", middleware.RequirePermission("supplier:create"), c.create)
	g.Put("/:id", middleware.RequirePermission("supplier:update"), c.update)
	g.Delete("/:id", middleware.RequirePermission("supplier:delete"), c.delete)
	g.Get("/:id", middleware.RequirePermission("supplier:list"), c.get)
	g.Get("", middleware.RequirePermission("supplier:list"), c.list)
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	supplier, err := c.doCreate(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, supplier)
}

func (c *Controller) doCreate(ctx context.Context, req *CreateRequest) (*model.Supplier, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errors.Validation("供应商名称和编码不能为空")
	}

	existing, err := c.repo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("供应商编码")
	}

	supplier := &model.Supplier{
		Name:    req.Name,
		Code:    req.Code,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Status:  1,
		Remark:  req.Remark,
	}
	if req.Status != nil {
		supplier.Status = *req.Status
	}
	if err := c.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的供应商ID")
	}
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	supplier, err := c.doUpdate(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, supplier)
}

func (c *Controller) doUpdate(ctx context.Context, id int64, req *UpdateRequest) (*model.Supplier, error) {
	supplier, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, errors.NotFound("供应商")
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.Contact != "" {
		supplier.Contact = req.Contact
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.Email != "" {
		supplier.Email = req.Email
	}
	if req.Address != "" {
		supplier.Address = req.Address
	}
	if req.Status != nil {
		supplier.Status = *req.Status
	}
	if req.Remark != "" {
		supplier.Remark = req.Remark
	}
	if err := c.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (c *Controller) delete(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的供应商ID")
	}
	if err := c.doDelete(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) doDelete(ctx context.Context, id int64) error {
	supplier, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return errors.NotFound("供应商")
	}

	inUse, err := c.repo.CountMaterials(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return errors.BadRequest("供应商已关联耗材，不能删除")
	}

	return c.repo.Delete(ctx, id)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的供应商ID")
	}
	supplier, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if supplier == nil {
		return response.NotFound(ctx, "供应商不存在")
	}
	return response.Success(ctx, supplier)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.Supplier{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Code != "" {
		query = query.Where("code LIKE ?", "%"+req.Code+"%")
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	query = query.Order("id ASC")

	result, err := c.repo.FindPagedWithQuery(ctx.UserContext(), query, &req.Pagination)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.SuccessPage(ctx, result.Items, result.Total, result.Page, result.PageSize)
}
