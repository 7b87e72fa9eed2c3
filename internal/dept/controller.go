package dept

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 部门控制器
type Controller struct {
	repo Repository
}

// NewController 创建部门控制器
func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/depts")
	g.Post("", middleware.RequirePermission("dept:create"), c.create)
	g.Get("/tree", middleware.RequirePermission("dept:list"), c.tree)
	g.Put("/:id", middleware.RequirePermission("dept:update"), c.update)
	g.Delete("/:id", middleware.RequirePermission("dept:delete"), c.delete)
	g.Get("/:id", middleware.RequirePermission("dept:list"), c.get)
	g.Get("", middleware.RequirePermission("dept:list"), c.list)
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	dept, err := c.doCreate(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, dept)
}

func (c *Controller) doCreate(ctx context.Context, req *CreateRequest) (*model.Dept, error) {
	if req.Name == "" {
		return nil, errors.Validation("部门名称不能为空")
	}

	if req.ParentID > 0 {
		parent, err := c.repo.FindByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.NotFound("上级部门")
		}
	}

	dept := &model.Dept{
		ParentID: req.ParentID,
		Name:     req.Name,
		Sort:     req.Sort,
		Leader:   req.Leader,
		Phone:    req.Phone,
		Email:    req.Email,
		Status:   1,
	}
	if req.Status != nil {
		dept.Status = *req.Status
	}
	if err := c.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的部门ID")
	}
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	dept, err := c.doUpdate(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, dept)
}

func (c *Controller) doUpdate(ctx context.Context, id int64, req *UpdateRequest) (*model.Dept, error) {
	dept, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, errors.NotFound("部门")
	}

	if req.ParentID != nil && *req.ParentID != dept.ParentID {
		if *req.ParentID == id {
			return nil, errors.BadRequest("上级部门不能是自己")
		}
		if *req.ParentID > 0 {
			parent, err := c.repo.FindByID(ctx, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, errors.NotFound("上级部门")
			}
		}
		dept.ParentID = *req.ParentID
	}

	if req.Name != "" {
		dept.Name = req.Name
	}
	if req.Sort != nil {
		dept.Sort = *req.Sort
	}
	if req.Leader != "" {
		dept.Leader = req.Leader
	}
	if req.Phone != "" {
		dept.Phone = req.Phone
	}
	if req.Email != "" {
		dept.Email = req.Email
	}
	if req.Status != nil {
		dept.Status = *req.Status
	}
	if err := c.repo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (c *Controller) delete(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的部门ID")
	}
	if err := c.doDelete(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) doDelete(ctx context.Context, id int64) error {
	dept, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if dept == nil {
		return errors.NotFound("部门")
	}

	children, err := c.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return errors.BadRequest("存在子部门，不能删除")
	}

	members, err := c.repo.CountMembers(ctx, id)
	if err != nil {
		return err
	}
	if members > 0 {
		return errors.BadRequest("部门下存在用户，不能删除")
	}

	return c.repo.Delete(ctx, id)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的部门ID")
	}
	dept, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if dept == nil {
		return response.NotFound(ctx, "部门不存在")
	}
	return response.Success(ctx, dept)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.Dept{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	query = query.Order("sort ASC, id ASC")

	result, err := c.repo.FindPagedWithQuery(ctx.UserContext(), query, &req.Pagination)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.SuccessPage(ctx, result.Items, result.Total, result.Page, result.PageSize)
}

func (c *Controller) tree(ctx *fiber.Ctx) error {
	depts, err := c.repo.FindAllOrdered(ctx.UserContext())
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, BuildTree(depts, 0))
}
