package permission

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 权限控制器
type Controller struct {
	repo         Repository
	rolePermRepo RolePermissionRepository
	resolver     *Resolver
}

// NewController 创建权限控制器
func NewController(repo Repository, rolePermRepo RolePermissionRepository, resolver *Resolver) *Controller {
	return &Controller{
		repo:         repo,
		rolePermRepo: rolePermRepo,
		resolver:     resolver,
	}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/permissions")
	g.Post("", middleware.RequirePermission("permission:create"), c.create)
	g.Put("/:id", middleware.RequirePermission("permission:update"), c.update)
	g.Delete("/:id", middleware.RequirePermission("permission:delete"), c.delete)
	g.Get("/tree", middleware.RequirePermission("permission:list"), c.tree)
	g.Get("/user/:id", middleware.RequirePermissions(auth.LogicalOr, "permission:list", "user:view"), c.byUser)
	g.Get("/:id", middleware.RequirePermission("permission:list"), c.get)
	g.Get("", middleware.RequirePermission("permission:list"), c.list)
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	perm, err := c.doCreate(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, perm)
}

func (c *Controller) doCreate(ctx context.Context, req *CreateRequest) (*model.Permission, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errors.Validation("权限名称和编码不能为空")
	}

	existing, err := c.repo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("权限编码")
	}

	if req.ParentID > 0 {
		parent, err := c.repo.FindByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.NotFound("父权限")
		}
	}

	perm := &model.Permission{
		Name:      req.Name,
		Code:      req.Code,
		Type:      req.Type,
		ParentID:  req.ParentID,
		Path:      req.Path,
		Component: req.Component,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		Status:    1,
	}
	if perm.Type == "" {
		perm.Type = model.PermissionTypeMenu
	}
	if req.Status != nil {
		perm.Status = *req.Status
	}
	if err := c.repo.Create(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的权限ID")
	}
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	perm, err := c.doUpdate(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, perm)
}

func (c *Controller) doUpdate(ctx context.Context, id int64, req *UpdateRequest) (*model.Permission, error) {
	perm, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, errors.NotFound("权限")
	}

	// 改父节点先做成环检查，拒绝挂到自己的后代下面
	if req.ParentID != nil && *req.ParentID != perm.ParentID {
		if *req.ParentID > 0 {
			parent, err := c.repo.FindByID(ctx, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, errors.NotFound("父权限")
			}
		}
		cycle, err := WouldCreateCycle(ctx, c.repo, id, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, errors.BadRequest("不能将权限移动到自己的子权限下")
		}
		perm.ParentID = *req.ParentID
	}

	if req.Name != "" {
		perm.Name = req.Name
	}
	if req.Type != "" {
		perm.Type = req.Type
	}
	if req.Path != "" {
		perm.Path = req.Path
	}
	if req.Component != "" {
		perm.Component = req.Component
	}
	if req.Icon != "" {
		perm.Icon = req.Icon
	}
	if req.SortOrder != nil {
		perm.SortOrder = *req.SortOrder
	}
	if req.Status != nil {
		perm.Status = *req.Status
	}
	if err := c.repo.Update(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

func (c *Controller) delete(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的权限ID")
	}
	if err := c.doDelete(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) doDelete(ctx context.Context, id int64) error {
	perm, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if perm == nil {
		return errors.NotFound("权限")
	}

	children, err := c.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return errors.BadRequest("存在子权限，不能删除")
	}

	inUse, err := c.rolePermRepo.CountByPermissionID(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return errors.BadRequest("权限已被角色引用，不能删除")
	}

	return c.repo.Delete(ctx, id)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的权限ID")
	}
	perm, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if perm == nil {
		return response.NotFound(ctx, "权限不存在")
	}
	return response.Success(ctx, perm)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.Permission{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Code != "" {
		query = query.Where("code LIKE ?", "%"+req.Code+"%")
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	query = query.Order("sort_order ASC, id ASC")

	result, err := c.repo.FindPagedWithQuery(ctx.UserContext(), query, &req.Pagination)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.SuccessPage(ctx, result.Items, result.Total, result.Page, result.PageSize)
}

func (c *Controller) tree(ctx *fiber.Ctx) error {
	permissions, err := c.repo.FindAllOrdered(ctx.UserContext())
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, BuildTree(permissions, 0))
}

func (c *Controller) byUser(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
	}
	codes, err := c.resolver.ResolvePermissionCodes(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if codes == nil {
		codes = []string{}
	}
	return response.Success(ctx, codes)
}

// GetByRoleID 根据角色ID获取权限列表，供角色模块使用
func (c *Controller) GetByRoleID(ctx context.Context, roleID int64) ([]model.Permission, error) {
	return c.repo.FindByRoleID(ctx, roleID)
}
