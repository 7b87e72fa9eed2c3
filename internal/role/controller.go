package role

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/internal/permission"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 角色控制器
type Controller struct {
	repo         Repository
	permRepo     permission.Repository
	rolePermRepo permission.RolePermissionRepository
}

// NewController 创建角色控制器
func NewController(repo Repository, permRepo permission.Repository, rolePermRepo permission.RolePermissionRepository) *Controller {
	return &Controller{
		repo:         repo,
		permRepo:     permRepo,
		rolePermRepo: rolePermRepo,
	}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/roles")
	g.Post("", middleware.RequirePermission("role:create"), c.create)
	g.Put("/:id/status", middleware.RequirePermission("role:update"), c.setStatus)
	g.Put("/:id/permissions", middleware.RequirePermission("role:assign"), c.setPermissions)
	g.Get("/:id/permissions", middleware.RequirePermission("role:list"), c.getPermissions)
	g.Put("/:id", middleware.RequirePermission("role:update"), c.update)
	g.Delete("/:id", middleware.RequirePermission("role:delete"), c.delete)
	g.Get("/:id", middleware.RequirePermission("role:list"), c.get)
	g.Get("", middleware.RequirePermission("role:list"), c.list)
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	role, err := c.doCreate(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, role)
}

func (c *Controller) doCreate(ctx context.Context, req *CreateRequest) (*model.Role, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errors.Validation("角色名称和编码不能为空")
	}

	existing, err := c.repo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("角色编码")
	}

	role := &model.Role{
		Name:        req.Name,
		Code:        req.Code,
		Sort:        req.Sort,
		Status:      1,
		Description: req.Description,
	}
	if req.Status != nil {
		role.Status = *req.Status
	}
	if err := c.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的角色ID")
	}
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	role, err := c.doUpdate(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, role)
}

func (c *Controller) doUpdate(ctx context.Context, id int64, req *UpdateRequest) (*model.Role, error) {
	role, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.NotFound("角色")
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Sort != nil {
		role.Sort = *req.Sort
	}
	if req.Status != nil {
		role.Status = *req.Status
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if err := c.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (c *Controller) setStatus(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的角色ID")
	}
	var req StatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	if req.Status != 0 && req.Status != 1 {
		return response.ValidateError(ctx, "无效的状态值")
	}
	if err := c.repo.UpdateFields(ctx.UserContext(), id, map[string]interface{}{"status": req.Status}); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) delete(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的角色ID")
	}
	if err := c.doDelete(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) doDelete(ctx context.Context, id int64) error {
	role, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return errors.NotFound("角色")
	}

	assigned, err := c.repo.CountAssignedUsers(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return errors.BadRequest("角色已分配给用户，不能删除")
	}

	if err := c.rolePermRepo.DeleteByRoleID(ctx, id); err != nil {
		return err
	}
	return c.repo.Delete(ctx, id)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的角色ID")
	}
	role, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if role == nil {
		return response.NotFound(ctx, "角色不存在")
	}
	return response.Success(ctx, role)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.Role{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Code != "" {
		query = query.Where("code LIKE ?", "%"+req.Code+"%")
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

func (c *Controller) setPermissions(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的角色ID")
	}
	var req SetPermissionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	if err := c.doSetPermissions(ctx.UserContext(), id, req.PermissionIDs); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

// doSetPermissions 全量覆盖角色的权限：旧关联软删除，再写入新关联
func (c *Controller) doSetPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	role, err := c.repo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return errors.NotFound("角色")
	}

	for _, permID := range permissionIDs {
		perm, err := c.permRepo.FindByID(ctx, permID)
		if err != nil {
			return err
		}
		if perm == nil {
			return errors.NotFound("权限")
		}
	}

	if err := c.rolePermRepo.DeleteByRoleID(ctx, roleID); err != nil {
		return err
	}
	return c.rolePermRepo.BatchCreate(ctx, roleID, permissionIDs)
}

func (c *Controller) getPermissions(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的角色ID")
	}
	permissions, err := c.permRepo.FindByRoleID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, permissions)
}
