package user

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/internal/role"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 用户控制器
type Controller struct {
	repo         Repository
	userRoleRepo UserRoleRepository
	roleRepo     role.Repository
}

// NewController 创建用户控制器
func NewController(repo Repository, userRoleRepo UserRoleRepository, roleRepo role.Repository) *Controller {
	return &Controller{
		repo:         repo,
		userRoleRepo: userRoleRepo,
		roleRepo:     roleRepo,
	}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	g := r.Group("/users")
	g.Post("", middleware.RequirePermission("user:create"), c.create)
	g.Put("/password", middleware.RequireAuthenticated(), c.changePassword)
	g.Put("/:id/password", middleware.RequirePermission("user:resetPwd"), c.resetPassword)
	g.Put("/:id/status", middleware.RequirePermission("user:update"), c.setStatus)
	g.Put("/:id/roles", middleware.RequirePermissions(auth.LogicalAnd, "user:update", "role:assign"), c.assignRoles)
	g.Get("/:id/roles", middleware.RequirePermission("user:list"), c.getRoles)
	g.Put("/:id", middleware.RequirePermission("user:update"), c.update)
	g.Delete("/:id", middleware.RequirePermission("user:delete"), c.delete)
	g.Get("/:id", middleware.RequirePermission("user:list"), c.get)
	g.Get("", middleware.RequirePermission("user:list"), c.list)
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	user, err := c.doCreate(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, user)
}

func (c *Controller) doCreate(ctx context.Context, req *CreateRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.Validation("用户名和密码不能为空")
	}

	existing, err := c.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("用户名")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: hashed,
		Nickname: req.Nickname,
		Email:    req.Email,
		Phone:    req.Phone,
		DeptID:   req.DeptID,
		Status:   1,
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := c.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if len(req.RoleIDs) > 0 {
		if err := c.userRoleRepo.BatchCreate(ctx, user.ID, req.RoleIDs); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
	}
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	user, err := c.doUpdate(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, user)
}

func (c *Controller) doUpdate(ctx context.Context, id int64, req *UpdateRequest) (*model.User, error) {
	user, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NotFound("用户")
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.DeptID != nil {
		user.DeptID = *req.DeptID
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := c.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Controller) setStatus(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
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
		return response.BadRequest(ctx, "无效的用户ID")
	}
	if err := c.doDelete(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) doDelete(ctx context.Context, id int64) error {
	user, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NotFound("用户")
	}

	if err := c.userRoleRepo.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	return c.repo.Delete(ctx, id)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
	}
	user, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if user == nil {
		return response.NotFound(ctx, "用户不存在")
	}
	return response.Success(ctx, user)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.User{})
	if req.Username != "" {
		query = query.Where("username LIKE ?", "%"+req.Username+"%")
	}
	if req.Nickname != "" {
		query = query.Where("nickname LIKE ?", "%"+req.Nickname+"%")
	}
	if req.Phone != "" {
		query = query.Where("phone LIKE ?", "%"+req.Phone+"%")
	}
	if req.DeptID != nil {
		query = query.Where("dept_id = ?", *req.DeptID)
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

func (c *Controller) assignRoles(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
	}
	var req AssignRolesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	if err := c.doAssignRoles(ctx.UserContext(), id, req.RoleIDs); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

// doAssignRoles 全量覆盖用户的角色：旧关联软删除，再写入新关联
func (c *Controller) doAssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	user, err := c.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NotFound("用户")
	}

	for _, roleID := range roleIDs {
		r, err := c.roleRepo.FindByID(ctx, roleID)
		if err != nil {
			return err
		}
		if r == nil {
			return errors.NotFound("角色")
		}
	}

	if err := c.userRoleRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return c.userRoleRepo.BatchCreate(ctx, userID, roleIDs)
}

func (c *Controller) getRoles(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
	}
	roleIDs, err := c.userRoleRepo.FindRoleIDsByUserID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if len(roleIDs) == 0 {
		return response.Success(ctx, []model.Role{})
	}
	roles, err := c.roleRepo.FindAll(ctx.UserContext(), map[string]interface{}{"id": roleIDs})
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, roles)
}

func (c *Controller) resetPassword(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的用户ID")
	}
	var req ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	if req.Password == "" {
		return response.ValidateError(ctx, "密码不能为空")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if err := c.repo.UpdateFields(ctx.UserContext(), id, map[string]interface{}{"password": hashed}); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

// changePassword 当前用户修改自己的密码，需校验旧密码
func (c *Controller) changePassword(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	var req ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return response.ValidateError(ctx, "旧密码和新密码不能为空")
	}

	user, err := c.repo.FindByID(ctx.UserContext(), userID)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if user == nil {
		return response.NotFound(ctx, "用户不存在")
	}
	if !auth.CheckPassword(req.OldPassword, user.Password) {
		return response.Error(ctx, 400, "旧密码错误")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if err := c.repo.UpdateFields(ctx.UserContext(), userID, map[string]interface{}{"password": hashed}); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}
