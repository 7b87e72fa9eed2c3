package material

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/pkg/dal"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/middleware"
	"github.com/haocai/material-system/pkg/response"
)

// Controller 耗材控制器
type Controller struct {
	repo         Repository
	categoryRepo CategoryRepository
}

// NewController 创建耗材控制器
func NewController(repo Repository, categoryRepo CategoryRepository) *Controller {
	return &Controller{
		repo:         repo,
		categoryRepo: categoryRepo,
	}
}

// RegisterRoutes 注册路由，每个操作声明所需权限
func (c *Controller) RegisterRoutes(r fiber.Router) {
	cg := r.Group("/material-categories")
	cg.Post("", middleware.RequirePermission("material:create"), c.createCategory)
	cg.Get("/tree", middleware.RequirePermission("material:list"), c.categoryTree)
	cg.Put("/:id", middleware.RequirePermission("material:update"), c.updateCategory)
	cg.Delete("/:id", middleware.RequirePermission("material:delete"), c.deleteCategory)

	g := r.Group("/materials")
	g.Post("", middleware.RequirePermission("material:create"), c.create)
	g.Put("/:id", middleware.RequirePermission("material:update"), c.update)
	g.Delete("/:id", middleware.RequirePermission("material:delete"), c.delete)
	g.Get("/:id", middleware.RequirePermission("material:list"), c.get)
	g.Get("", middleware.RequirePermission("material:list"), c.list)
}

func (c *Controller) createCategory(ctx *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	category, err := c.doCreateCategory(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, category)
}

func (c *Controller) doCreateCategory(ctx context.Context, req *CreateCategoryRequest) (*model.MaterialCategory, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errors.Validation("分类名称和编码不能为空")
	}

	existing, err := c.categoryRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("分类编码")
	}

	if req.ParentID > 0 {
		parent, err := c.categoryRepo.FindByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.NotFound("上级分类")
		}
	}

	category := &model.MaterialCategory{
		ParentID: req.ParentID,
		Name:     req.Name,
		Code:     req.Code,
		Sort:     req.Sort,
		Status:   1,
	}
	if req.Status != nil {
		category.Status = *req.Status
	}
	if err := c.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (c *Controller) updateCategory(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的分类ID")
	}
	var req UpdateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	category, err := c.doUpdateCategory(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, category)
}

func (c *Controller) doUpdateCategory(ctx context.Context, id int64, req *UpdateCategoryRequest) (*model.MaterialCategory, error) {
	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.NotFound("分类")
	}

	if req.ParentID != nil && *req.ParentID != category.ParentID {
		if *req.ParentID == id {
			return nil, errors.BadRequest("上级分类不能是自己")
		}
		if *req.ParentID > 0 {
			parent, err := c.categoryRepo.FindByID(ctx, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, errors.NotFound("上级分类")
			}
		}
		category.ParentID = *req.ParentID
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Sort != nil {
		category.Sort = *req.Sort
	}
	if req.Status != nil {
		category.Status = *req.Status
	}
	if err := c.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (c *Controller) deleteCategory(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的分类ID")
	}
	if err := c.doDeleteCategory(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) doDeleteCategory(ctx context.Context, id int64) error {
	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return errors.NotFound("分类")
	}

	children, err := c.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return errors.BadRequest("存在子分类，不能删除")
	}

	inUse, err := c.repo.CountByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return errors.BadRequest("分类下存在耗材，不能删除")
	}

	return c.categoryRepo.Delete(ctx, id)
}

func (c *Controller) categoryTree(ctx *fiber.Ctx) error {
	categories, err := c.categoryRepo.FindAllOrdered(ctx.UserContext())
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, BuildCategoryTree(categories, 0))
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	material, err := c.doCreate(ctx.UserContext(), &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, material)
}

func (c *Controller) doCreate(ctx context.Context, req *CreateRequest) (*model.Material, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errors.Validation("耗材名称和编码不能为空")
	}

	existing, err := c.repo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Duplicate("耗材编码")
	}

	category, err := c.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.NotFound("分类")
	}

	material := &model.Material{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Code:        req.Code,
		Spec:        req.Spec,
		Unit:        req.Unit,
		Price:       req.Price,
		SupplierID:  req.SupplierID,
		Status:      1,
		Description: req.Description,
	}
	if req.Status != nil {
		material.Status = *req.Status
	}
	if err := c.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的耗材ID")
	}
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}
	material, err := c.doUpdate(ctx.UserContext(), id, &req)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, material)
}

func (c *Controller) doUpdate(ctx context.Context, id int64, req *UpdateRequest) (*model.Material, error) {
	material, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, errors.NotFound("耗材")
	}

	if req.CategoryID != nil && *req.CategoryID != material.CategoryID {
		category, err := c.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, errors.NotFound("分类")
		}
		material.CategoryID = *req.CategoryID
	}

	if req.Name != "" {
		material.Name = req.Name
	}
	if req.Spec != "" {
		material.Spec = req.Spec
	}
	if req.Unit != "" {
		material.Unit = req.Unit
	}
	if req.Price != nil {
		material.Price = *req.Price
	}
	if req.SupplierID != nil {
		material.SupplierID = *req.SupplierID
	}
	if req.Status != nil {
		material.Status = *req.Status
	}
	if req.Description != "" {
		material.Description = req.Description
	}
	if err := c.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (c *Controller) delete(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的耗材ID")
	}
	if err := c.repo.Delete(ctx.UserContext(), id); err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	return response.Success(ctx, nil)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParseInt64ID(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, "无效的耗材ID")
	}
	material, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return response.Error(ctx, errors.GetCode(err), errors.GetMessage(err))
	}
	if material == nil {
		return response.NotFound(ctx, "耗材不存在")
	}
	return response.Success(ctx, material)
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return response.ValidateError(ctx, err.Error())
	}

	query := c.repo.DB().WithContext(ctx.UserContext()).Model(&model.Material{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Code != "" {
		query = query.Where("code LIKE ?", "%"+req.Code+"%")
	}
	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}
	if req.SupplierID != nil {
		query = query.Where("supplier_id = ?", *req.SupplierID)
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
