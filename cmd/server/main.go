package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/internal/auth"
	"github.com/haocai/material-system/internal/bootstrap"
	"github.com/haocai/material-system/internal/dept"
	"github.com/haocai/material-system/internal/inventory"
	"github.com/haocai/material-system/internal/loginlog"
	"github.com/haocai/material-system/internal/material"
	"github.com/haocai/material-system/internal/model"
	"github.com/haocai/material-system/internal/oplog"
	"github.com/haocai/material-system/internal/permission"
	"github.com/haocai/material-system/internal/role"
	"github.com/haocai/material-system/internal/supplier"
	"github.com/haocai/material-system/internal/user"
	pkgauth "github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/config"
	"github.com/haocai/material-system/pkg/database"
	"github.com/haocai/material-system/pkg/logger"
	"github.com/haocai/material-system/pkg/middleware"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	if err := config.Init(""); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer database.Close()

	// 初始化Redis
	if err := database.InitRedis(&cfg.Redis); err != nil {
		logger.Fatal("初始化Redis失败", zap.Error(err))
	}
	defer database.CloseRedis()

	// 数据库迁移
	db := database.Get()
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.Role{},
		&model.RolePermission{},
		&model.Permission{},
		&model.Dept{},
		&model.MaterialCategory{},
		&model.Material{},
		&model.Supplier{},
		&model.Inventory{},
		&model.LoginLog{},
		&model.OperationLog{},
	); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	logger.Info("数据库迁移完成")

	// 初始数据
	if err := bootstrap.Seed(db); err != nil {
		logger.Fatal("初始数据写入失败", zap.Error(err))
	}

	// 仓储
	userRepo := user.NewRepository()
	userRoleRepo := user.NewUserRoleRepository()
	roleRepo := role.NewRepository()
	permRepo := permission.NewRepository()
	rolePermRepo := permission.NewRolePermissionRepository()
	deptRepo := dept.NewRepository()
	materialRepo := material.NewRepository()
	categoryRepo := material.NewCategoryRepository()
	supplierRepo := supplier.NewRepository()
	inventoryRepo := inventory.NewRepository()
	loginLogRepo := loginlog.NewRepository()
	opLogRepo := oplog.NewRepository()

	// 权限解析
	resolver := permission.NewResolver(permission.NewStore(db))

	// token服务与登录限流
	tokens := pkgauth.NewTokenService(&cfg.JWT)
	throttle := auth.NewThrottle(database.NewCache("login:attempts"),
		cfg.Security.LoginMaxAttempts, cfg.Security.LoginLockSeconds)

	// 控制器
	authController := auth.NewController(tokens, userRepo, resolver, loginLogRepo, throttle)
	userController := user.NewController(userRepo, userRoleRepo, roleRepo)
	roleController := role.NewController(roleRepo, permRepo, rolePermRepo)
	permController := permission.NewController(permRepo, rolePermRepo, resolver)
	deptController := dept.NewController(deptRepo)
	materialController := material.NewController(materialRepo, categoryRepo)
	supplierController := supplier.NewController(supplierRepo)
	inventoryController := inventory.NewController(inventoryRepo, materialRepo)
	loginLogController := loginlog.NewController(loginLogRepo)
	opLogController := oplog.NewController(opLogRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeout) * time.Second,
		DisableStartupMessage: !config.IsDev(),
	})

	// 全局中间件：认证网关对所有请求统一执行，拒绝由各路由的授权声明决定
	app.Use(middleware.Recovery())
	app.Use(middleware.Cors())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())
	app.Use(middleware.ErrorHandler())
	app.Use(middleware.AuthenticationGate(middleware.AuthGateConfig{
		Tokens:   tokens,
		Resolver: resolver,
		Header:   cfg.JWT.HeaderName(),
		Prefix:   cfg.JWT.HeaderPrefix(),
	}))
	app.Use(middleware.OperationLog(opLogController.RecordFunc()))

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"name":   cfg.App.Name,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 业务路由
	api := app.Group("/api/v1")
	authController.RegisterRoutes(api)
	userController.RegisterRoutes(api)
	roleController.RegisterRoutes(api)
	permController.RegisterRoutes(api)
	deptController.RegisterRoutes(api)
	materialController.RegisterRoutes(api)
	supplierController.RegisterRoutes(api)
	inventoryController.RegisterRoutes(api)
	loginLogController.RegisterRoutes(api)
	opLogController.RegisterRoutes(api)

	// 优雅退出
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr()))
	if err := app.Listen(cfg.Server.Addr()); err != nil {
		logger.Fatal("服务运行失败", zap.Error(err))
	}
}
