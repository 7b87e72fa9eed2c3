package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/pkg/errors"
	"github.com/haocai/material-system/pkg/logger"
	"github.com/haocai/material-system/pkg/response"
	"github.com/haocai/material-system/pkg/utils"
	"go.uber.org/zap"
)

// Recovery 恢复中间件
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
				)
				_ = response.ServerError(c, "")
			}
		}()
		return c.Next()
	}
}

// Cors 跨域中间件
func Cors() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")

		if origin != "" {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			c.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}

// RequestID 请求ID中间件
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = utils.UUID()
		}
		c.Locals("requestId", requestID)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}

// AccessLog 访问日志中间件
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// ErrorHandler 统一错误处理中间件
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			var appErr *errors.AppError
			if errors.As(err, &appErr) {
				return response.Error(c, appErr.Code, appErr.Message)
			}
			return response.ServerError(c, "")
		}
		return nil
	}
}

// OperationLogFunc 操作日志记录回调
type OperationLogFunc func(userID int64, username, method, path, ip, userAgent string, status int, latency time.Duration)

// OperationLog 操作日志中间件，只记录写操作
func OperationLog(logFunc OperationLogFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || logFunc == nil {
			return c.Next()
		}

		start := time.Now()
		if err := c.Next(); err != nil {
			return err
		}

		logFunc(
			GetUserID(c),
			GetUsername(c),
			c.Method(),
			c.Path(),
			c.IP(),
			c.Get("User-Agent"),
			c.Response().StatusCode(),
			time.Since(start),
		)
		return nil
	}
}
