package response

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/pkg/logger"
	"go.uber.org/zap"
)

// Response 统一响应结构，data字段始终出现（无数据时为null）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// 响应码定义
const (
	CodeSuccess       = 0
	CodeError         = 1
	CodeUnauthorized  = 401
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeValidateError = 422
	CodeServerError   = 500
)

// 固定失败消息：对外不暴露具体的认证/鉴权失败原因
const (
	MsgUnauthenticated = "authentication failed, please log in again"
	MsgForbidden       = "insufficient permission"
)

// Success 成功响应
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(http.StatusOK).JSON(Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 成功响应(带消息)
func SuccessWithMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(http.StatusOK).JSON(Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessPage 分页成功响应
func SuccessPage(c *fiber.Ctx, data interface{}, total int64, page, pageSize int) error {
	return c.Status(http.StatusOK).JSON(PageResponse{
		Code:     CodeSuccess,
		Message:  "success",
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Error 错误响应
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(http.StatusOK).JSON(Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 请求错误
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(Response{
		Code:    CodeError,
		Message: message,
	})
}

// Unauthenticated 认证失败响应
// 对外仅返回固定消息，具体原因只记录在服务端日志
func Unauthenticated(c *fiber.Ctx, reason error) error {
	fields := []zap.Field{zap.String("path", c.Path()), zap.String("method", c.Method())}
	if reason != nil {
		fields = append(fields, zap.Error(reason))
	}
	logger.Warn("authentication rejected", fields...)

	return c.Status(http.StatusUnauthorized).JSON(Response{
		Code:    CodeUnauthorized,
		Message: MsgUnauthenticated,
	})
}

// PermissionDenied 权限不足响应
// 所需权限编码只记录在服务端日志，不回显给客户端
func PermissionDenied(c *fiber.Ctx, required []string) error {
	logger.Warn("permission denied",
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Strings("required", required),
	)

	return c.Status(http.StatusForbidden).JSON(Response{
		Code:    CodeForbidden,
		Message: MsgForbidden,
	})
}

// NotFound 未找到
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "not found"
	}
	return c.Status(http.StatusNotFound).JSON(Response{
		Code:    CodeNotFound,
		Message: message,
	})
}

// ValidateError 验证错误
func ValidateError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnprocessableEntity).JSON(Response{
		Code:    CodeValidateError,
		Message: message,
	})
}

// ServerError 服务器错误
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "server error"
	}
	return c.Status(http.StatusInternalServerError).JSON(Response{
		Code:    CodeServerError,
		Message: message,
	})
}

// Abort 按指定HTTP状态码中止请求
func Abort(c *fiber.Ctx, httpCode int, code int, message string) error {
	return c.Status(httpCode).JSON(Response{
		Code:    code,
		Message: message,
	})
}
