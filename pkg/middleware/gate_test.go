package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/haocai/material-system/pkg/auth"
	"github.com/haocai/material-system/pkg/config"
	"github.com/haocai/material-system/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver 固定返回预设的权限编码
type stubResolver struct {
	codes map[int64][]string
	err   error
}

func (s *stubResolver) ResolvePermissionCodes(_ context.Context, userID int64) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.codes[userID], nil
}

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService(&config.JWTConfig{
		Secret: "gate-test-secret",
		Expire: 3600,
	})
}

func newTestApp(tokens *auth.TokenService, resolver AuthorityResolver) *fiber.App {
	app := fiber.New()
	app.Use(AuthenticationGate(AuthGateConfig{
		Tokens:   tokens,
		Resolver: resolver,
	}))

	app.Get("/public", func(c *fiber.Ctx) error {
		return response.Success(c, "public")
	})
	app.Get("/users", RequirePermission("user:list"), func(c *fiber.Ctx) error {
		return response.Success(c, "users")
	})
	app.Get("/both", RequirePermissions(auth.LogicalAnd, "user:list", "role:list"), func(c *fiber.Ctx) error {
		return response.Success(c, "both")
	})
	app.Get("/either", RequirePermissions(auth.LogicalOr, "user:list", "role:list"), func(c *fiber.Ctx) error {
		return response.Success(c, "either")
	})
	app.Get("/me", RequireAuthenticated(), func(c *fiber.Ctx) error {
		return response.Success(c, GetUsername(c))
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAnonymousOnPublicRoute(t *testing.T) {
	app := newTestApp(newTestTokens(), &stubResolver{})

	resp, _ := doRequest(t, app, "/public", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnonymousOnProtectedRoute(t *testing.T) {
	app := newTestApp(newTestTokens(), &stubResolver{})

	resp, body := doRequest(t, app, "/users", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	// data字段必须显式为null
	assert.True(t, strings.Contains(body, `"data":null`))

	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, 401, payload.Code)
	assert.Equal(t, "authentication failed, please log in again", payload.Message)
}

func TestInvalidTokenFailsOpenThenRejected(t *testing.T) {
	app := newTestApp(newTestTokens(), &stubResolver{})

	// 无效token不中断请求，公共接口照常访问
	resp, _ := doRequest(t, app, "/public", "garbage-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// 但到达受保护操作时没有身份，401
	resp, _ = doRequest(t, app, "/users", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredTokenRejectedOnProtectedRoute(t *testing.T) {
	tokens := newTestTokens()
	app := newTestApp(tokens, &stubResolver{codes: map[int64][]string{1: {"user:list"}}})

	expired, err := tokens.Issue(map[string]any{
		auth.ClaimUserID:   int64(1),
		auth.ClaimUsername: "u",
	}, -time.Minute)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/users", expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthorizedRequest(t *testing.T) {
	tokens := newTestTokens()
	app := newTestApp(tokens, &stubResolver{codes: map[int64][]string{1: {"user:list"}}})

	token, err := tokens.Issue(map[string]any{
		auth.ClaimUserID:   int64(1),
		auth.ClaimUsername: "zhangsan",
	})
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/users", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, app, "/me", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "zhangsan"))
}

func TestInsufficientPermission(t *testing.T) {
	tokens := newTestTokens()
	app := newTestApp(tokens, &stubResolver{codes: map[int64][]string{1: {"material:list"}}})

	token, err := tokens.Issue(map[string]any{
		auth.ClaimUserID:   int64(1),
		auth.ClaimUsername: "u",
	})
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/users", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.True(t, strings.Contains(body, `"data":null`))
	// 不向客户端回显所需权限编码
	assert.False(t, strings.Contains(body, "user:list"))

	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, 403, payload.Code)
	assert.Equal(t, "insufficient permission", payload.Message)
}

func TestLogicalCombinators(t *testing.T) {
	tokens := newTestTokens()
	app := newTestApp(tokens, &stubResolver{codes: map[int64][]string{
		1: {"user:list"},
		2: {"user:list", "role:list"},
	}})

	partial, err := tokens.Issue(map[string]any{auth.ClaimUserID: int64(1), auth.ClaimUsername: "a"})
	require.NoError(t, err)
	full, err := tokens.Issue(map[string]any{auth.ClaimUserID: int64(2), auth.ClaimUsername: "b"})
	require.NoError(t, err)

	// AND：缺一个即403
	resp, _ := doRequest(t, app, "/both", partial)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doRequest(t, app, "/both", full)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// OR：任一命中即放行
	resp, _ = doRequest(t, app, "/either", partial)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResolverFailureFailsOpen(t *testing.T) {
	tokens := newTestTokens()
	app := newTestApp(tokens, &stubResolver{err: assert.AnError})

	token, err := tokens.Issue(map[string]any{
		auth.ClaimUserID:   int64(1),
		auth.ClaimUsername: "u",
	})
	require.NoError(t, err)

	// 解析权限失败按未认证处理：公共接口可用，受保护操作401
	resp, _ := doRequest(t, app, "/public", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, app, "/users", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenWithoutUserIDClaim(t *testing.T) {
	tokens := newTestTokens()
	app := newTestApp(tokens, &stubResolver{})

	// 缺少userId的token验签通过但无法建立身份
	token, err := tokens.Issue(map[string]any{auth.ClaimUsername: "u"})
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/users", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
