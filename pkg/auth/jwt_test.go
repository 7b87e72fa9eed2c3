package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/haocai/material-system/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *TokenService {
	return NewTokenService(&config.JWTConfig{
		Secret: "test-secret-key",
		Issuer: "test",
		Expire: 3600,
	})
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue(map[string]any{
		ClaimUserID:   int64(42),
		ClaimUsername: "zhangsan",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", claims[ClaimUsername])
	assert.Equal(t, "test", claims["iss"])

	userID, err := svc.GetUserID(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	username, err := svc.GetUsername(token)
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", username)

	assert.True(t, svc.IsValid(token))
}

func TestIssueOverwritesTimeClaims(t *testing.T) {
	svc := newTestService()

	// 调用方伪造的iat/exp会被服务端时钟覆盖
	token, err := svc.Issue(map[string]any{
		ClaimUserID:   int64(1),
		ClaimUsername: "u",
		"exp":         time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)
	assert.True(t, svc.IsValid(token))
}

func TestValidateEmpty(t *testing.T) {
	svc := newTestService()

	for _, raw := range []string{"", "   "} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, ErrTokenEmpty)
	}
}

func TestValidateMalformed(t *testing.T) {
	svc := newTestService()

	_, err := svc.Validate("not-a-jwt-at-all")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestValidateTamperedSignature(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue(map[string]any{
		ClaimUserID:   int64(1),
		ClaimUsername: "u",
	})
	require.NoError(t, err)

	// 改动签名段最后一个字符
	last := token[len(token)-1]
	flip := byte('A')
	if last == 'A' {
		flip = 'B'
	}
	tampered := token[:len(token)-1] + string(flip)

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	assert.False(t, svc.IsValid(tampered))
}

func TestValidateWrongSecret(t *testing.T) {
	other := NewTokenService(&config.JWTConfig{Secret: "another-secret", Expire: 3600})
	token, err := other.Issue(map[string]any{ClaimUserID: int64(1), ClaimUsername: "u"})
	require.NoError(t, err)

	svc := newTestService()
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestValidateExpired(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue(map[string]any{
		ClaimUserID:   int64(7),
		ClaimUsername: "u",
	}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, svc.IsValid(token))
	assert.Equal(t, time.Duration(0), svc.RemainingLifetime(token))
}

func TestValidateUnsupportedAlgorithm(t *testing.T) {
	svc := newTestService()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		ClaimUserID: int64(1),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenUnsupported)
}

func TestGetUserIDMissingClaim(t *testing.T) {
	svc := newTestService()

	// 不带userId签发的token本身有效，但提取用户ID按内部契约违反处理
	token, err := svc.Issue(map[string]any{ClaimUsername: "u"})
	require.NoError(t, err)

	_, verr := svc.Validate(token)
	require.NoError(t, verr)

	_, err = svc.GetUserID(token)
	assert.ErrorIs(t, err, ErrClaimMissing)
}

func TestGetUsernameMissingClaim(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue(map[string]any{ClaimUserID: int64(1)})
	require.NoError(t, err)

	_, err = svc.GetUsername(token)
	assert.ErrorIs(t, err, ErrClaimMissing)
}

func TestRemainingLifetime(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue(map[string]any{ClaimUserID: int64(1), ClaimUsername: "u"})
	require.NoError(t, err)

	remaining := svc.RemainingLifetime(token)
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)

	assert.Equal(t, time.Duration(-1), svc.RemainingLifetime("garbage"))
	assert.Equal(t, time.Duration(-1), svc.RemainingLifetime(""))
}

func TestExpiringSoon(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue(map[string]any{ClaimUserID: int64(1), ClaimUsername: "u"}, 10*time.Second)
	require.NoError(t, err)

	assert.True(t, svc.ExpiringSoon(token, time.Minute))
	assert.False(t, svc.ExpiringSoon(token, time.Second))
	assert.True(t, svc.ExpiringSoon("garbage", time.Minute))
}

func TestRefresh(t *testing.T) {
	svc := newTestService()

	expired, err := svc.Issue(map[string]any{
		ClaimUserID:   int64(9),
		ClaimUsername: "lisi",
	}, -time.Minute)
	require.NoError(t, err)

	// 过期token可以刷新，业务声明保留
	refreshed, err := svc.Refresh(expired)
	require.NoError(t, err)
	assert.True(t, svc.IsValid(refreshed))

	userID, err := svc.GetUserID(refreshed)
	require.NoError(t, err)
	assert.Equal(t, int64(9), userID)

	username, err := svc.GetUsername(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "lisi", username)

	// 验签失败的token不能刷新
	_, err = svc.Refresh("garbage")
	assert.Error(t, err)
}

func TestCreateTokenInfo(t *testing.T) {
	svc := newTestService()

	info, err := svc.CreateTokenInfo(3, "wangwu")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", info.TokenType)
	assert.Equal(t, int64(3600), info.ExpiresIn)
	assert.True(t, svc.IsValid(info.AccessToken))
}
