package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/haocai/material-system/pkg/config"
)

// token错误类型
// 对外统一表现为认证失败，内部按类型分别记录日志
var (
	ErrTokenEmpty            = errors.New("token is empty")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenUnsupported      = errors.New("token algorithm is not supported")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token has expired")

	// ErrClaimMissing 本服务签发的token缺少必要声明，属于内部契约违反
	ErrClaimMissing = errors.New("required claim is missing")
)

// 必要声明的键名
const (
	ClaimUserID   = "userId"
	ClaimUsername = "username"
)

// TokenService 无状态token服务
// token有效性只由（密钥、token本身、当前时间）决定，无任何共享可变状态
type TokenService struct {
	secret   []byte
	issuer   string
	expireIn time.Duration
}

// NewTokenService 创建token服务
func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		expireIn: cfg.ExpireDuration(),
	}
}

// Issue 签发token
// claims应包含userId和username；iat/exp由服务端时钟写入，调用方传入的同名声明会被覆盖。
// ttl省略时使用配置的默认有效期，允许为负（立即过期，供测试使用）。
func (s *TokenService) Issue(claims map[string]any, ttl ...time.Duration) (string, error) {
	expire := s.expireIn
	if len(ttl) > 0 {
		expire = ttl[0]
	}

	now := time.Now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(expire).Unix()
	if s.issuer != "" {
		mc["iss"] = s.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return token.SignedString(s.secret)
}

// parse 解析并验签，过期时同时返回声明和ErrTokenExpired
func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenEmpty
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenUnsupported
		}
		return s.secret, nil
	})

	if err != nil {
		var claims jwt.MapClaims
		if token != nil {
			claims, _ = token.Claims.(jwt.MapClaims)
		}
		switch {
		case errors.Is(err, ErrTokenUnsupported):
			return nil, ErrTokenUnsupported
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return claims, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Validate 验证token并返回全部声明
func (s *TokenService) Validate(tokenString string) (jwt.MapClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// IsValid 尽力而为的有效性检查，任何失败都返回false
func (s *TokenService) IsValid(tokenString string) bool {
	_, err := s.Validate(tokenString)
	return err == nil
}

// GetUserID 验证token并提取用户ID
// 本服务签发的token必定带userId，缺失说明内部契约被破坏，按ErrClaimMissing返回
func (s *TokenService) GetUserID(tokenString string) (int64, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return 0, err
	}

	raw, ok := claims[ClaimUserID]
	if !ok {
		return 0, ErrClaimMissing
	}

	// JSON数字解码为float64，签发时传入的原生整型也要兼容
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, ErrClaimMissing
	}
}

// GetUsername 验证token并提取用户名
func (s *TokenService) GetUsername(tokenString string) (string, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return "", err
	}

	username, ok := claims[ClaimUsername].(string)
	if !ok || username == "" {
		return "", ErrClaimMissing
	}
	return username, nil
}

// RemainingLifetime 获取token剩余有效期
// 已过期返回0；无法解析（空、格式错误、验签失败）返回-1
func (s *TokenService) RemainingLifetime(tokenString string) time.Duration {
	claims, err := s.parse(tokenString)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		return -1
	}

	exp, expErr := claims.GetExpirationTime()
	if expErr != nil || exp == nil {
		return -1
	}

	remaining := time.Until(exp.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpiringSoon 检查token是否即将过期（剩余时间不超过阈值）
// 无法解析的token视为即将过期
func (s *TokenService) ExpiringSoon(tokenString string, threshold time.Duration) bool {
	remaining := s.RemainingLifetime(tokenString)
	if remaining < 0 {
		return true
	}
	return remaining <= threshold
}

// Refresh 刷新token
// 过期的token仍可刷新（声明可恢复），验签失败或格式错误的不行
func (s *TokenService) Refresh(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		return "", err
	}
	if claims == nil {
		return "", ErrTokenMalformed
	}

	// 只保留业务声明，时间类声明重新生成
	custom := make(map[string]any, len(claims))
	for k, v := range claims {
		switch k {
		case "iat", "exp", "iss", "nbf":
		default:
			custom[k] = v
		}
	}

	return s.Issue(custom)
}

// ExpireIn 获取默认token有效期
func (s *TokenService) ExpireIn() time.Duration {
	return s.expireIn
}

// TokenInfo 返回给客户端的token信息
type TokenInfo struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// CreateTokenInfo 签发token并组装客户端响应
func (s *TokenService) CreateTokenInfo(userID int64, username string) (*TokenInfo, error) {
	token, err := s.Issue(map[string]any{
		ClaimUserID:   userID,
		ClaimUsername: username,
	})
	if err != nil {
		return nil, err
	}

	return &TokenInfo{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.expireIn.Seconds()),
	}, nil
}
