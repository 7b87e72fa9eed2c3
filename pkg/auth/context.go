package auth

// Logical 多个权限编码的组合方式
type Logical int8

const (
	// LogicalOr 拥有任意一个权限即可
	LogicalOr Logical = iota
	// LogicalAnd 必须拥有全部权限
	LogicalAnd
)

// SecurityContext 单个请求的安全上下文
// 认证阶段填充一次，之后只读；权限集合以认证时刻解析结果为准，不再重新计算
type SecurityContext struct {
	UserID      int64
	Principal   string
	authorities map[string]struct{}
}

// NewSecurityContext 创建安全上下文
func NewSecurityContext(userID int64, principal string, codes []string) *SecurityContext {
	authorities := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		authorities[code] = struct{}{}
	}
	return &SecurityContext{
		UserID:      userID,
		Principal:   principal,
		authorities: authorities,
	}
}

// HasAuthority 检查是否持有指定权限编码
func (sc *SecurityContext) HasAuthority(code string) bool {
	if sc == nil {
		return false
	}
	_, ok := sc.authorities[code]
	return ok
}

// Authorities 返回权限编码快照
func (sc *SecurityContext) Authorities() []string {
	if sc == nil {
		return nil
	}
	codes := make([]string, 0, len(sc.authorities))
	for code := range sc.authorities {
		codes = append(codes, code)
	}
	return codes
}

// Satisfies 按组合方式判定是否满足所需权限
// 空的所需权限列表恒为满足
func (sc *SecurityContext) Satisfies(logical Logical, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if sc == nil || len(sc.authorities) == 0 {
		return false
	}

	if logical == LogicalAnd {
		for _, code := range required {
			if !sc.HasAuthority(code) {
				return false
			}
		}
		return true
	}

	for _, code := range required {
		if sc.HasAuthority(code) {
			return true
		}
	}
	return false
}
