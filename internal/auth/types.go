package auth

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest 刷新token请求
type RefreshRequest struct {
	Token string `json:"token"`
}

// ProfileResponse 当前用户信息
type ProfileResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Nickname    string      `json:"nickname"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar"`
	DeptID      int64       `json:"deptId"`
	Permissions []string    `json:"permissions"`
	Menus       interface{} `json:"menus"`
}
