package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/haocai/material-system/pkg/database"
)

// Throttle 登录失败限流
// 按用户名计数，失败次数达到上限后在锁定窗口内拒绝登录；登录成功清零。
type Throttle struct {
	cache       *database.Cache
	maxAttempts int
	lockWindow  time.Duration
}

// NewThrottle 创建登录限流器
func NewThrottle(cache *database.Cache, maxAttempts, lockSeconds int) *Throttle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockSeconds <= 0 {
		lockSeconds = 300
	}
	return &Throttle{
		cache:       cache,
		maxAttempts: maxAttempts,
		lockWindow:  time.Duration(lockSeconds) * time.Second,
	}
}

// Locked 判断用户名是否处于锁定状态
// 限流是尽力而为：缓存不可用时放行，不阻断登录
func (t *Throttle) Locked(ctx context.Context, username string) bool {
	if t == nil || t.cache == nil {
		return false
	}
	val, err := t.cache.Get(ctx, username)
	if err != nil {
		return false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return false
	}
	return count >= t.maxAttempts
}

// RecordFailure 记录一次登录失败
func (t *Throttle) RecordFailure(ctx context.Context, username string) {
	if t == nil || t.cache == nil {
		return
	}
	count, err := t.cache.Incr(ctx, username)
	if err != nil {
		return
	}
	if count == 1 {
		_ = t.cache.Expire(ctx, username, t.lockWindow)
	}
}

// Reset 清除失败计数
func (t *Throttle) Reset(ctx context.Context, username string) {
	if t == nil || t.cache == nil {
		return
	}
	_ = t.cache.Del(ctx, username)
}
