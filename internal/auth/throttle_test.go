package auth

import (
	"context"
	"testing"

	"github.com/haocai/material-system/pkg/config"
	"github.com/haocai/material-system/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestThrottle(t *testing.T, maxAttempts int) *Throttle {
	t.Helper()
	require.NoError(t, database.InitRedis(&config.RedisConfig{Mode: "memory"}))
	throttle := NewThrottle(database.NewCache("test:login:attempts"), maxAttempts, 60)
	throttle.Reset(context.Background(), "zhangsan")
	return throttle
}

func TestThrottleLocksAfterMaxFailures(t *testing.T) {
	throttle := newTestThrottle(t, 3)
	ctx := context.Background()

	assert.False(t, throttle.Locked(ctx, "zhangsan"))

	throttle.RecordFailure(ctx, "zhangsan")
	throttle.RecordFailure(ctx, "zhangsan")
	assert.False(t, throttle.Locked(ctx, "zhangsan"))

	throttle.RecordFailure(ctx, "zhangsan")
	assert.True(t, throttle.Locked(ctx, "zhangsan"))

	// 其他用户不受影响
	assert.False(t, throttle.Locked(ctx, "lisi"))
}

func TestThrottleResetOnSuccess(t *testing.T) {
	throttle := newTestThrottle(t, 2)
	ctx := context.Background()

	throttle.RecordFailure(ctx, "zhangsan")
	throttle.RecordFailure(ctx, "zhangsan")
	assert.True(t, throttle.Locked(ctx, "zhangsan"))

	throttle.Reset(ctx, "zhangsan")
	assert.False(t, throttle.Locked(ctx, "zhangsan"))
}

func TestThrottleNilSafe(t *testing.T) {
	var throttle *Throttle
	ctx := context.Background()

	// 无缓存时限流退化为不限制
	assert.False(t, throttle.Locked(ctx, "zhangsan"))
	throttle.RecordFailure(ctx, "zhangsan")
	throttle.Reset(ctx, "zhangsan")
}
