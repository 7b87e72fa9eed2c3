package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatisfiesOr(t *testing.T) {
	sc := NewSecurityContext(1, "u", []string{"user:list", "user:create"})

	assert.True(t, sc.Satisfies(LogicalOr, []string{"user:list", "role:list"}))
	assert.False(t, sc.Satisfies(LogicalOr, []string{"role:list", "role:create"}))
}

func TestSatisfiesAnd(t *testing.T) {
	sc := NewSecurityContext(1, "u", []string{"user:list", "user:create"})

	assert.True(t, sc.Satisfies(LogicalAnd, []string{"user:list", "user:create"}))
	assert.False(t, sc.Satisfies(LogicalAnd, []string{"user:list", "user:delete"}))
}

func TestSatisfiesEmptyRequired(t *testing.T) {
	sc := NewSecurityContext(1, "u", nil)

	// 空的所需权限恒为满足，包括没有任何权限的上下文
	assert.True(t, sc.Satisfies(LogicalOr, nil))
	assert.True(t, sc.Satisfies(LogicalAnd, nil))

	var nilCtx *SecurityContext
	assert.True(t, nilCtx.Satisfies(LogicalOr, nil))
}

func TestSatisfiesNoAuthorities(t *testing.T) {
	sc := NewSecurityContext(1, "u", nil)
	assert.False(t, sc.Satisfies(LogicalOr, []string{"user:list"}))

	var nilCtx *SecurityContext
	assert.False(t, nilCtx.Satisfies(LogicalOr, []string{"user:list"}))
	assert.False(t, nilCtx.HasAuthority("user:list"))
	assert.Nil(t, nilCtx.Authorities())
}

func TestAuthoritiesDeduplicated(t *testing.T) {
	sc := NewSecurityContext(1, "u", []string{"a", "b", "a"})
	assert.Len(t, sc.Authorities(), 2)
	assert.True(t, sc.HasAuthority("a"))
	assert.True(t, sc.HasAuthority("b"))
	assert.False(t, sc.HasAuthority("c"))
}
