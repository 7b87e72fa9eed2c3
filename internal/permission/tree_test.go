package permission

import (
	"context"
	"testing"

	"github.com/haocai/material-system/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perm(id, parentID int64, sortOrder int, code string) model.Permission {
	p := model.Permission{ParentID: parentID, SortOrder: sortOrder, Code: code, Name: code}
	p.ID = id
	return p
}

func TestBuildTreeForest(t *testing.T) {
	flat := []model.Permission{
		perm(1, 0, 1, "a"),
		perm(2, 1, 1, "a1"),
		perm(3, 1, 2, "a2"),
		perm(4, 2, 1, "a1x"),
	}

	tree := BuildTree(flat, 0)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "a1", tree[0].Children[0].Code)
	assert.Equal(t, "a2", tree[0].Children[1].Code)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "a1x", tree[0].Children[0].Children[0].Code)
}

func TestBuildTreeSiblingOrder(t *testing.T) {
	// sort_order优先，相同时按id
	flat := []model.Permission{
		perm(5, 0, 2, "second"),
		perm(6, 0, 1, "first"),
		perm(7, 0, 2, "third"),
	}

	tree := BuildTree(flat, 0)
	require.Len(t, tree, 3)
	assert.Equal(t, "first", tree[0].Code)
	assert.Equal(t, "second", tree[1].Code)
	assert.Equal(t, "third", tree[2].Code)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	flat := []model.Permission{
		perm(1, 0, 1, "root"),
		perm(2, 99, 1, "orphan"),
	}

	tree := BuildTree(flat, 0)
	require.Len(t, tree, 1)
	assert.Equal(t, "root", tree[0].Code)
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree := BuildTree(nil, 0)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestWouldCreateCycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository()
	ctx := context.Background()

	a := seedPermission(t, db, &model.Permission{Name: "a", Code: "a", Status: 1})
	b := seedPermission(t, db, &model.Permission{Name: "b", Code: "b", ParentID: a.ID, Status: 1})
	c := seedPermission(t, db, &model.Permission{Name: "c", Code: "c", ParentID: b.ID, Status: 1})

	// 把a挂到自己的后代下面成环
	cycle, err := WouldCreateCycle(ctx, repo, a.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, cycle)

	cycle, err = WouldCreateCycle(ctx, repo, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, cycle)

	// 自己做自己的父节点
	cycle, err = WouldCreateCycle(ctx, repo, a.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, cycle)

	// 合法移动：c挂到a下、b提为顶级
	cycle, err = WouldCreateCycle(ctx, repo, c.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, cycle)

	cycle, err = WouldCreateCycle(ctx, repo, b.ID, 0)
	require.NoError(t, err)
	assert.False(t, cycle)

	// 父节点不存在视为安全，由存在性校验另行拒绝
	cycle, err = WouldCreateCycle(ctx, repo, b.ID, 999)
	require.NoError(t, err)
	assert.False(t, cycle)
}
