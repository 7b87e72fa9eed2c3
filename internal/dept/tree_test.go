package dept

import (
	"testing"

	"github.com/haocai/material-system/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(id, parentID int64, name string) model.Dept {
	dept := model.Dept{ParentID: parentID, Name: name}
	dept.ID = id
	return dept
}

func TestBuildTree(t *testing.T) {
	flat := []model.Dept{
		d(1, 0, "总部"),
		d(2, 1, "研发部"),
		d(3, 1, "采购部"),
		d(4, 2, "后端组"),
	}

	tree := BuildTree(flat, 0)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "研发部", tree[0].Children[0].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "后端组", tree[0].Children[0].Children[0].Name)
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(nil, 0)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
