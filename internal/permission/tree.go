package permission

import (
	"context"
	"sort"

	"github.com/haocai/material-system/internal/model"
)

// TreeNode 权限树节点
type TreeNode struct {
	model.Permission
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree 把扁平权限列表组装为森林
// 纯转换，不触库；兄弟节点按(sort_order升序, id升序)排列；
// 父节点不在列表内的节点会被丢弃（挂在不可见子树下）
func BuildTree(permissions []model.Permission, parentID int64) []*TreeNode {
	sorted := make([]model.Permission, len(permissions))
	copy(sorted, permissions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].ID < sorted[j].ID
	})

	children := make(map[int64][]*TreeNode, len(sorted))
	for _, p := range sorted {
		children[p.ParentID] = append(children[p.ParentID], &TreeNode{Permission: p})
	}

	var attach func(nodes []*TreeNode) []*TreeNode
	attach = func(nodes []*TreeNode) []*TreeNode {
		for _, n := range nodes {
			n.Children = attach(children[n.ID])
		}
		return nodes
	}

	roots := children[parentID]
	if roots == nil {
		return []*TreeNode{}
	}
	return attach(roots)
}

// WouldCreateCycle 判断把nodeID的父节点改为proposedParentID是否会成环
// 沿祖先链向上走：撞到nodeID即成环；走到顶（parent_id=0）或父节点不存在则安全。
// visited集合防止已有脏数据成环时死循环。
func WouldCreateCycle(ctx context.Context, repo Repository, nodeID, proposedParentID int64) (bool, error) {
	if proposedParentID == 0 {
		return false, nil
	}
	if proposedParentID == nodeID {
		return true, nil
	}

	visited := map[int64]struct{}{nodeID: {}}
	current := proposedParentID
	for current != 0 {
		if _, ok := visited[current]; ok {
			return true, nil
		}
		visited[current] = struct{}{}

		node, err := repo.FindByID(ctx, current)
		if err != nil {
			return false, err
		}
		if node == nil {
			return false, nil
		}
		current = node.ParentID
	}
	return false, nil
}
