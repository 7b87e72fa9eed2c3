package dept

import (
	"github.com/haocai/material-system/internal/model"
)

// BuildTree 把扁平部门列表组装为森林
// 输入需按(sort, id)升序排列，兄弟顺序由输入决定
func BuildTree(depts []model.Dept, parentID int64) []*model.Dept {
	children := make(map[int64][]*model.Dept, len(depts))
	for i := range depts {
		d := depts[i]
		children[d.ParentID] = append(children[d.ParentID], &d)
	}

	var attach func(nodes []*model.Dept) []*model.Dept
	attach = func(nodes []*model.Dept) []*model.Dept {
		for _, n := range nodes {
			n.Children = attach(children[n.ID])
		}
		return nodes
	}

	roots := children[parentID]
	if roots == nil {
		return []*model.Dept{}
	}
	return attach(roots)
}
