package material

import (
	"github.com/haocai/material-system/internal/model"
)

// BuildCategoryTree 把扁平分类列表组装为森林
// 输入需按(sort, id)升序排列，兄弟顺序由输入决定
func BuildCategoryTree(categories []model.MaterialCategory, parentID int64) []*model.MaterialCategory {
	children := make(map[int64][]*model.MaterialCategory, len(categories))
	for i := range categories {
		c := categories[i]
		children[c.ParentID] = append(children[c.ParentID], &c)
	}

	var attach func(nodes []*model.MaterialCategory) []*model.MaterialCategory
	attach = func(nodes []*model.MaterialCategory) []*model.MaterialCategory {
		for _, n := range nodes {
			n.Children = attach(children[n.ID])
		}
		return nodes
	}

	roots := children[parentID]
	if roots == nil {
		return []*model.MaterialCategory{}
	}
	return attach(roots)
}
