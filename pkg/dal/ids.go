package dal

import (
	"strconv"
	"strings"

	"github.com/haocai/material-system/pkg/errors"
)

// ParseInt64ID 解析路径参数中的ID
func ParseInt64ID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New(400, "ID不能为空")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(400, "无效的ID")
	}
	return id, nil
}

// ParseInt64IDs 解析逗号分隔的ID列表
func ParseInt64IDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := ParseInt64ID(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New(400, "ID列表不能为空")
	}
	return ids, nil
}
