package logic

import "strings"

// NormalizePage 规范化分页参数
func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// TotalPages 计算总页数 ceil(total/limit)
func TotalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// orderClause 把 "-createdAt" 风格的排序参数翻译成SQL排序子句。
// 字段必须在白名单内，否则退回默认排序。
func orderClause(sort string, fields map[string]string, fallback string) string {
	if sort == "" {
		return fallback
	}
	desc := strings.HasPrefix(sort, "-")
	field := strings.TrimPrefix(sort, "-")
	col, ok := fields[field]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
