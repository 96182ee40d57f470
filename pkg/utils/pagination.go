package utils

import "strconv"

// CursorQuery 游标分页请求参数
// Cursor 是不透明位置标记："此位置之后"的条目
type CursorQuery struct {
	Cursor string `json:"cursor" form:"cursor"`
	Limit  int    `json:"limit" form:"limit"`
}

// PageSize 规范化每页条数
func (q *CursorQuery) PageSize(fallback int) int {
	limit := q.Limit
	if limit <= 0 {
		limit = fallback
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}

// CursorPage 游标分页响应结果
type CursorPage struct {
	List       interface{} `json:"list"`
	NextCursor string      `json:"nextCursor"` // 为空表示没有下一页
}

// ParseOffsetCursor 解析偏移量型游标（用于排名类列表）
// 非法游标按起点处理而不是报错
func ParseOffsetCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextOffsetCursor 生成下一页的偏移量游标
// 不满一页说明到底了，返回空游标
func NextOffsetCursor(offset, fetched, limit int) string {
	if fetched < limit {
		return ""
	}
	return strconv.Itoa(offset + fetched)
}
