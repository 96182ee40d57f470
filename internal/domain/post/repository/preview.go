package repository

import (
	"strings"
	"time"

	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/pkg/apperr"
)

// PreviewQuery 列表预览查询
// 除 hottest 外都用键集游标（After = 上一页最后一条），
// 固定游标下并发插入不会造成条目重复或丢失；
// hottest 的排名本身易变，退回偏移量游标
type PreviewQuery struct {
	Filter     model.ListFilter
	CategoryID string
	AuthorID   string
	LikerID    string
	Keyword    string
	After      *model.Post
	Since      time.Time
	Offset     int
	Limit      int
}

// 预览投影：帖子元数据 + 作者 + 计数 + 代表块摘要
// 摘要按内容表逐一探测代表块，取第一个命中的内容
const previewSelect = `
SELECT p.id, p.title, p.created_at,
       u.nickname  AS author_name,
       u.avatar_url AS author_image,
       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
       (SELECT COUNT(*) FROM hits  h WHERE h.post_id = p.id) AS hit_count,
       COALESCE(
         (SELECT tc.body       FROM text_contents  tc JOIN blocks b ON b.id = tc.block_id
            WHERE tc.post_id = p.id AND b.main LIMIT 1),
         (SELECT cc.code       FROM code_contents  cc JOIN blocks b ON b.id = cc.block_id
            WHERE cc.post_id = p.id AND b.main LIMIT 1),
         (SELECT mc.expression FROM math_contents  mc JOIN blocks b ON b.id = mc.block_id
            WHERE mc.post_id = p.id AND b.main LIMIT 1),
         (SELECT lc.url        FROM link_contents  lc JOIN blocks b ON b.id = lc.block_id
            WHERE lc.post_id = p.id AND b.main LIMIT 1),
         (SELECT ic.url        FROM image_contents ic JOIN blocks b ON b.id = ic.block_id
            WHERE ic.post_id = p.id AND b.main ORDER BY ic.seq LIMIT 1),
         '') AS summary
FROM posts p
JOIN users u ON u.id = p.user_id
`

// ListPreviews 列表引擎入口
func (r *postRepository) ListPreviews(q PreviewQuery) ([]model.PostPreview, error) {
	var (
		where []string
		args  []interface{}
	)
	where = append(where, "p.deleted_at IS NULL")

	switch q.Filter {
	case model.FilterCategory:
		where = append(where, "p.category_id = ?")
		args = append(args, q.CategoryID)
	case model.FilterAuthor:
		where = append(where, "p.user_id = ?")
		args = append(args, q.AuthorID)
	case model.FilterLiked:
		where = append(where, "EXISTS (SELECT 1 FROM likes ml WHERE ml.post_id = p.id AND ml.user_id = ?)")
		args = append(args, q.LikerID)
	case model.FilterSearch:
		// 标题或文本内容的关键字匹配，按时间排序，id 兜底打破平局
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		where = append(where,
			"(lower(p.title) LIKE ? OR EXISTS (SELECT 1 FROM text_contents tc2 WHERE tc2.post_id = p.id AND lower(tc2.body) LIKE ?))")
		args = append(args, kw, kw)
	case model.FilterRecent, model.FilterHottest:
		// 无额外筛选
	default:
		return nil, apperr.New(apperr.ErrInvalidArgument, "unrecognized list filter")
	}

	sql := previewSelect

	if q.Filter == model.FilterHottest {
		sql += " WHERE " + strings.Join(where, " AND ")
		// 最近窗口内的点赞增量降序
		sql += ` ORDER BY (SELECT COUNT(*) FROM likes hl WHERE hl.post_id = p.id AND hl.created_at >= ?) DESC, p.id DESC`
		args = append(args, q.Since)
		sql += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	} else {
		if q.After != nil {
			// 键集游标：严格位于 (created_at, id) 之后（降序方向）
			where = append(where, "(p.created_at, p.id) < (?, ?)")
			args = append(args, q.After.CreatedAt, q.After.ID)
		}
		sql += " WHERE " + strings.Join(where, " AND ")
		sql += " ORDER BY p.created_at DESC, p.id DESC LIMIT ?"
		args = append(args, q.Limit)
	}

	var previews []model.PostPreview
	if err := r.db.Raw(sql, args...).Scan(&previews).Error; err != nil {
		return nil, apperr.FromStorage(err, "posts not found")
	}
	return previews, nil
}
