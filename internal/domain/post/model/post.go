package model

import (
	"time"

	blockModel "canvas_blog/internal/domain/block/model"
	baseModel "canvas_blog/pkg/model"
)

// Category 帖子分类
type Category struct {
	baseModel.BaseModel
	Name string `gorm:"unique" json:"name"`
}

// Post 帖子
// MoldID 是弱引用：帖子可以不用模板，模板删除时这里置空
type Post struct {
	baseModel.BaseModel
	Title      string  `json:"title"`
	UserID     string  `gorm:"type:uuid;index" json:"userId"`
	CategoryID string  `gorm:"type:uuid;index" json:"categoryId"`
	MoldID     *string `gorm:"type:uuid;index" json:"moldId"`
}

// Tag 标签
type Tag struct {
	baseModel.BaseModel
	Name string `gorm:"unique" json:"name"`
}

// PostTag 帖子-标签关联
type PostTag struct {
	baseModel.RecordModel
	PostID string `gorm:"type:uuid;index" json:"postId"`
	TagID  string `gorm:"type:uuid;index" json:"tagId"`
}

// Attachment 独立上传的文件
// PostID 在帖子引用它（按名字或按内容 URL 匹配）时回填
type Attachment struct {
	baseModel.BaseModel
	Name   string  `gorm:"index" json:"name"`
	URL    string  `gorm:"size:2000;index" json:"url"`
	PostID *string `gorm:"type:uuid;index" json:"postId"`
}

// Like 点赞，(user_id, post_id) 唯一
// 唯一约束由迁移里的唯一索引兜底，并发重复点赞靠它拒绝
type Like struct {
	baseModel.RecordModel
	UserID string `gorm:"type:uuid;uniqueIndex:idx_likes_user_post" json:"userId"`
	PostID string `gorm:"type:uuid;uniqueIndex:idx_likes_user_post" json:"postId"`
}

// Hit 浏览记录，只追加
type Hit struct {
	baseModel.RecordModel
	PostID string `gorm:"type:uuid;index" json:"postId"`
}

// Comment 评论
type Comment struct {
	baseModel.RecordModel
	UpdatedAt time.Time `json:"updatedAt"`
	PostID    string    `gorm:"type:uuid;index" json:"postId"`
	UserID    string    `gorm:"type:uuid;index" json:"userId"`
	Content   string    `gorm:"type:text" json:"content"`
	ParentID  *string   `gorm:"type:uuid" json:"parentId"`
}

// --- 聚合视图 ---

// AuthorInfo 作者侧写
type AuthorInfo struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// LikeInfo 点赞统计；Liked 只在访问者已登录时有意义
type LikeInfo struct {
	Count int64 `json:"count"`
	Liked *bool `json:"liked,omitempty"`
}

// CommentView 评论视图
type CommentView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostDetail 帖子详情：元数据 + 分类 + 作者 + 块 + 附件 + 标签 + 计数
type PostDetail struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	CreatedAt   time.Time              `json:"createdAt"`
	Author      AuthorInfo             `json:"author"`
	Category    Category               `json:"category"`
	MoldID      *string                `json:"moldId,omitempty"`
	Blocks      []blockModel.BlockView `json:"blocks"`
	Attachments []Attachment           `json:"attachments"`
	Tags        []string               `json:"tags"`
	HitCount    int64                  `json:"hitCount"`
	Like        LikeInfo               `json:"like"`
	Comments    []CommentView          `json:"comments"`
}

// PostPreview 列表用的预览投影
type PostPreview struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage"`
	LikeCount   int64     `json:"likeCount"`
	HitCount    int64     `json:"hitCount"`
	Summary     string    `json:"summary"` // 代表块的内容摘要
}

// ListFilter 列表查询的筛选维度
type ListFilter string

const (
	FilterCategory ListFilter = "category"
	FilterAuthor   ListFilter = "author"
	FilterLiked    ListFilter = "liked"
	FilterHottest  ListFilter = "hottest"
	FilterRecent   ListFilter = "recent"
	FilterSearch   ListFilter = "search"
)

// WritePostInput 写帖/改帖输入
type WritePostInput struct {
	Title           string
	CategoryID      string
	MoldID          string
	Blocks          []blockModel.BlockSpec
	Tags            []string
	AttachmentNames []string
}
