package model

import (
	"time"

	baseModel "canvas_blog/pkg/model"
)

// BlockType 块类型标签，决定内容行的存储路径
type BlockType string

const (
	TypeText      BlockType = "text"
	TypeImage     BlockType = "image" // 图片集，唯一的多行内容类型
	TypeCode      BlockType = "code"
	TypeHyperlink BlockType = "hyperlink"
	TypeMath      BlockType = "math"
	TypeVideo     BlockType = "video"
	TypeDocument  BlockType = "document"
)

// Valid 是否为可识别的类型标签
func (t BlockType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeCode, TypeHyperlink, TypeMath, TypeVideo, TypeDocument:
		return true
	}
	return false
}

// IsLink 是否为单 URL 链接类内容（超链接/视频/文档共用一张内容表）
func (t BlockType) IsLink() bool {
	return t == TypeHyperlink || t == TypeVideo || t == TypeDocument
}

// Block 画布上的定位块记录
// 只承载几何信息和类型标签，内容按标签分表存放
type Block struct {
	baseModel.RecordModel
	UpdatedAt   time.Time `json:"updatedAt"`
	MoldID      *string   `gorm:"type:uuid;index" json:"moldId"` // 所属模板，弱引用，模板删除时置空
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Explanation string    `json:"explanation"`
	Main        bool      `gorm:"default:false" json:"main"` // 代表块，每篇帖子/每个模板最多一个
	Type        BlockType `gorm:"size:16" json:"type"`
}

// --- 内容表，每行以 (block_id, post_id) 归属 ---

// TextContent 文本内容
type TextContent struct {
	baseModel.RecordModel
	BlockID string `gorm:"type:uuid;index" json:"blockId"`
	PostID  string `gorm:"type:uuid;index" json:"postId"`
	Body    string `gorm:"type:text" json:"body"`
}

// ImageContent 图片集内容，一块多行，Seq 保持提交顺序
type ImageContent struct {
	baseModel.RecordModel
	BlockID string `gorm:"type:uuid;index" json:"blockId"`
	PostID  string `gorm:"type:uuid;index" json:"postId"`
	URL     string `gorm:"size:2000" json:"url"`
	Seq     int    `json:"seq"`
}

// CodeContent 代码内容
type CodeContent struct {
	baseModel.RecordModel
	BlockID     string `gorm:"type:uuid;index" json:"blockId"`
	PostID      string `gorm:"type:uuid;index" json:"postId"`
	Code        string `gorm:"type:text" json:"code"`
	Explanation string `gorm:"type:text" json:"explanation"`
	Language    string `gorm:"size:64" json:"language"`
}

// MathContent 数学表达式内容
type MathContent struct {
	baseModel.RecordModel
	BlockID    string `gorm:"type:uuid;index" json:"blockId"`
	PostID     string `gorm:"type:uuid;index" json:"postId"`
	Expression string `gorm:"size:2000" json:"expression"`
}

// LinkContent 单 URL 内容（hyperlink / video / document）
// 具体标签在所属块上
type LinkContent struct {
	baseModel.RecordModel
	BlockID string `gorm:"type:uuid;index" json:"blockId"`
	PostID  string `gorm:"type:uuid;index" json:"postId"`
	URL     string `gorm:"size:2000" json:"url"`
}

// BlockContent 和类型标签配套的内容载荷
// 同一时刻只有与标签对应的字段有效
type BlockContent struct {
	Text       string   `json:"text,omitempty"`
	ImageURLs  []string `json:"imageUrls,omitempty"`
	Code       string   `json:"code,omitempty"`
	CodeNote   string   `json:"codeNote,omitempty"`
	Language   string   `json:"language,omitempty"`
	URL        string   `json:"url,omitempty"`
	Expression string   `json:"expression,omitempty"`
}

// BlockSpec 写入用的块描述
// ID 非空表示复用已有块（通常来自模板），只更新定位字段
type BlockSpec struct {
	ID          string       `json:"id"`
	Type        BlockType    `json:"type"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Explanation string       `json:"explanation"`
	Main        bool         `json:"main"`
	Content     BlockContent `json:"content"`
}

// BlockView 读出的块：定位记录 + 按标签合并后的内容
// 图片集的多行在这里合并为一个有序 URL 列表
type BlockView struct {
	ID          string        `json:"id"`
	Type        BlockType     `json:"type"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Explanation string        `json:"explanation"`
	Main        bool          `json:"main"`
	Content     *BlockContent `json:"content,omitempty"`
}
