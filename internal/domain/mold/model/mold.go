package model

import (
	blockModel "canvas_blog/internal/domain/block/model"
	baseModel "canvas_blog/pkg/model"
)

// Mold 可复用的布局模板，持有一组有序的块
// UserID 可空：所有者可以被独立清除
type Mold struct {
	baseModel.BaseModel
	Name   string  `json:"name"`
	UserID *string `gorm:"type:uuid;index" json:"userId"`
}

// MoldWithLayouts 模板及其块列表
// 未建模板（moldName 为空）时 MoldID/Title 为空，只返回保存的块
type MoldWithLayouts struct {
	MoldID string             `json:"moldId,omitempty"`
	Title  string             `json:"title,omitempty"`
	Blocks []blockModel.Block `json:"blocks"`
}
