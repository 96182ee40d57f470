package model

import baseModel "canvas_blog/pkg/model"

// User 用户模型
type User struct {
	baseModel.BaseModel
	Email     string `gorm:"unique" json:"email"`
	Password  string `json:"-"` // 密码不返回给前端
	Nickname  string `json:"nickname"`
	AvatarURL string `gorm:"size:2000" json:"avatarUrl"`
}
