package repository

import (
	"canvas_blog/internal/domain/user/model"
	"canvas_blog/internal/pkg/apperr"

	"gorm.io/gorm"
)

// UserRepository 接口定义
type UserRepository interface {
	Create(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	Delete(user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户，邮箱重复由唯一约束拒绝
func (r *userRepository) Create(user *model.User) error {
	return apperr.FromStorage(r.db.Create(user).Error, "user not found")
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, apperr.FromStorage(err, "user not found")
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperr.FromStorage(err, "user not found")
	}
	return &user, nil
}

// Update 更新用户
func (r *userRepository) Update(user *model.User) error {
	return apperr.FromStorage(r.db.Save(user).Error, "user not found")
}

// Delete 删除用户（软删除）
func (r *userRepository) Delete(user *model.User) error {
	return apperr.FromStorage(r.db.Delete(user).Error, "user not found")
}
