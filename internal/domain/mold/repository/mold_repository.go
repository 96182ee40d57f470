package repository

import (
	"canvas_blog/internal/domain/mold/model"
	"canvas_blog/internal/pkg/apperr"

	"gorm.io/gorm"
)

// MoldRepository 模板存储
type MoldRepository interface {
	WithTx(tx *gorm.DB) MoldRepository

	Create(mold *model.Mold) error
	GetByID(id string) (*model.Mold, error)
	FindByUser(userID string) ([]model.Mold, error)
	Delete(mold *model.Mold) error
}

type moldRepository struct {
	db *gorm.DB
}

func NewMoldRepository(db *gorm.DB) MoldRepository {
	return &moldRepository{db: db}
}

func (r *moldRepository) WithTx(tx *gorm.DB) MoldRepository {
	return &moldRepository{db: tx}
}

func (r *moldRepository) Create(mold *model.Mold) error {
	return apperr.FromStorage(r.db.Create(mold).Error, "mold owner not found")
}

func (r *moldRepository) GetByID(id string) (*model.Mold, error) {
	var mold model.Mold
	if err := r.db.Where("id = ?", id).First(&mold).Error; err != nil {
		return nil, apperr.FromStorage(err, "mold not found")
	}
	return &mold, nil
}

func (r *moldRepository) FindByUser(userID string) ([]model.Mold, error) {
	var molds []model.Mold
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&molds).Error; err != nil {
		return nil, apperr.FromStorage(err, "user not found")
	}
	return molds, nil
}

func (r *moldRepository) Delete(mold *model.Mold) error {
	return apperr.FromStorage(r.db.Delete(mold).Error, "mold not found")
}
