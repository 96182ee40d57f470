package repository

import (
	"fmt"

	"canvas_blog/internal/domain/block/model"
	"canvas_blog/internal/pkg/apperr"

	"gorm.io/gorm"
)

// BlockRepository 定位块存储
// 只负责块记录本身；内容行的读写走 ContentRepository，写失败可以定位到具体一步
type BlockRepository interface {
	WithTx(tx *gorm.DB) BlockRepository

	Save(blocks []*model.Block) error
	GetByID(id string) (*model.Block, error)
	FindByMold(moldID string) ([]model.Block, error)
	FindByPost(postID string) ([]model.Block, error)
	DetachMold(moldID string) error
	DeleteFreeStanding(ids []string) error
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) WithTx(tx *gorm.DB) BlockRepository {
	return &blockRepository{db: tx}
}

// Save 持久化块记录（新块创建，已有块整体更新）
// 未识别的类型标签在这里拦下，不落库
func (r *blockRepository) Save(blocks []*model.Block) error {
	for _, b := range blocks {
		if !b.Type.Valid() {
			return apperr.New(apperr.ErrInvalidArgument, fmt.Sprintf("unrecognized block type %q", b.Type))
		}
	}
	for _, b := range blocks {
		if err := r.db.Save(b).Error; err != nil {
			return apperr.FromStorage(err, "block owner not found")
		}
	}
	return nil
}

func (r *blockRepository) GetByID(id string) (*model.Block, error) {
	var block model.Block
	if err := r.db.Where("id = ?", id).First(&block).Error; err != nil {
		return nil, apperr.FromStorage(err, "block not found")
	}
	return &block, nil
}

// FindByMold 模板下的块，按创建顺序
func (r *blockRepository) FindByMold(moldID string) ([]model.Block, error) {
	var blocks []model.Block
	if err := r.db.Where("mold_id = ?", moldID).Order("created_at, id").Find(&blocks).Error; err != nil {
		return nil, apperr.FromStorage(err, "mold not found")
	}
	return blocks, nil
}

// FindByPost 帖子的块：经由内容行反查（帖子和块的关联走内容表）
func (r *blockRepository) FindByPost(postID string) ([]model.Block, error) {
	ids, err := blockIDsByPost(r.db, postID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Block{}, nil
	}

	var blocks []model.Block
	if err := r.db.Where("id IN ?", ids).Order("created_at, id").Find(&blocks).Error; err != nil {
		return nil, apperr.FromStorage(err, "post blocks not found")
	}
	return blocks, nil
}

// DetachMold 模板删除时解除引用：块保留，mold_id 置空
func (r *blockRepository) DetachMold(moldID string) error {
	err := r.db.Model(&model.Block{}).Where("mold_id = ?", moldID).Update("mold_id", nil).Error
	return apperr.FromStorage(err, "mold not found")
}

// DeleteFreeStanding 删除不属于任何模板的块
// 模板持有的块是模板状态的一部分，帖子删除时保留
func (r *blockRepository) DeleteFreeStanding(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Where("id IN ? AND mold_id IS NULL", ids).Delete(&model.Block{}).Error
	return apperr.FromStorage(err, "blocks not found")
}

// blockIDsByPost 汇总所有内容表里该帖子引用到的块
func blockIDsByPost(db *gorm.DB, postID string) ([]string, error) {
	var ids []string
	err := db.Raw(`
		SELECT DISTINCT block_id FROM (
			SELECT block_id FROM text_contents  WHERE post_id = ?
			UNION SELECT block_id FROM image_contents WHERE post_id = ?
			UNION SELECT block_id FROM code_contents  WHERE post_id = ?
			UNION SELECT block_id FROM math_contents  WHERE post_id = ?
			UNION SELECT block_id FROM link_contents  WHERE post_id = ?
		) refs`, postID, postID, postID, postID, postID).Scan(&ids).Error
	if err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	return ids, nil
}
