package repository

import (
	"errors"
	"fmt"

	"canvas_blog/internal/domain/block/model"
	postModel "canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/pkg/apperr"

	"gorm.io/gorm"
)

// ContentRepository 内容分发器
// 纯按类型标签选择存储路径；读到未识别标签时返回空结果而不是报错，
// 让聚合层能静默跳过
type ContentRepository interface {
	WithTx(tx *gorm.DB) ContentRepository

	Write(postID string, block *model.Block, payload model.BlockContent) error
	Read(blockID string, typeTag model.BlockType) (*model.BlockContent, error)
	ReadAllByPost(postID string) (map[string]*model.BlockContent, error)
	DeleteByPost(postID string) ([]string, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) WithTx(tx *gorm.DB) ContentRepository {
	return &contentRepository{db: tx}
}

// Write 按块的类型标签写内容
// 一律先删后插：编辑是整体替换语义，图片集不做合并，避免重复 URL
func (r *contentRepository) Write(postID string, block *model.Block, payload model.BlockContent) error {
	switch block.Type {
	case model.TypeText:
		if err := r.replaceRows(block.ID, &model.TextContent{}); err != nil {
			return err
		}
		row := model.TextContent{BlockID: block.ID, PostID: postID, Body: payload.Text}
		return apperr.FromStorage(r.db.Create(&row).Error, "block not found")

	case model.TypeImage:
		if err := r.replaceRows(block.ID, &model.ImageContent{}); err != nil {
			return err
		}
		for i, url := range payload.ImageURLs {
			row := model.ImageContent{BlockID: block.ID, PostID: postID, URL: url, Seq: i}
			if err := r.db.Create(&row).Error; err != nil {
				return apperr.FromStorage(err, "block not found")
			}
		}
		return nil

	case model.TypeCode:
		if err := r.replaceRows(block.ID, &model.CodeContent{}); err != nil {
			return err
		}
		row := model.CodeContent{
			BlockID:     block.ID,
			PostID:      postID,
			Code:        payload.Code,
			Explanation: payload.CodeNote,
			Language:    payload.Language,
		}
		return apperr.FromStorage(r.db.Create(&row).Error, "block not found")

	case model.TypeMath:
		if err := r.replaceRows(block.ID, &model.MathContent{}); err != nil {
			return err
		}
		row := model.MathContent{BlockID: block.ID, PostID: postID, Expression: payload.Expression}
		return apperr.FromStorage(r.db.Create(&row).Error, "block not found")

	case model.TypeHyperlink, model.TypeVideo, model.TypeDocument:
		if err := r.replaceRows(block.ID, &model.LinkContent{}); err != nil {
			return err
		}
		row := model.LinkContent{BlockID: block.ID, PostID: postID, URL: payload.URL}
		if err := r.db.Create(&row).Error; err != nil {
			return apperr.FromStorage(err, "block not found")
		}
		// 带外上传的附件如果 URL 一致，顺手挂到当前帖子上。
		// 尽力而为：没有匹配不算错误
		return r.linkAttachmentByURL(postID, payload.URL)

	default:
		return apperr.New(apperr.ErrInvalidArgument, fmt.Sprintf("unrecognized block type %q", block.Type))
	}
}

// Read 按类型标签读单个块的内容
// 图片集返回可能为空的有序 URL 列表；未识别标签返回 (nil, nil)
func (r *contentRepository) Read(blockID string, typeTag model.BlockType) (*model.BlockContent, error) {
	switch typeTag {
	case model.TypeText:
		var row model.TextContent
		if err := r.db.Where("block_id = ?", blockID).First(&row).Error; err != nil {
			return nil, skipNotFound(err)
		}
		return &model.BlockContent{Text: row.Body}, nil

	case model.TypeImage:
		var rows []model.ImageContent
		if err := r.db.Where("block_id = ?", blockID).Order("seq").Find(&rows).Error; err != nil {
			return nil, apperr.FromStorage(err, "block not found")
		}
		urls := make([]string, 0, len(rows))
		for _, row := range rows {
			urls = append(urls, row.URL)
		}
		return &model.BlockContent{ImageURLs: urls}, nil

	case model.TypeCode:
		var row model.CodeContent
		if err := r.db.Where("block_id = ?", blockID).First(&row).Error; err != nil {
			return nil, skipNotFound(err)
		}
		return &model.BlockContent{Code: row.Code, CodeNote: row.Explanation, Language: row.Language}, nil

	case model.TypeMath:
		var row model.MathContent
		if err := r.db.Where("block_id = ?", blockID).First(&row).Error; err != nil {
			return nil, skipNotFound(err)
		}
		return &model.BlockContent{Expression: row.Expression}, nil

	case model.TypeHyperlink, model.TypeVideo, model.TypeDocument:
		var row model.LinkContent
		if err := r.db.Where("block_id = ?", blockID).First(&row).Error; err != nil {
			return nil, skipNotFound(err)
		}
		return &model.BlockContent{URL: row.URL}, nil

	default:
		// 聚合层据此静默跳过
		return nil, nil
	}
}

// ReadAllByPost 一次取出帖子的全部内容行，按块聚合
// 同一块的多张图片按 Seq 合并为一个有序列表
func (r *contentRepository) ReadAllByPost(postID string) (map[string]*model.BlockContent, error) {
	contents := make(map[string]*model.BlockContent)

	var texts []model.TextContent
	if err := r.db.Where("post_id = ?", postID).Find(&texts).Error; err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	for _, row := range texts {
		contents[row.BlockID] = &model.BlockContent{Text: row.Body}
	}

	var images []model.ImageContent
	if err := r.db.Where("post_id = ?", postID).Order("seq").Find(&images).Error; err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	for _, row := range images {
		if c, ok := contents[row.BlockID]; ok {
			c.ImageURLs = append(c.ImageURLs, row.URL)
		} else {
			contents[row.BlockID] = &model.BlockContent{ImageURLs: []string{row.URL}}
		}
	}

	var codes []model.CodeContent
	if err := r.db.Where("post_id = ?", postID).Find(&codes).Error; err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	for _, row := range codes {
		contents[row.BlockID] = &model.BlockContent{Code: row.Code, CodeNote: row.Explanation, Language: row.Language}
	}

	var maths []model.MathContent
	if err := r.db.Where("post_id = ?", postID).Find(&maths).Error; err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	for _, row := range maths {
		contents[row.BlockID] = &model.BlockContent{Expression: row.Expression}
	}

	var links []model.LinkContent
	if err := r.db.Where("post_id = ?", postID).Find(&links).Error; err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	for _, row := range links {
		contents[row.BlockID] = &model.BlockContent{URL: row.URL}
	}

	return contents, nil
}

// DeleteByPost 清掉帖子在所有内容表里的行，返回涉及的块 id
// 帖子级联删除的其中一步
func (r *contentRepository) DeleteByPost(postID string) ([]string, error) {
	ids, err := blockIDsByPost(r.db, postID)
	if err != nil {
		return nil, err
	}

	for _, target := range []interface{}{
		&model.TextContent{}, &model.ImageContent{}, &model.CodeContent{},
		&model.MathContent{}, &model.LinkContent{},
	} {
		if err := r.db.Where("post_id = ?", postID).Delete(target).Error; err != nil {
			return nil, apperr.FromStorage(err, "post not found")
		}
	}
	return ids, nil
}

// replaceRows 删除某块的既有内容行（先删后插的前半步）
func (r *contentRepository) replaceRows(blockID string, target interface{}) error {
	err := r.db.Where("block_id = ?", blockID).Delete(target).Error
	return apperr.FromStorage(err, "block not found")
}

// linkAttachmentByURL 按 URL 匹配既有附件并关联到帖子
func (r *contentRepository) linkAttachmentByURL(postID, url string) error {
	if url == "" {
		return nil
	}
	var att postModel.Attachment
	err := r.db.Where("url = ?", url).First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperr.FromStorage(err, "attachment not found")
	}
	err = r.db.Model(&att).Update("post_id", postID).Error
	return apperr.FromStorage(err, "attachment not found")
}

// skipNotFound 单行内容缺失按"无内容"处理
func skipNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return apperr.FromStorage(err, "block content not found")
}
