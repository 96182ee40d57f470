package repository

import (
	"errors"

	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/pkg/apperr"

	"gorm.io/gorm"
)

// PostRepository 帖子及其从属行（点赞/浏览/评论/标签/附件）的存储
// 列表预览查询在 preview.go
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository

	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	Update(post *model.Post) error
	DeleteRow(postID string) error
	OwnerID(postID string) (string, error)
	DetachMold(moldID string) error

	GetCategory(id string) (*model.Category, error)

	GetLike(userID, postID string) (*model.Like, error)
	CreateLike(like *model.Like) error
	DeleteLike(like *model.Like) error
	CountLikes(postID string) (int64, error)
	HasLiked(userID, postID string) (bool, error)
	DeleteLikesByPost(postID string) error

	CreateHit(hit *model.Hit) error
	CountHits(postID string) (int64, error)
	DeleteHitsByPost(postID string) error

	CreateComment(comment *model.Comment) error
	FindCommentsByPost(postID string) ([]model.Comment, error)
	DeleteCommentsByPost(postID string) error

	SaveAttachment(att *model.Attachment) error
	GetAttachmentByName(name string) (*model.Attachment, error)
	DeleteAttachmentByName(name string) (*model.Attachment, error)
	FindAttachmentsByPost(postID string) ([]model.Attachment, error)
	DetachAttachmentsByPost(postID string) error

	GetTagByName(name string) (*model.Tag, error)
	CreateTag(tag *model.Tag) error
	CreatePostTag(pt *model.PostTag) error
	DeletePostTagsByPost(postID string) error
	TagNamesByPost(postID string) ([]string, error)
	FindTagNamesByPrefix(prefix string) ([]string, error)

	ListPreviews(q PreviewQuery) ([]model.PostPreview, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

// --- Post ---

func (r *postRepository) Create(post *model.Post) error {
	return apperr.FromStorage(r.db.Create(post).Error, "post owner not found")
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, apperr.FromStorage(err, "post not found")
	}
	return &post, nil
}

func (r *postRepository) Update(post *model.Post) error {
	return apperr.FromStorage(r.db.Save(post).Error, "post not found")
}

// DeleteRow 物理删除帖子行，级联清理的最后一步
func (r *postRepository) DeleteRow(postID string) error {
	err := r.db.Unscoped().Where("id = ?", postID).Delete(&model.Post{}).Error
	return apperr.FromStorage(err, "post not found")
}

// OwnerID 帖子作者，给所有权校验用
func (r *postRepository) OwnerID(postID string) (string, error) {
	var post model.Post
	if err := r.db.Select("user_id").Where("id = ?", postID).First(&post).Error; err != nil {
		return "", apperr.FromStorage(err, "post not found")
	}
	return post.UserID, nil
}

// DetachMold 模板删除时解除帖子的模板引用，不级联删帖
func (r *postRepository) DetachMold(moldID string) error {
	err := r.db.Model(&model.Post{}).Where("mold_id = ?", moldID).Update("mold_id", nil).Error
	return apperr.FromStorage(err, "mold not found")
}

// --- Category ---

func (r *postRepository) GetCategory(id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, apperr.FromStorage(err, "category not found")
	}
	return &category, nil
}

// --- Like ---

func (r *postRepository) GetLike(userID, postID string) (*model.Like, error) {
	var like model.Like
	if err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error; err != nil {
		return nil, apperr.FromStorage(err, "like not found")
	}
	return &like, nil
}

func (r *postRepository) CreateLike(like *model.Like) error {
	// 唯一索引 (user_id, post_id) 是并发去重的最终防线
	return apperr.FromStorage(r.db.Create(like).Error, "post not found")
}

func (r *postRepository) DeleteLike(like *model.Like) error {
	return apperr.FromStorage(r.db.Delete(like).Error, "like not found")
}

func (r *postRepository) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, apperr.FromStorage(err, "post not found")
}

func (r *postRepository) HasLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, apperr.FromStorage(err, "post not found")
}

func (r *postRepository) DeleteLikesByPost(postID string) error {
	err := r.db.Where("post_id = ?", postID).Delete(&model.Like{}).Error
	return apperr.FromStorage(err, "post not found")
}

// --- Hit ---

func (r *postRepository) CreateHit(hit *model.Hit) error {
	return apperr.FromStorage(r.db.Create(hit).Error, "post not found")
}

func (r *postRepository) CountHits(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Hit{}).Where("post_id = ?", postID).Count(&count).Error
	return count, apperr.FromStorage(err, "post not found")
}

func (r *postRepository) DeleteHitsByPost(postID string) error {
	err := r.db.Where("post_id = ?", postID).Delete(&model.Hit{}).Error
	return apperr.FromStorage(err, "post not found")
}

// --- Comment ---

func (r *postRepository) CreateComment(comment *model.Comment) error {
	return apperr.FromStorage(r.db.Create(comment).Error, "post not found")
}

func (r *postRepository) FindCommentsByPost(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at, id").Find(&comments).Error
	return comments, apperr.FromStorage(err, "post not found")
}

func (r *postRepository) DeleteCommentsByPost(postID string) error {
	err := r.db.Where("post_id = ?", postID).Delete(&model.Comment{}).Error
	return apperr.FromStorage(err, "post not found")
}

// --- Attachment ---

func (r *postRepository) SaveAttachment(att *model.Attachment) error {
	return apperr.FromStorage(r.db.Save(att).Error, "attachment not found")
}

func (r *postRepository) GetAttachmentByName(name string) (*model.Attachment, error) {
	var att model.Attachment
	if err := r.db.Where("name = ?", name).First(&att).Error; err != nil {
		return nil, apperr.FromStorage(err, "attachment not found")
	}
	return &att, nil
}

// DeleteAttachmentByName 删除上传记录，返回被删的附件
func (r *postRepository) DeleteAttachmentByName(name string) (*model.Attachment, error) {
	att, err := r.GetAttachmentByName(name)
	if err != nil {
		return nil, err
	}
	if err := r.db.Unscoped().Delete(att).Error; err != nil {
		return nil, apperr.FromStorage(err, "attachment not found")
	}
	return att, nil
}

func (r *postRepository) FindAttachmentsByPost(postID string) ([]model.Attachment, error) {
	var atts []model.Attachment
	err := r.db.Where("post_id = ?", postID).Order("created_at, id").Find(&atts).Error
	return atts, apperr.FromStorage(err, "post not found")
}

// DetachAttachmentsByPost 解除附件与帖子的关联；上传记录本身保留
func (r *postRepository) DetachAttachmentsByPost(postID string) error {
	err := r.db.Model(&model.Attachment{}).Where("post_id = ?", postID).Update("post_id", nil).Error
	return apperr.FromStorage(err, "post not found")
}

// --- Tag ---

func (r *postRepository) GetTagByName(name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "tag not found", err)
		}
		return nil, apperr.FromStorage(err, "tag not found")
	}
	return &tag, nil
}

func (r *postRepository) CreateTag(tag *model.Tag) error {
	return apperr.FromStorage(r.db.Create(tag).Error, "tag not found")
}

func (r *postRepository) CreatePostTag(pt *model.PostTag) error {
	return apperr.FromStorage(r.db.Create(pt).Error, "post not found")
}

func (r *postRepository) DeletePostTagsByPost(postID string) error {
	err := r.db.Where("post_id = ?", postID).Delete(&model.PostTag{}).Error
	return apperr.FromStorage(err, "post not found")
}

func (r *postRepository) TagNamesByPost(postID string) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Tag{}).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("post_tags.created_at").
		Pluck("tags.name", &names).Error
	return names, apperr.FromStorage(err, "post not found")
}

func (r *postRepository) FindTagNamesByPrefix(prefix string) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Tag{}).
		Where("name LIKE ?", prefix+"%").
		Order("name").Limit(20).
		Pluck("name", &names).Error
	return names, apperr.FromStorage(err, "tags not found")
}
