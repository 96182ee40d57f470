package service

import (
	"context"

	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/pkg/apperr"
)

// LikePost 点赞开关：没赞过就赞，赞过就取消
// 并发双赞由 (user_id, post_id) 唯一索引兜底，撞上返回 Conflict
func (s *postService) LikePost(ctx context.Context, userID, postID string) (*model.LikeInfo, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		return nil, err
	}

	like, err := s.posts.GetLike(userID, postID)
	switch {
	case err == nil:
		if err := s.posts.DeleteLike(like); err != nil {
			return nil, err
		}
	case apperr.GetCode(err) == apperr.ErrNotFound:
		if err := s.posts.CreateLike(&model.Like{UserID: userID, PostID: postID}); err != nil {
			if apperr.GetCode(err) == apperr.ErrConflict {
				return nil, apperr.New(apperr.ErrConflict, "already liked")
			}
			return nil, err
		}
	default:
		return nil, err
	}

	s.invalidateHottest(ctx)

	count, err := s.posts.CountLikes(postID)
	if err != nil {
		return nil, err
	}
	liked, err := s.posts.HasLiked(userID, postID)
	if err != nil {
		return nil, err
	}
	return &model.LikeInfo{Count: count, Liked: &liked}, nil
}

// AddComment 发表评论，parentID 非空时为回复
func (s *postService) AddComment(userID, postID, content string, parentID *string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.New(apperr.ErrInvalidArgument, "comment content is required")
	}
	if _, err := s.posts.GetByID(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		UserID:   userID,
		Content:  content,
		ParentID: parentID,
	}
	if err := s.posts.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// FindTags 标签前缀补全
func (s *postService) FindTags(prefix string) ([]string, error) {
	if prefix == "" {
		return []string{}, nil
	}
	return s.posts.FindTagNamesByPrefix(prefix)
}
