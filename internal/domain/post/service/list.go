package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/internal/pkg/config"
	"canvas_blog/pkg/cache"
	"canvas_blog/pkg/logger"
	"canvas_blog/pkg/utils"

	"go.uber.org/zap"
)

// 热门榜缓存
const (
	hottestCacheKeyPrefix = "posts:hottest:"
	hottestCacheTTL       = time.Minute * 5
)

// ListQuery 列表请求
type ListQuery struct {
	Filter     model.ListFilter
	CategoryID string
	AuthorID   string
	Keyword    string
	Page       utils.CursorQuery
}

// ListPosts 列表引擎
// recent/category/author/liked/search 走键集游标（游标 = 上一页最后一条的帖子 id），
// hottest 的排名易变，走偏移量游标并短暂缓存
func (s *postService) ListPosts(ctx context.Context, viewerID string, q ListQuery) (*utils.CursorPage, error) {
	limit := q.Page.PageSize(config.GlobalConfig.App.PageSize)

	pq := repository.PreviewQuery{
		Filter:     q.Filter,
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
		Keyword:    q.Keyword,
		Limit:      limit,
	}

	switch q.Filter {
	case model.FilterCategory:
		if q.CategoryID == "" {
			return nil, apperr.New(apperr.ErrInvalidArgument, "categoryId is required")
		}
	case model.FilterAuthor:
		if q.AuthorID == "" {
			return nil, apperr.New(apperr.ErrInvalidArgument, "authorId is required")
		}
	case model.FilterLiked:
		if viewerID == "" {
			return nil, apperr.New(apperr.ErrPermissionDenied, "no permission")
		}
		pq.LikerID = viewerID
	case model.FilterSearch:
		if q.Keyword == "" {
			return nil, apperr.New(apperr.ErrInvalidArgument, "keyword is required")
		}
	case model.FilterHottest:
		return s.listHottest(ctx, pq, q.Page)
	case model.FilterRecent:
		// 无额外参数
	default:
		return nil, apperr.New(apperr.ErrInvalidArgument, "unrecognized list filter")
	}

	if q.Page.Cursor != "" {
		after, err := s.posts.GetByID(q.Page.Cursor)
		if err != nil {
			if apperr.GetCode(err) == apperr.ErrNotFound {
				return nil, apperr.New(apperr.ErrInvalidArgument, "invalid cursor")
			}
			return nil, err
		}
		pq.After = after
	}

	previews, err := s.posts.ListPreviews(pq)
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(previews) == limit {
		nextCursor = previews[len(previews)-1].ID
	}
	return &utils.CursorPage{List: previews, NextCursor: nextCursor}, nil
}

// listHottest 热门榜：最近窗口内点赞增量降序
// 结果短暂缓存，点赞和删帖时整体失效
func (s *postService) listHottest(ctx context.Context, pq repository.PreviewQuery, page utils.CursorQuery) (*utils.CursorPage, error) {
	pq.Offset = utils.ParseOffsetCursor(page.Cursor)
	pq.Since = time.Now().Add(-time.Duration(config.GlobalConfig.App.HotWindowHours) * time.Hour)

	key := fmt.Sprintf("%s%d:%d", hottestCacheKeyPrefix, pq.Offset, pq.Limit)

	var previews []model.PostPreview
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &previews); err == nil {
			return &utils.CursorPage{
				List:       previews,
				NextCursor: utils.NextOffsetCursor(pq.Offset, len(previews), pq.Limit),
			}, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("hottest cache read failed", zap.Error(err))
		}
	}

	previews, err := s.posts.ListPreviews(pq)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, previews, hottestCacheTTL); err != nil {
			logger.Warn("hottest cache write failed", zap.Error(err))
		}
	}

	return &utils.CursorPage{
		List:       previews,
		NextCursor: utils.NextOffsetCursor(pq.Offset, len(previews), pq.Limit),
	}, nil
}

// invalidateHottest 点赞或删帖后热门榜整体失效
// 尽力而为：缓存层故障只记日志
func (s *postService) invalidateHottest(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePattern(ctx, hottestCacheKeyPrefix+"*"); err != nil {
		logger.Warn("hottest cache invalidation failed", zap.Error(err))
	}
}
