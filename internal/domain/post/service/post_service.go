package service

import (
	"context"

	blockModel "canvas_blog/internal/domain/block/model"
	blockRepo "canvas_blog/internal/domain/block/repository"
	moldRepo "canvas_blog/internal/domain/mold/repository"
	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/domain/post/repository"
	userRepo "canvas_blog/internal/domain/user/repository"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/internal/pkg/authz"
	"canvas_blog/pkg/cache"
	"canvas_blog/pkg/logger"
	"canvas_blog/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService 帖子聚合服务
// 写入把帖子、块、内容、标签、附件串成一个事务；
// 读取把同一批来源拼成详情视图
type PostService interface {
	WritePost(userID string, input model.WritePostInput) (*model.Post, error)
	UpdatePost(userID, postID string, input model.WritePostInput) (*model.Post, error)
	ViewPostDetail(viewerID, postID string) (*model.PostDetail, error)
	DeletePost(userID, postID string) error

	LikePost(ctx context.Context, userID, postID string) (*model.LikeInfo, error)
	AddComment(userID, postID, content string, parentID *string) (*model.Comment, error)
	FindTags(prefix string) ([]string, error)

	ListPosts(ctx context.Context, viewerID string, q ListQuery) (*utils.CursorPage, error)
}

type postService struct {
	db       *gorm.DB
	posts    repository.PostRepository
	blocks   blockRepo.BlockRepository
	contents blockRepo.ContentRepository
	molds    moldRepo.MoldRepository
	users    userRepo.UserRepository
	cache    cache.CacheService
}

func NewPostService(
	db *gorm.DB,
	posts repository.PostRepository,
	blocks blockRepo.BlockRepository,
	contents blockRepo.ContentRepository,
	molds moldRepo.MoldRepository,
	users userRepo.UserRepository,
	cacheService cache.CacheService,
) PostService {
	return &postService{
		db:       db,
		posts:    posts,
		blocks:   blocks,
		contents: contents,
		molds:    molds,
		users:    users,
		cache:    cacheService,
	}
}

// WritePost 发布帖子
// 分类、模板和块描述先校验，然后整条流水线在一个事务里落库
func (s *postService) WritePost(userID string, input model.WritePostInput) (*model.Post, error) {
	if err := s.validateInput(userID, &input); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:      input.Title,
		UserID:     userID,
		CategoryID: input.CategoryID,
	}
	if input.MoldID != "" {
		post.MoldID = &input.MoldID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).Create(post); err != nil {
			return err
		}
		if err := s.writeBlocks(tx, post.ID, input.Blocks); err != nil {
			return err
		}
		if err := s.replaceTags(tx, post.ID, input.Tags); err != nil {
			return err
		}
		return s.linkAttachments(tx, post.ID, input.AttachmentNames)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost 编辑帖子，整体替换语义
// 旧内容行全部清掉重写；不再被引用的独立块一并删除，模板块保留
func (s *postService) UpdatePost(userID, postID string, input model.WritePostInput) (*model.Post, error) {
	owner, err := s.posts.OwnerID(postID)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckOwner(userID, owner); err != nil {
		return nil, err
	}
	if err := s.validateInput(userID, &input); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	post.Title = input.Title
	post.CategoryID = input.CategoryID
	post.MoldID = nil
	if input.MoldID != "" {
		post.MoldID = &input.MoldID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).Update(post); err != nil {
			return err
		}

		oldBlockIDs, err := s.contents.WithTx(tx).DeleteByPost(postID)
		if err != nil {
			return err
		}
		if err := s.writeBlocks(tx, postID, input.Blocks); err != nil {
			return err
		}

		// 不再被新版本引用的独立块成了孤儿，清理掉
		kept := make(map[string]bool, len(input.Blocks))
		for _, spec := range input.Blocks {
			if spec.ID != "" {
				kept[spec.ID] = true
			}
		}
		var stale []string
		for _, id := range oldBlockIDs {
			if !kept[id] {
				stale = append(stale, id)
			}
		}
		if err := s.blocks.WithTx(tx).DeleteFreeStanding(stale); err != nil {
			return err
		}

		if err := s.posts.WithTx(tx).DeletePostTagsByPost(postID); err != nil {
			return err
		}
		if err := s.replaceTags(tx, postID, input.Tags); err != nil {
			return err
		}

		if err := s.posts.WithTx(tx).DetachAttachmentsByPost(postID); err != nil {
			return err
		}
		return s.linkAttachments(tx, postID, input.AttachmentNames)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ViewPostDetail 帖子详情
// 每次读取都记一条浏览；Liked 只对已登录的访问者有意义
func (s *postService) ViewPostDetail(viewerID, postID string) (*model.PostDetail, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	// 浏览计数是副作用，失败只记日志不影响读取
	if err := s.posts.CreateHit(&model.Hit{PostID: postID}); err != nil {
		logger.Warn("failed to record hit", zap.String("postId", postID), zap.Error(err))
	}

	author, err := s.users.GetByID(post.UserID)
	if err != nil {
		return nil, err
	}
	category, err := s.posts.GetCategory(post.CategoryID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.blocks.FindByPost(postID)
	if err != nil {
		return nil, err
	}
	contents, err := s.contents.ReadAllByPost(postID)
	if err != nil {
		return nil, err
	}
	views := make([]blockModel.BlockView, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, blockModel.BlockView{
			ID:          b.ID,
			Type:        b.Type,
			X:           b.X,
			Y:           b.Y,
			Width:       b.Width,
			Height:      b.Height,
			Explanation: b.Explanation,
			Main:        b.Main,
			Content:     contents[b.ID],
		})
	}

	attachments, err := s.posts.FindAttachmentsByPost(postID)
	if err != nil {
		return nil, err
	}
	tags, err := s.posts.TagNamesByPost(postID)
	if err != nil {
		return nil, err
	}
	hitCount, err := s.posts.CountHits(postID)
	if err != nil {
		return nil, err
	}

	likeInfo := model.LikeInfo{}
	likeInfo.Count, err = s.posts.CountLikes(postID)
	if err != nil {
		return nil, err
	}
	if viewerID != "" {
		liked, err := s.posts.HasLiked(viewerID, postID)
		if err != nil {
			return nil, err
		}
		likeInfo.Liked = &liked
	}

	comments, err := s.posts.FindCommentsByPost(postID)
	if err != nil {
		return nil, err
	}
	commentViews := make([]model.CommentView, 0, len(comments))
	for _, cm := range comments {
		commentViews = append(commentViews, model.CommentView{
			ID:        cm.ID,
			UserID:    cm.UserID,
			Content:   cm.Content,
			ParentID:  cm.ParentID,
			CreatedAt: cm.CreatedAt,
		})
	}

	return &model.PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		CreatedAt: post.CreatedAt,
		Author: model.AuthorInfo{
			ID:        author.ID,
			Nickname:  author.Nickname,
			AvatarURL: author.AvatarURL,
		},
		Category:    *category,
		MoldID:      post.MoldID,
		Blocks:      views,
		Attachments: attachments,
		Tags:        tags,
		HitCount:    hitCount,
		Like:        likeInfo,
		Comments:    commentViews,
	}, nil
}

// DeletePost 删除帖子及其全部从属行
// 固定顺序：点赞 → 评论 → 浏览 → 附件解绑 → 标签关联 → 内容行 → 独立块 → 帖子本体。
// 模板块和上传记录不在级联范围内
func (s *postService) DeletePost(userID, postID string) error {
	owner, err := s.posts.OwnerID(postID)
	if err != nil {
		return err
	}
	if err := authz.CheckOwner(userID, owner); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		if err := posts.DeleteLikesByPost(postID); err != nil {
			return err
		}
		if err := posts.DeleteCommentsByPost(postID); err != nil {
			return err
		}
		if err := posts.DeleteHitsByPost(postID); err != nil {
			return err
		}
		if err := posts.DetachAttachmentsByPost(postID); err != nil {
			return err
		}
		if err := posts.DeletePostTagsByPost(postID); err != nil {
			return err
		}
		blockIDs, err := s.contents.WithTx(tx).DeleteByPost(postID)
		if err != nil {
			return err
		}
		if err := s.blocks.WithTx(tx).DeleteFreeStanding(blockIDs); err != nil {
			return err
		}
		return posts.DeleteRow(postID)
	})
	if err != nil {
		return err
	}

	s.invalidateHottest(context.Background())
	return nil
}

// validateInput 写入前置校验：作者、分类、模板存在，块描述合法
func (s *postService) validateInput(userID string, input *model.WritePostInput) error {
	if input.Title == "" {
		return apperr.New(apperr.ErrInvalidArgument, "title is required")
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return err
	}
	if _, err := s.posts.GetCategory(input.CategoryID); err != nil {
		return err
	}
	if input.MoldID != "" {
		if _, err := s.molds.GetByID(input.MoldID); err != nil {
			return err
		}
	}
	if err := blockModel.ValidateSpecs(input.Blocks); err != nil {
		return err
	}
	return blockModel.NormalizeMain(input.Blocks)
}

// writeBlocks 块描述落库：块记录先行，内容按类型分发
// ID 非空的描述复用既有块（通常来自模板），几何信息以本次提交为准
func (s *postService) writeBlocks(tx *gorm.DB, postID string, specs []blockModel.BlockSpec) error {
	blocks := s.blocks.WithTx(tx)
	contents := s.contents.WithTx(tx)

	for i := range specs {
		spec := &specs[i]

		var block *blockModel.Block
		if spec.ID != "" {
			existing, err := blocks.GetByID(spec.ID)
			if err != nil {
				return err
			}
			existing.X = spec.X
			existing.Y = spec.Y
			existing.Width = spec.Width
			existing.Height = spec.Height
			existing.Explanation = spec.Explanation
			existing.Main = spec.Main
			block = existing
		} else {
			block = &blockModel.Block{
				X:           spec.X,
				Y:           spec.Y,
				Width:       spec.Width,
				Height:      spec.Height,
				Explanation: spec.Explanation,
				Main:        spec.Main,
				Type:        spec.Type,
			}
		}

		if err := blocks.Save([]*blockModel.Block{block}); err != nil {
			return err
		}
		if err := contents.Write(postID, block, spec.Content); err != nil {
			return err
		}
	}
	return nil
}

// replaceTags 标签整体替换：find-or-create 标签，再建关联
func (s *postService) replaceTags(tx *gorm.DB, postID string, names []string) error {
	posts := s.posts.WithTx(tx)
	for _, name := range names {
		if name == "" {
			continue
		}
		tag, err := posts.GetTagByName(name)
		if err != nil {
			if apperr.GetCode(err) != apperr.ErrNotFound {
				return err
			}
			tag = &model.Tag{Name: name}
			if err := posts.CreateTag(tag); err != nil {
				return err
			}
		}
		if err := posts.CreatePostTag(&model.PostTag{PostID: postID, TagID: tag.ID}); err != nil {
			return err
		}
	}
	return nil
}

// linkAttachments 把先行上传的附件按名字挂到帖子上
func (s *postService) linkAttachments(tx *gorm.DB, postID string, names []string) error {
	posts := s.posts.WithTx(tx)
	for _, name := range names {
		att, err := posts.GetAttachmentByName(name)
		if err != nil {
			return err
		}
		att.PostID = &postID
		if err := posts.SaveAttachment(att); err != nil {
			return err
		}
	}
	return nil
}
