package handler

import (
	"net/http"

	blockModel "canvas_blog/internal/domain/block/model"
	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/domain/post/service"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/pkg/response"
	"canvas_blog/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子 HTTP 入口
type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// WritePostRequest 发帖/改帖请求
type WritePostRequest struct {
	Title           string                 `json:"title" binding:"required"`
	CategoryID      string                 `json:"categoryId" binding:"required"`
	MoldID          string                 `json:"moldId"`
	Blocks          []blockModel.BlockSpec `json:"blocks" binding:"required"`
	Tags            []string               `json:"tags"`
	AttachmentNames []string               `json:"attachmentNames"`
}

func (r *WritePostRequest) toInput() model.WritePostInput {
	return model.WritePostInput{
		Title:           r.Title,
		CategoryID:      r.CategoryID,
		MoldID:          r.MoldID,
		Blocks:          r.Blocks,
		Tags:            r.Tags,
		AttachmentNames: r.AttachmentNames,
	}
}

// CommentRequest 评论请求
type CommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// ListPostsRequest 列表请求
type ListPostsRequest struct {
	Filter     string `form:"filter"`
	CategoryID string `form:"categoryId"`
	AuthorID   string `form:"authorId"`
	Keyword    string `form:"keyword"`
	utils.CursorQuery
}

// WritePost 发布帖子
// @Summary 发布帖子
// @Tags post
// @Accept json
// @Produce json
// @Param request body WritePostRequest true "帖子内容"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/board [post]
func (h *PostHandler) WritePost(c *gin.Context) {
	var req WritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	post, err := h.postService.WritePost(userID, req.toInput())
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, gin.H{"id": post.ID})
}

// UpdatePost 编辑帖子
// @Summary 编辑帖子（整体替换）
// @Tags post
// @Accept json
// @Produce json
// @Param id path string true "帖子 ID"
// @Param request body WritePostRequest true "帖子内容"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/board/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req WritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	post, err := h.postService.UpdatePost(userID, c.Param("id"), req.toInput())
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, gin.H{"id": post.ID})
}

// GetPost 帖子详情
// @Summary 帖子详情，匿名可读
// @Tags post
// @Produce json
// @Param id path string true "帖子 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/board/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)
	detail, err := h.postService.ViewPostDetail(viewerID, c.Param("id"))
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, detail)
}

// DeletePost 删除帖子
// @Summary 删除帖子及其从属数据
// @Tags post
// @Produce json
// @Param id path string true "帖子 ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/board/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := h.postService.DeletePost(userID, c.Param("id")); err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, nil)
}

// LikePost 点赞/取消点赞
// @Summary 点赞开关
// @Tags post
// @Produce json
// @Param id path string true "帖子 ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/board/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	info, err := h.postService.LikePost(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, info)
}

// AddComment 发表评论
// @Summary 发表评论或回复
// @Tags post
// @Accept json
// @Produce json
// @Param id path string true "帖子 ID"
// @Param request body CommentRequest true "评论内容"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/board/{id}/comment [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	comment, err := h.postService.AddComment(userID, c.Param("id"), req.Content, req.ParentID)
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, comment)
}

// ListPosts 帖子列表
// @Summary 帖子列表（游标分页）
// @Tags post
// @Produce json
// @Param filter query string false "recent|hottest|category|author|liked|search"
// @Param categoryId query string false "分类 ID"
// @Param authorId query string false "作者 ID"
// @Param keyword query string false "搜索关键字"
// @Param cursor query string false "游标"
// @Param limit query int false "每页条数"
// @Success 200 {object} response.Response
// @Router /api/v1/boards [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var req ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if req.Filter == "" {
		req.Filter = string(model.FilterRecent)
	}

	viewerID := middleware.CurrentUserID(c)
	page, err := h.postService.ListPosts(c.Request.Context(), viewerID, service.ListQuery{
		Filter:     model.ListFilter(req.Filter),
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Keyword:    req.Keyword,
		Page:       req.CursorQuery,
	})
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, page)
}

// FindTags 标签补全
// @Summary 标签前缀补全
// @Tags post
// @Produce json
// @Param prefix query string true "前缀"
// @Success 200 {object} response.Response
// @Router /api/v1/tags [get]
func (h *PostHandler) FindTags(c *gin.Context) {
	tags, err := h.postService.FindTags(c.Query("prefix"))
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, tags)
}
