package post

import (
	blockRepo "canvas_blog/internal/domain/block/repository"
	moldRepo "canvas_blog/internal/domain/mold/repository"
	"canvas_blog/internal/domain/post/handler"
	"canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/domain/post/service"
	userRepo "canvas_blog/internal/domain/user/repository"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PostModule 帖子模块
type PostModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	// 依赖 user 和 mold，放在它们之后
	return 3
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	posts := repository.NewPostRepository(ctx.DB)
	blocks := blockRepo.NewBlockRepository(ctx.DB)
	contents := blockRepo.NewContentRepository(ctx.DB)
	molds := moldRepo.NewMoldRepository(ctx.DB)
	users := userRepo.NewUserRepository(ctx.DB)
	postService := service.NewPostService(ctx.DB, posts, blocks, contents, molds, users, ctx.Cache)
	postHandler := handler.NewPostHandler(postService)

	// 2. 路由注册
	setupRoutes(ctx.Router, postHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	api := r.Group("/api/v1")

	// 读路径匿名可达，带 Token 时解析出访问者身份
	readGroup := api.Group("")
	readGroup.Use(middleware.OptionalAuthMiddleware())
	{
		readGroup.GET("/board/:id", h.GetPost)
		readGroup.GET("/boards", h.ListPosts)
		readGroup.GET("/tags", h.FindTags)
	}

	// 写路径必须登录
	writeGroup := api.Group("")
	writeGroup.Use(middleware.AuthMiddleware())
	{
		writeGroup.POST("/board", h.WritePost)
		writeGroup.PUT("/board/:id", h.UpdatePost)
		writeGroup.DELETE("/board/:id", h.DeletePost)
		writeGroup.POST("/board/:id/like", h.LikePost)
		writeGroup.POST("/board/:id/comment", h.AddComment)
	}
}
