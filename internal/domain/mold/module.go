package mold

import (
	blockRepo "canvas_blog/internal/domain/block/repository"
	"canvas_blog/internal/domain/mold/handler"
	"canvas_blog/internal/domain/mold/repository"
	"canvas_blog/internal/domain/mold/service"
	postRepo "canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// MoldModule 布局模板模块
type MoldModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&MoldModule{})
}

func (m *MoldModule) Name() string {
	return "mold"
}

func (m *MoldModule) Priority() int {
	return 2
}

func (m *MoldModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	molds := repository.NewMoldRepository(ctx.DB)
	blocks := blockRepo.NewBlockRepository(ctx.DB)
	posts := postRepo.NewPostRepository(ctx.DB)
	moldService := service.NewMoldService(ctx.DB, molds, blocks, posts)
	moldHandler := handler.NewMoldHandler(moldService)

	// 2. 路由注册
	setupRoutes(ctx.Router, moldHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.MoldHandler) {
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/layout", h.SaveLayouts)
		api.GET("/layouts", h.ListMolds)
		api.GET("/layouts/:id", h.GetMold)
		api.DELETE("/layouts/:id", h.DeleteMold)
	}
}
