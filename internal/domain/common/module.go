package common

import (
	"canvas_blog/internal/domain/common/handler"
	"canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	uploadHandler := handler.NewUploadHandler(repository.NewPostRepository(ctx.DB))
	setupRoutes(ctx.Router, uploadHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UploadHandler) {
	// 文件上传接口
	r.POST("/upload", middleware.AuthMiddleware(), h.UploadFiles)
	r.DELETE("/upload/:name", middleware.AuthMiddleware(), h.DeleteAttachment)
}
