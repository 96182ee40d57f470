package user

import (
	"canvas_blog/internal/domain/user/handler"
	"canvas_blog/internal/domain/user/repository"
	"canvas_blog/internal/domain/user/service"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	// 公开路由
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/me", middleware.AuthMiddleware(), h.UpdateProfile)
	}
}
