package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "canvas_blog/internal/domain/common"
	_ "canvas_blog/internal/domain/mold"
	_ "canvas_blog/internal/domain/post"
	_ "canvas_blog/internal/domain/user"
	"canvas_blog/internal/pkg/config"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/internal/pkg/registry"
	"canvas_blog/internal/pkg/uploader"
	"canvas_blog/pkg/cache"
	"canvas_blog/pkg/database"
	"canvas_blog/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func main() {
	// 1. 配置与日志
	config.LoadConfig()
	if err := logger.InitLogger(config.GlobalConfig.App.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	redisClient := database.InitRedis()
	cacheService := cache.NewRedisCache(redisClient)

	if err := uploader.InitUploader(); err != nil {
		// 上传依赖对象存储配置，没配时其余功能照常工作
		logger.Warn("uploader not available", zap.Error(err))
	}

	// 3. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// 4. 业务模块（各模块通过 init() 自注册）
	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  redisClient,
		Cache:  cacheService,
		Router: router,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Error("failed to init modules", zap.Error(err))
		os.Exit(1)
	}

	// 5. 运维端点
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 6. 启动与优雅退出
	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
