package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clipflow/internal/api/handler"
	"clipflow/internal/api/middleware"
	"clipflow/internal/api/router"
	"clipflow/internal/config"
	infraES "clipflow/internal/infra/elasticsearch"
	infraKafka "clipflow/internal/infra/kafka"
	infraMinio "clipflow/internal/infra/minio"
	"clipflow/internal/infra/mongodb"
	infraRedis "clipflow/internal/infra/redis"
	"clipflow/internal/media"
	"clipflow/internal/repository"
	"clipflow/internal/service"
	"clipflow/pkg/logger"

	_ "clipflow/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Clipflow API
// @version 1.0
// @description 视频分享平台 API 服务
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@clipflow.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化MongoDB
	if err := mongodb.Init(&cfg.MongoDB); err != nil {
		logger.Fatal("Failed to init mongodb", zap.Error(err))
	}
	defer mongodb.Close()

	// 建索引（唯一约束依赖索引，必须在服务前完成）
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer indexCancel()
	if err := mongodb.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("Failed to ensure mongodb indexes", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 Mongo）
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to MongoDB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	db := mongodb.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	uploader := media.NewUploader(&cfg.MinIO)

	searchService := service.NewSearchService(videoRepo, userRepo)
	viewService := service.NewViewService()
	videoService := service.NewVideoService(videoRepo, commentRepo, likeRepo, userRepo, uploader, searchService, viewService)
	commentService := service.NewCommentService(commentRepo, videoRepo, likeRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, likeRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	channelService := service.NewChannelService(userRepo, subscriptionRepo, videoRepo, likeRepo)

	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	channelHandler := handler.NewChannelHandler(channelService)
	searchHandler := handler.NewSearchHandler(searchService)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, videoHandler, commentHandler, likeHandler, playlistHandler, tweetHandler, subscriptionHandler, channelHandler, searchHandler)

	// 启动HTTP服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}
