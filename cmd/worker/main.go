package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clipflow/internal/config"
	infraKafka "clipflow/internal/infra/kafka"
	"clipflow/internal/infra/mongodb"
	"clipflow/internal/repository"
	"clipflow/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := mongodb.Init(&cfg.MongoDB); err != nil {
		logger.Fatal("Failed to init mongodb", zap.Error(err))
	}
	defer mongodb.Close()

	videoRepo := repository.NewVideoRepository(mongodb.Get())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["video_views"]
	groupID := "clipflow-view-worker"

	logger.Info("View worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	// 每条事件给对应视频的观看数 +1
	handler := func(event *infraKafka.ViewEvent) error {
		videoID, err := primitive.ObjectIDFromHex(event.VideoID)
		if err != nil {
			logger.Warn("Skip view event with invalid video id", zap.String("video_id", event.VideoID))
			return nil
		}
		return videoRepo.IncrementViews(ctx, videoID, 1)
	}

	infraKafka.StartViewEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)
}
