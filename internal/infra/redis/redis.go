package redis

import (
	"context"
	"fmt"
	"time"

	"clipflow/internal/config"
	"clipflow/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// Init 初始化 Redis 客户端，观看去重依赖它
func Init(cfg *config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
	)

	return nil
}

// Close 关闭Redis连接
func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return client
}
