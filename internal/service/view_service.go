package service

import (
	"context"
	"fmt"
	"time"

	"clipflow/internal/config"
	infraKafka "clipflow/internal/infra/kafka"
	infraRedis "clipflow/internal/infra/redis"
	"clipflow/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// 同一观看者对同一视频在去重窗口内只计一次观看
const viewDedupTTL = 6 * time.Hour

type ViewService struct{}

func NewViewService() *ViewService {
	return &ViewService{}
}

// Record 上报观看事件：Redis SETNX 去重后写入 Kafka，由 worker 聚合计数。
// 全程 best-effort，失败只记日志，不影响视频读取
func (s *ViewService) Record(ctx context.Context, videoID, viewerID primitive.ObjectID) {
	key := fmt.Sprintf("view:%s:%s", videoID.Hex(), viewerID.Hex())
	ok, err := infraRedis.Get().SetNX(ctx, key, 1, viewDedupTTL).Result()
	if err != nil {
		logger.Warn("View dedup check failed", zap.String("video_id", videoID.Hex()), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	topic := config.GetKafka().Topics["video_views"]
	event := &infraKafka.ViewEvent{
		VideoID:  videoID.Hex(),
		ViewerID: viewerID.Hex(),
		ViewedAt: time.Now().Unix(),
	}
	if err := infraKafka.SendViewEvent(ctx, topic, event); err != nil {
		logger.Warn("Send view event failed", zap.String("video_id", videoID.Hex()), zap.Error(err))
	}
}
