package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clipflow/internal/config"
	"clipflow/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// ViewEvent 视频观看事件，worker 消费后累加观看数
type ViewEvent struct {
	VideoID  string `json:"video_id"`
	ViewerID string `json:"viewer_id"`
	ViewedAt int64  `json:"viewed_at"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendViewEvent 发送观看事件
func SendViewEvent(ctx context.Context, topic string, event *ViewEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal view event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte("video-" + event.VideoID),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send view event: %w", err)
	}

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
