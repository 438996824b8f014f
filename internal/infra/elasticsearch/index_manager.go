package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"clipflow/internal/config"
	"clipflow/pkg/logger"

	"go.uber.org/zap"
)

// videosIndexName 返回配置的 videos 索引名
func videosIndexName() string {
	name := config.GetElasticsearch().Index["videos"]
	if name == "" {
		name = "videos"
	}
	return name
}

// GetVideosIndexMapping 返回 videos 索引的 mapping
func GetVideosIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"owner": {"type": "keyword"},
				"owner_name": {"type": "keyword"},
				"title": {
					"type": "text",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
				},
				"description": {"type": "text"},
				"is_published": {"type": "boolean"},
				"views": {"type": "long"},
				"duration": {"type": "float"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureVideosIndex 确保 videos 索引存在，不存在则创建
func EnsureVideosIndex(ctx context.Context) error {
	indexName := videosIndexName()

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", indexName))
		return nil
	}

	body := bytes.NewReader([]byte(GetVideosIndexMapping()))
	resp, err := IndicesCreate(ctx, indexName, body)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureVideosIndex(ctx)
}
