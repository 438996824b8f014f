package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clipflow/internal/model"
	"clipflow/pkg/logger"

	"go.uber.org/zap"
)

// ESVideoDoc ES 视频文档结构
type ESVideoDoc struct {
	ID          string  `json:"id"`
	Owner       string  `json:"owner"`
	OwnerName   string  `json:"owner_name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	Views       int64   `json:"views"`
	Duration    float64 `json:"duration"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func videoToESDoc(v *model.Video, ownerName string) *ESVideoDoc {
	return &ESVideoDoc{
		ID:          v.ID.Hex(),
		Owner:       v.Owner.Hex(),
		OwnerName:   ownerName,
		Title:       v.Title,
		Description: v.Description,
		IsPublished: v.IsPublished,
		Views:       v.Views,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}

// SyncVideo 同步单个视频到 ES
func SyncVideo(ctx context.Context, v *model.Video, ownerName string) error {
	doc := videoToESDoc(v, ownerName)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, videosIndexName(), v.ID.Hex(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.String("video_id", v.ID.Hex()))
	return nil
}

// DeleteVideo 从 ES 删除视频
func DeleteVideo(ctx context.Context, videoID string) error {
	resp, err := Delete(ctx, videosIndexName(), videoID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}
