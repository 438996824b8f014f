package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clipflow/internal/api/dto"
	"clipflow/internal/config"
	infraES "clipflow/internal/infra/elasticsearch"
	"clipflow/internal/model"
	"clipflow/internal/repository"
	"clipflow/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type SearchService struct {
	videoRepo VideoStore
	userRepo  UserStore
}

func NewSearchService(videoRepo VideoStore, userRepo UserStore) *SearchService {
	return &SearchService{videoRepo: videoRepo, userRepo: userRepo}
}

// SearchVideos 搜索已发布视频（ES 优先，失败降级到 Mongo 正则检索）
func (s *SearchService) SearchVideos(ctx context.Context, query string, page, limit int64) (*dto.VideoListData, error) {
	page, limit = repository.NormalizePagination(page, limit)

	if infraES.Enabled() {
		data, err := s.searchFromES(ctx, query, page, limit)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to MongoDB", zap.Error(err))
	}
	return s.searchFromMongo(ctx, query, page, limit)
}

func (s *SearchService) searchFromES(ctx context.Context, query string, page, limit int64) (*dto.VideoListData, error) {
	body := map[string]interface{}{
		"from": (page - 1) * limit,
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^3", "description"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_published": true},
				},
			},
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
			{"created_at": map[string]interface{}{"order": "desc"}},
		},
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	esCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(esCtx, config.GetElasticsearch().VideosIndex(), bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		id, err := primitive.ObjectIDFromHex(h.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	total := esResp.Hits.Total.Value
	items := make([]model.VideoWithOwner, 0, len(ids))
	if len(ids) > 0 {
		videos, err := s.videoRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		// Mongo 不保证 $in 的顺序，按 ES 相关性重排
		byID := make(map[primitive.ObjectID]*model.VideoWithOwner, len(videos))
		for i := range videos {
			byID[videos[i].ID] = &videos[i]
		}
		for _, id := range ids {
			if v, ok := byID[id]; ok {
				items = append(items, *v)
			}
		}
	}

	return &dto.VideoListData{
		Items:      toVideoInfos(items),
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func (s *SearchService) searchFromMongo(ctx context.Context, query string, page, limit int64) (*dto.VideoListData, error) {
	items, total, err := s.videoRepo.List(ctx, repository.VideoListOptions{
		PublishedOnly: true,
		Query:         query,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.VideoListData{
		Items:      toVideoInfos(items),
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

// SyncVideo 把视频旁路同步进搜索索引，失败只记日志
func (s *SearchService) SyncVideo(ctx context.Context, videoID primitive.ObjectID) {
	if !infraES.Enabled() {
		return
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logger.Warn("Load video for ES sync failed", zap.String("video_id", videoID.Hex()), zap.Error(err))
		}
		return
	}

	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, video.Owner); err == nil {
		ownerName = owner.Username
	}

	if err := infraES.SyncVideo(ctx, video, ownerName); err != nil {
		logger.Warn("Sync video to ES failed", zap.String("video_id", videoID.Hex()), zap.Error(err))
	}
}

// RemoveVideo 把视频移出搜索索引，失败只记日志
func (s *SearchService) RemoveVideo(ctx context.Context, videoID primitive.ObjectID) {
	if !infraES.Enabled() {
		return
	}
	if err := infraES.DeleteVideo(ctx, videoID.Hex()); err != nil {
		logger.Warn("Remove video from ES failed", zap.String("video_id", videoID.Hex()), zap.Error(err))
	}
}
