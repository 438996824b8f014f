package service

import (
	"context"
	"errors"
	"strings"

	"clipflow/internal/api/dto"
	"clipflow/internal/model"
	"clipflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrPlaylistNotFound       = errors.New("播放列表不存在")
	ErrPlaylistNameEmpty      = errors.New("播放列表名称不能为空")
	ErrPlaylistNameTaken      = errors.New("同名播放列表已存在")
	ErrVideoAlreadyInPlaylist = errors.New("视频已在播放列表中")
	ErrVideoNotInPlaylist     = errors.New("视频不在播放列表中")
)

type PlaylistService struct {
	playlistRepo PlaylistStore
	videoRepo    VideoFinder
}

func NewPlaylistService(playlistRepo PlaylistStore, videoRepo VideoFinder) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

// Create 创建播放列表，名称在同一属主下唯一
func (s *PlaylistService) Create(ctx context.Context, owner primitive.ObjectID, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPlaylistNameEmpty
	}

	playlist := &model.Playlist{
		Owner:       owner,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.playlistRepo.Insert(ctx, playlist); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrPlaylistNameTaken
		}
		return nil, err
	}
	return toPlaylistInfo(playlist), nil
}

// Update 属主更新播放列表，改名同样受唯一约束
func (s *PlaylistService) Update(ctx context.Context, id, requester primitive.ObjectID, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if _, err := s.loadOwned(ctx, id, requester); err != nil {
		return nil, err
	}

	sets := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrPlaylistNameEmpty
		}
		sets["name"] = name
	}
	if req.Description != nil {
		sets["description"] = strings.TrimSpace(*req.Description)
	}
	if len(sets) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.playlistRepo.Update(ctx, id, sets)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrPlaylistNameTaken
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return toPlaylistInfo(updated), nil
}

// Delete 属主删除播放列表，列表里的视频本身不受影响
func (s *PlaylistService) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	if _, err := s.loadOwned(ctx, id, requester); err != nil {
		return err
	}
	if err := s.playlistRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPlaylistNotFound
		}
		return err
	}
	return nil
}

// AddVideo 把视频加入播放列表：视频必须存在且已发布，重复加入按冲突处理
func (s *PlaylistService) AddVideo(ctx context.Context, id, videoID, requester primitive.ObjectID) error {
	if _, err := s.loadOwned(ctx, id, requester); err != nil {
		return err
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVideoNotFound
		}
		return err
	}
	// 未发布视频对外等同于不存在
	if !video.IsPublished && video.Owner != requester {
		return ErrVideoNotFound
	}

	exists, err := s.playlistRepo.Contains(ctx, id, videoID)
	if err != nil {
		return err
	}
	if exists {
		return ErrVideoAlreadyInPlaylist
	}

	return s.playlistRepo.AddVideo(ctx, id, videoID)
}

// RemoveVideo 把视频移出播放列表，不在列表中按冲突处理
func (s *PlaylistService) RemoveVideo(ctx context.Context, id, videoID, requester primitive.ObjectID) error {
	if _, err := s.loadOwned(ctx, id, requester); err != nil {
		return err
	}

	exists, err := s.playlistRepo.Contains(ctx, id, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVideoNotInPlaylist
	}

	return s.playlistRepo.RemoveVideo(ctx, id, videoID)
}

// ListByOwner 用户的播放列表概要，附视频总数和预览封面
func (s *PlaylistService) ListByOwner(ctx context.Context, owner primitive.ObjectID, page, limit int64) (*dto.PlaylistListData, error) {
	page, limit = repository.NormalizePagination(page, limit)

	items, total, err := s.playlistRepo.ListByOwner(ctx, owner, page, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PlaylistSummaryInfo, 0, len(items))
	for i := range items {
		p := &items[i]
		infos = append(infos, dto.PlaylistSummaryInfo{
			ID:               p.ID.Hex(),
			OwnerID:          p.Owner.Hex(),
			Name:             p.Name,
			Description:      p.Description,
			TotalVideos:      p.TotalVideos,
			PreviewThumbnail: p.PreviewThumbnail,
			CreatedAt:        p.CreatedAt,
			UpdatedAt:        p.UpdatedAt,
		})
	}

	return &dto.PlaylistListData{
		Items:      infos,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

// GetDetail 播放列表详情，只展开已发布视频
func (s *PlaylistService) GetDetail(ctx context.Context, id primitive.ObjectID) (*dto.PlaylistDetailInfo, error) {
	detail, err := s.playlistRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	return &dto.PlaylistDetailInfo{
		ID:          detail.ID.Hex(),
		OwnerID:     detail.Owner.Hex(),
		Name:        detail.Name,
		Description: detail.Description,
		Videos:      toVideoInfos(detail.VideoItems),
		TotalVideos: int64(len(detail.VideoItems)),
		CreatedAt:   detail.CreatedAt,
		UpdatedAt:   detail.UpdatedAt,
	}, nil
}

func (s *PlaylistService) loadOwned(ctx context.Context, id, requester primitive.ObjectID) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if err := requireOwner(playlist.Owner, requester); err != nil {
		return nil, err
	}
	return playlist, nil
}

func toPlaylistInfo(p *model.Playlist) *dto.PlaylistInfo {
	videos := make([]string, 0, len(p.Videos))
	for _, v := range p.Videos {
		videos = append(videos, v.Hex())
	}
	return &dto.PlaylistInfo{
		ID:          p.ID.Hex(),
		OwnerID:     p.Owner.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Videos:      videos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
