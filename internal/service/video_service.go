package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"clipflow/internal/api/dto"
	"clipflow/internal/media"
	"clipflow/internal/model"
	"clipflow/internal/repository"
	"clipflow/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrVideoNotFound    = errors.New("视频不存在")
	ErrVideoTitleEmpty  = errors.New("视频标题不能为空")
	ErrNoFieldsToUpdate = errors.New("没有需要更新的字段")
)

// FileUpload 上传文件的读取器与元信息
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type VideoService struct {
	videoRepo   VideoStore
	commentRepo CommentStore
	likeRepo    LikeStore
	userRepo    UserStore
	media       MediaUploader
	indexer     SearchIndexer
	views       ViewRecorder
}

func NewVideoService(videoRepo VideoStore, commentRepo CommentStore, likeRepo LikeStore, userRepo UserStore, uploader MediaUploader, indexer SearchIndexer, views ViewRecorder) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		media:       uploader,
		indexer:     indexer,
		views:       views,
	}
}

// Publish 发布视频：先传视频文件再传封面，封面失败时回收已上传的视频对象
func (s *VideoService) Publish(ctx context.Context, owner primitive.ObjectID, req *dto.VideoPublishRequest, videoFile, thumbnail *FileUpload) (*dto.VideoInfo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrVideoTitleEmpty
	}

	videoAsset, err := s.media.Upload(ctx, media.KindVideo, videoFile.Filename, videoFile.Reader, videoFile.Size, videoFile.ContentType)
	if err != nil {
		return nil, fmt.Errorf("上传视频文件失败: %w", err)
	}

	thumbAsset, err := s.media.Upload(ctx, media.KindThumbnail, thumbnail.Filename, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
	if err != nil {
		// 封面上传失败，回收已上传的视频对象
		s.removeObject(ctx, videoAsset.ObjectName)
		return nil, fmt.Errorf("上传封面失败: %w", err)
	}

	video := &model.Video{
		Owner:       owner,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		VideoFile:   model.MediaAsset(*videoAsset),
		Thumbnail:   model.MediaAsset(*thumbAsset),
		Duration:    req.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Insert(ctx, video); err != nil {
		// 入库失败，回收本次上传的两个对象
		s.removeObject(ctx, videoAsset.ObjectName)
		s.removeObject(ctx, thumbAsset.ObjectName)
		return nil, err
	}

	if s.indexer != nil {
		s.indexer.SyncVideo(ctx, video.ID)
	}

	return toVideoInfo(video, s.ownerBrief(ctx, owner)), nil
}

// GetByID 获取单个视频。未发布的视频只有属主可见，其余请求一律按不存在处理。
// 已发布视频的读取会上报一次观看事件
func (s *VideoService) GetByID(ctx context.Context, id, requester primitive.ObjectID) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !video.IsPublished && video.Owner != requester {
		return nil, ErrVideoNotFound
	}

	if video.IsPublished && s.views != nil {
		s.views.Record(ctx, video.ID, requester)
	}

	return toVideoInfo(video, s.ownerBrief(ctx, video.Owner)), nil
}

// List 公开视频列表：只含已发布视频，支持搜索、排序和按属主过滤
func (s *VideoService) List(ctx context.Context, opts repository.VideoListOptions) (*dto.VideoListData, error) {
	opts.Page, opts.Limit = repository.NormalizePagination(opts.Page, opts.Limit)
	opts.PublishedOnly = true

	items, total, err := s.videoRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &dto.VideoListData{
		Items:      toVideoInfos(items),
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, opts.Limit),
	}, nil
}

// Update 属主更新视频：只合并出现的字段，换封面时删除旧封面对象
func (s *VideoService) Update(ctx context.Context, id, requester primitive.ObjectID, req *dto.VideoUpdateRequest, thumbnail *FileUpload) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if err := requireOwner(video.Owner, requester); err != nil {
		return nil, err
	}

	sets := bson.M{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrVideoTitleEmpty
		}
		sets["title"] = title
	}
	if req.Description != nil {
		sets["description"] = strings.TrimSpace(*req.Description)
	}

	newThumbnail, oldThumbnail := "", ""
	if thumbnail != nil {
		asset, err := s.media.Upload(ctx, media.KindThumbnail, thumbnail.Filename, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			return nil, fmt.Errorf("上传封面失败: %w", err)
		}
		sets["thumbnail"] = model.MediaAsset(*asset)
		newThumbnail = asset.ObjectName
		oldThumbnail = video.Thumbnail.ObjectName
	}

	if len(sets) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.videoRepo.Update(ctx, id, sets)
	if err != nil {
		// 更新失败，回收本次上传的新封面
		if newThumbnail != "" {
			s.removeObject(ctx, newThumbnail)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if oldThumbnail != "" {
		s.removeObject(ctx, oldThumbnail)
	}
	if s.indexer != nil {
		s.indexer.SyncVideo(ctx, updated.ID)
	}

	return toVideoInfo(updated, s.ownerBrief(ctx, updated.Owner)), nil
}

// Delete 属主删除视频：媒体对象与评论、点赞级联清理为 best-effort
func (s *VideoService) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVideoNotFound
		}
		return err
	}
	if err := requireOwner(video.Owner, requester); err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVideoNotFound
		}
		return err
	}

	s.cleanupVideo(ctx, video)
	return nil
}

// TogglePublish 属主切换发布状态
func (s *VideoService) TogglePublish(ctx context.Context, id, requester primitive.ObjectID) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if err := requireOwner(video.Owner, requester); err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(ctx, id, bson.M{"isPublished": !video.IsPublished})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if s.indexer != nil {
		if updated.IsPublished {
			s.indexer.SyncVideo(ctx, updated.ID)
		} else {
			s.indexer.RemoveVideo(ctx, updated.ID)
		}
	}

	return toVideoInfo(updated, s.ownerBrief(ctx, updated.Owner)), nil
}

// cleanupVideo 删除视频后的级联清理，失败只记日志
func (s *VideoService) cleanupVideo(ctx context.Context, video *model.Video) {
	for _, objectName := range []string{video.VideoFile.ObjectName, video.Thumbnail.ObjectName} {
		s.removeObject(ctx, objectName)
	}

	commentIDs, err := s.commentRepo.IDsByVideo(ctx, video.ID)
	if err != nil {
		logger.Warn("Load comment ids for cleanup failed", zap.String("video_id", video.ID.Hex()), zap.Error(err))
	} else if err := s.likeRepo.DeleteForComments(ctx, commentIDs); err != nil {
		logger.Warn("Cascade comment likes failed", zap.String("video_id", video.ID.Hex()), zap.Error(err))
	}
	if err := s.commentRepo.DeleteByVideo(ctx, video.ID); err != nil {
		logger.Warn("Cascade comments failed", zap.String("video_id", video.ID.Hex()), zap.Error(err))
	}
	if err := s.likeRepo.DeleteForTarget(ctx, model.LikeTargetVideo, video.ID); err != nil {
		logger.Warn("Cascade video likes failed", zap.String("video_id", video.ID.Hex()), zap.Error(err))
	}
	if s.indexer != nil {
		s.indexer.RemoveVideo(ctx, video.ID)
	}
}

// removeObject 回收媒体对象，失败只记日志
func (s *VideoService) removeObject(ctx context.Context, objectName string) {
	if err := s.media.Remove(ctx, objectName); err != nil {
		logger.Warn("Remove media object failed", zap.String("object_name", objectName), zap.Error(err))
	}
}

// ownerBrief 加载属主展示信息，查不到时返回 nil 不报错
func (s *VideoService) ownerBrief(ctx context.Context, owner primitive.ObjectID) *dto.OwnerBrief {
	user, err := s.userRepo.GetByID(ctx, owner)
	if err != nil {
		return nil
	}
	return &dto.OwnerBrief{
		ID:       user.ID.Hex(),
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}

func toOwnerBrief(o *model.OwnerInfo) *dto.OwnerBrief {
	if o == nil {
		return nil
	}
	return &dto.OwnerBrief{
		ID:       o.ID.Hex(),
		Username: o.Username,
		FullName: o.FullName,
		Avatar:   o.Avatar,
	}
}

func toVideoInfo(v *model.Video, owner *dto.OwnerBrief) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:          v.ID.Hex(),
		OwnerID:     v.Owner.Hex(),
		Owner:       owner,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   dto.MediaAssetInfo{URL: v.VideoFile.URL, ObjectName: v.VideoFile.ObjectName},
		Thumbnail:   dto.MediaAssetInfo{URL: v.Thumbnail.URL, ObjectName: v.Thumbnail.ObjectName},
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toVideoInfos(items []model.VideoWithOwner) []dto.VideoInfo {
	infos := make([]dto.VideoInfo, 0, len(items))
	for i := range items {
		infos = append(infos, *toVideoInfo(&items[i].Video, toOwnerBrief(items[i].OwnerInfo)))
	}
	return infos
}
