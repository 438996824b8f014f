package service

import (
	"context"
	"errors"
	"strings"

	"clipflow/internal/api/dto"
	"clipflow/internal/model"
	"clipflow/internal/repository"
	"clipflow/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentContentEmpty = errors.New("评论内容不能为空")
)

type CommentService struct {
	commentRepo CommentStore
	videoRepo   VideoFinder
	likeRepo    LikeStore
}

func NewCommentService(commentRepo CommentStore, videoRepo VideoFinder, likeRepo LikeStore) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

// Create 发表评论，内容去掉首尾空白后不能为空
func (s *CommentService) Create(ctx context.Context, videoID, owner primitive.ObjectID, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentEmpty
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		Video:   videoID,
		Owner:   owner,
		Content: content,
	}
	if err := s.commentRepo.Insert(ctx, comment); err != nil {
		return nil, err
	}
	return toCommentInfo(comment, nil, 0), nil
}

// Update 属主更新评论内容，同样要求去空白后非空
func (s *CommentService) Update(ctx context.Context, id, requester primitive.ObjectID, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentEmpty
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if err := requireOwner(comment.Owner, requester); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.UpdateContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return toCommentInfo(updated, nil, 0), nil
}

// Delete 删除评论。评论属主和视频属主都有权删除，其他人一律拒绝。
// 评论自身的点赞级联清理
func (s *CommentService) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCommentNotFound
		}
		return err
	}

	videoOwner := primitive.NilObjectID
	if video, err := s.videoRepo.GetByID(ctx, comment.Video); err == nil {
		videoOwner = video.Owner
	}
	if !canModerateComment(comment.Owner, videoOwner, requester) {
		return ErrNoPermission
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCommentNotFound
		}
		return err
	}

	if err := s.likeRepo.DeleteForTarget(ctx, model.LikeTargetComment, id); err != nil {
		logger.Warn("Cascade comment likes failed", zap.String("comment_id", id.Hex()), zap.Error(err))
	}
	return nil
}

// ListByVideo 视频评论列表，带属主信息和实时点赞数
func (s *CommentService) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	page, limit = repository.NormalizePagination(page, limit)
	items, total, err := s.commentRepo.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.CommentInfo, 0, len(items))
	for i := range items {
		infos = append(infos, *toCommentInfo(&items[i].Comment, toOwnerBrief(items[i].OwnerInfo), items[i].LikesCount))
	}

	return &dto.CommentListData{
		Items:      infos,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func toCommentInfo(c *model.Comment, owner *dto.OwnerBrief, likesCount int64) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:         c.ID.Hex(),
		VideoID:    c.Video.Hex(),
		OwnerID:    c.Owner.Hex(),
		Owner:      owner,
		Content:    c.Content,
		LikesCount: likesCount,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
