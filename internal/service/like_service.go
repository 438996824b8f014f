package service

import (
	"context"
	"errors"

	"clipflow/internal/api/dto"
	"clipflow/internal/model"
	"clipflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LikeService struct {
	likeRepo    LikeStore
	videoRepo   VideoFinder
	commentRepo CommentFinder
	tweetRepo   TweetFinder
}

func NewLikeService(likeRepo LikeStore, videoRepo VideoFinder, commentRepo CommentFinder, tweetRepo TweetFinder) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideoLike 切换视频点赞
func (s *LikeService) ToggleVideoLike(ctx context.Context, videoID, userID primitive.ObjectID) (*dto.LikeStatus, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return s.toggle(ctx, model.LikeTargetVideo, videoID, userID)
}

// ToggleCommentLike 切换评论点赞
func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, userID primitive.ObjectID) (*dto.LikeStatus, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return s.toggle(ctx, model.LikeTargetComment, commentID, userID)
}

// ToggleTweetLike 切换动态点赞
func (s *LikeService) ToggleTweetLike(ctx context.Context, tweetID, userID primitive.ObjectID) (*dto.LikeStatus, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return s.toggle(ctx, model.LikeTargetTweet, tweetID, userID)
}

// toggle 点赞切换：先尝试删除，删不到就插入。唯一索引上的重复键
// 说明并发切换已写入同一点赞，按已点赞处理而不是报错。
// 总数每次实时统计，不做缓存
func (s *LikeService) toggle(ctx context.Context, target model.LikeTarget, targetID, userID primitive.ObjectID) (*dto.LikeStatus, error) {
	removed, err := s.likeRepo.Remove(ctx, target, targetID, userID)
	if err != nil {
		return nil, err
	}

	liked := false
	if !removed {
		if err := s.likeRepo.Add(ctx, target, targetID, userID); err != nil {
			if !mongo.IsDuplicateKeyError(err) {
				return nil, err
			}
		}
		liked = true
	}

	total, err := s.likeRepo.CountForTarget(ctx, target, targetID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStatus{Liked: liked, TotalLikes: total}, nil
}

// GetLikedVideos 当前用户点赞过的视频，只含仍已发布的
func (s *LikeService) GetLikedVideos(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*dto.LikedVideoListData, error) {
	page, limit = repository.NormalizePagination(page, limit)

	items, total, err := s.likeRepo.ListLikedVideos(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.LikedVideoInfo, 0, len(items))
	for i := range items {
		v := items[i].Video
		if v == nil {
			continue
		}
		infos = append(infos, dto.LikedVideoInfo{
			LikedAt: items[i].CreatedAt,
			Video:   *toVideoInfo(&v.Video, toOwnerBrief(v.OwnerInfo)),
		})
	}

	return &dto.LikedVideoListData{
		Items:      infos,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}
