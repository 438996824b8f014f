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
	ErrTweetNotFound     = errors.New("动态不存在")
	ErrTweetContentEmpty = errors.New("动态内容不能为空")
)

type TweetService struct {
	tweetRepo TweetStore
	likeRepo  LikeStore
}

func NewTweetService(tweetRepo TweetStore, likeRepo LikeStore) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, likeRepo: likeRepo}
}

// Create 发布动态，内容去掉首尾空白后不能为空
func (s *TweetService) Create(ctx context.Context, owner primitive.ObjectID, content string) (*dto.TweetInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrTweetContentEmpty
	}

	tweet := &model.Tweet{Owner: owner, Content: content}
	if err := s.tweetRepo.Insert(ctx, tweet); err != nil {
		return nil, err
	}
	return toTweetInfo(tweet, nil, 0), nil
}

// Update 属主更新动态内容
func (s *TweetService) Update(ctx context.Context, id, requester primitive.ObjectID, content string) (*dto.TweetInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrTweetContentEmpty
	}

	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if err := requireOwner(tweet.Owner, requester); err != nil {
		return nil, err
	}

	updated, err := s.tweetRepo.UpdateContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return toTweetInfo(updated, nil, 0), nil
}

// Delete 属主删除动态，动态的点赞级联清理
func (s *TweetService) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTweetNotFound
		}
		return err
	}
	if err := requireOwner(tweet.Owner, requester); err != nil {
		return err
	}

	if err := s.tweetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTweetNotFound
		}
		return err
	}

	if err := s.likeRepo.DeleteForTarget(ctx, model.LikeTargetTweet, id); err != nil {
		logger.Warn("Cascade tweet likes failed", zap.String("tweet_id", id.Hex()), zap.Error(err))
	}
	return nil
}

// ListByOwner 用户的动态列表，带属主信息和实时点赞数
func (s *TweetService) ListByOwner(ctx context.Context, owner primitive.ObjectID, page, limit int64) (*dto.TweetListData, error) {
	page, limit = repository.NormalizePagination(page, limit)

	items, total, err := s.tweetRepo.ListByOwner(ctx, owner, page, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.TweetInfo, 0, len(items))
	for i := range items {
		infos = append(infos, *toTweetInfo(&items[i].Tweet, toOwnerBrief(items[i].OwnerInfo), items[i].LikesCount))
	}

	return &dto.TweetListData{
		Items:      infos,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func toTweetInfo(t *model.Tweet, owner *dto.OwnerBrief, likesCount int64) *dto.TweetInfo {
	return &dto.TweetInfo{
		ID:         t.ID.Hex(),
		OwnerID:    t.Owner.Hex(),
		Owner:      owner,
		Content:    t.Content,
		LikesCount: likesCount,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
