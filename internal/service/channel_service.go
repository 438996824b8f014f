package service

import (
	"context"
	"errors"

	"clipflow/internal/api/dto"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("用户不存在")

type ChannelService struct {
	userRepo  UserStore
	subRepo   SubscriptionStore
	videoRepo VideoStore
	likeRepo  LikeStore
}

func NewChannelService(userRepo UserStore, subRepo SubscriptionStore, videoRepo VideoStore, likeRepo LikeStore) *ChannelService {
	return &ChannelService{userRepo: userRepo, subRepo: subRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

// GetProfile 按用户名取频道主页：订阅数、被订阅数和请求者是否已订阅
func (s *ChannelService) GetProfile(ctx context.Context, username string, requester primitive.ObjectID) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribers, err := s.subRepo.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountSubscriptions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	isSubscribed, err := s.subRepo.Exists(ctx, requester, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.ChannelProfile{
		ID:                user.ID.Hex(),
		Username:          user.Username,
		FullName:          user.FullName,
		Email:             user.Email,
		Avatar:            user.Avatar,
		CoverImage:        user.CoverImage,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
		CreatedAt:         user.CreatedAt,
	}, nil
}

// GetStats 频道统计面板，全部实时聚合，不做缓存
func (s *ChannelService) GetStats(ctx context.Context, owner primitive.ObjectID) (*dto.ChannelStats, error) {
	totalVideos, err := s.videoRepo.CountByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.videoRepo.TotalViewsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likeRepo.CountForVideosOwnedBy(ctx, owner)
	if err != nil {
		return nil, err
	}
	totalSubscribers, err := s.subRepo.CountSubscribers(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &dto.ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalLikes:       totalLikes,
		TotalSubscribers: totalSubscribers,
	}, nil
}
