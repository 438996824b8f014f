package service

import (
	"context"
	"errors"

	"clipflow/internal/api/dto"
	"clipflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrChannelNotFound  = errors.New("频道不存在")
	ErrSelfSubscription = errors.New("不能订阅自己的频道")
)

type SubscriptionService struct {
	subRepo  SubscriptionStore
	userRepo UserStore
}

func NewSubscriptionService(subRepo SubscriptionStore, userRepo UserStore) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 订阅切换，和点赞切换同一套路：删不到就插入，
// 唯一索引上的并发重复按已订阅处理
func (s *SubscriptionService) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (*dto.SubscriptionStatus, error) {
	if subscriber == channel {
		return nil, ErrSelfSubscription
	}
	if _, err := s.userRepo.GetByID(ctx, channel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	removed, err := s.subRepo.Remove(ctx, subscriber, channel)
	if err != nil {
		return nil, err
	}

	subscribed := false
	if !removed {
		if err := s.subRepo.Add(ctx, subscriber, channel); err != nil {
			if !mongo.IsDuplicateKeyError(err) {
				return nil, err
			}
		}
		subscribed = true
	}

	total, err := s.subRepo.CountSubscribers(ctx, channel)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionStatus{Subscribed: subscribed, TotalSubscribers: total}, nil
}

// ListSubscribers 频道的订阅者列表
func (s *SubscriptionService) ListSubscribers(ctx context.Context, channel primitive.ObjectID, page, limit int64) (*dto.SubscriberListData, error) {
	if _, err := s.userRepo.GetByID(ctx, channel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	page, limit = repository.NormalizePagination(page, limit)
	items, total, err := s.subRepo.ListSubscribers(ctx, channel, page, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.SubscriberInfo, 0, len(items))
	for i := range items {
		brief := toOwnerBrief(items[i].Subscriber)
		if brief == nil {
			continue
		}
		infos = append(infos, dto.SubscriberInfo{
			SubscribedAt: items[i].CreatedAt,
			User:         *brief,
		})
	}

	return &dto.SubscriberListData{
		Items:      infos,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

// ListChannels 当前用户订阅的频道列表
func (s *SubscriptionService) ListChannels(ctx context.Context, subscriber primitive.ObjectID, page, limit int64) (*dto.SubscribedChannelListData, error) {
	page, limit = repository.NormalizePagination(page, limit)
	items, total, err := s.subRepo.ListChannels(ctx, subscriber, page, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.SubscribedChannelInfo, 0, len(items))
	for i := range items {
		brief := toOwnerBrief(items[i].Channel)
		if brief == nil {
			continue
		}
		infos = append(infos, dto.SubscribedChannelInfo{
			SubscribedAt: items[i].CreatedAt,
			Channel:      *brief,
		})
	}

	return &dto.SubscribedChannelListData{
		Items:      infos,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}
