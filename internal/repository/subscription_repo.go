package repository

import (
	"context"
	"errors"
	"time"

	"clipflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(model.Subscription{}.Collection())}
}

// Remove 删除订阅关系，返回是否真的删掉了
func (r *SubscriptionRepository) Remove(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	err := r.coll.FindOneAndDelete(ctx, bson.M{
		"subscriber": subscriber,
		"channel":    channel,
	}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add 创建订阅关系。并发切换下的重复插入由唯一索引拒绝
func (r *SubscriptionRepository) Add(ctx context.Context, subscriber, channel primitive.ObjectID) error {
	_, err := r.coll.InsertOne(ctx, &model.Subscription{
		ID:         primitive.NewObjectID(),
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  time.Now().UTC(),
	})
	return err
}

// Exists 判断订阅关系是否存在
func (r *SubscriptionRepository) Exists(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"subscriber": subscriber, "channel": channel})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountSubscribers 统计频道的订阅者总数
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"channel": channel})
}

// CountSubscriptions 统计用户订阅的频道总数
func (r *SubscriptionRepository) CountSubscriptions(ctx context.Context, subscriber primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"subscriber": subscriber})
}

// ListSubscribers 频道订阅者列表（含用户展示信息）
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channel primitive.ObjectID, page, limit int64) ([]model.SubscriberEntry, int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "channel", Value: channel}}),
		sortStage("", -1),
		ownerLookupStage("subscriber", "subscriberInfo"),
		unwindStage("subscriberInfo", false),
	}

	entries := make([]model.SubscriberEntry, 0)
	total, err := paginate(ctx, r.coll, pipe, page, limit, &entries)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListChannels 用户已订阅频道列表
func (r *SubscriptionRepository) ListChannels(ctx context.Context, subscriber primitive.ObjectID, page, limit int64) ([]model.ChannelEntry, int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "subscriber", Value: subscriber}}),
		sortStage("", -1),
		ownerLookupStage("channel", "channelInfo"),
		unwindStage("channelInfo", false),
	}

	entries := make([]model.ChannelEntry, 0)
	total, err := paginate(ctx, r.coll, pipe, page, limit, &entries)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
