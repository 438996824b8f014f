package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription 订阅关系模型，(subscriber, channel) 唯一
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SubscriberEntry 频道订阅者聚合结果
type SubscriberEntry struct {
	ID         primitive.ObjectID `bson:"_id"`
	CreatedAt  time.Time          `bson:"createdAt"`
	Subscriber *OwnerInfo         `bson:"subscriberInfo"`
}

// ChannelEntry 用户已订阅频道聚合结果
type ChannelEntry struct {
	ID        primitive.ObjectID `bson:"_id"`
	CreatedAt time.Time          `bson:"createdAt"`
	Channel   *OwnerInfo         `bson:"channelInfo"`
}

func (Subscription) Collection() string {
	return "subscriptions"
}
