package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet 动态模型
type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TweetWithOwner 列表聚合结果
type TweetWithOwner struct {
	Tweet      `bson:",inline"`
	OwnerInfo  *OwnerInfo `bson:"ownerInfo"`
	LikesCount int64      `bson:"likesCount"`
}

func (Tweet) Collection() string {
	return "tweets"
}
