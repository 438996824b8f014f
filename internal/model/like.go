package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeTarget 点赞目标类型
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Field 返回目标类型在 likes 文档中的字段名
func (t LikeTarget) Field() string {
	return string(t)
}

// Like 点赞模型。video/comment/tweet 三者有且仅有一个非空，
// (目标, likedBy) 由部分唯一索引保证至多一条
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// LikedVideo 已点赞视频聚合结果
type LikedVideo struct {
	ID        primitive.ObjectID `bson:"_id"`
	LikedBy   primitive.ObjectID `bson:"likedBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	Video     *VideoWithOwner    `bson:"videoInfo"`
}

func (Like) Collection() string {
	return "likes"
}
