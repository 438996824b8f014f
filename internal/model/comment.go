package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 评论模型
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CommentWithOwner 列表聚合结果：评论 + 属主信息 + 点赞数
type CommentWithOwner struct {
	Comment    `bson:",inline"`
	OwnerInfo  *OwnerInfo `bson:"ownerInfo"`
	LikesCount int64      `bson:"likesCount"`
}

func (Comment) Collection() string {
	return "comments"
}
