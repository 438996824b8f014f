package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaAsset 媒体资源引用：公开访问 URL + 存储端对象名
type MediaAsset struct {
	URL        string `bson:"url" json:"url"`
	ObjectName string `bson:"objectName" json:"objectName"`
}

// Video 视频模型
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	VideoFile   MediaAsset         `bson:"videoFile" json:"videoFile"`
	Thumbnail   MediaAsset         `bson:"thumbnail" json:"thumbnail"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VideoWithOwner 列表聚合结果：视频 + 展平后的属主信息
type VideoWithOwner struct {
	Video     `bson:",inline"`
	OwnerInfo *OwnerInfo `bson:"ownerInfo"`
}

func (Video) Collection() string {
	return "videos"
}
