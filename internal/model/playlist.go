package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist 播放列表模型。videos 为有序且去重的视频引用数组
type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PlaylistSummary 列表聚合结果：附带视频总数和首个视频封面
type PlaylistSummary struct {
	Playlist         `bson:",inline"`
	TotalVideos      int64   `bson:"totalVideos"`
	PreviewThumbnail *string `bson:"previewThumbnail"`
}

// PlaylistDetail 详情聚合结果：展开已发布视频及其属主
type PlaylistDetail struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	VideoItems  []VideoWithOwner   `bson:"videoItems"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (Playlist) Collection() string {
	return "playlists"
}
