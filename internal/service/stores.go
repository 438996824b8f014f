package service

import (
	"context"
	"io"

	"clipflow/internal/media"
	"clipflow/internal/model"
	"clipflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 服务层依赖的存储接口，由 repository 的具体类型实现。
// 接口定义在消费方，属性测试用假实现替换。

type VideoStore interface {
	Insert(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	Update(ctx context.Context, id primitive.ObjectID, sets bson.M) (*model.Video, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, opts repository.VideoListOptions) ([]model.VideoWithOwner, int64, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.VideoWithOwner, error)
	CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
	TotalViewsByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

// VideoFinder 只需要按 ID 取视频的服务用这个窄接口
type VideoFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
}

type CommentStore interface {
	Insert(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error
	IDsByVideo(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]model.CommentWithOwner, int64, error)
}

type CommentFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
}

type LikeStore interface {
	Remove(ctx context.Context, target model.LikeTarget, targetID, likedBy primitive.ObjectID) (bool, error)
	Add(ctx context.Context, target model.LikeTarget, targetID, likedBy primitive.ObjectID) error
	CountForTarget(ctx context.Context, target model.LikeTarget, targetID primitive.ObjectID) (int64, error)
	DeleteForTarget(ctx context.Context, target model.LikeTarget, targetID primitive.ObjectID) error
	DeleteForComments(ctx context.Context, commentIDs []primitive.ObjectID) error
	ListLikedVideos(ctx context.Context, likedBy primitive.ObjectID, page, limit int64) ([]model.LikedVideo, int64, error)
	CountForVideosOwnedBy(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type PlaylistStore interface {
	Insert(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error)
	Update(ctx context.Context, id primitive.ObjectID, sets bson.M) (*model.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByOwner(ctx context.Context, owner primitive.ObjectID, page, limit int64) ([]model.PlaylistSummary, int64, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*model.PlaylistDetail, error)
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID) error
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) error
	Contains(ctx context.Context, id, videoID primitive.ObjectID) (bool, error)
}

type TweetStore interface {
	Insert(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByOwner(ctx context.Context, owner primitive.ObjectID, page, limit int64) ([]model.TweetWithOwner, int64, error)
}

type TweetFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
}

type SubscriptionStore interface {
	Remove(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	Add(ctx context.Context, subscriber, channel primitive.ObjectID) error
	Exists(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	CountSubscribers(ctx context.Context, channel primitive.ObjectID) (int64, error)
	CountSubscriptions(ctx context.Context, subscriber primitive.ObjectID) (int64, error)
	ListSubscribers(ctx context.Context, channel primitive.ObjectID, page, limit int64) ([]model.SubscriberEntry, int64, error)
	ListChannels(ctx context.Context, subscriber primitive.ObjectID, page, limit int64) ([]model.ChannelEntry, int64, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// MediaUploader 媒体对象的上传与删除
type MediaUploader interface {
	Upload(ctx context.Context, kind, filename string, reader io.Reader, size int64, contentType string) (*media.Asset, error)
	Remove(ctx context.Context, objectName string) error
}

// SearchIndexer 搜索索引的旁路同步，失败只记日志不阻塞主流程
type SearchIndexer interface {
	SyncVideo(ctx context.Context, videoID primitive.ObjectID)
	RemoveVideo(ctx context.Context, videoID primitive.ObjectID)
}

// ViewRecorder 观看事件上报
type ViewRecorder interface {
	Record(ctx context.Context, videoID, viewerID primitive.ObjectID)
}
