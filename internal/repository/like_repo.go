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

type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{coll: db.Collection(model.Like{}.Collection())}
}

// Remove 删除 (目标, likedBy) 的点赞记录，返回是否真的删掉了
func (r *LikeRepository) Remove(ctx context.Context, target model.LikeTarget, targetID, likedBy primitive.ObjectID) (bool, error) {
	err := r.coll.FindOneAndDelete(ctx, bson.M{
		target.Field(): targetID,
		"likedBy":      likedBy,
	}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add 插入点赞记录。并发切换下的重复插入由唯一索引拒绝，
// 错误原样返回，由上层识别处理
func (r *LikeRepository) Add(ctx context.Context, target model.LikeTarget, targetID, likedBy primitive.ObjectID) error {
	like := &model.Like{
		ID:        primitive.NewObjectID(),
		LikedBy:   likedBy,
		CreatedAt: time.Now().UTC(),
	}
	switch target {
	case model.LikeTargetVideo:
		like.Video = &targetID
	case model.LikeTargetComment:
		like.Comment = &targetID
	case model.LikeTargetTweet:
		like.Tweet = &targetID
	}

	_, err := r.coll.InsertOne(ctx, like)
	return err
}

// CountForTarget 统计目标的点赞总数。每次调用实时统计，
// 不走缓存计数器，与记录集始终一致
func (r *LikeRepository) CountForTarget(ctx context.Context, target model.LikeTarget, targetID primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{target.Field(): targetID})
}

// DeleteForTarget 级联删除目标的全部点赞
func (r *LikeRepository) DeleteForTarget(ctx context.Context, target model.LikeTarget, targetID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{target.Field(): targetID})
	return err
}

// DeleteForComments 级联删除一批评论的点赞
func (r *LikeRepository) DeleteForComments(ctx context.Context, commentIDs []primitive.ObjectID) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := r.coll.DeleteMany(ctx, bson.M{"comment": bson.M{"$in": commentIDs}})
	return err
}

// ListLikedVideos 用户点赞过的视频列表（仅已发布，含属主）
func (r *LikeRepository) ListLikedVideos(ctx context.Context, likedBy primitive.ObjectID, page, limit int64) ([]model.LikedVideo, int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{
			{Key: "likedBy", Value: likedBy},
			{Key: "video", Value: bson.D{{Key: "$type", Value: "objectId"}}},
		}),
		sortStage("", -1),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "video"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "videoInfo"},
			{Key: "pipeline", Value: mongo.Pipeline{
				matchStage(bson.D{{Key: "isPublished", Value: true}}),
				ownerLookupStage("owner", "ownerInfo"),
				unwindStage("ownerInfo", true),
			}},
		}}},
		unwindStage("videoInfo", false),
	}

	likes := make([]model.LikedVideo, 0)
	total, err := paginate(ctx, r.coll, pipe, page, limit, &likes)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// CountForVideosOwnedBy 统计某用户所有视频收到的点赞总数
func (r *LikeRepository) CountForVideosOwnedBy(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "video", Value: bson.D{{Key: "$type", Value: "objectId"}}}}),
		lookupStage("videos", "video", "videoInfo", bson.D{{Key: "owner", Value: 1}}),
		unwindStage("videoInfo", false),
		matchStage(bson.D{{Key: "videoInfo.owner", Value: owner}}),
		{{Key: "$count", Value: "total"}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipe)
	if err != nil {
		return 0, err
	}
	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
