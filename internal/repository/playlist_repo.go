package repository

import (
	"context"
	"time"

	"clipflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlaylistRepository struct {
	coll *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{coll: db.Collection(model.Playlist{}.Collection())}
}

// Insert 创建播放列表。同属主重名由唯一索引拒绝，错误原样返回
func (r *PlaylistRepository) Insert(ctx context.Context, playlist *model.Playlist) error {
	now := time.Now().UTC()
	playlist.ID = primitive.NewObjectID()
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, playlist)
	return err
}

// GetByID 根据 ID 获取播放列表
func (r *PlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update 更新播放列表字段，返回更新后的文档
func (r *PlaylistRepository) Update(ctx context.Context, id primitive.ObjectID, sets bson.M) (*model.Playlist, error) {
	sets["updatedAt"] = time.Now().UTC()

	var playlist model.Playlist
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": sets},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&playlist)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Delete 删除播放列表
func (r *PlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByOwner 用户播放列表：附带视频总数和首个视频封面作为预览图，
// 空列表时预览图为 null
func (r *PlaylistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, page, limit int64) ([]model.PlaylistSummary, int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "owner", Value: owner}}),
		sortStage("", -1),
		lookupStage("videos", "videos", "videoItems", bson.D{{Key: "thumbnail", Value: 1}}),
		addFieldsStage(bson.D{
			{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: "$videos"}}},
			{Key: "previewThumbnail", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$first", Value: "$videoItems.thumbnail.url"}},
				nil,
			}}}},
		}),
		projectStage(bson.D{{Key: "videoItems", Value: 0}}),
	}

	playlists := make([]model.PlaylistSummary, 0)
	total, err := paginate(ctx, r.coll, pipe, page, limit, &playlists)
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

// GetDetail 播放列表详情：展开已发布视频及其属主
func (r *PlaylistRepository) GetDetail(ctx context.Context, id primitive.ObjectID) (*model.PlaylistDetail, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "_id", Value: id}}),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "videos"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "videoItems"},
			{Key: "pipeline", Value: mongo.Pipeline{
				matchStage(bson.D{{Key: "isPublished", Value: true}}),
				ownerLookupStage("owner", "ownerInfo"),
				unwindStage("ownerInfo", true),
			}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}

	var details []model.PlaylistDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &details[0], nil
}

// AddVideo 把视频加入列表。$addToSet 保证引用不重复
func (r *PlaylistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"videos": videoID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

// RemoveVideo 把视频移出列表
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

// Contains 判断视频是否已在列表中
func (r *PlaylistRepository) Contains(ctx context.Context, id, videoID primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id, "videos": videoID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
