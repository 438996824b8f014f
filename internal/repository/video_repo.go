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

type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(model.Video{}.Collection())}
}

// VideoListOptions 视频列表查询条件
type VideoListOptions struct {
	Owner         *primitive.ObjectID
	PublishedOnly bool
	Query         string
	SortBy        string
	Ascending     bool
	Page          int64
	Limit         int64
}

// Insert 创建视频记录
func (r *VideoRepository) Insert(ctx context.Context, video *model.Video) error {
	now := time.Now().UTC()
	video.ID = primitive.NewObjectID()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, video)
	return err
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	var video model.Video
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Update 更新视频字段，返回更新后的文档
func (r *VideoRepository) Update(ctx context.Context, id primitive.ObjectID, sets bson.M) (*model.Video, error) {
	sets["updatedAt"] = time.Now().UTC()

	var video model.Video
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": sets},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&video)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Delete 删除视频记录
func (r *VideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List 视频列表查询：过滤 → 排序 → 关联属主 → 分页
func (r *VideoRepository) List(ctx context.Context, opts VideoListOptions) ([]model.VideoWithOwner, int64, error) {
	filter := bson.D{}
	if opts.PublishedOnly {
		filter = append(filter, bson.E{Key: "isPublished", Value: true})
	}
	if opts.Owner != nil {
		filter = append(filter, bson.E{Key: "owner", Value: *opts.Owner})
	}
	if opts.Query != "" {
		filter = append(filter, searchFilter(opts.Query, "title", "description")...)
	}

	direction := -1
	if opts.Ascending {
		direction = 1
	}

	pipe := mongo.Pipeline{
		matchStage(filter),
		sortStage(opts.SortBy, direction),
		ownerLookupStage("owner", "ownerInfo"),
		unwindStage("ownerInfo", true),
	}

	videos := make([]model.VideoWithOwner, 0)
	total, err := paginate(ctx, r.coll, pipe, opts.Page, opts.Limit, &videos)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// GetByIDs 批量获取已发布视频（含属主），搜索回填用
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.VideoWithOwner, error) {
	if len(ids) == 0 {
		return []model.VideoWithOwner{}, nil
	}

	pipe := mongo.Pipeline{
		matchStage(bson.D{
			{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
			{Key: "isPublished", Value: true},
		}),
		ownerLookupStage("owner", "ownerInfo"),
		unwindStage("ownerInfo", true),
	}

	cursor, err := r.coll.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}

	videos := make([]model.VideoWithOwner, 0, len(ids))
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// IncrementViews 观看数累加
func (r *VideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": delta}},
	)
	return err
}

// CountByOwner 统计用户的视频总数
func (r *VideoRepository) CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"owner": owner})
}

// TotalViewsByOwner 统计用户所有视频的观看总数
func (r *VideoRepository) TotalViewsByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "owner", Value: owner}}),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipe)
	if err != nil {
		return 0, err
	}
	var results []struct {
		TotalViews int64 `bson:"totalViews"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalViews, nil
}
