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

type TweetRepository struct {
	coll *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{coll: db.Collection(model.Tweet{}.Collection())}
}

// Insert 创建动态
func (r *TweetRepository) Insert(ctx context.Context, tweet *model.Tweet) error {
	now := time.Now().UTC()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, tweet)
	return err
}

// GetByID 根据 ID 获取动态
func (r *TweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

// UpdateContent 更新动态内容，返回更新后的文档
func (r *TweetRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tweet)
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Delete 删除动态
func (r *TweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByOwner 用户动态列表：关联属主并统计点赞数
func (r *TweetRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, page, limit int64) ([]model.TweetWithOwner, int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "owner", Value: owner}}),
		sortStage("", -1),
		ownerLookupStage("owner", "ownerInfo"),
		unwindStage("ownerInfo", true),
	}
	pipe = append(pipe, likesCountStages("tweet")...)

	tweets := make([]model.TweetWithOwner, 0)
	total, err := paginate(ctx, r.coll, pipe, page, limit, &tweets)
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}
