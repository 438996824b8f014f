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

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(model.Comment{}.Collection())}
}

// Insert 创建评论
func (r *CommentRepository) Insert(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, comment)
	return err
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 更新评论内容，返回更新后的文档
func (r *CommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete 删除评论
func (r *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByVideo 级联删除视频下的全部评论
func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"video": videoID})
	return err
}

// IDsByVideo 返回视频下全部评论 ID，级联清理点赞用
func (r *CommentRepository) IDsByVideo(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"video": videoID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// ListByVideo 视频评论列表：关联属主并统计点赞数
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]model.CommentWithOwner, int64, error) {
	pipe := mongo.Pipeline{
		matchStage(bson.D{{Key: "video", Value: videoID}}),
		sortStage("", -1),
		ownerLookupStage("owner", "ownerInfo"),
		unwindStage("ownerInfo", true),
	}
	pipe = append(pipe, likesCountStages("comment")...)

	comments := make([]model.CommentWithOwner, 0)
	total, err := paginate(ctx, r.coll, pipe, page, limit, &comments)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
