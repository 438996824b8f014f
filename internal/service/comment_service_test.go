package service

import (
	"context"
	"testing"

	"clipflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCommentCreateRejectsWhitespace(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), IsPublished: true}
	svc := NewCommentService(newFakeCommentStore(), newFakeVideoFinder(video), newFakeLikeStore())

	_, err := svc.Create(context.Background(), video.ID, primitive.NewObjectID(), "   \t\n  ")
	assert.ErrorIs(t, err, ErrCommentContentEmpty)

	info, err := svc.Create(context.Background(), video.ID, primitive.NewObjectID(), "  不错的视频  ")
	require.NoError(t, err)
	assert.Equal(t, "不错的视频", info.Content)
}

func TestCommentUpdateRejectsWhitespace(t *testing.T) {
	owner := primitive.NewObjectID()
	comment := &model.Comment{ID: primitive.NewObjectID(), Owner: owner, Content: "原始内容"}
	svc := NewCommentService(newFakeCommentStore(comment), newFakeVideoFinder(), newFakeLikeStore())

	_, err := svc.Update(context.Background(), comment.ID, owner, "   ")
	assert.ErrorIs(t, err, ErrCommentContentEmpty)
	assert.Equal(t, "原始内容", comment.Content)
}

func TestCommentDeletePermissions(t *testing.T) {
	commentOwner := primitive.NewObjectID()
	videoOwner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	video := &model.Video{ID: primitive.NewObjectID(), Owner: videoOwner, IsPublished: true}

	newComment := func() *model.Comment {
		return &model.Comment{ID: primitive.NewObjectID(), Video: video.ID, Owner: commentOwner, Content: "评论"}
	}

	// 陌生人删除被拒绝
	c := newComment()
	svc := NewCommentService(newFakeCommentStore(c), newFakeVideoFinder(video), newFakeLikeStore())
	assert.ErrorIs(t, svc.Delete(context.Background(), c.ID, stranger), ErrNoPermission)

	// 评论属主可以删除
	c = newComment()
	svc = NewCommentService(newFakeCommentStore(c), newFakeVideoFinder(video), newFakeLikeStore())
	assert.NoError(t, svc.Delete(context.Background(), c.ID, commentOwner))

	// 视频属主也可以删除
	c = newComment()
	svc = NewCommentService(newFakeCommentStore(c), newFakeVideoFinder(video), newFakeLikeStore())
	assert.NoError(t, svc.Delete(context.Background(), c.ID, videoOwner))
}

func TestCommentDeleteCascadesLikes(t *testing.T) {
	owner := primitive.NewObjectID()
	comment := &model.Comment{ID: primitive.NewObjectID(), Video: primitive.NewObjectID(), Owner: owner, Content: "评论"}

	likes := newFakeLikeStore()
	require.NoError(t, likes.Add(context.Background(), model.LikeTargetComment, comment.ID, primitive.NewObjectID()))

	svc := NewCommentService(newFakeCommentStore(comment), newFakeVideoFinder(), likes)
	require.NoError(t, svc.Delete(context.Background(), comment.ID, owner))

	count, err := likes.CountForTarget(context.Background(), model.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
