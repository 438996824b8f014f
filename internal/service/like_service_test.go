package service

import (
	"context"
	"testing"

	"clipflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLikeServiceForTest(videos ...*model.Video) (*LikeService, *fakeLikeStore) {
	likes := newFakeLikeStore()
	svc := NewLikeService(likes, newFakeVideoFinder(videos...), newFakeCommentStore(), newFakeTweetFinder())
	return svc, likes
}

func TestToggleVideoLike(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), IsPublished: true}
	svc, _ := newLikeServiceForTest(video)
	user := primitive.NewObjectID()

	status, err := svc.ToggleVideoLike(context.Background(), video.ID, user)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.TotalLikes)

	// 再切一次回到未点赞，计数回落
	status, err = svc.ToggleVideoLike(context.Background(), video.ID, user)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(0), status.TotalLikes)
}

func TestToggleVideoLikeIndependentUsers(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), IsPublished: true}
	svc, _ := newLikeServiceForTest(video)
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	statusA, err := svc.ToggleVideoLike(context.Background(), video.ID, userA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), statusA.TotalLikes)

	statusB, err := svc.ToggleVideoLike(context.Background(), video.ID, userB)
	require.NoError(t, err)
	assert.True(t, statusB.Liked)
	assert.Equal(t, int64(2), statusB.TotalLikes)

	// A 取消不影响 B
	statusA, err = svc.ToggleVideoLike(context.Background(), video.ID, userA)
	require.NoError(t, err)
	assert.False(t, statusA.Liked)
	assert.Equal(t, int64(1), statusA.TotalLikes)
}

func TestToggleVideoLikeConcurrentDuplicate(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), IsPublished: true}
	svc, likes := newLikeServiceForTest(video)
	user := primitive.NewObjectID()

	// 模拟并发切换：插入时撞上唯一索引，应按已点赞处理而不是报错
	likes.addErr = duplicateKeyErr()

	status, err := svc.ToggleVideoLike(context.Background(), video.ID, user)
	require.NoError(t, err)
	assert.True(t, status.Liked)
}

func TestToggleVideoLikeMissingVideo(t *testing.T) {
	svc, likes := newLikeServiceForTest()

	_, err := svc.ToggleVideoLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrVideoNotFound)
	assert.Empty(t, likes.likes)
}

func TestToggleCommentLikeMissingComment(t *testing.T) {
	svc, _ := newLikeServiceForTest()

	_, err := svc.ToggleCommentLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestToggleTweetLike(t *testing.T) {
	tweet := &model.Tweet{ID: primitive.NewObjectID(), Content: "hello"}
	likes := newFakeLikeStore()
	svc := NewLikeService(likes, newFakeVideoFinder(), newFakeCommentStore(), newFakeTweetFinder(tweet))
	user := primitive.NewObjectID()

	status, err := svc.ToggleTweetLike(context.Background(), tweet.ID, user)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.TotalLikes)

	_, err = svc.ToggleTweetLike(context.Background(), primitive.NewObjectID(), user)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}
