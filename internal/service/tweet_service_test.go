package service

import (
	"context"
	"testing"

	"clipflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTweetCreateTrimsContent(t *testing.T) {
	svc := NewTweetService(newFakeTweetStore(), newFakeLikeStore())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), "  \n ")
	assert.ErrorIs(t, err, ErrTweetContentEmpty)

	info, err := svc.Create(context.Background(), primitive.NewObjectID(), " 第一条动态 ")
	require.NoError(t, err)
	assert.Equal(t, "第一条动态", info.Content)
}

func TestTweetOwnerGuard(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	tweet := &model.Tweet{ID: primitive.NewObjectID(), Owner: owner, Content: "动态"}

	svc := NewTweetService(newFakeTweetStore(tweet), newFakeLikeStore())

	_, err := svc.Update(context.Background(), tweet.ID, stranger, "改动")
	assert.ErrorIs(t, err, ErrNoPermission)

	assert.ErrorIs(t, svc.Delete(context.Background(), tweet.ID, stranger), ErrNoPermission)
	assert.NoError(t, svc.Delete(context.Background(), tweet.ID, owner))
}

func TestTweetDeleteCascadesLikes(t *testing.T) {
	owner := primitive.NewObjectID()
	tweet := &model.Tweet{ID: primitive.NewObjectID(), Owner: owner, Content: "动态"}

	likes := newFakeLikeStore()
	require.NoError(t, likes.Add(context.Background(), model.LikeTargetTweet, tweet.ID, primitive.NewObjectID()))

	svc := NewTweetService(newFakeTweetStore(tweet), likes)
	require.NoError(t, svc.Delete(context.Background(), tweet.ID, owner))

	count, err := likes.CountForTarget(context.Background(), model.LikeTargetTweet, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
