package service

import (
	"context"
	"testing"

	"clipflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubscriptionToggle(t *testing.T) {
	channel := &model.User{ID: primitive.NewObjectID(), Username: "creator"}
	svc := NewSubscriptionService(newFakeSubscriptionStore(), newFakeUserStore(channel))
	user := primitive.NewObjectID()

	status, err := svc.Toggle(context.Background(), user, channel.ID)
	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.Equal(t, int64(1), status.TotalSubscribers)

	status, err = svc.Toggle(context.Background(), user, channel.ID)
	require.NoError(t, err)
	assert.False(t, status.Subscribed)
	assert.Equal(t, int64(0), status.TotalSubscribers)
}

func TestSubscriptionToggleSelf(t *testing.T) {
	user := &model.User{ID: primitive.NewObjectID(), Username: "me"}
	svc := NewSubscriptionService(newFakeSubscriptionStore(), newFakeUserStore(user))

	_, err := svc.Toggle(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfSubscription)
}

func TestSubscriptionToggleMissingChannel(t *testing.T) {
	svc := NewSubscriptionService(newFakeSubscriptionStore(), newFakeUserStore())

	_, err := svc.Toggle(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestSubscriptionToggleConcurrentDuplicate(t *testing.T) {
	channel := &model.User{ID: primitive.NewObjectID(), Username: "creator"}
	subs := newFakeSubscriptionStore()
	subs.addErr = duplicateKeyErr()
	svc := NewSubscriptionService(subs, newFakeUserStore(channel))

	status, err := svc.Toggle(context.Background(), primitive.NewObjectID(), channel.ID)
	require.NoError(t, err)
	assert.True(t, status.Subscribed)
}
