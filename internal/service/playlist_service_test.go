package service

import (
	"context"
	"testing"

	"clipflow/internal/api/dto"
	"clipflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaylistCreateDuplicateName(t *testing.T) {
	svc := NewPlaylistService(newFakePlaylistStore(), newFakeVideoFinder())
	owner := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), owner, &dto.PlaylistCreateRequest{Name: "收藏"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner, &dto.PlaylistCreateRequest{Name: "收藏"})
	assert.ErrorIs(t, err, ErrPlaylistNameTaken)

	// 不同属主可以用同一个名字
	_, err = svc.Create(context.Background(), primitive.NewObjectID(), &dto.PlaylistCreateRequest{Name: "收藏"})
	assert.NoError(t, err)
}

func TestPlaylistAddVideo(t *testing.T) {
	owner := primitive.NewObjectID()
	video := &model.Video{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID(), IsPublished: true}
	playlist := &model.Playlist{ID: primitive.NewObjectID(), Owner: owner, Name: "稍后再看"}

	svc := NewPlaylistService(newFakePlaylistStore(playlist), newFakeVideoFinder(video))

	require.NoError(t, svc.AddVideo(context.Background(), playlist.ID, video.ID, owner))

	// 重复加入按冲突处理
	err := svc.AddVideo(context.Background(), playlist.ID, video.ID, owner)
	assert.ErrorIs(t, err, ErrVideoAlreadyInPlaylist)
}

func TestPlaylistAddUnpublishedVideo(t *testing.T) {
	owner := primitive.NewObjectID()
	video := &model.Video{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID(), IsPublished: false}
	playlist := &model.Playlist{ID: primitive.NewObjectID(), Owner: owner, Name: "稍后再看"}

	svc := NewPlaylistService(newFakePlaylistStore(playlist), newFakeVideoFinder(video))

	// 别人的未发布视频等同于不存在
	err := svc.AddVideo(context.Background(), playlist.ID, video.ID, owner)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestPlaylistRemoveAbsentVideo(t *testing.T) {
	owner := primitive.NewObjectID()
	playlist := &model.Playlist{ID: primitive.NewObjectID(), Owner: owner, Name: "稍后再看"}

	svc := NewPlaylistService(newFakePlaylistStore(playlist), newFakeVideoFinder())

	err := svc.RemoveVideo(context.Background(), playlist.ID, primitive.NewObjectID(), owner)
	assert.ErrorIs(t, err, ErrVideoNotInPlaylist)
}

func TestPlaylistOwnerGuard(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	playlist := &model.Playlist{ID: primitive.NewObjectID(), Owner: owner, Name: "私藏"}

	svc := NewPlaylistService(newFakePlaylistStore(playlist), newFakeVideoFinder())

	err := svc.Delete(context.Background(), playlist.ID, stranger)
	assert.ErrorIs(t, err, ErrNoPermission)

	newName := "改名"
	_, err = svc.Update(context.Background(), playlist.ID, stranger, &dto.PlaylistUpdateRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrNoPermission)
}

func TestPlaylistUpdateNoFields(t *testing.T) {
	owner := primitive.NewObjectID()
	playlist := &model.Playlist{ID: primitive.NewObjectID(), Owner: owner, Name: "收藏"}

	svc := NewPlaylistService(newFakePlaylistStore(playlist), newFakeVideoFinder())

	_, err := svc.Update(context.Background(), playlist.ID, owner, &dto.PlaylistUpdateRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}
