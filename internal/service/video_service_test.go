package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clipflow/internal/api/dto"
	"clipflow/internal/media"
	"clipflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newVideoServiceForTest(videoRepo *fakeVideoStore, uploader *fakeMediaUploader) *VideoService {
	return NewVideoService(videoRepo, newFakeCommentStore(), newFakeLikeStore(), newFakeUserStore(), uploader, nil, nil)
}

func publishInput() (*dto.VideoPublishRequest, *FileUpload, *FileUpload) {
	req := &dto.VideoPublishRequest{Title: "测试视频", Description: "描述", Duration: 12.5}
	videoFile := &FileUpload{Filename: "clip.mp4", Size: 4, ContentType: "video/mp4", Reader: strings.NewReader("data")}
	thumb := &FileUpload{Filename: "cover.png", Size: 4, ContentType: "image/png", Reader: strings.NewReader("data")}
	return req, videoFile, thumb
}

func TestVideoPublish(t *testing.T) {
	uploader := newFakeMediaUploader()
	svc := newVideoServiceForTest(newFakeVideoStore(), uploader)

	req, videoFile, thumb := publishInput()
	info, err := svc.Publish(context.Background(), primitive.NewObjectID(), req, videoFile, thumb)
	require.NoError(t, err)

	assert.True(t, info.IsPublished)
	assert.Equal(t, "测试视频", info.Title)
	assert.NotEmpty(t, info.VideoFile.ObjectName)
	assert.NotEmpty(t, info.Thumbnail.ObjectName)
	assert.Empty(t, uploader.removed)
}

func TestVideoPublishThumbnailFailureRemovesVideoObject(t *testing.T) {
	// 封面上传失败时，已传到存储的视频对象要被回收
	uploader := newFakeMediaUploader(media.KindThumbnail)
	svc := newVideoServiceForTest(newFakeVideoStore(), uploader)

	req, videoFile, thumb := publishInput()
	_, err := svc.Publish(context.Background(), primitive.NewObjectID(), req, videoFile, thumb)
	require.Error(t, err)

	require.Len(t, uploader.uploaded, 1)
	assert.Equal(t, uploader.uploaded, uploader.removed)
}

func TestVideoPublishInsertFailureRemovesUploads(t *testing.T) {
	// 入库失败时，本次上传的视频和封面对象都要被回收
	uploader := newFakeMediaUploader()
	videoRepo := newFakeVideoStore()
	videoRepo.insertErr = errors.New("写入失败")
	svc := newVideoServiceForTest(videoRepo, uploader)

	req, videoFile, thumb := publishInput()
	_, err := svc.Publish(context.Background(), primitive.NewObjectID(), req, videoFile, thumb)
	require.Error(t, err)

	require.Len(t, uploader.uploaded, 2)
	assert.ElementsMatch(t, uploader.uploaded, uploader.removed)
}

func TestVideoGetByIDUnpublishedVisibility(t *testing.T) {
	owner := primitive.NewObjectID()
	video := &model.Video{ID: primitive.NewObjectID(), Owner: owner, Title: "草稿", IsPublished: false}
	svc := newVideoServiceForTest(newFakeVideoStore(video), newFakeMediaUploader())

	// 属主可以看到自己的未发布视频
	info, err := svc.GetByID(context.Background(), video.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, video.ID.Hex(), info.ID)

	// 其他人一律按不存在处理
	_, err = svc.GetByID(context.Background(), video.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoUpdateSwapsThumbnail(t *testing.T) {
	owner := primitive.NewObjectID()
	video := &model.Video{
		ID: primitive.NewObjectID(), Owner: owner, Title: "旧标题",
		Thumbnail: model.MediaAsset{ObjectName: "thumbnails/old"},
	}
	uploader := newFakeMediaUploader()
	svc := newVideoServiceForTest(newFakeVideoStore(video), uploader)

	thumb := &FileUpload{Filename: "new.png", Size: 4, ContentType: "image/png", Reader: strings.NewReader("data")}
	info, err := svc.Update(context.Background(), video.ID, owner, &dto.VideoUpdateRequest{}, thumb)
	require.NoError(t, err)

	// 换封面成功后删除旧对象
	assert.NotEqual(t, "thumbnails/old", info.Thumbnail.ObjectName)
	assert.Equal(t, []string{"thumbnails/old"}, uploader.removed)
}

func TestVideoUpdateFailureRemovesNewThumbnail(t *testing.T) {
	// 更新落库失败时，回收刚上传的新封面，旧封面保持不动
	owner := primitive.NewObjectID()
	video := &model.Video{
		ID: primitive.NewObjectID(), Owner: owner, Title: "旧标题",
		Thumbnail: model.MediaAsset{ObjectName: "thumbnails/old"},
	}
	uploader := newFakeMediaUploader()
	videoRepo := newFakeVideoStore(video)
	videoRepo.updateErr = errors.New("写入失败")
	svc := newVideoServiceForTest(videoRepo, uploader)

	thumb := &FileUpload{Filename: "new.png", Size: 4, ContentType: "image/png", Reader: strings.NewReader("data")}
	_, err := svc.Update(context.Background(), video.ID, owner, &dto.VideoUpdateRequest{}, thumb)
	require.Error(t, err)

	require.Len(t, uploader.uploaded, 1)
	assert.Equal(t, uploader.uploaded, uploader.removed)
	assert.NotContains(t, uploader.removed, "thumbnails/old")
}

func TestVideoUpdateRejectsNonOwner(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID(), Title: "标题"}
	svc := newVideoServiceForTest(newFakeVideoStore(video), newFakeMediaUploader())

	title := "改名"
	_, err := svc.Update(context.Background(), video.ID, primitive.NewObjectID(), &dto.VideoUpdateRequest{Title: &title}, nil)
	assert.ErrorIs(t, err, ErrNoPermission)
}

func TestVideoDeleteRemovesMediaObjects(t *testing.T) {
	owner := primitive.NewObjectID()
	video := &model.Video{
		ID: primitive.NewObjectID(), Owner: owner, Title: "标题", IsPublished: true,
		VideoFile: model.MediaAsset{ObjectName: "videos/v1"},
		Thumbnail: model.MediaAsset{ObjectName: "thumbnails/t1"},
	}
	uploader := newFakeMediaUploader()
	svc := newVideoServiceForTest(newFakeVideoStore(video), uploader)

	require.NoError(t, svc.Delete(context.Background(), video.ID, owner))
	assert.ElementsMatch(t, []string{"videos/v1", "thumbnails/t1"}, uploader.removed)
}
