package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"clipflow/internal/media"
	"clipflow/internal/model"
	"clipflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 测试用内存假实现，行为对齐 repository 层的语义。

// duplicateKeyErr 模拟唯一索引冲突，mongo.IsDuplicateKeyError 识别 11000
func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

type likeKey struct {
	target   model.LikeTarget
	targetID primitive.ObjectID
	likedBy  primitive.ObjectID
}

type fakeLikeStore struct {
	likes  map[likeKey]bool
	addErr error // 注入 Add 错误模拟并发冲突
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[likeKey]bool)}
}

func (f *fakeLikeStore) Remove(_ context.Context, target model.LikeTarget, targetID, likedBy primitive.ObjectID) (bool, error) {
	k := likeKey{target, targetID, likedBy}
	if f.likes[k] {
		delete(f.likes, k)
		return true, nil
	}
	return false, nil
}

func (f *fakeLikeStore) Add(_ context.Context, target model.LikeTarget, targetID, likedBy primitive.ObjectID) error {
	if f.addErr != nil {
		return f.addErr
	}
	k := likeKey{target, targetID, likedBy}
	if f.likes[k] {
		return duplicateKeyErr()
	}
	f.likes[k] = true
	return nil
}

func (f *fakeLikeStore) CountForTarget(_ context.Context, target model.LikeTarget, targetID primitive.ObjectID) (int64, error) {
	var n int64
	for k := range f.likes {
		if k.target == target && k.targetID == targetID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeStore) DeleteForTarget(_ context.Context, target model.LikeTarget, targetID primitive.ObjectID) error {
	for k := range f.likes {
		if k.target == target && k.targetID == targetID {
			delete(f.likes, k)
		}
	}
	return nil
}

func (f *fakeLikeStore) DeleteForComments(_ context.Context, commentIDs []primitive.ObjectID) error {
	for _, id := range commentIDs {
		_ = f.DeleteForTarget(context.Background(), model.LikeTargetComment, id)
	}
	return nil
}

func (f *fakeLikeStore) ListLikedVideos(_ context.Context, _ primitive.ObjectID, _, _ int64) ([]model.LikedVideo, int64, error) {
	return nil, 0, nil
}

func (f *fakeLikeStore) CountForVideosOwnedBy(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

type fakeVideoFinder struct {
	videos map[primitive.ObjectID]*model.Video
}

func newFakeVideoFinder(videos ...*model.Video) *fakeVideoFinder {
	f := &fakeVideoFinder{videos: make(map[primitive.ObjectID]*model.Video)}
	for _, v := range videos {
		f.videos[v.ID] = v
	}
	return f
}

func (f *fakeVideoFinder) GetByID(_ context.Context, id primitive.ObjectID) (*model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return v, nil
}

type fakeVideoStore struct {
	fakeVideoFinder
	insertErr error // 注入 Insert 错误模拟入库失败
	updateErr error
}

func newFakeVideoStore(videos ...*model.Video) *fakeVideoStore {
	return &fakeVideoStore{fakeVideoFinder: *newFakeVideoFinder(videos...)}
}

func (f *fakeVideoStore) Insert(_ context.Context, video *model.Video) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	video.ID = primitive.NewObjectID()
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoStore) Update(_ context.Context, id primitive.ObjectID, sets bson.M) (*model.Video, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	v, ok := f.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if title, ok := sets["title"].(string); ok {
		v.Title = title
	}
	if desc, ok := sets["description"].(string); ok {
		v.Description = desc
	}
	if thumb, ok := sets["thumbnail"].(model.MediaAsset); ok {
		v.Thumbnail = thumb
	}
	if published, ok := sets["isPublished"].(bool); ok {
		v.IsPublished = published
	}
	return v, nil
}

func (f *fakeVideoStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.videos[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoStore) List(_ context.Context, _ repository.VideoListOptions) ([]model.VideoWithOwner, int64, error) {
	return nil, 0, nil
}

func (f *fakeVideoStore) GetByIDs(_ context.Context, _ []primitive.ObjectID) ([]model.VideoWithOwner, error) {
	return nil, nil
}

func (f *fakeVideoStore) CountByOwner(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (f *fakeVideoStore) TotalViewsByOwner(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

// fakeMediaUploader 记录上传与删除过的对象名，failKinds 里的类型上传直接失败
type fakeMediaUploader struct {
	seq       int
	uploaded  []string
	removed   []string
	failKinds map[string]bool
}

func newFakeMediaUploader(failKinds ...string) *fakeMediaUploader {
	f := &fakeMediaUploader{failKinds: make(map[string]bool)}
	for _, k := range failKinds {
		f.failKinds[k] = true
	}
	return f
}

func (f *fakeMediaUploader) Upload(_ context.Context, kind, _ string, _ io.Reader, _ int64, _ string) (*media.Asset, error) {
	if f.failKinds[kind] {
		return nil, errors.New("上传失败")
	}
	f.seq++
	name := fmt.Sprintf("%s/object-%d", kind, f.seq)
	f.uploaded = append(f.uploaded, name)
	return &media.Asset{URL: "http://media.local/" + name, ObjectName: name}, nil
}

func (f *fakeMediaUploader) Remove(_ context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return nil
}

type fakeCommentStore struct {
	comments map[primitive.ObjectID]*model.Comment
}

func newFakeCommentStore(comments ...*model.Comment) *fakeCommentStore {
	f := &fakeCommentStore{comments: make(map[primitive.ObjectID]*model.Comment)}
	for _, c := range comments {
		f.comments[c.ID] = c
	}
	return f
}

func (f *fakeCommentStore) Insert(_ context.Context, comment *model.Comment) error {
	comment.ID = primitive.NewObjectID()
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (f *fakeCommentStore) UpdateContent(_ context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c.Content = content
	return c, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.comments[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentStore) DeleteByVideo(_ context.Context, videoID primitive.ObjectID) error {
	for id, c := range f.comments {
		if c.Video == videoID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentStore) IDsByVideo(_ context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, c := range f.comments {
		if c.Video == videoID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeCommentStore) ListByVideo(_ context.Context, _ primitive.ObjectID, _, _ int64) ([]model.CommentWithOwner, int64, error) {
	return nil, 0, nil
}

type fakeTweetFinder struct {
	tweets map[primitive.ObjectID]*model.Tweet
}

func newFakeTweetFinder(tweets ...*model.Tweet) *fakeTweetFinder {
	f := &fakeTweetFinder{tweets: make(map[primitive.ObjectID]*model.Tweet)}
	for _, t := range tweets {
		f.tweets[t.ID] = t
	}
	return f
}

func (f *fakeTweetFinder) GetByID(_ context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return t, nil
}

type fakeTweetStore struct {
	fakeTweetFinder
}

func newFakeTweetStore(tweets ...*model.Tweet) *fakeTweetStore {
	return &fakeTweetStore{fakeTweetFinder: *newFakeTweetFinder(tweets...)}
}

func (f *fakeTweetStore) Insert(_ context.Context, tweet *model.Tweet) error {
	tweet.ID = primitive.NewObjectID()
	f.tweets[tweet.ID] = tweet
	return nil
}

func (f *fakeTweetStore) UpdateContent(_ context.Context, id primitive.ObjectID, content string) (*model.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	t.Content = content
	return t, nil
}

func (f *fakeTweetStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.tweets[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.tweets, id)
	return nil
}

func (f *fakeTweetStore) ListByOwner(_ context.Context, _ primitive.ObjectID, _, _ int64) ([]model.TweetWithOwner, int64, error) {
	return nil, 0, nil
}

type fakePlaylistStore struct {
	playlists map[primitive.ObjectID]*model.Playlist
}

func newFakePlaylistStore(playlists ...*model.Playlist) *fakePlaylistStore {
	f := &fakePlaylistStore{playlists: make(map[primitive.ObjectID]*model.Playlist)}
	for _, p := range playlists {
		f.playlists[p.ID] = p
	}
	return f
}

func (f *fakePlaylistStore) nameTaken(owner primitive.ObjectID, name string, exclude primitive.ObjectID) bool {
	for id, p := range f.playlists {
		if id != exclude && p.Owner == owner && p.Name == name {
			return true
		}
	}
	return false
}

func (f *fakePlaylistStore) Insert(_ context.Context, playlist *model.Playlist) error {
	if f.nameTaken(playlist.Owner, playlist.Name, primitive.NilObjectID) {
		return duplicateKeyErr()
	}
	playlist.ID = primitive.NewObjectID()
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (f *fakePlaylistStore) Update(_ context.Context, id primitive.ObjectID, sets bson.M) (*model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if name, ok := sets["name"].(string); ok {
		if f.nameTaken(p.Owner, name, id) {
			return nil, duplicateKeyErr()
		}
		p.Name = name
	}
	if desc, ok := sets["description"].(string); ok {
		p.Description = desc
	}
	return p, nil
}

func (f *fakePlaylistStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.playlists[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.playlists, id)
	return nil
}

func (f *fakePlaylistStore) ListByOwner(_ context.Context, _ primitive.ObjectID, _, _ int64) ([]model.PlaylistSummary, int64, error) {
	return nil, 0, nil
}

func (f *fakePlaylistStore) GetDetail(_ context.Context, id primitive.ObjectID) (*model.PlaylistDetail, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &model.PlaylistDetail{
		ID:          p.ID,
		Owner:       p.Owner,
		Name:        p.Name,
		Description: p.Description,
	}, nil
}

func (f *fakePlaylistStore) AddVideo(_ context.Context, id, videoID primitive.ObjectID) error {
	p, ok := f.playlists[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, v := range p.Videos {
		if v == videoID {
			return nil
		}
	}
	p.Videos = append(p.Videos, videoID)
	return nil
}

func (f *fakePlaylistStore) RemoveVideo(_ context.Context, id, videoID primitive.ObjectID) error {
	p, ok := f.playlists[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return nil
}

func (f *fakePlaylistStore) Contains(_ context.Context, id, videoID primitive.ObjectID) (bool, error) {
	p, ok := f.playlists[id]
	if !ok {
		return false, nil
	}
	for _, v := range p.Videos {
		if v == videoID {
			return true, nil
		}
	}
	return false, nil
}

type subKey struct {
	subscriber primitive.ObjectID
	channel    primitive.ObjectID
}

type fakeSubscriptionStore struct {
	subs   map[subKey]bool
	addErr error
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[subKey]bool)}
}

func (f *fakeSubscriptionStore) Remove(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	k := subKey{subscriber, channel}
	if f.subs[k] {
		delete(f.subs, k)
		return true, nil
	}
	return false, nil
}

func (f *fakeSubscriptionStore) Add(_ context.Context, subscriber, channel primitive.ObjectID) error {
	if f.addErr != nil {
		return f.addErr
	}
	k := subKey{subscriber, channel}
	if f.subs[k] {
		return duplicateKeyErr()
	}
	f.subs[k] = true
	return nil
}

func (f *fakeSubscriptionStore) Exists(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	return f.subs[subKey{subscriber, channel}], nil
}

func (f *fakeSubscriptionStore) CountSubscribers(_ context.Context, channel primitive.ObjectID) (int64, error) {
	var n int64
	for k := range f.subs {
		if k.channel == channel {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionStore) CountSubscriptions(_ context.Context, subscriber primitive.ObjectID) (int64, error) {
	var n int64
	for k := range f.subs {
		if k.subscriber == subscriber {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionStore) ListSubscribers(_ context.Context, _ primitive.ObjectID, _, _ int64) ([]model.SubscriberEntry, int64, error) {
	return nil, 0, nil
}

func (f *fakeSubscriptionStore) ListChannels(_ context.Context, _ primitive.ObjectID, _, _ int64) ([]model.ChannelEntry, int64, error) {
	return nil, 0, nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[primitive.ObjectID]*model.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}
