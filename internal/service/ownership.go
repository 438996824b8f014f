package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoPermission 请求者不是资源属主
var ErrNoPermission = errors.New("没有权限执行该操作")

func requireOwner(owner, requester primitive.ObjectID) error {
	if owner != requester {
		return ErrNoPermission
	}
	return nil
}

// canModerateComment 评论删除的双属主规则：评论属主或评论所在视频的属主
func canModerateComment(commentOwner, videoOwner, requester primitive.ObjectID) bool {
	return commentOwner == requester || videoOwner == requester
}
