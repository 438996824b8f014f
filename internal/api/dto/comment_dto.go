package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentInfo 评论详情
type CommentInfo struct {
	ID         string      `json:"id"`
	VideoID    string      `json:"videoId"`
	OwnerID    string      `json:"ownerId"`
	Owner      *OwnerBrief `json:"owner,omitempty"`
	Content    string      `json:"content"`
	LikesCount int64       `json:"likesCount"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// CommentListData 评论分页数据
type CommentListData struct {
	Items      []CommentInfo `json:"items"`
	Page       int64         `json:"page"`
	Limit      int64         `json:"limit"`
	TotalItems int64         `json:"totalItems"`
	TotalPages int64         `json:"totalPages"`
}
