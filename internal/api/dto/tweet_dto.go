package dto

import "time"

// TweetCreateRequest 发布动态请求
type TweetCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// TweetUpdateRequest 更新动态请求
type TweetUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// TweetInfo 动态详情
type TweetInfo struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"ownerId"`
	Owner      *OwnerBrief `json:"owner,omitempty"`
	Content    string      `json:"content"`
	LikesCount int64       `json:"likesCount"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// TweetListData 动态分页数据
type TweetListData struct {
	Items      []TweetInfo `json:"items"`
	Page       int64       `json:"page"`
	Limit      int64       `json:"limit"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int64       `json:"totalPages"`
}
