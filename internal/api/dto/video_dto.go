package dto

import "time"

// OwnerBrief 资源属主的展示信息
type OwnerBrief struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Avatar   *string `json:"avatar"`
}

// MediaAssetInfo 媒体资源引用
type MediaAssetInfo struct {
	URL        string `json:"url"`
	ObjectName string `json:"objectName"`
}

// VideoPublishRequest 视频发布请求（multipart/form-data）
type VideoPublishRequest struct {
	Title       string  `form:"title" binding:"required,min=1,max=200"`
	Description string  `form:"description" binding:"omitempty,max=2000"`
	Duration    float64 `form:"duration" binding:"omitempty,min=0"`
}

// VideoUpdateRequest 视频更新请求，只更新出现的字段
type VideoUpdateRequest struct {
	Title       *string `form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"ownerId"`
	Owner       *OwnerBrief    `json:"owner,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoFile   MediaAssetInfo `json:"videoFile"`
	Thumbnail   MediaAssetInfo `json:"thumbnail"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// VideoListData 视频分页数据
type VideoListData struct {
	Items      []VideoInfo `json:"items"`
	Page       int64       `json:"page"`
	Limit      int64       `json:"limit"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int64       `json:"totalPages"`
}
