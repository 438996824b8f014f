package dto

import "time"

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// PlaylistUpdateRequest 更新播放列表请求，只更新出现的字段
type PlaylistUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// PlaylistInfo 播放列表基础信息
type PlaylistInfo struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Videos      []string  `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistSummaryInfo 播放列表概要：视频总数 + 预览封面（空列表为 null）
type PlaylistSummaryInfo struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	TotalVideos      int64     `json:"totalVideos"`
	PreviewThumbnail *string   `json:"previewThumbnail"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PlaylistDetailInfo 播放列表详情：展开已发布视频
type PlaylistDetailInfo struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Videos      []VideoInfo `json:"videos"`
	TotalVideos int64       `json:"totalVideos"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PlaylistListData 播放列表分页数据
type PlaylistListData struct {
	Items      []PlaylistSummaryInfo `json:"items"`
	Page       int64                 `json:"page"`
	Limit      int64                 `json:"limit"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int64                 `json:"totalPages"`
}
