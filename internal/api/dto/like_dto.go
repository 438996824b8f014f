package dto

import "time"

// LikeStatus 点赞切换结果：切换后的状态 + 目标的实时点赞总数
type LikeStatus struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

// LikedVideoInfo 已点赞视频
type LikedVideoInfo struct {
	LikedAt time.Time `json:"likedAt"`
	Video   VideoInfo `json:"video"`
}

// LikedVideoListData 已点赞视频分页数据
type LikedVideoListData struct {
	Items      []LikedVideoInfo `json:"items"`
	Page       int64            `json:"page"`
	Limit      int64            `json:"limit"`
	TotalItems int64            `json:"totalItems"`
	TotalPages int64            `json:"totalPages"`
}
