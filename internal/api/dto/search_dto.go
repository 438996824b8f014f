package dto

// SearchVideosRequest 视频搜索请求
type SearchVideosRequest struct {
	Q     string `form:"q"`
	Page  int64  `form:"page"`
	Limit int64  `form:"limit"`
}
