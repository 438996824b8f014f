package handler

import (
	"errors"

	"clipflow/internal/api/middleware"
	"clipflow/internal/api/response"
	"clipflow/internal/service"
	"clipflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo POST /api/v1/likes/toggle/video/:id
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	status, err := h.likeService.ToggleVideoLike(c.Request.Context(), videoID, userID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "切换视频点赞成功", status)
}

// ToggleComment POST /api/v1/likes/toggle/comment/:id
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	commentID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	status, err := h.likeService.ToggleCommentLike(c.Request.Context(), commentID, userID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "切换评论点赞成功", status)
}

// ToggleTweet POST /api/v1/likes/toggle/tweet/:id
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	tweetID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	status, err := h.likeService.ToggleTweetLike(c.Request.Context(), tweetID, userID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "切换动态点赞成功", status)
}

// LikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	page, limit := parsePagination(c)
	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.GetLikedVideos(c.Request.Context(), userID, page, limit)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "获取点赞视频成功", data)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
