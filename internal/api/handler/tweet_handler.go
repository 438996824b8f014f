package handler

import (
	"errors"

	"clipflow/internal/api/dto"
	"clipflow/internal/api/middleware"
	"clipflow/internal/api/response"
	"clipflow/internal/service"
	"clipflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Create(c.Request.Context(), userID, req.Content)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.Created(c, "发布动态成功", info)
}

// ListByUser GET /api/v1/tweets/user/:userId
func (h *TweetHandler) ListByUser(c *gin.Context) {
	owner, err := parseObjectID(c, "userId")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.tweetService.ListByOwner(c.Request.Context(), owner, page, limit)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "获取动态列表成功", data)
}

// Update PATCH /api/v1/tweets/:id
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	var req dto.TweetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Update(c.Request.Context(), tweetID, userID, req.Content)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "更新动态成功", info)
}

// Delete DELETE /api/v1/tweets/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.tweetService.Delete(c.Request.Context(), tweetID, userID); err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "删除动态成功", nil)
}

func handleTweetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrTweetContentEmpty):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Tweet operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
