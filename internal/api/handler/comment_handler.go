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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo GET /api/v1/videos/:id/comments
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(c.Request.Context(), videoID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Create POST /api/v1/videos/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Create(c.Request.Context(), videoID, userID, req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表评论成功", info)
}

// Update PATCH /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Update(c.Request.Context(), commentID, userID, req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "更新评论成功", info)
}

// Delete DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(c.Request.Context(), commentID, userID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "删除评论成功", nil)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCommentContentEmpty):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
