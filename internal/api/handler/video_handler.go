package handler

import (
	"errors"
	"mime/multipart"
	"strconv"

	"clipflow/internal/api/dto"
	"clipflow/internal/api/middleware"
	"clipflow/internal/api/response"
	"clipflow/internal/repository"
	"clipflow/internal/service"
	"clipflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List GET /api/v1/videos
func (h *VideoHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	opts := repository.VideoListOptions{
		Query:     c.Query("query"),
		SortBy:    c.Query("sortBy"),
		Ascending: c.Query("sortType") == "asc",
		Page:      page,
		Limit:     limit,
	}

	if userID := c.Query("userId"); userID != "" {
		owner, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			response.BadRequest(c, "无效的用户ID")
			return
		}
		opts.Owner = &owner
	}

	data, err := h.videoService.List(c.Request.Context(), opts)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// Publish POST /api/v1/videos
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoFile, videoReader, err := openFormFile(c, "videoFile")
	if err != nil {
		response.BadRequest(c, "缺少视频文件")
		return
	}
	defer videoReader.Close()

	thumbnail, thumbReader, err := openFormFile(c, "thumbnail")
	if err != nil {
		response.BadRequest(c, "缺少封面文件")
		return
	}
	defer thumbReader.Close()

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Publish(c.Request.Context(), userID, &req, videoFile, thumbnail)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "发布视频成功", info)
}

// GetByID GET /api/v1/videos/:id
func (h *VideoHandler) GetByID(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.GetByID(c.Request.Context(), videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频成功", info)
}

// Update PATCH /api/v1/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	// 封面文件可选
	var thumbnail *service.FileUpload
	if fh, err := c.FormFile("thumbnail"); err == nil {
		upload, reader, err := buildFileUpload(fh)
		if err != nil {
			response.BadRequest(c, "封面文件无法读取")
			return
		}
		defer reader.Close()
		thumbnail = upload
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(c.Request.Context(), videoID, userID, &req, thumbnail)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "更新视频成功", info)
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(c.Request.Context(), videoID, userID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "删除视频成功", nil)
}

// TogglePublish PATCH /api/v1/videos/:id/toggle-publish
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.TogglePublish(c.Request.Context(), videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "切换发布状态成功", info)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrVideoTitleEmpty),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// openFormFile 读取必填的 multipart 文件字段
func openFormFile(c *gin.Context, field string) (*service.FileUpload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	return buildFileUpload(fh)
}

func buildFileUpload(fh *multipart.FileHeader) (*service.FileUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.FileUpload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	}, f, nil
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param(param))
}

func parsePagination(c *gin.Context) (int64, int64) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
