package handler

import (
	"errors"

	"clipflow/internal/api/dto"
	"clipflow/internal/api/middleware"
	"clipflow/internal/api/response"
	"clipflow/internal/service"
	"clipflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.Created(c, "创建播放列表成功", info)
}

// ListByUser GET /api/v1/playlists/user/:userId
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	owner, err := parseObjectID(c, "userId")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.playlistService.ListByOwner(c.Request.Context(), owner, page, limit)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", data)
}

// GetDetail GET /api/v1/playlists/:id
func (h *PlaylistHandler) GetDetail(c *gin.Context) {
	playlistID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	info, err := h.playlistService.GetDetail(c.Request.Context(), playlistID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表详情成功", info)
}

// Update PATCH /api/v1/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Update(c.Request.Context(), playlistID, userID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "更新播放列表成功", info)
}

// Delete DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.Delete(c.Request.Context(), playlistID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "删除播放列表成功", nil)
}

// AddVideo PATCH /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, videoID, ok := h.parseMemberIDs(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.AddVideo(c.Request.Context(), playlistID, videoID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "添加视频到播放列表成功", nil)
}

// RemoveVideo DELETE /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, videoID, ok := h.parseMemberIDs(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.RemoveVideo(c.Request.Context(), playlistID, videoID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "从播放列表移除视频成功", nil)
}

func (h *PlaylistHandler) parseMemberIDs(c *gin.Context) (playlistID, videoID primitive.ObjectID, ok bool) {
	playlistID, err := parseObjectID(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return playlistID, videoID, false
	}
	videoID, err = parseObjectID(c, "videoId")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return playlistID, videoID, false
	}
	return playlistID, videoID, true
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrPlaylistNameEmpty),
		errors.Is(err, service.ErrPlaylistNameTaken),
		errors.Is(err, service.ErrVideoAlreadyInPlaylist),
		errors.Is(err, service.ErrVideoNotInPlaylist),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
