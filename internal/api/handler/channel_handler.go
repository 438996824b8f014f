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

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// GetProfile GET /api/v1/channels/:username
func (h *ChannelHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "无效的用户名")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	profile, err := h.channelService.GetProfile(c.Request.Context(), username, userID)
	if err != nil {
		handleChannelError(c, err)
		return
	}

	response.OK(c, "获取频道信息成功", profile)
}

// GetMyStats GET /api/v1/channels/me/stats
func (h *ChannelHandler) GetMyStats(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.channelService.GetStats(c.Request.Context(), userID)
	if err != nil {
		handleChannelError(c, err)
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

func handleChannelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Channel operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
