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

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle POST /api/v1/subscriptions/:channelId
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := parseObjectID(c, "channelId")
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	status, err := h.subscriptionService.Toggle(c.Request.Context(), userID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "切换订阅成功", status)
}

// ListSubscribers GET /api/v1/subscriptions/:channelId/subscribers
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	channelID, err := parseObjectID(c, "channelId")
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.subscriptionService.ListSubscribers(c.Request.Context(), channelID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅者列表成功", data)
}

// ListMyChannels GET /api/v1/subscriptions/me/channels
func (h *SubscriptionHandler) ListMyChannels(c *gin.Context) {
	page, limit := parsePagination(c)
	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.subscriptionService.ListChannels(c.Request.Context(), userID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅频道列表成功", data)
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChannelNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSelfSubscription):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
