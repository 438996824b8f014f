package handler

import (
	"clipflow/internal/api/dto"
	"clipflow/internal/api/response"
	"clipflow/internal/service"
	"clipflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos GET /api/v1/search/videos
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	if req.Q == "" {
		response.BadRequest(c, "搜索关键词不能为空")
		return
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), req.Q, req.Page, req.Limit)
	if err != nil {
		logger.Error("Search videos failed", zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索视频成功", data)
}
