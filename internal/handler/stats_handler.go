package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haien/ccs/internal/logic"
	"gorm.io/gorm"
)

// StatsHandler 贡献统计处理器
type StatsHandler struct {
	statsLogic *logic.StatsLogic
}

// NewStatsHandler 创建贡献统计处理器
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{
		statsLogic: logic.NewStatsLogic(db),
	}
}

// GetUserContributionStats 获取用户贡献统计
func (h *StatsHandler) GetUserContributionStats(c *gin.Context) {
	userId := c.Param("id")
	if userId == "" {
		ErrorResponse(c, http.StatusBadRequest, "用户标识不能为空")
		return
	}

	stats := h.statsLogic.GetUserContributionStats(userId)
	SuccessResponse(c, http.StatusOK, "获取成功", stats)
}

// GetGlobalContributionStats 获取平台贡献统计
func (h *StatsHandler) GetGlobalContributionStats(c *gin.Context) {
	stats := h.statsLogic.GetGlobalContributionStats()
	SuccessResponse(c, http.StatusOK, "获取成功", stats)
}
