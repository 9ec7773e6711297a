package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/haien/ccs/internal/logic"
	"gorm.io/gorm"
)

// LeaderboardHandler 排行榜处理器
type LeaderboardHandler struct {
	leaderboardLogic *logic.LeaderboardLogic
}

// NewLeaderboardHandler 创建排行榜处理器
func NewLeaderboardHandler(db *gorm.DB) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardLogic: logic.NewLeaderboardLogic(db),
	}
}

// GetVolunteerLeaderboard 获取志愿者排行榜
func (h *LeaderboardHandler) GetVolunteerLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	includeUnvalidated := c.DefaultQuery("include_unvalidated", "false") == "true"

	entries := h.leaderboardLogic.GetVolunteerLeaderboard(limit, includeUnvalidated)
	SuccessResponse(c, http.StatusOK, "获取成功", entries)
}

// GetDonorLeaderboard 获取捐赠者排行榜
func (h *LeaderboardHandler) GetDonorLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries := h.leaderboardLogic.GetDonorLeaderboard(limit)
	SuccessResponse(c, http.StatusOK, "获取成功", entries)
}
