package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/haien/ccs/internal/logic"
	"github.com/haien/ccs/internal/model"
	"gorm.io/gorm"
)

// ContributionHandler 统一贡献处理器
type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
	donationLogic     *logic.DonationLogic
}

// NewContributionHandler 创建统一贡献处理器
func NewContributionHandler(db *gorm.DB) *ContributionHandler {
	return &ContributionHandler{
		contributionLogic: logic.NewContributionLogic(db),
		donationLogic:     logic.NewDonationLogic(db),
	}
}

// GetUnifiedContributions 获取归一化的贡献时间线
// 支持 user_id 过滤和 sources 过滤（逗号分隔的类型列表）
func (h *ContributionHandler) GetUnifiedContributions(c *gin.Context) {
	filter := logic.ContributionFilter{
		UserId: c.Query("user_id"),
	}

	if sources := c.Query("sources"); sources != "" {
		for _, source := range strings.Split(sources, ",") {
			switch model.ContributionType(strings.TrimSpace(source)) {
			case model.ContributionTypeDonation:
				filter.Sources = append(filter.Sources, model.ContributionTypeDonation)
			case model.ContributionTypeFormalVolunteer:
				filter.Sources = append(filter.Sources, model.ContributionTypeFormalVolunteer)
			case model.ContributionTypeSelfReported:
				filter.Sources = append(filter.Sources, model.ContributionTypeSelfReported)
			default:
				ErrorResponse(c, http.StatusBadRequest, "无效的贡献类型: "+source)
				return
			}
		}
	}

	contributions := h.contributionLogic.GetUnifiedContributions(filter)
	SuccessResponse(c, http.StatusOK, "获取成功", contributions)
}

// GetUserDonations 获取用户捐赠记录
func (h *ContributionHandler) GetUserDonations(c *gin.Context) {
	donorId := c.Param("id")
	if donorId == "" {
		ErrorResponse(c, http.StatusBadRequest, "用户标识不能为空")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	donations, total, err := h.donationLogic.GetUserDonations(donorId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": donations,
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}
