package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/haien/ccs/internal/logic"
	"gorm.io/gorm"
)

// SelfReportedHandler 自报工时处理器
type SelfReportedHandler struct {
	selfReportedLogic *logic.SelfReportedLogic
	validationLogic   *logic.ValidationLogic
}

// NewSelfReportedHandler 创建自报工时处理器
func NewSelfReportedHandler(db *gorm.DB) *SelfReportedHandler {
	return &SelfReportedHandler{
		selfReportedLogic: logic.NewSelfReportedLogic(db),
		validationLogic:   logic.NewValidationLogic(db),
	}
}

// CreateSelfReportedHours 创建自报工时记录
func (h *SelfReportedHandler) CreateSelfReportedHours(c *gin.Context) {
	var req SelfReportedHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	record, err := h.selfReportedLogic.Create(req.VolunteerId, req.ToInput())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "创建成功", ToSelfReportedHoursResponse(record))
}

// UpdateSelfReportedHours 更新自报工时记录
func (h *SelfReportedHandler) UpdateSelfReportedHours(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req SelfReportedHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	record, err := h.selfReportedLogic.Update(id, req.VolunteerId, req.ToInput())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "更新成功", ToSelfReportedHoursResponse(record))
}

// DeleteSelfReportedHours 删除自报工时记录
func (h *SelfReportedHandler) DeleteSelfReportedHours(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	volunteerId := c.Query("volunteer_id")
	if volunteerId == "" {
		ErrorResponse(c, http.StatusBadRequest, "志愿者标识不能为空")
		return
	}

	if err := h.selfReportedLogic.Delete(id, volunteerId); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "删除成功", nil)
}

// GetVolunteerSelfReportedHours 获取志愿者的自报工时记录列表
func (h *SelfReportedHandler) GetVolunteerSelfReportedHours(c *gin.Context) {
	volunteerId := c.Param("id")
	if volunteerId == "" {
		ErrorResponse(c, http.StatusBadRequest, "志愿者标识不能为空")
		return
	}

	records, err := h.selfReportedLogic.GetByVolunteer(volunteerId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", ToSelfReportedHoursResponseList(records))
}

// RequestValidation 对自报工时记录发起验证请求
func (h *SelfReportedHandler) RequestValidation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req RequestValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	request, err := h.validationLogic.RequestValidation(id, req.VolunteerId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "验证请求已提交", ToValidationRequestResponse(request))
}

// RespondToValidation 组织侧处理验证请求
func (h *SelfReportedHandler) RespondToValidation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req RespondValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	request, err := h.validationLogic.RespondToValidation(
		id, req.OrganizationId, *req.Approved, req.RejectionReason, req.RejectionNotes)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "处理成功", ToValidationRequestResponse(request))
}

// CancelValidation 取消验证请求
func (h *SelfReportedHandler) CancelValidation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req CancelValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	if err := h.validationLogic.CancelValidation(id, req.VolunteerId); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "验证请求已取消", nil)
}

// GetPendingValidationRequests 获取组织待处理的验证请求
func (h *SelfReportedHandler) GetPendingValidationRequests(c *gin.Context) {
	orgId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的组织ID")
		return
	}

	requests, err := h.validationLogic.GetPendingRequests(orgId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]ValidationRequestResponse, len(requests))
	for i, request := range requests {
		result[i] = ToValidationRequestResponse(&request)
	}
	SuccessResponse(c, http.StatusOK, "获取成功", result)
}

// parseIDParam 解析路径中的记录ID，失败时直接写入错误响应
func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的记录ID")
		return 0, err
	}
	return id, nil
}
