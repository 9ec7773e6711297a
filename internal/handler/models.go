package handler

import (
	"time"

	"github.com/haien/ccs/internal/logic"
	"github.com/haien/ccs/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 自报工时相关请求模型

// SelfReportedHoursRequest 创建/更新自报工时请求
type SelfReportedHoursRequest struct {
	VolunteerId      string             `json:"volunteer_id" binding:"required"`
	ActivityDate     time.Time          `json:"activity_date" binding:"required"`
	Hours            float64            `json:"hours" binding:"required"`
	ActivityType     model.ActivityType `json:"activity_type" binding:"required"`
	Description      string             `json:"description" binding:"required"`
	OrganizationId   *int64             `json:"organization_id"`
	OrganizationName string             `json:"organization_name"`
}

// ToInput 转换为logic层输入
func (r *SelfReportedHoursRequest) ToInput() *logic.SelfReportedHoursInput {
	return &logic.SelfReportedHoursInput{
		ActivityDate:     r.ActivityDate,
		Hours:            r.Hours,
		ActivityType:     r.ActivityType,
		Description:      r.Description,
		OrganizationId:   r.OrganizationId,
		OrganizationName: r.OrganizationName,
	}
}

// RequestValidationRequest 发起验证请求
type RequestValidationRequest struct {
	VolunteerId string `json:"volunteer_id" binding:"required"`
}

// RespondValidationRequest 组织侧处理验证请求
type RespondValidationRequest struct {
	OrganizationId  int64  `json:"organization_id" binding:"required"`
	Approved        *bool  `json:"approved" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
	RejectionNotes  string `json:"rejection_notes"`
}

// CancelValidationRequest 取消验证请求
type CancelValidationRequest struct {
	VolunteerId string `json:"volunteer_id" binding:"required"`
}

// 自报工时相关响应模型

// SelfReportedHoursResponse 自报工时响应模型
type SelfReportedHoursResponse struct {
	ID                   int64                  `json:"id"`
	VolunteerId          string                 `json:"volunteerId"`
	ActivityDate         time.Time              `json:"activityDate"`
	Hours                float64                `json:"hours"`
	ActivityType         model.ActivityType     `json:"activityType"`
	Description          string                 `json:"description"`
	OrganizationId       *int64                 `json:"organizationId,omitempty"`
	OrganizationName     string                 `json:"organizationName,omitempty"`
	ValidationStatus     model.ValidationStatus `json:"validationStatus"`
	ValidationRequestId  *int64                 `json:"validationRequestId,omitempty"`
	RejectionReason      string                 `json:"rejectionReason,omitempty"`
	RejectionNotes       string                 `json:"rejectionNotes,omitempty"`
	DaysUntilExpiration  *int                   `json:"daysUntilExpiration,omitempty"` // 窗口已关闭时为空
	CanRequestValidation bool                   `json:"canRequestValidation"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

// ToSelfReportedHoursResponse 将数据库模型转换为响应模型
func ToSelfReportedHoursResponse(record *model.SelfReportedHoursModel) SelfReportedHoursResponse {
	now := time.Now()
	resp := SelfReportedHoursResponse{
		ID:                   record.Id,
		VolunteerId:          record.VolunteerId,
		ActivityDate:         record.ActivityDate,
		Hours:                record.Hours,
		ActivityType:         record.ActivityType,
		Description:          record.Description,
		OrganizationId:       record.OrganizationId,
		OrganizationName:     record.OrganizationName,
		ValidationStatus:     record.ValidationStatus,
		ValidationRequestId:  record.ValidationRequestId,
		RejectionReason:      record.RejectionReason,
		RejectionNotes:       record.RejectionNotes,
		CanRequestValidation: logic.CanRequestValidation(record, now),
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
	if days, ok := logic.DaysUntilExpiration(record.ActivityDate, now); ok {
		resp.DaysUntilExpiration = &days
	}
	return resp
}

// ToSelfReportedHoursResponseList 将数据库模型列表转换为响应模型列表
func ToSelfReportedHoursResponseList(records []model.SelfReportedHoursModel) []SelfReportedHoursResponse {
	result := make([]SelfReportedHoursResponse, len(records))
	for i, record := range records {
		result[i] = ToSelfReportedHoursResponse(&record)
	}
	return result
}

// ValidationRequestResponse 验证请求响应模型
type ValidationRequestResponse struct {
	ID                  int64               `json:"id"`
	SelfReportedHoursId int64               `json:"selfReportedHoursId"`
	OrganizationId      int64               `json:"organizationId"`
	VolunteerId         string              `json:"volunteerId"`
	Status              model.RequestStatus `json:"status"`
	ExpiresAt           time.Time           `json:"expiresAt"`
	IsResubmission      bool                `json:"isResubmission"`
	OriginalRequestId   *int64              `json:"originalRequestId,omitempty"`
	RejectionReason     string              `json:"rejectionReason,omitempty"`
	RespondedAt         *time.Time          `json:"respondedAt,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
}

// ToValidationRequestResponse 将数据库模型转换为响应模型
func ToValidationRequestResponse(request *model.ValidationRequestModel) ValidationRequestResponse {
	return ValidationRequestResponse{
		ID:                  request.Id,
		SelfReportedHoursId: request.SelfReportedHoursId,
		OrganizationId:      request.OrganizationId,
		VolunteerId:         request.VolunteerId,
		Status:              request.Status,
		ExpiresAt:           request.ExpiresAt,
		IsResubmission:      request.IsResubmission,
		OriginalRequestId:   request.OriginalRequestId,
		RejectionReason:     request.RejectionReason,
		RespondedAt:         request.RespondedAt,
		CreatedAt:           request.CreatedAt,
	}
}
