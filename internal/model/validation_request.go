package model

import (
	"time"
)

// ValidationRequestModel 自报工时验证请求
type ValidationRequestModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SelfReportedHoursId int64  `json:"self_reported_hours_id" gorm:"not null;index"`
	OrganizationId      int64  `json:"organization_id" gorm:"not null;index"`
	VolunteerId         string `json:"volunteer_id" gorm:"not null;index"`

	Status    RequestStatus `json:"status" gorm:"default:'pending'"`
	ExpiresAt time.Time     `json:"expires_at"` // 验证窗口截止时间

	// 重新提交信息
	IsResubmission    bool   `json:"is_resubmission" gorm:"default:false"`
	OriginalRequestId *int64 `json:"original_request_id"` // 被拒绝后重新提交时指向原请求

	// 处理结果
	RejectionReason string     `json:"rejection_reason"`
	RespondedAt     *time.Time `json:"responded_at"`
}

// RequestStatus 验证请求状态
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"   // 待处理
	RequestStatusApproved  RequestStatus = "approved"  // 已通过
	RequestStatusRejected  RequestStatus = "rejected"  // 已拒绝
	RequestStatusCancelled RequestStatus = "cancelled" // 已取消
	RequestStatusExpired   RequestStatus = "expired"   // 已过期
)

// TableName 自定义表名
func (ValidationRequestModel) TableName() string {
	return "validation_request"
}
