package model

import (
	"time"
)

// SelfReportedHoursModel 自报志愿工时记录
// 由志愿者自行登记，可向认证组织发起验证
type SelfReportedHoursModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VolunteerId  string       `json:"volunteer_id" gorm:"not null;index"`
	ActivityDate time.Time    `json:"activity_date" gorm:"not null"`
	Hours        float64      `json:"hours" gorm:"not null"`
	ActivityType ActivityType `json:"activity_type" gorm:"not null"`
	Description  string       `json:"description" gorm:"type:text;not null"`

	// 组织信息：认证组织ID与自由填写名称二选一
	OrganizationId   *int64 `json:"organization_id" gorm:"index"`
	OrganizationName string `json:"organization_name"`

	// 验证信息
	ValidationStatus    ValidationStatus `json:"validation_status" gorm:"default:'unvalidated';index"`
	ValidationRequestId *int64           `json:"validation_request_id"` // 当前打开的验证请求
	RejectionReason     string           `json:"rejection_reason"`
	RejectionNotes      string           `json:"rejection_notes"`

	// 关联
	Organization *OrganizationModel `json:"organization,omitempty" gorm:"foreignKey:OrganizationId"`
}

// ValidationStatus 自报工时验证状态
type ValidationStatus string

const (
	ValidationStatusUnvalidated ValidationStatus = "unvalidated" // 未验证
	ValidationStatusPending     ValidationStatus = "pending"     // 验证中
	ValidationStatusValidated   ValidationStatus = "validated"   // 已验证（终态，不可修改）
	ValidationStatusRejected    ValidationStatus = "rejected"    // 已拒绝
	ValidationStatusExpired     ValidationStatus = "expired"     // 已过期（终态）
)

// ActivityType 志愿活动类型
type ActivityType string

const (
	ActivityTypeEducation        ActivityType = "education"         // 教育
	ActivityTypeEnvironment      ActivityType = "environment"       // 环保
	ActivityTypeHealth           ActivityType = "health"            // 医疗健康
	ActivityTypeCommunityService ActivityType = "community_service" // 社区服务
	ActivityTypeAnimalWelfare    ActivityType = "animal_welfare"    // 动物保护
	ActivityTypeDisasterRelief   ActivityType = "disaster_relief"   // 救灾
	ActivityTypeOther            ActivityType = "other"             // 其他
)

// TableName 自定义表名
func (SelfReportedHoursModel) TableName() string {
	return "self_reported_hours"
}
