package model

import (
	"time"
)

// VolunteerHoursModel 正式志愿工时记录
// 由机构侧审批流程维护状态，本服务按原样读取
type VolunteerHoursModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VolunteerId   string            `json:"volunteer_id" gorm:"not null;index"`
	CharityId     int64             `json:"charity_id" gorm:"not null;index"`
	Hours         float64           `json:"hours" gorm:"not null"`
	DatePerformed time.Time         `json:"date_performed" gorm:"not null"`
	Status        FormalHoursStatus `json:"status" gorm:"default:'pending'"`

	// 关联
	Charity *OrganizationModel `json:"charity,omitempty" gorm:"foreignKey:CharityId"`
}

// FormalHoursStatus 正式工时状态
type FormalHoursStatus string

const (
	FormalHoursStatusPending  FormalHoursStatus = "pending"  // 待审批
	FormalHoursStatusApproved FormalHoursStatus = "approved" // 已通过
	FormalHoursStatusRejected FormalHoursStatus = "rejected" // 已拒绝
)

// TableName 自定义表名
func (VolunteerHoursModel) TableName() string {
	return "volunteer_hours"
}
