package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnifiedContribution 统一贡献记录（三类原始记录归一化后的展示模型，不落库）
type UnifiedContribution struct {
	Id               int64              `json:"id"`
	Type             ContributionType   `json:"type"`
	Date             time.Time          `json:"date"`
	UserId           string             `json:"user_id"`
	OrganizationName string             `json:"organization_name"`
	Amount           *decimal.Decimal   `json:"amount,omitempty"`
	Hours            *float64           `json:"hours,omitempty"`
	Status           ContributionStatus `json:"status"`
}

// ContributionType 贡献类型
type ContributionType string

const (
	ContributionTypeDonation        ContributionType = "donation"         // 捐赠
	ContributionTypeFormalVolunteer ContributionType = "formal_volunteer" // 正式志愿工时
	ContributionTypeSelfReported    ContributionType = "self_reported"    // 自报志愿工时
)

// ContributionStatus 贡献状态（区别于自报工时的验证状态）
type ContributionStatus string

const (
	ContributionStatusCompleted   ContributionStatus = "completed"   // 已完成
	ContributionStatusPending     ContributionStatus = "pending"     // 处理中
	ContributionStatusValidated   ContributionStatus = "validated"   // 已验证
	ContributionStatusUnvalidated ContributionStatus = "unvalidated" // 未验证
)
