package model

import (
	"github.com/shopspring/decimal"
)

// SelfReportedHoursStats 自报工时分桶统计
// unvalidated 桶吸收 rejected/expired/unvalidated 三种状态
type SelfReportedHoursStats struct {
	Validated   float64 `json:"validated"`
	Pending     float64 `json:"pending"`
	Unvalidated float64 `json:"unvalidated"`
	Total       float64 `json:"total"`
}

// UserContributionStats 用户贡献统计
type UserContributionStats struct {
	UserId               string                 `json:"user_id"`
	TotalDonated         decimal.Decimal        `json:"total_donated"`
	DonationCount        int64                  `json:"donation_count"`
	FormalVolunteerHours float64                `json:"formal_volunteer_hours"`
	SelfReportedHours    SelfReportedHoursStats `json:"self_reported_hours"`
	// 只有组织验证过的自报工时计入总工时
	TotalVolunteerHours float64 `json:"total_volunteer_hours"`
	SkillsEndorsed      int64   `json:"skills_endorsed"`
	OrganizationsHelped int64   `json:"organizations_helped"`
}

// GlobalContributionStats 平台贡献统计
type GlobalContributionStats struct {
	TotalDonated         decimal.Decimal        `json:"total_donated"`
	DonationCount        int64                  `json:"donation_count"`
	FormalVolunteerHours float64                `json:"formal_volunteer_hours"`
	SelfReportedHours    SelfReportedHoursStats `json:"self_reported_hours"`
	TotalVolunteerHours  float64                `json:"total_volunteer_hours"`
	SkillsEndorsed       int64                  `json:"skills_endorsed"`
	OrganizationsHelped  int64                  `json:"organizations_helped"`
	TotalDonors          int64                  `json:"total_donors"`
	TotalVolunteers      int64                  `json:"total_volunteers"`
}
