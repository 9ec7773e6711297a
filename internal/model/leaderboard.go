package model

import (
	"github.com/shopspring/decimal"
)

// VolunteerLeaderboardEntry 志愿者排行榜条目
type VolunteerLeaderboardEntry struct {
	UserId            string  `json:"user_id"`
	Rank              int     `json:"rank"`
	TotalHours        float64 `json:"total_hours"`
	FormalHours       float64 `json:"formal_hours"`
	SelfReportedHours float64 `json:"self_reported_hours"`
}

// DonorLeaderboardEntry 捐赠者排行榜条目
type DonorLeaderboardEntry struct {
	UserId                 string          `json:"user_id"`
	Rank                   int             `json:"rank"`
	TotalDonated           decimal.Decimal `json:"total_donated"`
	DonationCount          int64           `json:"donation_count"`
	OrganizationsSupported int64           `json:"organizations_supported"`
}
