package logic

import (
	"fmt"

	"github.com/haien/ccs/internal/model"
	"github.com/haien/ccs/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsLogic 贡献统计业务逻辑
type StatsLogic struct {
	repo *repository.RecordRepository
}

// NewStatsLogic 创建贡献统计业务逻辑
func NewStatsLogic(db *gorm.DB) *StatsLogic {
	return &StatsLogic{repo: repository.NewRecordRepository(db)}
}

// GetUserContributionStats 获取用户贡献统计
func (s *StatsLogic) GetUserContributionStats(userId string) *model.UserContributionStats {
	snapshot := s.repo.FetchSnapshot(userId)
	return ComputeUserStats(userId, snapshot)
}

// GetGlobalContributionStats 获取平台贡献统计
func (s *StatsLogic) GetGlobalContributionStats() *model.GlobalContributionStats {
	snapshot := s.repo.FetchSnapshot("")
	return ComputeGlobalStats(snapshot)
}

// ComputeUserStats 在快照上计算用户贡献统计
func ComputeUserStats(userId string, snapshot *repository.ContributionSnapshot) *model.UserContributionStats {
	stats := &model.UserContributionStats{
		UserId:       userId,
		TotalDonated: decimal.Zero,
	}

	for _, donation := range snapshot.Donations {
		if donation.DonorId != userId {
			continue
		}
		stats.TotalDonated = stats.TotalDonated.Add(donation.Amount)
		stats.DonationCount++
	}

	organizations := make(map[string]struct{})

	// 正式工时不区分机构侧审批状态，全部计入（审批门槛由机构侧流程负责）
	for _, record := range snapshot.FormalHours {
		if record.VolunteerId != userId {
			continue
		}
		stats.FormalVolunteerHours += record.Hours
		organizations[fmt.Sprintf("org:%d", record.CharityId)] = struct{}{}
	}

	for _, record := range snapshot.SelfReported {
		if record.VolunteerId != userId {
			continue
		}
		addSelfReportedHours(&stats.SelfReportedHours, &record)
		if key, ok := selfReportedOrgKey(&record); ok {
			organizations[key] = struct{}{}
		}
	}

	for _, endorsement := range snapshot.Endorsements {
		if endorsement.UserId == userId {
			stats.SkillsEndorsed++
		}
	}

	// 只有组织验证过的自报工时计入总工时
	stats.TotalVolunteerHours = stats.FormalVolunteerHours + stats.SelfReportedHours.Validated
	stats.OrganizationsHelped = int64(len(organizations))

	return stats
}

// ComputeGlobalStats 在快照上计算平台贡献统计
func ComputeGlobalStats(snapshot *repository.ContributionSnapshot) *model.GlobalContributionStats {
	stats := &model.GlobalContributionStats{
		TotalDonated: decimal.Zero,
	}

	donors := make(map[string]struct{})
	volunteers := make(map[string]struct{})
	organizations := make(map[string]struct{})

	for _, donation := range snapshot.Donations {
		stats.TotalDonated = stats.TotalDonated.Add(donation.Amount)
		stats.DonationCount++
		donors[donation.DonorId] = struct{}{}
	}

	for _, record := range snapshot.FormalHours {
		stats.FormalVolunteerHours += record.Hours
		volunteers[record.VolunteerId] = struct{}{}
		organizations[fmt.Sprintf("org:%d", record.CharityId)] = struct{}{}
	}

	for _, record := range snapshot.SelfReported {
		addSelfReportedHours(&stats.SelfReportedHours, &record)
		volunteers[record.VolunteerId] = struct{}{}
		if key, ok := selfReportedOrgKey(&record); ok {
			organizations[key] = struct{}{}
		}
	}

	stats.SkillsEndorsed = int64(len(snapshot.Endorsements))
	stats.TotalVolunteerHours = stats.FormalVolunteerHours + stats.SelfReportedHours.Validated
	stats.OrganizationsHelped = int64(len(organizations))
	stats.TotalDonors = int64(len(donors))
	stats.TotalVolunteers = int64(len(volunteers))

	return stats
}

// addSelfReportedHours 把自报工时累加到对应分桶
// unvalidated 桶吸收 rejected/expired/unvalidated 三种状态
func addSelfReportedHours(buckets *model.SelfReportedHoursStats, record *model.SelfReportedHoursModel) {
	switch record.ValidationStatus {
	case model.ValidationStatusValidated:
		buckets.Validated += record.Hours
	case model.ValidationStatusPending:
		buckets.Pending += record.Hours
	default:
		buckets.Unvalidated += record.Hours
	}
	buckets.Total += record.Hours
}

// selfReportedOrgKey 自报工时的组织标识
// 认证组织ID和自由填写名称分属不同命名空间，即使指向同一真实组织也不合并
func selfReportedOrgKey(record *model.SelfReportedHoursModel) (string, bool) {
	if record.OrganizationId != nil {
		return fmt.Sprintf("org:%d", *record.OrganizationId), true
	}
	if record.OrganizationName != "" {
		return "name:" + record.OrganizationName, true
	}
	return "", false
}
