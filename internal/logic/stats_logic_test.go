package logic

import (
	"testing"

	"github.com/haien/ccs/internal/model"
	"github.com/haien/ccs/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func userSnapshot() *repository.ContributionSnapshot {
	return &repository.ContributionSnapshot{
		Donations: []model.DonationModel{
			{Id: 1, DonorId: "user-1", CharityId: orgId(1), Amount: decimal.NewFromInt(150), CreatedAt: day(0)},
			{Id: 2, DonorId: "user-1", CharityId: orgId(2), Amount: decimal.NewFromInt(250), CreatedAt: day(1)},
		},
		FormalHours: []model.VolunteerHoursModel{
			{Id: 1, VolunteerId: "user-1", CharityId: 1, Hours: 5, DatePerformed: day(2), Status: model.FormalHoursStatusApproved},
			{Id: 2, VolunteerId: "user-1", CharityId: 1, Hours: 3, DatePerformed: day(3), Status: model.FormalHoursStatusPending},
		},
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 1, VolunteerId: "user-1", Hours: 4, ActivityDate: day(4), ValidationStatus: model.ValidationStatusValidated, OrganizationId: orgId(3)},
			{Id: 2, VolunteerId: "user-1", Hours: 2, ActivityDate: day(5), ValidationStatus: model.ValidationStatusPending, OrganizationId: orgId(3)},
			{Id: 3, VolunteerId: "user-1", Hours: 1, ActivityDate: day(6), ValidationStatus: model.ValidationStatusRejected, OrganizationName: "Local Shelter"},
		},
		Endorsements: []model.SkillEndorsementModel{
			{Id: 1, UserId: "user-1", Skill: "first_aid", EndorsedBy: "org-1"},
			{Id: 2, UserId: "user-1", Skill: "teaching", EndorsedBy: "org-2"},
			{Id: 3, UserId: "user-1", Skill: "logistics", EndorsedBy: "org-1"},
			{Id: 4, UserId: "user-2", Skill: "first_aid", EndorsedBy: "org-1"},
		},
	}
}

func TestComputeUserStats(t *testing.T) {
	stats := ComputeUserStats("user-1", userSnapshot())

	assert.True(t, stats.TotalDonated.Equal(decimal.NewFromInt(400)), "total donated = %s", stats.TotalDonated)
	assert.Equal(t, int64(2), stats.DonationCount)

	// 正式工时不区分审批状态全部计入
	assert.Equal(t, float64(8), stats.FormalVolunteerHours)

	assert.Equal(t, float64(4), stats.SelfReportedHours.Validated)
	assert.Equal(t, float64(2), stats.SelfReportedHours.Pending)
	assert.Equal(t, float64(1), stats.SelfReportedHours.Unvalidated)
	assert.Equal(t, float64(7), stats.SelfReportedHours.Total)

	// 总工时 = 正式工时 + 已验证的自报工时
	assert.Equal(t, float64(12), stats.TotalVolunteerHours)
	assert.Equal(t, int64(3), stats.SkillsEndorsed)

	// org:1（正式工时）、org:3（自报）、name:Local Shelter（自报）
	assert.Equal(t, int64(3), stats.OrganizationsHelped)
}

func TestComputeUserStatsIgnoresOtherUsers(t *testing.T) {
	stats := ComputeUserStats("user-2", userSnapshot())

	assert.True(t, stats.TotalDonated.IsZero())
	assert.Equal(t, int64(0), stats.DonationCount)
	assert.Equal(t, float64(0), stats.TotalVolunteerHours)
	assert.Equal(t, int64(1), stats.SkillsEndorsed)
}

func TestComputeUserStatsUnvalidatedBucket(t *testing.T) {
	snapshot := &repository.ContributionSnapshot{
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 1, VolunteerId: "user-1", Hours: 1, ValidationStatus: model.ValidationStatusUnvalidated, OrganizationName: "a"},
			{Id: 2, VolunteerId: "user-1", Hours: 2, ValidationStatus: model.ValidationStatusRejected, OrganizationName: "a"},
			{Id: 3, VolunteerId: "user-1", Hours: 4, ValidationStatus: model.ValidationStatusExpired, OrganizationName: "a"},
		},
	}

	stats := ComputeUserStats("user-1", snapshot)

	// rejected/expired 都归入 unvalidated 桶
	assert.Equal(t, float64(7), stats.SelfReportedHours.Unvalidated)
	assert.Equal(t, float64(7), stats.SelfReportedHours.Total)
	assert.Equal(t, float64(0), stats.TotalVolunteerHours)
}

func TestComputeUserStatsOrgKeyNamespaces(t *testing.T) {
	// 认证组织ID与自由填写名称不跨命名空间合并
	snapshot := &repository.ContributionSnapshot{
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 1, VolunteerId: "user-1", Hours: 1, ValidationStatus: model.ValidationStatusValidated, OrganizationId: orgId(1)},
			{Id: 2, VolunteerId: "user-1", Hours: 1, ValidationStatus: model.ValidationStatusValidated, OrganizationName: "Red Cross"},
			{Id: 3, VolunteerId: "user-1", Hours: 1, ValidationStatus: model.ValidationStatusValidated, OrganizationName: "Red Cross"},
		},
	}

	stats := ComputeUserStats("user-1", snapshot)
	assert.Equal(t, int64(2), stats.OrganizationsHelped)
}

func TestComputeGlobalStats(t *testing.T) {
	snapshot := userSnapshot()
	snapshot.Donations = append(snapshot.Donations,
		model.DonationModel{Id: 3, DonorId: "user-2", CharityId: orgId(1), Amount: decimal.NewFromInt(100), CreatedAt: day(2)})
	snapshot.FormalHours = append(snapshot.FormalHours,
		model.VolunteerHoursModel{Id: 3, VolunteerId: "user-3", CharityId: 2, Hours: 6, DatePerformed: day(3), Status: model.FormalHoursStatusApproved})

	stats := ComputeGlobalStats(snapshot)

	assert.True(t, stats.TotalDonated.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(3), stats.DonationCount)
	assert.Equal(t, int64(2), stats.TotalDonors)
	assert.Equal(t, int64(2), stats.TotalVolunteers) // user-1 和 user-3
	assert.Equal(t, float64(14), stats.FormalVolunteerHours)
	assert.Equal(t, float64(18), stats.TotalVolunteerHours)
	assert.Equal(t, int64(4), stats.SkillsEndorsed)
	assert.Equal(t, int64(4), stats.OrganizationsHelped) // org:1, org:2, org:3, name:Local Shelter
}

func TestComputeStatsIdempotent(t *testing.T) {
	snapshot := userSnapshot()
	first := ComputeUserStats("user-1", snapshot)
	second := ComputeUserStats("user-1", snapshot)
	assert.Equal(t, first, second)
}
