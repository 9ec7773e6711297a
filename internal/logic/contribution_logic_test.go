package logic

import (
	"testing"
	"time"

	"github.com/haien/ccs/internal/model"
	"github.com/haien/ccs/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func orgId(id int64) *int64 {
	return &id
}

func TestNormalizeContributionsStatusMapping(t *testing.T) {
	snapshot := &repository.ContributionSnapshot{
		Donations: []model.DonationModel{
			{Id: 1, DonorId: "user-1", Amount: decimal.NewFromInt(100), CreatedAt: day(0)},
		},
		FormalHours: []model.VolunteerHoursModel{
			{Id: 2, VolunteerId: "user-1", Hours: 4, DatePerformed: day(1), Status: model.FormalHoursStatusApproved},
			{Id: 3, VolunteerId: "user-1", Hours: 2, DatePerformed: day(2), Status: model.FormalHoursStatusPending},
			{Id: 4, VolunteerId: "user-1", Hours: 6, DatePerformed: day(3), Status: model.FormalHoursStatusRejected},
		},
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 5, VolunteerId: "user-1", Hours: 3, ActivityDate: day(4), ValidationStatus: model.ValidationStatusValidated, OrganizationId: orgId(1)},
			{Id: 6, VolunteerId: "user-1", Hours: 1, ActivityDate: day(5), ValidationStatus: model.ValidationStatusPending, OrganizationId: orgId(1)},
			{Id: 7, VolunteerId: "user-1", Hours: 2, ActivityDate: day(6), ValidationStatus: model.ValidationStatusRejected, OrganizationName: "Local Shelter"},
			{Id: 8, VolunteerId: "user-1", Hours: 2, ActivityDate: day(7), ValidationStatus: model.ValidationStatusExpired, OrganizationName: "Local Shelter"},
		},
	}

	contributions := NormalizeContributions(snapshot, ContributionFilter{})

	// 被拒绝的正式工时不进入时间线
	require.Len(t, contributions, 7)

	statusById := make(map[int64]model.ContributionStatus)
	for _, c := range contributions {
		statusById[c.Id] = c.Status
	}

	assert.Equal(t, model.ContributionStatusCompleted, statusById[1])
	assert.Equal(t, model.ContributionStatusCompleted, statusById[2])
	assert.Equal(t, model.ContributionStatusPending, statusById[3])
	assert.NotContains(t, statusById, int64(4))
	assert.Equal(t, model.ContributionStatusValidated, statusById[5])
	assert.Equal(t, model.ContributionStatusPending, statusById[6])
	assert.Equal(t, model.ContributionStatusUnvalidated, statusById[7])
	assert.Equal(t, model.ContributionStatusUnvalidated, statusById[8])
}

func TestNormalizeContributionsSortsByDateDescending(t *testing.T) {
	snapshot := &repository.ContributionSnapshot{
		Donations: []model.DonationModel{
			{Id: 1, DonorId: "user-1", Amount: decimal.NewFromInt(50), CreatedAt: day(1)},
			{Id: 2, DonorId: "user-1", Amount: decimal.NewFromInt(80), CreatedAt: day(5)},
		},
		FormalHours: []model.VolunteerHoursModel{
			{Id: 3, VolunteerId: "user-1", Hours: 4, DatePerformed: day(5), Status: model.FormalHoursStatusApproved},
		},
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 4, VolunteerId: "user-1", Hours: 2, ActivityDate: day(9), ValidationStatus: model.ValidationStatusValidated, OrganizationId: orgId(1)},
		},
	}

	contributions := NormalizeContributions(snapshot, ContributionFilter{})
	require.Len(t, contributions, 4)

	// 日期降序；同日期时保持入列顺序（捐赠在正式工时之前）
	assert.Equal(t, int64(4), contributions[0].Id)
	assert.Equal(t, int64(2), contributions[1].Id)
	assert.Equal(t, int64(3), contributions[2].Id)
	assert.Equal(t, int64(1), contributions[3].Id)
}

func TestNormalizeContributionsOrganizationNameFallback(t *testing.T) {
	snapshot := &repository.ContributionSnapshot{
		Donations: []model.DonationModel{
			{Id: 1, DonorId: "user-1", Amount: decimal.NewFromInt(10), CreatedAt: day(0),
				Charity: &model.OrganizationModel{Id: 1, Name: "Red Cross"}},
			{Id: 2, DonorId: "user-1", Amount: decimal.NewFromInt(10), CreatedAt: day(0)},
		},
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 3, VolunteerId: "user-1", Hours: 2, ActivityDate: day(0),
				ValidationStatus: model.ValidationStatusUnvalidated, OrganizationName: "Local Shelter"},
			{Id: 4, VolunteerId: "user-1", Hours: 2, ActivityDate: day(0),
				ValidationStatus: model.ValidationStatusUnvalidated, OrganizationId: orgId(2),
				Organization: &model.OrganizationModel{Id: 2, Name: "Food Bank"}},
			{Id: 5, VolunteerId: "user-1", Hours: 2, ActivityDate: day(0),
				ValidationStatus: model.ValidationStatusUnvalidated},
		},
	}

	contributions := NormalizeContributions(snapshot, ContributionFilter{})
	nameById := make(map[int64]string)
	for _, c := range contributions {
		nameById[c.Id] = c.OrganizationName
	}

	assert.Equal(t, "Red Cross", nameById[1])
	assert.Equal(t, "Unknown Charity", nameById[2])
	assert.Equal(t, "Local Shelter", nameById[3])
	assert.Equal(t, "Food Bank", nameById[4])
	assert.Equal(t, "Unknown Organization", nameById[5])
}

func TestNormalizeContributionsFilters(t *testing.T) {
	snapshot := &repository.ContributionSnapshot{
		Donations: []model.DonationModel{
			{Id: 1, DonorId: "user-1", Amount: decimal.NewFromInt(10), CreatedAt: day(0)},
			{Id: 2, DonorId: "user-2", Amount: decimal.NewFromInt(10), CreatedAt: day(0)},
		},
		FormalHours: []model.VolunteerHoursModel{
			{Id: 3, VolunteerId: "user-1", Hours: 4, DatePerformed: day(0), Status: model.FormalHoursStatusApproved},
		},
		SelfReported: []model.SelfReportedHoursModel{
			{Id: 4, VolunteerId: "user-1", Hours: 2, ActivityDate: day(0), ValidationStatus: model.ValidationStatusUnvalidated, OrganizationName: "x"},
		},
	}

	// 用户过滤
	byUser := NormalizeContributions(snapshot, ContributionFilter{UserId: "user-1"})
	require.Len(t, byUser, 3)
	for _, c := range byUser {
		assert.Equal(t, "user-1", c.UserId)
	}

	// 来源过滤
	bySource := NormalizeContributions(snapshot, ContributionFilter{
		Sources: []model.ContributionType{model.ContributionTypeDonation},
	})
	require.Len(t, bySource, 2)
	for _, c := range bySource {
		assert.Equal(t, model.ContributionTypeDonation, c.Type)
	}
}
