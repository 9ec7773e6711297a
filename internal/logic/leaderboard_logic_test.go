package logic

import (
	"testing"

	"github.com/haien/ccs/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVolunteerLeaderboard(t *testing.T) {
	formal := []model.VolunteerHoursModel{
		{Id: 1, VolunteerId: "user-1", Hours: 10, Status: model.FormalHoursStatusApproved},
		{Id: 2, VolunteerId: "user-2", Hours: 20, Status: model.FormalHoursStatusApproved},
	}
	selfReported := []model.SelfReportedHoursModel{
		{Id: 1, VolunteerId: "user-1", Hours: 8, ValidationStatus: model.ValidationStatusValidated},
		{Id: 2, VolunteerId: "user-3", Hours: 8, ValidationStatus: model.ValidationStatusValidated},
		{Id: 3, VolunteerId: "user-3", Hours: 5, ValidationStatus: model.ValidationStatusPending},
		{Id: 4, VolunteerId: "user-3", Hours: 4, ValidationStatus: model.ValidationStatusUnvalidated},
	}

	entries := BuildVolunteerLeaderboard(formal, selfReported, 10, false)
	require.Len(t, entries, 3)

	assert.Equal(t, "user-2", entries[0].UserId)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, float64(20), entries[0].TotalHours)

	assert.Equal(t, "user-1", entries[1].UserId)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, float64(18), entries[1].TotalHours)
	assert.Equal(t, float64(10), entries[1].FormalHours)
	assert.Equal(t, float64(8), entries[1].SelfReportedHours)

	// 验证中和未验证的工时默认不计入
	assert.Equal(t, "user-3", entries[2].UserId)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, float64(8), entries[2].TotalHours)
}

func TestBuildVolunteerLeaderboardIncludeUnvalidated(t *testing.T) {
	selfReported := []model.SelfReportedHoursModel{
		{Id: 1, VolunteerId: "user-1", Hours: 8, ValidationStatus: model.ValidationStatusValidated},
		{Id: 2, VolunteerId: "user-1", Hours: 4, ValidationStatus: model.ValidationStatusUnvalidated},
		{Id: 3, VolunteerId: "user-1", Hours: 2, ValidationStatus: model.ValidationStatusRejected},
		{Id: 4, VolunteerId: "user-1", Hours: 1, ValidationStatus: model.ValidationStatusExpired},
		{Id: 5, VolunteerId: "user-1", Hours: 5, ValidationStatus: model.ValidationStatusPending},
	}

	entries := BuildVolunteerLeaderboard(nil, selfReported, 10, true)
	require.Len(t, entries, 1)

	// 验证中的工时无论如何都不计入
	assert.Equal(t, float64(15), entries[0].TotalHours)
}

func TestBuildVolunteerLeaderboardTieOrderStable(t *testing.T) {
	formal := []model.VolunteerHoursModel{
		{Id: 1, VolunteerId: "user-b", Hours: 10},
		{Id: 2, VolunteerId: "user-a", Hours: 10},
	}

	entries := BuildVolunteerLeaderboard(formal, nil, 10, false)
	require.Len(t, entries, 2)

	// 并列时按首次出现顺序排列
	assert.Equal(t, "user-b", entries[0].UserId)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "user-a", entries[1].UserId)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestBuildVolunteerLeaderboardLimit(t *testing.T) {
	formal := []model.VolunteerHoursModel{
		{Id: 1, VolunteerId: "user-1", Hours: 30},
		{Id: 2, VolunteerId: "user-2", Hours: 20},
		{Id: 3, VolunteerId: "user-3", Hours: 10},
	}

	entries := BuildVolunteerLeaderboard(formal, nil, 2, false)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-1", entries[0].UserId)
	assert.Equal(t, "user-2", entries[1].UserId)
}

func TestBuildDonorLeaderboard(t *testing.T) {
	donations := []model.DonationModel{
		{Id: 1, DonorId: "user-1", CharityId: orgId(1), Amount: decimal.NewFromInt(100)},
		{Id: 2, DonorId: "user-1", CharityId: orgId(2), Amount: decimal.NewFromInt(50)},
		{Id: 3, DonorId: "user-1", CharityId: orgId(1), Amount: decimal.NewFromInt(25)},
		{Id: 4, DonorId: "user-2", CharityId: orgId(1), Amount: decimal.NewFromInt(120)},
	}

	entries := BuildDonorLeaderboard(donations, 10)
	require.Len(t, entries, 2)

	assert.Equal(t, "user-1", entries[0].UserId)
	assert.Equal(t, 1, entries[0].Rank)
	assert.True(t, entries[0].TotalDonated.Equal(decimal.NewFromInt(175)))
	assert.Equal(t, int64(3), entries[0].DonationCount)
	assert.Equal(t, int64(2), entries[0].OrganizationsSupported)

	assert.Equal(t, "user-2", entries[1].UserId)
	assert.Equal(t, 2, entries[1].Rank)
	assert.True(t, entries[1].TotalDonated.Equal(decimal.NewFromInt(120)))
}

func TestBuildDonorLeaderboardTieOrderStable(t *testing.T) {
	donations := []model.DonationModel{
		{Id: 1, DonorId: "user-b", Amount: decimal.NewFromInt(100)},
		{Id: 2, DonorId: "user-a", Amount: decimal.NewFromInt(100)},
	}

	entries := BuildDonorLeaderboard(donations, 10)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-b", entries[0].UserId)
	assert.Equal(t, "user-a", entries[1].UserId)
}
