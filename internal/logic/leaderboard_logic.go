package logic

import (
	"sort"

	"github.com/haien/ccs/internal/model"
	"github.com/haien/ccs/internal/repository"
	"gorm.io/gorm"
)

// DefaultLeaderboardLimit 排行榜默认条数
const DefaultLeaderboardLimit = 10

// LeaderboardLogic 排行榜业务逻辑
type LeaderboardLogic struct {
	repo *repository.RecordRepository
}

// NewLeaderboardLogic 创建排行榜业务逻辑
func NewLeaderboardLogic(db *gorm.DB) *LeaderboardLogic {
	return &LeaderboardLogic{repo: repository.NewRecordRepository(db)}
}

// GetVolunteerLeaderboard 获取志愿者排行榜
func (l *LeaderboardLogic) GetVolunteerLeaderboard(limit int, includeUnvalidated bool) []model.VolunteerLeaderboardEntry {
	formal := l.repo.FetchFormalHours("")
	selfReported := l.repo.FetchSelfReported("")
	return BuildVolunteerLeaderboard(formal, selfReported, limit, includeUnvalidated)
}

// GetDonorLeaderboard 获取捐赠者排行榜
func (l *LeaderboardLogic) GetDonorLeaderboard(limit int) []model.DonorLeaderboardEntry {
	donations := l.repo.FetchDonations("")
	return BuildDonorLeaderboard(donations, limit)
}

// BuildVolunteerLeaderboard 构建志愿者排行榜
// 正式工时与自报工时按志愿者分组求和后合并；自报工时默认只计已验证部分，
// includeUnvalidated 为真时额外计入 unvalidated 桶（含 rejected/expired），
// 验证中的工时任何情况下都不计入。并列名次按首次出现顺序稳定排序
func BuildVolunteerLeaderboard(formal []model.VolunteerHoursModel, selfReported []model.SelfReportedHoursModel, limit int, includeUnvalidated bool) []model.VolunteerLeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	entries := make(map[string]*model.VolunteerLeaderboardEntry)
	order := make([]string, 0)

	entryFor := func(userId string) *model.VolunteerLeaderboardEntry {
		entry, ok := entries[userId]
		if !ok {
			entry = &model.VolunteerLeaderboardEntry{UserId: userId}
			entries[userId] = entry
			order = append(order, userId)
		}
		return entry
	}

	for _, record := range formal {
		entryFor(record.VolunteerId).FormalHours += record.Hours
	}

	for _, record := range selfReported {
		switch record.ValidationStatus {
		case model.ValidationStatusValidated:
			entryFor(record.VolunteerId).SelfReportedHours += record.Hours
		case model.ValidationStatusPending:
			// 不计入
		default:
			if includeUnvalidated {
				entryFor(record.VolunteerId).SelfReportedHours += record.Hours
			}
		}
	}

	result := make([]model.VolunteerLeaderboardEntry, 0, len(order))
	for _, userId := range order {
		entry := entries[userId]
		entry.TotalHours = entry.FormalHours + entry.SelfReportedHours
		result = append(result, *entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalHours > result[j].TotalHours
	})

	if len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Rank = i + 1
	}

	return result
}

// BuildDonorLeaderboard 构建捐赠者排行榜
// 按捐赠者分组求和，按总捐赠额降序，并列名次按首次出现顺序稳定排序
func BuildDonorLeaderboard(donations []model.DonationModel, limit int) []model.DonorLeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	type donorGroup struct {
		entry model.DonorLeaderboardEntry
		orgs  map[int64]struct{}
	}

	groups := make(map[string]*donorGroup)
	order := make([]string, 0)

	for _, donation := range donations {
		group, ok := groups[donation.DonorId]
		if !ok {
			group = &donorGroup{
				entry: model.DonorLeaderboardEntry{UserId: donation.DonorId},
				orgs:  make(map[int64]struct{}),
			}
			groups[donation.DonorId] = group
			order = append(order, donation.DonorId)
		}
		group.entry.TotalDonated = group.entry.TotalDonated.Add(donation.Amount)
		group.entry.DonationCount++
		if donation.CharityId != nil {
			group.orgs[*donation.CharityId] = struct{}{}
		}
	}

	result := make([]model.DonorLeaderboardEntry, 0, len(order))
	for _, userId := range order {
		group := groups[userId]
		group.entry.OrganizationsSupported = int64(len(group.orgs))
		result = append(result, group.entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalDonated.GreaterThan(result[j].TotalDonated)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Rank = i + 1
	}

	return result
}
