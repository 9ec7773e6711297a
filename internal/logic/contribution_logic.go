package logic

import (
	"sort"

	"github.com/haien/ccs/internal/model"
	"github.com/haien/ccs/internal/repository"
	"gorm.io/gorm"
)

// 组织名称缺失时的兜底文案
const (
	unknownCharityName      = "Unknown Charity"
	unknownOrganizationName = "Unknown Organization"
)

// ContributionFilter 统一贡献查询条件
type ContributionFilter struct {
	UserId  string                   `json:"user_id"`
	Sources []model.ContributionType `json:"sources"` // 为空时包含全部三类
}

// ContributionLogic 统一贡献业务逻辑
type ContributionLogic struct {
	repo *repository.RecordRepository
}

// NewContributionLogic 创建统一贡献业务逻辑
func NewContributionLogic(db *gorm.DB) *ContributionLogic {
	return &ContributionLogic{repo: repository.NewRecordRepository(db)}
}

// GetUnifiedContributions 获取归一化的贡献时间线
func (c *ContributionLogic) GetUnifiedContributions(filter ContributionFilter) []model.UnifiedContribution {
	snapshot := c.repo.FetchSnapshot(filter.UserId)
	return NormalizeContributions(snapshot, filter)
}

// NormalizeContributions 将三类原始记录归一化为统一贡献时间线
// 按日期降序排列，日期相同时保持入列顺序（捐赠、正式工时、自报工时，各自按ID升序）
func NormalizeContributions(snapshot *repository.ContributionSnapshot, filter ContributionFilter) []model.UnifiedContribution {
	include := sourceSet(filter.Sources)
	contributions := make([]model.UnifiedContribution, 0)

	if include[model.ContributionTypeDonation] {
		for _, donation := range snapshot.Donations {
			if filter.UserId != "" && donation.DonorId != filter.UserId {
				continue
			}
			amount := donation.Amount
			name := unknownCharityName
			if donation.Charity != nil {
				name = donation.Charity.Name
			}
			contributions = append(contributions, model.UnifiedContribution{
				Id:               donation.Id,
				Type:             model.ContributionTypeDonation,
				Date:             donation.CreatedAt,
				UserId:           donation.DonorId,
				OrganizationName: name,
				Amount:           &amount,
				Status:           model.ContributionStatusCompleted,
			})
		}
	}

	if include[model.ContributionTypeFormalVolunteer] {
		for _, record := range snapshot.FormalHours {
			if filter.UserId != "" && record.VolunteerId != filter.UserId {
				continue
			}
			// 被机构拒绝的正式工时不进入时间线
			if record.Status == model.FormalHoursStatusRejected {
				continue
			}
			status := model.ContributionStatusPending
			if record.Status == model.FormalHoursStatusApproved {
				status = model.ContributionStatusCompleted
			}
			name := unknownCharityName
			if record.Charity != nil {
				name = record.Charity.Name
			}
			hours := record.Hours
			contributions = append(contributions, model.UnifiedContribution{
				Id:               record.Id,
				Type:             model.ContributionTypeFormalVolunteer,
				Date:             record.DatePerformed,
				UserId:           record.VolunteerId,
				OrganizationName: name,
				Hours:            &hours,
				Status:           status,
			})
		}
	}

	if include[model.ContributionTypeSelfReported] {
		for _, record := range snapshot.SelfReported {
			if filter.UserId != "" && record.VolunteerId != filter.UserId {
				continue
			}
			var status model.ContributionStatus
			switch record.ValidationStatus {
			case model.ValidationStatusValidated:
				status = model.ContributionStatusValidated
			case model.ValidationStatusPending:
				status = model.ContributionStatusPending
			default:
				status = model.ContributionStatusUnvalidated
			}
			name := record.OrganizationName
			if name == "" {
				if record.Organization != nil {
					name = record.Organization.Name
				} else {
					name = unknownOrganizationName
				}
			}
			hours := record.Hours
			contributions = append(contributions, model.UnifiedContribution{
				Id:               record.Id,
				Type:             model.ContributionTypeSelfReported,
				Date:             record.ActivityDate,
				UserId:           record.VolunteerId,
				OrganizationName: name,
				Hours:            &hours,
				Status:           status,
			})
		}
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Date.After(contributions[j].Date)
	})

	return contributions
}

// sourceSet 将来源过滤条件展开为集合，空条件表示全部
func sourceSet(sources []model.ContributionType) map[model.ContributionType]bool {
	if len(sources) == 0 {
		return map[model.ContributionType]bool{
			model.ContributionTypeDonation:        true,
			model.ContributionTypeFormalVolunteer: true,
			model.ContributionTypeSelfReported:    true,
		}
	}
	include := make(map[model.ContributionType]bool, len(sources))
	for _, source := range sources {
		include[source] = true
	}
	return include
}
