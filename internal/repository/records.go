package repository

import (
	"sync"

	"github.com/haien/ccs/internal/logger"
	"github.com/haien/ccs/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// ContributionSnapshot 一次性取出的贡献数据快照
// 归一化、统计、排行榜都在快照上以纯函数计算，不依赖环境状态
type ContributionSnapshot struct {
	Donations    []model.DonationModel
	FormalHours  []model.VolunteerHoursModel
	SelfReported []model.SelfReportedHoursModel
	Endorsements []model.SkillEndorsementModel
}

// RecordRepository 贡献记录查询仓库
type RecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository 创建贡献记录查询仓库
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// FetchSnapshot 并发取出四类记录的快照
// userId 为空时取全量。单个来源读取失败时降级为空集并记录告警，
// 保证其余来源的统计仍然可用；写路径不走这里，不做降级。
func (r *RecordRepository) FetchSnapshot(userId string) *ContributionSnapshot {
	snapshot := &ContributionSnapshot{}

	pool, err := ants.NewPool(4)
	if err != nil {
		logger.Error("Failed to create fetch pool: %v", err)
		return r.fetchSequential(userId, snapshot)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	tasks := []func(){
		func() { snapshot.Donations = r.FetchDonations(userId) },
		func() { snapshot.FormalHours = r.FetchFormalHours(userId) },
		func() { snapshot.SelfReported = r.FetchSelfReported(userId) },
		func() { snapshot.Endorsements = r.FetchEndorsements(userId) },
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			logger.Error("Failed to submit fetch task to pool: %v", err)
			wg.Done()
			task()
		}
	}
	wg.Wait()

	return snapshot
}

// fetchSequential 协程池不可用时的顺序取数兜底
func (r *RecordRepository) fetchSequential(userId string, snapshot *ContributionSnapshot) *ContributionSnapshot {
	snapshot.Donations = r.FetchDonations(userId)
	snapshot.FormalHours = r.FetchFormalHours(userId)
	snapshot.SelfReported = r.FetchSelfReported(userId)
	snapshot.Endorsements = r.FetchEndorsements(userId)
	return snapshot
}

// FetchDonations 取捐赠记录（按ID升序，保证并列时的稳定顺序）
func (r *RecordRepository) FetchDonations(userId string) []model.DonationModel {
	var donations []model.DonationModel
	query := r.db.Preload("Charity").Order("id")
	if userId != "" {
		query = query.Where("donor_id = ?", userId)
	}
	if err := query.Find(&donations).Error; err != nil {
		logger.Warn("Failed to fetch donations, degrading to empty set: %v", err)
		return nil
	}
	return donations
}

// FetchFormalHours 取正式志愿工时记录
func (r *RecordRepository) FetchFormalHours(userId string) []model.VolunteerHoursModel {
	var hours []model.VolunteerHoursModel
	query := r.db.Preload("Charity").Order("id")
	if userId != "" {
		query = query.Where("volunteer_id = ?", userId)
	}
	if err := query.Find(&hours).Error; err != nil {
		logger.Warn("Failed to fetch volunteer hours, degrading to empty set: %v", err)
		return nil
	}
	return hours
}

// FetchSelfReported 取自报志愿工时记录
func (r *RecordRepository) FetchSelfReported(userId string) []model.SelfReportedHoursModel {
	var records []model.SelfReportedHoursModel
	query := r.db.Preload("Organization").Order("id")
	if userId != "" {
		query = query.Where("volunteer_id = ?", userId)
	}
	if err := query.Find(&records).Error; err != nil {
		logger.Warn("Failed to fetch self reported hours, degrading to empty set: %v", err)
		return nil
	}
	return records
}

// FetchEndorsements 取技能背书记录
func (r *RecordRepository) FetchEndorsements(userId string) []model.SkillEndorsementModel {
	var endorsements []model.SkillEndorsementModel
	query := r.db.Order("id")
	if userId != "" {
		query = query.Where("user_id = ?", userId)
	}
	if err := query.Find(&endorsements).Error; err != nil {
		logger.Warn("Failed to fetch endorsements, degrading to empty set: %v", err)
		return nil
	}
	return endorsements
}
