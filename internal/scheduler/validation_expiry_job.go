package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haien/ccs/internal/config"
	"github.com/haien/ccs/internal/logger"
	"github.com/haien/ccs/internal/logic"
	"github.com/haien/ccs/internal/metrics"
	"github.com/haien/ccs/internal/model"
	"gorm.io/gorm"
)

// ValidationExpiryJob 验证窗口过期任务
// 将活动日期超过90天仍未验证的自报工时标记为过期
type ValidationExpiryJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewValidationExpiryJob 创建验证窗口过期任务
func NewValidationExpiryJob(db *gorm.DB, cfg *config.Config) *ValidationExpiryJob {
	return &ValidationExpiryJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ValidationExpiryJob) GetName() string {
	return "validation_window_expirer"
}

// GetSchedule 获取调度配置
func (j *ValidationExpiryJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ValidationExpiryJob) Execute() {
	logger.Info("Starting validation window expiry task")

	now := time.Now()
	// 活动日期早于该时间点的记录已超出验证窗口
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -logic.ValidationWindowDays)

	// 查找窗口已过仍可能被验证的记录
	var records []model.SelfReportedHoursModel
	err := j.db.Where("validation_status IN ? AND activity_date < ?", []model.ValidationStatus{
		model.ValidationStatusUnvalidated,
		model.ValidationStatusPending,
		model.ValidationStatusRejected,
	}, cutoff).Find(&records).Error

	if err != nil {
		logger.Error("Failed to fetch self-reported hours: %v", err)
		return
	}

	expiredCount := 0

	for _, record := range records {
		wasPending := record.ValidationStatus == model.ValidationStatusPending

		// 过期同时清掉打开请求的指针
		if err := j.db.Model(&record).Updates(map[string]interface{}{
			"validation_status":     model.ValidationStatusExpired,
			"validation_request_id": nil,
		}).Error; err != nil {
			logger.Error("Failed to expire record %d: %v", record.Id, err)
			continue
		}

		// 同步关闭尚未答复的验证请求
		if wasPending {
			err := j.db.Model(&model.ValidationRequestModel{}).
				Where("self_reported_hours_id = ? AND status = ?", record.Id, model.RequestStatusPending).
				Update("status", model.RequestStatusExpired).Error
			if err != nil {
				logger.Error("Failed to expire pending request for record %d: %v", record.Id, err)
			}
		}

		logger.Info("Expired self-reported hours %d (activity date %s)",
			record.Id, record.ActivityDate.Format("2006-01-02"))
		metrics.ValidationRequestTotal.WithLabelValues("expired").Inc()
		expiredCount++
	}

	logger.Info("Validation window expiry completed. Expired %d records", expiredCount)
}
