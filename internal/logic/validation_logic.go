package logic

import (
	"errors"
	"time"

	"github.com/haien/ccs/internal/metrics"
	"github.com/haien/ccs/internal/model"
	"gorm.io/gorm"
)

// ValidationLogic 验证请求业务逻辑
type ValidationLogic struct {
	db *gorm.DB
}

// NewValidationLogic 创建验证请求业务逻辑
func NewValidationLogic(db *gorm.DB) *ValidationLogic {
	return &ValidationLogic{db: db}
}

// RequestValidation 对自报工时记录发起验证请求
// 记录转入 pending，同一记录同时只能有一个打开的请求；
// 被拒绝后的再次发起视为重新提交，关联原请求
func (l *ValidationLogic) RequestValidation(id int64, volunteerId string) (*model.ValidationRequestModel, error) {
	var record model.SelfReportedHoursModel
	if err := l.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if record.VolunteerId != volunteerId {
		return nil, ErrForbidden
	}

	switch record.ValidationStatus {
	case model.ValidationStatusValidated:
		return nil, ErrAlreadyValidated
	case model.ValidationStatusPending:
		return nil, ErrAlreadyPending
	}

	// 自由填写的组织无法验证
	if record.OrganizationId == nil {
		return nil, NewValidationError("organization_id", "仅认证组织的记录可以发起验证")
	}

	now := time.Now()
	_, ok := DaysUntilExpiration(record.ActivityDate, now)
	if !ok {
		return nil, ErrWindowExpired
	}

	request := &model.ValidationRequestModel{
		SelfReportedHoursId: record.Id,
		OrganizationId:      *record.OrganizationId,
		VolunteerId:         record.VolunteerId,
		Status:              model.RequestStatusPending,
		ExpiresAt:           record.ActivityDate.AddDate(0, 0, ValidationWindowDays),
	}

	// 被拒绝后的重新提交关联最近一次被拒绝的请求
	if record.ValidationStatus == model.ValidationStatusRejected {
		request.IsResubmission = true
		var prior model.ValidationRequestModel
		err := l.db.Where("self_reported_hours_id = ? AND status = ?", record.Id, model.RequestStatusRejected).
			Order("id DESC").
			First(&prior).Error
		if err == nil {
			request.OriginalRequestId = &prior.Id
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(request).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// 条件更新防并发：状态必须仍是读取时的状态，否则说明有并发请求抢先提交
	res := tx.Model(&model.SelfReportedHoursModel{}).
		Where("id = ? AND validation_status = ?", record.Id, record.ValidationStatus).
		Updates(map[string]interface{}{
			"validation_status":     model.ValidationStatusPending,
			"validation_request_id": request.Id,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrAlreadyPending
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	metrics.ValidationRequestTotal.WithLabelValues("requested").Inc()
	return request, nil
}

// RespondToValidation 组织侧处理验证请求
// 通过时记录进入 validated 终态，拒绝时必须给出拒绝原因
func (l *ValidationLogic) RespondToValidation(requestId int64, organizationId int64, approved bool, reason, notes string) (*model.ValidationRequestModel, error) {
	var request model.ValidationRequestModel
	if err := l.db.First(&request, requestId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.OrganizationId != organizationId {
		return nil, ErrForbidden
	}
	if request.Status != model.RequestStatusPending {
		return nil, ErrForbidden
	}
	if !approved && reason == "" {
		return nil, NewValidationError("rejection_reason", "拒绝时必须提供拒绝原因")
	}

	now := time.Now()
	requestStatus := model.RequestStatusApproved
	if !approved {
		requestStatus = model.RequestStatusRejected
	}

	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 条件更新防并发：只有仍处于 pending 的请求才能被答复一次
	res := tx.Model(&model.ValidationRequestModel{}).
		Where("id = ? AND status = ?", request.Id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":           requestStatus,
			"rejection_reason": reason,
			"responded_at":     now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrForbidden
	}

	recordUpdates := map[string]interface{}{
		"validation_request_id": nil,
	}
	if approved {
		recordUpdates["validation_status"] = model.ValidationStatusValidated
		recordUpdates["rejection_reason"] = ""
		recordUpdates["rejection_notes"] = ""
	} else {
		recordUpdates["validation_status"] = model.ValidationStatusRejected
		recordUpdates["rejection_reason"] = reason
		recordUpdates["rejection_notes"] = notes
	}

	if err := tx.Model(&model.SelfReportedHoursModel{}).
		Where("id = ?", request.SelfReportedHoursId).
		Updates(recordUpdates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	metrics.ValidationRequestTotal.WithLabelValues(string(requestStatus)).Inc()
	request.Status = requestStatus
	request.RejectionReason = reason
	request.RespondedAt = &now
	return &request, nil
}

// CancelValidation 志愿者取消打开的验证请求
// 记录回到发起请求前的状态：重新提交的请求回到 rejected，否则回到 unvalidated
func (l *ValidationLogic) CancelValidation(requestId int64, volunteerId string) error {
	var request model.ValidationRequestModel
	if err := l.db.First(&request, requestId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if request.VolunteerId != volunteerId {
		return ErrForbidden
	}
	if request.Status != model.RequestStatusPending {
		return ErrForbidden
	}

	restored := model.ValidationStatusUnvalidated
	if request.IsResubmission {
		restored = model.ValidationStatusRejected
	}

	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 条件更新防并发：请求已被答复或已取消时放弃
	res := tx.Model(&model.ValidationRequestModel{}).
		Where("id = ? AND status = ?", request.Id, model.RequestStatusPending).
		Update("status", model.RequestStatusCancelled)
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrForbidden
	}

	if err := tx.Model(&model.SelfReportedHoursModel{}).
		Where("id = ?", request.SelfReportedHoursId).
		Updates(map[string]interface{}{
			"validation_status":     restored,
			"validation_request_id": nil,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	metrics.ValidationRequestTotal.WithLabelValues("cancelled").Inc()
	return nil
}

// GetPendingRequests 获取组织待处理的验证请求
func (l *ValidationLogic) GetPendingRequests(organizationId int64) ([]model.ValidationRequestModel, error) {
	var requests []model.ValidationRequestModel
	if err := l.db.Where("organization_id = ? AND status = ?", organizationId, model.RequestStatusPending).
		Order("created_at").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
