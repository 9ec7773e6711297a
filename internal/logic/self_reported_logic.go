package logic

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/haien/ccs/internal/model"
	"gorm.io/gorm"
)

// ValidationWindowDays 验证窗口天数，从活动日期起算
const ValidationWindowDays = 90

var validate = validator.New()

// SelfReportedHoursInput 自报工时创建/更新输入
type SelfReportedHoursInput struct {
	ActivityDate     time.Time          `json:"activity_date" validate:"required"`
	Hours            float64            `json:"hours" validate:"required,min=0.5,max=24"`
	ActivityType     model.ActivityType `json:"activity_type" validate:"required,oneof=education environment health community_service animal_welfare disaster_relief other"`
	Description      string             `json:"description" validate:"required,min=50,max=500"`
	OrganizationId   *int64             `json:"organization_id"`
	OrganizationName string             `json:"organization_name"`
}

// SelfReportedLogic 自报工时业务逻辑
type SelfReportedLogic struct {
	db *gorm.DB
}

// NewSelfReportedLogic 创建自报工时业务逻辑
func NewSelfReportedLogic(db *gorm.DB) *SelfReportedLogic {
	return &SelfReportedLogic{db: db}
}

// Create 创建自报工时记录，初始状态为 unvalidated
func (l *SelfReportedLogic) Create(volunteerId string, input *SelfReportedHoursInput) (*model.SelfReportedHoursModel, error) {
	if volunteerId == "" {
		return nil, NewValidationError("volunteer_id", "志愿者标识不能为空")
	}
	if err := l.validateInput(input); err != nil {
		return nil, err
	}

	record := &model.SelfReportedHoursModel{
		VolunteerId:      volunteerId,
		ActivityDate:     input.ActivityDate,
		Hours:            input.Hours,
		ActivityType:     input.ActivityType,
		Description:      input.Description,
		OrganizationId:   input.OrganizationId,
		OrganizationName: input.OrganizationName,
		ValidationStatus: model.ValidationStatusUnvalidated,
	}

	if err := l.db.Create(record).Error; err != nil {
		return nil, err
	}

	return record, nil
}

// Update 更新自报工时记录
// 只允许 unvalidated/rejected/expired 状态：已验证记录不可变，
// 验证中的记录需要先取消验证请求
func (l *SelfReportedLogic) Update(id int64, volunteerId string, input *SelfReportedHoursInput) (*model.SelfReportedHoursModel, error) {
	record, err := l.getOwned(id, volunteerId)
	if err != nil {
		return nil, err
	}

	switch record.ValidationStatus {
	case model.ValidationStatusUnvalidated, model.ValidationStatusRejected, model.ValidationStatusExpired:
	default:
		return nil, ErrForbidden
	}

	if err := l.validateInput(input); err != nil {
		return nil, err
	}

	record.ActivityDate = input.ActivityDate
	record.Hours = input.Hours
	record.ActivityType = input.ActivityType
	record.Description = input.Description
	record.OrganizationId = input.OrganizationId
	record.OrganizationName = input.OrganizationName
	// 内容已变更，旧的拒绝意见不再适用
	record.RejectionReason = ""
	record.RejectionNotes = ""

	if err := l.db.Save(record).Error; err != nil {
		return nil, err
	}

	return record, nil
}

// Delete 删除自报工时记录
// 已验证的记录永久保留，不允许删除；存在打开的验证请求时一并取消
func (l *SelfReportedLogic) Delete(id int64, volunteerId string) error {
	record, err := l.getOwned(id, volunteerId)
	if err != nil {
		return err
	}

	if record.ValidationStatus == model.ValidationStatusValidated {
		return ErrForbidden
	}

	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if record.ValidationRequestId != nil {
		if err := tx.Model(&model.ValidationRequestModel{}).
			Where("id = ? AND status = ?", *record.ValidationRequestId, model.RequestStatusPending).
			Update("status", model.RequestStatusCancelled).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Delete(record).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Get 获取单条自报工时记录
func (l *SelfReportedLogic) Get(id int64) (*model.SelfReportedHoursModel, error) {
	var record model.SelfReportedHoursModel
	if err := l.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByVolunteer 获取志愿者的自报工时记录列表
func (l *SelfReportedLogic) GetByVolunteer(volunteerId string) ([]model.SelfReportedHoursModel, error) {
	var records []model.SelfReportedHoursModel
	if err := l.db.Where("volunteer_id = ?", volunteerId).
		Order("activity_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// getOwned 获取记录并校验归属
func (l *SelfReportedLogic) getOwned(id int64, volunteerId string) (*model.SelfReportedHoursModel, error) {
	record, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	if record.VolunteerId != volunteerId {
		return nil, ErrForbidden
	}
	return record, nil
}

// validateInput 校验输入字段及跨字段约束
func (l *SelfReportedLogic) validateInput(input *SelfReportedHoursInput) error {
	if err := validateFields(input); err != nil {
		return err
	}

	// 指定组织ID时必须是已认证组织
	if input.OrganizationId != nil {
		var org model.OrganizationModel
		if err := l.db.First(&org, *input.OrganizationId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("organization_id", "组织不存在")
			}
			return err
		}
		if !org.Verified {
			return NewValidationError("organization_id", "组织未通过认证")
		}
	}

	return nil
}

// validateFields 无需访问数据库的字段校验
func validateFields(input *SelfReportedHoursInput) error {
	if err := validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return fieldErrorToValidationError(fieldErrors[0])
		}
		return err
	}

	if truncateDay(input.ActivityDate).After(truncateDay(time.Now())) {
		return NewValidationError("activity_date", "活动日期不能晚于今天")
	}

	// 认证组织ID与自由填写名称二选一
	hasId := input.OrganizationId != nil
	hasName := input.OrganizationName != ""
	if hasId == hasName {
		return NewValidationError("organization", "认证组织ID与组织名称必须且只能提供一个")
	}

	return nil
}

// fieldErrorToValidationError 将 validator 的字段错误转成业务校验错误
func fieldErrorToValidationError(fe validator.FieldError) error {
	switch fe.Field() {
	case "ActivityDate":
		return NewValidationError("activity_date", "活动日期不能为空")
	case "Hours":
		return NewValidationError("hours", "工时必须在0.5到24小时之间")
	case "ActivityType":
		return NewValidationError("activity_type", "无效的活动类型")
	case "Description":
		return NewValidationError("description", "描述长度必须在50到500个字符之间")
	default:
		return NewValidationError(fe.Field(), "字段校验失败")
	}
}

// DaysUntilExpiration 计算验证窗口剩余整天数
// 窗口已关闭时返回 ok=false
func DaysUntilExpiration(activityDate, now time.Time) (int, bool) {
	deadline := truncateDay(activityDate).AddDate(0, 0, ValidationWindowDays)
	days := int(deadline.Sub(truncateDay(now)).Hours() / 24)
	if days < 0 {
		return 0, false
	}
	return days, true
}

// CanRequestValidation 判断记录当前能否发起验证请求
// 直接按窗口计算，不依赖定时任务写入的过期状态
func CanRequestValidation(record *model.SelfReportedHoursModel, now time.Time) bool {
	if record.ValidationStatus == model.ValidationStatusValidated ||
		record.ValidationStatus == model.ValidationStatusPending {
		return false
	}
	if record.OrganizationId == nil {
		return false
	}
	_, ok := DaysUntilExpiration(record.ActivityDate, now)
	return ok
}

// truncateDay 截断到日历日
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
