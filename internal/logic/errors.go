package logic

import (
	"errors"
	"fmt"
)

// 验证请求与记录变更的业务错误
var (
	ErrNotFound         = errors.New("记录不存在")
	ErrForbidden        = errors.New("当前状态不允许该操作")
	ErrAlreadyPending   = errors.New("已存在待处理的验证请求")
	ErrAlreadyValidated = errors.New("记录已通过验证")
	ErrWindowExpired    = errors.New("验证窗口已过期")
)

// ValidationError 输入校验错误，指明违反约束的字段
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建输入校验错误
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
