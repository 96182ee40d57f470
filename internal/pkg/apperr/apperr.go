package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrorCode 定义错误码类型
type ErrorCode int

const (
	// ErrNotFound 引用的资源不存在（帖子/模板/用户/分类/附件）
	ErrNotFound ErrorCode = iota + 1000
	// ErrPermissionDenied 所有权校验失败
	ErrPermissionDenied
	// ErrInvalidArgument 参数非法（布局数据损坏、多个主块、未知类型标签）
	ErrInvalidArgument
	// ErrConflict 唯一性冲突（并发重复点赞）
	ErrConflict
	// ErrInternal 未归类的内部错误
	ErrInternal
)

// AppError 定义服务层错误
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的服务错误
func New(code ErrorCode, message string) error {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// GetCode 获取错误码，非 AppError 归类为内部错误
func GetCode(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrInternal
}

// Is 判断错误是否属于某个错误码
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// FromStorage 把存储层错误翻译成最接近的业务错误
// 裸的数据库错误不允许穿透到调用方
func FromStorage(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(ErrNotFound, notFoundMsg, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(ErrConflict, "duplicate entry", err)
	default:
		return Wrap(ErrInternal, "storage error", err)
	}
}
