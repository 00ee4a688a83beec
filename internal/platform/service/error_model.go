package service

import (
	"errors"
	"strings"
)

type ErrorCode string

const (
	ErrorCodeValidation     ErrorCode = "validation"
	ErrorCodeUnauthorized   ErrorCode = "unauthorized"
	ErrorCodeForbidden      ErrorCode = "forbidden"
	ErrorCodeConflict       ErrorCode = "conflict"
	ErrorCodeNotFound       ErrorCode = "not_found"
	ErrorCodeGuardViolation ErrorCode = "guard_violation"
	ErrorCodeStatusLocked   ErrorCode = "status_locked"
	ErrorCodeStorage        ErrorCode = "storage"
	ErrorCodeInternal       ErrorCode = "internal"
)

// FieldError 表示某个表单字段的校验失败原因。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ServiceError struct {
	Code    ErrorCode
	Message string
	Fields  []FieldError
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

// NewFieldValidationError 将一组字段错误合并为一个校验错误。
func NewFieldValidationError(fields []FieldError) error {
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, f.Message)
	}
	return &ServiceError{
		Code:    ErrorCodeValidation,
		Message: strings.Join(messages, "；"),
		Fields:  fields,
	}
}

func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewServiceError(ErrorCodeForbidden, message)
}

func NewConflictError(message string) error {
	return NewServiceError(ErrorCodeConflict, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewGuardViolationError(message string) error {
	return NewServiceError(ErrorCodeGuardViolation, message)
}

func NewStatusLockedError(message string) error {
	return NewServiceError(ErrorCodeStatusLocked, message)
}

func NewStorageError(message string) error {
	return NewServiceError(ErrorCodeStorage, message)
}

func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// FieldErrors 收集多个字段错误，全部校验完成后一次性返回。
type FieldErrors []FieldError

func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

func (fe FieldErrors) Has(field string) bool {
	for _, f := range fe {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err 没有错误时返回 nil。
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return NewFieldValidationError(fe)
}
