package errors

import (
	"errors"
	"fmt"
)

// Error는 기본 에러 인터페이스를 확장합니다
type Error interface {
	error
	Code() string
	Message() string
	Unwrap() error
}

// AppError는 코드가 붙은 애플리케이션 에러입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message는 래핑된 원인 없이 사용자에게 보여줄 메시지만 반환합니다
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// CodeOf는 에러 체인에서 가장 바깥쪽 AppError의 코드를 반환합니다
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}
