package errors

import "net/http"

// 공통 에러 코드 정의
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnavailable     = "UNAVAILABLE" // 외부 결제/메신저 API 호출 실패
)

// 코드 -> HTTP 상태 매핑 테이블
var httpStatusByCode = map[string]int{
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusNotFound,
	ErrInvalidArgument: http.StatusBadRequest,
	ErrUnauthenticated: http.StatusUnauthorized,
	ErrUnavailable:     http.StatusBadGateway,
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
