package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	// Echo 에러인 경우 그대로 반환
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(ToHTTPStatus(appErr.Code()), appErr.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
