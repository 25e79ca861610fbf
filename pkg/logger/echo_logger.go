// File: pkg/logger/echo_logger.go
package logger

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	apperrors "github.com/wekeepgrowing/semo-paybot/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 로그에 남길 때 일부만 노출하는 헤더
var maskedHeaders = map[string]bool{
	"Authorization":    true,
	"Stripe-Signature": true,
}

// NewEchoRequestLogger는 Echo 서버를 위한 Request Logger를 생성합니다.
// 4XX는 Warn, 5XX는 Error, 나머지는 Info 레벨로 기록합니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	config := middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		HandleError: true,

		LogLatency:       true,
		LogRemoteIP:      true,
		LogMethod:        true,
		LogURIPath:       true,
		LogRoutePath:     true,
		LogRequestID:     true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,
		LogHeaders:       []string{"Content-Type", "Stripe-Signature"},

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.path", v.URIPath),
				zap.String("request.route", v.RoutePath),
				zap.String("request.user_agent", v.UserAgent),
				zap.String("request.request_id", v.RequestID),
				zap.String("request.content_length", v.ContentLength),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
				zap.Int64("response.response_size", v.ResponseSize),
			}

			if len(v.Headers) > 0 {
				headers := make(map[string]string, len(v.Headers))
				for k, values := range v.Headers {
					if len(values) == 0 {
						continue
					}
					if maskedHeaders[k] {
						headers[k] = maskValue(values[0])
					} else {
						headers[k] = values[0]
					}
				}
				fields = append(fields, zap.Any("request.headers", headers))
			}

			switch {
			case v.Error != nil:
				fields = append(fields, zap.Error(v.Error))
				logger.Error("Request failed", fields...)
			case v.Status >= 500:
				logger.Error("Server error", fields...)
			case v.Status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	}

	return middleware.RequestLoggerWithConfig(config)
}

// maskValue는 서명/토큰 값의 앞뒤 일부만 남깁니다.
func maskValue(val string) string {
	if len(val) > 15 {
		return val[:10] + "..." + val[len(val)-5:]
	}
	return "[MASKED]"
}

// WithEchoLogger는 Echo에 zap 기반 Logger와 에러 핸들러를 설정합니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// RequestLogger(HandleError)가 이미 처리한 에러는 다시 처리하지 않음
		if c.Response().Committed {
			return
		}

		he := apperrors.ToHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			logger.Error("HTTP error",
				zap.Error(err),
				zap.Int("status", he.Code),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("ip", c.RealIP()),
			)
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(he.Code)
		} else {
			sendErr = c.JSON(he.Code, echo.Map{"error": http.StatusText(he.Code)})
		}
		if sendErr != nil {
			logger.Error("Failed to send error response", zap.Error(sendErr))
		}
	}
}

// EchoZapLogger는 echo.Logger 인터페이스를 구현한 zap 로거 래퍼입니다.
type EchoZapLogger struct {
	Logger *zap.Logger
	prefix string
}

// NewEchoZapLogger는 Echo의 Logger 인터페이스를 구현한 zap 로거 래퍼를 생성합니다.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{Logger: logger}
}

// Output Echo 로깅을 위한 Writer를 반환합니다.
func (l *EchoZapLogger) Output() io.Writer {
	return &zapWriter{logger: l.Logger}
}

// SetOutput은 zap에서는 무시됩니다.
func (l *EchoZapLogger) SetOutput(w io.Writer) {}

// Level은 zap 코어에서 활성화된 가장 낮은 레벨을 gommon 레벨로 반환합니다.
func (l *EchoZapLogger) Level() log.Lvl {
	switch {
	case l.Logger.Core().Enabled(zapcore.DebugLevel):
		return log.DEBUG
	case l.Logger.Core().Enabled(zapcore.InfoLevel):
		return log.INFO
	case l.Logger.Core().Enabled(zapcore.WarnLevel):
		return log.WARN
	case l.Logger.Core().Enabled(zapcore.ErrorLevel):
		return log.ERROR
	default:
		return log.OFF
	}
}

// SetLevel은 zap에서는 무시됩니다. 레벨은 NewZapLogger 설정을 따릅니다.
func (l *EchoZapLogger) SetLevel(v log.Lvl) {}

// SetHeader는 zap에서는 무시됩니다.
func (l *EchoZapLogger) SetHeader(h string) {}

func (l *EchoZapLogger) Prefix() string {
	return l.prefix
}

func (l *EchoZapLogger) SetPrefix(p string) {
	l.prefix = p
}

func (l *EchoZapLogger) Print(i ...interface{}) {
	l.Logger.Sugar().Info(i...)
}

func (l *EchoZapLogger) Printf(format string, i ...interface{}) {
	l.Logger.Sugar().Infof(format, i...)
}

func (l *EchoZapLogger) Printj(j log.JSON) {
	l.Logger.Info("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Debug(i ...interface{}) {
	l.Logger.Sugar().Debug(i...)
}

func (l *EchoZapLogger) Debugf(format string, i ...interface{}) {
	l.Logger.Sugar().Debugf(format, i...)
}

func (l *EchoZapLogger) Debugj(j log.JSON) {
	l.Logger.Debug("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Info(i ...interface{}) {
	l.Logger.Sugar().Info(i...)
}

func (l *EchoZapLogger) Infof(format string, i ...interface{}) {
	l.Logger.Sugar().Infof(format, i...)
}

func (l *EchoZapLogger) Infoj(j log.JSON) {
	l.Logger.Info("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Warn(i ...interface{}) {
	l.Logger.Sugar().Warn(i...)
}

func (l *EchoZapLogger) Warnf(format string, i ...interface{}) {
	l.Logger.Sugar().Warnf(format, i...)
}

func (l *EchoZapLogger) Warnj(j log.JSON) {
	l.Logger.Warn("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Error(i ...interface{}) {
	l.Logger.Sugar().Error(i...)
}

func (l *EchoZapLogger) Errorf(format string, i ...interface{}) {
	l.Logger.Sugar().Errorf(format, i...)
}

func (l *EchoZapLogger) Errorj(j log.JSON) {
	l.Logger.Error("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Fatal(i ...interface{}) {
	l.Logger.Sugar().Fatal(i...)
}

func (l *EchoZapLogger) Fatalf(format string, i ...interface{}) {
	l.Logger.Sugar().Fatalf(format, i...)
}

func (l *EchoZapLogger) Fatalj(j log.JSON) {
	l.Logger.Fatal("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Panic(i ...interface{}) {
	l.Logger.Sugar().Panic(i...)
}

func (l *EchoZapLogger) Panicf(format string, i ...interface{}) {
	l.Logger.Sugar().Panicf(format, i...)
}

func (l *EchoZapLogger) Panicj(j log.JSON) {
	l.Logger.Panic("json_message", zap.Any("json", j))
}

// zapWriter는 echo 내부 로그 출력을 zap으로 전달합니다.
type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Write(p []byte) (n int, err error) {
	w.logger.Info(string(p))
	return len(p), nil
}
