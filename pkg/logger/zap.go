// File: pkg/logger/zap.go
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 로거 설정
type Config struct {
	// Level 로그 레벨 (debug, info, warn, error)
	Level string `yaml:"level"`
	// Format 로그 포맷 (json, console)
	Format string `yaml:"format"`
	// Output 로그 출력 대상 (stdout, stderr, file)
	Output string `yaml:"output"`
	// FilePath 파일로 출력할 경우 파일 경로
	FilePath string `yaml:"file_path"`
	// Development 개발 모드 여부
	Development bool `yaml:"development"`
}

// NewZapLogger 새로운 zap 로거를 생성합니다.
func NewZapLogger(config Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if config.Level != "" {
		parsed, err := zapcore.ParseLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
		level.SetLevel(parsed)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "log.level"
	encoderConfig.MessageKey = "message"
	encoderConfig.CallerKey = "caller"

	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var encoder zapcore.Encoder
	if config.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	// 로그 출력 설정
	var writeSyncer zapcore.WriteSyncer
	switch config.Output {
	case "stderr":
		writeSyncer = zapcore.AddSync(os.Stderr)
	case "file":
		if config.FilePath == "" {
			return nil, fmt.Errorf("log output is file but file_path is empty")
		}
		file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writeSyncer = zapcore.AddSync(file)
	default:
		writeSyncer = zapcore.AddSync(os.Stdout)
	}

	logger := zap.New(zapcore.NewCore(encoder, writeSyncer, level), zap.AddCaller())
	if config.Development {
		logger = logger.WithOptions(zap.Development())
	}

	return logger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// DefaultZapLogger 기본 설정으로 zap 로거를 생성합니다.
func DefaultZapLogger() *zap.Logger {
	logger, err := NewZapLogger(Config{Level: "info", Format: "json", Output: "stdout"})
	if err != nil {
		// 로거 생성 실패 시 기본 로거 반환
		return zap.NewExample()
	}
	return logger
}
