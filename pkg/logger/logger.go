package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFilePrefix = "member-organizer"

// 日志级别映射
var logLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// 日志接口
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Fatal(format string, args ...any)
}

// 日志实现
type logger struct {
	log   *zap.Logger
	sugar *zap.SugaredLogger
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// ParseLevel 解析日志级别，未知级别返回 info
func ParseLevel(level string) zapcore.Level {
	logLevel, exists := logLevelMap[strings.ToLower(level)]
	if !exists {
		return zapcore.InfoLevel
	}
	return logLevel
}

// NewLogger 创建新日志实例，日志同时输出到 stderr 和按日期命名的滚动文件
func NewLogger(logsDir, level string) (Logger, error) {
	if strings.TrimSpace(logsDir) == "" {
		return nil, errors.New("invalid log directory: empty path")
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logsDir, err)
	}

	// 生成按日期命名的日志文件
	currentDate := time.Now().Format("20060102")
	logFileName := filepath.Join(logsDir, fmt.Sprintf("%s-%s.log", logFilePrefix, currentDate))

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFileName,
		MaxSize:    100, // megabytes
		MaxBackups: 0,
		MaxAge:     5, // days
		Compress:   true,
		LocalTime:  true,
	})

	logLevel := ParseLevel(level)
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(os.Stderr),
			logLevel,
		),
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			fileWriter,
			logLevel,
		),
	)

	return newFromCore(core), nil
}

// NewConsoleLogger 仅输出到 stderr
func NewConsoleLogger(level string) Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(os.Stderr),
		ParseLevel(level),
	)
	return newFromCore(core)
}

// NewNopLogger 丢弃所有日志
func NewNopLogger() Logger {
	return newFromCore(zapcore.NewNopCore())
}

func newFromCore(core zapcore.Core) Logger {
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &logger{
		log:   zapLogger,
		sugar: zapLogger.Sugar(),
	}
}

// 调试级日志
func (l *logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// 信息级日志
func (l *logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// 警告级日志
func (l *logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// 错误级日志
func (l *logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// 致命错误日志
func (l *logger) Fatal(format string, args ...any) {
	l.sugar.Fatalf(format, args...)
}
