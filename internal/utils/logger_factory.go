package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelMessageConstant  = "unsupported log level"
	unsupportedLogFormatMessageConstant = "unsupported log format"
	unsupportedValueTemplateConstant    = "%w: %q"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Supported log formats. Structured emits one JSON object per line.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

var (
	// ErrUnsupportedLogLevel indicates a log level outside LogLevelDebug..LogLevelError.
	ErrUnsupportedLogLevel = errors.New(unsupportedLogLevelMessageConstant)
	// ErrUnsupportedLogFormat indicates a log format other than structured or console.
	ErrUnsupportedLogFormat = errors.New(unsupportedLogFormatMessageConstant)
)

// LoggerFactory builds zap loggers writing to a single destination. The
// destination defaults to standard error so standard output stays reserved for
// manifests written with -o -.
type LoggerFactory struct {
	destination zapcore.WriteSyncer
}

// NewLoggerFactory constructs a factory whose loggers write to standard error.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{destination: zapcore.Lock(os.Stderr)}
}

// NewLoggerFactoryWithOutput constructs a factory whose loggers write to destination.
func NewLoggerFactoryWithOutput(destination io.Writer) *LoggerFactory {
	return &LoggerFactory{destination: zapcore.Lock(zapcore.AddSync(destination))}
}

// ParseLogLevel maps a configured level, matched case-insensitively after trimming, onto zap.
func ParseLogLevel(requestedLogLevel LogLevel) (zapcore.Level, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(string(requestedLogLevel)))) {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedValueTemplateConstant, ErrUnsupportedLogLevel, requestedLogLevel)
	}
}

// ParseLogFormat normalizes a configured format.
func ParseLogFormat(requestedLogFormat LogFormat) (LogFormat, error) {
	normalizedLogFormat := LogFormat(strings.ToLower(strings.TrimSpace(string(requestedLogFormat))))
	if normalizedLogFormat != LogFormatStructured && normalizedLogFormat != LogFormatConsole {
		return "", fmt.Errorf(unsupportedValueTemplateConstant, ErrUnsupportedLogFormat, requestedLogFormat)
	}
	return normalizedLogFormat, nil
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelError := ParseLogLevel(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}
	logFormat, formatError := ParseLogFormat(requestedLogFormat)
	if formatError != nil {
		return nil, formatError
	}

	destination := factory.destination
	if destination == nil {
		destination = zapcore.Lock(os.Stderr)
	}

	if logFormat == LogFormatConsole {
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfiguration), destination, zapLogLevel)
		return zap.New(core), nil
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), destination, zapLogLevel)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
