package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/manifestlock/internal/utils"
)

const (
	testLoggerFactorySubtestTemplateConstant = "%d_%s"
	testLogMessageConstant                   = "logger_factory_test_message"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectedError       error
		expectStructuredLog bool
		expectSuppressed    bool
	}{
		{
			name:                "debug_structured",
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:               "info_console",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:                "mixed_case_values_are_normalized",
			requestedLogLevel:   utils.LogLevel(" INFO "),
			requestedLogFormat:  utils.LogFormat("Structured"),
			expectStructuredLog: true,
		},
		{
			name:               "error_level_suppresses_info",
			requestedLogLevel:  utils.LogLevelError,
			requestedLogFormat: utils.LogFormatConsole,
			expectSuppressed:   true,
		},
		{
			name:               "unsupported_log_level",
			requestedLogLevel:  utils.LogLevel("verbose"),
			requestedLogFormat: utils.LogFormatStructured,
			expectedError:      utils.ErrUnsupportedLogLevel,
		},
		{
			name:               "unsupported_log_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat("xml"),
			expectedError:      utils.ErrUnsupportedLogFormat,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			var capturedOutput bytes.Buffer
			logger, creationError := utils.NewLoggerFactoryWithOutput(&capturedOutput).CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, creationError, testCase.expectedError)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			logger.Info(testLogMessageConstant)
			require.NoError(testInstance, logger.Sync())

			trimmedOutput := bytes.TrimSpace(capturedOutput.Bytes())
			if testCase.expectSuppressed {
				require.Empty(testInstance, trimmedOutput)
				return
			}
			require.Contains(testInstance, string(trimmedOutput), testLogMessageConstant)
			require.Equal(testInstance, testCase.expectStructuredLog, json.Valid(trimmedOutput))
		})
	}
}

func TestParseLogLevel(testInstance *testing.T) {
	parsedLevel, parseError := utils.ParseLogLevel(" Warn ")
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, zapcore.WarnLevel, parsedLevel)

	_, parseError = utils.ParseLogLevel("fatal")
	require.ErrorIs(testInstance, parseError, utils.ErrUnsupportedLogLevel)
	require.ErrorContains(testInstance, parseError, `"fatal"`)
}
