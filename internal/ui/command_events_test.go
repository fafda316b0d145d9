package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/manifestlock/internal/execshell"
	"github.com/temirov/manifestlock/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant    = "/tmp/workspace/box"
	testResolvedCommitConstant             = "89abcdef0123456789abcdef0123456789abcdef"
	testExecutionFailureReasonConstant     = "execution failed"
	testStandardErrorMessageConstant       = "fatal: not a git repository"
	testStartMessageExpectationConstant    = "Reading HEAD of " + testCommandWorkingDirectoryConstant
	testSuccessMessageExpectationConstant  = testCommandWorkingDirectoryConstant + " is at " + testResolvedCommitConstant
	testFailureMessageExpectationConstant  = "Could not read HEAD of " + testCommandWorkingDirectoryConstant + " (exit code 128: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to run git in " + testCommandWorkingDirectoryConstant + ": " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"rev-parse", "--verify", "HEAD"},
			WorkingDirectory: testCommandWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{StandardOutput: testResolvedCommitConstant + "\n"})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_failed_exit_code",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestNilConsoleCommandEventLoggerIgnoresEvents(testInstance *testing.T) {
	var eventLogger *ui.ConsoleCommandEventLogger

	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{})
		eventLogger.CommandCompleted(execshell.ShellCommand{}, execshell.ExecutionResult{})
		eventLogger.CommandExecutionFailed(execshell.ShellCommand{}, nil)
	})
}
