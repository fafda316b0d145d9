package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandFailedTemplateConstant             = "%s exited with code %d"
	commandFailedWithOutputTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionFailedTemplateConstant    = "%s could not be executed: %v"
	commandStartedLogMessageConstant          = "shell command started"
	commandCompletedLogMessageConstant        = "shell command completed"
	commandFailedLogMessageConstant           = "shell command failed"
	commandExecutionFailedLogMessageConstant  = "shell command execution failed"
	logFieldCommandNameConstant               = "command"
	logFieldArgumentsConstant                 = "arguments"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldStandardErrorConstant             = "stderr"
	logFieldDescriptionConstant               = "description"
)

// CommandName identifies an executable supported by the shell executor.
type CommandName string

// Supported command names.
const (
	CommandGit CommandName = "git"
)

// ErrLoggerNotConfigured indicates that NewShellExecutor received a nil logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates that NewShellExecutor received a nil runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandDetails describes how a command is invoked.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports a command that could not be started or awaited.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran but returned a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, failure.Command.Name, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, failure.Command.Name, failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, failure.Command.Name, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs commands through a CommandRunner and records their lifecycle.
type ShellExecutor struct {
	logger           *zap.Logger
	runner           CommandRunner
	observer         CommandEventObserver
	messageFormatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor that logs through the provided logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor that additionally notifies the observer of command events.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{logger: logger, runner: runner, observer: observer}, nil
}

// Execute runs the command and converts non-zero exit codes into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(commandStartedLogMessageConstant, append(commandFields, zap.String(logFieldDescriptionConstant, executor.messageFormatter.BuildStartedMessage(command)))...)
	if executor.observer != nil {
		executor.observer.CommandStarted(command)
	}

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Warn(commandExecutionFailedLogMessageConstant, append(commandFields, zap.Error(runError), zap.String(logFieldDescriptionConstant, executor.messageFormatter.BuildExecutionFailureMessage(command, runError)))...)
		if executor.observer != nil {
			executor.observer.CommandExecutionFailed(command, runError)
		}
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	if executor.observer != nil {
		executor.observer.CommandCompleted(command, executionResult)
	}

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(commandFailedLogMessageConstant, append(commandFields,
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, strings.TrimSpace(executionResult.StandardError)),
			zap.String(logFieldDescriptionConstant, executor.messageFormatter.BuildFailureMessage(command, executionResult)),
		)...)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(commandCompletedLogMessageConstant, append(commandFields, zap.String(logFieldDescriptionConstant, executor.messageFormatter.BuildSuccessMessage(command, executionResult)))...)
	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}
