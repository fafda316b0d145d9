package execshell

import (
	"fmt"
	"strings"
)

const (
	headQueryStartTemplateConstant            = "Reading HEAD of %s"
	headQuerySuccessTemplateConstant          = "%s is at %s"
	headQueryEmptyTemplateConstant            = "%s reported no commit for HEAD"
	headQueryFailureTemplateConstant          = "Could not read HEAD of %s (exit code %d%s)"
	headQueryExecutionFailureTemplateConstant = "Unable to run git in %s: %s"

	commandStartTemplateConstant            = "Running %s"
	commandSuccessTemplateConstant          = "Completed %s"
	commandFailureTemplateConstant          = "%s failed with exit code %d%s"
	commandExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"

	gitRevParseSubcommandNameConstant = "rev-parse"
	gitHeadArgumentConstant           = "HEAD"
	currentDirectoryLabelConstant     = "current directory"
	unknownFailureLabelConstant       = "unknown error"
	argumentSeparatorConstant         = " "
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
// HEAD queries are described in terms of the checkout; anything else echoes the command line.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	if checkout, isHeadQuery := describeHeadQuery(command); isHeadQuery {
		return fmt.Sprintf(headQueryStartTemplateConstant, checkout)
	}
	return fmt.Sprintf(commandStartTemplateConstant, describeCommandLine(command))
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	checkout, isHeadQuery := describeHeadQuery(command)
	if !isHeadQuery {
		return fmt.Sprintf(commandSuccessTemplateConstant, describeCommandLine(command))
	}
	commit := strings.TrimSpace(result.StandardOutput)
	if len(commit) == 0 {
		return fmt.Sprintf(headQueryEmptyTemplateConstant, checkout)
	}
	return fmt.Sprintf(headQuerySuccessTemplateConstant, checkout, commit)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	standardErrorSuffix := describeStandardError(result.StandardError)
	if checkout, isHeadQuery := describeHeadQuery(command); isHeadQuery {
		return fmt.Sprintf(headQueryFailureTemplateConstant, checkout, result.ExitCode, standardErrorSuffix)
	}
	return fmt.Sprintf(commandFailureTemplateConstant, describeCommandLine(command), result.ExitCode, standardErrorSuffix)
}

// BuildExecutionFailureMessage formats the message describing a command that could not be started or awaited.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	failureDescription := unknownFailureLabelConstant
	if failure != nil {
		failureDescription = failure.Error()
	}
	if checkout, isHeadQuery := describeHeadQuery(command); isHeadQuery {
		return fmt.Sprintf(headQueryExecutionFailureTemplateConstant, checkout, failureDescription)
	}
	return fmt.Sprintf(commandExecutionFailureTemplateConstant, describeCommandLine(command), failureDescription)
}

// describeHeadQuery recognizes git rev-parse invocations whose last argument is HEAD
// and returns the checkout they inspect.
func describeHeadQuery(command ShellCommand) (string, bool) {
	arguments := command.Details.Arguments
	if command.Name != CommandGit || len(arguments) < 2 {
		return "", false
	}
	if strings.TrimSpace(arguments[0]) != gitRevParseSubcommandNameConstant || strings.TrimSpace(arguments[len(arguments)-1]) != gitHeadArgumentConstant {
		return "", false
	}

	checkout := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(checkout) == 0 {
		checkout = currentDirectoryLabelConstant
	}
	return checkout, true
}

func describeCommandLine(command ShellCommand) string {
	commandLine := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), argumentSeparatorConstant)
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		commandLine += fmt.Sprintf(workingDirectorySuffixTemplateConstant, workingDirectory)
	}
	return commandLine
}

func describeStandardError(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}
