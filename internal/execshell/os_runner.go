package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// Git reads performed by the locker must not refresh index stat data, prompt for
// credentials, or localize diagnostics that end up in logs.
var gitReadOnlyEnvironment = []string{
	"GIT_OPTIONAL_LOCKS=0",
	"GIT_TERMINAL_PROMPT=0",
	"LC_ALL=C",
}

// Variables that redirect git to a repository other than the working directory.
var gitRepositorySelectionVariables = []string{
	"GIT_DIR",
	"GIT_WORK_TREE",
	"GIT_COMMON_DIR",
	"GIT_INDEX_FILE",
	"GIT_OBJECT_DIRECTORY",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES",
	"GIT_NAMESPACE",
}

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner executes commands as child processes of the current process.
type OSCommandRunner struct {
	environment []string
}

// NewOSCommandRunner constructs a runner that inherits the process environment
// and pins git to read-only, non-interactive behavior. Repository selection
// variables are dropped so git always inspects the working directory.
func NewOSCommandRunner() *OSCommandRunner {
	inheritedEnvironment := os.Environ()
	environment := make([]string, 0, len(inheritedEnvironment)+len(gitReadOnlyEnvironment))
	for _, assignment := range inheritedEnvironment {
		variableName, _, _ := strings.Cut(assignment, environmentAssignmentSeparatorConstant)
		if slices.Contains(gitRepositorySelectionVariables, variableName) {
			continue
		}
		environment = append(environment, assignment)
	}
	return &OSCommandRunner{environment: append(environment, gitReadOnlyEnvironment...)}
}

// Run starts the command and waits for it. A non-zero exit code is reported through the result, not the error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = runner.environment

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	exitCode := 0
	if runError := executable.Run(); runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) || executionContext.Err() != nil {
			return ExecutionResult{}, runError
		}
		exitCode = exitError.ExitCode()
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       exitCode,
	}, nil
}
