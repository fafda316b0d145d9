package gitrepo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/manifestlock/internal/execshell"
	"github.com/temirov/manifestlock/internal/gitrepo"
)

const (
	testRepositoryPathConstant = "/workspace/box"
	testSHA1CommitConstant     = "0123456789abcdef0123456789abcdef01234567"
)

var testSHA256CommitConstant = strings.Repeat("ab", 32)

type stubGitExecutor struct {
	result   execshell.ExecutionResult
	err      error
	recorded []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	return executor.result, executor.err
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	_, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
}

func TestResolveHeadCommit(testInstance *testing.T) {
	executorFailure := errors.New("fatal: not a git repository")

	testCases := []struct {
		name           string
		repositoryPath string
		result         execshell.ExecutionResult
		executorError  error
		expectedCommit string
		expectedError  error
		expectCommand  bool
	}{
		{
			name:           "sha1",
			repositoryPath: testRepositoryPathConstant,
			result:         execshell.ExecutionResult{StandardOutput: testSHA1CommitConstant + "\n"},
			expectedCommit: testSHA1CommitConstant,
			expectCommand:  true,
		},
		{
			name:           "sha256",
			repositoryPath: testRepositoryPathConstant,
			result:         execshell.ExecutionResult{StandardOutput: testSHA256CommitConstant},
			expectedCommit: testSHA256CommitConstant,
			expectCommand:  true,
		},
		{
			name:           "abbreviated_output",
			repositoryPath: testRepositoryPathConstant,
			result:         execshell.ExecutionResult{StandardOutput: "0123456\n"},
			expectedError:  gitrepo.ErrInvalidCommitIdentifier,
			expectCommand:  true,
		},
		{
			name:           "git_failure",
			repositoryPath: testRepositoryPathConstant,
			executorError:  executorFailure,
			expectedError:  executorFailure,
			expectCommand:  true,
		},
		{
			name:           "empty_path",
			repositoryPath: "  ",
			expectedError:  gitrepo.ErrRepositoryPathRequired,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{result: testCase.result, err: testCase.executorError}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			commit, resolveError := manager.ResolveHeadCommit(context.Background(), testCase.repositoryPath)
			if testCase.expectedError != nil {
				require.Error(testInstance, resolveError)
				require.True(testInstance, errors.Is(resolveError, testCase.expectedError))
				require.Empty(testInstance, commit)
			} else {
				require.NoError(testInstance, resolveError)
				require.Equal(testInstance, testCase.expectedCommit, commit)
			}

			if !testCase.expectCommand {
				require.Empty(testInstance, executor.recorded)
				return
			}
			require.Len(testInstance, executor.recorded, 1)
			require.Equal(testInstance, []string{"rev-parse", "--verify", "HEAD"}, executor.recorded[0].Arguments)
			require.Equal(testInstance, testRepositoryPathConstant, executor.recorded[0].WorkingDirectory)
		})
	}
}

func TestIsFullCommitIdentifier(testInstance *testing.T) {
	require.True(testInstance, gitrepo.IsFullCommitIdentifier(testSHA1CommitConstant))
	require.True(testInstance, gitrepo.IsFullCommitIdentifier(testSHA256CommitConstant))
	require.False(testInstance, gitrepo.IsFullCommitIdentifier("main"))
	require.False(testInstance, gitrepo.IsFullCommitIdentifier(strings.ToUpper(testSHA1CommitConstant)))
	require.False(testInstance, gitrepo.IsFullCommitIdentifier("refs/tags/v1.0.0"))
	require.False(testInstance, gitrepo.IsFullCommitIdentifier(""))
}
