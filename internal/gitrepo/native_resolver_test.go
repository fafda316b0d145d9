package gitrepo_test

import (
	"context"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/temirov/manifestlock/internal/gitrepo"
)

func initializeRepository(testInstance *testing.T, commitCount int) (string, string) {
	testInstance.Helper()

	repositoryPath := testInstance.TempDir()
	repository, initError := git.PlainInit(repositoryPath, false)
	require.NoError(testInstance, initError)

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	var lastCommit plumbing.Hash
	for commitIndex := 0; commitIndex < commitCount; commitIndex++ {
		commitHash, commitError := worktree.Commit("snapshot", &git.CommitOptions{
			AllowEmptyCommits: true,
			Author: &object.Signature{
				Name:  "Manifest Lock",
				Email: "lock@example.com",
				When:  time.Date(2024, time.January, 1, 0, 0, commitIndex, 0, time.UTC),
			},
		})
		require.NoError(testInstance, commitError)
		lastCommit = commitHash
	}

	return repositoryPath, lastCommit.String()
}

func TestNativeCommitResolverReadsHead(testInstance *testing.T) {
	repositoryPath, expectedCommit := initializeRepository(testInstance, 2)

	commit, resolveError := gitrepo.NewNativeCommitResolver().ResolveHeadCommit(context.Background(), repositoryPath)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, expectedCommit, commit)
	require.True(testInstance, gitrepo.IsFullCommitIdentifier(commit))
}

func TestNativeCommitResolverFailures(testInstance *testing.T) {
	unbornRepositoryPath, _ := initializeRepository(testInstance, 0)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	testCases := []struct {
		name           string
		executionCtx   context.Context
		repositoryPath string
		expectedError  error
	}{
		{name: "empty_path", executionCtx: context.Background(), repositoryPath: "  ", expectedError: gitrepo.ErrRepositoryPathRequired},
		{name: "not_a_repository", executionCtx: context.Background(), repositoryPath: testInstance.TempDir(), expectedError: git.ErrRepositoryNotExists},
		{name: "unborn_head", executionCtx: context.Background(), repositoryPath: unbornRepositoryPath, expectedError: plumbing.ErrReferenceNotFound},
		{name: "cancelled", executionCtx: cancelledContext, repositoryPath: unbornRepositoryPath, expectedError: context.Canceled},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, resolveError := gitrepo.NewNativeCommitResolver().ResolveHeadCommit(testCase.executionCtx, testCase.repositoryPath)
			require.ErrorIs(testInstance, resolveError, testCase.expectedError)
		})
	}
}
