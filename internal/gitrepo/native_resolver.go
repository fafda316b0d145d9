package gitrepo

import (
	"context"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
)

const (
	openRepositoryErrorTemplateConstant = "unable to open repository: %w"
	nativeHeadErrorTemplateConstant     = "unable to resolve HEAD: %w"
)

// NativeCommitResolver reads HEAD directly from the repository metadata
// without spawning a git process.
type NativeCommitResolver struct{}

// NewNativeCommitResolver constructs a NativeCommitResolver.
func NewNativeCommitResolver() *NativeCommitResolver {
	return &NativeCommitResolver{}
}

// ResolveHeadCommit returns the full object name of the commit checked out in repositoryPath.
// Checkouts whose .git entry is a file or a link into a shared object store are supported.
func (resolver *NativeCommitResolver) ResolveHeadCommit(executionContext context.Context, repositoryPath string) (string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", contextError
	}

	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return "", ErrRepositoryPathRequired
	}

	repository, openError := git.PlainOpenWithOptions(trimmedRepositoryPath, &git.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if openError != nil {
		return "", fmt.Errorf(openRepositoryErrorTemplateConstant, openError)
	}

	headReference, headError := repository.Head()
	if headError != nil {
		return "", fmt.Errorf(nativeHeadErrorTemplateConstant, headError)
	}

	commitIdentifier := headReference.Hash().String()
	if !IsFullCommitIdentifier(commitIdentifier) {
		return "", fmt.Errorf(invalidCommitTemplateConstant, ErrInvalidCommitIdentifier, commitIdentifier)
	}
	return commitIdentifier, nil
}
