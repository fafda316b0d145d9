package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/manifestlock/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant      = "git executor not configured"
	repositoryPathRequiredMessageConstant  = "repository path must be provided"
	invalidCommitIdentifierMessageConstant = "not a full commit identifier"
	headResolutionErrorTemplateConstant    = "unable to resolve HEAD: %w"
	invalidCommitTemplateConstant          = "%w: %q"
	gitRevParseSubcommandConstant          = "rev-parse"
	gitVerifyFlagConstant                  = "--verify"
	gitHeadReferenceConstant               = "HEAD"
	sha1HexLengthConstant                  = 40
	sha256HexLengthConstant                = 64
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrInvalidCommitIdentifier indicates git returned something other than a full object name.
var ErrInvalidCommitIdentifier = errors.New(invalidCommitIdentifierMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager inspects local repositories through git.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ResolveHeadCommit returns the full object name of the commit checked out in repositoryPath.
func (manager *RepositoryManager) ResolveHeadCommit(executionContext context.Context, repositoryPath string) (string, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return "", ErrRepositoryPathRequired
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: trimmedRepositoryPath,
	})
	if executionError != nil {
		return "", fmt.Errorf(headResolutionErrorTemplateConstant, executionError)
	}

	commitIdentifier := strings.TrimSpace(executionResult.StandardOutput)
	if !IsFullCommitIdentifier(commitIdentifier) {
		return "", fmt.Errorf(invalidCommitTemplateConstant, ErrInvalidCommitIdentifier, commitIdentifier)
	}
	return commitIdentifier, nil
}

// IsFullCommitIdentifier reports whether value is a full lowercase SHA-1 or SHA-256 object name.
func IsFullCommitIdentifier(value string) bool {
	if len(value) != sha1HexLengthConstant && len(value) != sha256HexLengthConstant {
		return false
	}
	for _, character := range value {
		isDigit := character >= '0' && character <= '9'
		isLowerHex := character >= 'a' && character <= 'f'
		if !isDigit && !isLowerHex {
			return false
		}
	}
	return true
}
