package lock

import (
	"errors"
	"fmt"
)

const (
	manifestLoaderMissingMessageConstant  = "manifest loader not configured"
	commitResolverMissingMessageConstant  = "commit resolver not configured"
	inputPathRequiredMessageConstant      = "input manifest path must be provided"
	outputPathRequiredMessageConstant     = "output manifest path must be provided"
	workspacePathRequiredMessageConstant  = "workspace path must be provided"
	outputOverwritesInputMessageConstant  = "output manifest must not overwrite the input manifest"
	notADirectoryMessageConstant          = "checkout path is not a directory"
	notACheckoutMessageConstant           = "directory is not a git checkout"
	unknownResolverMessageConstant        = "unknown commit resolver"
	missingProjectErrorTemplateConstant   = "project %s: checkout %s does not exist"
	unresolvedCommitErrorTemplateConstant = "project %s: unable to resolve current commit: %v"
)

var (
	// ErrManifestLoaderNotConfigured indicates the manifest loader dependency was missing.
	ErrManifestLoaderNotConfigured = errors.New(manifestLoaderMissingMessageConstant)
	// ErrCommitResolverNotConfigured indicates the commit resolver dependency was missing.
	ErrCommitResolverNotConfigured = errors.New(commitResolverMissingMessageConstant)
	// ErrInputPathRequired indicates an empty input manifest path.
	ErrInputPathRequired = errors.New(inputPathRequiredMessageConstant)
	// ErrOutputPathRequired indicates an empty output manifest path.
	ErrOutputPathRequired = errors.New(outputPathRequiredMessageConstant)
	// ErrWorkspacePathRequired indicates an empty workspace root.
	ErrWorkspacePathRequired = errors.New(workspacePathRequiredMessageConstant)
	// ErrOutputOverwritesInput indicates the input and output paths name the same file.
	ErrOutputOverwritesInput = errors.New(outputOverwritesInputMessageConstant)
	// ErrNotADirectory indicates a project path that exists but is not a directory.
	ErrNotADirectory = errors.New(notADirectoryMessageConstant)
	// ErrNotACheckout indicates a project directory without a .git entry.
	ErrNotACheckout = errors.New(notACheckoutMessageConstant)
	// ErrUnknownResolver indicates a commit resolver name other than git or native.
	ErrUnknownResolver = errors.New(unknownResolverMessageConstant)
)

// MissingProjectError reports a project whose checkout directory is absent from the workspace.
type MissingProjectError struct {
	ProjectPath  string
	CheckoutPath string
}

// Error names the project that could not be located.
func (missingError MissingProjectError) Error() string {
	return fmt.Sprintf(missingProjectErrorTemplateConstant, missingError.ProjectPath, missingError.CheckoutPath)
}

// UnresolvedCommitError reports a project whose current commit could not be determined.
type UnresolvedCommitError struct {
	ProjectPath string
	Cause       error
}

// Error names the project and the underlying failure.
func (unresolvedError UnresolvedCommitError) Error() string {
	return fmt.Sprintf(unresolvedCommitErrorTemplateConstant, unresolvedError.ProjectPath, unresolvedError.Cause)
}

// Unwrap exposes the underlying failure.
func (unresolvedError UnresolvedCommitError) Unwrap() error {
	return unresolvedError.Cause
}
