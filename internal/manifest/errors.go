package manifest

import (
	"errors"
	"fmt"
)

const (
	parseErrorTemplateConstant = "invalid manifest %s: %v"

	unexpectedRootElementMessageConstant  = "root element is not <manifest>"
	missingRootElementMessageConstant     = "document has no root element"
	multipleRootElementsMessageConstant   = "document has more than one root element"
	textOutsideRootMessageConstant        = "text outside the root element"
	mismatchedEndElementMessageConstant   = "unexpected end element"
	unclosedElementMessageConstant        = "element is not closed"
	includeCycleMessageConstant           = "include cycle"
	includeNameMissingMessageConstant     = "include without name attribute"
	duplicateDefaultMessageConstant       = "more than one <default> element"
	remoteNameMissingMessageConstant      = "remote without name attribute"
	duplicateRemoteMessageConstant        = "duplicate remote"
	projectNameMissingMessageConstant     = "project without name attribute"
	duplicateProjectPathMessageConstant   = "duplicate project path"
	projectRemoteMissingMessageConstant   = "project has no remote and no default remote is declared"
	undeclaredRemoteMessageConstant       = "project references undeclared remote"
	pathOutsideWorkspaceMessageConstant   = "project path escapes the workspace"
	unmatchedRemoveProjectMessageConstant = "remove-project matches no project"
	unmatchedExtendProjectMessageConstant = "extend-project matches no project"
)

// Sentinel causes reported inside ParseError.
var (
	ErrUnexpectedRootElement  = errors.New(unexpectedRootElementMessageConstant)
	ErrMissingRootElement     = errors.New(missingRootElementMessageConstant)
	ErrMultipleRootElements   = errors.New(multipleRootElementsMessageConstant)
	ErrTextOutsideRoot        = errors.New(textOutsideRootMessageConstant)
	ErrMismatchedEndElement   = errors.New(mismatchedEndElementMessageConstant)
	ErrUnclosedElement        = errors.New(unclosedElementMessageConstant)
	ErrIncludeCycle           = errors.New(includeCycleMessageConstant)
	ErrIncludeNameMissing     = errors.New(includeNameMissingMessageConstant)
	ErrDuplicateDefault       = errors.New(duplicateDefaultMessageConstant)
	ErrRemoteNameMissing      = errors.New(remoteNameMissingMessageConstant)
	ErrDuplicateRemote        = errors.New(duplicateRemoteMessageConstant)
	ErrProjectNameMissing     = errors.New(projectNameMissingMessageConstant)
	ErrDuplicateProjectPath   = errors.New(duplicateProjectPathMessageConstant)
	ErrProjectRemoteMissing   = errors.New(projectRemoteMissingMessageConstant)
	ErrUndeclaredRemote       = errors.New(undeclaredRemoteMessageConstant)
	ErrPathOutsideWorkspace   = errors.New(pathOutsideWorkspaceMessageConstant)
	ErrUnmatchedRemoveProject = errors.New(unmatchedRemoveProjectMessageConstant)
	ErrUnmatchedExtendProject = errors.New(unmatchedExtendProjectMessageConstant)
)

// ParseError reports a manifest that cannot be read, decoded, expanded, or validated.
type ParseError struct {
	ManifestPath string
	Cause        error
}

// Error describes the malformed manifest.
func (parseError *ParseError) Error() string {
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.ManifestPath, parseError.Cause)
}

// Unwrap exposes the underlying cause.
func (parseError *ParseError) Unwrap() error {
	return parseError.Cause
}

func newParseError(manifestPath string, cause error) error {
	var existing *ParseError
	if errors.As(cause, &existing) {
		return cause
	}
	return &ParseError{ManifestPath: manifestPath, Cause: cause}
}
