package utils

import (
	"context"
	"slices"
)

type executionMetadataContextKey struct{}

// ExecutionMetadata records where a running command took its settings from.
type ExecutionMetadata struct {
	ConfigurationFilePath string
	EnvironmentFiles      []string
}

// CommandContextAccessor stores and retrieves ExecutionMetadata on command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithExecutionMetadata returns a child of parentContext carrying a copy of metadata.
func (accessor CommandContextAccessor) WithExecutionMetadata(parentContext context.Context, metadata ExecutionMetadata) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	metadata.EnvironmentFiles = slices.Clone(metadata.EnvironmentFiles)
	return context.WithValue(parentContext, executionMetadataContextKey{}, metadata)
}

// ExecutionMetadata extracts the metadata attached by WithExecutionMetadata.
func (accessor CommandContextAccessor) ExecutionMetadata(executionContext context.Context) (ExecutionMetadata, bool) {
	if executionContext == nil {
		return ExecutionMetadata{}, false
	}
	metadata, available := executionContext.Value(executionMetadataContextKey{}).(ExecutionMetadata)
	return metadata, available
}

// ConfigurationFilePath reports the configuration file the command loaded, if any.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	metadata, available := accessor.ExecutionMetadata(executionContext)
	if !available || len(metadata.ConfigurationFilePath) == 0 {
		return "", false
	}
	return metadata.ConfigurationFilePath, true
}
