package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	emptyPathMessageConstant           = "path must not be empty"
	homeExpansionErrorTemplateConstant = "unable to expand %s: %w"
	homeShortcutConstant               = "~"
)

// ErrEmptyPath indicates that an empty path was supplied for resolution.
var ErrEmptyPath = errors.New(emptyPathMessageConstant)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// AbsolutePathProvider resolves a path to its absolute form.
type AbsolutePathProvider func(path string) (string, error)

// PathResolver turns manifest, output, and workspace arguments into clean absolute paths.
type PathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	absolutePathProvider  AbsolutePathProvider
}

// NewPathResolver constructs a PathResolver using the operating system lookups.
func NewPathResolver() *PathResolver {
	return NewPathResolverWithProviders(nil, nil)
}

// NewPathResolverWithProviders constructs a PathResolver with custom collaborators; nil values select the defaults.
func NewPathResolverWithProviders(homeDirectoryProvider HomeDirectoryProvider, absolutePathProvider AbsolutePathProvider) *PathResolver {
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	if absolutePathProvider == nil {
		absolutePathProvider = filepath.Abs
	}
	return &PathResolver{homeDirectoryProvider: homeDirectoryProvider, absolutePathProvider: absolutePathProvider}
}

// Resolve trims the candidate, expands a leading ~ or ~/ to the home directory,
// and returns the cleaned absolute path. Other ~user forms are taken literally.
func (resolver *PathResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return "", ErrEmptyPath
	}

	expandedPath, expansionError := resolver.expandHome(trimmedPath)
	if expansionError != nil {
		return "", expansionError
	}

	absolutePath, absoluteError := resolver.absolutePathProvider(expandedPath)
	if absoluteError != nil {
		return "", absoluteError
	}
	return filepath.Clean(absolutePath), nil
}

func (resolver *PathResolver) expandHome(candidatePath string) (string, error) {
	remainder, hasShortcut := strings.CutPrefix(candidatePath, homeShortcutConstant)
	if !hasShortcut {
		return candidatePath, nil
	}
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != filepath.Separator {
		return candidatePath, nil
	}

	homeDirectory, homeError := resolver.homeDirectoryProvider()
	if homeError == nil && len(homeDirectory) == 0 {
		homeError = os.ErrNotExist
	}
	if homeError != nil {
		return "", fmt.Errorf(homeExpansionErrorTemplateConstant, homeShortcutConstant, homeError)
	}
	return filepath.Join(homeDirectory, remainder), nil
}
