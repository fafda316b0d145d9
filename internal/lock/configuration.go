package lock

import "strings"

const (
	// ResolverGit resolves commits by running git in each checkout.
	ResolverGit = "git"
	// ResolverNative resolves commits in process from the repository metadata.
	ResolverNative = "native"

	defaultInputPathConstant  = "default.xml"
	defaultOutputPathConstant = "locked.xml"

	configurationInputKeyConstant     = "input"
	configurationOutputKeyConstant    = "output"
	configurationWorkspaceKeyConstant = "workspace"
	configurationResolverKeyConstant  = "resolver"
)

// CommandConfiguration captures persisted configuration for the lock command.
type CommandConfiguration struct {
	InputPath     string `mapstructure:"input"`
	OutputPath    string `mapstructure:"output"`
	WorkspacePath string `mapstructure:"workspace"`
	Resolver      string `mapstructure:"resolver"`
}

// DefaultCommandConfiguration returns baseline configuration values for locking.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		InputPath:     defaultInputPathConstant,
		OutputPath:    defaultOutputPathConstant,
		WorkspacePath: "",
		Resolver:      ResolverGit,
	}
}

// DefaultConfigurationValues returns the configuration defaults keyed beneath rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationInputKeyConstant:     defaults.InputPath,
		rootKey + "." + configurationOutputKeyConstant:    defaults.OutputPath,
		rootKey + "." + configurationWorkspaceKeyConstant: defaults.WorkspacePath,
		rootKey + "." + configurationResolverKeyConstant:  defaults.Resolver,
	}
}

// Sanitize trims configured values and restores defaults for empty paths.
// An empty workspace stays empty; it is derived from the input manifest location.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.InputPath = strings.TrimSpace(configuration.InputPath)
	if len(sanitized.InputPath) == 0 {
		sanitized.InputPath = defaultInputPathConstant
	}
	sanitized.OutputPath = strings.TrimSpace(configuration.OutputPath)
	if len(sanitized.OutputPath) == 0 {
		sanitized.OutputPath = defaultOutputPathConstant
	}
	sanitized.WorkspacePath = strings.TrimSpace(configuration.WorkspacePath)
	sanitized.Resolver = strings.ToLower(strings.TrimSpace(configuration.Resolver))
	if len(sanitized.Resolver) == 0 {
		sanitized.Resolver = ResolverGit
	}

	return sanitized
}
