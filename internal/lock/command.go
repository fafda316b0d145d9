package lock

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/manifestlock/internal/dependencies"
	"github.com/temirov/manifestlock/internal/gitrepo"
	"github.com/temirov/manifestlock/internal/manifest"
	"github.com/temirov/manifestlock/internal/utils"
	pathutils "github.com/temirov/manifestlock/internal/utils/path"
)

const (
	commandUseConstant                     = "lock"
	commandShortDescriptionConstant        = "Pin every manifest project to its checked out commit"
	commandLongDescriptionConstant         = "lock reads a floating manifest, resolves the commit currently checked out for every project in the local workspace, and writes a manifest with every revision pinned. Nothing is written when any project cannot be resolved."
	inputFlagNameConstant                  = "input"
	inputFlagShorthandConstant             = "i"
	inputFlagUsageConstant                 = "Floating manifest to lock"
	outputFlagNameConstant                 = "output"
	outputFlagShorthandConstant            = "o"
	outputFlagUsageConstant                = "Destination of the locked manifest (- for standard output)"
	workspaceFlagNameConstant              = "workspace"
	workspaceFlagShorthandConstant         = "w"
	workspaceFlagUsageConstant             = "Workspace root containing the project checkouts (defaults to the parent of the manifest directory)"
	resolverFlagNameConstant               = "resolver"
	resolverFlagUsageConstant              = "Commit resolver: git runs the git executable, native reads repositories in process"
	unknownResolverTemplateConstant        = "%w: %q"
	lockSummaryTemplateConstant            = "LOCKED: %d projects -> %s\n"
	commandExecutionErrorTemplateConstant  = "manifest lock failed: %w"
	pathResolutionErrorTemplateConstant    = "unable to resolve %s path: %w"
	repositoryManagerErrorTemplateConstant = "unable to construct repository manager: %w"
	outputWriteErrorTemplateConstant       = "unable to write locked manifest: %w"
	logMessageLockCompletedConstant        = "Manifest locked"
	logFieldConfigurationFileConstant      = "config_file"
	logFieldEnvironmentFilesConstant       = "environment_files"
)

type commandOptions struct {
	lockOptions  Options
	resolverKind string
}

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the lock Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	FileSystem                   dependencies.FileSystem
	PathResolver                 *pathutils.PathResolver
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the lock command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().StringP(inputFlagNameConstant, inputFlagShorthandConstant, defaults.InputPath, inputFlagUsageConstant)
	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, defaults.OutputPath, outputFlagUsageConstant)
	command.Flags().StringP(workspaceFlagNameConstant, workspaceFlagShorthandConstant, defaults.WorkspacePath, workspaceFlagUsageConstant)
	command.Flags().String(resolverFlagNameConstant, defaults.Resolver, resolverFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	parsedOptions, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}
	options := parsedOptions.lockOptions

	logger := builder.resolveLogger()
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	commitResolver, resolverError := builder.resolveCommitResolver(parsedOptions.resolverKind, logger)
	if resolverError != nil {
		return resolverError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:         logger,
		ManifestLoader: manifest.NewLoader(fileSystem),
		CommitResolver: commitResolver,
		FileSystem:     fileSystem,
	})
	if serviceError != nil {
		return serviceError
	}

	result, lockError := service.Lock(command.Context(), options)
	if lockError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, lockError)
	}

	if options.OutputPath == StandardOutputPath {
		if _, writeError := command.OutOrStdout().Write(result.Document); writeError != nil {
			return fmt.Errorf(outputWriteErrorTemplateConstant, writeError)
		}
	} else {
		if publishError := service.Publish(options.OutputPath, result.Document); publishError != nil {
			return fmt.Errorf(commandExecutionErrorTemplateConstant, publishError)
		}
		fmt.Fprintf(command.OutOrStdout(), lockSummaryTemplateConstant, len(result.Projects), options.OutputPath)
	}

	completionFields := []zap.Field{
		zap.String(logFieldManifestPathConstant, options.InputPath),
		zap.String(logFieldWorkspacePathConstant, options.WorkspacePath),
		zap.String(logFieldOutputPathConstant, options.OutputPath),
		zap.Int(logFieldProjectCountConstant, len(result.Projects)),
	}
	if metadata, available := utils.NewCommandContextAccessor().ExecutionMetadata(command.Context()); available {
		completionFields = append(completionFields,
			zap.String(logFieldConfigurationFileConstant, metadata.ConfigurationFilePath),
			zap.Strings(logFieldEnvironmentFilesConstant, metadata.EnvironmentFiles),
		)
	}
	logger.Info(logMessageLockCompletedConstant, completionFields...)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	inputPath := configuration.InputPath
	outputPath := configuration.OutputPath
	workspacePath := configuration.WorkspacePath
	resolverKind := configuration.Resolver

	if command != nil {
		if command.Flags().Changed(inputFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(inputFlagNameConstant)
			inputPath = strings.TrimSpace(flagValue)
		}
		if command.Flags().Changed(outputFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(outputFlagNameConstant)
			outputPath = strings.TrimSpace(flagValue)
		}
		if command.Flags().Changed(workspaceFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(workspaceFlagNameConstant)
			workspacePath = strings.TrimSpace(flagValue)
		}
		if command.Flags().Changed(resolverFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(resolverFlagNameConstant)
			resolverKind = strings.ToLower(strings.TrimSpace(flagValue))
		}
	}

	if resolverKind != ResolverGit && resolverKind != ResolverNative {
		return commandOptions{}, fmt.Errorf(unknownResolverTemplateConstant, ErrUnknownResolver, resolverKind)
	}

	pathResolver := builder.resolvePathResolver()

	resolvedInput, inputError := pathResolver.Resolve(inputPath)
	if inputError != nil {
		return commandOptions{}, fmt.Errorf(pathResolutionErrorTemplateConstant, inputFlagNameConstant, inputError)
	}

	resolvedOutput := outputPath
	if outputPath != StandardOutputPath {
		var outputError error
		resolvedOutput, outputError = pathResolver.Resolve(outputPath)
		if outputError != nil {
			return commandOptions{}, fmt.Errorf(pathResolutionErrorTemplateConstant, outputFlagNameConstant, outputError)
		}
	}

	var resolvedWorkspace string
	if len(workspacePath) == 0 {
		resolvedWorkspace = filepath.Dir(filepath.Dir(resolvedInput))
	} else {
		var workspaceError error
		resolvedWorkspace, workspaceError = pathResolver.Resolve(workspacePath)
		if workspaceError != nil {
			return commandOptions{}, fmt.Errorf(pathResolutionErrorTemplateConstant, workspaceFlagNameConstant, workspaceError)
		}
	}

	return commandOptions{
		lockOptions: Options{
			InputPath:     resolvedInput,
			OutputPath:    resolvedOutput,
			WorkspacePath: resolvedWorkspace,
		},
		resolverKind: resolverKind,
	}, nil
}

func (builder *CommandBuilder) resolveCommitResolver(resolverKind string, logger *zap.Logger) (CommitResolver, error) {
	if resolverKind == ResolverNative {
		return gitrepo.NewNativeCommitResolver(), nil
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLoggingEnabled())
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := dependencies.ResolveRepositoryManager(gitExecutor)
	if managerError != nil {
		return nil, fmt.Errorf(repositoryManagerErrorTemplateConstant, managerError)
	}
	return repositoryManager, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolvePathResolver() *pathutils.PathResolver {
	if builder.PathResolver != nil {
		return builder.PathResolver
	}
	return pathutils.NewPathResolver()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}
