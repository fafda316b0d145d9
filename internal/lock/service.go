package lock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/manifestlock/internal/dependencies"
	"github.com/temirov/manifestlock/internal/manifest"
)

const (
	// StandardOutputPath directs the locked manifest to standard output instead of a file.
	StandardOutputPath = "-"

	gitDirectoryNameConstant          = ".git"
	partialFileSuffixConstant         = ".partial"
	lockedManifestPermissionsConstant = fs.FileMode(0o644)

	manifestLoadErrorTemplateConstant    = "unable to load manifest: %w"
	partialWriteErrorTemplateConstant    = "unable to write %s: %w"
	publishErrorTemplateConstant         = "unable to publish %s: %w"
	inspectCheckoutErrorTemplateConstant = "unable to inspect %s: %w"

	logMessageManifestLoadedConstant  = "Manifest loaded"
	logMessageProjectLockedConstant   = "Project locked"
	logMessageProjectFailedConstant   = "Project could not be locked"
	logMessageManifestWrittenConstant = "Locked manifest written"
	logFieldManifestPathConstant      = "manifest"
	logFieldWorkspacePathConstant     = "workspace"
	logFieldProjectCountConstant      = "projects"
	logFieldProjectPathConstant       = "project"
	logFieldFloatingRevisionConstant  = "revision"
	logFieldCommitConstant            = "commit"
	logFieldOutputPathConstant        = "output"
)

// ManifestLoader reads and expands a manifest document.
type ManifestLoader interface {
	Load(manifestPath string) (*manifest.Manifest, error)
}

// CommitResolver reports the commit currently checked out in a repository.
type CommitResolver interface {
	ResolveHeadCommit(executionContext context.Context, repositoryPath string) (string, error)
}

// ServiceDependencies describes the collaborators required for locking.
type ServiceDependencies struct {
	Logger         *zap.Logger
	ManifestLoader ManifestLoader
	CommitResolver CommitResolver
	FileSystem     dependencies.FileSystem
}

// Options configures a single locking run.
type Options struct {
	InputPath     string
	OutputPath    string
	WorkspacePath string
}

// LockedProject records how one project was pinned.
type LockedProject struct {
	Name             string
	Path             string
	FloatingRevision string
	Commit           string
}

// Result captures the locked manifest and the per-project outcome.
type Result struct {
	Manifest *manifest.Manifest
	Document []byte
	Projects []LockedProject
}

// Service locks manifests against a local workspace.
type Service struct {
	logger         *zap.Logger
	manifestLoader ManifestLoader
	commitResolver CommitResolver
	fileSystem     dependencies.FileSystem
}

// NewService constructs a Service from the provided dependencies.
func NewService(serviceDependencies ServiceDependencies) (*Service, error) {
	if serviceDependencies.ManifestLoader == nil {
		return nil, ErrManifestLoaderNotConfigured
	}
	if serviceDependencies.CommitResolver == nil {
		return nil, ErrCommitResolverNotConfigured
	}

	logger := serviceDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:         logger,
		manifestLoader: serviceDependencies.ManifestLoader,
		commitResolver: serviceDependencies.CommitResolver,
		fileSystem:     dependencies.ResolveFileSystem(serviceDependencies.FileSystem),
	}, nil
}

// Lock resolves the current commit of every project and returns the pinned
// document. Nothing is written; when any project cannot be resolved the
// returned error joins every failure and the result is empty.
func (service *Service) Lock(executionContext context.Context, options Options) (Result, error) {
	if validationError := service.validateOptions(options); validationError != nil {
		return Result{}, validationError
	}

	floatingManifest, loadError := service.manifestLoader.Load(options.InputPath)
	if loadError != nil {
		return Result{}, fmt.Errorf(manifestLoadErrorTemplateConstant, loadError)
	}

	lockedManifest := floatingManifest.Clone()
	projects := lockedManifest.Projects()
	service.logger.Debug(
		logMessageManifestLoadedConstant,
		zap.String(logFieldManifestPathConstant, options.InputPath),
		zap.String(logFieldWorkspacePathConstant, options.WorkspacePath),
		zap.Int(logFieldProjectCountConstant, len(projects)),
	)

	lockedProjects := make([]LockedProject, 0, len(projects))
	var projectErrors []error

	for _, project := range projects {
		if contextError := executionContext.Err(); contextError != nil {
			return Result{}, contextError
		}

		commit, resolutionError := service.resolveProjectCommit(executionContext, options.WorkspacePath, project)
		if resolutionError != nil {
			if contextError := executionContext.Err(); contextError != nil {
				return Result{}, contextError
			}
			service.logger.Warn(
				logMessageProjectFailedConstant,
				zap.String(logFieldProjectPathConstant, project.CheckoutPath()),
				zap.Error(resolutionError),
			)
			projectErrors = append(projectErrors, resolutionError)
			continue
		}

		project.Pin(commit)
		lockedProjects = append(lockedProjects, LockedProject{
			Name:             project.Name,
			Path:             project.CheckoutPath(),
			FloatingRevision: project.Revision,
			Commit:           commit,
		})
		service.logger.Debug(
			logMessageProjectLockedConstant,
			zap.String(logFieldProjectPathConstant, project.CheckoutPath()),
			zap.String(logFieldFloatingRevisionConstant, project.Revision),
			zap.String(logFieldCommitConstant, commit),
		)
	}

	if len(projectErrors) > 0 {
		return Result{}, errors.Join(projectErrors...)
	}

	return Result{
		Manifest: lockedManifest,
		Document: manifest.Encode(lockedManifest),
		Projects: lockedProjects,
	}, nil
}

// Publish writes the document to outputPath through a sibling partial file
// and a rename, so readers never observe a half-written manifest. An existing
// output file keeps its permission bits.
func (service *Service) Publish(outputPath string, document []byte) error {
	permissions := lockedManifestPermissionsConstant
	preservePermissions := false
	if existingInfo, statError := service.fileSystem.Stat(outputPath); statError == nil && existingInfo.Mode().IsRegular() {
		permissions = existingInfo.Mode().Perm()
		preservePermissions = true
	}

	partialPath := outputPath + partialFileSuffixConstant
	if writeError := service.fileSystem.WriteFile(partialPath, document, permissions); writeError != nil {
		_ = service.fileSystem.Remove(partialPath)
		return fmt.Errorf(partialWriteErrorTemplateConstant, partialPath, writeError)
	}
	if preservePermissions {
		if chmodError := service.fileSystem.Chmod(partialPath, permissions); chmodError != nil {
			_ = service.fileSystem.Remove(partialPath)
			return fmt.Errorf(partialWriteErrorTemplateConstant, partialPath, chmodError)
		}
	}

	if renameError := service.fileSystem.Rename(partialPath, outputPath); renameError != nil {
		_ = service.fileSystem.Remove(partialPath)
		return fmt.Errorf(publishErrorTemplateConstant, outputPath, renameError)
	}

	service.logger.Debug(logMessageManifestWrittenConstant, zap.String(logFieldOutputPathConstant, outputPath))
	return nil
}

func (service *Service) resolveProjectCommit(executionContext context.Context, workspacePath string, project manifest.Project) (string, error) {
	projectPath := project.CheckoutPath()
	checkoutPath := filepath.Join(workspacePath, filepath.FromSlash(projectPath))

	checkoutInfo, statError := service.fileSystem.Stat(checkoutPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return "", MissingProjectError{ProjectPath: projectPath, CheckoutPath: checkoutPath}
		}
		return "", UnresolvedCommitError{ProjectPath: projectPath, Cause: fmt.Errorf(inspectCheckoutErrorTemplateConstant, checkoutPath, statError)}
	}
	if !checkoutInfo.IsDir() {
		return "", UnresolvedCommitError{ProjectPath: projectPath, Cause: ErrNotADirectory}
	}

	if _, gitEntryError := service.fileSystem.Stat(filepath.Join(checkoutPath, gitDirectoryNameConstant)); gitEntryError != nil {
		return "", UnresolvedCommitError{ProjectPath: projectPath, Cause: ErrNotACheckout}
	}

	commit, commitError := service.commitResolver.ResolveHeadCommit(executionContext, checkoutPath)
	if commitError != nil {
		return "", UnresolvedCommitError{ProjectPath: projectPath, Cause: commitError}
	}
	return commit, nil
}

func (service *Service) validateOptions(options Options) error {
	trimmedInput := strings.TrimSpace(options.InputPath)
	if len(trimmedInput) == 0 {
		return ErrInputPathRequired
	}
	trimmedOutput := strings.TrimSpace(options.OutputPath)
	if len(trimmedOutput) == 0 {
		return ErrOutputPathRequired
	}
	if len(strings.TrimSpace(options.WorkspacePath)) == 0 {
		return ErrWorkspacePathRequired
	}
	if trimmedOutput != StandardOutputPath && service.canonicalPath(trimmedOutput) == service.canonicalPath(trimmedInput) {
		return ErrOutputOverwritesInput
	}
	return nil
}

// canonicalPath resolves symbolic links in the path, or in its directory when
// the file itself does not exist yet.
func (service *Service) canonicalPath(path string) string {
	cleanedPath := filepath.Clean(path)
	if resolvedPath, resolveError := service.fileSystem.EvalSymlinks(cleanedPath); resolveError == nil {
		return resolvedPath
	}
	if resolvedDirectory, resolveError := service.fileSystem.EvalSymlinks(filepath.Dir(cleanedPath)); resolveError == nil {
		return filepath.Join(resolvedDirectory, filepath.Base(cleanedPath))
	}
	return cleanedPath
}
