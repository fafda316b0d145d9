// Package dependencies supplies default collaborators when callers do not inject their own.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/manifestlock/internal/execshell"
	"github.com/temirov/manifestlock/internal/filesystem"
	"github.com/temirov/manifestlock/internal/gitrepo"
	"github.com/temirov/manifestlock/internal/ui"
)

// FileSystem is the union of file operations needed by manifest-lock services.
type FileSystem interface {
	filesystem.Reader
	filesystem.Writer
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing FileSystem) FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging additionally renders command events through the console event logger.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	var eventObserver execshell.CommandEventObserver
	if humanReadableLogging {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), eventObserver)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryManager constructs a repository manager from the executor.
func ResolveRepositoryManager(executor gitrepo.GitExecutor) (*gitrepo.RepositoryManager, error) {
	return gitrepo.NewRepositoryManager(executor)
}
