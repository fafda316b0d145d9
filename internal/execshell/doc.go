// Package execshell runs external tools on behalf of manifest-lock.
//
// ShellExecutor logs every invocation through zap and notifies an optional
// CommandEventObserver; OSCommandRunner starts the child process with git
// pinned to read-only, non-interactive behavior so inspecting a checkout never
// rewrites its index.
package execshell
