// Package gitrepo answers questions about local git checkouts.
//
// RepositoryManager runs git through an injected executor so that the
// checkout state a manifest is locked against can be queried, and stubbed in
// tests, without touching the network. NativeCommitResolver answers the same
// question in process by reading the repository metadata with go-git.
package gitrepo
