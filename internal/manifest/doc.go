// Package manifest reads, validates, and writes repo-style workspace manifests.
//
// A manifest is kept as an ordered element tree so that every element and
// attribute the checkout tool understands survives a read-write cycle, while
// Remote, Default, and Project offer typed views over the elements the locker
// inspects. Loader expands include elements recursively and Encode produces
// the canonical two-space indented document.
package manifest
