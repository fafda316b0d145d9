// Package cli constructs the manifest-lock command-line interface, wiring the
// Cobra command, configuration loader, and structured logging primitives.
package cli
