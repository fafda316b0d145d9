// Package ui renders git command lifecycle events as concise console lines.
//
// Structured telemetry keeps flowing through the diagnostic zap logger; this
// package only covers the human-readable log format.
package ui
