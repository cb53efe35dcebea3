// Package server runs the vault daemon lifecycle.
//
// It starts the background workers, waits for a stop signal and shuts the
// workers down gracefully.
package server
