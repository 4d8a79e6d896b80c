// Package mux is the terminal-multiplexer collaborator.
//
// It answers liveness questions (is a session with this name running, which
// sessions exist) and executes stored workspace scripts. It never interprets
// layout semantics — the compiled script carries those; this package is pure
// transport to tmux.
package mux

import "context"

// Multiplexer abstracts the terminal multiplexer operations tx depends on.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// HasSession reports whether a session with the given name is running.
	HasSession(name string) bool

	// ListSessions returns the names of all running sessions.
	// No running server counts as no sessions, not an error.
	ListSessions() ([]string, error)

	// RunScript executes a stored workspace script, inheriting the
	// terminal so the final attach-session takes over the client.
	RunScript(ctx context.Context, path string) error
}
