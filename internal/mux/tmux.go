package mux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// Tmux implements Multiplexer for tmux. Session queries go through the
// gotmux client; script execution is a plain child process so the attach
// at the end of the script inherits the terminal.
type Tmux struct {
	client *gotmux.Tmux
}

// NewTmux creates a tmux multiplexer. It fails when no tmux binary is
// available.
func NewTmux() (*Tmux, error) {
	if _, err := exec.LookPath("tmux"); err != nil {
		return nil, fmt.Errorf("tmux not found in PATH: %w", err)
	}
	client, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("creating tmux client: %w", err)
	}
	return &Tmux{client: client}, nil
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// HasSession reports whether a session with the given name is running.
// Any query failure (typically: no server running) counts as not running.
func (t *Tmux) HasSession(name string) bool {
	sessions, err := t.client.ListSessions()
	if err != nil {
		return false
	}
	for _, s := range sessions {
		if s.Name == name {
			return true
		}
	}
	return false
}

// ListSessions returns the names of all running sessions.
func (t *Tmux) ListSessions() ([]string, error) {
	sessions, err := t.client.ListSessions()
	if err != nil {
		// tmux errors out when no server is running; that simply
		// means no sessions.
		if strings.Contains(err.Error(), "no server") {
			return nil, nil
		}
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}
	names := make([]string, 0, len(sessions))
	for _, s := range sessions {
		names = append(names, s.Name)
	}
	return names, nil
}

// RunScript executes a workspace script with the terminal attached.
// The script ends in attach-session, so this blocks until the user
// detaches or the session ends. A non-zero exit propagates as an error.
func (t *Tmux) RunScript(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "/bin/sh", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}
