// Package suggest generates workspace layout proposals from a natural
// language description using an LLM.
//
// The LLM only proposes — it returns a layout descriptor in the same JSON
// shape the store persists, and the user reviews the proposal in the
// interactive editor before anything is compiled or saved.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/txmux/tx/internal/layout"
)

// Suggester turns a workspace description into a layout proposal.
type Suggester interface {
	// Suggest asks the LLM for a layout matching the description.
	Suggest(ctx context.Context, description string) (layout.Layout, error)

	// Provider returns the provider name (e.g., "anthropic", "openai").
	Provider() string

	// Model returns the model name used for generation.
	Model() string
}

// parseLayout decodes the LLM response text into a Layout and normalizes it
// so the model invariants hold: pane 0 loses any split the LLM put on it,
// and a missing pane list becomes the single root pane.
func parseLayout(text string) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal([]byte(text), &l); err != nil {
		return layout.Layout{}, fmt.Errorf("parsing LLM response as layout JSON: %w\nraw response: %s", err, text)
	}
	if len(l.Panes) == 0 {
		l.Panes = []layout.Pane{{}}
	}
	l.Panes[0].Split = ""
	if err := l.Validate(); err != nil {
		return layout.Layout{}, fmt.Errorf("LLM proposed an invalid layout: %w", err)
	}
	return l, nil
}

// stripMarkdownFences removes a surrounding ```json ... ``` block if the
// model wrapped its response in one.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
