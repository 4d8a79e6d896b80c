// Package compiler turns a layout into a replayable tmux setup script.
//
// Compilation is a pure, deterministic transform: the same layout always
// produces byte-identical output. It happens in two steps — the layout is
// first lowered to an ordered list of typed command records (the ops), and
// the ops are then rendered to shell text in a single serialization pass.
// Ordering logic lives in the lowering step; quoting lives only in the
// renderer.
//
// The generated script has a fixed skeleton:
//
//	1. shebang + SESSION/BASE_DIR variables
//	2. has-session guard: attach and exit if the session already runs
//	3. detached new-session rooted in the base directory
//	4. one split-window per pane 1..n-1, in order
//	5. select-pane + resize-pane for every pane with a resize rule
//	6. send-keys for every pane with a startup command
//	7. select pane 0, attach
//
// Splits always target the currently active pane, which tmux makes the most
// recently created one. That is why pane order alone determines the visual
// tree: the compiler never computes geometry, it replays split order.
package compiler

import (
	"fmt"
	"strings"

	"github.com/txmux/tx/internal/layout"
)

// OpKind discriminates the typed command records.
type OpKind int

const (
	// OpNewSession creates the detached session with pane 0.
	OpNewSession OpKind = iota
	// OpSplit creates one pane by splitting the active pane.
	OpSplit
	// OpSelectPane makes a pane the active pane.
	OpSelectPane
	// OpResize resizes the active pane on one axis.
	OpResize
	// OpSendKeys types a command plus Enter into a pane.
	OpSendKeys
	// OpAttach attaches the client to the session.
	OpAttach
)

// Op is one typed command record. Which fields are meaningful depends on
// Kind; unused fields stay zero.
type Op struct {
	Kind OpKind

	// Split orientation (OpSplit).
	Split layout.Split
	// Dir is the pane working directory (OpSplit). Empty means the
	// script-level base-directory variable.
	Dir string
	// Pane is the 0-based pane index (OpSelectPane, OpSendKeys).
	Pane int
	// Dim and Amount describe a resize (OpResize).
	Dim    layout.Dimension
	Amount int
	// Keys is the literal command text (OpSendKeys).
	Keys string
}

// Script is a compiled layout: session identity plus the ordered ops.
type Script struct {
	Session string
	BaseDir string
	Ops     []Op
}

// Compile lowers a layout into a Script. The layout must satisfy the model
// invariants; Compile itself never fails on a valid layout.
func Compile(l layout.Layout) Script {
	s := Script{Session: l.Name, BaseDir: l.BaseDir}

	s.Ops = append(s.Ops, Op{Kind: OpNewSession})

	// Phase 1: splits, in pane order.
	for _, p := range l.Panes[1:] {
		s.Ops = append(s.Ops, Op{Kind: OpSplit, Split: p.Split, Dir: p.Dir})
	}

	// Phase 2: resizes, in pane order. Select first so the resize applies
	// to the right pane.
	for i, p := range l.Panes {
		if p.Resize == nil {
			continue
		}
		s.Ops = append(s.Ops,
			Op{Kind: OpSelectPane, Pane: i},
			Op{Kind: OpResize, Dim: p.Resize.Dim, Amount: p.Resize.Amount},
		)
	}

	// Phase 3: startup commands, in pane order.
	for i, p := range l.Panes {
		if p.Command == "" {
			continue
		}
		s.Ops = append(s.Ops, Op{Kind: OpSendKeys, Pane: i, Keys: p.Command})
	}

	s.Ops = append(s.Ops,
		Op{Kind: OpSelectPane, Pane: 0},
		Op{Kind: OpAttach},
	)

	return s
}

// Render serializes the script to shell text.
func (s Script) Render() string {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "SESSION=%s\n", Quote(s.Session))
	fmt.Fprintf(&b, "BASE_DIR=%s\n", Quote(s.BaseDir))
	b.WriteString("\n")
	b.WriteString("if tmux has-session -t \"$SESSION\" 2>/dev/null; then\n")
	b.WriteString("\ttmux attach-session -t \"$SESSION\"\n")
	b.WriteString("\texit 0\n")
	b.WriteString("fi\n")
	b.WriteString("\n")

	for _, op := range s.Ops {
		b.WriteString(renderOp(op))
		b.WriteString("\n")
	}

	return b.String()
}

// renderOp renders a single op as one tmux invocation.
func renderOp(op Op) string {
	switch op.Kind {
	case OpNewSession:
		return `tmux new-session -d -s "$SESSION" -c "$BASE_DIR"`
	case OpSplit:
		flag := "-h"
		if op.Split == layout.SplitVertical {
			flag = "-v"
		}
		dir := `"$BASE_DIR"`
		if op.Dir != "" {
			dir = Quote(op.Dir)
		}
		return fmt.Sprintf(`tmux split-window %s -t "$SESSION":0 -c %s`, flag, dir)
	case OpSelectPane:
		return fmt.Sprintf(`tmux select-pane -t "$SESSION":0.%d`, op.Pane)
	case OpResize:
		flag := "-x"
		if op.Dim == layout.DimHeight {
			flag = "-y"
		}
		return fmt.Sprintf(`tmux resize-pane %s %d`, flag, op.Amount)
	case OpSendKeys:
		return fmt.Sprintf(`tmux send-keys -t "$SESSION":0.%d %s C-m`, op.Pane, Quote(op.Keys))
	case OpAttach:
		return `tmux attach-session -t "$SESSION"`
	}
	return ""
}

// Quote single-quotes a value for use as one shell word. Embedded single
// quotes are closed, escaped, and reopened ('\''), so directory and command
// values containing shell metacharacters can never corrupt the script or
// smuggle in extra commands.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
