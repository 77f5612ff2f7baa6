package render

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/netwatch/internal/engine"
)

// Bridge adapts the engine's Renderer interface to a running Bubble Tea
// program via program.Send(). Send is goroutine-safe, so the engine can emit
// snapshots from its own loop.
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a bridge that forwards snapshots to the given program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// Render forwards one snapshot to the TUI.
func (b *Bridge) Render(s engine.Snapshot) {
	b.program.Send(snapshotMsg(s))
}
