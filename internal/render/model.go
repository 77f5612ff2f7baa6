package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/netwatch/internal/engine"
	"github.com/rileyhilliard/netwatch/internal/fetch"
)

// snapshotMsg carries a fresh engine snapshot into the TUI.
type snapshotMsg engine.Snapshot

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyToggleHelp = "?"
	KeyCloseHelp  = "esc"
)

// Model is the Bubble Tea model for the watch screen. It is a passive view:
// the engine pushes snapshots in via the Bridge and the model only decides
// how to draw the latest one.
type Model struct {
	snap     engine.Snapshot
	received bool
	strip    []string
	width    int
	height   int
	showHelp bool
	quitting bool

	// Scrollable device list for terminals shorter than the list.
	listViewport  viewport.Model
	viewportReady bool
}

// NewModel creates a watch screen model.
func NewModel(stripSuffixes []string) Model {
	return Model{strip: stripSuffixes}
}

// Init implements tea.Model. Snapshots arrive via program.Send, so there is
// no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Reserve space for header and footer.
		headerHeight := 2
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.listViewport = viewport.New(m.width, viewportHeight)
			m.listViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.listViewport.Width = m.width
			m.listViewport.Height = viewportHeight
		}
		m.listViewport.SetContent(m.renderDevices())

	case snapshotMsg:
		m.snap = engine.Snapshot(msg)
		m.received = true
		if m.viewportReady {
			m.listViewport.SetContent(m.renderDevices())
		}
	}

	// Unhandled messages (arrow keys, mouse wheel) scroll the device list.
	if m.viewportReady {
		var cmd tea.Cmd
		m.listViewport, cmd = m.listViewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input. Returns true if the key was handled.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCloseHelp {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit
	}

	return false, nil
}

// View renders the watch screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	list := m.renderDevices()
	if m.viewportReady {
		list = m.listViewport.View()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(list)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title bar with summary stats.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("netwatch")

	if !m.received {
		return HeaderStyle.Render(title + StatsStyle.Render(" | waiting for first cycle"))
	}

	up := 0
	for _, e := range m.snap.Entries {
		if e.Reachable {
			up++
		}
	}
	stats := StatsStyle.Render(fmt.Sprintf(" | %d devices | %d up | %s",
		len(m.snap.Entries), up, m.snap.Taken.Format("15:04:05")))

	return HeaderStyle.Render(title + stats)
}

// renderDevices renders one row per device in list order.
func (m Model) renderDevices() string {
	if !m.received {
		return LabelStyle.Render("  ...")
	}
	if len(m.snap.Entries) == 0 {
		return LabelStyle.Render("  No devices - check the device file")
	}

	width := 0
	for _, e := range m.snap.Entries {
		if n := len(DisplayName(e, m.strip)); n > width {
			width = n
		}
	}

	var rows []string
	for _, e := range m.snap.Entries {
		rows = append(rows, m.renderRow(e, width))
	}
	return strings.Join(rows, "\n")
}

// renderRow renders a single device line: status glyph, name, model, address.
// The DOWN glyph alternates bright and dim with the snapshot's blink phase.
func (m Model) renderRow(e engine.Entry, width int) string {
	var glyph string
	switch {
	case e.Reachable:
		glyph = StatusUpStyle.Render(StatusUpGlyph)
	case e.Blink:
		glyph = StatusDownStyle.Render(StatusDownGlyph)
	default:
		glyph = StatusDownDimStyle.Render(StatusDownGlyph)
	}

	name := DeviceNameStyle.Render(fmt.Sprintf("%-*s", width, DisplayName(e, m.strip)))

	model := ""
	if e.Model != "" && e.Model != fetch.Unknown {
		model = "  " + LabelStyle.Render(e.Model)
	}

	addr := ""
	if e.Spec.Address != "" && e.Spec.Address != e.Spec.Original {
		addr = "  " + MutedStyle.Render(e.Spec.Address)
	}

	return fmt.Sprintf("  %s %s%s%s", glyph, name, model, addr)
}

// renderFooter renders the key hints line.
func (m Model) renderFooter() string {
	return FooterStyle.Render("q quit • ? help")
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(TitleStyle.Render("netwatch") + StatsStyle.Render(" | help")))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("  " + StatusUpStyle.Render(StatusUpGlyph) + "  device answers ping"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("  " + StatusDownStyle.Render(StatusDownGlyph) + "  device unreachable (blinks)"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("  q / ctrl+c   quit"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("  ?            toggle this help"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("  esc          close help"))
	b.WriteString("\n\n")
	b.WriteString(FooterStyle.Render("names come from the device itself when reachable, DNS otherwise"))
	return b.String()
}
