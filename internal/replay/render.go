// Package replay renders a terminal Sequencer in a local terminal, either as
// an interactive bubbletea program or as an incremental plain-text stream.
package replay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/daebeom/macfolio/internal/terminal"
)

const (
	cursorBlock = "█"
	windowTitle = "zsh — ~/portfolio"
	statusLeft  = "▶ Portfolio Terminal"
	statusRight = "Press ESC to exit"
)

var (
	teal  = lipgloss.Color("#4ec9b0")
	light = lipgloss.Color("#d4d4d4")
	gray  = lipgloss.Color("#6b7280")

	CommandStyle  = lipgloss.NewStyle().Foreground(teal).Bold(true)
	ResponseStyle = lipgloss.NewStyle().Foreground(light)
	MutedStyle    = lipgloss.NewStyle().Foreground(gray)
	PromptStyle   = lipgloss.NewStyle().Foreground(teal)
	HeaderStyle   = lipgloss.NewStyle().
			Background(lipgloss.Color("#323233")).
			Foreground(lipgloss.Color("#9ca3af")).
			Padding(0, 1)
	StatusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#007acc")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)
)

// ConfigureColor picks the colour profile for the current output.
func ConfigureColor(interactive bool) {
	if interactive {
		lipgloss.SetColorProfile(termenv.ColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// RenderLine styles one committed transcript line.
func RenderLine(line string) string {
	switch {
	case strings.HasPrefix(line, "$"):
		return CommandStyle.Render(line)
	case strings.HasPrefix(line, ">"):
		return "  " + ResponseStyle.Render(line)
	case line == "":
		return ""
	default:
		return MutedStyle.Render(line)
	}
}

// Render draws the transcript, the line being typed, and the prompt cursor
// when it is visible. cursorOn selects the blink phase.
func Render(snap terminal.Snapshot, cursorOn bool) string {
	lines := make([]string, 0, len(snap.Transcript)+1)
	for _, line := range snap.Transcript {
		lines = append(lines, RenderLine(line))
	}
	switch {
	case snap.InProgress != "":
		lines = append(lines, CommandStyle.Render(snap.InProgress))
	case snap.CursorVisible():
		cursor := " "
		if cursorOn {
			cursor = PromptStyle.Render(cursorBlock)
		}
		lines = append(lines, PromptStyle.Render("$")+" "+cursor)
	}
	return strings.Join(lines, "\n")
}
