package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daebeom/macfolio/internal/terminal"
)

// BlinkInterval is the cursor blink half-period.
const BlinkInterval = 400 * time.Millisecond

type snapshotMsg struct{ snap terminal.Snapshot }

type finishedMsg struct{ snap terminal.Snapshot }

type blinkMsg struct{}

// Model is the bubbletea model for an interactive replay.
type Model struct {
	events <-chan tea.Msg
	cancel context.CancelFunc

	vp       viewport.Model
	ready    bool
	width    int
	snap     terminal.Snapshot
	cursorOn bool
	finished bool
}

// NewModel builds a model fed by events. cancel stops the run when the user
// closes the window.
func NewModel(events <-chan tea.Msg, cancel context.CancelFunc) Model {
	return Model{events: events, cancel: cancel, cursorOn: true}
}

// Snapshot returns the last snapshot the model received.
func (m Model) Snapshot() terminal.Snapshot { return m.snap }

// Finished reports whether the run has ended.
func (m Model) Finished() bool { return m.finished }

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), blink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case snapshotMsg:
		m.snap = msg.snap
		m.refresh()
		return m, waitForEvent(m.events)

	case finishedMsg:
		m.snap = msg.snap
		m.finished = true
		m.refresh()
		if msg.snap.State == terminal.Cancelled {
			return m, tea.Quit
		}
		return m, nil

	case blinkMsg:
		m.cursorOn = !m.cursorOn
		m.refresh()
		return m, blink()
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "\n  booting…"
	}
	header := HeaderStyle.Width(m.width).Render(windowTitle)
	right := statusRight
	gap := max(m.width-lipgloss.Width(statusLeft)-lipgloss.Width(right)-2, 1)
	status := StatusStyle.Width(m.width).Render(fmt.Sprintf("%s%*s%s", statusLeft, gap, "", right))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.vp.View(), status)
}

// refresh redraws the viewport and keeps the newest line in view.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(Render(m.snap, m.cursorOn))
	m.vp.GotoBottom()
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func blink() tea.Cmd {
	return tea.Tick(BlinkInterval, func(time.Time) tea.Msg { return blinkMsg{} })
}

// pump runs seq and forwards its snapshots to events in order, ending with a
// finishedMsg.
func pump(ctx context.Context, seq *terminal.Sequencer, events chan<- tea.Msg) {
	defer close(events)
	final, err := seq.Run(ctx, func(s terminal.Snapshot) {
		select {
		case events <- snapshotMsg{snap: s}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		final = seq.Snapshot()
	}
	select {
	case events <- finishedMsg{snap: final}:
	case <-ctx.Done():
	}
}

// Run plays seq in an interactive full-screen program until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, seq *terminal.Sequencer, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, 64)
	go pump(ctx, seq, events)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(events, cancel), opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}
