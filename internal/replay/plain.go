package replay

import (
	"context"
	"fmt"
	"io"

	"github.com/daebeom/macfolio/internal/terminal"
)

// Printer writes a run to w incrementally: typed runes as they appear and one
// newline per committed line. Typed fragments get the command style, so a
// typed line reads the same as one committed whole through RenderLine. It is
// meant to be used as a Sequencer observer.
type Printer struct {
	w         io.Writer
	committed int
	typed     int
	err       error
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error { return p.err }

// Observe writes whatever changed since the previous snapshot.
func (p *Printer) Observe(s terminal.Snapshot) {
	if len(s.Transcript) < p.committed {
		// A new run started.
		p.committed, p.typed = 0, 0
	}
	for _, line := range s.Transcript[p.committed:] {
		if p.typed > 0 {
			rest := []rune(line)
			if p.typed < len(rest) {
				rest = rest[p.typed:]
			} else {
				rest = nil
			}
			p.write(renderTyped(string(rest)) + "\n")
			p.typed = 0
			continue
		}
		p.write(RenderLine(line) + "\n")
	}
	p.committed = len(s.Transcript)

	if typed := []rune(s.InProgress); len(typed) > p.typed {
		p.write(renderTyped(string(typed[p.typed:])))
		p.typed = len(typed)
	}
}

// Finish terminates a partially typed line left by a cancelled run.
func (p *Printer) Finish() {
	if p.typed > 0 {
		p.write("\n")
		p.typed = 0
	}
}

// renderTyped styles part of a line that is being typed. Only commands are
// typed, so this matches RenderLine for "$" lines.
func renderTyped(fragment string) string {
	if fragment == "" {
		return ""
	}
	return CommandStyle.Render(fragment)
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = fmt.Errorf("write transcript: %w", err)
	}
}

// RunPlain plays seq to w without any screen control.
func RunPlain(ctx context.Context, seq *terminal.Sequencer, w io.Writer) (terminal.Snapshot, error) {
	p := NewPrinter(w)
	final, err := seq.Run(ctx, p.Observe)
	if err != nil {
		return final, err
	}
	p.Finish()
	return final, p.Err()
}
