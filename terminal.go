package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pkt.systems/pslog"

	"github.com/daebeom/macfolio/internal/terminal"
)

// terminalFrame is the JSON payload of a terminal stream event.
type terminalFrame struct {
	Transcript []string       `json:"transcript"`
	InProgress string         `json:"in_progress"`
	State      terminal.State `json:"state"`
	Cursor     bool           `json:"cursor"`
}

func frameOf(s terminal.Snapshot) terminalFrame {
	transcript := s.Transcript
	if transcript == nil {
		transcript = []string{}
	}
	return terminalFrame{
		Transcript: transcript,
		InProgress: s.InProgress,
		State:      s.State,
		Cursor:     s.CursorVisible(),
	}
}

// streamTerminal replays the script for one connected window. Closing the
// connection cancels the run.
func (s *server) streamTerminal(c *gin.Context) {
	ctx := c.Request.Context()
	log := pslog.Ctx(ctx).With("remote", c.ClientIP())

	seq := terminal.New(s.script, terminal.WithCharInterval(s.cfg.Terminal.CharInterval))
	updates := make(chan terminal.Snapshot, 32)
	done := make(chan terminal.Snapshot, 1)

	s.stats.runStarted()
	log.Info("terminal.stream.open")
	go func() {
		final, err := seq.Run(ctx, func(snap terminal.Snapshot) {
			select {
			case updates <- snap:
			case <-ctx.Done():
			}
		})
		if err != nil {
			log.Warn("terminal.stream.run", "err", err)
		}
		done <- final
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(event string, snap terminal.Snapshot) {
		c.SSEvent(event, frameOf(snap))
		c.Writer.Flush()
	}

	for {
		select {
		case snap := <-updates:
			send("snapshot", snap)

		case final := <-done:
			// Run has returned, so every delivered snapshot is buffered.
			for drained := false; !drained; {
				select {
				case snap := <-updates:
					send("snapshot", snap)
				default:
					drained = true
				}
			}
			s.stats.runFinished(final.State)
			if final.State == terminal.Completed {
				send("done", final)
			}
			log.Info("terminal.stream.close", "state", final.State, "lines", len(final.Transcript))
			return

		case <-ctx.Done():
			seq.Cancel()
			final := <-done
			s.stats.runFinished(final.State)
			log.Info("terminal.stream.close", "state", final.State, "lines", len(final.Transcript), "partial", final.InProgress)
			return
		}
	}
}

type scriptLineJSON struct {
	Text    string `json:"text"`
	DelayMS int64  `json:"delay_ms"`
	Command bool   `json:"command"`
}

func (s *server) terminalScript(c *gin.Context) {
	lines := make([]scriptLineJSON, 0, len(s.script.Lines))
	for _, l := range s.script.Lines {
		lines = append(lines, scriptLineJSON{Text: l.Text, DelayMS: l.Delay.Milliseconds(), Command: l.IsCommand()})
	}
	c.JSON(http.StatusOK, gin.H{
		"char_interval_ms": s.cfg.Terminal.CharInterval.Milliseconds(),
		"lines":            lines,
	})
}
