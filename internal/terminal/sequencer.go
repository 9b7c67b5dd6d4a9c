// Package terminal replays a scripted terminal session with typing pacing.
//
// A Sequencer walks a Script in order. Command lines (prefixed with "$") are
// revealed one rune at a time through Snapshot.InProgress and committed to the
// transcript once fully typed; every other line is committed whole when its
// delay elapses. Cancelling the run's context, or calling Cancel, freezes the
// transcript and in-progress text where they are.
package terminal

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"pkt.systems/pslog"
)

// DefaultCharInterval is the pause before each typed character.
const DefaultCharInterval = 50 * time.Millisecond

// ErrRunActive is returned by Run while another run on the same Sequencer is
// still in progress.
var ErrRunActive = errors.New("terminal run already active")

// Clock suspends a run. Sleep returns early with the context error when ctx is
// cancelled.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock sleeps on wall-clock timers.
var SystemClock Clock = systemClock{}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithCharInterval sets the per-character typing interval for command lines.
func WithCharInterval(d time.Duration) Option {
	return func(s *Sequencer) {
		if d >= 0 {
			s.interval = d
		}
	}
}

// WithClock replaces the clock used for suspensions.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		if c != nil {
			s.clock = c
		}
	}
}

// Sequencer replays one Script. A Sequencer runs at most one replay at a time;
// each call to Run starts again from an empty transcript.
type Sequencer struct {
	script   Script
	interval time.Duration
	clock    Clock

	// mu serialises mutation and delivery to the observer.
	mu         sync.Mutex
	transcript []string
	inProgress string
	state      State

	ctlMu  sync.Mutex
	active bool
	cancel context.CancelFunc

	published atomic.Pointer[Snapshot]
}

// New returns an idle Sequencer for script.
func New(script Script, opts ...Option) *Sequencer {
	s := &Sequencer{
		script:   script,
		interval: DefaultCharInterval,
		clock:    SystemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.published.Store(&Snapshot{Transcript: []string{}, State: Idle})
	return s
}

// Script returns the script this Sequencer replays.
func (s *Sequencer) Script() Script {
	return s.script
}

// Snapshot returns the most recently published state.
func (s *Sequencer) Snapshot() Snapshot {
	return *s.published.Load()
}

// Cancel stops the active run, if any. It is safe to call more than once and
// from any goroutine other than the observer. Once Cancel returns the observer
// is not called again for this run.
func (s *Sequencer) Cancel() {
	s.ctlMu.Lock()
	cancel := s.cancel
	s.ctlMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	// Wait out a delivery that was already under way.
	s.mu.Lock()
	s.mu.Unlock()
}

// Run replays the script from the start, calling observe synchronously with the
// reset state and after every change to the transcript or in-progress line.
// It returns the final snapshot when the script completes or the run is
// cancelled. observe may be nil and must not call Cancel.
func (s *Sequencer) Run(ctx context.Context, observe func(Snapshot)) (Snapshot, error) {
	s.ctlMu.Lock()
	if s.active {
		s.ctlMu.Unlock()
		return s.Snapshot(), ErrRunActive
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.active = true
	s.cancel = cancel
	s.ctlMu.Unlock()

	defer func() {
		cancel()
		s.ctlMu.Lock()
		s.active = false
		s.cancel = nil
		s.ctlMu.Unlock()
	}()

	log := pslog.Ctx(ctx).With("lines", len(s.script.Lines))
	log.Debug("terminal.run.start", "char_interval", s.interval)

	s.mu.Lock()
	s.transcript = make([]string, 0, len(s.script.Lines))
	s.inProgress = ""
	s.state = Running
	reset := s.publishLocked()
	if observe != nil && runCtx.Err() == nil {
		observe(reset)
	}
	s.mu.Unlock()

	if !s.play(runCtx, observe) {
		final := s.finish(Cancelled)
		log.Debug("terminal.run.cancel", "committed", len(final.Transcript), "partial", final.InProgress != "")
		return final, nil
	}
	final := s.finish(Completed)
	log.Debug("terminal.run.complete", "committed", len(final.Transcript))
	return final, nil
}

// play walks the script. It returns false when the run was cancelled.
func (s *Sequencer) play(ctx context.Context, observe func(Snapshot)) bool {
	var elapsed time.Duration
	for _, line := range s.script.Lines {
		// Delays are absolute; typing a long command may already have
		// consumed part or all of the wait.
		if wait := line.Delay - elapsed; wait > 0 {
			if !s.suspend(ctx, wait) {
				return false
			}
			elapsed += wait
		}

		if !line.IsCommand() {
			if !s.apply(ctx, observe, func() {
				s.transcript = append(s.transcript, line.Text)
			}) {
				return false
			}
			continue
		}

		runes := []rune(line.Text)
		for i := 1; i <= len(runes); i++ {
			if s.interval > 0 {
				if !s.suspend(ctx, s.interval) {
					return false
				}
				elapsed += s.interval
			}
			typed := i
			if !s.apply(ctx, observe, func() {
				if typed < len(runes) {
					s.inProgress = string(runes[:typed])
					return
				}
				s.transcript = append(s.transcript, line.Text)
				s.inProgress = ""
			}) {
				return false
			}
		}
	}
	return true
}

func (s *Sequencer) suspend(ctx context.Context, d time.Duration) bool {
	if err := s.clock.Sleep(ctx, d); err != nil {
		return false
	}
	return ctx.Err() == nil
}

// apply performs one mutation and delivers the result, unless the run has
// been cancelled in the meantime.
func (s *Sequencer) apply(ctx context.Context, observe func(Snapshot), mutate func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	mutate()
	snap := s.publishLocked()
	if observe != nil {
		observe(snap)
	}
	return true
}

func (s *Sequencer) finish(state State) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return s.publishLocked()
}

func (s *Sequencer) publishLocked() Snapshot {
	snap := Snapshot{
		Transcript: slices.Clip(s.transcript),
		InProgress: s.inProgress,
		State:      s.state,
	}
	s.published.Store(&snap)
	return snap
}
