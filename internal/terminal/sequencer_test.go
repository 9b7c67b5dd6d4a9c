package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// virtualClock advances logical time without sleeping. When cancelAt is set,
// the first suspension that would pass it stops at cancelAt and fires cancel.
type virtualClock struct {
	now      time.Duration
	cancelAt time.Duration
	cancel   func()
}

func (c *virtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.cancel != nil && c.now+d > c.cancelAt {
		c.now = c.cancelAt
		c.cancel()
		return ctx.Err()
	}
	c.now += d
	return nil
}

type event struct {
	at   time.Duration
	snap Snapshot
}

type recorder struct {
	clock  *virtualClock
	events []event
}

func (r *recorder) observe(s Snapshot) {
	r.events = append(r.events, event{at: r.clock.now, snap: s})
}

// commitTimes maps each committed line to the logical time it appeared.
func (r *recorder) commitTimes() map[string]time.Duration {
	out := map[string]time.Duration{}
	seen := 0
	for _, ev := range r.events {
		for _, line := range ev.snap.Transcript[seen:] {
			out[line] = ev.at
		}
		seen = len(ev.snap.Transcript)
	}
	return out
}

func whoamiScript() Script {
	return Script{Lines: []Line{
		{Text: "$ whoami", Delay: 0},
		{Text: "> Daebeom", Delay: 500 * time.Millisecond},
	}}
}

func TestRunWhoamiTimeline(t *testing.T) {
	clock := &virtualClock{}
	rec := &recorder{clock: clock}
	seq := New(whoamiScript(), WithClock(clock), WithCharInterval(50*time.Millisecond))

	final, err := seq.Run(context.Background(), rec.observe)
	require.NoError(t, err)

	assert.Equal(t, Completed, final.State)
	assert.Equal(t, []string{"$ whoami", "> Daebeom"}, final.Transcript)
	assert.Empty(t, final.InProgress)

	commits := rec.commitTimes()
	assert.Equal(t, 400*time.Millisecond, commits["$ whoami"])
	assert.Equal(t, 500*time.Millisecond, commits["> Daebeom"])
	assert.Equal(t, 500*time.Millisecond, clock.now)
}

func TestRunCancelledBetweenLines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := &virtualClock{cancelAt: 450 * time.Millisecond, cancel: cancel}
	rec := &recorder{clock: clock}
	seq := New(whoamiScript(), WithClock(clock))

	final, err := seq.Run(ctx, rec.observe)
	require.NoError(t, err)

	assert.Equal(t, Cancelled, final.State)
	assert.Equal(t, []string{"$ whoami"}, final.Transcript)
	assert.Empty(t, final.InProgress)
	for _, ev := range rec.events {
		assert.LessOrEqual(t, ev.at, 450*time.Millisecond)
		assert.NotContains(t, ev.snap.Transcript, "> Daebeom")
	}
}

func TestRunCancelledMidTypingFreezesPrefix(t *testing.T) {
	script := Script{Lines: []Line{
		{Text: "$ whoami", Delay: 0},
		{Text: "$ pwd", Delay: 500 * time.Millisecond},
	}}
	clock := &virtualClock{cancelAt: 620 * time.Millisecond}
	seq := New(script, WithClock(clock))
	clock.cancel = seq.Cancel
	rec := &recorder{clock: clock}

	final, err := seq.Run(context.Background(), rec.observe)
	require.NoError(t, err)

	assert.Equal(t, Cancelled, final.State)
	assert.Equal(t, []string{"$ whoami"}, final.Transcript)
	assert.Equal(t, "$ ", final.InProgress)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, 600*time.Millisecond, last.at)
	assert.Equal(t, "$ ", last.snap.InProgress)

	count := len(rec.events)
	time.Sleep(5 * time.Millisecond)
	assert.Len(t, rec.events, count)
	assert.Equal(t, final, seq.Snapshot())
}

func TestRunTypesEveryStrictPrefix(t *testing.T) {
	for _, text := range []string{"$ ls", "$ 안녕 🚀"} {
		t.Run(text, func(t *testing.T) {
			clock := &virtualClock{}
			rec := &recorder{clock: clock}
			seq := New(Script{Lines: []Line{{Text: text}}}, WithClock(clock))

			_, err := seq.Run(context.Background(), rec.observe)
			require.NoError(t, err)

			var partials []string
			for _, ev := range rec.events {
				if ev.snap.InProgress != "" {
					partials = append(partials, ev.snap.InProgress)
				}
			}
			runes := []rune(text)
			want := make([]string, 0, len(runes)-1)
			for i := 1; i < len(runes); i++ {
				want = append(want, string(runes[:i]))
			}
			assert.Equal(t, want, partials)
			assert.Equal(t, time.Duration(len(runes))*DefaultCharInterval, clock.now)
		})
	}
}

func TestRunPreservesScriptOrder(t *testing.T) {
	script := DefaultScript()
	seq := New(script, WithClock(&virtualClock{}))

	final, err := seq.Run(context.Background(), nil)
	require.NoError(t, err)

	want := make([]string, 0, len(script.Lines))
	for _, line := range script.Lines {
		want = append(want, line.Text)
	}
	assert.Equal(t, want, final.Transcript)
}

func TestRunResponsesAppearWhole(t *testing.T) {
	script := Script{Lines: []Line{
		{Text: "> hello", Delay: 100 * time.Millisecond},
		{Text: "", Delay: 200 * time.Millisecond},
	}}
	clock := &virtualClock{}
	rec := &recorder{clock: clock}
	seq := New(script, WithClock(clock))

	_, err := seq.Run(context.Background(), rec.observe)
	require.NoError(t, err)

	for _, ev := range rec.events {
		assert.Empty(t, ev.snap.InProgress)
	}
	commits := rec.commitTimes()
	assert.Equal(t, 100*time.Millisecond, commits["> hello"])
	assert.Equal(t, 200*time.Millisecond, commits[""])
}

func TestCancelIsIdempotent(t *testing.T) {
	seq := New(whoamiScript(), WithClock(&virtualClock{}))
	seq.Cancel()

	clock := &virtualClock{cancelAt: 120 * time.Millisecond}
	seq = New(whoamiScript(), WithClock(clock))
	clock.cancel = func() {
		seq.Cancel()
		seq.Cancel()
	}
	final, err := seq.Run(context.Background(), nil)
	require.NoError(t, err)
	seq.Cancel()

	assert.Equal(t, Cancelled, final.State)
	assert.Empty(t, final.Transcript)
	assert.Equal(t, "$ ", final.InProgress)
	assert.Equal(t, final, seq.Snapshot())
}

func TestRunResetsBetweenRuns(t *testing.T) {
	clock := &virtualClock{}
	seq := New(whoamiScript(), WithClock(clock))

	first, err := seq.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, first.Transcript, 2)

	clock.now = 0
	rec := &recorder{clock: clock}
	second, err := seq.Run(context.Background(), rec.observe)
	require.NoError(t, err)

	require.NotEmpty(t, rec.events)
	assert.Empty(t, rec.events[0].snap.Transcript)
	assert.Empty(t, rec.events[0].snap.InProgress)
	assert.Equal(t, Running, rec.events[0].snap.State)
	assert.Equal(t, first.Transcript, second.Transcript)
	assert.Len(t, first.Transcript, 2)
}

func TestRunRejectsOverlap(t *testing.T) {
	seq := New(Script{Lines: []Line{{Text: "> later", Delay: time.Hour}}})

	done := make(chan Snapshot, 1)
	go func() {
		final, _ := seq.Run(context.Background(), nil)
		done <- final
	}()
	require.Eventually(t, func() bool {
		return seq.Snapshot().State == Running
	}, time.Second, time.Millisecond)

	_, err := seq.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRunActive)

	seq.Cancel()
	select {
	case final := <-done:
		assert.Equal(t, Cancelled, final.State)
		assert.Empty(t, final.Transcript)
	case <-time.After(time.Second):
		t.Fatal("run did not stop after Cancel")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	seq := New(Script{Lines: []Line{
		{Text: "> now"},
		{Text: "> never", Delay: time.Hour},
	}})

	observed := make(chan Snapshot, 8)
	done := make(chan Snapshot, 1)
	go func() {
		final, _ := seq.Run(ctx, func(s Snapshot) { observed <- s })
		done <- final
	}()
	require.Eventually(t, func() bool {
		return len(seq.Snapshot().Transcript) == 1
	}, time.Second, time.Millisecond)
	cancel()

	final := <-done
	assert.Equal(t, Cancelled, final.State)
	assert.Equal(t, []string{"> now"}, final.Transcript)
}

func TestRunWithCancelledContextDeliversNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	final, err := New(whoamiScript(), WithClock(&virtualClock{})).Run(ctx, func(Snapshot) { calls++ })
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, Cancelled, final.State)
	assert.Empty(t, final.Transcript)
}

func TestCursorVisible(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"idle", Snapshot{State: Idle}, false},
		{"between lines", Snapshot{State: Running}, true},
		{"typing", Snapshot{State: Running, InProgress: "$ wh"}, false},
		{"completed", Snapshot{State: Completed}, true},
		{"cancelled", Snapshot{State: Cancelled}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.snap.CursorVisible())
		})
	}
}
