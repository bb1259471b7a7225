package broadcast

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/memory-server/internal/memory"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, e)
		default:
			return events
		}
	}
}

func types(events []Event) []EventType {
	ts := make([]EventType, len(events))
	for i, e := range events {
		ts[i] = e.Type
	}
	return ts
}

func TestHubFanOut(t *testing.T) {
	h := NewHub(quietLogger(), 8)
	a, cancelA := h.Subscribe()
	defer cancelA()
	b, cancelB := h.Subscribe()
	defer cancelB()
	require.Equal(t, 2, h.Subscribers())

	h.UpdateMoves(3)
	h.UpdateTimer(7)

	for _, ch := range []<-chan Event{a, b} {
		events := drain(ch)
		require.Len(t, events, 2)
		assert.Equal(t, 3, *events[0].Moves)
		assert.Equal(t, 7, *events[1].ElapsedSeconds)
	}
}

func TestHubEvictsLaggingSubscriber(t *testing.T) {
	h := NewHub(quietLogger(), 2)
	slow, cancelSlow := h.Subscribe()
	fast, cancelFast := h.Subscribe()
	defer cancelFast()

	h.UpdateMoves(0)
	h.UpdateMoves(1)
	require.Len(t, drain(fast), 2)

	// slow has a full buffer; the board event must not be lost silently
	h.DisplayBoard(memory.Board{{Symbol: "A"}, {Symbol: "A"}})
	h.UpdateMoves(0)

	events := drain(slow)
	require.Len(t, events, 2)
	assert.Equal(t, 0, *events[0].Moves)
	assert.Equal(t, 1, *events[1].Moves)
	_, open := <-slow
	assert.False(t, open, "evicted subscriber's channel is closed")
	assert.False(t, h.Closed())
	assert.Equal(t, 1, h.Subscribers())
	cancelSlow()

	assert.Equal(t, []EventType{EventBoard, EventMoves}, types(drain(fast)))

	again, cancelAgain := h.Subscribe()
	defer cancelAgain()
	h.UpdateTimer(3)
	assert.Equal(t, []EventType{EventTimer}, types(drain(again)))
}

func TestHubUnsubscribe(t *testing.T) {
	h := NewHub(quietLogger(), 2)
	ch, cancel := h.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Subscribers())

	// publishing without subscribers is fine
	h.UpdateMoves(1)
}

func TestHubClose(t *testing.T) {
	h := NewHub(quietLogger(), 2)
	ch, cancel := h.Subscribe()
	h.ShowWinBanner(4, 2, func() { t.Fatal("restart after close") })
	h.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.False(t, h.TriggerRestart())
	assert.True(t, h.Closed())

	late, cancelLate := h.Subscribe()
	defer cancelLate()
	_, open = <-late
	assert.False(t, open, "subscribing after close yields a closed channel")
	assert.Equal(t, 0, h.Subscribers())
}

func TestHubTriggerRestartOnce(t *testing.T) {
	h := NewHub(quietLogger(), 8)
	assert.False(t, h.TriggerRestart())

	restarts := 0
	h.ShowWinBanner(4, 2, func() { restarts++ })
	assert.True(t, h.TriggerRestart())
	assert.False(t, h.TriggerRestart())
	assert.Equal(t, 1, restarts)

	h.ShowWinBanner(4, 2, func() { restarts++ })
	h.DisplayBoard(memory.Board{{Symbol: "A"}, {Symbol: "A"}})
	assert.False(t, h.TriggerRestart(), "new board retires the banner")
}

func TestHubRendersSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clk := quartz.NewMock(t)
	h := NewHub(quietLogger(), 64)
	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	params := memory.Params{
		Dimension:     2,
		Symbols:       []memory.Symbol{"A", "B"},
		MismatchDelay: memory.DefaultMismatchDelay,
		WinDelay:      memory.DefaultWinDelay,
		TickInterval:  memory.DefaultTickInterval,
	}
	s, err := memory.NewSession(params, h,
		memory.WithClock(clk),
		memory.WithLogger(quietLogger()),
		memory.WithBoardFunc(func(memory.Params, *rand.Rand) (memory.Board, error) {
			return memory.Board{{Symbol: "A"}, {Symbol: "A"}, {Symbol: "B"}, {Symbol: "B"}}, nil
		}),
	)
	require.NoError(t, err)
	defer s.Close()

	events := drain(ch)
	assert.Equal(t, []EventType{EventBoard, EventMoves, EventTimer}, types(events))
	assert.Equal(t, 2, events[0].Dimension)
	for _, c := range events[0].Cards {
		assert.Empty(t, c.Symbol)
	}

	for _, i := range []int{0, 1, 2, 3} {
		s.Click(i)
	}
	clk.Advance(memory.DefaultWinDelay).MustWait(ctx)

	events = drain(ch)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventWin, last.Type)
	assert.Equal(t, 4, *last.Moves)

	require.True(t, h.TriggerRestart())
	assert.Equal(t, memory.Idle, s.Phase())
	assert.Equal(t,
		[]EventType{EventBoard, EventMoves, EventTimer},
		types(drain(ch)),
	)
}
