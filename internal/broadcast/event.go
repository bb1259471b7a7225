package broadcast

import "github.com/vancomm/memory-server/internal/memory"

type EventType string

const (
	EventBoard EventType = "board"
	EventCard  EventType = "card"
	EventMoves EventType = "moves"
	EventTimer EventType = "timer"
	EventWin   EventType = "win"
	EventState EventType = "state"
	EventError EventType = "error"
)

// Event is one message pushed to subscribers. Only the fields relevant to
// Type are set.
type Event struct {
	Type           EventType         `json:"type"`
	Dimension      int               `json:"dimension,omitempty"`
	Cards          []memory.CardView `json:"cards,omitempty"`
	Index          *int              `json:"index,omitempty"`
	Card           *memory.CardView  `json:"card,omitempty"`
	Moves          *int              `json:"moves,omitempty"`
	ElapsedSeconds *int              `json:"elapsed_seconds,omitempty"`
	Snapshot       *memory.Snapshot  `json:"snapshot,omitempty"`
	Error          string            `json:"error,omitempty"`
}

func boardEvent(b memory.Board) Event {
	cards := make([]memory.CardView, len(b))
	for i, c := range b {
		cards[i] = memory.NewCardView(c)
	}
	return Event{Type: EventBoard, Dimension: b.Dimension(), Cards: cards}
}

func cardEvent(index int, c memory.Card) Event {
	view := memory.NewCardView(c)
	return Event{Type: EventCard, Index: &index, Card: &view}
}

func movesEvent(moves int) Event {
	return Event{Type: EventMoves, Moves: &moves}
}

func timerEvent(elapsed int) Event {
	return Event{Type: EventTimer, ElapsedSeconds: &elapsed}
}

func winEvent(moves, elapsed int) Event {
	return Event{Type: EventWin, Moves: &moves, ElapsedSeconds: &elapsed}
}

func StateEvent(s memory.Snapshot) Event {
	return Event{Type: EventState, Snapshot: &s}
}

func ErrorEvent(err error) Event {
	return Event{Type: EventError, Error: err.Error()}
}
