// Package broadcast renders a game session to any number of subscribers,
// typically browser tabs connected over a websocket.
package broadcast

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/memory-server/internal/memory"
)

const DefaultBuffer = 64

// Hub implements [memory.Renderer] by fanning events out to subscribers. A
// subscriber that falls behind by more than its buffer is evicted: its
// channel is closed while the hub stays open, and it has to subscribe again
// and resync from a snapshot.
type Hub struct {
	mu        sync.Mutex
	log       logrus.FieldLogger
	buffer    int
	nextID    int
	subs      map[int]chan Event
	closed    bool
	onRestart func()
}

func NewHub(log logrus.FieldLogger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		log:    log,
		buffer: buffer,
		subs:   make(map[int]chan Event),
	}
}

// Subscribe registers a new listener. The returned cancel func closes the
// channel and must be called once the listener is done. Subscribing to a
// closed hub yields a closed channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if ch, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}

// Closed reports whether Close was called. A subscriber whose channel was
// closed while the hub is still open has been evicted.
func (h *Hub) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.closed
}

// Close drops all subscribers and any pending restart trigger.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.onRestart = nil
}

func (h *Hub) publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.publishLocked(e)
}

func (h *Hub) publishLocked(e Event) {
	for id, ch := range h.subs {
		select {
		case ch <- e:
		default:
			delete(h.subs, id)
			close(ch)
			h.log.WithFields(logrus.Fields{
				"subscriber": id,
				"event":      e.Type,
			}).Warn("subscriber lagging, evicted")
		}
	}
}

func (h *Hub) DisplayBoard(b memory.Board) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// a new board retires the previous win banner
	h.onRestart = nil
	h.publishLocked(boardEvent(b))
}

func (h *Hub) UpdateCard(index int, c memory.Card) {
	h.publish(cardEvent(index, c))
}

func (h *Hub) UpdateMoves(totalFlips int) {
	h.publish(movesEvent(totalFlips))
}

func (h *Hub) UpdateTimer(elapsedSeconds int) {
	h.publish(timerEvent(elapsedSeconds))
}

func (h *Hub) ShowWinBanner(totalFlips, elapsedSeconds int, onRestart func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.onRestart = onRestart
	h.publishLocked(winEvent(totalFlips, elapsedSeconds))
}

// TriggerRestart fires the restart trigger of the displayed win banner, at
// most once. It reports whether a banner was showing.
func (h *Hub) TriggerRestart() bool {
	h.mu.Lock()
	fn := h.onRestart
	h.onRestart = nil
	h.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}
